package cluster

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/sandwich-go/corrivalry/gatewayevent"
)

var json = gatewayevent.JSON

// ShardEvent is one element of the cluster's fan-in stream: a decoded
// envelope tagged with the shard id that produced it. Ordering is
// preserved per-shard; no cross-shard ordering is guaranteed.
type ShardEvent struct {
	ShardID int
	Event   *gatewayevent.Envelope
}

// ResumeData is a previously-seen (session id, sequence) pair a shard can
// be handed at construction instead of performing a fresh identify.
type ResumeData struct {
	SessionID string
	Sequence  int64
}

// shard drives one gateway connection: connect, identify-or-resume,
// heartbeat, read loop, reconnect-on-drop. Grounded directly on
// gateway/shard.go's Shard/Open/connect/identifyPacket/canContinue.
type shard struct {
	id, count int

	token          string
	intents        gatewayevent.Intent
	largeThreshold int
	presence       interface{}

	queue    IdentifyQueue
	dialer   Dialer
	decoder  FrameDecoder
	gatewayURL string

	log zerolog.Logger
	out chan<- ShardEvent

	mu        sync.Mutex
	conn      Conn
	sessionID string
	sequence  int64

	lastHeartbeatAck  time.Time
	lastHeartbeatSent time.Time
}

func newShard(id, count int, c *config, resume *ResumeData, out chan<- ShardEvent) *shard {
	s := &shard{
		id: id, count: count,
		token:          c.token,
		intents:        c.intents,
		largeThreshold: c.largeThreshold,
		presence:       c.presence,
		queue:          c.queue,
		dialer:         c.dialer,
		decoder:        c.decoder,
		gatewayURL:     c.gatewayURL,
		log:            c.log.With().Int("shard", id).Logger(),
		out:            out,
	}
	if resume != nil {
		s.sessionID = resume.SessionID
		s.sequence = resume.Sequence
	}
	return s
}

// run loops connect→drive→reconnect until ctx is cancelled. Reconnects are
// shard-transient and never surfaced to the cluster (spec §4.2's failure
// semantics).
func (s *shard) run(ctx context.Context) {
	for ctx.Err() == nil {
		if err := s.queue.Request(ctx, s.id); err != nil {
			return
		}
		if err := s.connectAndDrive(ctx); err != nil {
			s.log.Debug().Err(err).Msg("shard connection ended, reconnecting")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (s *shard) connectAndDrive(ctx context.Context) error {
	c, err := s.dialer(ctx, s.gatewayURL)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.conn = c
	s.mu.Unlock()
	defer c.Close(websocket.StatusNormalClosure, "")

	_, data, err := c.Read(ctx)
	if err != nil {
		return err
	}
	raw, err := s.decoder.Decode(websocket.MessageText, data)
	if err != nil {
		return err
	}
	var hello gatewayevent.Hello
	if err := json.Unmarshal(raw, &hello); err != nil {
		return err
	}

	if s.sessionID != "" {
		if err := s.sendResume(ctx); err != nil {
			return err
		}
	} else {
		if err := s.sendIdentify(ctx); err != nil {
			return err
		}
	}

	interval := time.Duration(hello.Data.HeartbeatIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 45 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.heartbeat(ctx); err != nil {
				return err
			}
		default:
		}

		msgType, data, err := c.Read(ctx)
		if err != nil {
			return err
		}
		raw, err := s.decoder.Decode(msgType, data)
		if err != nil {
			s.log.Debug().Err(err).Msg("frame decode failed")
			continue
		}
		var env gatewayevent.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		s.handleEnvelope(ctx, &env)
	}
}

func (s *shard) handleEnvelope(ctx context.Context, env *gatewayevent.Envelope) {
	switch env.Op {
	case gatewayevent.OpDispatch:
		atomic.StoreInt64(&s.sequence, env.Sequence)
		if env.Type == string(gatewayevent.KindReady) {
			var ready gatewayevent.Ready
			if json.Unmarshal(env.RawData, &ready) == nil {
				s.sessionID = ready.SessionID
			}
		}
		select {
		case s.out <- ShardEvent{ShardID: s.id, Event: env}:
		case <-ctx.Done():
		}
	case gatewayevent.OpHeartbeatACK:
		s.lastHeartbeatAck = time.Now()
	case gatewayevent.OpReconnect:
		// Surfaced to the read loop as a closed connection on the next
		// read; nothing to do here but log.
		s.log.Debug().Msg("gateway requested reconnect")
	}
}

func (s *shard) heartbeat(ctx context.Context) error {
	seq := atomic.LoadInt64(&s.sequence)
	payload, err := json.Marshal(gatewayevent.Heartbeat{Op: gatewayevent.OpHeartbeat, Data: seq})
	if err != nil {
		return err
	}
	s.lastHeartbeatSent = time.Now()
	return s.write(ctx, payload)
}

// sendIdentify always sends the token with exactly one "Bot " prefix per
// spec §6, whether or not the caller already added it: the teacher's
// identifyPacket assumes a bare token, so this normalizes both inputs.
func (s *shard) sendIdentify(ctx context.Context) error {
	payload, err := json.Marshal(gatewayevent.Identify{
		Op: gatewayevent.OpIdentify,
		Data: gatewayevent.IdentifyData{
			Token: botToken(s.token),
			Properties: gatewayevent.IdentifyProperties{
				OS: "linux", Browser: "corrivalry", Device: "corrivalry",
			},
			LargeThreshold: s.largeThreshold,
			Compress:       true,
			Shard:          &[2]int{s.id, s.count},
			Presence:       s.presence,
			Intents:        s.intents,
		},
	})
	if err != nil {
		return err
	}
	return s.write(ctx, payload)
}

func (s *shard) sendResume(ctx context.Context) error {
	payload, err := json.Marshal(gatewayevent.Resume{
		Op: gatewayevent.OpResume,
		Data: gatewayevent.ResumeData{
			Token:     botToken(s.token),
			SessionID: s.sessionID,
			Sequence:  atomic.LoadInt64(&s.sequence),
		},
	})
	if err != nil {
		return err
	}
	return s.write(ctx, payload)
}

func (s *shard) write(ctx context.Context, payload []byte) error {
	s.mu.Lock()
	c := s.conn
	s.mu.Unlock()
	if c == nil {
		return websocket.CloseError{Code: websocket.StatusAbnormalClosure}
	}
	return c.Write(ctx, websocket.MessageText, payload)
}

func botToken(token string) string {
	if len(token) >= 4 && token[:4] == "Bot " {
		return token
	}
	return "Bot " + token
}
