package queue

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack"
)

// grantRequest/grantReply are the msgpack-encoded request/response pair
// exchanged with a single dedicated arbiter subscriber that hands out
// admissions one at a time — the same msgpack.Marshal-over-nats.go
// pairing gateway/manager.go's ForwardProduce used for its (now
// out-of-scope, see DESIGN.md) event relay.
type grantRequest struct {
	ShardID int `msgpack:"shard_id"`
}

type grantReply struct {
	Granted bool `msgpack:"granted"`
}

// NATS is a networked IdentifyQueue backend built on NATS request-reply:
// every Request publishes a grant request and blocks for a reply from
// whichever process is running the arbiter subscriber for subject.
type NATS struct {
	conn    *nats.Conn
	subject string
	timeout time.Duration
}

// NewNATS builds a NATS-backed queue that issues admission requests on
// subject and waits up to timeout for a reply.
func NewNATS(conn *nats.Conn, subject string, timeout time.Duration) *NATS {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NATS{conn: conn, subject: subject, timeout: timeout}
}

func (q *NATS) Request(ctx context.Context, shardID int) error {
	payload, err := msgpack.Marshal(grantRequest{ShardID: shardID})
	if err != nil {
		return err
	}
	for {
		reqCtx, cancel := context.WithTimeout(ctx, q.timeout)
		msg, err := q.conn.RequestWithContext(reqCtx, q.subject, payload)
		cancel()
		if err != nil {
			return err
		}
		var reply grantReply
		if err := msgpack.Unmarshal(msg.Data, &reply); err != nil {
			return err
		}
		if reply.Granted {
			return nil
		}
		select {
		case <-time.After(100 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
