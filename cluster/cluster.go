package cluster

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandwich-go/corrivalry/cluster/queue"
	"github.com/sandwich-go/corrivalry/errs"
	"github.com/sandwich-go/corrivalry/gatewayevent"
	"github.com/sandwich-go/corrivalry/httpdiscord"
	"github.com/sandwich-go/corrivalry/ratelimit"
)

// ShardScheme selects how a cluster derives its shard range and total,
// per spec §4.2's Configuration: either Auto (ask the platform) or an
// explicit contiguous Range.
type ShardScheme struct {
	auto           bool
	from, to, total int
}

// AutoScheme derives the shard range and total from the platform's
// recommendation endpoint: `[0..shards)` with total = shards.
func AutoScheme() ShardScheme {
	return ShardScheme{auto: true}
}

// RangeScheme declares an explicit contiguous shard range out of total.
// Validity (from <= to < total) is checked at Build, not here, so a
// builder's methods can always be chained without an early error return.
func RangeScheme(from, to, total int) ShardScheme {
	return ShardScheme{from: from, to: to, total: total}
}

// config collects everything a Builder accumulates before Build validates
// and spawns shards. Grounded on gateway/manager.go's Configuration
// struct-literal construction.
type config struct {
	token          string
	intents        gatewayevent.Intent
	scheme         ShardScheme
	queue          IdentifyQueue
	queueExplicit  bool
	resumeSessions map[int]ResumeData
	gatewayURL     string
	httpClient     *http.Client
	largeThreshold int
	presence       interface{}
	dialer         Dialer
	decoder        FrameDecoder
	log            zerolog.Logger
	limiter        *ratelimit.Limiter
}

// Builder assembles a Cluster's configuration. Every method returns the
// Builder for chaining; validation happens once, at Build.
type Builder struct {
	cfg config
}

// NewBuilder starts a Builder with the defaults spec §4.2 names: an
// in-process identify queue admitting one shard per 5 seconds and a large
// threshold of 50.
func NewBuilder() *Builder {
	return &Builder{cfg: config{
		queue:          defaultQueue(),
		largeThreshold: 50,
		httpClient:     http.DefaultClient,
		dialer:         DefaultDialer,
		decoder:        ZlibFrameDecoder{},
		log:            zerolog.Nop(),
		limiter:        ratelimit.New(),
	}}
}

func (b *Builder) Token(token string) *Builder { b.cfg.token = token; return b }

func (b *Builder) Intents(intents gatewayevent.Intent) *Builder {
	b.cfg.intents = intents
	return b
}

func (b *Builder) Scheme(scheme ShardScheme) *Builder { b.cfg.scheme = scheme; return b }

func (b *Builder) Queue(q IdentifyQueue) *Builder {
	b.cfg.queue = q
	b.cfg.queueExplicit = true
	return b
}

func (b *Builder) ResumeSessions(m map[int]ResumeData) *Builder {
	b.cfg.resumeSessions = m
	return b
}

func (b *Builder) GatewayURL(url string) *Builder { b.cfg.gatewayURL = url; return b }

func (b *Builder) HTTPClient(c *http.Client) *Builder { b.cfg.httpClient = c; return b }

func (b *Builder) LargeThreshold(n int) *Builder { b.cfg.largeThreshold = n; return b }

func (b *Builder) Presence(p interface{}) *Builder { b.cfg.presence = p; return b }

func (b *Builder) Logger(log zerolog.Logger) *Builder { b.cfg.log = log; return b }

// Dialer overrides the default nhooyr.io/websocket dialer, primarily for
// tests that want to substitute an in-memory Conn.
func (b *Builder) Dialer(d Dialer) *Builder { b.cfg.dialer = d; return b }

func (b *Builder) FrameDecoder(d FrameDecoder) *Builder { b.cfg.decoder = d; return b }

// Limiter overrides the rate limiter the cluster's gateway-discovery REST
// calls ticket through. A caller building a fuller REST surface atop this
// cluster should share that same Limiter here rather than letting the
// cluster keep its own private one.
func (b *Builder) Limiter(l *ratelimit.Limiter) *Builder { b.cfg.limiter = l; return b }

// Cluster owns a contiguous shard range and fans their decoded events into
// a single consumer stream. Grounded on gateway/manager.go's Manager and
// gateway/shard_group.go's ShardGroup.
type Cluster struct {
	shards []*shard
	events chan ShardEvent

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Build resolves the gateway URL if unset, constructs one shard per id in
// the configured range, and starts them concurrently. It returns a
// KindConfig error for an out-of-range large threshold or an invalid shard
// range, and a KindStartup error for a failed gateway discovery call.
// Errors from the shards themselves (connects, reconnects) happen after
// Build has returned and are never surfaced.
func (b *Builder) Build(ctx context.Context) (*Cluster, error) {
	cfg := b.cfg

	if cfg.largeThreshold < 50 || cfg.largeThreshold > 250 {
		return nil, errs.New(errs.KindConfig, "cluster.Build",
			fmt.Errorf("large_threshold %d out of range [50,250]", cfg.largeThreshold))
	}

	from, to, total := cfg.scheme.from, cfg.scheme.to, cfg.scheme.total
	if cfg.scheme.auto {
		disc := httpdiscord.New(cfg.token, cfg.httpClient, cfg.limiter)
		resp, err := disc.GatewayBot(ctx)
		if err != nil {
			return nil, err // already an *errs.Error with KindStartup
		}
		if cfg.gatewayURL == "" {
			cfg.gatewayURL = resp.URL
		}
		from, to, total = 0, resp.Shards-1, resp.Shards
		applyMaxConcurrency(&cfg, resp.SessionStartLimit.MaxConcurrency)
	} else if !(from <= to && to < total) {
		return nil, errs.New(errs.KindConfig, "cluster.Build",
			fmt.Errorf("shard range [%d,%d] invalid for total %d", from, to, total))
	}

	if cfg.gatewayURL == "" {
		disc := httpdiscord.New(cfg.token, cfg.httpClient, cfg.limiter)
		resp, err := disc.GatewayBot(ctx)
		if err != nil {
			return nil, err
		}
		cfg.gatewayURL = resp.URL
		applyMaxConcurrency(&cfg, resp.SessionStartLimit.MaxConcurrency)
	}

	runCtx, cancel := context.WithCancel(ctx)
	events := make(chan ShardEvent, 64)

	cl := &Cluster{shards: make([]*shard, 0, to-from+1), events: events, cancel: cancel}
	for id := from; id <= to; id++ {
		var resume *ResumeData
		if r, ok := cfg.resumeSessions[id]; ok {
			resume = &r
		}
		s := newShard(id, total, &cfg, resume, events)
		cl.shards = append(cl.shards, s)
	}

	for _, s := range cl.shards {
		s := s
		cl.wg.Add(1)
		go func() {
			defer cl.wg.Done()
			s.run(runCtx)
		}()
	}

	go func() {
		cl.wg.Wait()
		close(events)
	}()

	return cl, nil
}

// Events returns the cluster's fan-in stream: one (shard id, event) pair
// per dispatched envelope, in per-shard arrival order with no cross-shard
// ordering guarantee (spec §4.2's "Event fan-in").
func (cl *Cluster) Events() <-chan ShardEvent { return cl.events }

// Close cancels every shard's context, ending their connect/drive loops.
// Dropping a Cluster without calling Close leaks its shard goroutines:
// Close (or cancelling the context passed to Build) is what stops them.
func (cl *Cluster) Close() {
	cl.cancel()
	cl.wg.Wait()
}

// ShardCount returns the number of shards this cluster owns (its local
// range, not the platform's global total).
func (cl *Cluster) ShardCount() int { return len(cl.shards) }

func defaultQueue() IdentifyQueue {
	return queue.NewInProcess(0, 0)
}

// applyMaxConcurrency re-tunes the default in-process identify queue to the
// platform's advertised session_start_limit.max_concurrency, the same value
// the teacher uses to compute `shardID % m.Gateway.SessionStartLimit.MaxConcurrency`.
// A caller-supplied queue (via Builder.Queue) is never overridden.
func applyMaxConcurrency(cfg *config, maxConcurrency int) {
	if cfg.queueExplicit || maxConcurrency <= 0 {
		return
	}
	cfg.queue = queue.NewInProcess(5*time.Second, maxConcurrency)
}
