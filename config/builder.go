// Package config is the top-level configuration surface a caller uses to
// build the three core subsystems together: a Cache, a cluster.Builder,
// and a ratelimit.Limiter sharing one zerolog.Logger. Grounded on
// gateway/manager.go's Configuration struct-literal construction and
// original_source/gateway/src/cluster/builder.rs's builder-method pattern.
package config

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/sandwich-go/corrivalry/cache"
	"github.com/sandwich-go/corrivalry/cluster"
	"github.com/sandwich-go/corrivalry/gatewayevent"
	"github.com/sandwich-go/corrivalry/ratelimit"
)

// Config is the builder-style surface spec §6's "Configuration surface"
// lists: token, intents, shard_scheme, queue, resume_sessions,
// gateway_url, http_client, large_threshold, presence, event_types,
// message_cache_size.
type Config struct {
	token          string
	intents        gatewayevent.Intent
	scheme         cluster.ShardScheme
	queue          cluster.IdentifyQueue
	resumeSessions map[int]cluster.ResumeData
	gatewayURL     string
	httpClient     *http.Client
	largeThreshold int
	presence       interface{}
	eventTypes     cache.EventTypeSet
	messageCacheSize int
	log            zerolog.Logger
	limiter        *ratelimit.Limiter
}

// New starts a Config with large threshold 50 and a fresh
// ratelimit.Limiter shared by every REST call the configured cluster
// makes, the same as cluster.NewBuilder, plus Config's own defaults: the
// Auto shard scheme, every cache event type enabled, and a message cache
// size of 1.
func New() *Config {
	return &Config{
		scheme:           cluster.AutoScheme(),
		largeThreshold:   50,
		eventTypes:       cache.EventTypeAll,
		messageCacheSize: 1,
		log:              zerolog.Nop(),
		limiter:          ratelimit.New(),
	}
}

func (c *Config) Token(token string) *Config { c.token = token; return c }

func (c *Config) Intents(intents gatewayevent.Intent) *Config { c.intents = intents; return c }

func (c *Config) Scheme(scheme cluster.ShardScheme) *Config { c.scheme = scheme; return c }

func (c *Config) Queue(q cluster.IdentifyQueue) *Config { c.queue = q; return c }

func (c *Config) ResumeSessions(m map[int]cluster.ResumeData) *Config {
	c.resumeSessions = m
	return c
}

func (c *Config) GatewayURL(url string) *Config { c.gatewayURL = url; return c }

func (c *Config) HTTPClient(h *http.Client) *Config { c.httpClient = h; return c }

func (c *Config) LargeThreshold(n int) *Config { c.largeThreshold = n; return c }

func (c *Config) Presence(p interface{}) *Config { c.presence = p; return c }

func (c *Config) EventTypes(types cache.EventTypeSet) *Config { c.eventTypes = types; return c }

func (c *Config) MessageCacheSize(n int) *Config { c.messageCacheSize = n; return c }

func (c *Config) Logger(log zerolog.Logger) *Config { c.log = log; return c }

// Limiter overrides the ratelimit.Limiter shared by the configured
// cluster's REST calls. Replace it when a caller builds a fuller REST
// surface atop this module and wants every route ticketed through one
// shared registry of buckets.
func (c *Config) Limiter(l *ratelimit.Limiter) *Config { c.limiter = l; return c }

// NewLimiter returns the Limiter half of the configuration, so a caller's
// own REST calls can ticket through the same bucket registry the cluster
// uses for gateway discovery.
func (c *Config) NewLimiter() *ratelimit.Limiter { return c.limiter }

// NewCache builds the Cache half of the configuration.
func (c *Config) NewCache() *cache.Cache {
	return cache.New(cache.Config{
		EventTypes:       c.eventTypes,
		MessageCacheSize: c.messageCacheSize,
	})
}

// ClusterBuilder returns the cluster.Builder half of the configuration,
// ready for a final Build(ctx) call. Kept as a separate step (rather than
// building the Cluster here) so callers can still override a field
// cluster.Builder exposes but Config doesn't forward.
func (c *Config) ClusterBuilder() *cluster.Builder {
	b := cluster.NewBuilder().
		Token(c.token).
		Intents(c.intents).
		Scheme(c.scheme).
		LargeThreshold(c.largeThreshold).
		Presence(c.presence).
		Logger(c.log).
		Limiter(c.limiter)
	if c.queue != nil {
		b = b.Queue(c.queue)
	}
	if c.resumeSessions != nil {
		b = b.ResumeSessions(c.resumeSessions)
	}
	if c.gatewayURL != "" {
		b = b.GatewayURL(c.gatewayURL)
	}
	if c.httpClient != nil {
		b = b.HTTPClient(c.httpClient)
	}
	return b
}
