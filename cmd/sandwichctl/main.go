// Command sandwichctl is a thin example wrapper around the cache, cluster,
// and ratelimit packages: it connects a cluster, feeds every dispatched
// event into a cache, and exits on SIGINT/SIGTERM. It is not part of the
// core library — grounded on the root main.go's flag/signal-handling shape,
// trimmed to the three subsystems this module actually owns.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sandwich-go/corrivalry/config"
	"github.com/sandwich-go/corrivalry/gatewayevent"
	corrlog "github.com/sandwich-go/corrivalry/internal/log"
)

func main() {
	token := flag.String("token", "", "bot token (falls back to $DISCORD_TOKEN)")
	flag.Parse()

	_ = godotenv.Load() // local developer convenience; absence is not an error

	if *token == "" {
		*token = os.Getenv("DISCORD_TOKEN")
	}

	zlog := corrlog.New(zerolog.InfoLevel)
	if *token == "" {
		zlog.Fatal().Msg("no token provided: pass -token or set DISCORD_TOKEN")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New().
		Token(*token).
		Intents(gatewayevent.IntentGuilds | gatewayevent.IntentGuildMessages).
		Logger(zlog)

	ch := cfg.NewCache()
	// cfg.NewLimiter() returns the same Limiter the cluster's gateway
	// discovery call already ticket through; a fuller bot would ticket
	// its own REST calls through it here too.
	_ = cfg.NewLimiter()

	cl, err := cfg.ClusterBuilder().Build(ctx)
	if err != nil {
		zlog.Fatal().Err(err).Msg("cluster failed to start")
	}
	defer cl.Close()

	go func() {
		for ev := range cl.Events() {
			ch.Apply(ev.Event)
		}
	}()

	zlog.Info().Int("shards", cl.ShardCount()).Msg("cluster started, ^C to stop")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	zlog.Info().Msg("shutting down")
}
