package cluster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwich-go/corrivalry/cluster/queue"
	"github.com/sandwich-go/corrivalry/gatewayevent"
)

func TestBuildRejectsLargeThresholdOutOfRange(t *testing.T) {
	_, err := NewBuilder().
		Token("abc").
		Scheme(RangeScheme(0, 0, 1)).
		LargeThreshold(10).
		Build(context.Background())
	require.Error(t, err)
}

func TestBuildRejectsInvalidShardRange(t *testing.T) {
	_, err := NewBuilder().
		Token("abc").
		Scheme(RangeScheme(2, 1, 4)).
		Build(context.Background())
	require.Error(t, err)
}

func TestBuildRejectsRangeNotLessThanTotal(t *testing.T) {
	_, err := NewBuilder().
		Token("abc").
		Scheme(RangeScheme(0, 4, 4)).
		Build(context.Background())
	require.Error(t, err)
}

func TestApplyMaxConcurrencyRetunesDefaultQueue(t *testing.T) {
	cfg := config{queue: defaultQueue()}
	applyMaxConcurrency(&cfg, 16)
	inproc, ok := cfg.queue.(*queue.InProcess)
	require.True(t, ok)
	assert.Equal(t, 16, inproc.Concurrency())
}

func TestApplyMaxConcurrencyLeavesExplicitQueueAlone(t *testing.T) {
	custom := queue.NewInProcess(time.Second, 3)
	cfg := config{queue: custom, queueExplicit: true}
	applyMaxConcurrency(&cfg, 16)
	assert.Same(t, custom, cfg.queue)
}

func TestApplyMaxConcurrencyIgnoresNonPositiveValue(t *testing.T) {
	custom := queue.NewInProcess(time.Second, 3)
	cfg := config{queue: custom}
	applyMaxConcurrency(&cfg, 0)
	assert.Same(t, custom, cfg.queue)
}

func TestShardEventFanInPreservesPerShardOrder(t *testing.T) {
	// Exercises the fan-in channel shape directly (shard connect loops
	// are not driven here — that needs a live/mock gateway), confirming
	// multiple shards' events interleave onto one channel without losing
	// a shard's own arrival order.
	events := make(chan ShardEvent, 8)
	for i := 0; i < 4; i++ {
		events <- ShardEvent{ShardID: 0, Event: &gatewayevent.Envelope{Sequence: int64(i)}}
	}
	for i := 0; i < 4; i++ {
		events <- ShardEvent{ShardID: 1, Event: &gatewayevent.Envelope{Sequence: int64(i)}}
	}
	close(events)

	var shard0, shard1 []int64
	for ev := range events {
		switch ev.ShardID {
		case 0:
			shard0 = append(shard0, ev.Event.Sequence)
		case 1:
			shard1 = append(shard1, ev.Event.Sequence)
		}
	}
	assert.Equal(t, []int64{0, 1, 2, 3}, shard0)
	assert.Equal(t, []int64{0, 1, 2, 3}, shard1)
}
