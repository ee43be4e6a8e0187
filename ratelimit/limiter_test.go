package ratelimit

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketOrder_Invariant5(t *testing.T) {
	l := New()
	path := GetGuild(1)

	var (
		mu    sync.Mutex
		order []int
	)

	var wg sync.WaitGroup
	tickets := make([]*Ticket, 5)
	for i := 0; i < 5; i++ {
		tickets[i] = l.Ticket(path)
	}
	for i, tk := range tickets {
		wg.Add(1)
		go func(i int, tk *Ticket) {
			defer wg.Done()
			require.NoError(t, tk.Wait(context.Background()))
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			tk.Report(Headers{Outcome: OutcomeNone})
		}(i, tk)
	}
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestGlobalLatch_Invariant6_S7(t *testing.T) {
	l := New()

	tk1 := l.Ticket(GetGuild(1))
	tk2 := l.Ticket(GetGuild(2))

	require.NoError(t, tk1.Wait(context.Background()))
	start := time.Now()
	tk1.Report(Headers{Outcome: OutcomeGlobalLimited, Global: true, ResetAfterMS: 500})

	require.NoError(t, tk2.Wait(context.Background()))
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 500*time.Millisecond,
		"second ticket on a distinct path must not fire before the global cooldown elapses")
}

func TestHeaderParse_Invariant7(t *testing.T) {
	h := http.Header{}
	h.Set("x-ratelimit-bucket", "abcd")
	h.Set("x-ratelimit-limit", "5")
	h.Set("x-ratelimit-remaining", "4")
	h.Set("x-ratelimit-reset", "1470173023.123")
	h.Set("x-ratelimit-reset-after", "0.300")

	parsed, err := ParseHeaders(h)
	require.Nil(t, err)
	assert.Equal(t, OutcomePresent, parsed.Outcome)
	assert.Equal(t, int64(1470173023123), parsed.ResetMS)
	assert.Equal(t, int64(300), parsed.ResetAfterMS)
}

func TestHeaderParse_NoneWhenAbsent(t *testing.T) {
	parsed, err := ParseHeaders(http.Header{})
	require.Nil(t, err)
	assert.Equal(t, OutcomeNone, parsed.Outcome)
}

func TestHeaderParse_MalformedSiblingIsCategorisedError(t *testing.T) {
	h := http.Header{}
	h.Set("x-ratelimit-bucket", "abcd")
	h.Set("x-ratelimit-limit", "not-a-number")
	h.Set("x-ratelimit-remaining", "4")
	h.Set("x-ratelimit-reset", "1.0")
	h.Set("x-ratelimit-reset-after", "1.0")

	_, err := ParseHeaders(h)
	require.NotNil(t, err)
	assert.Equal(t, "x-ratelimit-limit", err.Header)
}
