package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"comment-insights-service/config"
	"comment-insights-service/session"
)

func TestJanitorEvictsIdleSessions(t *testing.T) {
	store := session.NewStore()
	store.GetOrCreate("")
	assert.Equal(t, 1, store.Len())

	cfg := &config.Config{
		SessionTTL:   time.Millisecond,
		SessionSweep: 5 * time.Millisecond,
	}

	j := NewJanitor(cfg, store)
	j.Start(context.Background())
	defer j.Stop()

	assert.Eventually(t, func() bool { return store.Len() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestJanitorStopEndsSweeping(t *testing.T) {
	store := session.NewStore()
	cfg := &config.Config{
		SessionTTL:   time.Nanosecond,
		SessionSweep: time.Millisecond,
	}

	j := NewJanitor(cfg, store)
	j.Start(context.Background())
	j.Stop()

	// Give the sweep goroutine time to observe the cancellation.
	time.Sleep(20 * time.Millisecond)

	// A session created after Stop must survive well past the TTL window.
	store.GetOrCreate("")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, store.Len())
}
