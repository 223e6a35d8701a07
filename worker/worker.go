package worker

import (
	"context"
	"log"
	"time"

	"comment-insights-service/config"
	"comment-insights-service/session"
)

// Janitor sweeps idle sessions in the background so abandoned browser
// state does not pile up in memory.
type Janitor struct {
	config     *config.Config
	store      *session.Store
	cancelFunc context.CancelFunc
}

func NewJanitor(cfg *config.Config, store *session.Store) *Janitor {
	return &Janitor{config: cfg, store: store}
}

func (j *Janitor) Start(ctx context.Context) {
	log.Println("Starting session janitor...")

	janitorCtx, cancel := context.WithCancel(ctx)
	j.cancelFunc = cancel

	go j.run(janitorCtx)
}

func (j *Janitor) Stop() {
	log.Println("Stopping session janitor...")
	if j.cancelFunc != nil {
		j.cancelFunc()
	}
}

func (j *Janitor) run(ctx context.Context) {
	log.Printf("Session janitor sweeping every %s (TTL %s)", j.config.SessionSweep, j.config.SessionTTL)

	ticker := time.NewTicker(j.config.SessionSweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session janitor stopped")
			return
		case <-ticker.C:
			j.store.EvictIdle(j.config.SessionTTL)
		}
	}
}
