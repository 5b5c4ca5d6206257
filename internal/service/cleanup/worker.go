package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
}

func NewWorker(sm *game.SessionManager, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{SessionManager: sm, Interval: interval}
}

// Start runs a cleanup pass right away and then on every tick until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.runCleanup()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.runCleanup()
			case <-ctx.Done():
				log.Println("[CLEANUP] Background worker stopped")
				return
			}
		}
	}()
	log.Printf("[CLEANUP] Background worker started (every %s)", w.Interval)
}

func (w *Worker) runCleanup() int {
	removed := w.SessionManager.CleanupOldSessions()
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d expired game sessions", removed)
	}
	return removed
}
