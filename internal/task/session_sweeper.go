package task

import (
	"context"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Finalizer ends one idle session and writes its final report. The sweeper
// provides the session pointer while holding the per-session lock.
type Finalizer func(ctx context.Context, s *session.Session)

// StartSessionSweeper starts the scheduled task that force-ends sessions with
// no activity inside the idle window. Ending through the finalizer means an
// abandoned session still gets its report and aggregate update.
func StartSessionSweeper(store session.Store, idle time.Duration, finalize Finalizer) *cron.Cron {
	c := cron.New()

	schedule := "*/1 * * * *"
	_, err := c.AddFunc(schedule, func() {
		sweepIdleSessions(store, idle, finalize)
	})
	if err != nil {
		logger.Error("Failed to add session sweeper cron job", zap.Error(err))
		return c
	}

	c.Start()
	logger.Info("Session sweeper started",
		zap.String("schedule", schedule),
		zap.Duration("idleWindow", idle),
	)
	return c
}

func sweepIdleSessions(store session.Store, idle time.Duration, finalize Finalizer) {
	cutoff := time.Now().UTC().Add(-idle)
	for _, s := range store.List() {
		if s.LastActivity().After(cutoff) {
			continue
		}
		id := s.ID

		unlock := store.Lock(id)
		// Re-check under the lock; the session may have ended in between
		live, ok := store.Get(id)
		if !ok || live.LastActivity().After(cutoff) {
			unlock()
			continue
		}

		logger.Info("Force-ending idle session",
			zap.String("sessionId", id),
			zap.Time("lastActivity", live.LastActivity()),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		finalize(ctx, live)
		cancel()
		unlock()
	}
}
