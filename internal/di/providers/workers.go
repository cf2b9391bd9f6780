package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/mylists/mylists-server/internal/logger"
	"github.com/mylists/mylists-server/internal/service"
)

// sessionCleanupInterval is how often expired sessions are purged.
const sessionCleanupInterval = time.Hour

// SessionCleanupJob runs periodic session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	<-j.done
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())
	job := &SessionCleanupJob{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(job.done)

		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()

		// The service logs how many sessions were removed.
		cleanup := func() {
			if _, err := sessionService.DeleteExpiredSessions(ctx); err != nil && ctx.Err() == nil {
				log.Warn("Session cleanup failed", "error", err)
			}
		}

		cleanup()
		for {
			select {
			case <-ticker.C:
				cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Session cleanup job started", "interval", sessionCleanupInterval)

	return job, nil
}
