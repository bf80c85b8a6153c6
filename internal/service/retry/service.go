package retry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rentas-backend/internal/repository"
	"rentas-backend/internal/service/dispatch"
)

// Service is the hourly sweep over stalled notifications. It re-attempts
// rows that are still non-terminal past the staleness threshold and
// terminally fails the ones whose retries are exhausted. Every mutation is
// status-guarded, so a row the webhook reconciler already closed is left
// untouched.
type Service interface {
	Run(ctx context.Context) error
}

type service struct {
	notifRepo   repository.NotificationRepository
	dispatchSvc dispatch.Service
	maxRetries  int
	staleAfter  time.Duration
	log         *zap.Logger
}

func NewService(notifRepo repository.NotificationRepository, dispatchSvc dispatch.Service, maxRetries int, staleAfter time.Duration, log *zap.Logger) Service {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if staleAfter <= 0 {
		staleAfter = 24 * time.Hour
	}
	return &service{
		notifRepo:   notifRepo,
		dispatchSvc: dispatchSvc,
		maxRetries:  maxRetries,
		staleAfter:  staleAfter,
		log:         log,
	}
}

func (s *service) Run(ctx context.Context) error {
	now := time.Now().UTC()
	stale, err := s.notifRepo.ListStale(ctx, now.Add(-s.staleAfter))
	if err != nil {
		return fmt.Errorf("list stale notifications: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}
	s.log.Info("retry sweep started", zap.Int("stale", len(stale)))

	for i := range stale {
		n := &stale[i]

		if n.RetryCount >= s.maxRetries {
			if _, err := s.notifRepo.MarkFailed(ctx, n.ID, "max retries exceeded"); err != nil {
				s.log.Error("failed to terminally fail notification",
					zap.String("notification_id", n.ID.String()),
					zap.Error(err))
			}
			continue
		}

		// Claim the row before sending. Zero rows means the reconciler
		// closed it between the query and now; leave it alone.
		claimed, err := s.notifRepo.MarkRetry(ctx, n.ID, now)
		if err != nil {
			s.log.Error("failed to mark retry",
				zap.String("notification_id", n.ID.String()),
				zap.Error(err))
			continue
		}
		if !claimed {
			continue
		}
		n.RetryCount++
		n.LastRetryAt = &now

		if err := s.dispatchSvc.Resend(ctx, n); err != nil {
			s.log.Warn("retry attempt failed",
				zap.String("notification_id", n.ID.String()),
				zap.Int("retry_count", n.RetryCount),
				zap.Error(err))
		}
	}

	return nil
}
