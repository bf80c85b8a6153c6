package quota

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/repository"
)

// Service gates sends against the organization's monthly budget and resets
// that budget on the calendar boundary. The consume path and the PENDING
// row creation share one transaction so a crash between them cannot lose
// accounting.
type Service interface {
	Remaining(profile *domain.OrgNotificationProfile) int
	ConsumeAndCreate(ctx context.Context, profile *domain.OrgNotificationProfile, n *domain.Notification) error
	ResetIfDue(ctx context.Context, profile *domain.OrgNotificationProfile, today time.Time) error
}

type service struct {
	notifRepo repository.NotificationRepository
	orgRepo   repository.OrganizationRepository
	log       *zap.Logger
}

func NewService(notifRepo repository.NotificationRepository, orgRepo repository.OrganizationRepository, log *zap.Logger) Service {
	return &service{
		notifRepo: notifRepo,
		orgRepo:   orgRepo,
		log:       log,
	}
}

func (s *service) Remaining(profile *domain.OrgNotificationProfile) int {
	if profile.Unlimited() {
		return domain.UnlimitedQuota
	}
	remaining := profile.NotificationLimit - profile.NotificationsSentThisMonth
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *service) ConsumeAndCreate(ctx context.Context, profile *domain.OrgNotificationProfile, n *domain.Notification) error {
	if err := s.notifRepo.CreateConsumingQuota(ctx, n); err != nil {
		return err
	}
	// Keep the in-memory profile in step with the committed counter so a
	// batch run sees its own consumption.
	profile.NotificationsSentThisMonth++
	return nil
}

func (s *service) ResetIfDue(ctx context.Context, profile *domain.OrgNotificationProfile, today time.Time) error {
	if today.Day() != 1 {
		return nil
	}
	if profile.LastNotificationReset != nil &&
		profile.LastNotificationReset.Year() == today.Year() &&
		profile.LastNotificationReset.Month() == today.Month() {
		return nil
	}

	reset, err := s.orgRepo.ResetMonthlyCounter(ctx, profile.OrganizationID, today)
	if err != nil {
		return err
	}
	if reset {
		s.log.Info("monthly notification counter reset",
			zap.String("organization_id", profile.OrganizationID.String()))
		profile.NotificationsSentThisMonth = 0
		profile.LastNotificationReset = &today
	}
	return nil
}
