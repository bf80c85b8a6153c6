package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/repository"
)

type UpdateInput struct {
	NotificationEnabled bool                       `json:"notification_enabled"`
	NotificationChannel domain.NotificationChannel `json:"notification_channel"`
	AdminNotifications  bool                       `json:"admin_notifications"`
}

// Service exposes the organization's notification configuration to the CRUD
// layer. The monthly counter and limit are read-only here; only the quota
// manager mutates them.
type Service interface {
	Get(ctx context.Context, orgID uuid.UUID) (*domain.OrgNotificationProfile, error)
	Update(ctx context.Context, orgID uuid.UUID, input UpdateInput) (*domain.OrgNotificationProfile, error)
}

type service struct {
	orgRepo repository.OrganizationRepository
}

func NewService(orgRepo repository.OrganizationRepository) Service {
	return &service{orgRepo: orgRepo}
}

func (s *service) Get(ctx context.Context, orgID uuid.UUID) (*domain.OrgNotificationProfile, error) {
	return s.orgRepo.GetProfile(ctx, orgID)
}

func (s *service) Update(ctx context.Context, orgID uuid.UUID, input UpdateInput) (*domain.OrgNotificationProfile, error) {
	switch input.NotificationChannel {
	case domain.ChannelSMS, domain.ChannelWhatsApp, domain.ChannelBoth:
	default:
		return nil, fmt.Errorf("invalid notification channel: %s", input.NotificationChannel)
	}

	if err := s.orgRepo.UpdateSettings(ctx, orgID, input.NotificationEnabled, input.NotificationChannel, input.AdminNotifications); err != nil {
		return nil, err
	}
	return s.orgRepo.GetProfile(ctx, orgID)
}
