package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentas-backend/internal/domain"
)

type OrganizationRepository struct {
	mock.Mock
}

func (m *OrganizationRepository) GetProfile(ctx context.Context, orgID uuid.UUID) (*domain.OrgNotificationProfile, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgNotificationProfile), args.Error(1)
}

func (m *OrganizationRepository) ListNotificationEnabled(ctx context.Context) ([]domain.OrgNotificationProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrgNotificationProfile), args.Error(1)
}

func (m *OrganizationRepository) UpdateSettings(ctx context.Context, orgID uuid.UUID, enabled bool, channel domain.NotificationChannel, adminNotifications bool) error {
	args := m.Called(ctx, orgID, enabled, channel, adminNotifications)
	return args.Error(0)
}

func (m *OrganizationRepository) ResetMonthlyCounter(ctx context.Context, orgID uuid.UUID, today time.Time) (bool, error) {
	args := m.Called(ctx, orgID, today)
	return args.Bool(0), args.Error(1)
}
