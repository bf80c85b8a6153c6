package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentas-backend/internal/domain"
)

type QuotaService struct {
	mock.Mock
}

func (m *QuotaService) Remaining(profile *domain.OrgNotificationProfile) int {
	args := m.Called(profile)
	return args.Int(0)
}

func (m *QuotaService) ConsumeAndCreate(ctx context.Context, profile *domain.OrgNotificationProfile, n *domain.Notification) error {
	args := m.Called(ctx, profile, n)
	return args.Error(0)
}

func (m *QuotaService) ResetIfDue(ctx context.Context, profile *domain.OrgNotificationProfile, today time.Time) error {
	args := m.Called(ctx, profile, today)
	return args.Error(0)
}
