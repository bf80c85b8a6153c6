package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/service/dispatch"
)

type DispatchService struct {
	mock.Mock
}

func (m *DispatchService) Send(ctx context.Context, req dispatch.SendRequest) (*domain.Notification, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *DispatchService) SendTest(ctx context.Context, orgID uuid.UUID, phone string, channel domain.NotificationChannel, message string, createdBy *uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, orgID, phone, channel, message, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *DispatchService) Resend(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
