package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentas-backend/internal/domain"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepository) CreateConsumingQuota(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationRepository) GetByProviderMessageID(ctx context.Context, providerMessageID string) (*domain.Notification, error) {
	args := m.Called(ctx, providerMessageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, providerMessageID string, sentAt time.Time) (bool, error) {
	args := m.Called(ctx, id, providerMessageID, sentAt)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) ConfirmSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (bool, error) {
	args := m.Called(ctx, id, sentAt)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) (bool, error) {
	args := m.Called(ctx, id, deliveredAt)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) (bool, error) {
	args := m.Called(ctx, id, errorMessage)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) MarkRetry(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) RecordError(ctx context.Context, id uuid.UUID, errorMessage string) (bool, error) {
	args := m.Called(ctx, id, errorMessage)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) ListStale(ctx context.Context, olderThan time.Time) ([]domain.Notification, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepository) ExistsForPayment(ctx context.Context, paymentID uuid.UUID, notifType domain.NotificationType, since time.Time) (bool, error) {
	args := m.Called(ctx, paymentID, notifType, since)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) ExistsForContract(ctx context.Context, contractID uuid.UUID, notifType domain.NotificationType, since time.Time) (bool, error) {
	args := m.Called(ctx, contractID, notifType, since)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, orgID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *NotificationRepository) ListRecent(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, orgID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[domain.NotificationStatus]int64, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.NotificationStatus]int64), args.Error(1)
}

func (m *NotificationRepository) DailyCounts(ctx context.Context, orgID uuid.UUID, since time.Time) ([]domain.DailyCount, error) {
	args := m.Called(ctx, orgID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyCount), args.Error(1)
}
