package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentas-backend/internal/domain"
)

type BillingRepository struct {
	mock.Mock
}

func (m *BillingRepository) ListPaymentsDueOn(ctx context.Context, orgID uuid.UUID, date time.Time) ([]domain.PaymentDue, error) {
	args := m.Called(ctx, orgID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentDue), args.Error(1)
}

func (m *BillingRepository) ListOverduePayments(ctx context.Context, orgID uuid.UUID, asOf time.Time) ([]domain.PaymentDue, error) {
	args := m.Called(ctx, orgID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentDue), args.Error(1)
}

func (m *BillingRepository) ListExpiringContracts(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]domain.ExpiringContract, error) {
	args := m.Called(ctx, orgID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpiringContract), args.Error(1)
}
