package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentas-backend/internal/service/email"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendReminderDigest(ctx context.Context, toEmail string, data email.DigestData) error {
	args := m.Called(ctx, toEmail, data)
	return args.Error(0)
}
