package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Provider struct {
	mock.Mock
}

func (m *Provider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Provider) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *Provider) SupportsWhatsApp() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *Provider) SendSMS(ctx context.Context, phone, message string) (string, error) {
	args := m.Called(ctx, phone, message)
	return args.String(0), args.Error(1)
}

func (m *Provider) SendWhatsApp(ctx context.Context, phone, message string) (string, error) {
	args := m.Called(ctx, phone, message)
	return args.String(0), args.Error(1)
}
