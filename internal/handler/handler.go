package handler

import (
	"go.uber.org/zap"

	"rentas-backend/internal/service"
)

type Handlers struct {
	Notification *NotificationHandler
	Webhook      *WebhookHandler
}

func NewHandlers(services *service.Services, log *zap.Logger) *Handlers {
	return &Handlers{
		Notification: NewNotificationHandler(services.Settings, services.Stats, services.Dispatch),
		Webhook:      NewWebhookHandler(services.Webhook, log),
	}
}
