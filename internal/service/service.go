package service

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rentas-backend/internal/config"
	"rentas-backend/internal/provider"
	"rentas-backend/internal/repository"
	"rentas-backend/internal/service/dispatch"
	"rentas-backend/internal/service/email"
	"rentas-backend/internal/service/quota"
	"rentas-backend/internal/service/reminder"
	"rentas-backend/internal/service/retry"
	"rentas-backend/internal/service/settings"
	"rentas-backend/internal/service/stats"
	"rentas-backend/internal/service/webhook"
)

type Services struct {
	Quota    quota.Service
	Dispatch dispatch.Service
	Reminder reminder.Service
	Retry    retry.Service
	Webhook  webhook.Service
	Stats    stats.Service
	Settings settings.Service
	Email    email.Service
}

func NewServices(repos *repository.Repositories, providers *provider.Registry, redisClient *redis.Client, cfg *config.Config, log *zap.Logger) *Services {
	emailService := email.NewService(cfg)
	quotaService := quota.NewService(repos.Notification, repos.Organization, log)
	dispatchService := dispatch.NewService(repos.Notification, repos.Organization, quotaService, providers, log)
	reminderService := reminder.NewService(
		repos.Organization,
		repos.Billing,
		repos.Notification,
		quotaService,
		dispatchService,
		emailService,
		cfg.ExpiryHorizonDays,
		log,
	)
	retryService := retry.NewService(repos.Notification, dispatchService, cfg.MaxRetries, cfg.RetryStaleAfter, log)
	webhookService := webhook.NewService(repos.Notification, log)
	statsService := stats.NewService(repos.Notification, repos.Organization, redisClient)
	settingsService := settings.NewService(repos.Organization)

	return &Services{
		Quota:    quotaService,
		Dispatch: dispatchService,
		Reminder: reminderService,
		Retry:    retryService,
		Webhook:  webhookService,
		Stats:    statsService,
		Settings: settingsService,
		Email:    emailService,
	}
}
