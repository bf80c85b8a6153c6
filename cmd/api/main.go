package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rentas-backend/internal/config"
	"rentas-backend/internal/handler"
	"rentas-backend/internal/middleware"
	zaplogger "rentas-backend/internal/pkg/logger"
	"rentas-backend/internal/provider"
	"rentas-backend/internal/repository"
	"rentas-backend/internal/scheduler"
	"rentas-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	zlog := zaplogger.New(cfg.Environment)
	defer zlog.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		zlog.Warn("failed to connect to Redis, stats caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	providers, err := buildProviders(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize messaging providers", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, providers, redisClient, cfg, zlog)
	handlers := handler.NewHandlers(services, zlog)

	jobs := scheduler.New(zlog)
	if err := jobs.Register("reminder-scan", cfg.ReminderCron, services.Reminder.Run); err != nil {
		zlog.Fatal("invalid reminder cron expression", zap.Error(err))
	}
	if err := jobs.Register("retry-sweep", cfg.RetryCron, services.Retry.Run); err != nil {
		zlog.Fatal("invalid retry cron expression", zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg)

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

// buildProviders wires the channel-to-provider mapping once at startup.
// WhatsApp always rides Twilio; SMS_PROVIDER picks the SMS backend.
func buildProviders(cfg *config.Config, zlog *zap.Logger) (*provider.Registry, error) {
	twilioProvider := provider.NewTwilioProvider(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioSMSFrom,
		cfg.TwilioWhatsAppFrom,
	)

	var sms provider.Provider = twilioProvider
	if cfg.SMSProvider == "sns" {
		snsProvider, err := provider.NewSNSProvider(context.Background(), cfg.AWSRegion, cfg.SNSSenderID)
		if err != nil {
			return nil, err
		}
		sms = snsProvider
	}

	if !sms.IsConfigured() {
		zlog.Warn("sms provider is not configured, sends will fail until credentials are set",
			zap.String("provider", sms.Name()))
	}
	if !twilioProvider.IsConfigured() {
		zlog.Warn("whatsapp provider is not configured, sends will fail until credentials are set",
			zap.String("provider", twilioProvider.Name()))
	}

	return provider.NewRegistry(sms, twilioProvider), nil
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Provider callbacks are unauthenticated by nature; they always get a
	// success response.
	webhooks := v1.Group("/webhooks")
	webhooks.Post("/twilio", h.Webhook.Twilio)
	webhooks.Post("/sns", h.Webhook.SNS)

	protected := v1.Group("", middleware.AuthRequired(cfg.JWTSecret))

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/settings", h.Notification.GetSettings)
	notifications.Put("/settings", h.Notification.UpdateSettings)
	notifications.Get("/stats", h.Notification.GetStats)
	notifications.Post("/test", h.Notification.SendTest)
}
