package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret string

	CORSOrigins string

	// Provider credentials. A provider left without credentials stays
	// registered but reports itself as not configured.
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioSMSFrom      string
	TwilioWhatsAppFrom string

	AWSRegion   string
	SNSSenderID string

	// SMSProvider selects which backend carries plain SMS: "twilio" or
	// "sns". WhatsApp always goes through Twilio.
	SMSProvider string

	ResendAPIKey string
	FromEmail    string

	ReminderCron      string
	RetryCron         string
	ExpiryHorizonDays int
	MaxRetries        int
	RetryStaleAfter   time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioSMSFrom:      getEnv("TWILIO_SMS_FROM", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),

		AWSRegion:   getEnv("AWS_REGION", ""),
		SNSSenderID: getEnv("SNS_SENDER_ID", ""),

		SMSProvider: getEnv("SMS_PROVIDER", "twilio"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),

		ReminderCron:      getEnv("REMINDER_CRON", "0 8 * * *"),
		RetryCron:         getEnv("RETRY_CRON", "0 * * * *"),
		ExpiryHorizonDays: getIntEnv("EXPIRY_HORIZON_DAYS", 30),
		MaxRetries:        getIntEnv("MAX_RETRIES", 3),
		RetryStaleAfter:   getDurationEnv("RETRY_STALE_AFTER", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
