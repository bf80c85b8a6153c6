package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	StatusPending   NotificationStatus = "PENDING"
	StatusSent      NotificationStatus = "SENT"
	StatusDelivered NotificationStatus = "DELIVERED"
	StatusFailed    NotificationStatus = "FAILED"
)

// IsTerminal reports whether the status may never change again.
func (s NotificationStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

type NotificationChannel string

const (
	ChannelSMS      NotificationChannel = "SMS"
	ChannelWhatsApp NotificationChannel = "WHATSAPP"
	ChannelEmail    NotificationChannel = "EMAIL"
	// ChannelBoth is valid only on the organization profile, never on a
	// notification row.
	ChannelBoth NotificationChannel = "BOTH"
)

func (c NotificationChannel) ValidForSend() bool {
	return c == ChannelSMS || c == ChannelWhatsApp
}

type NotificationType string

const (
	NotifPaymentReminder  NotificationType = "PAYMENT_REMINDER"
	NotifContractExpiry   NotificationType = "CONTRACT_EXPIRY"
	NotifMaintenanceAlert NotificationType = "MAINTENANCE_ALERT"
	NotifTest             NotificationType = "TEST"
)

type RecipientType string

const (
	RecipientTenant RecipientType = "TENANT"
	RecipientUser   RecipientType = "USER"
)

// Notification is one outbound message attempt. Rows are never deleted;
// they are the permanent audit trail of attempted communication.
type Notification struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	OrganizationID uuid.UUID     `json:"organization_id" db:"organization_id"`
	RecipientType  RecipientType `json:"recipient_type" db:"recipient_type"`
	RecipientID    *uuid.UUID    `json:"recipient_id,omitempty" db:"recipient_id"`
	RecipientPhone string        `json:"recipient_phone" db:"recipient_phone"`

	Type    NotificationType `json:"type" db:"type"`
	Title   string           `json:"title" db:"title"`
	Message string           `json:"message" db:"message"`

	Channel           NotificationChannel `json:"channel" db:"channel"`
	Status            NotificationStatus  `json:"status" db:"status"`
	ProviderMessageID *string             `json:"provider_message_id,omitempty" db:"provider_message_id"`
	ErrorMessage      *string             `json:"error_message,omitempty" db:"error_message"`

	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	SentAt      *time.Time `json:"sent_at,omitempty" db:"sent_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty" db:"delivered_at"`
	LastRetryAt *time.Time `json:"last_retry_at,omitempty" db:"last_retry_at"`
	RetryCount  int        `json:"retry_count" db:"retry_count"`

	// Correlation back to the business event that triggered the message.
	// Used for idempotent re-scan and for webhook reconciliation.
	ContractID *uuid.UUID `json:"contract_id,omitempty" db:"contract_id"`
	PaymentID  *uuid.UUID `json:"payment_id,omitempty" db:"payment_id"`

	CreatedBy *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
}

// DailyCount is one bucket of the 30-day notification time series.
type DailyCount struct {
	Date      time.Time `json:"date" db:"date"`
	Total     int64     `json:"total" db:"total"`
	Delivered int64     `json:"delivered" db:"delivered"`
	Failed    int64     `json:"failed" db:"failed"`
}
