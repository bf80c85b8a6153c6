package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnlimitedQuota disables the monthly cap; a limit of 0 disables sending.
const UnlimitedQuota = -1

// OrgNotificationProfile is the slice of the organization record this
// subsystem reads and writes. The rest of the organization (plan, billing,
// members) belongs to the CRUD layer.
type OrgNotificationProfile struct {
	OrganizationID             uuid.UUID           `json:"organization_id" db:"organization_id"`
	Name                       string              `json:"name" db:"name"`
	AdminEmail                 string              `json:"admin_email" db:"admin_email"`
	NotificationEnabled        bool                `json:"notification_enabled" db:"notification_enabled"`
	NotificationChannel        NotificationChannel `json:"notification_channel" db:"notification_channel"`
	NotificationsSentThisMonth int                 `json:"notifications_sent_this_month" db:"notifications_sent_this_month"`
	NotificationLimit          int                 `json:"notification_limit" db:"notification_limit"`
	LastNotificationReset      *time.Time          `json:"last_notification_reset,omitempty" db:"last_notification_reset"`
	AdminNotifications         bool                `json:"admin_notifications" db:"admin_notifications"`
}

func (p *OrgNotificationProfile) Unlimited() bool {
	return p.NotificationLimit == UnlimitedQuota
}
