package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Notification NotificationRepository
	Organization OrganizationRepository
	Billing      BillingRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Notification: NewNotificationRepository(db),
		Organization: NewOrganizationRepository(db),
		Billing:      NewBillingRepository(db),
	}
}
