package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentas-backend/internal/domain"
)

// OrganizationRepository reads and writes the notification profile slice of
// the organizations table. The rest of the organization record belongs to
// the CRUD layer.
type OrganizationRepository interface {
	GetProfile(ctx context.Context, orgID uuid.UUID) (*domain.OrgNotificationProfile, error)
	ListNotificationEnabled(ctx context.Context) ([]domain.OrgNotificationProfile, error)
	UpdateSettings(ctx context.Context, orgID uuid.UUID, enabled bool, channel domain.NotificationChannel, adminNotifications bool) error
	// ResetMonthlyCounter zeroes the counter if the last reset happened
	// before the month containing `today`. The month guard makes repeated
	// invocations on the same day a no-op.
	ResetMonthlyCounter(ctx context.Context, orgID uuid.UUID, today time.Time) (bool, error)
}

const profileColumns = `
	id AS organization_id, name, admin_email, notification_enabled,
	notification_channel, notifications_sent_this_month, notification_limit,
	last_notification_reset, admin_notifications`

type organizationRepository struct {
	db *sqlx.DB
}

func NewOrganizationRepository(db *sqlx.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetProfile(ctx context.Context, orgID uuid.UUID) (*domain.OrgNotificationProfile, error) {
	var profile domain.OrgNotificationProfile
	err := r.db.GetContext(ctx, &profile,
		`SELECT `+profileColumns+` FROM organizations WHERE id = $1`, orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *organizationRepository) ListNotificationEnabled(ctx context.Context) ([]domain.OrgNotificationProfile, error) {
	var profiles []domain.OrgNotificationProfile
	err := r.db.SelectContext(ctx, &profiles,
		`SELECT `+profileColumns+` FROM organizations WHERE notification_enabled = true ORDER BY name`)
	return profiles, err
}

func (r *organizationRepository) UpdateSettings(ctx context.Context, orgID uuid.UUID, enabled bool, channel domain.NotificationChannel, adminNotifications bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organizations
		SET notification_enabled = $2, notification_channel = $3, admin_notifications = $4
		WHERE id = $1`,
		orgID, enabled, channel, adminNotifications,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

func (r *organizationRepository) ResetMonthlyCounter(ctx context.Context, orgID uuid.UUID, today time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organizations
		SET notifications_sent_this_month = 0, last_notification_reset = $2
		WHERE id = $1
		  AND (last_notification_reset IS NULL
		       OR date_trunc('month', last_notification_reset) < date_trunc('month', $2::timestamptz))`,
		orgID, today,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}
