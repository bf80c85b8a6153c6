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

// NotificationRepository owns the notifications table. Creation is
// append-only; status mutations are guarded by the expected pre-transition
// status so that the retry sweep, the webhook reconciler and the dispatch
// path can run concurrently without a global lock.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// CreateConsumingQuota increments the organization's monthly counter
	// and inserts the PENDING row in one transaction. Returns
	// domain.ErrQuotaExceeded without inserting when the budget is
	// exhausted.
	CreateConsumingQuota(ctx context.Context, n *domain.Notification) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	GetByProviderMessageID(ctx context.Context, providerMessageID string) (*domain.Notification, error)

	// MarkSent records provider acceptance. The provider message id and
	// sent_at are set only if not already set; the update applies only to
	// non-terminal rows.
	MarkSent(ctx context.Context, id uuid.UUID, providerMessageID string, sentAt time.Time) (bool, error)
	// ConfirmSent moves a PENDING row to SENT without a provider message
	// id, for webhook statuses that only confirm acceptance.
	ConfirmSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (bool, error)
	MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) (bool, error)
	// MarkRetry bumps retry_count and last_retry_at on a non-terminal row.
	MarkRetry(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// RecordError stores the latest send error on a non-terminal row
	// without changing its status, so a later sweep can still retry it.
	RecordError(ctx context.Context, id uuid.UUID, errorMessage string) (bool, error)

	ListStale(ctx context.Context, olderThan time.Time) ([]domain.Notification, error)
	ExistsForPayment(ctx context.Context, paymentID uuid.UUID, notifType domain.NotificationType, since time.Time) (bool, error)
	ExistsForContract(ctx context.Context, contractID uuid.UUID, notifType domain.NotificationType, since time.Time) (bool, error)

	ListByOrganization(ctx context.Context, orgID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error)
	ListRecent(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.Notification, error)
	CountByStatus(ctx context.Context, orgID uuid.UUID) (map[domain.NotificationStatus]int64, error)
	DailyCounts(ctx context.Context, orgID uuid.UUID, since time.Time) ([]domain.DailyCount, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const insertNotification = `
	INSERT INTO notifications (
		id, organization_id, recipient_type, recipient_id, recipient_phone,
		type, title, message, channel, status, provider_message_id,
		error_message, sent_at, retry_count, contract_id, payment_id, created_by
	) VALUES (
		:id, :organization_id, :recipient_type, :recipient_id, :recipient_phone,
		:type, :title, :message, :channel, :status, :provider_message_id,
		:error_message, :sent_at, :retry_count, :contract_id, :payment_id, :created_by
	) RETURNING created_at`

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	rows, err := r.db.NamedQueryContext(ctx, insertNotification, n)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&n.CreatedAt)
	}
	return rows.Err()
}

func (r *notificationRepository) CreateConsumingQuota(ctx context.Context, n *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Guarded increment. Zero rows means the budget is exhausted (or the
	// plan disables sending entirely via a limit of 0).
	res, err := tx.ExecContext(ctx, `
		UPDATE organizations
		SET notifications_sent_this_month = notifications_sent_this_month + 1
		WHERE id = $1
		  AND (notification_limit = -1 OR notifications_sent_this_month < notification_limit)`,
		n.OrganizationID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrQuotaExceeded
	}

	rows, err := tx.NamedQuery(insertNotification, n)
	if err != nil {
		return err
	}
	if rows.Next() {
		if err := rows.Scan(&n.CreatedAt); err != nil {
			rows.Close()
			return err
		}
	}
	rows.Close()

	return tx.Commit()
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var n domain.Notification
	err := r.db.GetContext(ctx, &n, `SELECT * FROM notifications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) GetByProviderMessageID(ctx context.Context, providerMessageID string) (*domain.Notification, error) {
	var n domain.Notification
	err := r.db.GetContext(ctx, &n, `SELECT * FROM notifications WHERE provider_message_id = $1`, providerMessageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id uuid.UUID, providerMessageID string, sentAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET status = 'SENT',
		    provider_message_id = COALESCE(provider_message_id, $2),
		    sent_at = COALESCE(sent_at, $3)
		WHERE id = $1 AND status IN ('PENDING', 'SENT')`,
		id, providerMessageID, sentAt,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *notificationRepository) ConfirmSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET status = 'SENT', sent_at = COALESCE(sent_at, $2)
		WHERE id = $1 AND status = 'PENDING'`,
		id, sentAt,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET status = 'DELIVERED', delivered_at = $2
		WHERE id = $1 AND status IN ('PENDING', 'SENT')`,
		id, deliveredAt,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET status = 'FAILED', error_message = $2
		WHERE id = $1 AND status IN ('PENDING', 'SENT')`,
		id, errorMessage,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *notificationRepository) MarkRetry(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET retry_count = retry_count + 1, last_retry_at = $2
		WHERE id = $1 AND status IN ('PENDING', 'SENT')`,
		id, at,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *notificationRepository) RecordError(ctx context.Context, id uuid.UUID, errorMessage string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET error_message = $2
		WHERE id = $1 AND status IN ('PENDING', 'SENT')`,
		id, errorMessage,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *notificationRepository) ListStale(ctx context.Context, olderThan time.Time) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE status IN ('PENDING', 'SENT')
		  AND status != 'DELIVERED'
		  AND delivered_at IS NULL
		  AND COALESCE(last_retry_at, created_at) < $1
		ORDER BY created_at`,
		olderThan,
	)
	return notifications, err
}

func (r *notificationRepository) ExistsForPayment(ctx context.Context, paymentID uuid.UUID, notifType domain.NotificationType, since time.Time) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE payment_id = $1 AND type = $2 AND created_at >= $3
		)`,
		paymentID, notifType, since,
	)
	return exists, err
}

func (r *notificationRepository) ExistsForContract(ctx context.Context, contractID uuid.UUID, notifType domain.NotificationType, since time.Time) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE contract_id = $1 AND type = $2 AND created_at >= $3
		)`,
		contractID, notifType, since,
	)
	return exists, err
}

func (r *notificationRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications WHERE organization_id = $1`, orgID); err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		orgID, params.PageSize, params.Offset(),
	)
	return notifications, total, err
}

func (r *notificationRepository) ListRecent(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		orgID, limit,
	)
	return notifications, err
}

func (r *notificationRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[domain.NotificationStatus]int64, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT status, COUNT(*) AS count
		FROM notifications
		WHERE organization_id = $1
		GROUP BY status`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.NotificationStatus]int64)
	for rows.Next() {
		var status domain.NotificationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *notificationRepository) DailyCounts(ctx context.Context, orgID uuid.UUID, since time.Time) ([]domain.DailyCount, error) {
	var counts []domain.DailyCount
	err := r.db.SelectContext(ctx, &counts, `
		SELECT date_trunc('day', created_at) AS date,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'DELIVERED') AS delivered,
		       COUNT(*) FILTER (WHERE status = 'FAILED') AS failed
		FROM notifications
		WHERE organization_id = $1 AND created_at >= $2
		GROUP BY date_trunc('day', created_at)
		ORDER BY date`,
		orgID, since,
	)
	return counts, err
}
