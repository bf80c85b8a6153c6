package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentas-backend/internal/domain"
)

// BillingRepository is the read-only view over contracts, payments and
// tenants that the reminder scan needs. It never writes; those tables are
// owned by the CRUD layer.
type BillingRepository interface {
	ListPaymentsDueOn(ctx context.Context, orgID uuid.UUID, date time.Time) ([]domain.PaymentDue, error)
	ListOverduePayments(ctx context.Context, orgID uuid.UUID, asOf time.Time) ([]domain.PaymentDue, error)
	ListExpiringContracts(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]domain.ExpiringContract, error)
}

type billingRepository struct {
	db *sqlx.DB
}

func NewBillingRepository(db *sqlx.DB) BillingRepository {
	return &billingRepository{db: db}
}

const paymentDueColumns = `
	p.id AS payment_id, p.contract_id, c.organization_id, c.tenant_id,
	t.full_name AS tenant_name, t.phone AS tenant_phone, p.amount, p.due_date`

func (r *billingRepository) ListPaymentsDueOn(ctx context.Context, orgID uuid.UUID, date time.Time) ([]domain.PaymentDue, error) {
	var payments []domain.PaymentDue
	err := r.db.SelectContext(ctx, &payments, `
		SELECT `+paymentDueColumns+`
		FROM payments p
		JOIN contracts c ON c.id = p.contract_id
		JOIN tenants t ON t.id = c.tenant_id
		WHERE c.organization_id = $1
		  AND c.status = 'ACTIVE'
		  AND p.status != 'PAID'
		  AND p.due_date = $2::date
		ORDER BY p.due_date`,
		orgID, date,
	)
	return payments, err
}

func (r *billingRepository) ListOverduePayments(ctx context.Context, orgID uuid.UUID, asOf time.Time) ([]domain.PaymentDue, error) {
	var payments []domain.PaymentDue
	err := r.db.SelectContext(ctx, &payments, `
		SELECT `+paymentDueColumns+`
		FROM payments p
		JOIN contracts c ON c.id = p.contract_id
		JOIN tenants t ON t.id = c.tenant_id
		WHERE c.organization_id = $1
		  AND c.status = 'ACTIVE'
		  AND p.status != 'PAID'
		  AND p.due_date < $2::date
		ORDER BY p.due_date`,
		orgID, asOf,
	)
	return payments, err
}

func (r *billingRepository) ListExpiringContracts(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]domain.ExpiringContract, error) {
	var contracts []domain.ExpiringContract
	err := r.db.SelectContext(ctx, &contracts, `
		SELECT c.id AS contract_id, c.organization_id, c.tenant_id,
		       t.full_name AS tenant_name, t.phone AS tenant_phone,
		       pr.name AS property_name, c.end_date
		FROM contracts c
		JOIN tenants t ON t.id = c.tenant_id
		JOIN properties pr ON pr.id = c.property_id
		WHERE c.organization_id = $1
		  AND c.status = 'ACTIVE'
		  AND c.end_date BETWEEN $2::date AND $3::date
		ORDER BY c.end_date`,
		orgID, from, to,
	)
	return contracts, err
}
