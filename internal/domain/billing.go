package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentDue is the read model the reminder scan consumes. It carries just
// enough of the payment/contract/tenant join to compose a message.
type PaymentDue struct {
	PaymentID      uuid.UUID `json:"payment_id" db:"payment_id"`
	ContractID     uuid.UUID `json:"contract_id" db:"contract_id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	TenantID       uuid.UUID `json:"tenant_id" db:"tenant_id"`
	TenantName     string    `json:"tenant_name" db:"tenant_name"`
	TenantPhone    string    `json:"tenant_phone" db:"tenant_phone"`
	Amount         float64   `json:"amount" db:"amount"`
	DueDate        time.Time `json:"due_date" db:"due_date"`
}

// ExpiringContract is the read model for contract expiry reminders.
type ExpiringContract struct {
	ContractID     uuid.UUID `json:"contract_id" db:"contract_id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	TenantID       uuid.UUID `json:"tenant_id" db:"tenant_id"`
	TenantName     string    `json:"tenant_name" db:"tenant_name"`
	TenantPhone    string    `json:"tenant_phone" db:"tenant_phone"`
	PropertyName   string    `json:"property_name" db:"property_name"`
	EndDate        time.Time `json:"end_date" db:"end_date"`
}
