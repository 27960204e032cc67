package ledger

import (
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	EventTypePaymentRecordOpened = "ledger.payment_record.opened"
	EventTypeInstallmentAdded    = "ledger.payment_record.installment_added"
	EventTypeCreditCreated       = "ledger.credit.created"
	EventTypeCreditApplied       = "ledger.credit.applied"
)

// PaymentRecordOpenedEvent fires when a new monthly record is opened
type PaymentRecordOpenedEvent struct {
	shared.BaseDomainEvent
	TenantID    uuid.UUID       `json:"tenant_id"`
	Period      string          `json:"period"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPaymentRecordOpenedEvent creates a new PaymentRecordOpenedEvent
func NewPaymentRecordOpenedEvent(recordID, tenantID uuid.UUID, period Period, total decimal.Decimal) *PaymentRecordOpenedEvent {
	return &PaymentRecordOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecordOpened, "PaymentRecord", recordID),
		TenantID:        tenantID,
		Period:          period.String(),
		TotalAmount:     total,
	}
}

// InstallmentAddedEvent fires when money is applied to a record
type InstallmentAddedEvent struct {
	shared.BaseDomainEvent
	TenantID uuid.UUID       `json:"tenant_id"`
	Applied  decimal.Decimal `json:"applied"`
	Excess   decimal.Decimal `json:"excess"`
	Status   PaymentStatus   `json:"status"`
}

// NewInstallmentAddedEvent creates a new InstallmentAddedEvent
func NewInstallmentAddedEvent(recordID, tenantID uuid.UUID, applied, excess decimal.Decimal, status PaymentStatus) *InstallmentAddedEvent {
	return &InstallmentAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInstallmentAdded, "PaymentRecord", recordID),
		TenantID:        tenantID,
		Applied:         applied,
		Excess:          excess,
		Status:          status,
	}
}

// CreditCreatedEvent fires when a saldo a favor is opened
type CreditCreatedEvent struct {
	shared.BaseDomainEvent
	TenantID uuid.UUID       `json:"tenant_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewCreditCreatedEvent creates a new CreditCreatedEvent
func NewCreditCreatedEvent(creditID, tenantID uuid.UUID, amount decimal.Decimal) *CreditCreatedEvent {
	return &CreditCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditCreated, "CreditBalance", creditID),
		TenantID:        tenantID,
		Amount:          amount,
	}
}

// CreditAppliedEvent fires when credit is drawn against a payment record
type CreditAppliedEvent struct {
	shared.BaseDomainEvent
	TenantID        uuid.UUID       `json:"tenant_id"`
	PaymentRecordID uuid.UUID       `json:"payment_record_id"`
	Amount          decimal.Decimal `json:"amount"`
	Remaining       decimal.Decimal `json:"remaining"`
}

// NewCreditAppliedEvent creates a new CreditAppliedEvent
func NewCreditAppliedEvent(creditID, tenantID, recordID uuid.UUID, amount, remaining decimal.Decimal) *CreditAppliedEvent {
	return &CreditAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditApplied, "CreditBalance", creditID),
		TenantID:        tenantID,
		PaymentRecordID: recordID,
		Amount:          amount,
		Remaining:       remaining,
	}
}
