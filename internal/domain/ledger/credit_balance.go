package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreditApplication records one draw from a credit balance against a payment record
type CreditApplication struct {
	ID              uuid.UUID       `json:"id"`
	PaymentRecordID uuid.UUID       `json:"payment_record_id"`
	Amount          decimal.Decimal `json:"amount"`
	AppliedAt       time.Time       `json:"applied_at"`
}

// CreditApplications is stored as JSONB
type CreditApplications []CreditApplication

// Value implements driver.Valuer
func (c CreditApplications) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal([]CreditApplication{})
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner
func (c *CreditApplications) Scan(value interface{}) error {
	if value == nil {
		*c = CreditApplications{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into CreditApplications", value)
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, c)
}

// Total sums all applied amounts
func (c CreditApplications) Total() decimal.Decimal {
	total := decimal.Zero
	for _, app := range c {
		total = total.Add(app.Amount)
	}
	return total
}

// CreditBalance is a tenant's saldo a favor: overpaid money held against
// future obligations. Remaining never goes below zero and never exceeds
// the accumulated original amount.
type CreditBalance struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID          `json:"tenant_id"`
	OriginalAmount  decimal.Decimal    `json:"original_amount"`
	RemainingAmount decimal.Decimal    `json:"remaining_amount"`
	Description     string             `json:"description"`
	Applications    CreditApplications `json:"applications"`
}

// NewCreditBalance opens a credit balance for a tenant
func NewCreditBalance(tenantID uuid.UUID, amount decimal.Decimal, description string) (*CreditBalance, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "tenant ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "credit amount must be positive")
	}

	credit := &CreditBalance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		OriginalAmount:    amount,
		RemainingAmount:   amount,
		Description:       description,
		Applications:      CreditApplications{},
	}
	credit.AddDomainEvent(NewCreditCreatedEvent(credit.ID, tenantID, amount))
	return credit, nil
}

// IsActive reports whether the credit still has money to apply
func (c *CreditBalance) IsActive() bool {
	return c.RemainingAmount.GreaterThan(decimal.Zero)
}

// Merge folds an additional overpayment into this credit
func (c *CreditBalance) Merge(amount decimal.Decimal, note string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "merge amount must be positive")
	}
	c.OriginalAmount = c.OriginalAmount.Add(amount)
	c.RemainingAmount = c.RemainingAmount.Add(amount)
	if note != "" {
		if c.Description != "" {
			c.Description += "; "
		}
		c.Description += note
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Apply draws from the credit toward a payment record. The amount must not
// exceed what remains.
func (c *CreditBalance) Apply(paymentRecordID uuid.UUID, amount decimal.Decimal, appliedAt time.Time) error {
	if !c.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "credit balance is exhausted")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "application amount must be positive")
	}
	if amount.GreaterThan(c.RemainingAmount) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("cannot apply %s, only %s remaining", amount.String(), c.RemainingAmount.String()))
	}

	c.Applications = append(c.Applications, CreditApplication{
		ID:              uuid.New(),
		PaymentRecordID: paymentRecordID,
		Amount:          amount,
		AppliedAt:       appliedAt,
	})
	c.RemainingAmount = c.RemainingAmount.Sub(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCreditAppliedEvent(c.ID, c.TenantID, paymentRecordID, amount, c.RemainingAmount))
	return nil
}

// CheckIntegrity validates that remaining plus applications equals the original
func (c *CreditBalance) CheckIntegrity() error {
	if c.RemainingAmount.IsNegative() {
		return shared.NewDomainError("DATA_INTEGRITY", "remaining credit is negative")
	}
	if !c.RemainingAmount.Add(c.Applications.Total()).Equal(c.OriginalAmount) {
		return shared.NewDomainError("DATA_INTEGRITY",
			fmt.Sprintf("remaining %s plus applied %s does not match original %s",
				c.RemainingAmount.String(), c.Applications.Total().String(), c.OriginalAmount.String()))
	}
	return nil
}
