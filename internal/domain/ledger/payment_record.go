package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a monthly payment record
type PaymentStatus string

const (
	PaymentStatusPendiente PaymentStatus = "PENDIENTE"
	PaymentStatusParcial   PaymentStatus = "PARCIAL"
	PaymentStatusPagado    PaymentStatus = "PAGADO"
	PaymentStatusVencido   PaymentStatus = "VENCIDO"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPendiente, PaymentStatusParcial, PaymentStatusPagado, PaymentStatusVencido:
		return true
	}
	return false
}

// IsOutstanding reports whether the status still carries debt
func (s PaymentStatus) IsOutstanding() bool {
	return s != PaymentStatusPagado
}

// String returns the string representation
func (s PaymentStatus) String() string {
	return string(s)
}

// InstallmentOrigin records where an installment's money came from
type InstallmentOrigin string

const (
	OriginManual InstallmentOrigin = "MANUAL"
	OriginCredit InstallmentOrigin = "SALDO_A_FAVOR"
)

// Installment is a single partial payment applied to a record
type Installment struct {
	ID     uuid.UUID         `json:"id"`
	Amount decimal.Decimal   `json:"amount"`
	Date   time.Time         `json:"date"`
	Origin InstallmentOrigin `json:"origin"`
	Note   string            `json:"note,omitempty"`
}

// Installments is stored as JSONB
type Installments []Installment

// Value implements driver.Valuer
func (i Installments) Value() (driver.Value, error) {
	if i == nil {
		return json.Marshal([]Installment{})
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner
func (i *Installments) Scan(value interface{}) error {
	if value == nil {
		*i = Installments{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into Installments", value)
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, i)
}

// Total sums all installment amounts
func (i Installments) Total() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range i {
		total = total.Add(inst.Amount)
	}
	return total
}

// ServiceAmounts maps a service type to the amount paid for it, stored as JSONB
type ServiceAmounts map[string]decimal.Decimal

// Value implements driver.Valuer
func (s ServiceAmounts) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(map[string]decimal.Decimal{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *ServiceAmounts) Scan(value interface{}) error {
	if value == nil {
		*s = ServiceAmounts{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into ServiceAmounts", value)
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, s)
}

// Total sums all service amounts
func (s ServiceAmounts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range s {
		total = total.Add(amount)
	}
	return total
}

// PaymentRecord is the aggregate for one tenant-month of payment activity.
// The period is stored in display form (Spanish month name plus year) for
// compatibility with the books; Period() canonicalizes it.
type PaymentRecord struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID       `json:"tenant_id"`
	PropertyID      uuid.UUID       `json:"property_id"`
	MonthName       string          `json:"month_name"`
	Year            int             `json:"year"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Status          PaymentStatus   `json:"status"`
	Installments    Installments    `json:"installments"`
	ServicesPaid    ServiceAmounts  `json:"services_paid"`
	FurniturePaid   bool            `json:"furniture_paid"`
	FurnitureAmount decimal.Decimal `json:"furniture_amount"`
	Notes           string          `json:"notes"`
}

// NewPaymentRecord opens a payment record for a tenant and period
func NewPaymentRecord(tenantID, propertyID uuid.UUID, period Period, totalAmount decimal.Decimal) (*PaymentRecord, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "tenant ID is required")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "total amount must be positive")
	}

	record := &PaymentRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		PropertyID:        propertyID,
		MonthName:         period.MonthName(),
		Year:              period.Year,
		TotalAmount:       totalAmount,
		PaidAmount:        decimal.Zero,
		Status:            PaymentStatusPendiente,
		Installments:      Installments{},
		ServicesPaid:      ServiceAmounts{},
	}
	record.AddDomainEvent(NewPaymentRecordOpenedEvent(record.ID, tenantID, period, totalAmount))
	return record, nil
}

// Period canonicalizes the stored month name and year
func (r *PaymentRecord) Period() (Period, error) {
	return PeriodFromName(r.MonthName, r.Year)
}

// Outstanding returns how much is still owed, never negative
func (r *PaymentRecord) Outstanding() decimal.Decimal {
	outstanding := r.TotalAmount.Sub(r.PaidAmount)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// IsSettled reports whether the record is fully paid
func (r *PaymentRecord) IsSettled() bool {
	return r.Status == PaymentStatusPagado
}

// AddInstallment applies a partial payment. The applied amount is capped at
// the outstanding balance; anything beyond it is returned as excess so the
// caller can bank it as credit. Settled records accept no further payments.
func (r *PaymentRecord) AddInstallment(amount decimal.Decimal, date time.Time, origin InstallmentOrigin, note string) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", "installment amount must be positive")
	}
	if r.Status == PaymentStatusPagado {
		return decimal.Zero, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("record for %s %d is already settled", r.MonthName, r.Year))
	}

	outstanding := r.Outstanding()
	applied := amount
	excess := decimal.Zero
	if applied.GreaterThan(outstanding) {
		applied = outstanding
		excess = amount.Sub(outstanding)
	}

	r.Installments = append(r.Installments, Installment{
		ID:     uuid.New(),
		Amount: applied,
		Date:   date,
		Origin: origin,
		Note:   note,
	})
	r.PaidAmount = r.PaidAmount.Add(applied)
	r.refreshSettlement()
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewInstallmentAddedEvent(r.ID, r.TenantID, applied, excess, r.Status))
	return excess, nil
}

// refreshSettlement recomputes the status from amounts, preserving VENCIDO
// for underpaid records until RefreshStatus is called with a clock
func (r *PaymentRecord) refreshSettlement() {
	switch {
	case r.PaidAmount.GreaterThanOrEqual(r.TotalAmount):
		r.Status = PaymentStatusPagado
	case r.PaidAmount.GreaterThan(decimal.Zero):
		if r.Status != PaymentStatusVencido {
			r.Status = PaymentStatusParcial
		}
	default:
		if r.Status != PaymentStatusVencido {
			r.Status = PaymentStatusPendiente
		}
	}
}

// RefreshStatus flips an underpaid record to VENCIDO once its due date,
// anchored to the tenant's billing day, has passed
func (r *PaymentRecord) RefreshStatus(now time.Time, anchorDay int) error {
	if r.Status == PaymentStatusPagado {
		return nil
	}
	period, err := r.Period()
	if err != nil {
		return err
	}
	if now.After(period.DueDate(anchorDay)) {
		r.Status = PaymentStatusVencido
		r.UpdatedAt = time.Now()
		r.IncrementVersion()
	}
	return nil
}

// MarkServicePaid records that a service charge was covered for this period.
// Service types are keyed lowercase so "Luz" and "luz" name the same charge.
func (r *PaymentRecord) MarkServicePaid(serviceType string, amount decimal.Decimal) error {
	if serviceType == "" {
		return shared.NewDomainError("INVALID_SERVICE", "service type is required")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "service amount cannot be negative")
	}
	if r.ServicesPaid == nil {
		r.ServicesPaid = ServiceAmounts{}
	}
	r.ServicesPaid[strings.ToLower(serviceType)] = amount
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// ServicePaid reports whether a service charge was covered for this period
func (r *PaymentRecord) ServicePaid(serviceType string) bool {
	_, ok := r.ServicesPaid[strings.ToLower(serviceType)]
	return ok
}

// MarkFurniturePaid records that the furniture charge was covered for this period
func (r *PaymentRecord) MarkFurniturePaid(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "furniture amount cannot be negative")
	}
	r.FurniturePaid = true
	r.FurnitureAmount = amount
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// RentPaid returns the portion of the paid amount attributable to rent,
// the paid total minus service and furniture sub-amounts, floored at zero
func (r *PaymentRecord) RentPaid() decimal.Decimal {
	rent := r.PaidAmount.Sub(r.ServicesPaid.Total())
	if r.FurniturePaid {
		rent = rent.Sub(r.FurnitureAmount)
	}
	if rent.IsNegative() {
		return decimal.Zero
	}
	return rent
}

// PaymentMonth returns the period the money landed in: the date of the most
// recent installment when one exists, otherwise the record's own period
func (r *PaymentRecord) PaymentMonth() (Period, error) {
	if len(r.Installments) > 0 {
		latest := r.Installments[0].Date
		for _, inst := range r.Installments[1:] {
			if inst.Date.After(latest) {
				latest = inst.Date
			}
		}
		return PeriodOf(latest), nil
	}
	return r.Period()
}

// CheckIntegrity validates the record's internal consistency: the period
// must canonicalize and the paid amount must equal the installment sum
func (r *PaymentRecord) CheckIntegrity() error {
	if _, err := r.Period(); err != nil {
		return err
	}
	if !r.PaidAmount.Equal(r.Installments.Total()) {
		return shared.NewDomainError("DATA_INTEGRITY",
			fmt.Sprintf("paid amount %s does not match installment sum %s",
				r.PaidAmount.String(), r.Installments.Total().String()))
	}
	if r.PaidAmount.IsNegative() || r.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("DATA_INTEGRITY", "record amounts are out of range")
	}
	if !r.Status.IsValid() {
		return shared.NewDomainError("DATA_INTEGRITY", fmt.Sprintf("unknown payment status %q", r.Status))
	}
	return nil
}
