package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// PaymentRecordModel is the persistence model for the PaymentRecord aggregate root.
type PaymentRecordModel struct {
	AggregateModel
	TenantID        uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_payment_tenant_period,priority:1"`
	PropertyID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	MonthName       string                `gorm:"type:varchar(20);not null;uniqueIndex:idx_payment_tenant_period,priority:3"`
	Year            int                   `gorm:"not null;uniqueIndex:idx_payment_tenant_period,priority:2"`
	TotalAmount     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Status          ledger.PaymentStatus  `gorm:"type:varchar(20);not null;default:'PENDIENTE';index"`
	Installments    ledger.Installments   `gorm:"type:jsonb;default:'[]'"`
	ServicesPaid    ledger.ServiceAmounts `gorm:"type:jsonb;default:'{}'"`
	FurniturePaid   bool                  `gorm:"not null;default:false"`
	FurnitureAmount decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Notes           string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentRecordModel) TableName() string {
	return "payment_records"
}

// ToDomain converts the persistence model to a domain PaymentRecord entity.
func (m *PaymentRecordModel) ToDomain() *ledger.PaymentRecord {
	r := &ledger.PaymentRecord{
		TenantID:        m.TenantID,
		PropertyID:      m.PropertyID,
		MonthName:       m.MonthName,
		Year:            m.Year,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		Status:          m.Status,
		Installments:    m.Installments,
		ServicesPaid:    m.ServicesPaid,
		FurniturePaid:   m.FurniturePaid,
		FurnitureAmount: m.FurnitureAmount,
		Notes:           m.Notes,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	if r.Installments == nil {
		r.Installments = ledger.Installments{}
	}
	if r.ServicesPaid == nil {
		r.ServicesPaid = ledger.ServiceAmounts{}
	}
	return r
}

// FromDomain populates the persistence model from a domain PaymentRecord entity.
func (m *PaymentRecordModel) FromDomain(r *ledger.PaymentRecord) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.TenantID = r.TenantID
	m.PropertyID = r.PropertyID
	m.MonthName = r.MonthName
	m.Year = r.Year
	m.TotalAmount = r.TotalAmount
	m.PaidAmount = r.PaidAmount
	m.Status = r.Status
	m.Installments = r.Installments
	m.ServicesPaid = r.ServicesPaid
	m.FurniturePaid = r.FurniturePaid
	m.FurnitureAmount = r.FurnitureAmount
	m.Notes = r.Notes
}

// PaymentRecordModelFromDomain creates a new persistence model from a domain PaymentRecord.
func PaymentRecordModelFromDomain(r *ledger.PaymentRecord) *PaymentRecordModel {
	m := &PaymentRecordModel{}
	m.FromDomain(r)
	return m
}

// CreditBalanceModel is the persistence model for the CreditBalance aggregate root.
type CreditBalanceModel struct {
	AggregateModel
	TenantID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	OriginalAmount  decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	RemainingAmount decimal.Decimal           `gorm:"type:decimal(18,4);not null;index"`
	Description     string                    `gorm:"type:varchar(500)"`
	Applications    ledger.CreditApplications `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (CreditBalanceModel) TableName() string {
	return "credit_balances"
}

// ToDomain converts the persistence model to a domain CreditBalance entity.
func (m *CreditBalanceModel) ToDomain() *ledger.CreditBalance {
	c := &ledger.CreditBalance{
		TenantID:        m.TenantID,
		OriginalAmount:  m.OriginalAmount,
		RemainingAmount: m.RemainingAmount,
		Description:     m.Description,
		Applications:    m.Applications,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	if c.Applications == nil {
		c.Applications = ledger.CreditApplications{}
	}
	return c
}

// FromDomain populates the persistence model from a domain CreditBalance entity.
func (m *CreditBalanceModel) FromDomain(c *ledger.CreditBalance) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.TenantID = c.TenantID
	m.OriginalAmount = c.OriginalAmount
	m.RemainingAmount = c.RemainingAmount
	m.Description = c.Description
	m.Applications = c.Applications
}

// CreditBalanceModelFromDomain creates a new persistence model from a domain CreditBalance.
func CreditBalanceModelFromDomain(c *ledger.CreditBalance) *CreditBalanceModel {
	m := &CreditBalanceModel{}
	m.FromDomain(c)
	return m
}

// CommissionRecordModel is the persistence model for the CommissionRecord aggregate root.
type CommissionRecordModel struct {
	AggregateModel
	Year        int             `gorm:"not null;uniqueIndex:idx_commission_period,priority:1"`
	Month       int             `gorm:"not null;uniqueIndex:idx_commission_period,priority:2"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Collected   bool            `gorm:"not null;default:false;index"`
	CollectedAt *time.Time
}

// TableName returns the table name for GORM
func (CommissionRecordModel) TableName() string {
	return "commission_records"
}

// ToDomain converts the persistence model to a domain CommissionRecord entity.
func (m *CommissionRecordModel) ToDomain() *ledger.CommissionRecord {
	r := &ledger.CommissionRecord{
		Year:        m.Year,
		Month:       time.Month(m.Month),
		Amount:      m.Amount,
		Collected:   m.Collected,
		CollectedAt: m.CollectedAt,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain CommissionRecord entity.
func (m *CommissionRecordModel) FromDomain(r *ledger.CommissionRecord) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Year = r.Year
	m.Month = int(r.Month)
	m.Amount = r.Amount
	m.Collected = r.Collected
	m.CollectedAt = r.CollectedAt
}

// CommissionRecordModelFromDomain creates a new persistence model from a domain CommissionRecord.
func CommissionRecordModelFromDomain(r *ledger.CommissionRecord) *CommissionRecordModel {
	m := &CommissionRecordModel{}
	m.FromDomain(r)
	return m
}
