package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant aggregate root.
type TenantModel struct {
	AggregateModel
	Name           string                     `gorm:"type:varchar(200);not null;index"`
	PropertyID     *uuid.UUID                 `gorm:"type:uuid;index"`
	Active         bool                       `gorm:"not null;index"`
	OccupancyStart time.Time                  `gorm:"not null"`
	VacatedAt      *time.Time
	PaysServices   bool                       `gorm:"not null;default:false"`
	Services       leasing.ContractedServices `gorm:"type:jsonb;default:'[]'"`
	Phone          string                     `gorm:"type:varchar(30)"`
	Notes          string                     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *leasing.Tenant {
	t := &leasing.Tenant{
		Name:           m.Name,
		PropertyID:     m.PropertyID,
		Active:         m.Active,
		OccupancyStart: m.OccupancyStart,
		VacatedAt:      m.VacatedAt,
		PaysServices:   m.PaysServices,
		Services:       m.Services,
		Phone:          m.Phone,
		Notes:          m.Notes,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)
	if t.Services == nil {
		t.Services = leasing.ContractedServices{}
	}
	return t
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *leasing.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.PropertyID = t.PropertyID
	m.Active = t.Active
	m.OccupancyStart = t.OccupancyStart
	m.VacatedAt = t.VacatedAt
	m.PaysServices = t.PaysServices
	m.Services = t.Services
	m.Phone = t.Phone
	m.Notes = t.Notes
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant.
func TenantModelFromDomain(t *leasing.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// PropertyModel is the persistence model for the Property aggregate root.
type PropertyModel struct {
	AggregateModel
	Name        string                `gorm:"type:varchar(200);not null;index"`
	Address     string                `gorm:"type:varchar(500)"`
	MonthlyRent decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	State       leasing.PropertyState `gorm:"type:varchar(20);not null;default:'DISPONIBLE';index"`
	TenantID    *uuid.UUID            `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *leasing.Property {
	p := &leasing.Property{
		Name:        m.Name,
		Address:     m.Address,
		MonthlyRent: m.MonthlyRent,
		State:       m.State,
		TenantID:    m.TenantID,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *leasing.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.MonthlyRent = p.MonthlyRent
	m.State = p.State
	m.TenantID = p.TenantID
}

// PropertyModelFromDomain creates a new persistence model from a domain Property.
func PropertyModelFromDomain(p *leasing.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// FurnitureItemModel is the persistence model for the FurnitureItem aggregate root.
type FurnitureItemModel struct {
	AggregateModel
	Name        string                       `gorm:"type:varchar(200);not null;index"`
	MonthlyCost decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	Assignments leasing.FurnitureAssignments `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (FurnitureItemModel) TableName() string {
	return "furniture_items"
}

// ToDomain converts the persistence model to a domain FurnitureItem entity.
func (m *FurnitureItemModel) ToDomain() *leasing.FurnitureItem {
	f := &leasing.FurnitureItem{
		Name:        m.Name,
		MonthlyCost: m.MonthlyCost,
		Assignments: m.Assignments,
	}
	m.PopulateAggregateRoot(&f.BaseAggregateRoot)
	if f.Assignments == nil {
		f.Assignments = leasing.FurnitureAssignments{}
	}
	return f
}

// FromDomain populates the persistence model from a domain FurnitureItem entity.
func (m *FurnitureItemModel) FromDomain(f *leasing.FurnitureItem) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.Name = f.Name
	m.MonthlyCost = f.MonthlyCost
	m.Assignments = f.Assignments
}

// FurnitureItemModelFromDomain creates a new persistence model from a domain FurnitureItem.
func FurnitureItemModelFromDomain(f *leasing.FurnitureItem) *FurnitureItemModel {
	m := &FurnitureItemModel{}
	m.FromDomain(f)
	return m
}
