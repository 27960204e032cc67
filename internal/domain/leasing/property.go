package leasing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PropertyState represents the occupancy state of a property
type PropertyState string

const (
	PropertyStateAvailable   PropertyState = "DISPONIBLE"
	PropertyStateOccupied    PropertyState = "OCUPADO"
	PropertyStateMaintenance PropertyState = "MANTENIMIENTO"
)

// IsValid checks if the state is a valid PropertyState
func (s PropertyState) IsValid() bool {
	switch s {
	case PropertyStateAvailable, PropertyStateOccupied, PropertyStateMaintenance:
		return true
	}
	return false
}

// String returns the string representation of PropertyState
func (s PropertyState) String() string {
	return string(s)
}

// Property represents a rental property (inmueble) aggregate root. TenantID
// is a denormalized back-reference to the current occupant, not ownership;
// the tenant aggregate owns the relationship.
type Property struct {
	shared.BaseAggregateRoot
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	State       PropertyState   `json:"state"`
	TenantID    *uuid.UUID      `json:"tenant_id"`
}

// NewProperty creates a new property
func NewProperty(name, address string, monthlyRent decimal.Decimal) (*Property, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if monthlyRent.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly rent must be positive")
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		MonthlyRent:       monthlyRent,
		State:             PropertyStateAvailable,
	}, nil
}

// Occupy marks the property as occupied by the given tenant
func (p *Property) Occupy(tenantID uuid.UUID) error {
	if p.State != PropertyStateAvailable {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot occupy a property in %s state", p.State))
	}
	if tenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}

	p.State = PropertyStateOccupied
	p.TenantID = &tenantID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Release frees the property after a vacate
func (p *Property) Release() error {
	if p.State != PropertyStateOccupied {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot release a property in %s state", p.State))
	}

	p.State = PropertyStateAvailable
	p.TenantID = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// StartMaintenance takes an available property out of the rentable pool
func (p *Property) StartMaintenance() error {
	if p.State != PropertyStateAvailable {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start maintenance on a property in %s state", p.State))
	}

	p.State = PropertyStateMaintenance
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// EndMaintenance returns the property to the rentable pool
func (p *Property) EndMaintenance() error {
	if p.State != PropertyStateMaintenance {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Property is in %s state, not under maintenance", p.State))
	}

	p.State = PropertyStateAvailable
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetMonthlyRent updates the rent amount. Obligations snapshot the current
// rent at computation time, so the change applies to periods computed from
// now on.
func (p *Property) SetMonthlyRent(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Monthly rent must be positive")
	}

	p.MonthlyRent = amount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsOccupied returns true if the property currently has a tenant
func (p *Property) IsOccupied() bool {
	return p.State == PropertyStateOccupied
}
