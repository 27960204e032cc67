package leasing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FurnitureAssignment records a quantity of a furniture item rented out to a
// tenant. It is a value object within the FurnitureItem aggregate, stored as
// JSONB.
type FurnitureAssignment struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	Quantity   int        `json:"quantity"`
	Active     bool       `json:"active"`
	AssignedAt time.Time  `json:"assigned_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

// FurnitureAssignments is a slice of FurnitureAssignment that implements GORM
// Scanner/Valuer for JSONB storage
type FurnitureAssignments []FurnitureAssignment

// Value implements driver.Valuer interface for GORM to store as JSONB
func (a FurnitureAssignments) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (a *FurnitureAssignments) Scan(value interface{}) error {
	if value == nil {
		*a = FurnitureAssignments{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan FurnitureAssignments: unsupported type")
	}

	if len(bytes) == 0 {
		*a = FurnitureAssignments{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// FurnitureItem represents a rentable furniture item aggregate root
type FurnitureItem struct {
	shared.BaseAggregateRoot
	Name        string               `json:"name"`
	MonthlyCost decimal.Decimal      `json:"monthly_cost"`
	Assignments FurnitureAssignments `json:"assignments"`
}

// NewFurnitureItem creates a new furniture item
func NewFurnitureItem(name string, monthlyCost decimal.Decimal) (*FurnitureItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Furniture name cannot be empty")
	}
	if monthlyCost.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly cost must be positive")
	}

	return &FurnitureItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		MonthlyCost:       monthlyCost,
		Assignments:       FurnitureAssignments{},
	}, nil
}

// AssignTo rents a quantity of the item to a tenant. An existing active
// assignment for the tenant is topped up instead of duplicated.
func (f *FurnitureItem) AssignTo(tenantID uuid.UUID, quantity int) error {
	if tenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Assignment quantity must be positive")
	}

	for i := range f.Assignments {
		if f.Assignments[i].TenantID == tenantID && f.Assignments[i].Active {
			f.Assignments[i].Quantity += quantity
			f.UpdatedAt = time.Now()
			f.IncrementVersion()
			return nil
		}
	}

	f.Assignments = append(f.Assignments, FurnitureAssignment{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Quantity:   quantity,
		Active:     true,
		AssignedAt: time.Now(),
	})
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// Unassign ends the tenant's active assignment. The record stays on the
// aggregate, inactive, so past arrears computations remain explainable.
func (f *FurnitureItem) Unassign(tenantID uuid.UUID) error {
	for i := range f.Assignments {
		if f.Assignments[i].TenantID == tenantID && f.Assignments[i].Active {
			now := time.Now()
			f.Assignments[i].Active = false
			f.Assignments[i].EndedAt = &now
			f.UpdatedAt = now
			f.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// ActiveCostFor returns cost x quantity over the tenant's active assignments
// of this item. Inactive or zero-quantity assignments contribute nothing.
func (f *FurnitureItem) ActiveCostFor(tenantID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, a := range f.Assignments {
		if a.TenantID == tenantID && a.Active && a.Quantity > 0 {
			total = total.Add(f.MonthlyCost.Mul(decimal.NewFromInt(int64(a.Quantity))))
		}
	}
	return total
}

// HasActiveAssignment returns true if the tenant currently rents this item
func (f *FurnitureItem) HasActiveAssignment(tenantID uuid.UUID) bool {
	for _, a := range f.Assignments {
		if a.TenantID == tenantID && a.Active && a.Quantity > 0 {
			return true
		}
	}
	return false
}
