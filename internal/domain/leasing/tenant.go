package leasing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContractedService is a recurring service obligation contracted by a tenant
// (water, electricity, gas, cleaning). It is a value object within the Tenant
// aggregate, stored as JSONB.
type ContractedService struct {
	Type          string          `json:"type"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
}

// ContractedServices is a slice of ContractedService that implements GORM
// Scanner/Valuer for JSONB storage
type ContractedServices []ContractedService

// Value implements driver.Valuer interface for GORM to store as JSONB
func (s ContractedServices) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (s *ContractedServices) Scan(value interface{}) error {
	if value == nil {
		*s = ContractedServices{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ContractedServices: unsupported type")
	}

	if len(bytes) == 0 {
		*s = ContractedServices{}
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// Tenant represents a renter aggregate root. The occupancy start date doubles
// as the billing anchor: its day-of-month determines when each period's rent
// falls due.
type Tenant struct {
	shared.BaseAggregateRoot
	Name           string             `json:"name"`
	PropertyID     *uuid.UUID         `json:"property_id"`
	Active         bool               `json:"active"`
	OccupancyStart time.Time          `json:"occupancy_start"`
	VacatedAt      *time.Time         `json:"vacated_at"`
	PaysServices   bool               `json:"pays_services"`
	Services       ContractedServices `json:"services"`
	Phone          string             `json:"phone"`
	Notes          string             `json:"notes"`
}

// NewTenant creates a new tenant
func NewTenant(name string, occupancyStart time.Time, paysServices bool) (*Tenant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if occupancyStart.IsZero() {
		return nil, shared.NewDomainError("INVALID_OCCUPANCY_DATE", "Occupancy start date is required")
	}

	t := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Active:            true,
		OccupancyStart:    occupancyStart,
		PaysServices:      paysServices,
		Services:          ContractedServices{},
	}

	t.AddDomainEvent(NewTenantRegisteredEvent(t))

	return t, nil
}

// BillingAnchorDay returns the day-of-month rent falls due for this tenant
func (t *Tenant) BillingAnchorDay() int {
	return t.OccupancyStart.Day()
}

// AssignProperty links the tenant to a property
func (t *Tenant) AssignProperty(propertyID uuid.UUID) error {
	if !t.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot assign a property to an inactive tenant")
	}
	if propertyID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}

	t.PropertyID = &propertyID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Vacate ends the occupancy: the tenant goes inactive, the property link is
// cleared and an event carrying the prior values is emitted for the audit
// trail.
func (t *Tenant) Vacate(date time.Time) error {
	if !t.Active {
		return shared.NewDomainError("INVALID_STATE", "Tenant is already inactive")
	}
	if date.Before(t.OccupancyStart) {
		return shared.NewDomainError("INVALID_VACATE_DATE", "Vacate date cannot precede the occupancy start")
	}

	previousProperty := t.PropertyID

	t.Active = false
	t.PropertyID = nil
	t.VacatedAt = &date
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantVacatedEvent(t, previousProperty, date))

	return nil
}

// SetOccupancyStart changes the billing anchor. The occupancy date drives
// every historical debt computation, so a change requires a reason and leaves
// an event behind.
func (t *Tenant) SetOccupancyStart(date time.Time, reason string) error {
	if date.IsZero() {
		return shared.NewDomainError("INVALID_OCCUPANCY_DATE", "Occupancy start date is required")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Changing the occupancy date requires a reason")
	}

	previous := t.OccupancyStart
	t.OccupancyStart = date
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantOccupancyChangedEvent(t, previous, date, reason))

	return nil
}

// AddService contracts a recurring service for the tenant. An existing
// service of the same type is replaced.
func (t *Tenant) AddService(serviceType string, monthlyAmount decimal.Decimal) error {
	if strings.TrimSpace(serviceType) == "" {
		return shared.NewDomainError("INVALID_SERVICE", "Service type cannot be empty")
	}
	if monthlyAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Monthly amount for %s must be positive", serviceType))
	}

	for i := range t.Services {
		if strings.EqualFold(t.Services[i].Type, serviceType) {
			t.Services[i].MonthlyAmount = monthlyAmount
			t.UpdatedAt = time.Now()
			t.IncrementVersion()
			return nil
		}
	}

	t.Services = append(t.Services, ContractedService{Type: serviceType, MonthlyAmount: monthlyAmount})
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// RemoveService drops a contracted service
func (t *Tenant) RemoveService(serviceType string) error {
	for i := range t.Services {
		if strings.EqualFold(t.Services[i].Type, serviceType) {
			t.Services = append(t.Services[:i], t.Services[i+1:]...)
			t.UpdatedAt = time.Now()
			t.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// BillableServices returns the services that generate monthly obligations:
// only when the tenant is in pays-services mode, and only entries with a
// positive contracted amount.
func (t *Tenant) BillableServices() []ContractedService {
	if !t.PaysServices {
		return nil
	}
	billable := make([]ContractedService, 0, len(t.Services))
	for _, s := range t.Services {
		if s.MonthlyAmount.GreaterThan(decimal.Zero) {
			billable = append(billable, s)
		}
	}
	return billable
}

// OccupancyEnd returns the end of the occupancy span for debt accrual: the
// vacate date when vacated, otherwise the supplied reference instant.
func (t *Tenant) OccupancyEnd(now time.Time) time.Time {
	if t.VacatedAt != nil && t.VacatedAt.Before(now) {
		return *t.VacatedAt
	}
	return now
}
