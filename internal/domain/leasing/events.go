package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// Event types for the leasing context
const (
	EventTypeTenantRegistered       = "leasing.tenant.registered"
	EventTypeTenantVacated          = "leasing.tenant.vacated"
	EventTypeTenantOccupancyChanged = "leasing.tenant.occupancy_changed"
)

// TenantRegisteredEvent is emitted when a new tenant is registered
type TenantRegisteredEvent struct {
	shared.BaseDomainEvent
	Name           string    `json:"name"`
	OccupancyStart time.Time `json:"occupancy_start"`
}

// NewTenantRegisteredEvent creates a new TenantRegisteredEvent
func NewTenantRegisteredEvent(t *Tenant) *TenantRegisteredEvent {
	return &TenantRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantRegistered, "Tenant", t.ID),
		Name:            t.Name,
		OccupancyStart:  t.OccupancyStart,
	}
}

// TenantVacatedEvent is emitted when a tenant vacates; it carries the prior
// property link so the change stays auditable.
type TenantVacatedEvent struct {
	shared.BaseDomainEvent
	PreviousPropertyID *uuid.UUID `json:"previous_property_id"`
	VacatedAt          time.Time  `json:"vacated_at"`
}

// NewTenantVacatedEvent creates a new TenantVacatedEvent
func NewTenantVacatedEvent(t *Tenant, previousPropertyID *uuid.UUID, vacatedAt time.Time) *TenantVacatedEvent {
	return &TenantVacatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeTenantVacated, "Tenant", t.ID),
		PreviousPropertyID: previousPropertyID,
		VacatedAt:          vacatedAt,
	}
}

// TenantOccupancyChangedEvent is emitted when the occupancy start (billing
// anchor) changes. Historical debt derives from this date, so the old and new
// values and the operator's reason are recorded.
type TenantOccupancyChangedEvent struct {
	shared.BaseDomainEvent
	PreviousStart time.Time `json:"previous_start"`
	NewStart      time.Time `json:"new_start"`
	Reason        string    `json:"reason"`
}

// NewTenantOccupancyChangedEvent creates a new TenantOccupancyChangedEvent
func NewTenantOccupancyChangedEvent(t *Tenant, previous, next time.Time, reason string) *TenantOccupancyChangedEvent {
	return &TenantOccupancyChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantOccupancyChanged, "Tenant", t.ID),
		PreviousStart:   previous,
		NewStart:        next,
		Reason:          reason,
	}
}
