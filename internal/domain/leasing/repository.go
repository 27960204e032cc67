package leasing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindAll finds all tenants with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)

	// FindActive finds all active tenants
	FindActive(ctx context.Context) ([]Tenant, error)

	// FindByProperty finds the tenant currently linked to a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID) (*Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, tenant *Tenant) error

	// Delete removes a tenant
	Delete(ctx context.Context, id uuid.UUID) error
}

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID finds a property by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindAll finds all properties with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Property, error)

	// FindByState finds properties in the given occupancy state
	FindByState(ctx context.Context, state PropertyState) ([]Property, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, property *Property) error

	// Delete removes a property
	Delete(ctx context.Context, id uuid.UUID) error
}

// FurnitureRepository defines the interface for furniture persistence
type FurnitureRepository interface {
	// FindByID finds a furniture item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FurnitureItem, error)

	// FindAll finds all furniture items with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]FurnitureItem, error)

	// FindAssignedTo finds items with an active assignment for the tenant
	FindAssignedTo(ctx context.Context, tenantID uuid.UUID) ([]FurnitureItem, error)

	// Save creates or updates a furniture item
	Save(ctx context.Context, item *FurnitureItem) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, item *FurnitureItem) error

	// Delete removes a furniture item
	Delete(ctx context.Context, id uuid.UUID) error
}
