package leasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TenantService coordinates tenant lifecycle operations, keeping the tenant
// and property aggregates in step
type TenantService struct {
	tenantRepo   leasing.TenantRepository
	propertyRepo leasing.PropertyRepository
	logger       *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo leasing.TenantRepository,
	propertyRepo leasing.PropertyRepository,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// RegisterTenantRequest carries a new tenant's intake data
type RegisterTenantRequest struct {
	Name           string
	OccupancyStart time.Time
	PaysServices   bool
	PropertyID     *uuid.UUID
	Phone          string
	Notes          string
}

// Register creates a tenant and, when a property is given, moves them in
func (s *TenantService) Register(ctx context.Context, req RegisterTenantRequest) (*leasing.Tenant, error) {
	tenant, err := leasing.NewTenant(req.Name, req.OccupancyStart, req.PaysServices)
	if err != nil {
		return nil, err
	}
	tenant.Phone = req.Phone
	tenant.Notes = req.Notes

	if req.PropertyID != nil {
		property, err := s.propertyRepo.FindByID(ctx, *req.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load property: %w", err)
		}
		if property == nil {
			return nil, shared.ErrNotFound
		}
		if err := property.Occupy(tenant.ID); err != nil {
			return nil, err
		}
		if err := tenant.AssignProperty(property.ID); err != nil {
			return nil, err
		}
		if err := s.propertyRepo.SaveWithLock(ctx, property); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.logger.Info("tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("name", tenant.Name),
	)
	return tenant, nil
}

// Vacate ends a tenancy and releases the property back to the pool
func (s *TenantService) Vacate(ctx context.Context, tenantID uuid.UUID, date time.Time) error {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return shared.ErrNotFound
	}

	previousProperty := tenant.PropertyID
	if err := tenant.Vacate(date); err != nil {
		return err
	}

	if previousProperty != nil {
		property, err := s.propertyRepo.FindByID(ctx, *previousProperty)
		if err != nil {
			return fmt.Errorf("failed to load property: %w", err)
		}
		if property != nil && property.IsOccupied() {
			if err := property.Release(); err != nil {
				return err
			}
			if err := s.propertyRepo.SaveWithLock(ctx, property); err != nil {
				return err
			}
		}
	}

	if err := s.tenantRepo.SaveWithLock(ctx, tenant); err != nil {
		return err
	}

	s.logger.Info("tenant vacated",
		zap.String("tenant_id", tenantID.String()),
		zap.Time("date", date),
	)
	return nil
}

// ChangeOccupancyStart moves the billing anchor, requiring a reason since it
// rewrites what the debt calendar covers
func (s *TenantService) ChangeOccupancyStart(ctx context.Context, tenantID uuid.UUID, date time.Time, reason string) error {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return shared.ErrNotFound
	}
	if err := tenant.SetOccupancyStart(date, reason); err != nil {
		return err
	}
	return s.tenantRepo.SaveWithLock(ctx, tenant)
}

// SetService contracts or updates a recurring service for the tenant
func (s *TenantService) SetService(ctx context.Context, tenantID uuid.UUID, serviceType string, amount decimal.Decimal) error {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return shared.ErrNotFound
	}
	if err := tenant.AddService(serviceType, amount); err != nil {
		return err
	}
	return s.tenantRepo.SaveWithLock(ctx, tenant)
}

// RemoveService drops a contracted service
func (s *TenantService) RemoveService(ctx context.Context, tenantID uuid.UUID, serviceType string) error {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return shared.ErrNotFound
	}
	if err := tenant.RemoveService(serviceType); err != nil {
		return err
	}
	return s.tenantRepo.SaveWithLock(ctx, tenant)
}

// Get returns one tenant
func (s *TenantService) Get(ctx context.Context, tenantID uuid.UUID) (*leasing.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, shared.ErrNotFound
	}
	return tenant, nil
}

// List returns tenants under the given filter
func (s *TenantService) List(ctx context.Context, filter shared.Filter) ([]leasing.Tenant, error) {
	return s.tenantRepo.FindAll(ctx, filter)
}
