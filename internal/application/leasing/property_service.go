package leasing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PropertyService manages the rentable property pool
type PropertyService struct {
	propertyRepo leasing.PropertyRepository
	logger       *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo leasing.PropertyRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{propertyRepo: propertyRepo, logger: logger}
}

// Create adds a property to the pool
func (s *PropertyService) Create(ctx context.Context, name, address string, monthlyRent decimal.Decimal) (*leasing.Property, error) {
	property, err := leasing.NewProperty(name, address, monthlyRent)
	if err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to save property: %w", err)
	}
	s.logger.Info("property created",
		zap.String("property_id", property.ID.String()),
		zap.String("name", property.Name),
	)
	return property, nil
}

// SetMonthlyRent changes what new obligation computations will charge
func (s *PropertyService) SetMonthlyRent(ctx context.Context, propertyID uuid.UUID, amount decimal.Decimal) error {
	property, err := s.load(ctx, propertyID)
	if err != nil {
		return err
	}
	if err := property.SetMonthlyRent(amount); err != nil {
		return err
	}
	return s.propertyRepo.SaveWithLock(ctx, property)
}

// StartMaintenance pulls an available property out of the pool
func (s *PropertyService) StartMaintenance(ctx context.Context, propertyID uuid.UUID) error {
	property, err := s.load(ctx, propertyID)
	if err != nil {
		return err
	}
	if err := property.StartMaintenance(); err != nil {
		return err
	}
	return s.propertyRepo.SaveWithLock(ctx, property)
}

// EndMaintenance returns the property to the pool
func (s *PropertyService) EndMaintenance(ctx context.Context, propertyID uuid.UUID) error {
	property, err := s.load(ctx, propertyID)
	if err != nil {
		return err
	}
	if err := property.EndMaintenance(); err != nil {
		return err
	}
	return s.propertyRepo.SaveWithLock(ctx, property)
}

// Get returns one property
func (s *PropertyService) Get(ctx context.Context, propertyID uuid.UUID) (*leasing.Property, error) {
	return s.load(ctx, propertyID)
}

// List returns properties under the given filter
func (s *PropertyService) List(ctx context.Context, filter shared.Filter) ([]leasing.Property, error) {
	return s.propertyRepo.FindAll(ctx, filter)
}

// ListByState returns properties in a given occupancy state
func (s *PropertyService) ListByState(ctx context.Context, state leasing.PropertyState) ([]leasing.Property, error) {
	if !state.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Unknown property state %q", state))
	}
	return s.propertyRepo.FindByState(ctx, state)
}

func (s *PropertyService) load(ctx context.Context, propertyID uuid.UUID) (*leasing.Property, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if property == nil {
		return nil, shared.ErrNotFound
	}
	return property, nil
}
