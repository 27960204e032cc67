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

// FurnitureService manages rentable furniture and its tenant assignments
type FurnitureService struct {
	furnitureRepo leasing.FurnitureRepository
	tenantRepo    leasing.TenantRepository
	logger        *zap.Logger
}

// NewFurnitureService creates a new FurnitureService
func NewFurnitureService(
	furnitureRepo leasing.FurnitureRepository,
	tenantRepo leasing.TenantRepository,
	logger *zap.Logger,
) *FurnitureService {
	return &FurnitureService{
		furnitureRepo: furnitureRepo,
		tenantRepo:    tenantRepo,
		logger:        logger,
	}
}

// Create adds a furniture item to the inventory
func (s *FurnitureService) Create(ctx context.Context, name string, monthlyCost decimal.Decimal) (*leasing.FurnitureItem, error) {
	item, err := leasing.NewFurnitureItem(name, monthlyCost)
	if err != nil {
		return nil, err
	}
	if err := s.furnitureRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save furniture item: %w", err)
	}
	return item, nil
}

// Assign rents a quantity of the item to an active tenant
func (s *FurnitureService) Assign(ctx context.Context, itemID, tenantID uuid.UUID, quantity int) error {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return shared.ErrNotFound
	}
	if !tenant.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot assign furniture to an inactive tenant")
	}

	item, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}
	if err := item.AssignTo(tenantID, quantity); err != nil {
		return err
	}
	if err := s.furnitureRepo.SaveWithLock(ctx, item); err != nil {
		return err
	}

	s.logger.Info("furniture assigned",
		zap.String("item_id", itemID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.Int("quantity", quantity),
	)
	return nil
}

// Unassign ends the tenant's rental of the item
func (s *FurnitureService) Unassign(ctx context.Context, itemID, tenantID uuid.UUID) error {
	item, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}
	if err := item.Unassign(tenantID); err != nil {
		return err
	}
	return s.furnitureRepo.SaveWithLock(ctx, item)
}

// MonthlyCostFor totals the tenant's active furniture charges across items
func (s *FurnitureService) MonthlyCostFor(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	items, err := s.furnitureRepo.FindAssignedTo(ctx, tenantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load furniture: %w", err)
	}
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].ActiveCostFor(tenantID))
	}
	return total, nil
}

// List returns furniture items under the given filter
func (s *FurnitureService) List(ctx context.Context, filter shared.Filter) ([]leasing.FurnitureItem, error) {
	return s.furnitureRepo.FindAll(ctx, filter)
}

func (s *FurnitureService) load(ctx context.Context, itemID uuid.UUID) (*leasing.FurnitureItem, error) {
	item, err := s.furnitureRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load furniture item: %w", err)
	}
	if item == nil {
		return nil, shared.ErrNotFound
	}
	return item, nil
}
