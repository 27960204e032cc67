package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ArrearsService assembles the snapshot a debt computation needs and runs
// the calculator over it
type ArrearsService struct {
	tenantRepo    leasing.TenantRepository
	propertyRepo  leasing.PropertyRepository
	furnitureRepo leasing.FurnitureRepository
	recordRepo    ledger.PaymentRecordRepository
	calculator    *ledger.ArrearsCalculator
	logger        *zap.Logger
}

// NewArrearsService creates a new ArrearsService
func NewArrearsService(
	tenantRepo leasing.TenantRepository,
	propertyRepo leasing.PropertyRepository,
	furnitureRepo leasing.FurnitureRepository,
	recordRepo ledger.PaymentRecordRepository,
	logger *zap.Logger,
) *ArrearsService {
	return &ArrearsService{
		tenantRepo:    tenantRepo,
		propertyRepo:  propertyRepo,
		furnitureRepo: furnitureRepo,
		recordRepo:    recordRepo,
		calculator:    ledger.NewArrearsCalculator(),
		logger:        logger,
	}
}

// ComputeForTenant produces the arrears picture for one tenant as of now
func (s *ArrearsService) ComputeForTenant(ctx context.Context, tenantID uuid.UUID) (*ledger.TenantArrears, error) {
	return s.computeForTenant(ctx, tenantID, time.Now())
}

// ComputeForTenantAt produces the arrears picture anchored at a caller-chosen
// instant, which keeps report endpoints reproducible
func (s *ArrearsService) ComputeForTenantAt(ctx context.Context, tenantID uuid.UUID, now time.Time) (*ledger.TenantArrears, error) {
	return s.computeForTenant(ctx, tenantID, now)
}

func (s *ArrearsService) computeForTenant(ctx context.Context, tenantID uuid.UUID, now time.Time) (*ledger.TenantArrears, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, shared.ErrNotFound
	}

	var property *leasing.Property
	if tenant.PropertyID != nil {
		property, err = s.propertyRepo.FindByID(ctx, *tenant.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load property: %w", err)
		}
	}

	furniture, err := s.furnitureRepo.FindAssignedTo(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load furniture: %w", err)
	}

	records, err := s.recordRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment records: %w", err)
	}

	result, err := s.calculator.Compute(ledger.ArrearsInput{
		Tenant:    tenant,
		Property:  property,
		Furniture: furniture,
		Records:   records,
		Now:       now,
	})
	if err != nil {
		return nil, err
	}

	for _, skipped := range result.Skipped {
		s.logger.Warn("payment record excluded from arrears aggregation",
			zap.String("record_id", skipped.RecordID.String()),
			zap.String("tenant_id", tenantID.String()),
			zap.String("reason", skipped.Reason),
		)
	}
	return result, nil
}

// ComputeAll runs the arrears computation over every active tenant. Tenants
// whose computation fails are logged and omitted rather than failing the
// whole report.
func (s *ArrearsService) ComputeAll(ctx context.Context) ([]ledger.TenantArrears, error) {
	tenants, err := s.tenantRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenants: %w", err)
	}

	now := time.Now()
	results := make([]ledger.TenantArrears, 0, len(tenants))
	for i := range tenants {
		result, err := s.computeForTenant(ctx, tenants[i].ID, now)
		if err != nil {
			s.logger.Error("arrears computation failed for tenant",
				zap.String("tenant_id", tenants[i].ID.String()),
				zap.Error(err),
			)
			continue
		}
		if len(result.Periods) > 0 {
			results = append(results, *result)
		}
	}
	return results, nil
}
