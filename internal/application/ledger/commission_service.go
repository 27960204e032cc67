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

// CommissionService computes the monthly management fee and tracks whether
// it has been taken
type CommissionService struct {
	recordRepo     ledger.PaymentRecordRepository
	commissionRepo ledger.CommissionRepository
	tenantRepo     leasing.TenantRepository
	propertyRepo   leasing.PropertyRepository
	calculator     *ledger.CommissionCalculator
	logger         *zap.Logger
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(
	recordRepo ledger.PaymentRecordRepository,
	commissionRepo ledger.CommissionRepository,
	tenantRepo leasing.TenantRepository,
	propertyRepo leasing.PropertyRepository,
	logger *zap.Logger,
) *CommissionService {
	return &CommissionService{
		recordRepo:     recordRepo,
		commissionRepo: commissionRepo,
		tenantRepo:     tenantRepo,
		propertyRepo:   propertyRepo,
		calculator:     ledger.NewCommissionCalculator(),
		logger:         logger,
	}
}

// PendingTenant names an occupied property whose rent for the month has not
// been collected yet
type PendingTenant struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
}

// CommissionReport is the month's fee plus its completeness picture
type CommissionReport struct {
	Summary   ledger.CommissionSummary `json:"summary"`
	Complete  bool                     `json:"complete"`
	Pending   []PendingTenant          `json:"pending,omitempty"`
	Collected bool                     `json:"collected"`
}

// ComputeMonthly derives the fee for a period from the settled records whose
// money landed in it, and reports which occupied properties have not paid yet
func (s *CommissionService) ComputeMonthly(ctx context.Context, period ledger.Period) (*CommissionReport, error) {
	settled, err := s.recordRepo.FindSettled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settled records: %w", err)
	}

	report := &CommissionReport{
		Summary: s.calculator.Compute(period, settled),
		Pending: []PendingTenant{},
	}

	pending, err := s.pendingTenants(ctx, period)
	if err != nil {
		return nil, err
	}
	report.Pending = pending
	report.Complete = len(pending) == 0

	existing, err := s.commissionRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission record: %w", err)
	}
	if existing != nil {
		report.Collected = existing.Collected
	}
	return report, nil
}

// SetCollected records that the manager took the month's fee. Collection is
// gated on completeness: while any occupied property still owes the month's
// rent, the fee cannot be marked collected.
func (s *CommissionService) SetCollected(ctx context.Context, period ledger.Period, collected bool) (*ledger.CommissionRecord, error) {
	record, err := s.commissionRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission record: %w", err)
	}

	if !collected {
		if record == nil {
			return nil, shared.ErrNotFound
		}
		record.MarkUncollected()
		if err := s.commissionRepo.SaveWithLock(ctx, record); err != nil {
			return nil, err
		}
		return record, nil
	}

	pending, err := s.pendingTenants(ctx, period)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("%d tenants still owe rent for %s", len(pending), period.String()))
	}

	settled, err := s.recordRepo.FindSettled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settled records: %w", err)
	}
	summary := s.calculator.Compute(period, settled)

	if record == nil {
		record, err = ledger.NewCommissionRecord(period, summary.Commission)
		if err != nil {
			return nil, err
		}
		if err := record.MarkCollected(time.Now()); err != nil {
			return nil, err
		}
		if err := s.commissionRepo.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save commission record: %w", err)
		}
	} else {
		record.Amount = summary.Commission
		if err := record.MarkCollected(time.Now()); err != nil {
			return nil, err
		}
		if err := s.commissionRepo.SaveWithLock(ctx, record); err != nil {
			return nil, err
		}
	}

	s.logger.Info("commission marked collected",
		zap.String("period", period.String()),
		zap.String("amount", record.Amount.String()),
	)
	return record, nil
}

// YearOverview returns the stored commission records for a year
func (s *CommissionService) YearOverview(ctx context.Context, year int) ([]ledger.CommissionRecord, error) {
	return s.commissionRepo.FindByYear(ctx, year)
}

// pendingTenants lists tenants on occupied properties without a settled
// record for the period
func (s *CommissionService) pendingTenants(ctx context.Context, period ledger.Period) ([]PendingTenant, error) {
	occupied, err := s.propertyRepo.FindByState(ctx, leasing.PropertyStateOccupied)
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied properties: %w", err)
	}

	pending := []PendingTenant{}
	for i := range occupied {
		tenant, err := s.tenantRepo.FindByProperty(ctx, occupied[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load tenant for property: %w", err)
		}
		if tenant == nil {
			continue
		}
		record, err := s.recordRepo.FindByTenantPeriod(ctx, tenant.ID, period)
		if err != nil {
			return nil, fmt.Errorf("failed to load payment record: %w", err)
		}
		if record == nil || !record.IsSettled() {
			pending = append(pending, PendingTenant{TenantID: tenant.ID, TenantName: tenant.Name})
		}
	}
	return pending, nil
}
