package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreditService manages tenant credit balances (saldo a favor)
type CreditService struct {
	creditRepo ledger.CreditBalanceRepository
	recordRepo ledger.PaymentRecordRepository
	logger     *zap.Logger
}

// NewCreditService creates a new CreditService
func NewCreditService(
	creditRepo ledger.CreditBalanceRepository,
	recordRepo ledger.PaymentRecordRepository,
	logger *zap.Logger,
) *CreditService {
	return &CreditService{
		creditRepo: creditRepo,
		recordRepo: recordRepo,
		logger:     logger,
	}
}

// CreateOrMerge banks an overpayment. A tenant keeps at most one active
// credit entry, so an existing one absorbs the new amount instead of a
// second entry appearing.
func (s *CreditService) CreateOrMerge(ctx context.Context, tenantID uuid.UUID, amount decimal.Decimal, note string) (*ledger.CreditBalance, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}

	active, err := s.creditRepo.FindActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credits: %w", err)
	}

	if len(active) > 0 {
		credit := &active[0]
		if err := credit.Merge(amount, note); err != nil {
			return nil, err
		}
		if err := s.creditRepo.SaveWithLock(ctx, credit); err != nil {
			return nil, err
		}
		return credit, nil
	}

	credit, err := ledger.NewCreditBalance(tenantID, amount, note)
	if err != nil {
		return nil, err
	}
	if err := s.creditRepo.Save(ctx, credit); err != nil {
		return nil, fmt.Errorf("failed to save credit: %w", err)
	}
	return credit, nil
}

// CreditApplicationResult reports where the credit went
type CreditApplicationResult struct {
	CreditID  uuid.UUID         `json:"credit_id"`
	Applied   []AppliedToRecord `json:"applied"`
	Remaining decimal.Decimal   `json:"remaining"`
}

// AppliedToRecord is one record's share of an applied credit
type AppliedToRecord struct {
	RecordID uuid.UUID       `json:"record_id"`
	Period   string          `json:"period"`
	Amount   decimal.Decimal `json:"amount"`
}

// ApplyToOutstanding applies the tenant's active credit to the oldest unpaid
// record, one record per call. The applied amount is capped at that record's
// outstanding balance; leftover credit stays banked for the next call. With
// no active credit or no outstanding records there is nothing to do and the
// call says so.
func (s *CreditService) ApplyToOutstanding(ctx context.Context, tenantID uuid.UUID) (*CreditApplicationResult, error) {
	active, err := s.creditRepo.FindActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credits: %w", err)
	}
	if len(active) == 0 {
		return nil, shared.ErrNothingToApply
	}
	credit := &active[0]

	records, err := s.recordRepo.FindOutstandingByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	type target struct {
		record *ledger.PaymentRecord
		period ledger.Period
	}
	targets := make([]target, 0, len(records))
	for i := range records {
		record := &records[i]
		period, err := record.Period()
		if err != nil {
			s.logger.Warn("record excluded from credit application",
				zap.String("record_id", record.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if record.Outstanding().GreaterThan(decimal.Zero) {
			targets = append(targets, target{record: record, period: period})
		}
	}
	if len(targets) == 0 {
		return nil, shared.ErrNothingToApply
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].period.Before(targets[j].period)
	})

	tgt := targets[0]

	now := time.Now()
	share := credit.RemainingAmount
	if outstanding := tgt.record.Outstanding(); share.GreaterThan(outstanding) {
		share = outstanding
	}

	if _, err := tgt.record.AddInstallment(share, now, ledger.OriginCredit, "Aplicación de saldo a favor"); err != nil {
		return nil, err
	}
	if err := credit.Apply(tgt.record.ID, share, now); err != nil {
		return nil, err
	}

	// The credit entry is the contended aggregate; it is saved first so a
	// lost CAS race leaves the payment record untouched.
	if err := s.creditRepo.SaveWithLock(ctx, credit); err != nil {
		return nil, err
	}
	if err := s.recordRepo.SaveWithLock(ctx, tgt.record); err != nil {
		return nil, err
	}

	result := &CreditApplicationResult{
		CreditID: credit.ID,
		Applied: []AppliedToRecord{{
			RecordID: tgt.record.ID,
			Period:   tgt.period.String(),
			Amount:   share,
		}},
		Remaining: credit.RemainingAmount,
	}

	s.logger.Info("credit applied to oldest outstanding record",
		zap.String("tenant_id", tenantID.String()),
		zap.String("record_id", tgt.record.ID.String()),
		zap.String("applied", share.String()),
		zap.String("remaining", result.Remaining.String()),
	)
	return result, nil
}

// ListForTenant returns every credit entry for the tenant, applied or not
func (s *CreditService) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.CreditBalance, error) {
	return s.creditRepo.FindByTenant(ctx, tenantID)
}
