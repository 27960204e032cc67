package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// defaultIdempotencyTTL bounds how long a processed payment key blocks replays
const defaultIdempotencyTTL = 24 * time.Hour

// PaymentService registers tenant payments against monthly records
type PaymentService struct {
	recordRepo     ledger.PaymentRecordRepository
	tenantRepo     leasing.TenantRepository
	propertyRepo   leasing.PropertyRepository
	furnitureRepo  leasing.FurnitureRepository
	creditService  *CreditService
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	resolver       *ledger.ObligationResolver
	logger         *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	recordRepo ledger.PaymentRecordRepository,
	tenantRepo leasing.TenantRepository,
	propertyRepo leasing.PropertyRepository,
	furnitureRepo leasing.FurnitureRepository,
	creditService *CreditService,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		recordRepo:     recordRepo,
		tenantRepo:     tenantRepo,
		propertyRepo:   propertyRepo,
		furnitureRepo:  furnitureRepo,
		creditService:  creditService,
		idempotency:    idempotency,
		idempotencyTTL: defaultIdempotencyTTL,
		resolver:       ledger.NewObligationResolver(),
		logger:         logger,
	}
}

// SetIdempotencyTTL overrides how long a processed payment key blocks replays
func (s *PaymentService) SetIdempotencyTTL(ttl time.Duration) {
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// RegisterPaymentRequest carries one incoming payment
type RegisterPaymentRequest struct {
	TenantID       uuid.UUID
	Year           int
	MonthName      string
	Amount         decimal.Decimal
	PaidAt         time.Time
	Note           string
	IdempotencyKey string
}

// RegisterPaymentResult reports what the payment did to the ledger
type RegisterPaymentResult struct {
	RecordID      uuid.UUID            `json:"record_id"`
	Period        string               `json:"period"`
	Applied       decimal.Decimal      `json:"applied"`
	Excess        decimal.Decimal      `json:"excess"`
	Status        ledger.PaymentStatus `json:"status"`
	Outstanding   decimal.Decimal      `json:"outstanding"`
	CreditID      *uuid.UUID           `json:"credit_id,omitempty"`
	RecordCreated bool                 `json:"record_created"`
}

// RegisterPayment applies a payment to the tenant's record for the period,
// opening the record from the current obligations when none exists yet.
// Money beyond the record's outstanding balance lands in the tenant's credit
// balance. An already settled period rejects the payment outright.
func (s *PaymentService) RegisterPayment(ctx context.Context, req RegisterPaymentRequest) (*RegisterPaymentResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	period, err := ledger.PeriodFromName(req.MonthName, req.Year)
	if err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		fresh, err := s.idempotency.MarkProcessed(ctx, req.IdempotencyKey, s.idempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !fresh {
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "This payment was already submitted")
		}
	}

	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, shared.ErrNotFound
	}

	record, err := s.recordRepo.FindByTenantPeriod(ctx, req.TenantID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment record: %w", err)
	}

	created := false
	if record == nil {
		record, err = s.openRecord(ctx, tenant, period)
		if err != nil {
			return nil, err
		}
		created = true
	} else if record.IsSettled() {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Period %s is already settled for this tenant", period.String()))
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	excess, err := record.AddInstallment(req.Amount, paidAt, ledger.OriginManual, req.Note)
	if err != nil {
		return nil, err
	}

	if created {
		if err := s.recordRepo.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save payment record: %w", err)
		}
	} else if err := s.recordRepo.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}

	result := &RegisterPaymentResult{
		RecordID:      record.ID,
		Period:        period.String(),
		Applied:       req.Amount.Sub(excess),
		Excess:        excess,
		Status:        record.Status,
		Outstanding:   record.Outstanding(),
		RecordCreated: created,
	}

	if excess.GreaterThan(decimal.Zero) {
		note := fmt.Sprintf("Excedente de %s", period.String())
		credit, err := s.creditService.CreateOrMerge(ctx, req.TenantID, excess, note)
		if err != nil {
			// The payment itself is committed; the operator can bank the
			// excess manually if this retry path also fails
			s.logger.Error("failed to bank payment excess as credit",
				zap.String("tenant_id", req.TenantID.String()),
				zap.String("excess", excess.String()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("payment applied but excess not banked: %w", err)
		}
		result.CreditID = &credit.ID
	}

	s.logger.Info("payment registered",
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("period", period.String()),
		zap.String("applied", result.Applied.String()),
		zap.String("status", string(record.Status)),
		zap.Bool("record_created", created),
	)
	return result, nil
}

// openRecord creates the period's record from the tenant's current obligations
func (s *PaymentService) openRecord(ctx context.Context, tenant *leasing.Tenant, period ledger.Period) (*ledger.PaymentRecord, error) {
	var property *leasing.Property
	propertyID := uuid.Nil
	if tenant.PropertyID != nil {
		var err error
		property, err = s.propertyRepo.FindByID(ctx, *tenant.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load property: %w", err)
		}
		if property != nil {
			propertyID = property.ID
		}
	}

	furniture, err := s.furnitureRepo.FindAssignedTo(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load furniture: %w", err)
	}

	obligations := s.resolver.Resolve(tenant, property, furniture, period)
	total := obligations.Total()
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Tenant has no obligations for %s", period.String()))
	}
	return ledger.NewPaymentRecord(tenant.ID, propertyID, period, total)
}

// MarkServicePaid flags a service charge as covered on the period's record
func (s *PaymentService) MarkServicePaid(ctx context.Context, recordID uuid.UUID, serviceType string, amount decimal.Decimal) error {
	record, err := s.loadRecord(ctx, recordID)
	if err != nil {
		return err
	}
	if err := record.MarkServicePaid(serviceType, amount); err != nil {
		return err
	}
	return s.recordRepo.SaveWithLock(ctx, record)
}

// MarkFurniturePaid flags the furniture charge as covered on the period's record
func (s *PaymentService) MarkFurniturePaid(ctx context.Context, recordID uuid.UUID, amount decimal.Decimal) error {
	record, err := s.loadRecord(ctx, recordID)
	if err != nil {
		return err
	}
	if err := record.MarkFurniturePaid(amount); err != nil {
		return err
	}
	return s.recordRepo.SaveWithLock(ctx, record)
}

// RefreshOverdue walks a tenant's open records and flips the ones past due
func (s *PaymentService) RefreshOverdue(ctx context.Context, tenantID uuid.UUID) (int, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return 0, shared.ErrNotFound
	}

	records, err := s.recordRepo.FindOutstandingByTenant(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to load records: %w", err)
	}

	now := time.Now()
	flipped := 0
	for i := range records {
		record := &records[i]
		before := record.Status
		if err := record.RefreshStatus(now, tenant.BillingAnchorDay()); err != nil {
			s.logger.Warn("skipping overdue refresh for record",
				zap.String("record_id", record.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if record.Status == before {
			continue
		}
		if err := s.recordRepo.SaveWithLock(ctx, record); err != nil {
			return flipped, err
		}
		flipped++
	}
	return flipped, nil
}

// GetRecord returns a single payment record by ID
func (s *PaymentService) GetRecord(ctx context.Context, recordID uuid.UUID) (*ledger.PaymentRecord, error) {
	return s.loadRecord(ctx, recordID)
}

// ListRecords returns payment records matching the filter, paginated
func (s *PaymentService) ListRecords(ctx context.Context, filter shared.Filter) (*shared.Paginated[ledger.PaymentRecord], error) {
	page, err := s.recordRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}
	return page, nil
}

func (s *PaymentService) loadRecord(ctx context.Context, recordID uuid.UUID) (*ledger.PaymentRecord, error) {
	record, err := s.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment record: %w", err)
	}
	if record == nil {
		return nil, shared.ErrNotFound
	}
	return record, nil
}
