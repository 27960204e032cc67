package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// PaymentRecordRepository is the repository interface for payment records
type PaymentRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentRecord, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]PaymentRecord, error)
	FindByTenantPeriod(ctx context.Context, tenantID uuid.UUID, period Period) (*PaymentRecord, error)
	FindByPeriod(ctx context.Context, period Period) ([]PaymentRecord, error)
	FindOutstandingByTenant(ctx context.Context, tenantID uuid.UUID) ([]PaymentRecord, error)
	FindSettled(ctx context.Context) ([]PaymentRecord, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[PaymentRecord], error)
	Save(ctx context.Context, record *PaymentRecord) error
	SaveWithLock(ctx context.Context, record *PaymentRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreditBalanceRepository is the repository interface for credit balances
type CreditBalanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CreditBalance, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]CreditBalance, error)
	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]CreditBalance, error)
	Save(ctx context.Context, credit *CreditBalance) error
	SaveWithLock(ctx context.Context, credit *CreditBalance) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommissionRepository is the repository interface for commission records
type CommissionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CommissionRecord, error)
	FindByPeriod(ctx context.Context, period Period) (*CommissionRecord, error)
	FindByYear(ctx context.Context, year int) ([]CommissionRecord, error)
	Save(ctx context.Context, record *CommissionRecord) error
	SaveWithLock(ctx context.Context, record *CommissionRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}
