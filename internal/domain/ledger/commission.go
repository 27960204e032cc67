package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CommissionRate is the management fee percentage taken from collected rent
var CommissionRate = decimal.NewFromInt(10)

// CommissionRecord tracks whether the management fee for a month has been
// collected by the manager
type CommissionRecord struct {
	shared.BaseAggregateRoot
	Year        int             `json:"year"`
	Month       time.Month      `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Collected   bool            `json:"collected"`
	CollectedAt *time.Time      `json:"collected_at,omitempty"`
}

// NewCommissionRecord opens a commission record for a period
func NewCommissionRecord(period Period, amount decimal.Decimal) (*CommissionRecord, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "commission amount cannot be negative")
	}
	return &CommissionRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Year:              period.Year,
		Month:             period.Month,
		Amount:            amount,
	}, nil
}

// Period returns the record's period
func (r *CommissionRecord) Period() Period {
	return Period{Year: r.Year, Month: r.Month}
}

// MarkCollected registers that the manager took the fee
func (r *CommissionRecord) MarkCollected(at time.Time) error {
	if r.Collected {
		return shared.NewDomainError("INVALID_STATE", "commission is already collected")
	}
	r.Collected = true
	r.CollectedAt = &at
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// MarkUncollected reverses a collection mark
func (r *CommissionRecord) MarkUncollected() {
	r.Collected = false
	r.CollectedAt = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// CommissionEntry is one settled record's contribution to the month's fee
type CommissionEntry struct {
	RecordID   uuid.UUID       `json:"record_id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	RentPaid   decimal.Decimal `json:"rent_paid"`
	Commission decimal.Decimal `json:"commission"`
}

// CommissionSummary is the month's collected rent and the fee it yields
type CommissionSummary struct {
	Period        Period            `json:"period"`
	RentCollected decimal.Decimal   `json:"rent_collected"`
	Commission    decimal.Decimal   `json:"commission"`
	Entries       []CommissionEntry `json:"entries"`
}

// CommissionCalculator derives the management fee from settled payment
// records, counting only the rent portion of each record and only records
// whose money landed in the requested month
type CommissionCalculator struct{}

// NewCommissionCalculator creates a new CommissionCalculator
func NewCommissionCalculator() *CommissionCalculator {
	return &CommissionCalculator{}
}

// Compute sums the rent collected in the period and takes the fee from it
func (c *CommissionCalculator) Compute(period Period, records []PaymentRecord) CommissionSummary {
	summary := CommissionSummary{
		Period:        period,
		RentCollected: decimal.Zero,
		Commission:    decimal.Zero,
		Entries:       []CommissionEntry{},
	}

	for i := range records {
		record := &records[i]
		if !record.IsSettled() {
			continue
		}
		paidIn, err := record.PaymentMonth()
		if err != nil || !paidIn.Equal(period) {
			continue
		}
		rent := record.RentPaid()
		if rent.IsZero() {
			continue
		}
		fee := valueobject.NewMoneyMXN(rent).CalculatePercentage(CommissionRate).Round(2)
		entry := CommissionEntry{
			RecordID:   record.ID,
			TenantID:   record.TenantID,
			RentPaid:   rent,
			Commission: fee.Amount(),
		}
		summary.RentCollected = summary.RentCollected.Add(entry.RentPaid)
		summary.Commission = summary.Commission.Add(entry.Commission)
		summary.Entries = append(summary.Entries, entry)
	}
	return summary
}
