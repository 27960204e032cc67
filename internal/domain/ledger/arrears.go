package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ServiceArrear is an unpaid service charge within a period
type ServiceArrear struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// PeriodArrears is everything a tenant still owes for one period
type PeriodArrears struct {
	Period       Period          `json:"period"`
	RentDue      decimal.Decimal `json:"rent_due"`
	ServicesDue  []ServiceArrear `json:"services_due"`
	FurnitureDue decimal.Decimal `json:"furniture_due"`
}

// Total sums every category owed in the period
func (p PeriodArrears) Total() decimal.Decimal {
	total := p.RentDue.Add(p.FurnitureDue)
	for _, s := range p.ServicesDue {
		total = total.Add(s.Amount)
	}
	return total
}

// IsEmpty reports whether the period carries no debt at all
func (p PeriodArrears) IsEmpty() bool {
	return p.Total().IsZero()
}

// SkippedRecord names a payment record excluded from the computation and why
type SkippedRecord struct {
	RecordID uuid.UUID `json:"record_id"`
	Reason   string    `json:"reason"`
}

// TenantArrears is the full arrears picture for one tenant, periods in
// chronological order and one grand total per category
type TenantArrears struct {
	TenantID       uuid.UUID       `json:"tenant_id"`
	TenantName     string          `json:"tenant_name"`
	Periods        []PeriodArrears `json:"periods"`
	RentTotal      decimal.Decimal `json:"rent_total"`
	ServicesTotal  decimal.Decimal `json:"services_total"`
	FurnitureTotal decimal.Decimal `json:"furniture_total"`
	Skipped        []SkippedRecord `json:"skipped,omitempty"`
}

// GrandTotal sums every category across every period
func (t *TenantArrears) GrandTotal() decimal.Decimal {
	return t.RentTotal.Add(t.ServicesTotal).Add(t.FurnitureTotal)
}

// ArrearsInput is a point-in-time snapshot of everything the calculator
// needs. The calculator never touches storage; two calls with the same
// input produce the same output.
type ArrearsInput struct {
	Tenant    *leasing.Tenant
	Property  *leasing.Property
	Furniture []leasing.FurnitureItem
	Records   []PaymentRecord
	Now       time.Time
}

// ArrearsCalculator walks a tenant's occupancy calendar and classifies each
// period's obligations as satisfied or owed
type ArrearsCalculator struct {
	resolver *ObligationResolver
}

// NewArrearsCalculator creates a new ArrearsCalculator
func NewArrearsCalculator() *ArrearsCalculator {
	return &ArrearsCalculator{resolver: NewObligationResolver()}
}

// Compute produces the arrears picture for one tenant. Records that fail
// their integrity check are dropped from the aggregation and reported in
// Skipped instead of failing the whole computation.
func (c *ArrearsCalculator) Compute(input ArrearsInput) (*TenantArrears, error) {
	tenant := input.Tenant
	if tenant == nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "tenant is required")
	}
	if tenant.OccupancyStart.IsZero() {
		return nil, shared.NewDomainError("INVALID_STATE", "tenant has no occupancy start date")
	}

	result := &TenantArrears{
		TenantID:       tenant.ID,
		TenantName:     tenant.Name,
		Periods:        []PeriodArrears{},
		RentTotal:      decimal.Zero,
		ServicesTotal:  decimal.Zero,
		FurnitureTotal: decimal.Zero,
	}

	records, skipped, covered := c.indexRecords(input.Records)
	result.Skipped = skipped

	anchorDay := tenant.BillingAnchorDay()
	current := PeriodOf(input.Now)
	periods := Calendar(tenant.OccupancyStart, tenant.OccupancyEnd(input.Now))

	byKey := make(map[string]PeriodArrears)
	for _, period := range periods {
		// The running month only becomes due once the billing day arrives
		if period.Equal(current) && input.Now.Day() < anchorDay {
			continue
		}
		arrears := c.classify(tenant, input.Property, input.Furniture, period, records[period.Key()])
		if !arrears.IsEmpty() {
			byKey[period.Key()] = arrears
		}
	}

	// A record already flagged VENCIDO counts as debt even when its period
	// falls outside the calendar, as long as the period is not already owed
	for i := range input.Records {
		record := &input.Records[i]
		if record.Status != PaymentStatusVencido {
			continue
		}
		if _, ok := covered[record.ID]; !ok {
			continue
		}
		period, err := record.Period()
		if err != nil {
			continue
		}
		if _, owed := byKey[period.Key()]; owed {
			continue
		}
		outstanding := record.Outstanding()
		if outstanding.IsZero() {
			continue
		}
		byKey[period.Key()] = PeriodArrears{
			Period:      period,
			RentDue:     outstanding,
			ServicesDue: []ServiceArrear{},
		}
	}

	for _, arrears := range byKey {
		result.Periods = append(result.Periods, arrears)
	}
	sort.Slice(result.Periods, func(i, j int) bool {
		return result.Periods[i].Period.Before(result.Periods[j].Period)
	})

	for _, p := range result.Periods {
		result.RentTotal = result.RentTotal.Add(p.RentDue)
		result.FurnitureTotal = result.FurnitureTotal.Add(p.FurnitureDue)
		for _, s := range p.ServicesDue {
			result.ServicesTotal = result.ServicesTotal.Add(s.Amount)
		}
	}
	return result, nil
}

// indexRecords maps healthy records by canonical period key, collecting the
// unhealthy ones as skipped. Covered holds the IDs of records that passed.
func (c *ArrearsCalculator) indexRecords(records []PaymentRecord) (map[string]*PaymentRecord, []SkippedRecord, map[uuid.UUID]struct{}) {
	indexed := make(map[string]*PaymentRecord, len(records))
	covered := make(map[uuid.UUID]struct{}, len(records))
	var skipped []SkippedRecord

	for i := range records {
		record := &records[i]
		if err := record.CheckIntegrity(); err != nil {
			skipped = append(skipped, SkippedRecord{RecordID: record.ID, Reason: err.Error()})
			continue
		}
		period, _ := record.Period()
		indexed[period.Key()] = record
		covered[record.ID] = struct{}{}
	}
	return indexed, skipped, covered
}

// classify resolves the period's obligations and nets out what the record,
// if any, already covers
func (c *ArrearsCalculator) classify(
	tenant *leasing.Tenant,
	property *leasing.Property,
	furniture []leasing.FurnitureItem,
	period Period,
	record *PaymentRecord,
) PeriodArrears {
	obligations := c.resolver.Resolve(tenant, property, furniture, period)
	arrears := PeriodArrears{
		Period:       period,
		RentDue:      decimal.Zero,
		ServicesDue:  []ServiceArrear{},
		FurnitureDue: decimal.Zero,
	}

	if rent, ok := obligations.Rent(); ok {
		if record == nil {
			arrears.RentDue = rent
		} else if !record.IsSettled() {
			due := rent.Sub(record.RentPaid())
			if due.GreaterThan(decimal.Zero) {
				arrears.RentDue = due
			}
		}
	}

	for _, svc := range obligations.Services() {
		if record != nil && record.ServicePaid(svc.ServiceType) {
			continue
		}
		arrears.ServicesDue = append(arrears.ServicesDue, ServiceArrear{
			Type:   svc.ServiceType,
			Amount: svc.Amount,
		})
	}

	if furnitureDue, ok := obligations.Furniture(); ok {
		if record == nil || !record.FurniturePaid {
			arrears.FurnitureDue = furnitureDue
		}
	}

	return arrears
}
