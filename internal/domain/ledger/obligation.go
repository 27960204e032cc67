package ledger

import (
	"strings"

	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/shopspring/decimal"
)

// ObligationCategory identifies what a monthly obligation is for
type ObligationCategory string

const (
	CategoryRent      ObligationCategory = "RENTA"
	CategoryService   ObligationCategory = "SERVICIO"
	CategoryFurniture ObligationCategory = "MOBILIARIO"
)

// Obligation is a single monthly amount owed by a tenant for a period.
// ServiceType is only set for CategoryService.
type Obligation struct {
	Category    ObligationCategory `json:"category"`
	ServiceType string             `json:"service_type,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
}

// ObligationSet is everything a tenant owes for one period
type ObligationSet struct {
	Period      Period       `json:"period"`
	Obligations []Obligation `json:"obligations"`
}

// Total sums all obligations in the set
func (s ObligationSet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, o := range s.Obligations {
		total = total.Add(o.Amount)
	}
	return total
}

// Rent returns the rent obligation amount, false if none applies
func (s ObligationSet) Rent() (decimal.Decimal, bool) {
	for _, o := range s.Obligations {
		if o.Category == CategoryRent {
			return o.Amount, true
		}
	}
	return decimal.Zero, false
}

// Services returns the per-service obligations
func (s ObligationSet) Services() []Obligation {
	services := make([]Obligation, 0, len(s.Obligations))
	for _, o := range s.Obligations {
		if o.Category == CategoryService {
			services = append(services, o)
		}
	}
	return services
}

// Furniture returns the aggregate furniture obligation, false if none applies
func (s ObligationSet) Furniture() (decimal.Decimal, bool) {
	for _, o := range s.Obligations {
		if o.Category == CategoryFurniture {
			return o.Amount, true
		}
	}
	return decimal.Zero, false
}

// IsEmpty returns true when the period carries no obligations
func (s ObligationSet) IsEmpty() bool {
	return len(s.Obligations) == 0
}

// ObligationResolver computes which obligation categories apply to a tenant
// for a period and their amounts. Rent is snapshotted from the property's
// current monthly rent at computation time; categories with a zero or missing
// contracted value emit nothing.
type ObligationResolver struct{}

// NewObligationResolver creates a new ObligationResolver
func NewObligationResolver() *ObligationResolver {
	return &ObligationResolver{}
}

// Resolve computes the obligation set for a tenant and period
func (r *ObligationResolver) Resolve(
	tenant *leasing.Tenant,
	property *leasing.Property,
	furniture []leasing.FurnitureItem,
	period Period,
) ObligationSet {
	set := ObligationSet{Period: period, Obligations: make([]Obligation, 0, 4)}
	if tenant == nil {
		return set
	}

	if property != nil && property.MonthlyRent.GreaterThan(decimal.Zero) {
		set.Obligations = append(set.Obligations, Obligation{
			Category: CategoryRent,
			Amount:   property.MonthlyRent,
		})
	}

	for _, svc := range tenant.BillableServices() {
		set.Obligations = append(set.Obligations, Obligation{
			Category:    CategoryService,
			ServiceType: strings.ToLower(svc.Type),
			Amount:      svc.MonthlyAmount,
		})
	}

	// Furniture is one aggregate obligation across all items, not per item
	furnitureTotal := decimal.Zero
	for i := range furniture {
		furnitureTotal = furnitureTotal.Add(furniture[i].ActiveCostFor(tenant.ID))
	}
	if furnitureTotal.GreaterThan(decimal.Zero) {
		set.Obligations = append(set.Obligations, Obligation{
			Category: CategoryFurniture,
			Amount:   furnitureTotal,
		})
	}

	return set
}
