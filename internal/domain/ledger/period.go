package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rentledger/backend/internal/domain/shared"
)

// monthNames is the canonical Spanish month table. Billing periods are stored
// with display names for operator-facing views, but all ordering and matching
// happens on the (year, month index) tuple, never on the name string.
var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish display name for a month
func MonthName(m time.Month) string {
	return monthNames[int(m)-1]
}

// ParseMonthName resolves a Spanish month name (case-insensitive) to its
// calendar month. Unknown names are a data-integrity condition: records
// carrying them are excluded from aggregation, not fatal.
func ParseMonthName(name string) (time.Month, error) {
	trimmed := strings.TrimSpace(name)
	for i, n := range monthNames {
		if strings.EqualFold(n, trimmed) {
			return time.Month(i + 1), nil
		}
	}
	return 0, shared.NewDomainError("DATA_INTEGRITY", fmt.Sprintf("Unknown month name %q", name))
}

// Period is a canonical (year, month) billing unit
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod creates a validated period
func NewPeriod(year int, month time.Month) (Period, error) {
	if year < 1900 || year > 9999 {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Year %d out of range", year))
	}
	if month < time.January || month > time.December {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Month %d out of range", month))
	}
	return Period{Year: year, Month: month}, nil
}

// PeriodFromName builds a period from a stored display name and year
func PeriodFromName(monthName string, year int) (Period, error) {
	month, err := ParseMonthName(monthName)
	if err != nil {
		return Period{}, err
	}
	return NewPeriod(year, month)
}

// PeriodOf returns the period containing the given instant
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// MonthName returns the Spanish display name of the period's month
func (p Period) MonthName() string {
	return MonthName(p.Month)
}

// String formats the period for display, e.g. "Enero 2024"
func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.MonthName(), p.Year)
}

// Key returns a stable sortable key, e.g. "2024-01"
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Next returns the following calendar month
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Compare returns -1, 0 or 1 ordering periods by (year, month index)
func (p Period) Compare(other Period) int {
	switch {
	case p.Year != other.Year:
		if p.Year < other.Year {
			return -1
		}
		return 1
	case p.Month != other.Month:
		if p.Month < other.Month {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Before returns true if p is strictly earlier than other
func (p Period) Before(other Period) bool {
	return p.Compare(other) < 0
}

// Equal returns true if both periods denote the same month
func (p Period) Equal(other Period) bool {
	return p.Compare(other) == 0
}

// DueDate returns the instant rent for this period falls due, given the
// tenant's billing anchor day. Anchor days past the month's length clamp to
// the last day (an anchor of 31 is due Feb 28/29).
func (p Period) DueDate(anchorDay int) time.Time {
	if anchorDay < 1 {
		anchorDay = 1
	}
	if last := daysInMonth(p.Year, p.Month); anchorDay > last {
		anchorDay = last
	}
	return time.Date(p.Year, p.Month, anchorDay, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// Calendar generates the ascending sequence of billing periods from the month
// of start through the month of end, inclusive. A tenant who moved in
// mid-month still owes that first month. Periods before the start month are
// never generated; an end before the start yields an empty sequence.
func Calendar(start, end time.Time) []Period {
	first := PeriodOf(start)
	last := PeriodOf(end)
	if last.Before(first) {
		return nil
	}

	periods := make([]Period, 0, 12)
	for p := first; !last.Before(p); p = p.Next() {
		periods = append(periods, p)
	}
	return periods
}

// SortPeriods orders periods chronologically by (year, month index)
func SortPeriods(periods []Period) {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})
}
