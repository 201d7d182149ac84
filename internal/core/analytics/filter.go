package analytics

import (
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// RowFilter restricts compiled rows. Empty sets and nil bounds do not restrict.
type RowFilter struct {
	AccountIDs   []string
	CountryCodes []string
	LabelIDs     []string
	From         *time.Time // inclusive
	To           *time.Time // inclusive
}

// IsZero reports whether the filter lets every row through.
func (f RowFilter) IsZero() bool {
	return len(f.AccountIDs) == 0 && len(f.CountryCodes) == 0 && len(f.LabelIDs) == 0 &&
		f.From == nil && f.To == nil
}

// Filter keeps the rows matching every restriction of f, preserving order.
// Synthetic rows are dropped unless f is zero.
func Filter(rows []CompiledRow, f RowFilter) []CompiledRow {
	if f.IsZero() {
		return rows
	}

	accounts := toSet(f.AccountIDs)
	countries := toSet(f.CountryCodes)
	labels := toSet(f.LabelIDs)

	var from, to int64
	if f.From != nil {
		from = domain.DayNumber(*f.From)
	}
	if f.To != nil {
		to = domain.DayNumber(*f.To)
	}

	out := make([]CompiledRow, 0, len(rows))
	for _, r := range rows {
		if r.Synthetic {
			continue
		}
		if accounts != nil && !accounts[r.AccountID] {
			continue
		}
		if countries != nil && !matches(countries, r.CountryCode) {
			continue
		}
		if labels != nil && !matches(labels, r.LabelID) {
			continue
		}
		day := domain.DayNumber(r.Date)
		if f.From != nil && day < from {
			continue
		}
		if f.To != nil && day > to {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func matches(set map[string]bool, v *string) bool {
	return v != nil && set[*v]
}
