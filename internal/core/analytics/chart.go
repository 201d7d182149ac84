package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SeriesPoint is one (date, balance) pair of a line-chart series.
type SeriesPoint struct {
	Date    time.Time
	Balance decimal.Decimal
	// Contributors is only set on points of the total series.
	Contributors int
}

// Series is the line of one account, or of the synthetic total.
type Series struct {
	Name      string
	AccountID string // empty for the total series
	Synthetic bool
	Points    []SeriesPoint
}

// SeriesByAccount groups rows into one series per account, points sorted by date.
// Series are ordered by name, then account id, with the total series last.
func SeriesByAccount(rows []CompiledRow) []Series {
	index := make(map[string]int)
	var series []Series

	for _, r := range rows {
		key := r.AccountID
		if r.Synthetic {
			key = "\x00" + TotalAccountName
		}
		at, ok := index[key]
		if !ok {
			at = len(series)
			index[key] = at
			series = append(series, Series{
				Name:      displayName(r),
				AccountID: r.AccountID,
				Synthetic: r.Synthetic,
			})
		}
		series[at].Points = append(series[at].Points, SeriesPoint{Date: r.Date, Balance: r.Balance, Contributors: r.Contributors})
	}

	for i := range series {
		pts := series[i].Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Date.Before(pts[b].Date) })
	}
	sort.SliceStable(series, func(i, j int) bool {
		a, b := series[i], series[j]
		if a.Synthetic != b.Synthetic {
			return b.Synthetic
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.AccountID < b.AccountID
	})
	return series
}

// LatestPerAccount returns each account's most recent row. Ties on date go to the
// row that comes last in input order. Synthetic rows are ignored. The result is
// ordered by label name, then account name, then account id; unlabelled accounts
// sort first.
func LatestPerAccount(rows []CompiledRow) []CompiledRow {
	index := make(map[string]int)
	var latest []CompiledRow

	for _, r := range rows {
		if r.Synthetic {
			continue
		}
		at, ok := index[r.AccountID]
		if !ok {
			index[r.AccountID] = len(latest)
			latest = append(latest, r)
			continue
		}
		if !r.Date.Before(latest[at].Date) {
			latest[at] = r
		}
	}

	sort.SliceStable(latest, func(i, j int) bool {
		a, b := latest[i], latest[j]
		if la, lb := deref(a.LabelName), deref(b.LabelName); la != lb {
			return la < lb
		}
		if na, nb := deref(a.AccountName), deref(b.AccountName); na != nb {
			return na < nb
		}
		return a.AccountID < b.AccountID
	})
	return latest
}

func displayName(r CompiledRow) string {
	if r.AccountName != nil {
		return *r.AccountName
	}
	return r.AccountID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
