package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

const balanceFieldPrefix = "balance_"

// BalanceField names the balance column of a compiled table, e.g. "balance_USD".
// The suffix is the currency every balance in that column is expressed in.
type BalanceField string

// BalanceFieldFor returns the balance column name for a currency.
func BalanceFieldFor(currencyCode string) BalanceField {
	return BalanceField(balanceFieldPrefix + strings.ToUpper(currencyCode))
}

// Currency returns the currency code encoded in the field name, or "" if it has none.
func (f BalanceField) Currency() string {
	code, ok := strings.CutPrefix(string(f), balanceFieldPrefix)
	if !ok {
		return ""
	}
	return code
}

// Cell is one account's value on one date of an AlignedTable.
// Value is nil when the date lies outside the account's observed span.
type Cell struct {
	Value        *decimal.Decimal
	Interpolated bool
}

// AlignedTable is the dense date x account matrix built from compiled rows.
type AlignedTable struct {
	Dates    []time.Time // ascending
	Accounts []string    // account ids, ascending
	Cells    [][]Cell    // Cells[dateIdx][accountIdx]
}

// TotalPoint is the sum of all present cells on one date.
type TotalPoint struct {
	Date    time.Time
	Balance decimal.Decimal
	// Contributors counts the accounts that had a value on Date. Accounts whose
	// observed span does not cover Date are excluded rather than counted as zero.
	Contributors int
}

type observation struct {
	day     int64
	balance decimal.Decimal
}

// SynthesizeTotal appends one synthetic "Total" row per distinct date to rows.
// Gaps inside an account's observed span are filled by time-weighted linear
// interpolation; dates outside it are left out of that date's sum. Synthetic rows
// already present in rows are discarded first, so the call is idempotent.
//
// Every non-synthetic row must be expressed in field's currency. An empty field
// accepts whichever single currency the rows share; any other field without a
// currency is a validation error.
func SynthesizeTotal(rows []CompiledRow, field BalanceField) ([]CompiledRow, error) {
	if field != "" && field.Currency() == "" {
		return nil, fmt.Errorf("%w: %q is not a balance field", apperrors.ErrValidation, string(field))
	}
	base := NonSynthetic(rows)
	if err := checkSingleCurrency(base, field.Currency()); err != nil {
		return nil, err
	}

	totals := Align(base).Totals()

	out := make([]CompiledRow, 0, len(base)+len(totals))
	out = append(out, base...)
	for _, tp := range totals {
		out = append(out, CompiledRow{
			AccountName:  strPtr(TotalAccountName),
			Date:         tp.Date,
			Balance:      tp.Balance,
			Synthetic:    true,
			Contributors: tp.Contributors,
		})
	}
	return out, nil
}

// NonSynthetic returns the rows that were not produced by SynthesizeTotal.
func NonSynthetic(rows []CompiledRow) []CompiledRow {
	out := make([]CompiledRow, 0, len(rows))
	for _, r := range rows {
		if !r.Synthetic {
			out = append(out, r)
		}
	}
	return out
}

func checkSingleCurrency(rows []CompiledRow, want string) error {
	for i, r := range rows {
		if want == "" {
			want = r.CurrencyCode
			continue
		}
		if r.CurrencyCode != want {
			return fmt.Errorf("%w: row %d (record %s) is in %s, expected %s",
				apperrors.ErrMixedCurrency, i, r.RecordID, r.CurrencyCode, want)
		}
	}
	return nil
}

// Align reconstructs every account's series over the union of observed dates.
// Synthetic rows are ignored. When an account has several observations on the same
// date the last one in input order wins.
func Align(rows []CompiledRow) AlignedTable {
	series := make(map[string][]observation)
	seen := make(map[string]map[int64]int) // account -> day -> index into series
	daySet := make(map[int64]struct{})

	for _, r := range rows {
		if r.Synthetic {
			continue
		}
		day := domain.DayNumber(r.Date)
		daySet[day] = struct{}{}

		idx, ok := seen[r.AccountID]
		if !ok {
			idx = make(map[int64]int)
			seen[r.AccountID] = idx
		}
		if at, dup := idx[day]; dup {
			series[r.AccountID][at].balance = r.Balance
			continue
		}
		idx[day] = len(series[r.AccountID])
		series[r.AccountID] = append(series[r.AccountID], observation{day: day, balance: r.Balance})
	}

	days := make([]int64, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	accounts := make([]string, 0, len(series))
	for id := range series {
		accounts = append(accounts, id)
	}
	sort.Strings(accounts)

	table := AlignedTable{
		Dates:    make([]time.Time, len(days)),
		Accounts: accounts,
		Cells:    make([][]Cell, len(days)),
	}
	for i, d := range days {
		table.Dates[i] = dayToTime(d)
		table.Cells[i] = make([]Cell, len(accounts))
	}

	for j, id := range accounts {
		obs := series[id]
		sort.SliceStable(obs, func(a, b int) bool { return obs[a].day < obs[b].day })
		fillColumn(table.Cells, j, days, obs)
	}
	return table
}

// fillColumn writes one account's column. obs must be sorted by day and days must be
// a sorted superset of the observed days.
func fillColumn(cells [][]Cell, col int, days []int64, obs []observation) {
	next := 0 // index of the first observation with day >= days[i]
	for i, d := range days {
		for next < len(obs) && obs[next].day < d {
			next++
		}
		switch {
		case next < len(obs) && obs[next].day == d:
			v := obs[next].balance
			cells[i][col] = Cell{Value: &v}
		case next == 0 || next == len(obs):
			// before the first or after the last observation: no extrapolation
		default:
			v := interpolate(obs[next-1], obs[next], d)
			cells[i][col] = Cell{Value: &v, Interpolated: true}
		}
	}
}

// interpolate weights the two neighbouring observations by elapsed days, not by position.
func interpolate(prev, next observation, day int64) decimal.Decimal {
	span := decimal.NewFromInt(next.day - prev.day)
	elapsed := decimal.NewFromInt(day - prev.day)
	return prev.balance.Add(next.balance.Sub(prev.balance).Mul(elapsed).Div(span))
}

// Totals sums the present cells of every date.
func (t AlignedTable) Totals() []TotalPoint {
	out := make([]TotalPoint, 0, len(t.Dates))
	for i, date := range t.Dates {
		tp := TotalPoint{Date: date, Balance: decimal.Zero}
		for _, c := range t.Cells[i] {
			if c.Value == nil {
				continue
			}
			tp.Balance = tp.Balance.Add(*c.Value)
			tp.Contributors++
		}
		out = append(out, tp)
	}
	return out
}

// Column returns the cells of one account, or nil if the account is unknown.
func (t AlignedTable) Column(accountID string) []Cell {
	j := sort.SearchStrings(t.Accounts, accountID)
	if j == len(t.Accounts) || t.Accounts[j] != accountID {
		return nil
	}
	col := make([]Cell, len(t.Dates))
	for i := range t.Dates {
		col[i] = t.Cells[i][j]
	}
	return col
}

func dayToTime(day int64) time.Time {
	return time.Unix(day*int64(24*time.Hour/time.Second), 0).UTC()
}
