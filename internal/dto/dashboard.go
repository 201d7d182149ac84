package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/analytics"
	"github.com/shopspring/decimal"
)

// DashboardParams defines the query parameters shared by every dashboard view.
type DashboardParams struct {
	Currency     string   `form:"currency" binding:"omitempty,len=3"`
	AccountIDs   []string `form:"accountID"`
	CountryCodes []string `form:"countryCode"`
	LabelIDs     []string `form:"labelID"`
	From         string   `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To           string   `form:"to" binding:"omitempty,datetime=2006-01-02"`
	WithTotal    bool     `form:"withTotal"`
	Format       string   `form:"format" binding:"omitempty,oneof=json csv"`
}

// RowFilter converts the params into an analytics filter.
func (p DashboardParams) RowFilter() (analytics.RowFilter, error) {
	f := analytics.RowFilter{
		AccountIDs:   p.AccountIDs,
		CountryCodes: p.CountryCodes,
		LabelIDs:     p.LabelIDs,
	}
	var err error
	if f.From, err = parseOptionalDate(p.From, "from"); err != nil {
		return analytics.RowFilter{}, err
	}
	if f.To, err = parseOptionalDate(p.To, "to"); err != nil {
		return analytics.RowFilter{}, err
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return analytics.RowFilter{}, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
	}
	return f, nil
}

func parseOptionalDate(s, name string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", apperrors.ErrValidation, name)
	}
	return &t, nil
}

// TableResponse is the column-oriented compiled table.
type TableResponse struct {
	Currency     string   `json:"currency"`
	BalanceField string   `json:"balanceField"`
	Columns      []string `json:"columns"`
	Rows         [][]any  `json:"rows"`
}

func ToTableResponse(currency string, field analytics.BalanceField, t analytics.Table) TableResponse {
	return TableResponse{Currency: currency, BalanceField: string(field), Columns: t.Columns, Rows: t.Rows}
}

// PointResponse is one point of a line-chart series.
type PointResponse struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
	// Contributors is only set on points of the synthetic total series.
	Contributors int `json:"contributors,omitempty"`
}

// SeriesResponse is one line of the line chart.
type SeriesResponse struct {
	Name      string          `json:"name"`
	AccountID string          `json:"accountID,omitempty"`
	Synthetic bool            `json:"synthetic"`
	Points    []PointResponse `json:"points"`
}

// LineChartResponse carries every series of the line chart.
type LineChartResponse struct {
	Currency string           `json:"currency"`
	Series   []SeriesResponse `json:"series"`
}

func ToLineChartResponse(currency string, series []analytics.Series) LineChartResponse {
	res := LineChartResponse{Currency: currency, Series: make([]SeriesResponse, len(series))}
	for i, s := range series {
		points := make([]PointResponse, len(s.Points))
		for j, p := range s.Points {
			points[j] = PointResponse{Date: p.Date.Format(DateLayout), Balance: p.Balance, Contributors: p.Contributors}
		}
		res.Series[i] = SeriesResponse{Name: s.Name, AccountID: s.AccountID, Synthetic: s.Synthetic, Points: points}
	}
	return res
}

// UnlabelledName groups treemap accounts without a label.
const UnlabelledName = "Unlabelled"

// TreemapNode is a label (with children) or an account leaf.
type TreemapNode struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Date     string          `json:"date,omitempty"`
	Children []TreemapNode   `json:"children,omitempty"`
}

// TreemapResponse nests each account's latest balance under its label.
type TreemapResponse struct {
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Labels   []TreemapNode   `json:"labels"`
}

// ToTreemapResponse groups rows, already ordered by label name, into label nodes.
func ToTreemapResponse(currency string, latest []analytics.CompiledRow) TreemapResponse {
	res := TreemapResponse{Currency: currency, Total: decimal.Zero, Labels: []TreemapNode{}}
	index := make(map[string]int)
	for _, r := range latest {
		labelID, labelName := "", UnlabelledName
		if r.JoinedLabelID != nil {
			labelID = *r.JoinedLabelID
			if r.LabelName != nil {
				labelName = *r.LabelName
			}
		}
		at, ok := index[labelID]
		if !ok {
			at = len(res.Labels)
			index[labelID] = at
			res.Labels = append(res.Labels, TreemapNode{ID: labelID, Name: labelName, Value: decimal.Zero})
		}
		name := r.AccountID
		if r.AccountName != nil {
			name = *r.AccountName
		}
		node := &res.Labels[at]
		node.Children = append(node.Children, TreemapNode{
			ID:    r.AccountID,
			Name:  name,
			Value: r.Balance,
			Date:  r.Date.Format(DateLayout),
		})
		node.Value = node.Value.Add(r.Balance)
		res.Total = res.Total.Add(r.Balance)
	}
	return res
}

// AlignedResponse exposes the interpolated date x account matrix and its totals.
// A nil cell means the date lies outside that account's observed span.
type AlignedResponse struct {
	Currency     string               `json:"currency"`
	Dates        []string             `json:"dates"`
	Accounts     []string             `json:"accounts"`
	Cells        [][]*decimal.Decimal `json:"cells"`
	Interpolated [][]bool             `json:"interpolated"`
	Totals       []TotalResponse      `json:"totals"`
}

// TotalResponse is the summed balance on one date.
type TotalResponse struct {
	Date         string          `json:"date"`
	Balance      decimal.Decimal `json:"balance"`
	Contributors int             `json:"contributors"`
}

func ToAlignedResponse(currency string, t analytics.AlignedTable) AlignedResponse {
	res := AlignedResponse{
		Currency:     currency,
		Dates:        make([]string, len(t.Dates)),
		Accounts:     t.Accounts,
		Cells:        make([][]*decimal.Decimal, len(t.Cells)),
		Interpolated: make([][]bool, len(t.Cells)),
	}
	if res.Accounts == nil {
		res.Accounts = []string{}
	}
	for i, d := range t.Dates {
		res.Dates[i] = d.Format(DateLayout)
	}
	for i, row := range t.Cells {
		res.Cells[i] = make([]*decimal.Decimal, len(row))
		res.Interpolated[i] = make([]bool, len(row))
		for j, c := range row {
			res.Cells[i][j] = c.Value
			res.Interpolated[i][j] = c.Interpolated
		}
	}
	totals := t.Totals()
	res.Totals = make([]TotalResponse, len(totals))
	for i, tp := range totals {
		res.Totals[i] = TotalResponse{Date: tp.Date.Format(DateLayout), Balance: tp.Balance, Contributors: tp.Contributors}
	}
	return res
}
