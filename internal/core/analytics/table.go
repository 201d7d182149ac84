package analytics

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Table is the column-oriented encoding of compiled rows handed to the UI.
// Column names collide across the joined sources, so they are suffixed with the
// source table: id_record, id_account, id_label, name_account, name_label, ...
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// TableColumns returns the column names of a compiled table for the given balance field.
func TableColumns(field BalanceField) []string {
	return []string{
		"id_record",
		"account_id",
		string(field),
		"currency",
		"date",
		"id_account",
		"name_account",
		"label_id",
		"country_code",
		"description_account",
		"id_label",
		"name_label",
		"description_label",
		"contributors",
	}
}

// NewTable encodes rows in order. Absent values are nil; on synthetic rows only
// name_account, date, the balance column and contributors are set.
func NewTable(rows []CompiledRow, field BalanceField) Table {
	t := Table{Columns: TableColumns(field), Rows: make([][]any, 0, len(rows))}
	for _, r := range rows {
		if r.Synthetic {
			t.Rows = append(t.Rows, []any{
				nil, nil, r.Balance, nil, r.Date.Format(dateLayout),
				nil, ptrValue(r.AccountName), nil, nil, nil, nil, nil, nil, r.Contributors,
			})
			continue
		}
		t.Rows = append(t.Rows, []any{
			r.RecordID,
			r.AccountID,
			r.Balance,
			r.CurrencyCode,
			r.Date.Format(dateLayout),
			ptrValue(r.JoinedAccountID),
			ptrValue(r.AccountName),
			ptrValue(r.LabelID),
			ptrValue(r.CountryCode),
			ptrValue(r.AccountDescription),
			ptrValue(r.JoinedLabelID),
			ptrValue(r.LabelName),
			ptrValue(r.LabelDescription),
			nil,
		})
	}
	return t
}

// WriteCSV writes the header and rows; nil values become empty fields.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, v := range row {
			record[j] = cellString(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func ptrValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
