package analytics

import (
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TotalAccountName is the account name carried by synthetic total rows.
const TotalAccountName = "Total"

// CompiledRow is one record enriched with its account's and label's attributes.
// Account and label fields are nil when the join found no match.
type CompiledRow struct {
	RecordID     string
	AccountID    string
	Balance      decimal.Decimal
	CurrencyCode string
	Date         time.Time

	JoinedAccountID    *string
	AccountName        *string
	LabelID            *string
	CountryCode        *string
	AccountDescription *string

	JoinedLabelID    *string
	LabelName        *string
	LabelDescription *string

	// Synthetic marks rows produced by SynthesizeTotal. Only AccountName, Date,
	// Balance and Contributors are meaningful on them.
	Synthetic bool
	// Contributors is the number of accounts summed into a synthetic row's Balance.
	Contributors int
}

// Compile left-joins records to accounts on the record's account id, then to labels on
// the account's label id. Output order follows the input record order and every record
// yields exactly one row.
func Compile(records []domain.Record, accounts []domain.Account, labels []domain.Label) ([]CompiledRow, error) {
	accountsByID, err := indexAccounts(accounts)
	if err != nil {
		return nil, err
	}
	labelsByID, err := indexLabels(labels)
	if err != nil {
		return nil, err
	}

	rows := make([]CompiledRow, 0, len(records))
	for i, rec := range records {
		if rec.RecordID == "" {
			return nil, apperrors.NewInvalidEntityError("record", i, "missing recordID")
		}
		if rec.AccountID == "" {
			return nil, apperrors.NewInvalidEntityError("record", i, "missing accountID")
		}

		row := CompiledRow{
			RecordID:     rec.RecordID,
			AccountID:    rec.AccountID,
			Balance:      rec.Balance,
			CurrencyCode: rec.CurrencyCode,
			Date:         domain.NormalizeDate(rec.Date),
		}

		if acc, ok := accountsByID[rec.AccountID]; ok {
			row.JoinedAccountID = strPtr(acc.AccountID)
			row.AccountName = strPtr(acc.Name)
			row.LabelID = optionalStr(acc.LabelID)
			row.CountryCode = optionalStr(acc.CountryCode)
			row.AccountDescription = optionalStr(acc.Description)

			if lbl, ok := labelsByID[acc.LabelID]; ok && acc.HasLabel() {
				row.JoinedLabelID = strPtr(lbl.LabelID)
				row.LabelName = strPtr(lbl.Name)
				row.LabelDescription = optionalStr(lbl.Description)
			}
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func indexAccounts(accounts []domain.Account) (map[string]domain.Account, error) {
	byID := make(map[string]domain.Account, len(accounts))
	for i, acc := range accounts {
		if acc.AccountID == "" {
			return nil, apperrors.NewInvalidEntityError("account", i, "missing accountID")
		}
		if _, dup := byID[acc.AccountID]; dup {
			return nil, apperrors.NewInvalidEntityError("account", i, "duplicate accountID "+acc.AccountID)
		}
		byID[acc.AccountID] = acc
	}
	return byID, nil
}

func indexLabels(labels []domain.Label) (map[string]domain.Label, error) {
	byID := make(map[string]domain.Label, len(labels))
	for i, lbl := range labels {
		if lbl.LabelID == "" {
			return nil, apperrors.NewInvalidEntityError("label", i, "missing labelID")
		}
		if _, dup := byID[lbl.LabelID]; dup {
			return nil, apperrors.NewInvalidEntityError("label", i, "duplicate labelID "+lbl.LabelID)
		}
		byID[lbl.LabelID] = lbl
	}
	return byID, nil
}

func strPtr(s string) *string {
	return &s
}

// optionalStr maps the empty string to nil.
func optionalStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
