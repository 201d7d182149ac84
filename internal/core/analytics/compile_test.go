package analytics_test

import (
	"testing"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/analytics"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func record(id, accountID, date string, balance int64) domain.Record {
	return domain.Record{
		RecordID:     id,
		AccountID:    accountID,
		Balance:      decimal.NewFromInt(balance),
		CurrencyCode: "USD",
		Date:         day(date),
	}
}

func TestCompile_NoReferenceData(t *testing.T) {
	records := []domain.Record{
		record("r1", "a1", "2024-01-01", 100),
		record("r2", "a2", "2024-01-02", 50),
		record("r3", "a1", "2024-01-03", 75),
	}

	rows, err := analytics.Compile(records, nil, nil)

	require.NoError(t, err)
	require.Len(t, rows, len(records))
	for i, row := range rows {
		assert.Equal(t, records[i].RecordID, row.RecordID, "order must follow input")
		assert.Nil(t, row.JoinedAccountID)
		assert.Nil(t, row.AccountName)
		assert.Nil(t, row.LabelID)
		assert.Nil(t, row.CountryCode)
		assert.Nil(t, row.JoinedLabelID)
		assert.Nil(t, row.LabelName)
		assert.False(t, row.Synthetic)
	}
}

func TestCompile_LeftJoinsAccountsAndLabels(t *testing.T) {
	records := []domain.Record{
		record("r1", "a1", "2024-01-01", 100),
		record("r2", "missing", "2024-01-01", 5),
		record("r3", "a2", "2024-01-02", 50),
		record("r4", "a3", "2024-01-02", 7),
	}
	accounts := []domain.Account{
		{AccountID: "a1", Name: "Checking", LabelID: "l1", CountryCode: "US", Description: "main"},
		{AccountID: "a2", Name: "Pension", CountryCode: "DE"},
		{AccountID: "a3", Name: "Orphan", LabelID: "gone"},
	}
	labels := []domain.Label{
		{LabelID: "l1", Name: "Cash", Description: "liquid"},
		{LabelID: "l2", Name: "Unused"},
	}

	rows, err := analytics.Compile(records, accounts, labels)

	require.NoError(t, err)
	require.Len(t, rows, 4)

	r1 := rows[0]
	assert.Equal(t, "a1", *r1.JoinedAccountID)
	assert.Equal(t, "Checking", *r1.AccountName)
	assert.Equal(t, "US", *r1.CountryCode)
	assert.Equal(t, "main", *r1.AccountDescription)
	assert.Equal(t, "l1", *r1.LabelID)
	assert.Equal(t, "l1", *r1.JoinedLabelID)
	assert.Equal(t, "Cash", *r1.LabelName)
	assert.Equal(t, "liquid", *r1.LabelDescription)

	r2 := rows[1]
	assert.Equal(t, "missing", r2.AccountID)
	assert.Nil(t, r2.AccountName, "unmatched account keeps nil fields")
	assert.Nil(t, r2.LabelName)

	r3 := rows[2]
	assert.Equal(t, "Pension", *r3.AccountName)
	assert.Nil(t, r3.LabelID, "account without label")
	assert.Nil(t, r3.LabelName)
	assert.Nil(t, r3.AccountDescription)

	r4 := rows[3]
	assert.Equal(t, "gone", *r4.LabelID, "account's label id is kept")
	assert.Nil(t, r4.JoinedLabelID, "label not found")
	assert.Nil(t, r4.LabelName)
}

func TestCompile_NormalizesDates(t *testing.T) {
	rec := record("r1", "a1", "2024-01-01", 1)
	rec.Date = time.Date(2024, 1, 1, 17, 30, 0, 0, time.UTC)

	rows, err := analytics.Compile([]domain.Record{rec}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, day("2024-01-01"), rows[0].Date)
}

func TestCompile_EmptyRecords(t *testing.T) {
	rows, err := analytics.Compile(nil, []domain.Account{{AccountID: "a1"}}, nil)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestCompile_InvalidEntity(t *testing.T) {
	tests := []struct {
		name     string
		records  []domain.Record
		accounts []domain.Account
		labels   []domain.Label
		wantMsg  string
	}{
		{
			name:    "record without id",
			records: []domain.Record{{AccountID: "a1"}},
			wantMsg: "record at position 0: missing recordID",
		},
		{
			name:    "record without account id",
			records: []domain.Record{record("r1", "a1", "2024-01-01", 1), {RecordID: "r2"}},
			wantMsg: "record at position 1: missing accountID",
		},
		{
			name:     "account without id",
			accounts: []domain.Account{{Name: "x"}},
			wantMsg:  "account at position 0",
		},
		{
			name:     "duplicate account id",
			accounts: []domain.Account{{AccountID: "a1"}, {AccountID: "a1"}},
			wantMsg:  "duplicate accountID a1",
		},
		{
			name:    "label without id",
			labels:  []domain.Label{{Name: "x"}},
			wantMsg: "label at position 0",
		},
		{
			name:    "duplicate label id",
			labels:  []domain.Label{{LabelID: "l1"}, {LabelID: "l1"}},
			wantMsg: "duplicate labelID l1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := analytics.Compile(tt.records, tt.accounts, tt.labels)
			require.Error(t, err)
			assert.Nil(t, rows)
			assert.ErrorIs(t, err, apperrors.ErrInvalidEntity)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
