package mongodb

import (
	"fmt"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Decimals are stored as strings; BSON has no codec for decimal.Decimal and
// Decimal128 would lose the arbitrary precision balances carry.

// AuditDocument holds the audit fields inlined into every document.
type AuditDocument struct {
	CreatedAt     time.Time `bson:"created_at"`
	CreatedBy     string    `bson:"created_by"`
	LastUpdatedAt time.Time `bson:"last_updated_at"`
	LastUpdatedBy string    `bson:"last_updated_by"`
}

func toAuditDocument(a domain.AuditFields) AuditDocument {
	return AuditDocument{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func (a AuditDocument) toDomain() domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

type accountDocument struct {
	ID            string `bson:"_id"`
	Name          string `bson:"name"`
	LabelID       string `bson:"label_id,omitempty"`
	CountryCode   string `bson:"country_code,omitempty"`
	Description   string `bson:"description,omitempty"`
	AuditDocument `bson:",inline"`
}

func toAccountDocument(a domain.Account) accountDocument {
	return accountDocument{
		ID:            a.AccountID,
		Name:          a.Name,
		LabelID:       a.LabelID,
		CountryCode:   a.CountryCode,
		Description:   a.Description,
		AuditDocument: toAuditDocument(a.AuditFields),
	}
}

func (d accountDocument) toDomain() domain.Account {
	return domain.Account{
		AccountID:   d.ID,
		Name:        d.Name,
		LabelID:     d.LabelID,
		CountryCode: d.CountryCode,
		Description: d.Description,
		AuditFields: d.AuditDocument.toDomain(),
	}
}

type labelDocument struct {
	ID            string `bson:"_id"`
	Name          string `bson:"name"`
	Description   string `bson:"description,omitempty"`
	AuditDocument `bson:",inline"`
}

func toLabelDocument(l domain.Label) labelDocument {
	return labelDocument{
		ID:            l.LabelID,
		Name:          l.Name,
		Description:   l.Description,
		AuditDocument: toAuditDocument(l.AuditFields),
	}
}

func (d labelDocument) toDomain() domain.Label {
	return domain.Label{
		LabelID:     d.ID,
		Name:        d.Name,
		Description: d.Description,
		AuditFields: d.AuditDocument.toDomain(),
	}
}

type recordDocument struct {
	ID            string    `bson:"_id"`
	AccountID     string    `bson:"account_id"`
	Balance       string    `bson:"balance"`
	CurrencyCode  string    `bson:"currency_code"`
	Date          time.Time `bson:"date"`
	AuditDocument `bson:",inline"`
}

func toRecordDocument(r domain.Record) recordDocument {
	return recordDocument{
		ID:            r.RecordID,
		AccountID:     r.AccountID,
		Balance:       r.Balance.String(),
		CurrencyCode:  r.CurrencyCode,
		Date:          domain.NormalizeDate(r.Date),
		AuditDocument: toAuditDocument(r.AuditFields),
	}
}

func (d recordDocument) toDomain() (domain.Record, error) {
	balance, err := decimal.NewFromString(d.Balance)
	if err != nil {
		return domain.Record{}, fmt.Errorf("record %s has malformed balance %q: %w", d.ID, d.Balance, err)
	}
	return domain.Record{
		RecordID:     d.ID,
		AccountID:    d.AccountID,
		Balance:      balance,
		CurrencyCode: d.CurrencyCode,
		Date:         domain.NormalizeDate(d.Date),
		AuditFields:  d.AuditDocument.toDomain(),
	}, nil
}

type currencyDocument struct {
	ID            string `bson:"_id"`
	Symbol        string `bson:"symbol"`
	Name          string `bson:"name"`
	Precision     int    `bson:"precision"`
	AuditDocument `bson:",inline"`
}

func toCurrencyDocument(c domain.Currency) currencyDocument {
	return currencyDocument{
		ID:            c.CurrencyCode,
		Symbol:        c.Symbol,
		Name:          c.Name,
		Precision:     c.Precision,
		AuditDocument: toAuditDocument(c.AuditFields),
	}
}

func (d currencyDocument) toDomain() domain.Currency {
	return domain.Currency{
		CurrencyCode: d.ID,
		Symbol:       d.Symbol,
		Name:         d.Name,
		Precision:    d.Precision,
		AuditFields:  d.AuditDocument.toDomain(),
	}
}

type exchangeRateDocument struct {
	ID               string    `bson:"_id"`
	FromCurrencyCode string    `bson:"from_currency_code"`
	ToCurrencyCode   string    `bson:"to_currency_code"`
	Rate             string    `bson:"rate"`
	DateEffective    time.Time `bson:"date_effective"`
	AuditDocument    `bson:",inline"`
}

func toExchangeRateDocument(r domain.ExchangeRate) exchangeRateDocument {
	return exchangeRateDocument{
		ID:               r.ExchangeRateID,
		FromCurrencyCode: r.FromCurrencyCode,
		ToCurrencyCode:   r.ToCurrencyCode,
		Rate:             r.Rate.String(),
		DateEffective:    domain.NormalizeDate(r.DateEffective),
		AuditDocument:    toAuditDocument(r.AuditFields),
	}
}

func (d exchangeRateDocument) toDomain() (domain.ExchangeRate, error) {
	rate, err := decimal.NewFromString(d.Rate)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("exchange rate %s has malformed rate %q: %w", d.ID, d.Rate, err)
	}
	return domain.ExchangeRate{
		ExchangeRateID:   d.ID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             rate,
		DateEffective:    domain.NormalizeDate(d.DateEffective),
		AuditFields:      d.AuditDocument.toDomain(),
	}, nil
}
