package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExchangeRateRepository stores exchange rates in the "exchange_rates" collection.
type ExchangeRateRepository struct {
	provider CollectionProvider
}

// NewExchangeRateRepository creates a new ExchangeRateRepository.
func NewExchangeRateRepository(provider CollectionProvider) *ExchangeRateRepository {
	return &ExchangeRateRepository{provider: provider}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateRepository)(nil)

func (r *ExchangeRateRepository) collection() DataStore {
	return r.provider.Collection(ExchangeRatesCollection)
}

// SaveExchangeRate upserts on (from, to, date_effective); the stored id of an existing
// rate for that key is kept and returned with the stored rate.
func (r *ExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	rate.FromCurrencyCode = strings.ToUpper(rate.FromCurrencyCode)
	rate.ToCurrencyCode = strings.ToUpper(rate.ToCurrencyCode)
	if rate.FromCurrencyCode == rate.ToCurrencyCode {
		return nil, apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	doc := toExchangeRateDocument(rate)
	key := bson.M{
		"from_currency_code": doc.FromCurrencyCode,
		"to_currency_code":   doc.ToCurrencyCode,
		"date_effective":     doc.DateEffective,
	}

	var existing exchangeRateDocument
	err := r.collection().FindOne(ctx, key).Decode(&existing)
	switch {
	case err == nil:
		doc.ID = existing.ID
		doc.CreatedAt, doc.CreatedBy = existing.CreatedAt, existing.CreatedBy
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, fmt.Errorf("failed to look up exchange rate: %w", err)
	}

	_, err = r.collection().ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}
	stored, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindExchangeRateAsOf retrieves the rate for the pair effective on asOf, falling back to
// the earliest later rate when none is dated on or before it.
func (r *ExchangeRateRepository) FindExchangeRateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	pair := func(dateCond bson.M) bson.M {
		return bson.M{
			"from_currency_code": strings.ToUpper(fromCurrencyCode),
			"to_currency_code":   strings.ToUpper(toCurrencyCode),
			"date_effective":     dateCond,
		}
	}
	day := domain.NormalizeDate(asOf)

	rate, err := r.findOne(ctx, pair(bson.M{"$lte": day}),
		options.FindOne().SetSort(bson.D{{Key: "date_effective", Value: -1}}))
	if !errors.Is(err, apperrors.ErrNotFound) {
		return rate, err
	}
	return r.findOne(ctx, pair(bson.M{"$gt": day}),
		options.FindOne().SetSort(bson.D{{Key: "date_effective", Value: 1}}))
}

func (r *ExchangeRateRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.ExchangeRate, error) {
	var findOpts []*options.FindOneOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	var doc exchangeRateDocument
	err := r.collection().FindOne(ctx, filter, findOpts...).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("exchange rate not found")
		}
		return nil, fmt.Errorf("failed to find exchange rate: %w", err)
	}
	rate, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
