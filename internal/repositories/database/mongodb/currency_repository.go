package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CurrencyRepository stores currencies keyed by code.
type CurrencyRepository struct {
	provider CollectionProvider
}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository(provider CollectionProvider) *CurrencyRepository {
	return &CurrencyRepository{provider: provider}
}

var _ portsrepo.CurrencyRepositoryFacade = (*CurrencyRepository)(nil)

func (r *CurrencyRepository) collection() DataStore {
	return r.provider.Collection(CurrenciesCollection)
}

// SaveCurrency upserts a currency.
func (r *CurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	doc := toCurrencyDocument(currency)
	_, err := r.collection().ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save currency %s: %w", doc.ID, err)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *CurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	var doc currencyDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": currencyCode}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("currency " + currencyCode + " not found")
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", currencyCode, err)
	}
	cur := doc.toDomain()
	return &cur, nil
}

// ListCurrencies retrieves all currencies ordered by code.
func (r *CurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	docs, err := findAll[currencyDocument](ctx, r.collection(), bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	currencies := make([]domain.Currency, len(docs))
	for i, d := range docs {
		currencies[i] = d.toDomain()
	}
	return currencies, nil
}
