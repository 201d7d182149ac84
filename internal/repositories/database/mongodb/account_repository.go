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

// AccountRepository stores accounts in the "accounts" collection.
type AccountRepository struct {
	provider CollectionProvider
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(provider CollectionProvider) *AccountRepository {
	return &AccountRepository{provider: provider}
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) collection() DataStore {
	return r.provider.Collection(AccountsCollection)
}

// SaveAccount inserts a new account.
func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	_, err := r.collection().InsertOne(ctx, toAccountDocument(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var doc accountDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": accountID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("account " + accountID + " not found")
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	acc := doc.toDomain()
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *AccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	docs, err := findAll[accountDocument](ctx, r.collection(), bson.M{"_id": bson.M{"$in": accountIDs}}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	accounts := make(map[string]domain.Account, len(docs))
	for _, d := range docs {
		accounts[d.ID] = d.toDomain()
	}
	return accounts, nil
}

// ListAccounts retrieves all accounts matching the filter, ordered by name.
func (r *AccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	query := bson.M{}
	if filter.LabelID != "" {
		query["label_id"] = filter.LabelID
	}
	if filter.CountryCode != "" {
		query["country_code"] = filter.CountryCode
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	docs, err := findAll[accountDocument](ctx, r.collection(), query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	accounts := make([]domain.Account, len(docs))
	for i, d := range docs {
		accounts[i] = d.toDomain()
	}
	return accounts, nil
}

// DeleteAccounts removes accounts by ID.
func (r *AccountRepository) DeleteAccounts(ctx context.Context, accountIDs []string) (int64, error) {
	return deleteByIDs(ctx, r.collection(), accountIDs)
}

// findAll runs Find and decodes every document into T.
func findAll[T any](ctx context.Context, ds DataStore, filter interface{}, opts *options.FindOptions) ([]T, error) {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cur, err := ds.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func deleteByIDs(ctx context.Context, ds DataStore, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := ds.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete documents: %w", err)
	}
	return res.DeletedCount, nil
}
