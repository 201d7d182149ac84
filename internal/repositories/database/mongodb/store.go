package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	AccountsCollection      = "accounts"
	LabelsCollection        = "labels"
	RecordsCollection       = "records"
	CurrenciesCollection    = "currencies"
	ExchangeRatesCollection = "exchange_rates"
)

// DataStore is the subset of *mongo.Collection the repositories use.
type DataStore interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// CollectionProvider defines the interface for obtaining a collection.
type CollectionProvider interface {
	Collection(name string) DataStore
}

// MongoProvider adapts *mongo.Client to CollectionProvider.
type MongoProvider struct {
	client   *mongo.Client
	database string
}

// NewMongoProvider creates a new MongoProvider bound to one database.
func NewMongoProvider(client *mongo.Client, database string) *MongoProvider {
	return &MongoProvider{client: client, database: database}
}

// Collection returns a DataStore for the given collection name.
func (p *MongoProvider) Collection(name string) DataStore {
	return p.client.Database(p.database).Collection(name)
}

// ConnectToMongoDB establishes a connection to MongoDB and pings it.
func ConnectToMongoDB(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	logger.DebugContext(ctx, "Attempting to connect to MongoDB")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.InfoContext(ctx, "Successfully established connection to MongoDB")
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on: the (date, _id) sort
// order of records and one exchange rate per pair and effective date.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		RecordsCollection: {
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}},
			{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "date", Value: 1}}},
		},
		AccountsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}},
		},
		ExchangeRatesCollection: {
			{
				Keys:    bson.D{{Key: "from_currency_code", Value: 1}, {Key: "to_currency_code", Value: 1}, {Key: "date_effective", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
