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

// RecordRepository stores balance records in the "records" collection.
type RecordRepository struct {
	provider CollectionProvider
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(provider CollectionProvider) *RecordRepository {
	return &RecordRepository{provider: provider}
}

var _ portsrepo.RecordRepositoryFacade = (*RecordRepository)(nil)

func (r *RecordRepository) collection() DataStore {
	return r.provider.Collection(RecordsCollection)
}

// SaveRecord inserts a new record.
func (r *RecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	_, err := r.collection().InsertOne(ctx, toRecordDocument(record))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: record with ID %s already exists", apperrors.ErrDuplicate, record.RecordID)
		}
		return fmt.Errorf("failed to save record %s: %w", record.RecordID, err)
	}
	return nil
}

// FindRecordByID retrieves a record by its ID.
func (r *RecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	var doc recordDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": recordID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("record " + recordID + " not found")
		}
		return nil, fmt.Errorf("failed to find record by ID %s: %w", recordID, err)
	}
	rec, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecords retrieves records ordered by date then id, using keyset pagination.
func (r *RecordRepository) ListRecords(ctx context.Context, q portsrepo.RecordQuery) ([]domain.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	docs, err := findAll[recordDocument](ctx, r.collection(), recordFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	records := make([]domain.Record, 0, len(docs))
	for _, d := range docs {
		rec, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func recordFilter(q portsrepo.RecordQuery) bson.M {
	filter := bson.M{}
	if len(q.AccountIDs) > 0 {
		filter["account_id"] = bson.M{"$in": q.AccountIDs}
	}
	dateRange := bson.M{}
	if q.From != nil {
		dateRange["$gte"] = domain.NormalizeDate(*q.From)
	}
	if q.To != nil {
		dateRange["$lte"] = domain.NormalizeDate(*q.To)
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	if q.After != nil {
		after := domain.NormalizeDate(q.After.Date)
		filter["$or"] = bson.A{
			bson.M{"date": bson.M{"$gt": after}},
			bson.M{"date": after, "_id": bson.M{"$gt": q.After.RecordID}},
		}
	}
	return filter
}

// DeleteRecords removes records by ID.
func (r *RecordRepository) DeleteRecords(ctx context.Context, recordIDs []string) (int64, error) {
	return deleteByIDs(ctx, r.collection(), recordIDs)
}
