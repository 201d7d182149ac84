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

// LabelRepository stores labels in the "labels" collection.
type LabelRepository struct {
	provider CollectionProvider
}

// NewLabelRepository creates a new LabelRepository.
func NewLabelRepository(provider CollectionProvider) *LabelRepository {
	return &LabelRepository{provider: provider}
}

var _ portsrepo.LabelRepositoryFacade = (*LabelRepository)(nil)

func (r *LabelRepository) collection() DataStore {
	return r.provider.Collection(LabelsCollection)
}

// SaveLabel inserts a new label.
func (r *LabelRepository) SaveLabel(ctx context.Context, label domain.Label) error {
	_, err := r.collection().InsertOne(ctx, toLabelDocument(label))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: label with ID %s already exists", apperrors.ErrDuplicate, label.LabelID)
		}
		return fmt.Errorf("failed to save label %s: %w", label.LabelID, err)
	}
	return nil
}

// FindLabelByID retrieves a label by its ID.
func (r *LabelRepository) FindLabelByID(ctx context.Context, labelID string) (*domain.Label, error) {
	var doc labelDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": labelID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("label " + labelID + " not found")
		}
		return nil, fmt.Errorf("failed to find label by ID %s: %w", labelID, err)
	}
	label := doc.toDomain()
	return &label, nil
}

// ListLabels retrieves all labels ordered by name.
func (r *LabelRepository) ListLabels(ctx context.Context) ([]domain.Label, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	docs, err := findAll[labelDocument](ctx, r.collection(), bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	labels := make([]domain.Label, len(docs))
	for i, d := range docs {
		labels[i] = d.toDomain()
	}
	return labels, nil
}

// DeleteLabels removes labels by ID. Accounts keep their label id; the compiler treats
// it as an unmatched label.
func (r *LabelRepository) DeleteLabels(ctx context.Context, labelIDs []string) (int64, error) {
	return deleteByIDs(ctx, r.collection(), labelIDs)
}
