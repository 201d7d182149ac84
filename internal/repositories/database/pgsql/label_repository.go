package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/balance_dashboard/internal/models"
	"github.com/SscSPs/balance_dashboard/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const labelColumns = `label_id, name, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxLabelRepository struct {
	BaseRepository
}

// newPgxLabelRepository creates a new repository for label data.
func newPgxLabelRepository(pool *pgxpool.Pool) portsrepo.LabelRepositoryFacade {
	return &PgxLabelRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LabelRepositoryFacade = (*PgxLabelRepository)(nil)

func scanLabel(row pgx.CollectableRow) (models.Label, error) {
	var m models.Label
	err := row.Scan(
		&m.LabelID,
		&m.Name,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveLabel inserts a new label.
func (r *PgxLabelRepository) SaveLabel(ctx context.Context, label domain.Label) error {
	m := mapping.ToModelLabel(label)

	query := `
		INSERT INTO labels (` + labelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LabelID, m.Name, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: label with ID %s already exists", apperrors.ErrDuplicate, m.LabelID)
		}
		return fmt.Errorf("failed to save label %s: %w", m.LabelID, err)
	}
	return nil
}

// FindLabelByID retrieves a label by its ID.
func (r *PgxLabelRepository) FindLabelByID(ctx context.Context, labelID string) (*domain.Label, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+labelColumns+` FROM labels WHERE label_id = $1;`, labelID)
	if err != nil {
		return nil, fmt.Errorf("failed to find label by ID %s: %w", labelID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanLabel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("label " + labelID + " not found")
		}
		return nil, fmt.Errorf("failed to find label by ID %s: %w", labelID, err)
	}
	label := mapping.ToDomainLabel(m)
	return &label, nil
}

// ListLabels retrieves all labels.
func (r *PgxLabelRepository) ListLabels(ctx context.Context) ([]domain.Label, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+labelColumns+` FROM labels ORDER BY name, label_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	ms, err := pgx.CollectRows(rows, scanLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to scan label rows: %w", err)
	}
	return mapping.ToDomainLabelSlice(ms), nil
}

// DeleteLabels removes labels by ID. The accounts.label_id foreign key is ON DELETE SET NULL.
func (r *PgxLabelRepository) DeleteLabels(ctx context.Context, labelIDs []string) (int64, error) {
	return r.deleteByIDs(ctx, "labels", "label_id", labelIDs)
}
