package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/balance_dashboard/internal/models"
	"github.com/SscSPs/balance_dashboard/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordColumns = `record_id, account_id, balance, currency_code, date, created_at, created_by, last_updated_at, last_updated_by`

type PgxRecordRepository struct {
	BaseRepository
}

// newPgxRecordRepository creates a new repository for balance records.
func newPgxRecordRepository(pool *pgxpool.Pool) portsrepo.RecordRepositoryFacade {
	return &PgxRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RecordRepositoryFacade = (*PgxRecordRepository)(nil)

func scanRecord(row pgx.CollectableRow) (models.Record, error) {
	var m models.Record
	err := row.Scan(
		&m.RecordID,
		&m.AccountID,
		&m.Balance,
		&m.CurrencyCode,
		&m.Date,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveRecord inserts a new record.
func (r *PgxRecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	m := mapping.ToModelRecord(record)

	query := `
		INSERT INTO records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RecordID, m.AccountID, m.Balance, m.CurrencyCode, m.Date,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: record with ID %s already exists", apperrors.ErrDuplicate, m.RecordID)
		}
		return fmt.Errorf("failed to save record %s: %w", m.RecordID, err)
	}
	return nil
}

// FindRecordByID retrieves a record by its ID.
func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+recordColumns+` FROM records WHERE record_id = $1;`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to find record by ID %s: %w", recordID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanRecord)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("record " + recordID + " not found")
		}
		return nil, fmt.Errorf("failed to find record by ID %s: %w", recordID, err)
	}
	rec := mapping.ToDomainRecord(m)
	return &rec, nil
}

// ListRecords retrieves records ordered by date then record id, using keyset pagination.
func (r *PgxRecordRepository) ListRecords(ctx context.Context, q portsrepo.RecordQuery) ([]domain.Record, error) {
	query, args := buildListRecordsQuery(q)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	ms, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("failed to scan record rows: %w", err)
	}
	return mapping.ToDomainRecordSlice(ms), nil
}

func buildListRecordsQuery(q portsrepo.RecordQuery) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + recordColumns + ` FROM records WHERE 1=1`)
	args := []any{}

	if len(q.AccountIDs) > 0 {
		args = append(args, q.AccountIDs)
		fmt.Fprintf(&sb, " AND account_id = ANY($%d)", len(args))
	}
	if q.From != nil {
		args = append(args, domain.NormalizeDate(*q.From))
		fmt.Fprintf(&sb, " AND date >= $%d", len(args))
	}
	if q.To != nil {
		args = append(args, domain.NormalizeDate(*q.To))
		fmt.Fprintf(&sb, " AND date <= $%d", len(args))
	}
	if q.After != nil {
		args = append(args, domain.NormalizeDate(q.After.Date), q.After.RecordID)
		fmt.Fprintf(&sb, " AND (date, record_id) > ($%d, $%d)", len(args)-1, len(args))
	}
	sb.WriteString(" ORDER BY date, record_id")
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	sb.WriteString(";")
	return sb.String(), args
}

// DeleteRecords removes records by ID.
func (r *PgxRecordRepository) DeleteRecords(ctx context.Context, recordIDs []string) (int64, error) {
	return r.deleteByIDs(ctx, "records", "record_id", recordIDs)
}
