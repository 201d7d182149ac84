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

const currencyColumns = `currency_code, symbol, name, precision, created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func scanCurrency(row pgx.CollectableRow) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(&m.CurrencyCode, &m.Symbol, &m.Name, &m.Precision,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

// SaveCurrency upserts by code. A replaced currency keeps its original created_* audit
// columns.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (currency_code) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			precision = EXCLUDED.precision,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	if _, err := r.Pool.Exec(ctx, query,
		m.CurrencyCode, m.Symbol, m.Name, m.Precision,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to save currency %s: %w", m.CurrencyCode, err)
	}
	return nil
}

func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+currencyColumns+` FROM currencies WHERE currency_code = $1;`, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanCurrency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("currency " + currencyCode + " not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}
	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

// ListCurrencies returns every currency ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+currencyColumns+` FROM currencies ORDER BY currency_code;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	ms, err := pgx.CollectRows(rows, scanCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to scan currency rows: %w", err)
	}
	return mapping.ToDomainCurrencySlice(ms), nil
}
