package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/balance_dashboard/internal/models"
	"github.com/SscSPs/balance_dashboard/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository implements portsrepo.ExchangeRateRepositoryFacade using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.CollectableRow) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode,
		&m.Rate, &m.DateEffective, &m.CreatedAt,
		&m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// upsertExchangeRateQuery keeps the stored id of an existing rate for the same pair and date.
const upsertExchangeRateQuery = `
	INSERT INTO exchange_rates (` + exchangeRateColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT ON CONSTRAINT uq_exchange_rates_pair_date DO UPDATE
	SET rate = EXCLUDED.rate, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by
	RETURNING ` + exchangeRateColumns + `;`

// exchangeRateAsOfQuery selects the latest rate dated on or before $3, or the earliest
// rate dated after it.
func exchangeRateAsOfQuery(onOrBefore bool) string {
	cond, order := "date_effective > $3", "ASC"
	if onOrBefore {
		cond, order = "date_effective <= $3", "DESC"
	}
	return `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND ` + cond + `
		ORDER BY date_effective ` + order + `
		LIMIT 1;`
}

// SaveExchangeRate inserts a rate, or updates the existing rate of the same pair and date,
// and returns the stored row.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	modelRate := mapping.ToModelExchangeRate(rate)
	modelRate.FromCurrencyCode = strings.ToUpper(modelRate.FromCurrencyCode)
	modelRate.ToCurrencyCode = strings.ToUpper(modelRate.ToCurrencyCode)

	if modelRate.FromCurrencyCode == modelRate.ToCurrencyCode {
		return nil, apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	rows, err := r.Pool.Query(ctx, upsertExchangeRateQuery,
		modelRate.ExchangeRateID, modelRate.FromCurrencyCode, modelRate.ToCurrencyCode,
		modelRate.Rate, modelRate.DateEffective, modelRate.CreatedAt,
		modelRate.CreatedBy, modelRate.LastUpdatedAt, modelRate.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	stored, err := pgx.CollectExactlyOneRow(rows, scanExchangeRate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to save exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(stored)
	return &domainRate, nil
}

// FindExchangeRateAsOf retrieves the rate for the pair effective on asOf, falling back to
// the earliest later rate when none is dated on or before it.
func (r *PgxExchangeRateRepository) FindExchangeRateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	fromCurrency := strings.ToUpper(fromCurrencyCode)
	toCurrency := strings.ToUpper(toCurrencyCode)
	day := domain.NormalizeDate(asOf)

	rate, err := r.findRate(ctx, exchangeRateAsOfQuery(true), fromCurrency, toCurrency, day)
	if !errors.Is(err, apperrors.ErrNotFound) {
		return rate, err
	}
	return r.findRate(ctx, exchangeRateAsOfQuery(false), fromCurrency, toCurrency, day)
}

// findRate runs a single-row exchange rate query.
func (r *PgxExchangeRateRepository) findRate(ctx context.Context, query string, args ...any) (*domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}
	modelRate, err := pgx.CollectExactlyOneRow(rows, scanExchangeRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}
