package pgsql

import (
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres-backed repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		LabelRepo:        newPgxLabelRepository(dbPool),
		RecordRepo:       newPgxRecordRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
	}
}
