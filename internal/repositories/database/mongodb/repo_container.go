package mongodb

import (
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every Mongo-backed repository onto one collection provider.
func NewRepositoryProvider(provider CollectionProvider) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      NewAccountRepository(provider),
		LabelRepo:        NewLabelRepository(provider),
		RecordRepo:       NewRecordRepository(provider),
		CurrencyRepo:     NewCurrencyRepository(provider),
		ExchangeRateRepo: NewExchangeRateRepository(provider),
	}
}
