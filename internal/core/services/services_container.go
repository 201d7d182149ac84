package services

import (
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Label = NewLabelService(repos.LabelRepo)
	container.Account = NewAccountService(
		repos.AccountRepo,
		WithLabelReader(repos.LabelRepo),
	)
	container.Record = NewRecordService(
		repos.RecordRepo,
		WithRecordAccountReader(repos.AccountRepo),
		WithRecordCurrencyReader(repos.CurrencyRepo),
		WithExchangeRates(container.ExchangeRate),
	)

	container.Options = NewOptionsService(repos.AccountRepo, repos.LabelRepo, repos.CurrencyRepo, cfg.DefaultCurrency)
	container.Dashboard = NewDashboardService(repos.AccountRepo, repos.LabelRepo, container.Record, cfg.DefaultCurrency)

	container.Entities = NewEntityRegistry(map[domain.EntityKind]portssvc.Deleter{
		domain.EntityAccount: portssvc.DeleterFunc(container.Account.DeleteAccounts),
		domain.EntityLabel:   portssvc.DeleterFunc(container.Label.DeleteLabels),
		domain.EntityRecord:  portssvc.DeleterFunc(container.Record.DeleteRecords),
	})

	return container
}
