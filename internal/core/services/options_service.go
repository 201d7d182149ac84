package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
)

type optionsService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	labelRepo       portsrepo.LabelReader
	currencyRepo    portsrepo.CurrencyReader
	defaultCurrency string
}

// NewOptionsService creates the dropdown options service.
func NewOptionsService(accountRepo portsrepo.AccountReader, labelRepo portsrepo.LabelReader, currencyRepo portsrepo.CurrencyReader, defaultCurrency string) portssvc.OptionsSvc {
	return &optionsService{
		accountRepo:     accountRepo,
		labelRepo:       labelRepo,
		currencyRepo:    currencyRepo,
		defaultCurrency: strings.ToUpper(defaultCurrency),
	}
}

var _ portssvc.OptionsSvc = (*optionsService)(nil)

// GetOptions reads the reference data afresh on every call.
func (s *optionsService) GetOptions(ctx context.Context, defaultCurrency string) (*dto.OptionsResponse, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for options")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	labels, err := s.labelRepo.ListLabels(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load labels for options")
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load currencies for options")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}

	res := &dto.OptionsResponse{
		Accounts:        make([]dto.Option, 0, len(accounts)),
		Labels:          make([]dto.Option, 0, len(labels)),
		CountryCodes:    []dto.Option{},
		Currencies:      make([]dto.Option, 0, len(currencies)),
		DefaultCurrency: s.defaultCurrency,
	}
	if defaultCurrency != "" {
		res.DefaultCurrency = strings.ToUpper(defaultCurrency)
	}

	countries := make(map[string]bool)
	for _, a := range accounts {
		res.Accounts = append(res.Accounts, dto.Option{Label: a.Name, Value: a.AccountID})
		if a.CountryCode != "" {
			countries[a.CountryCode] = true
		}
	}
	codes := make([]string, 0, len(countries))
	for code := range countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		res.CountryCodes = append(res.CountryCodes, dto.Option{Label: code, Value: code})
	}

	for _, l := range labels {
		res.Labels = append(res.Labels, dto.Option{Label: l.Name, Value: l.LabelID})
	}
	for _, c := range currencies {
		res.Currencies = append(res.Currencies, dto.Option{Label: c.CurrencyCode, Value: c.CurrencyCode})
	}
	return res, nil
}
