package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/SscSPs/balance_dashboard/internal/utils"
	"github.com/SscSPs/balance_dashboard/internal/utils/pagination"
	"github.com/google/uuid"
)

const defaultRecordPageSize = 100

type recordService struct {
	BaseService
	recordRepo   portsrepo.RecordRepositoryFacade
	accountRepo  portsrepo.AccountReader
	currencyRepo portsrepo.CurrencyReader
	rates        portssvc.ExchangeRateReaderSvc
}

// RecordServiceOption is a functional option for configuring the record service
type RecordServiceOption func(*recordService)

// WithRecordAccountReader enables checking that a record's account exists.
func WithRecordAccountReader(repo portsrepo.AccountReader) RecordServiceOption {
	return func(s *recordService) {
		s.accountRepo = repo
	}
}

// WithRecordCurrencyReader enables currency checks and rounding of converted balances.
func WithRecordCurrencyReader(repo portsrepo.CurrencyReader) RecordServiceOption {
	return func(s *recordService) {
		s.currencyRepo = repo
	}
}

// WithExchangeRates enables ConvertCurrency.
func WithExchangeRates(rates portssvc.ExchangeRateReaderSvc) RecordServiceOption {
	return func(s *recordService) {
		s.rates = rates
	}
}

// NewRecordService creates a new record service with the provided options
func NewRecordService(repo portsrepo.RecordRepositoryFacade, options ...RecordServiceOption) portssvc.RecordSvcFacade {
	svc := &recordService{recordRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

func (s *recordService) CreateRecord(ctx context.Context, req dto.CreateRecordRequest, userID string) (*domain.Record, error) {
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be a YYYY-MM-DD date", apperrors.ErrValidation)
	}
	currencyCode := strings.ToUpper(req.CurrencyCode)

	if s.accountRepo != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, req.AccountID)
			}
			return nil, fmt.Errorf("failed to validate account %s: %w", req.AccountID, err)
		}
	}
	if s.currencyRepo != nil {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency %s not found", apperrors.ErrValidation, currencyCode)
			}
			return nil, fmt.Errorf("failed to validate currency %s: %w", currencyCode, err)
		}
	}

	record := domain.Record{
		RecordID:     uuid.NewString(),
		AccountID:    req.AccountID,
		Balance:      req.Balance,
		CurrencyCode: currencyCode,
		Date:         domain.NormalizeDate(date),
		AuditFields:  domain.NewAuditFields(userID, time.Now()),
	}
	if err := domain.Validate(record); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.recordRepo.SaveRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save record in repository", slog.String("record_id", record.RecordID))
		return nil, err
	}

	s.LogInfo(ctx, "Record created", slog.String("record_id", record.RecordID), slog.String("account_id", record.AccountID))
	return &record, nil
}

func (s *recordService) GetRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find record by ID", slog.String("record_id", recordID))
		}
		return nil, err
	}
	return record, nil
}

// ListRecords returns one page ordered by (date, recordID). One extra row is fetched
// to learn whether another page follows.
func (s *recordService) ListRecords(ctx context.Context, params dto.ListRecordsParams) (*portssvc.RecordPage, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultRecordPageSize
	}
	query := portsrepo.RecordQuery{AccountIDs: params.AccountIDs, Limit: limit + 1}

	var err error
	if query.From, err = parseDateParam(params.From, "from"); err != nil {
		return nil, err
	}
	if query.To, err = parseDateParam(params.To, "to"); err != nil {
		return nil, err
	}
	if params.NextToken != "" {
		date, recordID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query.After = &portsrepo.RecordCursor{Date: date, RecordID: recordID}
	}

	records, err := s.recordRepo.ListRecords(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records")
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	page := &portssvc.RecordPage{Records: records}
	if page.Records == nil {
		page.Records = []domain.Record{}
	}
	if len(page.Records) > limit {
		page.Records = page.Records[:limit]
		last := page.Records[limit-1]
		token := pagination.EncodeToken(last.Date, last.RecordID)
		page.NextToken = &token
	}
	return page, nil
}

func (s *recordService) ListAllRecords(ctx context.Context) ([]domain.Record, error) {
	records, err := s.recordRepo.ListRecords(ctx, portsrepo.RecordQuery{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load records")
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	if records == nil {
		return []domain.Record{}, nil
	}
	return records, nil
}

func (s *recordService) DeleteRecords(ctx context.Context, recordIDs []string) (int64, error) {
	ids := uniqueIDs(recordIDs)
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("at least one record id is required")
	}
	deleted, err := s.recordRepo.DeleteRecords(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete records", slog.Int("count", len(ids)))
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	s.LogInfo(ctx, "Records deleted", slog.Int64("deleted", deleted))
	return deleted, nil
}

type rateKey struct {
	from string
	day  int64
}

// ConvertCurrency converts every record whose currency differs from target using the
// rate effective on the record's date. Converted balances are rounded to the target
// currency's precision when the currency is known. The input slice is not modified.
func (s *recordService) ConvertCurrency(ctx context.Context, records []domain.Record, target string) ([]domain.Record, error) {
	target = strings.ToUpper(target)
	out := make([]domain.Record, len(records))
	copy(out, records)

	var targetCurrency *domain.Currency
	if s.currencyRepo != nil {
		cur, err := s.currencyRepo.FindCurrencyByCode(ctx, target)
		switch {
		case err == nil:
			targetCurrency = cur
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("failed to look up currency %s: %w", target, err)
		}
	}

	rates := make(map[rateKey]domain.ExchangeRate)
	converted := 0
	for i := range out {
		rec := &out[i]
		if strings.EqualFold(rec.CurrencyCode, target) {
			rec.CurrencyCode = target
			continue
		}
		if s.rates == nil {
			return nil, fmt.Errorf("%w: no exchange rate source to convert %s to %s", apperrors.ErrNotFound, rec.CurrencyCode, target)
		}

		key := rateKey{from: strings.ToUpper(rec.CurrencyCode), day: domain.DayNumber(rec.Date)}
		rate, ok := rates[key]
		if !ok {
			r, err := s.rates.GetExchangeRateAsOf(ctx, rec.CurrencyCode, target, rec.Date)
			if err != nil {
				return nil, fmt.Errorf("failed to convert record %s from %s to %s: %w", rec.RecordID, rec.CurrencyCode, target, err)
			}
			rate = *r
			rates[key] = rate
		}

		rec.Balance = rate.Convert(rec.Balance)
		if targetCurrency != nil {
			rec.Balance = utils.RoundToCurrency(rec.Balance, *targetCurrency)
		}
		rec.CurrencyCode = target
		converted++
	}

	if converted > 0 {
		s.LogDebug(ctx, "Records converted", slog.String("currency", target), slog.Int("converted", converted), slog.Int("rates", len(rates)))
	}
	return out, nil
}

func parseDateParam(s, name string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", apperrors.ErrValidation, name)
	}
	return &t, nil
}
