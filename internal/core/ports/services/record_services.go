package services

import (
	"context"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
	"github.com/SscSPs/balance_dashboard/internal/dto"
)

// RecordPage is one page of records ordered by (date, recordID).
type RecordPage struct {
	Records   []domain.Record
	NextToken *string // nil on the last page
}

// RecordReaderSvc defines read operations for balance records
type RecordReaderSvc interface {
	// GetRecordByID retrieves a specific record by its unique identifier.
	GetRecordByID(ctx context.Context, recordID string) (*domain.Record, error)

	// ListRecords retrieves one page of records matching the params.
	ListRecords(ctx context.Context, params dto.ListRecordsParams) (*RecordPage, error)

	// ListAllRecords retrieves every record, unpaginated.
	ListAllRecords(ctx context.Context) ([]domain.Record, error)
}

// RecordWriterSvc defines write operations for balance records
type RecordWriterSvc interface {
	// CreateRecord persists a new balance observation.
	CreateRecord(ctx context.Context, req dto.CreateRecordRequest, userID string) (*domain.Record, error)

	// DeleteRecords removes records and reports how many existed.
	DeleteRecords(ctx context.Context, recordIDs []string) (int64, error)
}

// RecordConverterSvc re-expresses records in another currency.
type RecordConverterSvc interface {
	// ConvertCurrency returns copies of records with balances converted to target,
	// using the rate effective on each record's date.
	ConvertCurrency(ctx context.Context, records []domain.Record, target string) ([]domain.Record, error)
}

// RecordSvcFacade combines all record-related service interfaces
type RecordSvcFacade interface {
	RecordReaderSvc
	RecordWriterSvc
	RecordConverterSvc
}
