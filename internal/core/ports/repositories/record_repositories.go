package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/balance_dashboard/internal/core/domain"
)

// RecordCursor is the keyset position after which a page of records starts.
type RecordCursor struct {
	Date     time.Time
	RecordID string
}

// RecordQuery selects records ordered by (date, record id).
// Empty AccountIDs and nil bounds do not restrict; Limit <= 0 returns everything.
type RecordQuery struct {
	AccountIDs []string
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	After      *RecordCursor
	Limit      int
}

// RecordReader defines read operations for record data
type RecordReader interface {
	// FindRecordByID retrieves a specific record by its unique identifier.
	FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error)

	// ListRecords retrieves records matching the query.
	ListRecords(ctx context.Context, query RecordQuery) ([]domain.Record, error)
}

// RecordWriter defines write operations for record data
type RecordWriter interface {
	// SaveRecord persists a new record.
	SaveRecord(ctx context.Context, record domain.Record) error

	// DeleteRecords removes the records with the given IDs and returns how many existed.
	DeleteRecords(ctx context.Context, recordIDs []string) (int64, error)
}

// RecordRepositoryFacade combines all record-related repository interfaces
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
}
