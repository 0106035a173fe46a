package store

import (
	"context"
	"errors"

	"github.com/eventx/namecard-services/internal/cardsvc/models"
)

// ErrNotFound means no row carries the requested card id.
var ErrNotFound = errors.New("store: card not found")

// Row is one card row in a table, addressed by logical field name.
type Row interface {
	Get(field string) string
	Set(field, value string)
	Save(ctx context.Context) error
}

// Table is a named row collection within the spreadsheet document.
type Table interface {
	Require(fields ...string) error
	Rows(ctx context.Context) ([]Row, error)
	Append(ctx context.Context, fields map[string]string) error
}

// Opener obtains a fresh table handle. Implemented by the sheet client;
// tests swap in an in-memory opener.
type Opener interface {
	OpenTable(ctx context.Context, title string) (Table, error)
}

// CardStore maps card semantics onto one table of the row store.
type CardStore struct {
	opener   Opener
	table    string
	required []string
}

func NewCardStore(opener Opener, table string, required []string) *CardStore {
	return &CardStore{opener: opener, table: table, required: required}
}

func (s *CardStore) Table() string { return s.table }

func (s *CardStore) open(ctx context.Context) (Table, error) {
	t, err := s.opener.OpenTable(ctx, s.table)
	if err != nil {
		return nil, err
	}
	if err := t.Require(s.required...); err != nil {
		return nil, err
	}
	return t, nil
}

// Probe opens the table and checks its schema without touching any row.
// Called at boot so a renamed required column fails the service at startup.
func (s *CardStore) Probe(ctx context.Context) error {
	_, err := s.open(ctx)
	return err
}

// Append writes one new card row. Fields are keyed by logical name.
func (s *CardStore) Append(ctx context.Context, fields map[string]string) error {
	t, err := s.open(ctx)
	if err != nil {
		return err
	}
	return t.Append(ctx, fields)
}

// FindByID linear-scans the table for the row with the given id. O(n) per
// lookup; the tables stay in the hundreds of rows, so a scan beats keeping
// an index consistent with a store we do not own.
func (s *CardStore) FindByID(ctx context.Context, id string) (Row, error) {
	t, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := t.Rows(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Get(models.FieldID) == id {
			return row, nil
		}
	}
	return nil, ErrNotFound
}

// All returns every row of the table, in sheet order.
func (s *CardStore) All(ctx context.Context) ([]Row, error) {
	t, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	return t.Rows(ctx)
}
