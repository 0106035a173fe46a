// Package storetest provides an in-memory row store for tests. It reuses
// the real header index so tolerant column matching behaves exactly as it
// does against the spreadsheet.
package storetest

import (
	"context"
	"fmt"

	"github.com/eventx/namecard-services/internal/cardsvc/sheet"
	"github.com/eventx/namecard-services/internal/cardsvc/store"
)

type Opener struct {
	tables map[string]*Table
}

func NewOpener() *Opener {
	return &Opener{tables: map[string]*Table{}}
}

// Add registers a table with the given header row and returns it for
// seeding and inspection.
func (o *Opener) Add(title string, headers []string) *Table {
	t := &Table{index: sheet.NewHeaderIndex(headers)}
	o.tables[title] = t
	return t
}

func (o *Opener) OpenTable(ctx context.Context, title string) (store.Table, error) {
	t, ok := o.tables[title]
	if !ok {
		return nil, fmt.Errorf("%w: %q", sheet.ErrTableNotFound, title)
	}
	return t, nil
}

type Table struct {
	index *sheet.HeaderIndex
	rows  [][]string
}

func (t *Table) Require(fields ...string) error {
	if missing := t.index.Missing(fields...); len(missing) > 0 {
		return &sheet.SchemaError{Table: "memory", Missing: missing}
	}
	return nil
}

func (t *Table) Rows(ctx context.Context) ([]store.Row, error) {
	out := make([]store.Row, len(t.rows))
	for i := range t.rows {
		vals := make([]string, len(t.index.Headers()))
		copy(vals, t.rows[i])
		out[i] = &Row{table: t, idx: i, vals: vals}
	}
	return out, nil
}

func (t *Table) Append(ctx context.Context, fields map[string]string) error {
	row := make([]string, len(t.index.Headers()))
	for field, value := range fields {
		col, ok := t.index.Resolve(field)
		if !ok {
			continue
		}
		row[col] = value
	}
	t.rows = append(t.rows, row)
	return nil
}

// Seed appends a row directly, bypassing the service-side defaults.
func (t *Table) Seed(fields map[string]string) {
	_ = t.Append(context.Background(), fields)
}

// Len reports the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Value reads a stored cell by row position and logical field name.
func (t *Table) Value(idx int, field string) string {
	col, ok := t.index.Resolve(field)
	if !ok || idx >= len(t.rows) || col >= len(t.rows[idx]) {
		return ""
	}
	return t.rows[idx][col]
}

// Row is a detached copy of a table row until Save writes it back, which
// mirrors how the sheet adapter behaves.
type Row struct {
	table *Table
	idx   int
	vals  []string
}

func (r *Row) Get(field string) string {
	col, ok := r.table.index.Resolve(field)
	if !ok || col >= len(r.vals) {
		return ""
	}
	return r.vals[col]
}

func (r *Row) Set(field, value string) {
	col, ok := r.table.index.Resolve(field)
	if !ok {
		return
	}
	r.vals[col] = value
}

func (r *Row) Save(ctx context.Context) error {
	vals := make([]string, len(r.vals))
	copy(vals, r.vals)
	r.table.rows[r.idx] = vals
	return nil
}
