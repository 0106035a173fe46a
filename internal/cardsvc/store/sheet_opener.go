package store

import (
	"context"

	"github.com/eventx/namecard-services/internal/cardsvc/sheet"
)

// SheetOpener adapts the sheet client to the store interfaces.
type SheetOpener struct {
	Client *sheet.Client
}

func NewSheetOpener(c *sheet.Client) SheetOpener {
	return SheetOpener{Client: c}
}

func (o SheetOpener) OpenTable(ctx context.Context, title string) (Table, error) {
	t, err := o.Client.OpenTable(ctx, title)
	if err != nil {
		return nil, err
	}
	return sheetTable{t}, nil
}

type sheetTable struct {
	t *sheet.Table
}

func (s sheetTable) Require(fields ...string) error {
	return s.t.Require(fields...)
}

func (s sheetTable) Rows(ctx context.Context) ([]Row, error) {
	rows, err := s.t.Rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}

func (s sheetTable) Append(ctx context.Context, fields map[string]string) error {
	return s.t.Append(ctx, fields)
}
