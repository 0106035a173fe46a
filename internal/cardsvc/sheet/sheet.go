package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/eventx/namecard-services/internal/cardsvc/config"
)

var (
	// ErrAuth covers missing or rejected service-account credentials.
	ErrAuth = errors.New("sheet: authentication failed")
	// ErrTableNotFound means the spreadsheet has no sheet with that title.
	ErrTableNotFound = errors.New("sheet: table not found")
)

// SchemaError reports required logical fields with no resolvable column.
// It is a configuration problem, not a per-request one.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("sheet: table %q missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// Client talks to one spreadsheet document through the Sheets API,
// authenticated as a service account.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// Connect builds the authenticated client. Credentials are validated
// lazily; a bad key or email surfaces as ErrAuth on the first call.
func Connect(ctx context.Context, cfg config.Config) (*Client, error) {
	if cfg.SpreadsheetID == "" || cfg.ServiceAccountEmail == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("%w: missing spreadsheet credentials", ErrAuth)
	}

	conf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheet: create service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// OpenTable loads the document metadata and returns a handle for the sheet
// with the given title, header index included. Every call re-fetches; rows
// are never cached, freshness is preferred over round-trip count.
func (c *Client) OpenTable(ctx context.Context, title string) (*Table, error) {
	doc, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("load document", err)
	}

	found := false
	for _, s := range doc.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, title)
	}

	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, quoteRange(title)).
		Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("load rows", err)
	}

	headers := []string{}
	var data [][]string
	for i, raw := range vr.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = fmt.Sprint(cell)
		}
		if i == 0 {
			headers = row
			continue
		}
		data = append(data, row)
	}

	return &Table{
		client: c,
		title:  title,
		index:  NewHeaderIndex(headers),
		data:   data,
	}, nil
}

// Table is a handle to one sheet. The first spreadsheet row is the header;
// data rows follow.
type Table struct {
	client *Client
	title  string
	index  *HeaderIndex
	data   [][]string
}

func (t *Table) Title() string { return t.title }

// Require fails with a SchemaError when any of the logical fields has no
// resolvable column in the header row.
func (t *Table) Require(fields ...string) error {
	if missing := t.index.Missing(fields...); len(missing) > 0 {
		return &SchemaError{Table: t.title, Missing: missing}
	}
	return nil
}

// Rows returns a handle per data row, in sheet order.
func (t *Table) Rows(ctx context.Context) ([]*Row, error) {
	rows := make([]*Row, len(t.data))
	for i, vals := range t.data {
		// pad to header width so Set can address any resolved column
		padded := make([]string, len(t.index.Headers()))
		copy(padded, vals)
		rows[i] = &Row{table: t, num: i + 2, vals: padded}
	}
	return rows, nil
}

// Append writes one new row. Fields are keyed by logical name and placed
// under their resolved columns; a field with no column is dropped with a
// warning rather than inventing a new header.
func (t *Table) Append(ctx context.Context, fields map[string]string) error {
	row := make([]interface{}, len(t.index.Headers()))
	for i := range row {
		row[i] = ""
	}
	for field, value := range fields {
		col, ok := t.index.Resolve(field)
		if !ok {
			log.Warnf("table %s has no column for %q, value dropped", t.title, field)
			continue
		}
		row[col] = value
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := t.client.svc.Spreadsheets.Values.Append(t.client.spreadsheetID, quoteRange(t.title), vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return wrapAPIError("append row", err)
	}
	return nil
}

// Row is one data row, addressable by logical field name.
type Row struct {
	table *Table
	num   int // 1-based spreadsheet row number
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
		log.Warnf("table %s has no column for %q, value dropped", r.table.title, field)
		return
	}
	r.vals[col] = value
}

// Save flushes the row back in place, overwriting the full row range.
func (r *Row) Save(ctx context.Context) error {
	row := make([]interface{}, len(r.vals))
	for i, v := range r.vals {
		row[i] = v
	}

	rng := fmt.Sprintf("'%s'!A%d:%s%d", r.table.title, r.num, columnName(len(r.vals)), r.num)
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := r.table.client.svc.Spreadsheets.Values.Update(r.table.client.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return wrapAPIError("save row", err)
	}
	return nil
}

func quoteRange(title string) string {
	return "'" + title + "'"
}

// columnName converts a 1-based column count to its A1 letter (27 -> AA).
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

func wrapAPIError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == 401 || apiErr.Code == 403) {
		return fmt.Errorf("%w: %s: %v", ErrAuth, op, err)
	}
	return fmt.Errorf("sheet: %s: %w", op, err)
}
