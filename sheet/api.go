package sheet

import (
	"context"

	"google.golang.org/api/sheets/v4"
)

// API is the narrow slice of the Google Sheets API used by the gateway. The
// gateway takes it as an explicit dependency so that nothing holds an ambient
// spreadsheet handle and tests can substitute an in-memory fake.
type API interface {
	Spreadsheet(ctx context.Context) (*sheets.Spreadsheet, error)
	Get(ctx context.Context, area string) (*sheets.ValueRange, error)
	Update(ctx context.Context, area string, values *sheets.ValueRange) error
	Append(ctx context.Context, area string, values *sheets.ValueRange) (*sheets.AppendValuesResponse, error)
	BatchUpdate(ctx context.Context, rq *sheets.BatchUpdateSpreadsheetRequest) error
}

type client struct {
	google        *sheets.Service
	spreadsheetId string
}

// NewClient wraps a Google Sheets service and spreadsheet ID as an API.
func NewClient(google *sheets.Service, spreadsheetId string) API {
	return &client{
		google:        google,
		spreadsheetId: spreadsheetId,
	}
}

func (c *client) Spreadsheet(ctx context.Context) (*sheets.Spreadsheet, error) {
	return c.google.Spreadsheets.Get(c.spreadsheetId).Context(ctx).Do()
}

func (c *client) Get(ctx context.Context, area string) (*sheets.ValueRange, error) {
	return c.google.Spreadsheets.Values.Get(c.spreadsheetId, area).Context(ctx).Do()
}

func (c *client) Update(ctx context.Context, area string, values *sheets.ValueRange) error {
	_, err := c.google.Spreadsheets.Values.Update(c.spreadsheetId, area, values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()

	return err
}

func (c *client) Append(ctx context.Context, area string, values *sheets.ValueRange) (*sheets.AppendValuesResponse, error) {
	return c.google.Spreadsheets.Values.Append(c.spreadsheetId, area, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
}

func (c *client) BatchUpdate(ctx context.Context, rq *sheets.BatchUpdateSpreadsheetRequest) error {
	_, err := c.google.Spreadsheets.BatchUpdate(c.spreadsheetId, rq).Context(ctx).Do()

	return err
}
