package sheet

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/medscan/medscan-sheets/vitals"
)

var rowref = regexp.MustCompile(`![A-Z]+([0-9]+)`)

// Gateway is the row store gateway onto the vitals worksheet. It appends
// records, reads them back, and keeps the worksheet presentable - header
// styling on creation, conditional colours on the two status columns and
// zebra striping on appended rows.
type Gateway struct {
	api       API
	worksheet string
	sheetId   int64
	ensured   bool

	bpStatus    int
	sugarStatus int
}

// NewGateway creates a gateway onto the named worksheet using the supplied
// Sheets client.
func NewGateway(api API, worksheet string) *Gateway {
	return &Gateway{
		api:       api,
		worksheet: worksheet,

		bpStatus:    vitals.ColumnIndex("BP Status"),
		sugarStatus: vitals.ColumnIndex("Sugar Status"),
	}
}

// EnsureWorksheet creates the worksheet if it does not exist and (re)writes the
// canonical header row if it is absent or stale, applying the header styling,
// frozen row and column widths. Idempotent - an existing canonical header is
// left untouched and never duplicated.
func (g *Gateway) EnsureWorksheet(ctx context.Context) error {
	spreadsheet, err := g.api.Spreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("unable to fetch spreadsheet (%v)", err)
	}

	sheet := findSheet(spreadsheet, g.worksheet)
	if sheet == nil {
		rq := sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{
				&sheets.Request{
					AddSheet: &sheets.AddSheetRequest{
						Properties: &sheets.SheetProperties{
							Title: g.worksheet,
						},
					},
				},
			},
		}

		if err := g.api.BatchUpdate(ctx, &rq); err != nil {
			return fmt.Errorf("unable to create worksheet '%s' (%v)", g.worksheet, err)
		}

		if spreadsheet, err = g.api.Spreadsheet(ctx); err != nil {
			return fmt.Errorf("unable to fetch spreadsheet (%v)", err)
		}

		if sheet = findSheet(spreadsheet, g.worksheet); sheet == nil {
			return fmt.Errorf("unable to identify worksheet '%s'", g.worksheet)
		}
	}

	g.sheetId = sheet.Properties.SheetId

	response, err := g.api.Get(ctx, fmt.Sprintf("%s!1:1", g.worksheet))
	if err != nil {
		return fmt.Errorf("unable to retrieve header row (%v)", err)
	}

	if !isCanonicalHeader(response) {
		header := make([]interface{}, len(vitals.Columns))
		for i, column := range vitals.Columns {
			header[i] = column
		}

		area := fmt.Sprintf("%s!A1:%s1", g.worksheet, columnLetter(len(vitals.Columns)))
		values := sheets.ValueRange{
			Range:  area,
			Values: [][]interface{}{header},
		}

		if err := g.api.Update(ctx, area, &values); err != nil {
			return fmt.Errorf("unable to write header row (%v)", err)
		}

		rq := sheets.BatchUpdateSpreadsheetRequest{
			Requests: headerRequests(g.sheetId, len(vitals.Columns)),
		}

		if err := g.api.BatchUpdate(ctx, &rq); err != nil {
			return fmt.Errorf("unable to format header row (%v)", err)
		}
	}

	g.ensured = true

	return nil
}

// Append appends the records to the worksheet in order, one row per record,
// and applies the conditional formatting for the two status columns and the
// alternate-row striping. Rows are written sequentially and best-effort: a
// failure partway leaves the rows already appended in place. Returns the
// number of rows saved and the post-append record count (rows minus header).
func (g *Gateway) Append(ctx context.Context, records []vitals.Record) (int, int, error) {
	if !g.ensured {
		if err := g.EnsureWorksheet(ctx); err != nil {
			return 0, 0, err
		}
	}

	if len(records) == 0 {
		total, err := g.count(ctx)

		return 0, total, err
	}

	saved := 0
	total := 0

	for _, record := range records {
		values := record.Row()
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}

		response, err := g.api.Append(ctx, g.area(), &sheets.ValueRange{Values: [][]interface{}{row}})
		if err != nil {
			return saved, total, fmt.Errorf("unable to append row to worksheet (%v)", err)
		}

		at, err := appendedRow(response)
		if err != nil {
			return saved, total, err
		}

		saved++
		total = at - 1

		if err := g.format(ctx, at, record); err != nil {
			return saved, total, err
		}
	}

	return saved, total, nil
}

// Read returns all records in the worksheet as field to value mappings keyed
// by the header row, in sheet order. An absent or header-only worksheet yields
// an empty list.
func (g *Gateway) Read(ctx context.Context) ([]map[string]string, error) {
	table, err := g.Table(ctx)
	if err != nil {
		return nil, err
	}

	return table.Maps(), nil
}

// Table returns the worksheet contents as a vitals table, header included.
func (g *Gateway) Table(ctx context.Context) (*vitals.Table, error) {
	if !g.ensured {
		if err := g.EnsureWorksheet(ctx); err != nil {
			return nil, err
		}
	}

	response, err := g.api.Get(ctx, g.area())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from worksheet (%v)", err)
	}

	return vitals.MakeTable(response)
}

func (g *Gateway) area() string {
	return fmt.Sprintf("%s!A:%s", g.worksheet, columnLetter(len(vitals.Columns)))
}

func (g *Gateway) count(ctx context.Context) (int, error) {
	response, err := g.api.Get(ctx, g.area())
	if err != nil {
		return 0, fmt.Errorf("unable to retrieve data from worksheet (%v)", err)
	}

	if len(response.Values) < 2 {
		return 0, nil
	}

	return len(response.Values) - 1, nil
}

// format applies the cosmetic formatting for a freshly appended record. The
// striping request precedes the status cell requests so that the status
// colours win for their cells.
func (g *Gateway) format(ctx context.Context, row int, record vitals.Record) error {
	requests := []*sheets.Request{}

	if datarow := row - 1; datarow%2 == 0 {
		requests = append(requests, zebraRequest(g.sheetId, row, len(vitals.Columns)))
	}

	if rq := statusCellRequest(g.sheetId, row, g.bpStatus, vitals.BPStyle(record.BPStatus)); rq != nil {
		requests = append(requests, rq)
	}

	if rq := statusCellRequest(g.sheetId, row, g.sugarStatus, vitals.SugarStyle(record.SugarStatus)); rq != nil {
		requests = append(requests, rq)
	}

	if len(requests) == 0 {
		return nil
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	if err := g.api.BatchUpdate(ctx, &rq); err != nil {
		return fmt.Errorf("unable to format appended row %d (%v)", row, err)
	}

	return nil
}

// appendedRow extracts the 1-based sheet row of an appended record from the
// updated range in the append response (e.g. 'Vitals!A5:M5').
func appendedRow(response *sheets.AppendValuesResponse) (int, error) {
	if response == nil || response.Updates == nil {
		return 0, fmt.Errorf("missing updated range in append response")
	}

	match := rowref.FindStringSubmatch(response.Updates.UpdatedRange)
	if len(match) < 2 {
		return 0, fmt.Errorf("invalid updated range '%s' in append response", response.Updates.UpdatedRange)
	}

	row, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("invalid updated range '%s' in append response", response.Updates.UpdatedRange)
	}

	return row, nil
}

func findSheet(spreadsheet *sheets.Spreadsheet, name string) *sheets.Sheet {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && normalise(sheet.Properties.Title) == normalise(name) {
			return sheet
		}
	}

	return nil
}

func isCanonicalHeader(response *sheets.ValueRange) bool {
	if response == nil || len(response.Values) == 0 {
		return false
	}

	row := response.Values[0]
	if len(row) < len(vitals.Columns) {
		return false
	}

	for i, column := range vitals.Columns {
		v, ok := row[i].(string)
		if !ok || normalise(v) != normalise(column) {
			return false
		}
	}

	return true
}

func columnLetter(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}

	return s
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(v), " ", ""))
}
