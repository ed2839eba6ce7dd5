package sheet

import (
	"google.golang.org/api/sheets/v4"

	"github.com/medscan/medscan-sheets/vitals"
)

const columnWidth = 140

type theme struct {
	background *sheets.Color
	text       *sheets.Color
}

// themes maps the status classification to its cell colours - the standard
// Google Sheets 'light red/yellow/green 3' backgrounds with matching dark text.
var themes = map[vitals.Style]theme{
	vitals.StyleRed: {
		background: &sheets.Color{Red: 0.957, Green: 0.8, Blue: 0.8},
		text:       &sheets.Color{Red: 0.6},
	},
	vitals.StyleAmber: {
		background: &sheets.Color{Red: 0.988, Green: 0.91, Blue: 0.698},
		text:       &sheets.Color{Red: 0.498, Green: 0.373},
	},
	vitals.StyleGreen: {
		background: &sheets.Color{Red: 0.851, Green: 0.918, Blue: 0.827},
		text:       &sheets.Color{Red: 0.153, Green: 0.431},
	},
}

var headerBackground = &sheets.Color{Red: 0.259, Green: 0.447, Blue: 0.737}
var headerText = &sheets.Color{Red: 1.0, Green: 1.0, Blue: 1.0}
var zebraBackground = &sheets.Color{Red: 0.953, Green: 0.953, Blue: 0.953}

// headerRequests styles the canonical header row: coloured background, bold
// white text, frozen first row and fixed column widths.
func headerRequests(sheetId int64, columns int) []*sheets.Request {
	return []*sheets.Request{
		&sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetId,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(columns),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: headerBackground,
						TextFormat: &sheets.TextFormat{
							Bold:            true,
							ForegroundColor: headerText,
						},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		},
		&sheets.Request{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetId,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
		&sheets.Request{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetId,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(columns),
				},
				Properties: &sheets.DimensionProperties{
					PixelSize: columnWidth,
				},
				Fields: "pixelSize",
			},
		},
	}
}

// statusCellRequest colours a single status cell for its classification. Row is
// the 1-based sheet row. Returns nil for StyleNone - unrecognised statuses are
// left unstyled.
func statusCellRequest(sheetId int64, row int, column int, style vitals.Style) *sheets.Request {
	t, ok := themes[style]
	if !ok {
		return nil
	}

	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetId,
				StartRowIndex:    int64(row - 1),
				EndRowIndex:      int64(row),
				StartColumnIndex: int64(column),
				EndColumnIndex:   int64(column + 1),
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					BackgroundColor: t.background,
					TextFormat: &sheets.TextFormat{
						Bold:            true,
						ForegroundColor: t.text,
					},
				},
			},
			Fields: "userEnteredFormat(backgroundColor,textFormat)",
		},
	}
}

// zebraRequest applies the light alternate-row background to a whole data row.
// Row is the 1-based sheet row.
func zebraRequest(sheetId int64, row int, columns int) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetId,
				StartRowIndex:    int64(row - 1),
				EndRowIndex:      int64(row),
				StartColumnIndex: 0,
				EndColumnIndex:   int64(columns),
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					BackgroundColor: zebraBackground,
				},
			},
			Fields: "userEnteredFormat.backgroundColor",
		},
	}
}
