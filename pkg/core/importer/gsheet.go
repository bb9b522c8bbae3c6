package importer

import (
	"context"
	"fmt"
	"strconv"
)

// SheetsReader is the slice of the Google Sheets client the importer
// needs. Values must be fetched unformatted so serial dates arrive as
// numbers.
type SheetsReader interface {
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	Values(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

// SheetSource reads the planning spreadsheet from Google Sheets.
type SheetSource struct {
	client        SheetsReader
	spreadsheetID string
}

func NewSheetSource(client SheetsReader, spreadsheetID string) *SheetSource {
	return &SheetSource{client: client, spreadsheetID: spreadsheetID}
}

func (s *SheetSource) Grids(ctx context.Context) ([]Grid, error) {
	titles, err := s.client.SheetTitles(ctx, s.spreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}

	var grids []Grid
	for _, title := range titles {
		values, err := s.client.Values(ctx, s.spreadsheetID, title)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", title, err)
		}
		grids = append(grids, Grid{Name: title, Rows: toStrings(values)})
	}
	return grids, nil
}

// toStrings flattens the API's interface values into cell strings.
// Unformatted numbers keep their full precision so serial dates
// survive the round trip.
func toStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch val := v.(type) {
			case string:
				cells[j] = val
			case float64:
				cells[j] = strconv.FormatFloat(val, 'f', -1, 64)
			case bool:
				cells[j] = strconv.FormatBool(val)
			case nil:
				cells[j] = ""
			default:
				cells[j] = fmt.Sprint(val)
			}
		}
		rows[i] = cells
	}
	return rows
}
