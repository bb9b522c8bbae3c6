// Package importer parses pre-planned duty rosters produced by the
// external scheduling spreadsheet and resolves row labels to known
// staff. It only produces entries; writing them is the job of the
// services layer and the store.
package importer

import "context"

// Grid is one sheet of a spreadsheet as raw cell strings. Rows may be
// ragged; missing cells read as empty.
type Grid struct {
	Name string
	Rows [][]string
}

// Cell returns the cell at (row, col), or "" when the grid is shorter.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) {
		return ""
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Source yields the sheets of one planning spreadsheet. Implementations
// exist for local xlsx files and for Google Sheets.
type Source interface {
	Grids(ctx context.Context) ([]Grid, error)
}

// Layout pins the fixed cell layout of the planning sheet. All indices
// are zero-based.
type Layout struct {
	// PreferredSheet is used exclusively when present; otherwise every
	// sheet is scanned.
	PreferredSheet string

	// AnchorRow/AnchorCol locate the reference date used when a header
	// cell cannot be parsed.
	AnchorRow, AnchorCol int

	// HeaderRow holds one date per duty column.
	HeaderRow int

	// NameCol holds the row labels ("Surname, GivenName").
	NameCol int

	// FirstDateCol is the first duty column.
	FirstDateCol int

	// Row ranges, inclusive.
	StaffRowStart, StaffRowEnd           int
	ApprenticeRowStart, ApprenticeRowEnd int
}

// DefaultLayout matches the sheet the external scheduler exports.
var DefaultLayout = Layout{
	PreferredSheet:     "Vorplanung",
	AnchorRow:          0,
	AnchorCol:          2,
	HeaderRow:          1,
	NameCol:            1,
	FirstDateCol:       2,
	StaffRowStart:      3,
	StaffRowEnd:        52,
	ApprenticeRowStart: 54,
	ApprenticeRowEnd:   63,
}
