package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/pkg/core/importer"
	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/core/pattern"
	"github.com/mhagedorn/wachplan/pkg/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func seedStaff(t *testing.T, d *db.DB, persons ...*model.Person) {
	t.Helper()
	ctx := context.Background()
	for _, p := range persons {
		require.NoError(t, d.UpsertPerson(ctx, p))
	}
}

// fakeSource serves fixed grids, standing in for the xlsx reader.
type fakeSource struct {
	grids []importer.Grid
}

func (s fakeSource) Grids(_ context.Context) ([]importer.Grid, error) {
	return s.grids, nil
}

// rosterLayout shrinks the sheet to three staff rows for fixtures.
var rosterLayout = importer.Layout{
	AnchorRow:          0,
	AnchorCol:          2,
	HeaderRow:          1,
	NameCol:            1,
	FirstDateCol:       2,
	StaffRowStart:      2,
	StaffRowEnd:        4,
	ApprenticeRowStart: 5,
	ApprenticeRowEnd:   5,
}

func rosterGrid() importer.Grid {
	return importer.Grid{
		Name: "Vorplanung",
		Rows: [][]string{
			{"", "", "01.06.2026"},
			{"", "Name", "01.06.2026", "02.06.2026"},
			{"", "Schmidt, Anna", "TD", "24"},
			{"", "Weber, Jonas", "", "TD"},
			{"", "Unbekannt, Max", "TD", ""},
			{"", "Koch, Lea", "AZ", ""},
		},
	}
}

func repeat(symbols []string, times int) []string {
	out := make([]string, 0, len(symbols)*times)
	for i := 0; i < times; i++ {
		out = append(out, symbols...)
	}
	return out
}

func seedDeptPattern(t *testing.T, d *db.DB, start time.Time) {
	t.Helper()
	seq := pattern.Sequence{Start: start, Symbols: repeat([]string{"1", "2", "3"}, 7)}
	require.NoError(t, d.UpsertPattern(context.Background(), db.PatternDept, seq))
}
