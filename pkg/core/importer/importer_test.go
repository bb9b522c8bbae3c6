package importer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/pkg/core/model"
)

type fakeSource struct {
	grids []Grid
}

func (s *fakeSource) Grids(ctx context.Context) ([]Grid, error) {
	return s.grids, nil
}

var testLayout = Layout{
	PreferredSheet:     "Vorplanung",
	AnchorRow:          0,
	AnchorCol:          2,
	HeaderRow:          1,
	NameCol:            1,
	FirstDateCol:       2,
	StaffRowStart:      2,
	StaffRowEnd:        4,
	ApprenticeRowStart: 5,
	ApprenticeRowEnd:   6,
}

func testGrid() Grid {
	return Grid{
		Name: "Vorplanung",
		Rows: [][]string{
			{"", "", "01.03.2026"},
			{"", "", "01.03.2026", "02.03.2026", "KW 10"},
			{"", "Meyer, Anna", "FD", "", "SD"},
			{"", "Meyer", "24"},
			{"", "Mueller", "", "FD"},
			{"", "Azubi, Tom", "FD"},
			{"", "Unbekannt, Udo", "FD"},
		},
	}
}

func importStaff() []model.Person {
	return []model.Person{
		{ID: 1, Surname: "Meyer", GivenName: "Anna"},
		{ID: 2, Surname: "Meyer", GivenName: "Jonas"},
		{ID: 3, Surname: "Müller", GivenName: "Lea"},
	}
}

func importApprentices() []model.Apprentice {
	return []model.Apprentice{{ID: 10, Surname: "Azubi", GivenName: "Tom"}}
}

func TestParse_FullRun(t *testing.T) {
	src := &fakeSource{grids: []Grid{testGrid()}}
	opts := Options{Year: 2026, Layout: &testLayout}

	result, err := Parse(context.Background(), src, importStaff(), importApprentices(), opts, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Matched)
	assert.Equal(t, []string{"meyer", "unbekannt"}, result.Unmatched)

	byKey := make(map[string]model.DutyRosterEntry)
	for _, e := range result.Entries {
		byKey[e.Ref.String()+"@"+e.Date] = e
	}
	require.Len(t, byKey, 4)

	// Exact full-name match despite two Meyers on the staff list.
	assert.Equal(t, "FD", byKey["person/1@2026-03-01"].Value)
	// Unparseable header column fell back to anchor + offset.
	assert.Equal(t, "SD", byKey["person/1@2026-03-03"].Value)
	// Unique surname match through umlaut expansion.
	assert.Equal(t, "FD", byKey["person/3@2026-03-02"].Value)
	// Apprentices resolve against their own identity space.
	assert.Equal(t, "FD", byKey["apprentice/10@2026-03-01"].Value)
}

func TestParse_DuplicateDateColumnsRightmostWins(t *testing.T) {
	// Two header columns carry the same date. Entries must come out in
	// column order so the rightmost value would take effect on upsert,
	// run after run.
	grid := Grid{
		Name: "Vorplanung",
		Rows: [][]string{
			{"", "", "01.03.2026"},
			{"", "", "01.03.2026", "02.03.2026", "01.03.2026"},
			{"", "Meyer, Anna", "FD", "SD", "24"},
			{"", "", ""},
			{"", "", ""},
			{"", "", ""},
			{"", "", ""},
		},
	}
	src := &fakeSource{grids: []Grid{grid}}
	opts := Options{Year: 2026, Layout: &testLayout}

	for i := 0; i < 5; i++ {
		result, err := Parse(context.Background(), src, importStaff(), importApprentices(), opts, zap.NewNop())
		require.NoError(t, err)
		require.Len(t, result.Entries, 3)
		assert.Equal(t, "FD", result.Entries[0].Value)
		assert.Equal(t, "SD", result.Entries[1].Value)
		assert.Equal(t, "24", result.Entries[2].Value)
		assert.Equal(t, result.Entries[0].Date, result.Entries[2].Date)
	}
}

func TestParse_OverrideResolvesAmbiguousRow(t *testing.T) {
	src := &fakeSource{grids: []Grid{testGrid()}}
	opts := Options{
		Year:   2026,
		Layout: &testLayout,
		Overrides: map[string]model.PersonRef{
			"meyer": {Kind: model.KindPerson, ID: 2},
		},
	}

	result, err := Parse(context.Background(), src, importStaff(), importApprentices(), opts, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Matched)
	assert.Equal(t, []string{"unbekannt"}, result.Unmatched)

	found := false
	for _, e := range result.Entries {
		if e.Ref.ID == 2 && e.Date == "2026-03-01" {
			found = true
			assert.Equal(t, "24", e.Value)
		}
	}
	assert.True(t, found)
}

func TestParse_MonthFilter(t *testing.T) {
	grid := testGrid()
	// Shift one header into April; its column must be dropped.
	grid.Rows[1][3] = "02.04.2026"
	src := &fakeSource{grids: []Grid{grid}}
	opts := Options{Year: 2026, Month: time.March, Layout: &testLayout}

	result, err := Parse(context.Background(), src, importStaff(), importApprentices(), opts, zap.NewNop())
	require.NoError(t, err)

	for _, e := range result.Entries {
		d, err := time.Parse("2006-01-02", e.Date)
		require.NoError(t, err)
		assert.Equal(t, time.March, d.Month())
	}
}

func TestParse_PrefersPlanningSheet(t *testing.T) {
	other := testGrid()
	other.Name = "Tabelle1"
	// A decoy row that would match if the sheet were scanned.
	src := &fakeSource{grids: []Grid{other, testGrid()}}

	result, err := Parse(context.Background(), src, importStaff(), importApprentices(), Options{Year: 2026, Layout: &testLayout}, zap.NewNop())
	require.NoError(t, err)

	// Only the Vorplanung sheet was read, so counts stay single.
	assert.Equal(t, 5, result.Total)
}

func TestParse_RequiresYear(t *testing.T) {
	src := &fakeSource{grids: []Grid{testGrid()}}
	_, err := Parse(context.Background(), src, nil, nil, Options{Layout: &testLayout}, zap.NewNop())
	assert.Error(t, err)
}
