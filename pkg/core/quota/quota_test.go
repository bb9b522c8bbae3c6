package quota

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/core/shiftcode"
)

func testClassifier() *shiftcode.Classifier {
	return shiftcode.New(map[string]shiftcode.Category{
		"FD": shiftcode.CategoryDay,
		"SD": shiftcode.CategoryNight,
		"24": shiftcode.Category24h,
		"IW": shiftcode.CategoryITW,
	})
}

func personEntry(id int64, day int, value, slot string) model.DutyRosterEntry {
	return model.DutyRosterEntry{
		Ref:    model.PersonRef{Kind: model.KindPerson, ID: id},
		Date:   fmt.Sprintf("2026-03-%02d", day),
		Value:  value,
		SlotID: slot,
	}
}

func TestComputeMonth_VehicleCounts(t *testing.T) {
	in := MonthInput{
		Year:  2026,
		Month: time.March,
		Vehicles: []model.Vehicle{
			{ID: 1, Kind: model.VehicleRTW},
			{ID: 2, Kind: model.VehicleRTW},
			{ID: 3, Kind: model.VehicleRTW, ArchivedYear: 2025},
			{ID: 4, Kind: model.VehicleNEF},
			{ID: 5, Kind: model.VehicleNEF},
		},
		Activations: map[model.VehicleKey]bool{{Kind: model.VehicleNEF, ID: 5}: false},
		Classifier:  testClassifier(),
	}

	stats := ComputeMonth(in)
	assert.Equal(t, 2, stats.RTWVehicleCount)
	assert.Equal(t, 1, stats.NEFVehicleCount)
}

// The worked example: 10 department duty days, 2 RTW and 1 NEF give
// 10 positions per day, so demand 100; with 5 active staff the demand
// per head is 20, and a person whose combined load equals the average
// gets exactly that as monthly target.
func TestComputeMonth_WorkedExample(t *testing.T) {
	entries := make([]model.DutyRosterEntry, 0)
	for id := int64(1); id <= 5; id++ {
		for day := 1; day <= 4; day++ {
			entries = append(entries, personEntry(id, day, "24", ""))
		}
	}

	in := MonthInput{
		Year:          2026,
		Month:         time.March,
		DeptShiftDays: 10,
		Vehicles: []model.Vehicle{
			{ID: 1, Kind: model.VehicleRTW},
			{ID: 2, Kind: model.VehicleRTW},
			{ID: 3, Kind: model.VehicleNEF},
		},
		Entries:    entries,
		Classifier: testClassifier(),
	}

	stats := ComputeMonth(in)
	require.Equal(t, 100, stats.PositionDemand)
	require.Equal(t, 5, stats.ActiveStaffCount)
	assert.InDelta(t, 20.0, stats.DemandPerStaff, 1e-9)
	assert.InDelta(t, 4.0, stats.AverageCombinedLoad, 1e-9)
	assert.Equal(t, 20, stats.MonthlyTarget(1))
}

func TestComputeMonth_ITWAndApprenticeOffsets(t *testing.T) {
	apprentice := model.PersonRef{Kind: model.KindApprentice, ID: 9}
	entries := []model.DutyRosterEntry{
		personEntry(1, 1, "FD", ""),
		personEntry(1, 2, "", "itw_1"),
		personEntry(2, 2, "IW", ""),
		{Ref: apprentice, Date: "2026-03-03", SlotID: "rtw1_tag_2"},
		{Ref: apprentice, Date: "2026-03-04", SlotID: "rtw1_tag_1"}, // commander, no offset
	}

	in := MonthInput{
		Year:          2026,
		Month:         time.March,
		DeptShiftDays: 2,
		Vehicles:      []model.Vehicle{{ID: 1, Kind: model.VehicleRTW}},
		Entries:       entries,
		Classifier:    testClassifier(),
	}

	stats := ComputeMonth(in)
	assert.Equal(t, 2, stats.ITWShifts)
	assert.Equal(t, 1, stats.ApprenticeMachinistShifts)
	// 2 days × 4 positions + 2 ITW − 1 apprentice machinist.
	assert.Equal(t, 9, stats.PositionDemand)
}

func TestComputeMonth_DemandNeverNegative(t *testing.T) {
	apprentice := model.PersonRef{Kind: model.KindApprentice, ID: 9}
	in := MonthInput{
		Year:  2026,
		Month: time.March,
		Entries: []model.DutyRosterEntry{
			{Ref: apprentice, Date: "2026-03-01", SlotID: "rtw1_tag_2"},
			{Ref: apprentice, Date: "2026-03-02", SlotID: "rtw1_nacht_2"},
		},
		Classifier: testClassifier(),
	}

	stats := ComputeMonth(in)
	assert.Equal(t, 0, stats.PositionDemand)
}

func TestMonthlyTarget_NoTargetCases(t *testing.T) {
	// Nobody active at all: every denominator is zero.
	stats := ComputeMonth(MonthInput{Year: 2026, Month: time.March, Classifier: testClassifier()})
	assert.Equal(t, 0, stats.MonthlyTarget(1))

	// Active staff exist but the person has no combined load.
	stats = ComputeMonth(MonthInput{
		Year:          2026,
		Month:         time.March,
		DeptShiftDays: 5,
		Vehicles:      []model.Vehicle{{ID: 1, Kind: model.VehicleRTW}},
		Entries: []model.DutyRosterEntry{
			personEntry(1, 1, "24", ""),
			personEntry(2, 1, "FD", ""),
		},
		Classifier: testClassifier(),
	})
	assert.NotZero(t, stats.MonthlyTarget(1))
	assert.Equal(t, 0, stats.MonthlyTarget(2))
}

func TestMonthlyTargetWeighted(t *testing.T) {
	entries := []model.DutyRosterEntry{
		personEntry(1, 1, "24", ""),
		personEntry(1, 2, "24", ""),
		personEntry(1, 3, "24", ""),
		personEntry(1, 4, "24", ""),
		personEntry(2, 1, "24", ""),
		personEntry(2, 2, "24", ""),
		personEntry(2, 3, "24", ""),
		personEntry(2, 4, "24", ""),
	}
	stats := ComputeMonth(MonthInput{
		Year:          2026,
		Month:         time.March,
		DeptShiftDays: 10,
		Vehicles:      []model.Vehicle{{ID: 1, Kind: model.VehicleRTW}},
		Entries:       entries,
		Classifier:    testClassifier(),
	})

	plain := stats.MonthlyTarget(1)
	weighted := stats.MonthlyTargetWeighted(1, true)
	unqualified := stats.MonthlyTargetWeighted(1, false)

	assert.Equal(t, plain, unqualified)
	// 0.75 × load shrinks the display target.
	assert.Equal(t, int(float64(plain)*HeavyVehicleLoadFactor), weighted)
}

func TestYearlyDriven(t *testing.T) {
	entries := []model.DutyRosterEntry{
		personEntry(1, 1, "FD", "rtw1_tag_1"),
		personEntry(1, 2, "FD", "rtw1_tag_2"),
		personEntry(1, 3, "", "itw_2"),
		personEntry(1, 4, "FD", "nef1_tag_1"),
		personEntry(2, 1, "FD", ""),
		{Ref: model.PersonRef{Kind: model.KindApprentice, ID: 1}, Date: "2026-03-05", SlotID: "rtw1_tag_2"},
		{Ref: model.PersonRef{Kind: model.KindDoctor, ID: 1}, Date: "2026-03-05", SlotID: "itw_3"},
	}

	driven := YearlyDriven(entries)
	assert.Equal(t, 5, driven[1]) // 1 + 1 + 1 + 2
	assert.NotContains(t, driven, int64(2))
	require.Len(t, driven, 1)
}

func TestComputeYear(t *testing.T) {
	persons := []model.Person{
		{ID: 1, Surname: "Meyer", GivenName: "Anna"},
		{ID: 2, Surname: "Vogt", GivenName: "Jan", HeavyVehicleCommander: true},
	}

	var months []MonthStats
	for m := time.January; m <= time.December; m++ {
		months = append(months, ComputeMonth(MonthInput{
			Year:          2026,
			Month:         m,
			DeptShiftDays: 10,
			Vehicles:      []model.Vehicle{{ID: 1, Kind: model.VehicleRTW}, {ID: 2, Kind: model.VehicleRTW}, {ID: 3, Kind: model.VehicleNEF}},
			Entries: []model.DutyRosterEntry{
				personEntry(1, 1, "24", ""),
				personEntry(2, 1, "24", ""),
			},
			Classifier: testClassifier(),
		}))
	}

	yearEntries := []model.DutyRosterEntry{
		personEntry(1, 1, "FD", "rtw1_tag_1"),
		personEntry(1, 2, "FD", "nef1_tag_1"),
	}

	year := ComputeYear(months, persons, yearEntries)
	require.Contains(t, year, int64(1))

	p1 := year[1]
	assert.Equal(t, 12*months[0].MonthlyTarget(1), p1.YearlyTarget)
	assert.Equal(t, 3, p1.Driven)
	assert.Equal(t, p1.YearlyTarget-3, p1.Remaining)

	// The weighted variant diverges only for heavy-vehicle staff.
	p2 := year[2]
	assert.Equal(t, p1.YearlyTarget, p2.YearlyTarget)
	assert.Less(t, p2.WeightedTarget, p2.YearlyTarget)
	assert.Equal(t, p1.WeightedTarget, p1.YearlyTarget)
}
