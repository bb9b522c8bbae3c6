package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/core/pattern"
	"github.com/mhagedorn/wachplan/pkg/db"
)

func seedITWPattern(t *testing.T, d *db.DB, start time.Time) {
	t.Helper()
	symbols := make([]string, pattern.Length)
	symbols[0] = "IW"
	seq := pattern.Sequence{Start: start, Symbols: symbols}
	require.NoError(t, d.UpsertPattern(context.Background(), db.PatternITW, seq))
}

func TestMonthCalendar_ClassifiesDepartmentDays(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)
	require.NoError(t, d.SetSetting(ctx, db.SettingDepartment, "2"))
	seedDeptPattern(t, d, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	days, err := MonthCalendar(ctx, d, 2026, time.March)
	require.NoError(t, err)
	require.Len(t, days, 31)

	assert.Equal(t, "2026-03-01", days[0].Date)
	assert.Equal(t, "1", days[0].DeptSymbol)
	assert.False(t, days[0].DeptDuty)

	assert.Equal(t, "2", days[1].DeptSymbol)
	assert.True(t, days[1].DeptDuty)

	// cycle wraps after 21 days
	assert.Equal(t, "1", days[21].DeptSymbol)
	assert.True(t, days[22].DeptDuty)
}

func TestMonthCalendar_ITWSuppressedOnHolidays(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)
	require.NoError(t, d.SetSetting(ctx, db.SettingITW, "true"))
	seedITWPattern(t, d, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, d.ReplaceHolidaysForYear(ctx, 2026, []model.Holiday{
		{Date: "2026-03-22", Name: "Feiertag"},
	}))

	days, err := MonthCalendar(ctx, d, 2026, time.March)
	require.NoError(t, err)

	assert.True(t, days[0].ITWDay)
	assert.False(t, days[1].ITWDay)

	// March 22 repeats the IW symbol but falls on a holiday
	assert.Equal(t, "Feiertag", days[21].Holiday)
	assert.False(t, days[21].ITWDay)
}

func TestMonthCalendar_ITWDisabled(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)
	seedITWPattern(t, d, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	days, err := MonthCalendar(ctx, d, 2026, time.March)
	require.NoError(t, err)

	for _, day := range days {
		assert.False(t, day.ITWDay)
	}
}
