package services

import (
	"context"
	"time"

	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/core/pattern"
	"github.com/mhagedorn/wachplan/pkg/db"
)

// CalendarStore defines the database operations needed for day classification
type CalendarStore interface {
	Patterns(ctx context.Context, kind db.PatternKind) ([]pattern.Sequence, error)
	Holidays(ctx context.Context, year int) ([]model.Holiday, error)
	Setting(ctx context.Context, key string) (string, bool, error)
}

// DayInfo classifies one calendar day.
type DayInfo struct {
	Date       string
	DeptSymbol string // "1".."3", "" when unclassified
	DeptDuty   bool   // symbol equals the configured department
	ITWDay     bool   // IW pattern day, not suppressed by a holiday
	Holiday    string // holiday name, "" otherwise
}

// MonthCalendar classifies every day of the month against both pattern
// calendars. ITW duty is suppressed on holidays and entirely absent
// when the station has ITW disabled.
func MonthCalendar(ctx context.Context, store CalendarStore, year int, month time.Month) ([]DayInfo, error) {
	department, _, err := store.Setting(ctx, db.SettingDepartment)
	if err != nil {
		return nil, err
	}
	itwEnabled, _, err := store.Setting(ctx, db.SettingITW)
	if err != nil {
		return nil, err
	}

	deptSeqs, err := store.Patterns(ctx, db.PatternDept)
	if err != nil {
		return nil, err
	}
	itwSeqs, err := store.Patterns(ctx, db.PatternITW)
	if err != nil {
		return nil, err
	}
	holidays, err := store.Holidays(ctx, year)
	if err != nil {
		return nil, err
	}
	holidayByDate := make(map[string]string, len(holidays))
	for _, h := range holidays {
		holidayByDate[h.Date] = h.Name
	}

	var days []DayInfo
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		iso := d.Format("2006-01-02")
		info := DayInfo{Date: iso, Holiday: holidayByDate[iso]}

		if symbol, ok := pattern.SymbolFor(d, deptSeqs, pattern.DepartmentAlphabet); ok {
			info.DeptSymbol = symbol
			info.DeptDuty = symbol != "" && symbol == department
		}
		if itwEnabled == "true" {
			if symbol, ok := pattern.SymbolFor(d, itwSeqs, pattern.ITWAlphabet); ok {
				info.ITWDay = symbol == "IW" && info.Holiday == ""
			}
		}
		days = append(days, info)
	}
	return days, nil
}
