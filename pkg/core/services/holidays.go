package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/internal/config"
	"github.com/mhagedorn/wachplan/pkg/core/model"
)

// HolidayStore defines the database operations needed for holiday generation.
type HolidayStore interface {
	ReplaceHolidaysForYear(ctx context.Context, year int, holidays []model.Holiday) error
}

// HolidayResult summarises one generation run.
type HolidayResult struct {
	Year      int
	Generated int
	Names     []string
}

// GenerateHolidays expands the configured recurrence rules into concrete
// dates for the given year and replaces that year's stored holidays.
func GenerateHolidays(ctx context.Context, store HolidayStore, rules []config.HolidayRule, year int, logger *zap.Logger) (HolidayResult, error) {
	result := HolidayResult{Year: year}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var holidays []model.Holiday
	for _, rule := range rules {
		opt, err := rrule.StrToROption(rule.RRule)
		if err != nil {
			return HolidayResult{}, fmt.Errorf("failed to parse recurrence rule for %q: %w", rule.Name, err)
		}
		if opt.Dtstart.IsZero() {
			opt.Dtstart = yearStart
		}
		r, err := rrule.NewRRule(*opt)
		if err != nil {
			return HolidayResult{}, fmt.Errorf("failed to build recurrence rule for %q: %w", rule.Name, err)
		}

		dates := r.Between(yearStart, yearEnd, true)
		if len(dates) == 0 {
			logger.Warn("Holiday rule produced no dates for year",
				zap.String("name", rule.Name),
				zap.Int("year", year))
			continue
		}
		for _, d := range dates {
			holidays = append(holidays, model.Holiday{
				Date: d.Format("2006-01-02"),
				Name: rule.Name,
			})
		}
		result.Names = append(result.Names, rule.Name)
	}

	if err := store.ReplaceHolidaysForYear(ctx, year, holidays); err != nil {
		return HolidayResult{}, fmt.Errorf("failed to store holidays: %w", err)
	}

	result.Generated = len(holidays)
	logger.Info("Generated holidays",
		zap.Int("year", year),
		zap.Int("count", result.Generated))
	return result, nil
}
