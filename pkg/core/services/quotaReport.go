package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/core/pattern"
	"github.com/mhagedorn/wachplan/pkg/core/quota"
	"github.com/mhagedorn/wachplan/pkg/core/shiftcode"
	"github.com/mhagedorn/wachplan/pkg/db"
)

// QuotaStore defines the database operations needed for the quota report
type QuotaStore interface {
	Persons(ctx context.Context) ([]model.Person, error)
	Vehicles(ctx context.Context) ([]model.Vehicle, error)
	VehicleMonthActivations(ctx context.Context, year int, month int) (map[model.VehicleKey]bool, error)
	Patterns(ctx context.Context, kind db.PatternKind) ([]pattern.Sequence, error)
	EntriesForMonth(ctx context.Context, year int, month time.Month) ([]model.DutyRosterEntry, error)
	EntriesForYear(ctx context.Context, year int) ([]model.DutyRosterEntry, error)
	Classifier(ctx context.Context) (*shiftcode.Classifier, error)
	Setting(ctx context.Context, key string) (string, bool, error)
}

// QuotaRow is one staff member's line of the fairness report.
type QuotaRow struct {
	Person model.Person

	// YearlyTarget is the canonical target; WeightedTarget the
	// display-only variant discounting heavy-vehicle qualification.
	YearlyTarget   int
	WeightedTarget int
	Driven         int
	Remaining      int
}

// QuotaReportResult contains the fairness figures for a whole year.
type QuotaReportResult struct {
	Year       int
	Department string
	Months     []quota.MonthStats
	Rows       []QuotaRow
}

// QuotaReport computes the fairness figures for every month of the year
// and aggregates them per staff member.
func QuotaReport(ctx context.Context, store QuotaStore, year int, logger *zap.Logger) (*QuotaReportResult, error) {
	department, _, err := store.Setting(ctx, db.SettingDepartment)
	if err != nil {
		return nil, err
	}
	if department == "" {
		return nil, fmt.Errorf("no department configured")
	}

	persons, err := store.Persons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	vehicles, err := store.Vehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}
	deptSeqs, err := store.Patterns(ctx, db.PatternDept)
	if err != nil {
		return nil, err
	}
	classifier, err := store.Classifier(ctx)
	if err != nil {
		return nil, err
	}

	result := &QuotaReportResult{Year: year, Department: department}
	for month := time.January; month <= time.December; month++ {
		activations, err := store.VehicleMonthActivations(ctx, year, int(month))
		if err != nil {
			return nil, err
		}
		entries, err := store.EntriesForMonth(ctx, year, month)
		if err != nil {
			return nil, err
		}

		stats := quota.ComputeMonth(quota.MonthInput{
			Year:          year,
			Month:         month,
			DeptShiftDays: deptShiftDays(year, month, department, deptSeqs),
			Vehicles:      vehicles,
			Activations:   activations,
			Entries:       entries,
			Classifier:    classifier,
		})
		result.Months = append(result.Months, stats)

		logger.Debug("Month computed",
			zap.Int("year", year),
			zap.Int("month", int(month)),
			zap.Int("dept_days", stats.DeptShiftDays),
			zap.Int("demand", stats.PositionDemand))
	}

	yearEntries, err := store.EntriesForYear(ctx, year)
	if err != nil {
		return nil, err
	}

	perPerson := quota.ComputeYear(result.Months, persons, yearEntries)
	for _, p := range persons {
		py := perPerson[p.ID]
		result.Rows = append(result.Rows, QuotaRow{
			Person:         p,
			YearlyTarget:   py.YearlyTarget,
			WeightedTarget: py.WeightedTarget,
			Driven:         py.Driven,
			Remaining:      py.Remaining,
		})
	}
	return result, nil
}

// deptShiftDays counts the days of the month whose department-pattern
// symbol equals the configured department. Unclassified days never
// count.
func deptShiftDays(year int, month time.Month, department string, seqs []pattern.Sequence) int {
	count := 0
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		symbol, ok := pattern.SymbolFor(d, seqs, pattern.DepartmentAlphabet)
		if ok && symbol == department {
			count++
		}
	}
	return count
}
