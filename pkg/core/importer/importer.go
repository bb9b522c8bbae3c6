package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/pkg/core/model"
)

// Options control one parse run.
type Options struct {
	// Year restricts which resolved column dates are taken. Required.
	Year int

	// Month further restricts to one month; zero means the whole year.
	Month time.Month

	// Overrides maps normalized surnames to references for rows the
	// automatic resolution cannot settle.
	Overrides map[string]model.PersonRef

	// Layout overrides DefaultLayout, mainly for tests.
	Layout *Layout
}

// ParseResult is the outcome of one parse run.
type ParseResult struct {
	Entries []model.DutyRosterEntry

	// Total counts candidate rows (rows with a non-empty label).
	Total int

	// Matched counts rows that resolved to a known person.
	Matched int

	// Unmatched holds the sorted distinct normalized surnames of rows
	// that could not be resolved, ambiguous ones included.
	Unmatched []string
}

// Parse reads the planning spreadsheet and produces roster entries for
// every resolved row and in-scope column. Empty duty cells produce no
// entry. Ambiguous or unknown row labels are skipped and reported,
// never guessed.
func Parse(ctx context.Context, src Source, staff []model.Person, apprentices []model.Apprentice, opts Options, logger *zap.Logger) (*ParseResult, error) {
	if opts.Year == 0 {
		return nil, fmt.Errorf("import year is required")
	}
	layout := DefaultLayout
	if opts.Layout != nil {
		layout = *opts.Layout
	}

	grids, err := src.Grids(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	grids = selectGrids(grids, layout.PreferredSheet)

	staffRes := StaffResolver(staff)
	apprenticeRes := ApprenticeResolver(apprentices)

	result := &ParseResult{}
	unmatched := make(map[string]bool)

	for _, grid := range grids {
		dates := columnDates(grid, layout, opts)
		if len(dates) == 0 {
			logger.Debug("No in-scope columns on sheet", zap.String("sheet", grid.Name))
			continue
		}

		parseRows(grid, layout, layout.StaffRowStart, layout.StaffRowEnd, staffRes, opts.Overrides, dates, result, unmatched, logger)
		parseRows(grid, layout, layout.ApprenticeRowStart, layout.ApprenticeRowEnd, apprenticeRes, opts.Overrides, dates, result, unmatched, logger)
	}

	result.Unmatched = make([]string, 0, len(unmatched))
	for name := range unmatched {
		result.Unmatched = append(result.Unmatched, name)
	}
	sort.Strings(result.Unmatched)

	return result, nil
}

// selectGrids prefers the dedicated pre-planning sheet when present.
func selectGrids(grids []Grid, preferred string) []Grid {
	for _, g := range grids {
		if g.Name == preferred {
			return []Grid{g}
		}
	}
	return grids
}

// columnDates resolves the date of every duty column that falls inside
// the requested year/month. Columns outside the scope are dropped.
func columnDates(grid Grid, layout Layout, opts Options) map[int]string {
	anchor, _ := ParseCellDate(grid.Cell(layout.AnchorRow, layout.AnchorCol), opts.Year)

	width := 0
	for _, row := range grid.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	dates := make(map[int]string)
	for col := layout.FirstDateCol; col < width; col++ {
		d, ok := ResolveColumnDate(grid.Cell(layout.HeaderRow, col), anchor, col-layout.FirstDateCol, opts.Year)
		if !ok {
			continue
		}
		if d.Year() != opts.Year {
			continue
		}
		if opts.Month != 0 && d.Month() != opts.Month {
			continue
		}
		dates[col] = d.Format("2006-01-02")
	}
	return dates
}

func parseRows(grid Grid, layout Layout, rowStart, rowEnd int, resolver *Resolver, overrides map[string]model.PersonRef, dates map[int]string, result *ParseResult, unmatched map[string]bool, logger *zap.Logger) {
	// Walk duty columns left to right so entries come out in sheet order
	// and the rightmost of two columns carrying the same date wins on
	// upsert.
	cols := make([]int, 0, len(dates))
	for col := range dates {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	for row := rowStart; row <= rowEnd; row++ {
		label := strings.TrimSpace(grid.Cell(row, layout.NameCol))
		if label == "" {
			continue
		}
		result.Total++

		ref, key, res := resolver.Resolve(label, overrides)
		switch res {
		case ResolutionAmbiguous:
			logger.Warn("Ambiguous row label skipped",
				zap.String("sheet", grid.Name),
				zap.String("label", label),
				zap.String("surname", key))
			unmatched[key] = true
			continue
		case ResolutionUnmatched:
			logger.Warn("Unknown row label skipped",
				zap.String("sheet", grid.Name),
				zap.String("label", label),
				zap.String("surname", key))
			unmatched[key] = true
			continue
		}
		result.Matched++

		for _, col := range cols {
			date := dates[col]
			value := strings.TrimSpace(grid.Cell(row, col))
			if value == "" {
				continue
			}
			result.Entries = append(result.Entries, model.DutyRosterEntry{
				Ref:   ref,
				Date:  date,
				Value: value,
			})
		}
	}
}
