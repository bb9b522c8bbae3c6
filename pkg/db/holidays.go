package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/mhagedorn/wachplan/pkg/core/model"
)

// Holidays returns the holidays of one year ordered by date.
func (d *DB) Holidays(ctx context.Context, year int) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT date, name FROM holidays WHERE date >= ? AND date <= ? ORDER BY date;`,
			&sqlitex.ExecOptions{
				Args: []any{fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					holidays = append(holidays, model.Holiday{
						Date: stmt.ColumnText(0),
						Name: stmt.ColumnText(1),
					})
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}
	return holidays, nil
}

// IsHoliday reports whether the ISO date is a recorded holiday.
func (d *DB) IsHoliday(ctx context.Context, date string) (bool, error) {
	found := false
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT 1 FROM holidays WHERE date = ?;`,
			&sqlitex.ExecOptions{
				Args: []any{date},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					found = true
					return nil
				},
			})
	})
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	return found, nil
}

// ReplaceHolidaysForYear replaces the holiday set of one year in a
// single transaction. Entries with malformed dates or dates outside the
// year are dropped at the boundary. When no valid date remains, the
// call is a no-op: existing holidays are never wiped by an empty or
// bogus input set.
func (d *DB) ReplaceHolidaysForYear(ctx context.Context, year int, holidays []model.Holiday) error {
	valid := make([]model.Holiday, 0, len(holidays))
	for _, h := range holidays {
		t, err := time.Parse("2006-01-02", h.Date)
		if err != nil || t.Year() != year {
			d.logger.Warn("Dropping holiday with invalid date",
				zap.String("date", h.Date), zap.String("name", h.Name), zap.Int("year", year))
			continue
		}
		valid = append(valid, h)
	}
	if len(valid) == 0 {
		d.logger.Warn("No valid holidays supplied, keeping existing records", zap.Int("year", year))
		return nil
	}

	err := d.withTx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn,
			`DELETE FROM holidays WHERE date >= ? AND date <= ?;`,
			&sqlitex.ExecOptions{Args: []any{fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)}})
		if err != nil {
			return err
		}
		for _, h := range valid {
			err := sqlitex.Execute(conn,
				`INSERT INTO holidays (date, name) VALUES (?, ?)
				 ON CONFLICT (date) DO UPDATE SET name = excluded.name;`,
				&sqlitex.ExecOptions{Args: []any{h.Date, h.Name}})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace holidays: %w", err)
	}
	return nil
}
