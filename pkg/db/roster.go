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

const upsertValueSQL = `
INSERT INTO duty_roster (person_id, person_type, date, value, slot)
VALUES (?, ?, ?, ?, '')
ON CONFLICT (person_id, person_type, date) DO UPDATE SET value = excluded.value;`

const upsertSlotSQL = `
INSERT INTO duty_roster (person_id, person_type, date, value, slot)
VALUES (?, ?, ?, '', ?)
ON CONFLICT (person_id, person_type, date) DO UPDATE SET slot = excluded.slot;`

// SetEntry upserts the duty-code value for (person, date). The slot
// field of an existing record is left untouched. A missing person
// reference or date is a logged no-op, not an error.
func (d *DB) SetEntry(ctx context.Context, e model.DutyRosterEntry) error {
	if e.Ref.IsZero() || e.Date == "" {
		d.logger.Warn("Ignoring roster entry without person or date",
			zap.String("ref", e.Ref.String()), zap.String("date", e.Date))
		return nil
	}
	return d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, upsertValueSQL, &sqlitex.ExecOptions{
			Args: []any{e.Ref.ID, string(e.Ref.Kind), e.Date, e.Value},
		})
	})
}

// BulkResult reports the outcome of a bulk upsert.
type BulkResult struct {
	Imported int
	Skipped  int
}

// BulkUpsert writes all entries in one transaction. Individual bad rows
// are counted and skipped so the batch still commits; only a fatal
// store error rolls the whole batch back, in which case the result is
// zero. Later entries for the same (person, date) win.
func (d *DB) BulkUpsert(ctx context.Context, entries []model.DutyRosterEntry) (BulkResult, error) {
	var result BulkResult
	err := d.withTx(ctx, func(conn *sqlite.Conn) error {
		for _, e := range entries {
			if e.Ref.IsZero() || e.Date == "" {
				result.Skipped++
				continue
			}
			err := sqlitex.Execute(conn, upsertValueSQL, &sqlitex.ExecOptions{
				Args: []any{e.Ref.ID, string(e.Ref.Kind), e.Date, e.Value},
			})
			if err != nil {
				d.logger.Warn("Skipping roster row",
					zap.String("ref", e.Ref.String()),
					zap.String("date", e.Date),
					zap.Error(err))
				result.Skipped++
				continue
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return BulkResult{}, fmt.Errorf("failed to bulk upsert roster entries: %w", err)
	}
	return result, nil
}

// AssignSlot sets the slot field for (person, date), creating the
// record with an empty duty code if absent. The slot is made exclusive
// here, not by caller convention: any other holder of the same
// (date, slot) is cleared in the same transaction.
func (d *DB) AssignSlot(ctx context.Context, ref model.PersonRef, date, slotID string) error {
	if ref.IsZero() || date == "" {
		d.logger.Warn("Ignoring slot assignment without person or date",
			zap.String("ref", ref.String()), zap.String("date", date))
		return nil
	}
	return d.withTx(ctx, func(conn *sqlite.Conn) error {
		if slotID != "" {
			err := sqlitex.Execute(conn,
				`UPDATE duty_roster SET slot = ''
				 WHERE date = ? AND slot = ? AND NOT (person_id = ? AND person_type = ?);`,
				&sqlitex.ExecOptions{Args: []any{date, slotID, ref.ID, string(ref.Kind)}})
			if err != nil {
				return err
			}
		}
		return sqlitex.Execute(conn, upsertSlotSQL, &sqlitex.ExecOptions{
			Args: []any{ref.ID, string(ref.Kind), date, slotID},
		})
	})
}

// ClearSlotAssignments blanks every slot carrying a reserved vehicle or
// ITW prefix, leaving duty codes alone. The legacy "V" marker in the
// value field is blanked too, unless "V" is currently a configured
// shift-type code; then it is a user-defined duty code and survives.
func (d *DB) ClearSlotAssignments(ctx context.Context) error {
	return d.withTx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn,
			`UPDATE duty_roster SET slot = ''
			 WHERE slot LIKE 'rtw%' OR slot LIKE 'nef%' OR slot LIKE 'itw%';`, nil)
		if err != nil {
			return err
		}

		vConfigured := false
		err = sqlitex.Execute(conn,
			`SELECT 1 FROM shift_types WHERE code = ?;`,
			&sqlitex.ExecOptions{
				Args: []any{model.GenericSlotMarker},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					vConfigured = true
					return nil
				},
			})
		if err != nil {
			return err
		}
		if vConfigured {
			return nil
		}
		return sqlitex.Execute(conn,
			`UPDATE duty_roster SET value = '' WHERE value = ?;`,
			&sqlitex.ExecOptions{Args: []any{model.GenericSlotMarker}})
	})
}

// ClearYear deletes every roster entry of the year.
func (d *DB) ClearYear(ctx context.Context, year int) error {
	return d.clearRange(ctx, fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
}

// ClearMonth deletes every roster entry of the month, using the real
// calendar length of the month.
func (d *DB) ClearMonth(ctx context.Context, year int, month time.Month) error {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return d.clearRange(ctx, first.Format("2006-01-02"), last.Format("2006-01-02"))
}

func (d *DB) clearRange(ctx context.Context, start, end string) error {
	return d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`DELETE FROM duty_roster WHERE date >= ? AND date <= ?;`,
			&sqlitex.ExecOptions{Args: []any{start, end}})
	})
}

// EntriesForRange returns all entries with start ≤ date ≤ end.
func (d *DB) EntriesForRange(ctx context.Context, start, end string) ([]model.DutyRosterEntry, error) {
	var entries []model.DutyRosterEntry
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT person_id, person_type, date, value, slot
			 FROM duty_roster WHERE date >= ? AND date <= ? ORDER BY date, person_type, person_id;`,
			&sqlitex.ExecOptions{
				Args: []any{start, end},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					entries = append(entries, model.DutyRosterEntry{
						Ref: model.PersonRef{
							Kind: model.RefKind(stmt.ColumnText(1)),
							ID:   stmt.ColumnInt64(0),
						},
						Date:   stmt.ColumnText(2),
						Value:  stmt.ColumnText(3),
						SlotID: stmt.ColumnText(4),
					})
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read roster entries: %w", err)
	}
	return entries, nil
}

// EntriesForMonth returns all entries of one month.
func (d *DB) EntriesForMonth(ctx context.Context, year int, month time.Month) ([]model.DutyRosterEntry, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return d.EntriesForRange(ctx, first.Format("2006-01-02"), last.Format("2006-01-02"))
}

// EntriesForYear returns all entries of one year.
func (d *DB) EntriesForYear(ctx context.Context, year int) ([]model.DutyRosterEntry, error) {
	return d.EntriesForRange(ctx, fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
}

// Entry returns the record for (person, date), if any.
func (d *DB) Entry(ctx context.Context, ref model.PersonRef, date string) (model.DutyRosterEntry, bool, error) {
	var entry model.DutyRosterEntry
	found := false
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT value, slot FROM duty_roster
			 WHERE person_id = ? AND person_type = ? AND date = ?;`,
			&sqlitex.ExecOptions{
				Args: []any{ref.ID, string(ref.Kind), date},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					entry = model.DutyRosterEntry{
						Ref:    ref,
						Date:   date,
						Value:  stmt.ColumnText(0),
						SlotID: stmt.ColumnText(1),
					}
					found = true
					return nil
				},
			})
	})
	if err != nil {
		return model.DutyRosterEntry{}, false, fmt.Errorf("failed to read roster entry: %w", err)
	}
	return entry, found, nil
}
