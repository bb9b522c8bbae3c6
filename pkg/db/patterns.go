package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/mhagedorn/wachplan/pkg/core/pattern"
)

// PatternKind selects one of the two pattern calendars.
type PatternKind string

const (
	PatternDept PatternKind = "dept"
	PatternITW  PatternKind = "itw"
)

func patternTable(kind PatternKind) string {
	if kind == PatternITW {
		return "itw_patterns"
	}
	return "dept_patterns"
}

// Patterns returns every stored sequence of one calendar, each
// normalized to the full cycle length. Rows with unparseable start
// dates are skipped with a warning rather than failing the read.
func (d *DB) Patterns(ctx context.Context, kind PatternKind) ([]pattern.Sequence, error) {
	var seqs []pattern.Sequence
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			fmt.Sprintf(`SELECT start_date, pattern FROM %s ORDER BY start_date;`, patternTable(kind)),
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					startText := stmt.ColumnText(0)
					start, err := time.Parse("2006-01-02", startText)
					if err != nil {
						d.logger.Warn("Skipping pattern with bad start date",
							zap.String("kind", string(kind)), zap.String("start", startText))
						return nil
					}
					seqs = append(seqs, pattern.Sequence{
						Start:   start,
						Symbols: pattern.Normalize(strings.Split(stmt.ColumnText(1), ",")),
					})
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s patterns: %w", kind, err)
	}
	return seqs, nil
}

// UpsertPattern stores one sequence, replacing any sequence with the
// same start date. Symbols are normalized to the cycle length first.
func (d *DB) UpsertPattern(ctx context.Context, kind PatternKind, seq pattern.Sequence) error {
	return d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			fmt.Sprintf(`INSERT INTO %s (start_date, pattern) VALUES (?, ?)
			 ON CONFLICT (start_date) DO UPDATE SET pattern = excluded.pattern;`, patternTable(kind)),
			&sqlitex.ExecOptions{Args: []any{
				seq.Start.Format("2006-01-02"),
				strings.Join(pattern.Normalize(seq.Symbols), ","),
			}})
	})
}

// ReplacePatterns swaps the whole sequence set of one calendar in a
// single transaction.
func (d *DB) ReplacePatterns(ctx context.Context, kind PatternKind, seqs []pattern.Sequence) error {
	table := patternTable(kind)
	err := d.withTx(ctx, func(conn *sqlite.Conn) error {
		if err := sqlitex.Execute(conn, fmt.Sprintf(`DELETE FROM %s;`, table), nil); err != nil {
			return err
		}
		for _, seq := range seqs {
			err := sqlitex.Execute(conn,
				fmt.Sprintf(`INSERT INTO %s (start_date, pattern) VALUES (?, ?)
				 ON CONFLICT (start_date) DO UPDATE SET pattern = excluded.pattern;`, table),
				&sqlitex.ExecOptions{Args: []any{
					seq.Start.Format("2006-01-02"),
					strings.Join(pattern.Normalize(seq.Symbols), ","),
				}})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace %s patterns: %w", kind, err)
	}
	return nil
}
