package db

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/core/shiftcode"
)

// ShiftTypes returns the duty-code vocabulary, with evaluation category
// and color resolved from their settings keys.
func (d *DB) ShiftTypes(ctx context.Context) ([]model.ShiftType, error) {
	settings, err := d.SettingsWithPrefix(ctx, "")
	if err != nil {
		return nil, err
	}

	var types []model.ShiftType
	err = d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT code, description FROM shift_types ORDER BY code;`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					code := stmt.ColumnText(0)
					types = append(types, model.ShiftType{
						Code:        code,
						Description: stmt.ColumnText(1),
						Category:    settings[shiftcode.SettingPrefix+code],
						Color:       settings[shiftcode.ColorSettingPrefix+code],
					})
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read shift types: %w", err)
	}
	return types, nil
}

// UpsertShiftType stores one duty code. Category and color go into the
// settings table under the code's keys.
func (d *DB) UpsertShiftType(ctx context.Context, st model.ShiftType) error {
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT INTO shift_types (code, description) VALUES (?, ?)
			 ON CONFLICT (code) DO UPDATE SET description = excluded.description;`,
			&sqlitex.ExecOptions{Args: []any{st.Code, st.Description}})
	})
	if err != nil {
		return fmt.Errorf("failed to upsert shift type %s: %w", st.Code, err)
	}
	if st.Category != "" {
		if err := d.SetSetting(ctx, shiftcode.SettingPrefix+st.Code, st.Category); err != nil {
			return err
		}
	}
	if st.Color != "" {
		if err := d.SetSetting(ctx, shiftcode.ColorSettingPrefix+st.Code, st.Color); err != nil {
			return err
		}
	}
	return nil
}

// Classifier builds the duty-code classifier from the stored settings.
func (d *DB) Classifier(ctx context.Context) (*shiftcode.Classifier, error) {
	settings, err := d.SettingsWithPrefix(ctx, shiftcode.SettingPrefix)
	if err != nil {
		return nil, err
	}
	return shiftcode.FromSettings(settings), nil
}
