package db

import (
	"context"
	"fmt"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Well known settings keys.
const (
	SettingDepartment       = "department"
	SettingYear             = "year"
	SettingITW              = "itw"
	SettingRosterImportPath = "rosterImportPath"
)

// Setting returns the value of one settings key.
func (d *DB) Setting(ctx context.Context, key string) (string, bool, error) {
	var value string
	found := false
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT value FROM settings WHERE key = ?;`,
			&sqlitex.ExecOptions{
				Args: []any{key},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					value = stmt.ColumnText(0)
					found = true
					return nil
				},
			})
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, found, nil
}

// SetSetting stores one settings key.
func (d *DB) SetSetting(ctx context.Context, key, value string) error {
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = excluded.value;`,
			&sqlitex.ExecOptions{Args: []any{key, value}})
	})
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// SettingsWithPrefix returns all settings whose key starts with prefix;
// the empty prefix returns everything.
func (d *DB) SettingsWithPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	settings := make(map[string]string)
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT key, value FROM settings;`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					key := stmt.ColumnText(0)
					if strings.HasPrefix(key, prefix) {
						settings[key] = stmt.ColumnText(1)
					}
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return settings, nil
}
