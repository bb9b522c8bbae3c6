package db

import (
	"context"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Patterns are stored as the comma-joined 21 symbols;
// duty-code categories and colors live in the settings table keyed
// "auswertung_<code>" / "color_<code>", not in shift_types.
const schema = `
CREATE TABLE IF NOT EXISTS duty_roster (
	person_id   INTEGER NOT NULL,
	person_type TEXT    NOT NULL,
	date        TEXT    NOT NULL,
	value       TEXT    NOT NULL DEFAULT '',
	slot        TEXT    NOT NULL DEFAULT '',
	PRIMARY KEY (person_id, person_type, date)
);
CREATE INDEX IF NOT EXISTS duty_roster_date ON duty_roster (date);

CREATE TABLE IF NOT EXISTS persons (
	id                      INTEGER PRIMARY KEY AUTOINCREMENT,
	surname                 TEXT NOT NULL,
	given_name              TEXT NOT NULL,
	part_time_percent       INTEGER NOT NULL DEFAULT 100,
	vehicle_commander       INTEGER NOT NULL DEFAULT 0,
	heavy_vehicle_commander INTEGER NOT NULL DEFAULT 0,
	nef_qualified           INTEGER NOT NULL DEFAULT 0,
	itw_machinist           INTEGER NOT NULL DEFAULT 0,
	itw_commander           INTEGER NOT NULL DEFAULT 0,
	sort                    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS apprentices (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	surname       TEXT NOT NULL,
	given_name    TEXT NOT NULL,
	training_year INTEGER NOT NULL DEFAULT 1,
	sort          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS doctors (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	surname    TEXT NOT NULL,
	given_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rtw_vehicles (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	sort          INTEGER NOT NULL DEFAULT 0,
	archived_year INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS nef_vehicles (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT NOT NULL,
	sort           INTEGER NOT NULL DEFAULT 0,
	archived_year  INTEGER NOT NULL DEFAULT 0,
	occupancy_mode TEXT NOT NULL DEFAULT '24h'
);

CREATE TABLE IF NOT EXISTS rtw_vehicle_months (
	vehicle_id INTEGER NOT NULL,
	year       INTEGER NOT NULL,
	month      INTEGER NOT NULL,
	enabled    INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY (vehicle_id, year, month)
);

CREATE TABLE IF NOT EXISTS nef_vehicle_months (
	vehicle_id INTEGER NOT NULL,
	year       INTEGER NOT NULL,
	month      INTEGER NOT NULL,
	enabled    INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY (vehicle_id, year, month)
);

CREATE TABLE IF NOT EXISTS shift_types (
	code        TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS dept_patterns (
	start_date TEXT PRIMARY KEY,
	pattern    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS itw_patterns (
	start_date TEXT PRIMARY KEY,
	pattern    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS holidays (
	date TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);
`

func (d *DB) ensureSchema(ctx context.Context) error {
	return d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.ExecuteScript(conn, schema, nil)
	})
}
