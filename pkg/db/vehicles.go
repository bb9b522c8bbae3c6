package db

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/mhagedorn/wachplan/pkg/core/model"
)

func vehicleTable(kind model.VehicleKind) string {
	if kind == model.VehicleNEF {
		return "nef_vehicles"
	}
	return "rtw_vehicles"
}

func vehicleMonthTable(kind model.VehicleKind) string {
	if kind == model.VehicleNEF {
		return "nef_vehicle_months"
	}
	return "rtw_vehicle_months"
}

// Vehicles returns all vehicles of both kinds, archived ones included.
func (d *DB) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn,
			`SELECT id, name, sort, archived_year FROM rtw_vehicles ORDER BY sort, name;`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					vehicles = append(vehicles, model.Vehicle{
						ID:           stmt.ColumnInt64(0),
						Kind:         model.VehicleRTW,
						Name:         stmt.ColumnText(1),
						Sort:         stmt.ColumnInt(2),
						ArchivedYear: stmt.ColumnInt(3),
					})
					return nil
				},
			})
		if err != nil {
			return err
		}
		return sqlitex.Execute(conn,
			`SELECT id, name, sort, archived_year, occupancy_mode FROM nef_vehicles ORDER BY sort, name;`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					vehicles = append(vehicles, model.Vehicle{
						ID:            stmt.ColumnInt64(0),
						Kind:          model.VehicleNEF,
						Name:          stmt.ColumnText(1),
						Sort:          stmt.ColumnInt(2),
						ArchivedYear:  stmt.ColumnInt(3),
						OccupancyMode: model.OccupancyMode(stmt.ColumnText(4)),
					})
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read vehicles: %w", err)
	}
	return vehicles, nil
}

// UpsertVehicle inserts the vehicle, or updates it when ID is set.
func (d *DB) UpsertVehicle(ctx context.Context, v *model.Vehicle) error {
	table := vehicleTable(v.Kind)
	return d.withConn(ctx, func(conn *sqlite.Conn) error {
		if v.Kind == model.VehicleNEF {
			mode := v.OccupancyMode
			if mode == "" {
				mode = model.Occupancy24h
			}
			if v.ID == 0 {
				err := sqlitex.Execute(conn,
					`INSERT INTO nef_vehicles (name, sort, archived_year, occupancy_mode) VALUES (?, ?, ?, ?);`,
					&sqlitex.ExecOptions{Args: []any{v.Name, v.Sort, v.ArchivedYear, string(mode)}})
				if err != nil {
					return err
				}
				v.ID = conn.LastInsertRowID()
				return nil
			}
			return sqlitex.Execute(conn,
				`UPDATE nef_vehicles SET name = ?, sort = ?, archived_year = ?, occupancy_mode = ? WHERE id = ?;`,
				&sqlitex.ExecOptions{Args: []any{v.Name, v.Sort, v.ArchivedYear, string(mode), v.ID}})
		}
		if v.ID == 0 {
			err := sqlitex.Execute(conn,
				fmt.Sprintf(`INSERT INTO %s (name, sort, archived_year) VALUES (?, ?, ?);`, table),
				&sqlitex.ExecOptions{Args: []any{v.Name, v.Sort, v.ArchivedYear}})
			if err != nil {
				return err
			}
			v.ID = conn.LastInsertRowID()
			return nil
		}
		return sqlitex.Execute(conn,
			fmt.Sprintf(`UPDATE %s SET name = ?, sort = ?, archived_year = ? WHERE id = ?;`, table),
			&sqlitex.ExecOptions{Args: []any{v.Name, v.Sort, v.ArchivedYear, v.ID}})
	})
}

// SetVehicleMonth records the activation flag of one vehicle for one
// month. Absence of a record means enabled.
func (d *DB) SetVehicleMonth(ctx context.Context, key model.VehicleKey, year int, month int, enabled bool) error {
	return d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			fmt.Sprintf(`INSERT INTO %s (vehicle_id, year, month, enabled) VALUES (?, ?, ?, ?)
			 ON CONFLICT (vehicle_id, year, month) DO UPDATE SET enabled = excluded.enabled;`, vehicleMonthTable(key.Kind)),
			&sqlitex.ExecOptions{Args: []any{key.ID, year, month, boolInt(enabled)}})
	})
}

// VehicleMonthActivations returns the recorded activation flags of both
// vehicle kinds for one month, keyed by vehicle.
func (d *DB) VehicleMonthActivations(ctx context.Context, year int, month int) (map[model.VehicleKey]bool, error) {
	activations := make(map[model.VehicleKey]bool)
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		for _, kind := range []model.VehicleKind{model.VehicleRTW, model.VehicleNEF} {
			kind := kind
			err := sqlitex.Execute(conn,
				fmt.Sprintf(`SELECT vehicle_id, enabled FROM %s WHERE year = ? AND month = ?;`, vehicleMonthTable(kind)),
				&sqlitex.ExecOptions{
					Args: []any{year, month},
					ResultFunc: func(stmt *sqlite.Stmt) error {
						key := model.VehicleKey{Kind: kind, ID: stmt.ColumnInt64(0)}
						activations[key] = stmt.ColumnInt(1) != 0
						return nil
					},
				})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read vehicle activations: %w", err)
	}
	return activations, nil
}
