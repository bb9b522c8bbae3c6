package db

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/mhagedorn/wachplan/pkg/core/model"
)

// Persons returns all staff members in display order.
func (d *DB) Persons(ctx context.Context) ([]model.Person, error) {
	var persons []model.Person
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT id, surname, given_name, part_time_percent,
			        vehicle_commander, heavy_vehicle_commander, nef_qualified,
			        itw_machinist, itw_commander, sort
			 FROM persons ORDER BY sort, surname, given_name;`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					persons = append(persons, model.Person{
						ID:                    stmt.ColumnInt64(0),
						Surname:               stmt.ColumnText(1),
						GivenName:             stmt.ColumnText(2),
						PartTimePercent:       stmt.ColumnInt(3),
						VehicleCommander:      stmt.ColumnInt(4) != 0,
						HeavyVehicleCommander: stmt.ColumnInt(5) != 0,
						NEFQualified:          stmt.ColumnInt(6) != 0,
						ITWMachinist:          stmt.ColumnInt(7) != 0,
						ITWCommander:          stmt.ColumnInt(8) != 0,
						Sort:                  stmt.ColumnInt(9),
					})
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read persons: %w", err)
	}
	return persons, nil
}

// UpsertPerson inserts the person, or updates them when ID is set.
func (d *DB) UpsertPerson(ctx context.Context, p *model.Person) error {
	return d.withConn(ctx, func(conn *sqlite.Conn) error {
		if p.ID == 0 {
			err := sqlitex.Execute(conn,
				`INSERT INTO persons (surname, given_name, part_time_percent,
				        vehicle_commander, heavy_vehicle_commander, nef_qualified,
				        itw_machinist, itw_commander, sort)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
				&sqlitex.ExecOptions{Args: []any{
					p.Surname, p.GivenName, p.PartTimePercent,
					boolInt(p.VehicleCommander), boolInt(p.HeavyVehicleCommander), boolInt(p.NEFQualified),
					boolInt(p.ITWMachinist), boolInt(p.ITWCommander), p.Sort,
				}})
			if err != nil {
				return err
			}
			p.ID = conn.LastInsertRowID()
			return nil
		}
		return sqlitex.Execute(conn,
			`UPDATE persons SET surname = ?, given_name = ?, part_time_percent = ?,
			        vehicle_commander = ?, heavy_vehicle_commander = ?, nef_qualified = ?,
			        itw_machinist = ?, itw_commander = ?, sort = ?
			 WHERE id = ?;`,
			&sqlitex.ExecOptions{Args: []any{
				p.Surname, p.GivenName, p.PartTimePercent,
				boolInt(p.VehicleCommander), boolInt(p.HeavyVehicleCommander), boolInt(p.NEFQualified),
				boolInt(p.ITWMachinist), boolInt(p.ITWCommander), p.Sort,
				p.ID,
			}})
	})
}

// Apprentices returns all apprentices in display order.
func (d *DB) Apprentices(ctx context.Context) ([]model.Apprentice, error) {
	var apprentices []model.Apprentice
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT id, surname, given_name, training_year, sort
			 FROM apprentices ORDER BY sort, surname, given_name;`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					apprentices = append(apprentices, model.Apprentice{
						ID:           stmt.ColumnInt64(0),
						Surname:      stmt.ColumnText(1),
						GivenName:    stmt.ColumnText(2),
						TrainingYear: stmt.ColumnInt(3),
						Sort:         stmt.ColumnInt(4),
					})
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read apprentices: %w", err)
	}
	return apprentices, nil
}

// UpsertApprentice inserts the apprentice, or updates when ID is set.
func (d *DB) UpsertApprentice(ctx context.Context, a *model.Apprentice) error {
	return d.withConn(ctx, func(conn *sqlite.Conn) error {
		if a.ID == 0 {
			err := sqlitex.Execute(conn,
				`INSERT INTO apprentices (surname, given_name, training_year, sort)
				 VALUES (?, ?, ?, ?);`,
				&sqlitex.ExecOptions{Args: []any{a.Surname, a.GivenName, a.TrainingYear, a.Sort}})
			if err != nil {
				return err
			}
			a.ID = conn.LastInsertRowID()
			return nil
		}
		return sqlitex.Execute(conn,
			`UPDATE apprentices SET surname = ?, given_name = ?, training_year = ?, sort = ?
			 WHERE id = ?;`,
			&sqlitex.ExecOptions{Args: []any{a.Surname, a.GivenName, a.TrainingYear, a.Sort, a.ID}})
	})
}

// Doctors returns all emergency physicians.
func (d *DB) Doctors(ctx context.Context) ([]model.Doctor, error) {
	var doctors []model.Doctor
	err := d.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT id, surname, given_name FROM doctors ORDER BY surname, given_name;`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					doctors = append(doctors, model.Doctor{
						ID:        stmt.ColumnInt64(0),
						Surname:   stmt.ColumnText(1),
						GivenName: stmt.ColumnText(2),
					})
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read doctors: %w", err)
	}
	return doctors, nil
}

// UpsertDoctor inserts the doctor, or updates when ID is set.
func (d *DB) UpsertDoctor(ctx context.Context, doc *model.Doctor) error {
	return d.withConn(ctx, func(conn *sqlite.Conn) error {
		if doc.ID == 0 {
			err := sqlitex.Execute(conn,
				`INSERT INTO doctors (surname, given_name) VALUES (?, ?);`,
				&sqlitex.ExecOptions{Args: []any{doc.Surname, doc.GivenName}})
			if err != nil {
				return err
			}
			doc.ID = conn.LastInsertRowID()
			return nil
		}
		return sqlitex.Execute(conn,
			`UPDATE doctors SET surname = ?, given_name = ? WHERE id = ?;`,
			&sqlitex.ExecOptions{Args: []any{doc.Surname, doc.GivenName, doc.ID}})
	})
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
