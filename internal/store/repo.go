package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/starford/jera/internal/apperr"
	"github.com/starford/jera/internal/timesheet"
)

const weekFormat = "2006-01-02"

// All returns every persisted timesheet in insertion order.
func (db *DB) All() ([]*timesheet.Sheet, error) {
	return db.querySheets(`SELECT id, employee_id, employee_name, week_ending FROM timesheets ORDER BY id`)
}

// ForEmployee returns the employee's timesheets in insertion order. An
// employee with no timesheets yields an empty slice, not an error.
func (db *DB) ForEmployee(emp timesheet.Employee) ([]*timesheet.Sheet, error) {
	return db.querySheets(
		`SELECT id, employee_id, employee_name, week_ending FROM timesheets WHERE employee_id = ? ORDER BY id`,
		emp.Number)
}

// Lookup returns the unique timesheet for (employee, week-ending date), or
// apperr.ErrNotFound when none is persisted. Should duplicate records exist
// in storage, the last-inserted one wins.
func (db *DB) Lookup(emp timesheet.Employee, weekEnding time.Time) (*timesheet.Sheet, error) {
	week := timesheet.WeekEnding(weekEnding).Format(weekFormat)

	var id int64
	var name string
	err := db.conn.QueryRow(
		`SELECT id, employee_name FROM timesheets WHERE employee_id = ? AND week_ending = ? ORDER BY id DESC LIMIT 1`,
		emp.Number, week).Scan(&id, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: lookup: %w", err)
	}

	s := timesheet.New(timesheet.Employee{Number: emp.Number, Name: name}, weekEnding)
	s.Rows, err = db.loadRows(id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Save persists the timesheet, overwriting any existing record for the same
// (employee, week-ending date) key. The sheet must already carry a validator
// approval; Save does not re-validate and returns apperr.ErrNotValidated
// when the approval is missing.
func (db *DB) Save(s *timesheet.Sheet) error {
	if !s.Approved() {
		return apperr.ErrNotValidated
	}
	return db.upsert(s)
}

// upsert replaces the timesheet header and rows within a transaction.
func (db *DB) upsert(s *timesheet.Sheet) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	week := s.WeekEnding.Format(weekFormat)
	_, err = tx.Exec(`
		INSERT INTO timesheets (employee_id, employee_name, week_ending)
		VALUES (?, ?, ?)
		ON CONFLICT(employee_id, week_ending) DO UPDATE SET
			employee_name = excluded.employee_name
	`, s.Employee.Number, s.Employee.Name, week)
	if err != nil {
		return fmt.Errorf("store: upsert timesheet: %w", err)
	}

	var id int64
	err = tx.QueryRow(
		`SELECT id FROM timesheets WHERE employee_id = ? AND week_ending = ? ORDER BY id DESC LIMIT 1`,
		s.Employee.Number, week).Scan(&id)
	if err != nil {
		return fmt.Errorf("store: resolve timesheet id: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM timesheet_rows WHERE timesheet_id = ?`, id); err != nil {
		return fmt.Errorf("store: clear rows: %w", err)
	}

	if len(s.Rows) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO timesheet_rows
				(timesheet_id, position, project_id, work_package, notes, mon, tue, wed, thu, fri, sat, sun)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare row insert: %w", err)
		}
		defer stmt.Close()

		for pos, r := range s.Rows {
			args := []any{id, pos, r.ProjectID, r.WorkPackage, r.Notes}
			for _, day := range timesheet.WorkDays {
				if h, ok := r.Hour(day); ok {
					args = append(args, h.String())
				} else {
					args = append(args, nil)
				}
			}
			if _, err := stmt.Exec(args...); err != nil {
				return fmt.Errorf("store: insert row: %w", err)
			}
		}
	}

	return tx.Commit()
}

// querySheets loads timesheet headers matched by query and hydrates their rows.
func (db *DB) querySheets(query string, args ...any) ([]*timesheet.Sheet, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query timesheets: %w", err)
	}
	defer rows.Close()

	type header struct {
		id   int64
		emp  timesheet.Employee
		week time.Time
	}
	var headers []header
	for rows.Next() {
		var h header
		var week string
		if err := rows.Scan(&h.id, &h.emp.Number, &h.emp.Name, &week); err != nil {
			return nil, fmt.Errorf("store: scan timesheet: %w", err)
		}
		h.week, err = time.Parse(weekFormat, week)
		if err != nil {
			return nil, fmt.Errorf("store: bad week_ending %q: %w", week, err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*timesheet.Sheet, 0, len(headers))
	for _, h := range headers {
		s := timesheet.New(h.emp, h.week)
		if s.Rows, err = db.loadRows(h.id); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// loadRows hydrates a timesheet's rows in position order. Day columns hold
// decimal strings; NULL means no hours charged to that day.
func (db *DB) loadRows(timesheetID int64) ([]*timesheet.Row, error) {
	rows, err := db.conn.Query(`
		SELECT project_id, work_package, notes, mon, tue, wed, thu, fri, sat, sun
		FROM timesheet_rows WHERE timesheet_id = ? ORDER BY position`, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("store: query rows: %w", err)
	}
	defer rows.Close()

	var out []*timesheet.Row
	for rows.Next() {
		r := timesheet.NewRow()
		var days [7]sql.NullString
		err := rows.Scan(&r.ProjectID, &r.WorkPackage, &r.Notes,
			&days[0], &days[1], &days[2], &days[3], &days[4], &days[5], &days[6])
		if err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		for i, d := range days {
			if !d.Valid {
				continue
			}
			h, err := decimal.NewFromString(d.String)
			if err != nil {
				return nil, fmt.Errorf("store: bad hours %q: %w", d.String, err)
			}
			if err := r.SetHour(timesheet.WorkDays[i], h); err != nil {
				return nil, err
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
