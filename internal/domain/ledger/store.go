package ledger

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the durable year-ledger boundary. Writes replace the whole
// employee-year record; there is no field-level patch. A missing employee
// or year reads as an empty record, never an error.
type Store interface {
	Load(ctx context.Context, year int) (YearLedger, error)
	LoadEmployee(ctx context.Context, year int, employeeID string) (EmployeeYear, bool, error)
	SaveEmployee(ctx context.Context, year int, employeeID string, data EmployeeYear) error
}

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Load(ctx context.Context, year int) (YearLedger, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, employee_name, months
    FROM year_ledgers
    WHERE year = $1
  `, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := YearLedger{}
	for rows.Next() {
		var employeeID, name string
		var monthsJSON []byte
		if err := rows.Scan(&employeeID, &name, &monthsJSON); err != nil {
			return nil, err
		}
		months := map[string]MonthRecord{}
		if len(monthsJSON) > 0 {
			if err := json.Unmarshal(monthsJSON, &months); err != nil {
				months = map[string]MonthRecord{}
			}
		}
		out[employeeID] = EmployeeYear{Name: name, Months: months}
	}
	return out, rows.Err()
}

func (s *PGStore) LoadEmployee(ctx context.Context, year int, employeeID string) (EmployeeYear, bool, error) {
	var name string
	var monthsJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT employee_name, months
    FROM year_ledgers
    WHERE year = $1 AND employee_id = $2
  `, year, employeeID).Scan(&name, &monthsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeYear{Months: map[string]MonthRecord{}}, false, nil
	}
	if err != nil {
		return EmployeeYear{}, false, err
	}

	months := map[string]MonthRecord{}
	if len(monthsJSON) > 0 {
		if err := json.Unmarshal(monthsJSON, &months); err != nil {
			months = map[string]MonthRecord{}
		}
	}
	return EmployeeYear{Name: name, Months: months}, true, nil
}

func (s *PGStore) SaveEmployee(ctx context.Context, year int, employeeID string, data EmployeeYear) error {
	monthsJSON, err := json.Marshal(data.Months)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO year_ledgers (year, employee_id, employee_name, months, updated_at)
    VALUES ($1, $2, $3, $4, now())
    ON CONFLICT (year, employee_id)
    DO UPDATE SET employee_name = EXCLUDED.employee_name, months = EXCLUDED.months, updated_at = now()
  `, year, employeeID, data.Name, monthsJSON)
	return err
}
