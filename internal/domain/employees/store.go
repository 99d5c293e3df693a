package employees

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_name, id_number, date_of_birth, created_at
    FROM employees
    ORDER BY employee_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.IDNumber, &e.DateOfBirth, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_name, id_number, date_of_birth, created_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.Name, &e.IDNumber, &e.DateOfBirth, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, e Employee) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (id, employee_name, id_number, date_of_birth)
    VALUES ($1, $2, $3, $4)
  `, e.ID, e.Name, e.IDNumber, e.DateOfBirth)
	if err != nil {
		return "", err
	}
	return e.ID, nil
}

// DisplayName satisfies timeclock.NameLookup.
func (s *Store) DisplayName(ctx context.Context, id string) (string, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return e.Name, nil
}
