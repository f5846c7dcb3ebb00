package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

type EmployeeRepository struct {
	pool PgxPool
}

func NewEmployeeRepository(pool PgxPool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (id, first_name, last_name, position, face_encoding, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.Position,
		employee.FaceEncoding,
	).Scan(&employee.CreatedAt)
	if err != nil {
		return fmt.Errorf("create employee: %w", err)
	}

	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	query := `
		SELECT id, first_name, last_name, position, face_encoding, created_at
		FROM employees
		WHERE id = $1
	`

	var employee domain.Employee
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Position,
		&employee.FaceEncoding,
		&employee.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee by id: %w", err)
	}

	return &employee, nil
}

// List returns every employee ordered by name.
func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT id, first_name, last_name, position, face_encoding, created_at
		FROM employees
		ORDER BY first_name, last_name, id
	`

	employees, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// ListEnrolled returns employees with a stored encoding, in enrollment order.
// The order is the gallery insertion order, so ties resolve to the earliest enrolled.
func (r *EmployeeRepository) ListEnrolled(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT id, first_name, last_name, position, face_encoding, created_at
		FROM employees
		WHERE face_encoding IS NOT NULL AND btrim(face_encoding) <> ''
		ORDER BY created_at, id
	`

	employees, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list enrolled employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) UpdateEncoding(ctx context.Context, id uuid.UUID, encoding string) error {
	query := `UPDATE employees SET face_encoding = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, encoding)
	if err != nil {
		return fmt.Errorf("update employee encoding: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}

func (r *EmployeeRepository) EnrollmentCounts(ctx context.Context) (int, int, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE face_encoding IS NOT NULL AND btrim(face_encoding) <> '')
		FROM employees
	`

	var total, enrolled int
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &enrolled); err != nil {
		return 0, 0, fmt.Errorf("count employees: %w", err)
	}

	return total, enrolled, nil
}

func (r *EmployeeRepository) query(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(
			&e.ID,
			&e.FirstName,
			&e.LastName,
			&e.Position,
			&e.FaceEncoding,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
