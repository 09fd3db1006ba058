package pgsql

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool, db DBTX) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `employee_id, name, position, salary, status, created_at, created_by, last_updated_at, last_updated_by`

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(&m.EmployeeID, &m.Name, &m.Position, &m.Salary, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `INSERT INTO employees (` + employeeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.db.Exec(ctx, query, m.EmployeeID, m.Name, m.Position, m.Salary, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapError(err, "failed to save employee "+m.EmployeeID)
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		UPDATE employees
		SET name = $2, position = $3, salary = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE employee_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, m.EmployeeID, m.Name, m.Position, m.Salary, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError(err, "failed to update employee "+m.EmployeeID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	m, err := scanEmployee(r.db.QueryRow(ctx, query, employeeID))
	if err != nil {
		return nil, mapError(err, "failed to find employee "+employeeID)
	}
	employee := mapping.ToDomainEmployee(m)
	return &employee, nil
}

func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name, employee_id;`)
	if err != nil {
		return nil, mapError(err, "failed to list employees")
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan employee row")
		}
		employees = append(employees, mapping.ToDomainEmployee(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating employee rows")
	}
	return employees, nil
}

type PgxJobRepository struct {
	BaseRepository
}

func newPgxJobRepository(pool *pgxpool.Pool, db DBTX) portsrepo.JobRepositoryFacade {
	return &PgxJobRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.JobRepositoryFacade = (*PgxJobRepository)(nil)

const jobColumns = `job_id, title, assignee, cost, status, completed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanJob(row pgx.Row) (models.Job, error) {
	var m models.Job
	err := row.Scan(&m.JobID, &m.Title, &m.Assignee, &m.Cost, &m.Status, &m.CompletedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxJobRepository) SaveJob(ctx context.Context, job domain.Job) error {
	m := mapping.ToModelJob(job)
	query := `INSERT INTO jobs (` + jobColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.db.Exec(ctx, query, m.JobID, m.Title, m.Assignee, m.Cost, m.Status, m.CompletedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapError(err, "failed to save job "+m.JobID)
}

func (r *PgxJobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	m := mapping.ToModelJob(job)
	query := `
		UPDATE jobs
		SET title = $2, assignee = $3, cost = $4, status = $5, completed_at = $6, last_updated_at = $7, last_updated_by = $8
		WHERE job_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, m.JobID, m.Title, m.Assignee, m.Cost, m.Status, m.CompletedAt, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError(err, "failed to update job "+m.JobID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJobRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1;`
	m, err := scanJob(r.db.QueryRow(ctx, query, jobID))
	if err != nil {
		return nil, mapError(err, "failed to find job "+jobID)
	}
	job := mapping.ToDomainJob(m)
	return &job, nil
}

func (r *PgxJobRepository) ListJobs(ctx context.Context) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at, job_id;`)
	if err != nil {
		return nil, mapError(err, "failed to list jobs")
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		m, err := scanJob(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan job row")
		}
		jobs = append(jobs, mapping.ToDomainJob(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating job rows")
	}
	return jobs, nil
}
