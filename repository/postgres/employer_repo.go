package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
)

type employerRepository struct {
	pool *pgxpool.Pool
}

// NewEmployerRepository returns a Postgres-backed implementation of EmployerRepository.
func NewEmployerRepository(pool *pgxpool.Pool) repository.EmployerRepository {
	return &employerRepository{pool: pool}
}

func (r *employerRepository) Get(ctx context.Context) (*domain.Employer, error) {
	const query = `
	SELECT id, name, profile, created_at, updated_at
	FROM employers
	ORDER BY id
	LIMIT 1
	`
	var e domain.Employer
	var profile []byte

	if err := r.pool.QueryRow(ctx, query).Scan(
		&e.ID,
		&e.Name,
		&profile,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoEmployerConfigured
		}
		return nil, err
	}

	if err := unmarshalProfile(profile, &e.Profile); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal,
			fmt.Sprintf("decode profile of employer %d", e.ID), err)
	}
	return &e, nil
}

func (r *employerRepository) Create(ctx context.Context, employer *domain.Employer) error {
	if employer == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO employers (name, profile)
	VALUES ($1, $2)
	RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, employer.Name, marshalProfile(employer.Profile)).
		Scan(&employer.ID, &employer.CreatedAt, &employer.UpdatedAt)
}

func (r *employerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM employers`)
	return err
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation of EmployeeRepository.
func NewEmployeeRepository(pool *pgxpool.Pool) repository.EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `
	SELECT id, name, created_at, updated_at
	FROM employees
	WHERE id = $1
	`
	var e domain.Employee
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.Name,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) CreateMany(ctx context.Context, employees []domain.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range employees {
		batch.Queue(`INSERT INTO employees (name) VALUES ($1)`, e.Name)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *employeeRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM employees`)
	return err
}
