package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
)

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation of CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) repository.CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, name, price, profile, created_at, updated_at`

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const query = `
	SELECT ` + customerColumns + `
	FROM customers
	WHERE id = $1
	`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	const query = `
	SELECT ` + customerColumns + `
	FROM customers
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func (r *customerRepository) ListBilledInRange(ctx context.Context, start, end time.Time) ([]domain.Customer, error) {
	const query = `
	SELECT DISTINCT c.id, c.name, c.price, c.profile, c.created_at, c.updated_at
	FROM customers c
	JOIN work_records w ON w.customer_id = c.id
	WHERE w.date BETWEEN $1 AND $2
	ORDER BY c.id
	`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func (r *customerRepository) CreateMany(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	const query = `
	INSERT INTO customers (name, price, profile)
	VALUES ($1, $2, $3)
	`

	batch := &pgx.Batch{}
	for _, c := range customers {
		batch.Queue(query, c.Name, c.Price, marshalProfile(c.Profile))
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *customerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM customers`)
	return err
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var profile []byte

	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Price,
		&profile,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	if err := unmarshalProfile(profile, &c.Profile); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal,
			fmt.Sprintf("decode profile of customer %d", c.ID), err)
	}
	return &c, nil
}

func collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}
