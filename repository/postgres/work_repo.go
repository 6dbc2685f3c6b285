package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
)

type workRepository struct {
	pool *pgxpool.Pool
}

// NewWorkRepository returns a Postgres-backed implementation of WorkRepository.
func NewWorkRepository(pool *pgxpool.Pool) repository.WorkRepository {
	return &workRepository{pool: pool}
}

func (r *workRepository) ListRange(ctx context.Context, start, end time.Time) ([]domain.WorkRecord, error) {
	const query = `
	SELECT id, customer_id, employee_id, date, hours, created_at, updated_at
	FROM work_records
	WHERE date BETWEEN $1 AND $2
	ORDER BY date, id
	`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.WorkRecord
	for rows.Next() {
		var rec domain.WorkRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.CustomerID,
			&rec.EmployeeID,
			&rec.Date,
			&rec.Hours,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *workRepository) CreateMany(ctx context.Context, records []domain.WorkRecord) error {
	if len(records) == 0 {
		return nil
	}

	const query = `
	INSERT INTO work_records (customer_id, employee_id, date, hours)
	VALUES ($1, $2, $3, $4)
	`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query, rec.CustomerID, rec.EmployeeID, rec.Day(), rec.Hours)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}
