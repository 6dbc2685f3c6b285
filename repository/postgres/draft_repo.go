package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
)

type draftRepository struct {
	pool *pgxpool.Pool
}

// NewDraftRepository returns a Postgres-backed implementation of DraftRepository.
func NewDraftRepository(pool *pgxpool.Pool) repository.DraftRepository {
	return &draftRepository{pool: pool}
}

const draftColumns = `id, customer_id, year, month, document, created_at, updated_at`

func (r *draftRepository) ListByPeriod(ctx context.Context, period domain.Period) ([]domain.InvoiceDraft, error) {
	const query = `
	SELECT ` + draftColumns + `
	FROM invoice_drafts
	WHERE year = $1 AND month = $2
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, period.Year, period.Month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDrafts(rows)
}

func (r *draftRepository) ListAll(ctx context.Context) ([]domain.InvoiceDraft, error) {
	const query = `
	SELECT ` + draftColumns + `
	FROM invoice_drafts
	ORDER BY year, month, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDrafts(rows)
}

// CreateMany inserts all drafts as one batch, a single network round trip.
func (r *draftRepository) CreateMany(ctx context.Context, drafts []domain.InvoiceDraft) error {
	if len(drafts) == 0 {
		return nil
	}

	const query = `
	INSERT INTO invoice_drafts (customer_id, year, month, document)
	VALUES ($1, $2, $3, $4)
	`

	batch := &pgx.Batch{}
	for _, d := range drafts {
		batch.Queue(query, d.CustomerID, d.Year, d.Month, []byte(d.Document))
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// UpdateDocuments rewrites only the stored document and updated_at of each
// draft, keyed by the existing row's primary key, as one batch.
func (r *draftRepository) UpdateDocuments(ctx context.Context, drafts []domain.InvoiceDraft) error {
	if len(drafts) == 0 {
		return nil
	}

	const query = `
	UPDATE invoice_drafts
	SET document = $2,
		updated_at = NOW()
	WHERE id = $1
	`

	batch := &pgx.Batch{}
	for _, d := range drafts {
		batch.Queue(query, d.ID, []byte(d.Document))
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *draftRepository) MaxInvoiceNumber(ctx context.Context) (int, error) {
	const query = `
	SELECT COALESCE(MAX((document->'cnt'->>'invoice_number')::int), 0)
	FROM invoice_drafts
	`
	var max int
	if err := r.pool.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

func collectDrafts(rows pgx.Rows) ([]domain.InvoiceDraft, error) {
	var drafts []domain.InvoiceDraft
	for rows.Next() {
		var d domain.InvoiceDraft
		var doc []byte
		if err := rows.Scan(
			&d.ID,
			&d.CustomerID,
			&d.Year,
			&d.Month,
			&doc,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		d.Document = doc
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}
