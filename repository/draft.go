package repository

import (
	"context"

	"github.com/invoiceworks/backend/domain"
)

// DraftRepository provides access to persisted invoice drafts.
//
// The table carries no uniqueness constraint on (customer, year, month);
// callers reconciling a period must defend against duplicate rows.
type DraftRepository interface {
	ListByPeriod(ctx context.Context, period domain.Period) ([]domain.InvoiceDraft, error)
	ListAll(ctx context.Context) ([]domain.InvoiceDraft, error)
	// CreateMany inserts all drafts in a single batch.
	CreateMany(ctx context.Context, drafts []domain.InvoiceDraft) error
	// UpdateDocuments updates only the stored document and the updated-at
	// timestamp of each draft, in a single batch, keyed by draft ID.
	UpdateDocuments(ctx context.Context, drafts []domain.InvoiceDraft) error
	// MaxInvoiceNumber returns the highest invoice number found in any
	// persisted draft document, or zero when no drafts exist.
	MaxInvoiceNumber(ctx context.Context) (int, error)
}
