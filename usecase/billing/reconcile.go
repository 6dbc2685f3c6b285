package billing

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
)

// StagedDraft is one freshly computed invoice document awaiting persistence.
type StagedDraft struct {
	CustomerID int64
	Document   json.RawMessage
}

// Reconciler decides, for a batch of freshly computed invoice documents of
// one period, which customers already have a stored draft to update and
// which need a new row.
type Reconciler struct {
	drafts repository.DraftRepository
	logger *zap.Logger
}

// NewReconciler builds a Reconciler over the given draft store.
func NewReconciler(drafts repository.DraftRepository, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{drafts: drafts, logger: logger}
}

// Result reports what one reconciliation run persisted.
type Result struct {
	Created int
	Updated int
}

// Reconcile partitions staged documents against the drafts already stored
// for the period and persists both sets: creates as one batch insert,
// updates as one batch update touching only the document and updated-at.
//
// When the store holds several drafts for the same customer and period (a
// data anomaly the schema permits), only the first row by ID is updated;
// the duplicates are left alone and logged.
func (r *Reconciler) Reconcile(ctx context.Context, period domain.Period, staged []StagedDraft) (Result, error) {
	existing, err := r.drafts.ListByPeriod(ctx, period)
	if err != nil {
		return Result{}, err
	}

	byCustomer := make(map[int64]domain.InvoiceDraft, len(existing))
	for _, d := range existing {
		if _, ok := byCustomer[d.CustomerID]; ok {
			r.logger.Warn("duplicate draft for customer and period",
				zap.Int64("customer_id", d.CustomerID),
				zap.String("period", period.String()),
				zap.Int64("draft_id", d.ID),
			)
			continue
		}
		byCustomer[d.CustomerID] = d
	}

	var toCreate, toUpdate []domain.InvoiceDraft
	for _, s := range staged {
		if prev, ok := byCustomer[s.CustomerID]; ok {
			prev.Document = s.Document
			toUpdate = append(toUpdate, prev)
			continue
		}
		toCreate = append(toCreate, domain.InvoiceDraft{
			CustomerID: s.CustomerID,
			Year:       period.Year,
			Month:      period.Month,
			Document:   s.Document,
		})
	}

	if err := r.drafts.CreateMany(ctx, toCreate); err != nil {
		return Result{}, err
	}
	if err := r.drafts.UpdateDocuments(ctx, toUpdate); err != nil {
		return Result{Created: len(toCreate)}, err
	}

	return Result{Created: len(toCreate), Updated: len(toUpdate)}, nil
}
