package repository

import (
	"context"
	"time"

	"github.com/invoiceworks/backend/domain"
)

// WorkRepository provides access to raw time entries.
type WorkRepository interface {
	// ListRange returns all work records with a date inside the inclusive
	// [start, end] range, ordered by date ascending.
	ListRange(ctx context.Context, start, end time.Time) ([]domain.WorkRecord, error)
	CreateMany(ctx context.Context, records []domain.WorkRecord) error
}
