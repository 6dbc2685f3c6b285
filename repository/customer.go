package repository

import (
	"context"
	"time"

	"github.com/invoiceworks/backend/domain"
)

// CustomerRepository provides access to billable parties.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	// ListBilledInRange returns the distinct customers having at least one
	// work record inside the inclusive [start, end] range, in stable ID
	// order. Customers without work in range are excluded entirely.
	ListBilledInRange(ctx context.Context, start, end time.Time) ([]domain.Customer, error)
	CreateMany(ctx context.Context, customers []domain.Customer) error
	DeleteAll(ctx context.Context) error
}
