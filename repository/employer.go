package repository

import (
	"context"

	"github.com/invoiceworks/backend/domain"
)

// EmployerRepository provides access to the single issuing party.
type EmployerRepository interface {
	// Get returns the active employer record, or
	// domain.ErrNoEmployerConfigured when none exists.
	Get(ctx context.Context) (*domain.Employer, error)
	Create(ctx context.Context, employer *domain.Employer) error
	DeleteAll(ctx context.Context) error
}

// EmployeeRepository provides access to work-attribution records.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	CreateMany(ctx context.Context, employees []domain.Employee) error
	DeleteAll(ctx context.Context) error
}
