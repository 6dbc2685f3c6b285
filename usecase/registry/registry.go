// Package registry seeds the party records (customers, employees and the
// employer) from local JSON files, replacing whatever is stored.
package registry

import (
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
)

type seedCustomer struct {
	Name    string                 `json:"name"`
	Price   int64                  `json:"price"`
	Profile domain.CustomerProfile `json:"profile"`
}

type seedEmployee struct {
	Name string `json:"name"`
}

type seedEmployer struct {
	Name    string                 `json:"name"`
	Profile domain.EmployerProfile `json:"profile"`
}

type seedFile struct {
	Customers []seedCustomer `json:"customers"`
	Employees []seedEmployee `json:"employees"`
	Employer  *seedEmployer  `json:"employer"`
}

// Service loads seed data into the party repositories.
type Service struct {
	customers repository.CustomerRepository
	employees repository.EmployeeRepository
	employers repository.EmployerRepository
	logger    *zap.Logger
}

// New builds the registry service.
func New(
	customers repository.CustomerRepository,
	employees repository.EmployeeRepository,
	employers repository.EmployerRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		customers: customers,
		employees: employees,
		employers: employers,
		logger:    logger,
	}
}

// Seed replaces all party records with the contents of the JSON document
// read from r.
func (s *Service) Seed(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "malformed seed file", err)
	}

	// customer deletion cascades to work records and invoice drafts
	s.logger.Warn("replacing party records, dependent work records and invoice drafts are removed by cascade")

	if err := s.customers.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.employees.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.employers.DeleteAll(ctx); err != nil {
		return err
	}

	customers := make([]domain.Customer, 0, len(seed.Customers))
	for _, c := range seed.Customers {
		customer := domain.Customer{Name: c.Name, Price: c.Price, Profile: c.Profile}
		if err := customer.Validate(); err != nil {
			return err
		}
		customers = append(customers, customer)
	}
	if err := s.customers.CreateMany(ctx, customers); err != nil {
		return err
	}

	employees := make([]domain.Employee, 0, len(seed.Employees))
	for _, e := range seed.Employees {
		employees = append(employees, domain.Employee{Name: e.Name})
	}
	if err := s.employees.CreateMany(ctx, employees); err != nil {
		return err
	}

	if seed.Employer != nil {
		employer := &domain.Employer{Name: seed.Employer.Name, Profile: seed.Employer.Profile}
		if err := s.employers.Create(ctx, employer); err != nil {
			return err
		}
	}

	s.logger.Info("seed data loaded",
		zap.Int("customers", len(customers)),
		zap.Int("employees", len(employees)),
		zap.Bool("employer", seed.Employer != nil),
	)
	return nil
}
