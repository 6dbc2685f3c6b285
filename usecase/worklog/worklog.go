// Package worklog records billable work entries.
package worklog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
)

// DefaultHours is billed per working day when no explicit hour count is given.
const DefaultHours = 8.0

// UseCase writes work records on behalf of the CLI.
type UseCase struct {
	works     repository.WorkRepository
	employees repository.EmployeeRepository
	logger    *zap.Logger
}

// New builds the worklog use case.
func New(works repository.WorkRepository, employees repository.EmployeeRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{works: works, employees: employees, logger: logger}
}

// AddWorkingDay records one day of work by one employee for each of the
// given customers.
func (uc *UseCase) AddWorkingDay(ctx context.Context, employeeID int64, customerIDs []int64, date time.Time, hours float64) error {
	if len(customerIDs) == 0 {
		return domain.WrapError(domain.ErrCodeInvalid, "at least one customer is required", nil)
	}
	if hours <= 0 {
		hours = DefaultHours
	}

	if _, err := uc.employees.GetByID(ctx, employeeID); err != nil {
		return err
	}

	records := make([]domain.WorkRecord, 0, len(customerIDs))
	for _, customerID := range customerIDs {
		rec := domain.WorkRecord{
			CustomerID: customerID,
			EmployeeID: employeeID,
			Date:       date,
			Hours:      hours,
		}
		if err := rec.Validate(); err != nil {
			return err
		}
		records = append(records, rec)
	}

	if err := uc.works.CreateMany(ctx, records); err != nil {
		return err
	}

	uc.logger.Info("working day recorded",
		zap.Int64("employee_id", employeeID),
		zap.Int("customers", len(customerIDs)),
		zap.Time("date", date),
		zap.Float64("hours", hours),
	)
	return nil
}
