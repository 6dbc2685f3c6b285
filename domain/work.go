package domain

import "time"

// WorkRecord represents one day's billable hours for one employee/customer pair.
type WorkRecord struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	EmployeeID int64     `json:"employee_id"`
	Date       time.Time `json:"date"`
	Hours      float64   `json:"hours"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Day normalizes the record date to a calendar day in UTC. Grouping and
// range filtering always go through this so wall-clock noise in stored
// timestamps cannot split one day into two lines.
func (w WorkRecord) Day() time.Time {
	return time.Date(w.Date.Year(), w.Date.Month(), w.Date.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate checks the record invariants.
func (w WorkRecord) Validate() error {
	if w.Hours < 0 {
		return WrapError(ErrCodeInvalid, "work record hours must be non-negative", nil)
	}
	if w.Date.IsZero() {
		return WrapError(ErrCodeInvalid, "work record date is required", nil)
	}
	return nil
}

// Employee is a minimal work-attribution entity.
type Employee struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
