package domain

import (
	"fmt"
	"time"
)

// Period is a calendar month, the unit of invoice generation.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PeriodOf extracts the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// ParsePeriod parses the CLI form "2006-01".
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, WrapError(ErrCodeInvalid, fmt.Sprintf("invalid month %q, want YYYY-MM", s), err)
	}
	return PeriodOf(t), nil
}

// Previous returns the month before p, rolling over year boundaries.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Bounds returns the inclusive [first day, last day] range of the month.
// The end bound is the first day of the next month minus one day.
func (p Period) Bounds() (start, end time.Time) {
	start = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end
}

// FolderPath is the Drive hierarchy the rendered documents land in,
// e.g. "customers/2024/07".
func (p Period) FolderPath(category string) string {
	return fmt.Sprintf("%s/%d/%02d", category, p.Year, p.Month)
}

func (p Period) String() string {
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

// monthNames holds the localized month names the invoice templates expect.
var monthNames = [13]string{
	"",
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// MonthName returns the localized name of the period's month.
func (p Period) MonthName() string {
	if p.Month < 1 || p.Month > 12 {
		return ""
	}
	return monthNames[p.Month]
}
