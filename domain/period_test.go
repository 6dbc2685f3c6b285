package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceworks/backend/domain"
)

func TestPeriodBounds_MidYear(t *testing.T) {
	start, end := domain.Period{Year: 2024, Month: 7}.Bounds()
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodBounds_February(t *testing.T) {
	start, end := domain.Period{Year: 2024, Month: 2}.Bounds()
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodBounds_DecemberRollsIntoNextYear(t *testing.T) {
	start, end := domain.Period{Year: 2023, Month: 12}.Bounds()
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodPrevious(t *testing.T) {
	assert.Equal(t, domain.Period{Year: 2024, Month: 6}, domain.Period{Year: 2024, Month: 7}.Previous())
	assert.Equal(t, domain.Period{Year: 2023, Month: 12}, domain.Period{Year: 2024, Month: 1}.Previous())
}

func TestParsePeriod(t *testing.T) {
	p, err := domain.ParsePeriod("2024-07")
	require.NoError(t, err)
	assert.Equal(t, domain.Period{Year: 2024, Month: 7}, p)

	_, err = domain.ParsePeriod("07/2024")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestPeriodFolderPath(t *testing.T) {
	assert.Equal(t, "customers/2024/07", domain.Period{Year: 2024, Month: 7}.FolderPath("customers"))
	assert.Equal(t, "customers/2023/12", domain.Period{Year: 2023, Month: 12}.FolderPath("customers"))
}

func TestPeriodMonthName(t *testing.T) {
	assert.Equal(t, "Juli", domain.Period{Year: 2024, Month: 7}.MonthName())
	assert.Equal(t, "März", domain.Period{Year: 2024, Month: 3}.MonthName())
	assert.Equal(t, "", domain.Period{Year: 2024, Month: 13}.MonthName())
}
