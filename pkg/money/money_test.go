package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invoiceworks/backend/pkg/money"
)

func TestMulRate_WholeHours(t *testing.T) {
	assert.Equal(t, int64(25000), money.MulRate(5000, 5))
	assert.Equal(t, int64(0), money.MulRate(5000, 0))
}

func TestMulRate_FractionalHours(t *testing.T) {
	assert.Equal(t, int64(37500), money.MulRate(5000, 7.5))
	assert.Equal(t, int64(1250), money.MulRate(5000, 0.25))
}

func TestMulRate_RoundsHalfUpAtCents(t *testing.T) {
	// 3333 cents/h * 7.5h = 24997.5 cents
	assert.Equal(t, int64(24998), money.MulRate(3333, 7.5))
}

func TestVAT_ExactAndRounded(t *testing.T) {
	assert.Equal(t, int64(8550), money.VAT(45000))
	// 19% of 1 cent rounds to 0
	assert.Equal(t, int64(0), money.VAT(1))
	// 19% of 3 cents = 0.57 -> 1
	assert.Equal(t, int64(1), money.VAT(3))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "450.00 €", money.Format(45000))
	assert.Equal(t, "0.05 €", money.Format(5))
	assert.Equal(t, "85.50 €", money.Format(8550))
	assert.Equal(t, "-3.20 €", money.Format(-320))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "5", money.FormatHours(5))
	assert.Equal(t, "7.5", money.FormatHours(7.5))
	assert.Equal(t, "0.25", money.FormatHours(0.25))
	assert.Equal(t, "0", money.FormatHours(0))
}
