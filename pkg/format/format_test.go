package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", Currency(0))
	assert.Equal(t, "$15.50", Currency(15.5))
	assert.Equal(t, "$1,234.56", Currency(1234.56))
	assert.Equal(t, "$1,234,567.89", Currency(1234567.89))
	assert.Equal(t, "-$42.10", Currency(-42.1))
	// Rounding at the cent boundary must carry into the whole part
	assert.Equal(t, "$2.00", Currency(1.999))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, "0.0%", Percentage(0))
	assert.Equal(t, "+4.2%", Percentage(4.2))
	assert.Equal(t, "-3.1%", Percentage(-3.1))
	assert.Equal(t, "+100.0%", Percentage(100))
	// Values rounding to zero lose their sign
	assert.Equal(t, "0.0%", Percentage(0.04))
	assert.Equal(t, "0.0%", Percentage(-0.04))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "999", Count(999))
	assert.Equal(t, "1,000", Count(1000))
	assert.Equal(t, "12,345", Count(12345))
	assert.Equal(t, "1,234,567", Count(1234567))
	assert.Equal(t, "-5,000", Count(-5000))
}
