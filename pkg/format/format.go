package format

import (
	"fmt"
	"math"
	"strings"
)

// Display formatters for dashboard and report values. The platform renders
// all monetary values in USD; rounding conventions here are relied on by the
// report screens, so keep them stable.

// Currency returns an amount as "$1,234.56". Negative amounts render as
// "-$1,234.56".
func Currency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(whole), cents)
}

// Percentage returns a signed percentage with one decimal place:
// "+4.2%", "-3.1%". Zero renders unsigned as "0.0%".
func Percentage(value float64) string {
	rounded := math.Round(value*10) / 10
	if rounded == 0 {
		return "0.0%"
	}
	if rounded > 0 {
		return fmt.Sprintf("+%.1f%%", rounded)
	}
	return fmt.Sprintf("%.1f%%", rounded)
}

// Count returns an integer with thousands separators: "12,345".
func Count(n int) string {
	if n < 0 {
		return "-" + groupThousands(int64(-n))
	}
	return groupThousands(int64(n))
}

// groupThousands inserts commas every three digits.
func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
