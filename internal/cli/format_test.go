package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/theirongolddev/xpense/internal/expense"
)

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"0":          "$0.00",
		"12.5":       "$12.50",
		"0.005":      "$0.01",
		"1234.5":     "$1,234.50",
		"1234567.89": "$1,234,567.89",
		"-3":         "-$3.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(decimal.RequireFromString(in)), "input %s", in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "-1,234,567", FormatNumber(-1234567))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(time.Time{}))
	d := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "2025-06-01", FormatDate(d))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "café…", Truncate("cafés au lait", 5))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 expense", Plural(1, "expense"))
	assert.Equal(t, "0 expenses", Plural(0, "expense"))
	assert.Equal(t, "1,200 expenses", Plural(1200, "expense"))
}

func TestRenderExpenses(t *testing.T) {
	out := RenderExpenses([]expense.Expense{
		{ID: 3, Amount: decimal.RequireFromString("12.5"), Category: "Food",
			Date: time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local), Notes: "lunch"},
		{ID: 11, Amount: decimal.RequireFromString("1500"), Category: "Rent",
			Date: time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local), Notes: strings.Repeat("x", 80)},
	})

	for _, want := range []string{"ID", "Category", "Food", "$12.50", "$1,500.00", "2025-03-14", "lunch", "…"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, strings.Repeat("x", 80))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top border, header, separator, two rows, bottom border
	assert.Len(t, lines, 6)
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTable(Table{}))
}
