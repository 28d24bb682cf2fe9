package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	assert.Equal(t, []int{34, 33, 33}, LayoutRow(100, 3))
	assert.Nil(t, LayoutRow(100, 0))
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Expenses", Value: "3"},
		{Label: "Total", Value: "$919.75"},
		{Label: "Top category", Value: "Rent", Note: "$900.00"},
	}, 90)

	lines := strings.Split(row, "\n")
	require.NotEmpty(t, lines)
	for i, line := range lines {
		assert.Equal(t, 90, lipgloss.Width(line), "line %d", i)
	}
	assert.Contains(t, row, "$919.75")
}

func TestStatusBarFillsWidth(t *testing.T) {
	bar := RenderStatusBar(60, " [q]uit", "3 expenses ")

	assert.Equal(t, 60, lipgloss.Width(bar))
	assert.Contains(t, bar, "3 expenses")
}
