package tui

import (
	"testing"
	"time"

	"github.com/theirongolddev/xpense/internal/expense"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffPatch(t *testing.T) {
	e := expense.Expense{
		ID:       3,
		Amount:   decimal.RequireFromString("12.50"),
		Category: "Food",
		Date:     time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local),
		Notes:    "lunch",
	}

	tests := []struct {
		name                          string
		amount, category, notes, date string
		check                         func(t *testing.T, p expense.Patch)
	}{
		{
			name: "unchanged", amount: "12.5", category: "Food", notes: "lunch", date: "2025-03-14",
			check: func(t *testing.T, p expense.Patch) { assert.True(t, p.IsEmpty()) },
		},
		{
			name: "amount only", amount: "13,00", category: "Food", notes: "lunch", date: "2025-03-14",
			check: func(t *testing.T, p expense.Patch) {
				require.NotNil(t, p.Amount)
				assert.True(t, p.Amount.Equal(decimal.NewFromInt(13)))
				assert.Nil(t, p.Category)
				assert.Nil(t, p.Date)
			},
		},
		{
			name: "category and notes trimmed", amount: "12.50", category: " Dining ", notes: "", date: "2025-03-14",
			check: func(t *testing.T, p expense.Patch) {
				require.NotNil(t, p.Category)
				assert.Equal(t, "Dining", *p.Category)
				require.NotNil(t, p.Notes)
				assert.Equal(t, "", *p.Notes)
			},
		},
		{
			name: "date", amount: "12.50", category: "Food", notes: "lunch", date: "2025-03-01",
			check: func(t *testing.T, p expense.Patch) {
				require.NotNil(t, p.Date)
				assert.Equal(t, 1, p.Date.Day())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := diffPatch(e, tt.amount, tt.category, tt.notes, tt.date)
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestDiffPatch_BadInput(t *testing.T) {
	e := expense.Expense{Amount: decimal.NewFromInt(1), Category: "A"}

	_, err := diffPatch(e, "abc", "A", "", "2025-01-01")
	assert.Error(t, err)

	_, err = diffPatch(e, "1", "A", "", "01/01/2025")
	assert.Error(t, err)
}
