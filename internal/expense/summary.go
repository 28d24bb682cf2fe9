package expense

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// Summary aggregates a list of expenses.
type Summary struct {
	Count      int
	Total      decimal.Decimal
	Categories []CategoryTotal // largest total first
}

// Top returns the category with the largest total, if any.
func (s Summary) Top() (CategoryTotal, bool) {
	if len(s.Categories) == 0 {
		return CategoryTotal{}, false
	}
	return s.Categories[0], true
}

// Summarize totals items overall and per category. Categories are grouped
// case-insensitively under the first spelling seen.
func Summarize(items []Expense) Summary {
	sum := Summary{Count: len(items), Total: decimal.Zero}
	idx := make(map[string]int)

	for _, e := range items {
		sum.Total = sum.Total.Add(e.Amount)

		k := strings.ToLower(e.Category)
		i, ok := idx[k]
		if !ok {
			i = len(sum.Categories)
			idx[k] = i
			sum.Categories = append(sum.Categories, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		sum.Categories[i].Total = sum.Categories[i].Total.Add(e.Amount)
		sum.Categories[i].Count++
	}

	sort.SliceStable(sum.Categories, func(i, j int) bool {
		return sum.Categories[i].Total.GreaterThan(sum.Categories[j].Total)
	})
	return sum
}
