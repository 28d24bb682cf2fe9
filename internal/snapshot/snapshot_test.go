package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/xpense/internal/expense"
)

func sample() []expense.Expense {
	return []expense.Expense{
		{ID: 4, Amount: decimal.RequireFromString("12.50"), Category: "Food",
			Date: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC), Notes: "lunch"},
		{ID: 2, Amount: decimal.RequireFromString("0.005"), Category: "Fees",
			Date: time.Date(2025, 3, 15, 8, 30, 0, 250, time.UTC)},
	}
}

func TestWriteReadAll_PreservesOrderAndValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups", "snap.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	in := sample()
	taken := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Write(in, "/tmp/expenses.json", taken))

	out, err := db.ReadAll()
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.True(t, in[i].Amount.Equal(out[i].Amount), "amount %s vs %s", in[i].Amount, out[i].Amount)
		assert.Equal(t, in[i].Category, out[i].Category)
		assert.True(t, in[i].Date.Equal(out[i].Date))
		assert.Equal(t, in[i].Notes, out[i].Notes)
	}

	info, err := db.Info()
	require.NoError(t, err)
	assert.Equal(t, 2, info.Count)
	assert.True(t, info.TakenAt.Equal(taken))
	assert.Equal(t, "/tmp/expenses.json", info.Source)
}

func TestWrite_ReplacesPreviousSnapshot(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Write(sample(), "a", time.Now()))
	require.NoError(t, db.Write(sample()[:1], "b", time.Now()))

	out, err := db.ReadAll()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Food", out[0].Category)

	info, err := db.Info()
	require.NoError(t, err)
	assert.Equal(t, "b", info.Source)
}

func TestInfo_EmptySnapshot(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	defer db.Close()

	info, err := db.Info()

	require.NoError(t, err)
	assert.Equal(t, 0, info.Count)
	assert.True(t, info.TakenAt.IsZero())
}

func TestOpenExisting_Missing(t *testing.T) {
	_, err := OpenExisting(filepath.Join(t.TempDir(), "nope.db"))

	assert.Error(t, err)
}

func TestRestoreThroughStore(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Write(sample(), "x", time.Now()))

	items, err := db.ReadAll()
	require.NoError(t, err)
	s := expense.NewStore()
	require.NoError(t, s.Replace(items))

	assert.Equal(t, 2, s.Len())
	next, err := s.Add(expense.New(decimal.NewFromInt(1), "New", ""))
	require.NoError(t, err)
	assert.Equal(t, 5, next.ID)
}
