package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/expense"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config and data dirs at temp dirs and returns an expense
// file path inside them.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(config.EnvFile, "")
	t.Setenv(config.EnvLogLevel, "")
	return filepath.Join(t.TempDir(), "expenses.json")
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := execute(t, args...)
	require.NoError(t, err, "stderr: %s", stderr)
	return out
}

func loadFile(t *testing.T, path string) *expense.Store {
	t.Helper()
	s := expense.NewStore()
	res := s.Load(path)
	require.NotEqual(t, expense.LoadFailed, res.Status, "%v", res.Err)
	return s
}

func TestAddThenList(t *testing.T) {
	path := isolate(t)

	out := mustExecute(t, "--file", path, "add", "--amount", "12.50", "--category", "Food", "--notes", "lunch")
	assert.Contains(t, out, "Expense added successfully! #1")

	mustExecute(t, "-f", path, "add", "-a", "900", "-c", "Rent", "--date", "2025-03-01")

	out = mustExecute(t, "-f", path, "list")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "$12.50")
	assert.Contains(t, out, "$900.00")
	assert.Contains(t, out, "2025-03-01")
	assert.Contains(t, out, "Total $912.50 across 2 expenses")

	s := loadFile(t, path)
	require.Equal(t, 2, s.Len())
	first, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "lunch", first.Notes)
}

func TestListEmpty(t *testing.T) {
	path := isolate(t)

	out := mustExecute(t, "-f", path, "list")

	assert.Contains(t, out, "No expenses recorded yet.")
}

func TestAddRejectsInvalidInput(t *testing.T) {
	path := isolate(t)

	_, _, err := execute(t, "-f", path, "add", "--category", "Food")
	assert.ErrorContains(t, err, "--amount is required")

	_, _, err = execute(t, "-f", path, "add", "--amount", "0", "--category", "Food")
	assert.ErrorIs(t, err, expense.ErrValidation)

	_, _, err = execute(t, "-f", path, "add", "--amount", "abc", "--category", "Food")
	assert.ErrorContains(t, err, "invalid amount")

	assert.NoFileExists(t, path)
}

func TestEditWithFlags(t *testing.T) {
	path := isolate(t)
	mustExecute(t, "-f", path, "add", "-a", "12.50", "-c", "Food", "-n", "lunch")

	out := mustExecute(t, "-f", path, "edit", "1", "--category", "Dining", "--notes", "")
	assert.Contains(t, out, "Expense updated successfully! #1")

	e, err := loadFile(t, path).Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Dining", e.Category)
	assert.Equal(t, "", e.Notes)
	assert.Equal(t, "12.5", e.Amount.String())
}

func TestEditRejectsInvalidPatch(t *testing.T) {
	path := isolate(t)
	mustExecute(t, "-f", path, "add", "-a", "12.50", "-c", "Food")

	_, _, err := execute(t, "-f", path, "edit", "1", "--category", "  ")
	assert.ErrorIs(t, err, expense.ErrValidation)

	_, _, err = execute(t, "-f", path, "edit", "7", "--amount", "3")
	assert.ErrorIs(t, err, expense.ErrNotFound)

	_, _, err = execute(t, "-f", path, "edit", "abc", "--amount", "3")
	assert.ErrorContains(t, err, "invalid expense ID")

	e, err := loadFile(t, path).Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Food", e.Category)
}

func TestDeleteByID(t *testing.T) {
	path := isolate(t)
	mustExecute(t, "-f", path, "add", "-a", "1", "-c", "A")
	mustExecute(t, "-f", path, "add", "-a", "2", "-c", "B")
	mustExecute(t, "-f", path, "add", "-a", "3", "-c", "C")

	out := mustExecute(t, "-f", path, "delete", "2", "--yes")
	assert.Contains(t, out, "Expense deleted successfully!")

	// IDs stay stable, so deleting 3 next still hits C.
	mustExecute(t, "-f", path, "rm", "3", "-y")

	s := loadFile(t, path)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "A", s.List()[0].Category)

	_, _, err := execute(t, "-f", path, "delete", "2", "--yes")
	assert.ErrorIs(t, err, expense.ErrNotFound)
}

func TestCorruptFileIsNotOverwritten(t *testing.T) {
	path := isolate(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, stderr, err := execute(t, "-f", path, "add", "-a", "1", "-c", "A")

	assert.ErrorContains(t, err, "refusing to overwrite")
	assert.Contains(t, stderr, "Failed to load expenses")
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data))
}

func TestBackupRestore(t *testing.T) {
	path := isolate(t)
	db := filepath.Join(t.TempDir(), "snap.db")
	mustExecute(t, "-f", path, "add", "-a", "12.50", "-c", "Food")
	mustExecute(t, "-f", path, "add", "-a", "900", "-c", "Rent")

	out := mustExecute(t, "-f", path, "backup", db)
	assert.Contains(t, out, "Backed up 2 expenses")

	mustExecute(t, "-f", path, "delete", "1", "--yes")
	require.Equal(t, 1, loadFile(t, path).Len())

	out = mustExecute(t, "-f", path, "restore", db, "--yes")
	assert.Contains(t, out, "Restored 2 expenses")

	s := loadFile(t, path)
	require.Equal(t, 2, s.Len())
	food, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Food", food.Category)
}

func TestRestoreMissingSnapshot(t *testing.T) {
	path := isolate(t)

	_, _, err := execute(t, "-f", path, "restore", filepath.Join(t.TempDir(), "none.db"), "--yes")

	assert.Error(t, err)
}

func TestQuietSuppressesStatus(t *testing.T) {
	path := isolate(t)

	_, stderr, err := execute(t, "-f", path, "list")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Data file: "+path)
	assert.Contains(t, stderr, "No expense file found, starting fresh.")

	_, stderr, err = execute(t, "-q", "-f", path, "list")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestExpenseFileFromEnv(t *testing.T) {
	path := isolate(t)
	t.Setenv(config.EnvFile, path)

	mustExecute(t, "add", "-a", "3", "-c", "Env")

	assert.Equal(t, 1, loadFile(t, path).Len())
}

func TestConfigShowsSources(t *testing.T) {
	path := isolate(t)

	out := mustExecute(t, "-f", path, "config")

	assert.Contains(t, out, "Status: using defaults")
	assert.Contains(t, out, "Expense file: "+path+" (from --file)")
	assert.Contains(t, out, "Confirm deletes:  true")
}

func TestBadLogLevel(t *testing.T) {
	path := isolate(t)
	t.Setenv(config.EnvLogLevel, "loud")

	_, _, err := execute(t, "-f", path, "list")

	assert.ErrorContains(t, err, "unknown log level")
}
