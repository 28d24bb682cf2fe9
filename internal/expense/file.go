package expense

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LoadStatus tells the caller what Load found at the path.
type LoadStatus int

const (
	// LoadOK means at least one valid record replaced the store contents.
	LoadOK LoadStatus = iota
	// LoadMissing means the file does not exist.
	LoadMissing
	// LoadEmpty means the file holds only whitespace.
	LoadEmpty
	// LoadNoRecords means the file parsed but held no valid records.
	LoadNoRecords
	// LoadFailed means the file could not be read or is not valid JSON.
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "loaded"
	case LoadMissing:
		return "missing"
	case LoadEmpty:
		return "empty"
	case LoadNoRecords:
		return "no valid expenses"
	case LoadFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadResult reports the outcome of Load.
type LoadResult struct {
	Path    string
	Status  LoadStatus
	Loaded  int
	Skipped int // records dropped because they failed validation
	Err     error
}

// Message is a one-line, human-readable summary of the result.
func (r LoadResult) Message() string {
	switch r.Status {
	case LoadOK:
		if r.Skipped > 0 {
			return fmt.Sprintf("Loaded %d expenses (%d invalid skipped).", r.Loaded, r.Skipped)
		}
		return fmt.Sprintf("Loaded %d expenses.", r.Loaded)
	case LoadMissing:
		return "No expense file found, starting fresh."
	case LoadEmpty:
		return "Expense file is empty."
	case LoadNoRecords:
		return "No valid expenses found in file."
	default:
		return fmt.Sprintf("Failed to load expenses: %v", r.Err)
	}
}

// SaveResult reports the outcome of Save.
type SaveResult struct {
	Path  string
	Saved int // records written; zero when Err is set
	Err   error
}

// OK reports whether the file was written.
func (r SaveResult) OK() bool { return r.Err == nil }

// Message is a one-line, human-readable summary of the result.
func (r SaveResult) Message() string {
	if r.Err != nil {
		return fmt.Sprintf("Failed to save expenses: %v", r.Err)
	}
	return "Expenses saved successfully."
}

// record is the on-disk shape of an expense.
type record struct {
	ID       int         `json:"ID,omitempty"`
	Amount   json.Number `json:"Amount"`
	Category string      `json:"Category"`
	Date     fileTime    `json:"Date"`
	Notes    string      `json:"Notes"`
}

// Save writes every expense to path as indented JSON, creating the parent
// directory when needed. Errors are logged and returned in the result; the
// store itself is never modified.
func (s *Store) Save(path string) SaveResult {
	res := SaveResult{Path: path}
	if err := writeFile(path, s.items); err != nil {
		res.Err = err
		s.log.Error("save expenses", "path", path, "error", err)
		return res
	}
	res.Saved = len(s.items)
	s.log.Info("saved expenses", "path", path, "count", res.Saved)
	return res
}

// Load reads path and replaces the store contents when the file yields at
// least one valid record. A missing file, an empty file, an empty list, a
// list of only invalid records and a malformed file all leave the store as
// it was.
func (s *Store) Load(path string) LoadResult {
	res := LoadResult{Path: path}

	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			res.Status = LoadMissing
			s.log.Info("expense file not found", "path", path)
			return res
		}
		res.Status, res.Err = LoadFailed, fmt.Errorf("reading %s: %w", path, err)
		s.log.Error("load expenses", "path", path, "error", res.Err)
		return res
	}

	if len(bytes.TrimSpace(data)) == 0 {
		res.Status = LoadEmpty
		s.log.Info("expense file is empty", "path", path)
		return res
	}

	items, skipped, err := decode(data)
	if err != nil {
		res.Status, res.Err = LoadFailed, fmt.Errorf("parsing %s: %w", path, err)
		s.log.Error("load expenses", "path", path, "error", res.Err)
		return res
	}
	res.Skipped = skipped
	if skipped > 0 {
		s.log.Warn("skipped invalid expenses", "path", path, "count", skipped)
	}

	if len(items) == 0 {
		res.Status = LoadNoRecords
		s.log.Info("no valid expenses found", "path", path)
		return res
	}

	s.replace(items)
	res.Status, res.Loaded = LoadOK, len(items)
	s.log.Info("loaded expenses", "path", path, "count", res.Loaded)
	return res
}

func decode(data []byte) ([]Expense, int, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, 0, err
	}

	items := make([]Expense, 0, len(recs))
	skipped := 0
	for _, r := range recs {
		amount, err := decimal.NewFromString(r.Amount.String())
		if err != nil {
			skipped++
			continue
		}
		e := Expense{
			ID:       r.ID,
			Amount:   amount,
			Category: strings.TrimSpace(r.Category),
			Date:     time.Time(r.Date),
			Notes:    r.Notes,
		}
		if e.Validate() != nil {
			skipped++
			continue
		}
		items = append(items, e)
	}
	return items, skipped, nil
}

func encode(items []Expense) ([]byte, error) {
	recs := make([]record, len(items))
	for i, e := range items {
		recs[i] = record{
			ID:       e.ID,
			Amount:   json.Number(e.Amount.String()),
			Category: e.Category,
			Date:     fileTime(e.Date),
			Notes:    e.Notes,
		}
	}
	return json.MarshalIndent(recs, "", "  ")
}

// writeFile replaces path atomically: the JSON goes to a temp file in the
// same directory which is then renamed over the target.
func writeFile(path string, items []Expense) error {
	data, err := encode(items)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// fileTime is written as RFC 3339 and also reads timestamps without a zone
// offset or with seven fractional digits, as older files contain.
type fileTime time.Time

var fileTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t fileTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

func (t *fileTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*t = fileTime{}
		return nil
	}
	for _, layout := range fileTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*t = fileTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}
