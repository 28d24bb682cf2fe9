package expense

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Store is the ordered, in-memory collection of expenses. Insertion order
// is preserved. A Store is meant to be owned by a single caller and is not
// safe for concurrent use.
type Store struct {
	items  []Expense
	nextID int
	now    func() time.Time
	log    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp expenses added without a date.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used to report Load and Save outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		nextID: 1,
		now:    time.Now,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates e and appends it. The stored copy gets a fresh ID, a trimmed
// category and, when e.Date is zero, the current time.
func (s *Store) Add(e Expense) (Expense, error) {
	e.Category = strings.TrimSpace(e.Category)
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	if e.Date.IsZero() {
		e.Date = s.now()
	}
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e, nil
}

// List returns a copy of the expenses in insertion order.
func (s *Store) List() []Expense {
	out := make([]Expense, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of stored expenses.
func (s *Store) Len() int {
	return len(s.items)
}

// Get returns the expense with the given ID.
func (s *Store) Get(id int) (Expense, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Expense{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.items[i], nil
}

// Update applies p to the expense with the given ID. The result is validated
// before it replaces the stored record; on error nothing changes.
func (s *Store) Update(id int, p Patch) (Expense, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Expense{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	updated := p.apply(s.items[i])
	if err := updated.Validate(); err != nil {
		return Expense{}, err
	}
	s.items[i] = updated
	return updated, nil
}

// RemoveAt deletes the expense at position index. Later positions shift down
// by one, so indexes computed before the call are stale afterwards.
func (s *Store) RemoveAt(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.items))
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

// Remove deletes the expense with the given ID.
func (s *Store) Remove(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.RemoveAt(i)
}

// Replace swaps the whole contents for items. Every item must be valid;
// otherwise the store is left unchanged. IDs are reassigned when missing or
// duplicated.
func (s *Store) Replace(items []Expense) error {
	for i, e := range items {
		e.Category = strings.TrimSpace(e.Category)
		if err := e.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	s.replace(items)
	return nil
}

// replace installs already-validated items and keeps IDs unique.
func (s *Store) replace(items []Expense) {
	out := make([]Expense, len(items))
	maxID := 0
	for _, e := range items {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	seen := make(map[int]bool, len(items))
	for i, e := range items {
		e.Category = strings.TrimSpace(e.Category)
		if e.ID <= 0 || seen[e.ID] {
			maxID++
			e.ID = maxID
		}
		seen[e.ID] = true
		out[i] = e
	}
	s.items = out
	s.nextID = maxID + 1
}

func (s *Store) indexOf(id int) int {
	for i, e := range s.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}
