// Package expense defines the expense record and the in-memory store that
// validates, orders, and persists expenses to a JSON file.
package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the short date form used when rendering an expense.
const DateLayout = "2006-01-02"

// Expense is one recorded spending event.
type Expense struct {
	ID       int
	Amount   decimal.Decimal
	Category string
	Date     time.Time
	Notes    string
}

// New builds an expense without validating it. Validation happens when the
// expense is added to a Store.
func New(amount decimal.Decimal, category, notes string) Expense {
	return Expense{
		Amount:   amount,
		Category: category,
		Notes:    notes,
	}
}

// String renders the expense as "{date} - {category}: ${amount} ({notes})".
func (e Expense) String() string {
	return fmt.Sprintf("%s - %s: $%s (%s)",
		e.Date.Format(DateLayout), e.Category, e.Amount.StringFixed(2), e.Notes)
}

// Validate reports the first rule the expense breaks.
func (e Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &ValidationError{Field: "category", Reason: "cannot be empty"}
	}
	return nil
}

// Patch holds the fields to change on an existing expense. Nil fields are
// left as they are.
type Patch struct {
	Amount   *decimal.Decimal
	Category *string
	Date     *time.Time
	Notes    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Amount == nil && p.Category == nil && p.Date == nil && p.Notes == nil
}

func (p Patch) apply(e Expense) Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = strings.TrimSpace(*p.Category)
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid expense")
	// ErrIndexOutOfRange is returned by RemoveAt for a position outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotFound is returned when no expense has the requested ID.
	ErrNotFound = errors.New("expense not found")
)

// ValidationError describes a rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ParseAmount parses a user-entered amount. Both "12.50" and "12,50" are
// accepted; thousands separators are not. Positivity is checked by
// Validate, not here.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "is required"}
	}
	if strings.Count(s, ",")+strings.Count(s, ".") > 1 {
		return decimal.Zero, &ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("%q has more than one separator; write it without thousands separators, e.g. 1234.50", s),
		}
	}
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return d, nil
}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp. Calendar
// dates are interpreted in the local time zone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not YYYY-MM-DD", s)}
}
