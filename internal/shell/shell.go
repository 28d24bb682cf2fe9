// Package shell runs the interactive expense menu: add, view, edit, delete
// and exit. Input comes from a Prompter, so the loop itself has no terminal
// dependencies.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/expense"
)

// Action is a top-level menu choice.
type Action string

const (
	ActionAdd    Action = "add"
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionExit   Action = "exit"
)

// Field is an editable expense field.
type Field string

const (
	FieldAmount   Field = "amount"
	FieldCategory Field = "category"
	FieldNotes    Field = "notes"
	FieldDate     Field = "date"
)

// ErrAborted is returned by a Prompter when the user backs out of a prompt.
var ErrAborted = errors.New("aborted")

// Draft is the raw text of a new expense as entered by the user.
type Draft struct {
	Amount   string
	Category string
	Notes    string
}

// Prompter collects input for the menu loop.
type Prompter interface {
	Menu() (Action, error)
	NewExpense(d Draft) (Draft, error)
	Select(title string, items []expense.Expense) (int, error)
	EditField(e expense.Expense) (Field, error)
	Input(title, initial string, validate func(string) error) (string, error)
	Confirm(question string) (bool, error)
}

// Options tune the loop.
type Options struct {
	ConfirmDeletes  bool
	DefaultCategory string
	// ProtectFile marks a file that failed to load. Exit leaves it alone
	// unless the session changed something, and warns before overwriting.
	ProtectFile bool
	Logger      *slog.Logger
}

// Shell drives one Store through a Prompter.
type Shell struct {
	store  *expense.Store
	path   string
	prompt Prompter
	out    io.Writer
	opts   Options
	log    *slog.Logger

	changed bool
}

// New returns a shell that edits store and saves it to path on exit.
func New(store *expense.Store, path string, p Prompter, out io.Writer, opts Options) *Shell {
	l := opts.Logger
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Shell{store: store, path: path, prompt: p, out: out, opts: opts, log: l}
}

// Run shows the menu until the user exits or ctx is canceled, then saves.
// It returns an error only when the prompter fails; save failures are
// reported to the user.
func (s *Shell) Run(ctx context.Context) error {
	s.println(cli.RenderTitle("EXPENSE TRACKER"))

	for {
		if err := ctx.Err(); err != nil {
			s.exit()
			return err
		}

		action, err := s.prompt.Menu()
		if errors.Is(err, ErrAborted) {
			action = ActionExit
		} else if err != nil {
			s.exit()
			return fmt.Errorf("reading menu choice: %w", err)
		}

		s.log.Debug("menu choice", "action", action)
		switch action {
		case ActionAdd:
			err = s.add()
		case ActionView:
			s.view()
		case ActionEdit:
			err = s.edit()
		case ActionDelete:
			err = s.remove()
		case ActionExit:
			s.exit()
			return nil
		default:
			s.println(cli.Warn("Invalid choice. Please select an option from the menu."))
		}

		if errors.Is(err, ErrAborted) {
			s.println(cli.Muted("Canceled. Returning to the menu."))
		} else if err != nil {
			s.exit()
			return err
		}
	}
}

func (s *Shell) exit() {
	if s.opts.ProtectFile {
		if !s.changed {
			s.println(cli.Warn(fmt.Sprintf("%s failed to load; leaving it untouched.", s.path)))
			s.log.Info("skipped save of unreadable file", "path", s.path)
			return
		}
		s.println(cli.Warn(fmt.Sprintf("Overwriting %s, which failed to load.", s.path)))
	}
	s.println(cli.Muted("Saving expenses and exiting..."))
	res := s.store.Save(s.path)
	if res.OK() {
		s.println(cli.Success(res.Message()))
	} else {
		s.println(cli.Error(res.Message()))
	}
}

func (s *Shell) add() error {
	d, err := s.prompt.NewExpense(Draft{Category: s.opts.DefaultCategory})
	if err != nil {
		return err
	}

	amount, err := expense.ParseAmount(d.Amount)
	if err != nil {
		s.println(cli.Error(fmt.Sprintf("Invalid amount: %v", err)))
		return nil
	}

	added, err := s.store.Add(expense.New(amount, d.Category, strings.TrimSpace(d.Notes)))
	var verr *expense.ValidationError
	if errors.As(err, &verr) {
		s.println(cli.Error(fmt.Sprintf("Expense not added: %v.", verr)))
		return nil
	} else if err != nil {
		return err
	}

	s.changed = true
	s.println(cli.Success("Expense added successfully!"))
	s.log.Debug("added expense", "id", added.ID)
	return nil
}

func (s *Shell) view() {
	items := s.store.List()
	if len(items) == 0 {
		s.println(cli.Muted("No expenses recorded yet."))
		return
	}
	s.println("")
	s.println(cli.RenderExpenses(items))
	s.println(cli.Muted(cli.Plural(len(items), "expense")))
}

// pick asks the user to choose an expense and returns its ID, or 0 when
// there is nothing to choose from.
func (s *Shell) pick(title string) (int, error) {
	items := s.store.List()
	if len(items) == 0 {
		s.println(cli.Muted("No expenses available."))
		return 0, nil
	}
	return s.prompt.Select(title, items)
}

func (s *Shell) edit() error {
	id, err := s.pick("Select an expense to edit")
	if err != nil || id == 0 {
		return err
	}
	current, err := s.store.Get(id)
	if err != nil {
		s.println(cli.Error(err.Error()))
		return nil
	}

	field, err := s.prompt.EditField(current)
	if err != nil {
		return err
	}

	patch, label, err := s.askPatch(field, current)
	if errors.Is(err, errInvalidInput) {
		s.println(cli.Error(fmt.Sprintf("Invalid %s: %v", field, errors.Unwrap(err))))
		return nil
	} else if err != nil {
		return err
	}

	ok, err := s.prompt.Confirm(fmt.Sprintf("Are you sure you want to update the %s to %s?", field, label))
	if err != nil {
		return err
	}
	if !ok {
		s.println(cli.Muted(capitalize(string(field)) + " update canceled."))
		return nil
	}

	if _, err := s.store.Update(id, patch); err != nil {
		if errors.Is(err, expense.ErrValidation) || errors.Is(err, expense.ErrNotFound) {
			s.println(cli.Error(fmt.Sprintf("Update rejected: %v.", err)))
			return nil
		}
		return err
	}
	s.changed = true
	s.println(cli.Success(capitalize(string(field)) + " updated successfully!"))
	return nil
}

// askPatch prompts for the new value of field and returns the patch with a
// display label for the confirmation question.
func (s *Shell) askPatch(field Field, current expense.Expense) (expense.Patch, string, error) {
	var p expense.Patch
	switch field {
	case FieldAmount:
		v, err := s.ask("Enter new amount", current.Amount.String(), validAmount)
		if err != nil {
			return p, "", err
		}
		amount, _ := expense.ParseAmount(v)
		p.Amount = &amount
		return p, cli.FormatAmount(amount), nil
	case FieldCategory:
		v, err := s.ask("Enter new category", current.Category, validCategory)
		if err != nil {
			return p, "", err
		}
		v = strings.TrimSpace(v)
		p.Category = &v
		return p, fmt.Sprintf("'%s'", v), nil
	case FieldDate:
		v, err := s.ask("Enter new date (YYYY-MM-DD)", cli.FormatDate(current.Date), validDate)
		if err != nil {
			return p, "", err
		}
		d, _ := expense.ParseDate(v)
		p.Date = &d
		return p, cli.FormatDate(d), nil
	default:
		v, err := s.ask("Enter new notes", current.Notes, nil)
		if err != nil {
			return p, "", err
		}
		v = strings.TrimSpace(v)
		p.Notes = &v
		return p, fmt.Sprintf("'%s'", v), nil
	}
}

// errInvalidInput marks a value the field validator rejected.
var errInvalidInput = errors.New("invalid input")

// ask reads one value and checks it with validate even when the prompter
// already did.
func (s *Shell) ask(title, initial string, validate func(string) error) (string, error) {
	v, err := s.prompt.Input(title, initial, validate)
	if err != nil {
		return "", err
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return "", fmt.Errorf("%w: %v", errInvalidInput, err)
		}
	}
	return v, nil
}

func (s *Shell) remove() error {
	id, err := s.pick("Select an expense to delete")
	if err != nil || id == 0 {
		return err
	}
	e, err := s.store.Get(id)
	if err != nil {
		s.println(cli.Error(err.Error()))
		return nil
	}

	if s.opts.ConfirmDeletes {
		ok, err := s.prompt.Confirm(fmt.Sprintf("Are you sure you want to delete this expense? %s", e))
		if err != nil {
			return err
		}
		if !ok {
			s.println(cli.Muted("Deletion canceled."))
			return nil
		}
	}

	if err := s.store.Remove(id); err != nil {
		s.println(cli.Error(err.Error()))
		return nil
	}
	s.changed = true
	s.println(cli.Success("Expense deleted successfully!"))
	return nil
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func validAmount(v string) error {
	amount, err := expense.ParseAmount(v)
	if err != nil {
		return err
	}
	if !amount.GreaterThan(decimal.Zero) {
		return errors.New("enter a positive number")
	}
	return nil
}

func validCategory(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("category cannot be empty")
	}
	return nil
}

func validDate(v string) error {
	_, err := expense.ParseDate(v)
	return err
}

// Validators exposes the field validators for prompters that check input
// while it is typed.
var Validators = struct {
	Amount   func(string) error
	Category func(string) error
	Date     func(string) error
}{validAmount, validCategory, validDate}
