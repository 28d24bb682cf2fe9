package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/shell"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// Forms prompts with huh forms. It implements shell.Prompter.
type Forms struct {
	in  io.Reader
	out io.Writer
}

var _ shell.Prompter = (*Forms)(nil)

// NewForms returns a prompter reading from in and drawing to out. Nil
// streams fall back to the terminal.
func NewForms(in io.Reader, out io.Writer) *Forms {
	return &Forms{in: in, out: out}
}

func (f *Forms) run(groups ...*huh.Group) error {
	form := huh.NewForm(groups...).WithTheme(theme.Active.Form())
	if f.in != nil {
		form = form.WithInput(f.in)
	}
	if f.out != nil {
		form = form.WithOutput(f.out)
	}
	err := form.Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return shell.ErrAborted
	}
	return err
}

// Menu asks for the next top-level action.
func (f *Forms) Menu() (shell.Action, error) {
	var action shell.Action
	err := f.run(huh.NewGroup(
		huh.NewSelect[shell.Action]().
			Title("What would you like to do?").
			Options(
				huh.NewOption("Add Expense", shell.ActionAdd),
				huh.NewOption("View All Expenses", shell.ActionView),
				huh.NewOption("Edit Expense", shell.ActionEdit),
				huh.NewOption("Delete Expense", shell.ActionDelete),
				huh.NewOption("Exit", shell.ActionExit),
			).
			Value(&action),
	))
	return action, err
}

// NewExpense collects the fields of a new expense, starting from d.
func (f *Forms) NewExpense(d shell.Draft) (shell.Draft, error) {
	err := f.run(huh.NewGroup(
		huh.NewInput().
			Title("Amount").
			Placeholder("12.50").
			Validate(shell.Validators.Amount).
			Value(&d.Amount),
		huh.NewInput().
			Title("Category").
			Placeholder("Food").
			Validate(shell.Validators.Category).
			Value(&d.Category),
		huh.NewInput().
			Title("Notes").
			Description("Optional").
			Value(&d.Notes),
	).Title("New expense"))
	return d, err
}

// Select lists items and returns the ID of the chosen one.
func (f *Forms) Select(title string, items []expense.Expense) (int, error) {
	opts := make([]huh.Option[int], 0, len(items))
	for _, e := range items {
		opts = append(opts, huh.NewOption(e.String(), e.ID))
	}

	var id int
	err := f.run(huh.NewGroup(
		huh.NewSelect[int]().
			Title(title).
			Options(opts...).
			Height(min(len(opts)+2, 12)).
			Value(&id),
	))
	return id, err
}

// EditField asks which field of e to change.
func (f *Forms) EditField(e expense.Expense) (shell.Field, error) {
	var field shell.Field
	err := f.run(huh.NewGroup(
		huh.NewSelect[shell.Field]().
			Title("What would you like to edit?").
			Description(e.String()).
			Options(
				huh.NewOption("Amount", shell.FieldAmount),
				huh.NewOption("Category", shell.FieldCategory),
				huh.NewOption("Notes", shell.FieldNotes),
				huh.NewOption("Date", shell.FieldDate),
			).
			Value(&field),
	))
	return field, err
}

// Input reads one line, prefilled with initial.
func (f *Forms) Input(title, initial string, validate func(string) error) (string, error) {
	v := initial
	in := huh.NewInput().Title(title).Value(&v)
	if validate != nil {
		in = in.Validate(validate)
	}
	err := f.run(huh.NewGroup(in))
	return v, err
}

// Confirm asks a yes/no question. The default answer is no.
func (f *Forms) Confirm(question string) (bool, error) {
	var ok bool
	err := f.run(huh.NewGroup(
		huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	return ok, err
}

// EditExpense shows every field of e prefilled and returns a patch holding
// only the fields the user changed.
func (f *Forms) EditExpense(e expense.Expense) (expense.Patch, error) {
	amount := e.Amount.String()
	category := e.Category
	notes := e.Notes
	date := e.Date.Local().Format(expense.DateLayout)

	err := f.run(huh.NewGroup(
		huh.NewInput().Title("Amount").Validate(shell.Validators.Amount).Value(&amount),
		huh.NewInput().Title("Category").Validate(shell.Validators.Category).Value(&category),
		huh.NewInput().Title("Notes").Value(&notes),
		huh.NewInput().Title("Date").Description("YYYY-MM-DD").Validate(shell.Validators.Date).Value(&date),
	).Title(fmt.Sprintf("Edit expense #%d", e.ID)))
	if err != nil {
		return expense.Patch{}, err
	}
	return diffPatch(e, amount, category, notes, date)
}

// diffPatch parses the edited values and keeps those that differ from e.
func diffPatch(e expense.Expense, amount, category, notes, date string) (expense.Patch, error) {
	var p expense.Patch

	a, err := expense.ParseAmount(amount)
	if err != nil {
		return p, err
	}
	if !a.Equal(e.Amount) {
		p.Amount = &a
	}

	if c := strings.TrimSpace(category); c != e.Category {
		p.Category = &c
	}
	if n := strings.TrimSpace(notes); n != e.Notes {
		p.Notes = &n
	}

	if date != e.Date.Local().Format(expense.DateLayout) {
		d, err := expense.ParseDate(date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	return p, nil
}
