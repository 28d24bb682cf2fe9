// Package tui provides the interactive huh prompts and the Bubble Tea
// expense browser.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/tui/components"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// App is the root Bubble Tea model of the browser.
type App struct {
	store *expense.Store
	path  string
	log   *slog.Logger

	table table.Model
	keys  keyMap
	help  help.Model

	// UI state
	width   int
	height  int
	dirty   bool
	pending int // ID waiting for delete confirmation
	status  string
	failed  bool

	lastSave *expense.SaveResult
}

const (
	minTerminalWidth = 60
	cardsHeight      = 5 // metric card row incl. border
	chromeHeight     = 5 // table border + status line + help + status bar
	minTableHeight   = 3

	idWidth       = 5
	dateWidth     = 10
	categoryWidth = 16
	amountWidth   = 12
	minNotesWidth = 10
)

// NewApp returns a browser over store that saves to path.
func NewApp(store *expense.Store, path string, logger *slog.Logger) App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := theme.Active
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(t.Accent)
	styles.Selected = styles.Selected.
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true)

	tbl := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(styles),
	)

	a := App{
		store: store,
		path:  path,
		log:   logger,
		table: tbl,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
	a.refresh()
	return a
}

// Browse runs the browser full screen until the user quits. It returns the
// error of a failed save on quit.
func Browse(store *expense.Store, path string, logger *slog.Logger) error {
	m, err := tea.NewProgram(NewApp(store, path, logger), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	if a, ok := m.(App); ok && a.lastSave != nil && !a.lastSave.OK() {
		return a.lastSave.Err
	}
	return nil
}

func columns(width int) []table.Column {
	// each column carries one cell of padding per side
	notes := width - (idWidth + dateWidth + categoryWidth + amountWidth) - 2*5 - 2
	if notes < minNotesWidth {
		notes = minNotesWidth
	}
	return []table.Column{
		{Title: "ID", Width: idWidth},
		{Title: "Date", Width: dateWidth},
		{Title: "Category", Width: categoryWidth},
		{Title: "Amount", Width: amountWidth},
		{Title: "Notes", Width: notes},
	}
}

// refresh reloads the rows from the store and keeps the cursor in range.
func (a *App) refresh() {
	items := a.store.List()
	rows := make([]table.Row, 0, len(items))
	for _, e := range items {
		rows = append(rows, table.Row{
			strconv.Itoa(e.ID),
			cli.FormatDate(e.Date),
			e.Category,
			cli.FormatAmount(e.Amount),
			e.Notes,
		})
	}
	a.table.SetRows(rows)
	if a.table.Cursor() >= len(rows) {
		a.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (a *App) resize() {
	a.table.SetColumns(columns(a.width))
	h := a.height - cardsHeight - chromeHeight
	if h < minTableHeight {
		h = minTableHeight
	}
	a.table.SetHeight(h)
	a.help.Width = a.width
}

// selectedID returns the ID of the highlighted row.
func (a App) selectedID() (int, bool) {
	row := a.table.SelectedRow()
	if row == nil {
		return 0, false
	}
	id, err := strconv.Atoi(row[0])
	return id, err == nil
}

func (a *App) setStatus(msg string, failed bool) {
	a.status = msg
	a.failed = failed
}

func (a *App) save() {
	res := a.store.Save(a.path)
	a.lastSave = &res
	a.setStatus(res.Message(), !res.OK())
	if res.OK() {
		a.dirty = false
	}
}

func (a *App) deletePending() {
	id := a.pending
	a.pending = 0
	if err := a.store.Remove(id); err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	a.dirty = true
	a.log.Debug("deleted expense", "id", id)
	a.refresh()
	a.setStatus("Expense deleted successfully!", false)
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a.quit()
		}

		// A pending delete takes the next key as its answer.
		if a.pending != 0 {
			if key.Matches(msg, a.keys.Confirm) {
				a.deletePending()
			} else {
				a.pending = 0
				a.setStatus("Deletion canceled.", false)
			}
			return a, nil
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			return a.quit()
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		case key.Matches(msg, a.keys.Save):
			a.save()
			return a, nil
		case key.Matches(msg, a.keys.Delete):
			if id, ok := a.selectedID(); ok {
				a.pending = id
				a.setStatus(fmt.Sprintf("Delete expense #%d? (y/n)", id), false)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a App) quit() (tea.Model, tea.Cmd) {
	if a.dirty {
		a.save()
	}
	return a, tea.Quit
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  xpense needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}

	t := theme.Active
	items := a.store.List()
	sum := expense.Summarize(items)

	top := components.Metric{Label: "Top category", Value: "-"}
	if c, ok := sum.Top(); ok {
		top.Value = c.Category
		top.Note = cli.FormatAmount(c.Total)
	}
	cards := components.MetricCardRow([]components.Metric{
		{Label: "Expenses", Value: strconv.Itoa(sum.Count)},
		{Label: "Total", Value: cli.FormatAmount(sum.Total)},
		top,
	}, a.width)

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent)

	body := a.table.View()
	if len(items) == 0 {
		body = lipgloss.NewStyle().Foreground(t.TextMuted).Render("No expenses recorded yet.")
	}

	statusStyle := lipgloss.NewStyle().Foreground(t.Green)
	switch {
	case a.failed:
		statusStyle = statusStyle.Foreground(t.Red)
	case a.pending != 0:
		statusStyle = statusStyle.Foreground(t.Orange)
	}

	right := cli.Plural(len(items), "expense")
	if a.dirty {
		right += " · modified"
	}

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n")
	b.WriteString(frame.Render(body))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(" " + a.status))
	b.WriteString("\n")
	b.WriteString(" " + a.help.View(a.keys))
	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(a.width, " "+a.path, right+" "))
	return b.String()
}
