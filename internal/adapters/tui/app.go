// Package tui is the interactive review surface: capture from the
// keyboard, answer clarifications, and watch the audit trail.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/adapters/tui/styles"
	"inkwell/internal/application/commands"
	"inkwell/internal/domain"
)

const ledgerTailSize = 8

// App is the review TUI model.
type App struct {
	pipeline *commands.Pipeline

	input   textinput.Model
	pending *domain.PendingClarification
	entries []domain.AuditEntry
	status  string
	isErr   bool

	width  int
	height int
}

// NewApp creates a new review TUI over the pipeline.
func NewApp(pipeline *commands.Pipeline) *App {
	input := textinput.New()
	input.Placeholder = "capture a thought, or: fix: <category> / done: <task>"
	input.Focus()
	input.CharLimit = 500

	return &App{
		pipeline: pipeline,
		input:    input,
	}
}

type refreshMsg struct {
	pending *domain.PendingClarification
	entries []domain.AuditEntry
}

type actionMsg struct {
	status string
	err    error
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.refresh()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case refreshMsg:
		a.pending = msg.pending
		a.entries = msg.entries
		return a, nil

	case actionMsg:
		if msg.err != nil {
			a.status = msg.err.Error()
			a.isErr = true
		} else {
			a.status = msg.status
			a.isErr = false
		}
		return a, a.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "ctrl+y":
			return a, a.copyLastFiledPath()
		case "enter":
			text := strings.TrimSpace(a.input.Value())
			if text == "" {
				return a, nil
			}
			a.input.Reset()
			return a, a.submit(text)
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit routes the typed line: while a clarification is open a bare
// category answers it, everything else is a capture.
func (a *App) submit(text string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if a.pending != nil {
			if _, ok := domain.ParseCategory(text); ok {
				result, err := a.pipeline.Reply(ctx, a.pending.Key, text)
				if err != nil {
					return actionMsg{err: err}
				}
				return actionMsg{status: result.Message}
			}
		}

		result, err := a.pipeline.Capture(ctx, text)
		if err != nil {
			if result != nil {
				return actionMsg{status: result.Message + " (audit log entry missing)"}
			}
			return actionMsg{err: err}
		}
		return actionMsg{status: result.Message}
	}
}

func (a *App) copyLastFiledPath() tea.Cmd {
	return func() tea.Msg {
		last, err := a.pipeline.LastFiled()
		if err != nil {
			return actionMsg{err: err}
		}
		if last == nil {
			return actionMsg{err: fmt.Errorf("nothing filed yet")}
		}
		if err := clipboard.WriteAll(last.Path); err != nil {
			return actionMsg{err: fmt.Errorf("clipboard unavailable: %w", err)}
		}
		return actionMsg{status: "Copied " + last.Path}
	}
}

func (a *App) refresh() tea.Cmd {
	return func() tea.Msg {
		pending, _ := a.pipeline.Pending()
		entries, _ := a.pipeline.RecentEntries(ledgerTailSize)
		return refreshMsg{pending: pending, entries: entries}
	}
}

// View renders the application
func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("inkwell"))
	sb.WriteString("\n")

	if a.pending != nil {
		banner := fmt.Sprintf("Waiting for a category for %q\nAnswer with: People / Projects / Ideas / Admin (expires %s)",
			a.pending.Note.Title, a.pending.ExpiresAt.Format("15:04"))
		sb.WriteString(styles.PendingBanner.Render(banner))
		sb.WriteString("\n\n")
	}

	sb.WriteString(styles.InputField.Render(a.input.View()))
	sb.WriteString("\n\n")

	if a.status != "" {
		if a.isErr {
			sb.WriteString(styles.ErrorMsg.Render(a.status))
		} else {
			sb.WriteString(styles.Success.Render(a.status))
		}
		sb.WriteString("\n\n")
	}

	if len(a.entries) > 0 {
		sb.WriteString(styles.Subtitle.Render("Recent activity"))
		sb.WriteString("\n")
		for i := len(a.entries) - 1; i >= 0; i-- {
			sb.WriteString(renderEntry(a.entries[i]))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(styles.HelpKey.Render("enter"))
	sb.WriteString(styles.HelpDesc.Render(" capture  "))
	sb.WriteString(styles.HelpKey.Render("ctrl+y"))
	sb.WriteString(styles.HelpDesc.Render(" copy last path  "))
	sb.WriteString(styles.HelpKey.Render("esc"))
	sb.WriteString(styles.HelpDesc.Render(" quit"))

	return styles.App.Render(sb.String())
}

func renderEntry(e domain.AuditEntry) string {
	var style = styles.MutedText
	switch e.Status {
	case domain.AuditFiled:
		style = styles.RowFiled
	case domain.AuditNeedsReview:
		style = styles.RowNeedsReview
	case domain.AuditFixed:
		style = styles.RowFixed
	}
	line := fmt.Sprintf("%s  %-12s  %-10s  %s",
		e.Timestamp.Format("Jan 02 15:04"), e.Status, e.FiledTo, e.CapturedText)
	return style.Render(line)
}
