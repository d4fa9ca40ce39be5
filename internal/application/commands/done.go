package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"inkwell/internal/application"
	"inkwell/internal/ports"
)

// DoneResult contains the outcome of a task completion.
type DoneResult struct {
	Completion *ports.TaskCompletion
	Message    string
}

// DoneCommand checks off a task in the vault, or closes a whole note when
// no single checkbox matches the hint. Completions are vault edits, not
// filings, so no ledger row is written.
type DoneCommand struct {
	vault ports.VaultRepository
	log   zerolog.Logger

	Hint string
}

// NewDoneCommand creates a new DoneCommand.
func NewDoneCommand(vault ports.VaultRepository, log zerolog.Logger, hint string) *DoneCommand {
	return &DoneCommand{vault: vault, log: log, Hint: hint}
}

// Validate checks the hint is non-empty.
func (c *DoneCommand) Validate() error {
	if strings.TrimSpace(c.Hint) == "" {
		return &application.ValidationError{Field: "hint", Message: "task description is required"}
	}
	return nil
}

// Execute marks the matching task done.
func (c *DoneCommand) Execute(ctx context.Context) (*DoneResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	completion, err := c.vault.CompleteTask(strings.TrimSpace(c.Hint))
	if err != nil {
		if errors.Is(err, application.ErrNoMatch) {
			return nil, fmt.Errorf("%w: nothing resembling %q", application.ErrNoMatch, c.Hint)
		}
		return nil, fmt.Errorf("completing task: %w", err)
	}

	var msg string
	if completion.WholeNote {
		msg = fmt.Sprintf("Marked %q as done", completion.Document.Meta.Title)
	} else {
		msg = fmt.Sprintf("Checked off %q in %q", completion.Task, completion.Document.Meta.Title)
	}
	c.log.Info().Str("path", completion.Document.Path).Bool("whole_note", completion.WholeNote).Msg("task completed")

	return &DoneResult{Completion: completion, Message: msg}, nil
}
