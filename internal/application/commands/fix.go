package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"inkwell/internal/application"
	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

// FixResult contains the outcome of a reclassification.
type FixResult struct {
	Document *domain.Document
	From     domain.Category
	NoOp     bool // new category equals the current one
	Message  string
}

// FixCommand moves the conversation's most recent filed note to another
// category. Only the last note is addressable through the short command
// form; older notes are edited through the vault directly.
type FixCommand struct {
	vault   ports.VaultRepository
	recents ports.Recents
	ledger  ports.AuditLedger
	log     zerolog.Logger

	NewCategory string
	Now         time.Time
}

// NewFixCommand creates a new FixCommand.
func NewFixCommand(
	vault ports.VaultRepository,
	recents ports.Recents,
	ledger ports.AuditLedger,
	log zerolog.Logger,
	newCategory string,
	now time.Time,
) *FixCommand {
	return &FixCommand{
		vault:       vault,
		recents:     recents,
		ledger:      ledger,
		log:         log,
		NewCategory: newCategory,
		Now:         now,
	}
}

// Validate checks the target category.
func (c *FixCommand) Validate() error {
	_, err := application.ParseCategoryArg(c.NewCategory)
	return err
}

// Execute performs the move. A same-category fix succeeds without touching
// anything.
func (c *FixCommand) Execute(ctx context.Context) (*FixResult, error) {
	category, err := application.ParseCategoryArg(c.NewCategory)
	if err != nil {
		return nil, err
	}

	last, err := c.recents.LastFiled()
	if err != nil {
		return nil, fmt.Errorf("reading last-note pointer: %w", err)
	}
	if last == nil {
		return nil, application.ErrNoRecentNote
	}

	if last.Category == category {
		return &FixResult{
			Document: last,
			From:     category,
			NoOp:     true,
			Message:  fmt.Sprintf("%q is already filed under %s", last.Meta.Title, category),
		}, nil
	}

	from := last.Category
	moved, err := c.vault.Move(last, category)
	if err != nil {
		if errors.Is(err, application.ErrNoMatch) {
			return nil, fmt.Errorf("%w: %s no longer exists", application.ErrNoRecentNote, last.Path)
		}
		return nil, fmt.Errorf("moving %s to %s: %w", last.Path, category, err)
	}
	if err := c.recents.SetLastFiled(moved); err != nil {
		c.log.Warn().Err(err).Str("path", moved.Path).Msg("last-note pointer not updated")
	}

	result := &FixResult{
		Document: moved,
		From:     from,
		Message:  fmt.Sprintf("Moved %q from %s to %s", moved.Meta.Title, from, category),
	}

	entry := domain.AuditEntry{
		Timestamp:    c.Now,
		Status:       domain.AuditFixed,
		FiledTo:      string(category),
		ResolvedName: moved.Slug,
		Confidence:   1.0,
		CapturedText: moved.Meta.Title,
	}
	if err := c.ledger.Append(entry); err != nil {
		return result, &application.PartialFilingError{Document: moved, Err: err}
	}
	return result, nil
}
