package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"inkwell/internal/application"
	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

// ResolveResult contains the outcome of a clarification reply.
type ResolveResult struct {
	Filed   *domain.Document
	Message string
}

// ResolveCommand files a pending note with the category the user chose.
type ResolveCommand struct {
	pending ports.PendingStore
	vault   ports.VaultRepository
	recents ports.Recents
	ledger  ports.AuditLedger
	log     zerolog.Logger

	Key   string
	Reply string
	Now   time.Time
}

// NewResolveCommand creates a new ResolveCommand.
func NewResolveCommand(
	pending ports.PendingStore,
	vault ports.VaultRepository,
	recents ports.Recents,
	ledger ports.AuditLedger,
	log zerolog.Logger,
	key, reply string,
	now time.Time,
) *ResolveCommand {
	return &ResolveCommand{
		pending: pending,
		vault:   vault,
		recents: recents,
		ledger:  ledger,
		log:     log,
		Key:     key,
		Reply:   reply,
		Now:     now,
	}
}

// Validate checks the reply names a real category.
func (c *ResolveCommand) Validate() error {
	if c.Key == "" {
		return &application.ValidationError{Field: "key", Message: "correlation key is required"}
	}
	_, err := application.ParseCategoryArg(c.Reply)
	return err
}

// Execute resolves the clarification and files the held note. As with
// capture, a *application.PartialFilingError accompanies a non-nil result
// when only the audit append failed.
func (c *ResolveCommand) Execute(ctx context.Context) (*ResolveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	category, err := application.ParseCategoryArg(c.Reply)
	if err != nil {
		return nil, err
	}

	note, err := c.pending.Resolve(c.Key, category, c.Now)
	if err != nil {
		return nil, err
	}

	doc, err := c.vault.FileNote(note)
	if err != nil {
		return nil, fmt.Errorf("filing resolved note: %w", err)
	}
	if err := c.recents.SetLastFiled(doc); err != nil {
		c.log.Warn().Err(err).Str("path", doc.Path).Msg("last-note pointer not updated")
	}

	result := &ResolveResult{
		Filed: doc,
		Message: fmt.Sprintf("Filed as %s: %q",
			strings.ToUpper(string(category)), note.Title),
	}

	entry := domain.AuditEntry{
		Timestamp:    c.Now,
		Status:       domain.AuditFiled,
		FiledTo:      string(category),
		ResolvedName: doc.Slug,
		Confidence:   note.Confidence,
		CapturedText: note.RawText,
	}
	if err := c.ledger.Append(entry); err != nil {
		return result, &application.PartialFilingError{Document: doc, Err: err}
	}
	return result, nil
}
