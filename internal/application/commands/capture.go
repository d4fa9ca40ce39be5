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

// CaptureResult contains the outcome of one capture: either a filed
// document or an open clarification, never both.
type CaptureResult struct {
	Filed          *domain.Document
	Pending        *domain.PendingClarification
	Classification *domain.Classification
	Transcript     string // set when the capture arrived as audio
	Message        string
}

// CaptureCommand runs one note through classify → gate → file-or-hold.
type CaptureCommand struct {
	classifier ports.Classifier
	vault      ports.VaultRepository
	pending    ports.PendingStore
	recents    ports.Recents
	ledger     ports.AuditLedger
	log        zerolog.Logger

	Text      string
	Threshold float64
	Now       time.Time
}

// NewCaptureCommand creates a new CaptureCommand.
func NewCaptureCommand(
	classifier ports.Classifier,
	vault ports.VaultRepository,
	pending ports.PendingStore,
	recents ports.Recents,
	ledger ports.AuditLedger,
	log zerolog.Logger,
	text string,
	threshold float64,
	now time.Time,
) *CaptureCommand {
	return &CaptureCommand{
		classifier: classifier,
		vault:      vault,
		pending:    pending,
		recents:    recents,
		ledger:     ledger,
		log:        log,
		Text:       text,
		Threshold:  threshold,
		Now:        now,
	}
}

// Validate checks the capture input before any external call is spent.
func (c *CaptureCommand) Validate() error {
	return application.ValidateCapture(c.Text)
}

// Execute runs the capture. A non-nil result may accompany a
// *application.PartialFilingError when the document was written but the
// audit append failed; every other error means nothing was filed.
func (c *CaptureCommand) Execute(ctx context.Context) (*CaptureResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// A second capture while a clarification is open is rejected, never
	// queued: the open note would otherwise be lost silently.
	cur, err := c.pending.Current()
	if err != nil {
		return nil, fmt.Errorf("reading pending state: %w", err)
	}
	if cur != nil {
		if !cur.Expired(c.Now) {
			return nil, fmt.Errorf("%w: reply with a category for %q first",
				application.ErrClarificationOpen, cur.Note.Title)
		}
		// An expired entry must get its abandonment audit row before this
		// capture can replace it.
		if _, err := NewSweepCommand(c.pending, c.ledger, c.log, c.Now).Execute(ctx); err != nil {
			return nil, fmt.Errorf("abandoning expired clarification: %w", err)
		}
	}

	cls, err := c.classifier.Classify(ctx, c.Text)
	if err != nil {
		return nil, err
	}

	note := &domain.Note{
		RawText:    c.Text,
		Category:   cls.Category,
		Confidence: cls.Confidence,
		Title:      cls.Title,
		Fields:     cls.Fields,
		CreatedAt:  c.Now,
	}

	if cls.Confidence >= c.Threshold {
		return c.file(note, cls)
	}
	return c.hold(note, cls)
}

func (c *CaptureCommand) file(note *domain.Note, cls *domain.Classification) (*CaptureResult, error) {
	doc, err := c.vault.FileNote(note)
	if err != nil {
		return nil, fmt.Errorf("filing note: %w", err)
	}
	if err := c.recents.SetLastFiled(doc); err != nil {
		c.log.Warn().Err(err).Str("path", doc.Path).Msg("last-note pointer not updated")
	}

	result := &CaptureResult{
		Filed:          doc,
		Classification: cls,
		Message: fmt.Sprintf("Filed as %s: %q (%.0f%%)",
			strings.ToUpper(string(note.Category)), note.Title, cls.Confidence*100),
	}

	entry := domain.AuditEntry{
		Timestamp:    c.Now,
		Status:       domain.AuditFiled,
		FiledTo:      string(note.Category),
		ResolvedName: doc.Slug,
		Confidence:   cls.Confidence,
		CapturedText: note.RawText,
	}
	if err := c.ledger.Append(entry); err != nil {
		return result, &application.PartialFilingError{Document: doc, Err: err}
	}
	return result, nil
}

func (c *CaptureCommand) hold(note *domain.Note, cls *domain.Classification) (*CaptureResult, error) {
	key, err := c.pending.Open(note, c.Now)
	if err != nil {
		return nil, err
	}

	result := &CaptureResult{
		Classification: cls,
		Message: fmt.Sprintf("Unsure (%.0f%%). Which category?\nReply with: People / Projects / Ideas / Admin\nOr: fix: <category> to correct later",
			cls.Confidence*100),
	}
	cur, err := c.pending.Current()
	if err == nil && cur != nil && cur.Key == key {
		result.Pending = cur
	}

	entry := domain.AuditEntry{
		Timestamp:    c.Now,
		Status:       domain.AuditNeedsReview,
		FiledTo:      domain.FiledToPending,
		ResolvedName: domain.Slugify(note.Title),
		Confidence:   cls.Confidence,
		CapturedText: note.RawText,
	}
	if err := c.ledger.Append(entry); err != nil {
		return result, fmt.Errorf("clarification opened but audit append failed: %w", err)
	}
	return result, nil
}
