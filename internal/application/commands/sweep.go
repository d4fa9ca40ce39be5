package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

// SweepResult reports how many clarifications were abandoned.
type SweepResult struct {
	Expired int
	Message string
}

// SweepCommand removes expired clarifications and writes their
// abandonment trail. Running it when nothing has expired is a no-op.
type SweepCommand struct {
	pending ports.PendingStore
	ledger  ports.AuditLedger
	log     zerolog.Logger

	Now time.Time
}

// NewSweepCommand creates a new SweepCommand.
func NewSweepCommand(pending ports.PendingStore, ledger ports.AuditLedger, log zerolog.Logger, now time.Time) *SweepCommand {
	return &SweepCommand{pending: pending, ledger: ledger, log: log, Now: now}
}

// Execute sweeps. Expired entries are never dropped without an audit row.
func (c *SweepCommand) Execute(ctx context.Context) (*SweepResult, error) {
	expired, err := c.pending.Sweep(c.Now)
	if err != nil {
		return nil, fmt.Errorf("sweeping pending store: %w", err)
	}

	for _, p := range expired {
		entry := domain.AuditEntry{
			Timestamp:    c.Now,
			Status:       domain.AuditNeedsReview,
			FiledTo:      domain.FiledToAbandoned,
			ResolvedName: domain.Slugify(p.Note.Title),
			Confidence:   p.Note.Confidence,
			CapturedText: p.Note.RawText,
		}
		if err := c.ledger.Append(entry); err != nil {
			return nil, fmt.Errorf("recording abandoned clarification %q: %w", p.Key, err)
		}
		c.log.Info().Str("title", p.Note.Title).Time("expired_at", p.ExpiresAt).Msg("clarification abandoned")
	}

	msg := "No expired clarifications."
	if len(expired) > 0 {
		msg = fmt.Sprintf("Abandoned %d expired clarification(s).", len(expired))
	}
	return &SweepResult{Expired: len(expired), Message: msg}, nil
}
