package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

// DigestResult carries the rendered digest and the aggregate it was built
// from. UsedFallback is set when the deterministic rendering was used
// instead of a summarizer.
type DigestResult struct {
	Data         *domain.DigestData
	Text         string
	UsedFallback bool
}

// DigestCommand aggregates the capture window into a briefing. The digest
// never fails on summarizer problems; only a vault walk failure is an
// error.
type DigestCommand struct {
	vault      ports.VaultRepository
	summarizer ports.Summarizer // nil means fallback rendering only
	index      ports.CaptureIndex
	log        zerolog.Logger

	Variant     domain.DigestVariant
	StuckWindow time.Duration
	Now         time.Time
}

// NewDigestCommand creates a new DigestCommand. summarizer and index may be
// nil; the corresponding sections are skipped.
func NewDigestCommand(
	vault ports.VaultRepository,
	summarizer ports.Summarizer,
	index ports.CaptureIndex,
	log zerolog.Logger,
	variant domain.DigestVariant,
	stuckWindow time.Duration,
	now time.Time,
) *DigestCommand {
	return &DigestCommand{
		vault:       vault,
		summarizer:  summarizer,
		index:       index,
		log:         log,
		Variant:     variant,
		StuckWindow: stuckWindow,
		Now:         now,
	}
}

// Execute builds the digest.
func (c *DigestCommand) Execute(ctx context.Context) (*DigestResult, error) {
	data := domain.NewDigestData(c.Variant, c.Now)

	filter := ports.ReadFilter{Since: data.WindowStart}
	err := c.vault.Walk(filter, func(doc *domain.Document) error {
		data.Add(doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking vault for digest: %w", err)
	}

	// Stuck projects come from the index; a broken index degrades to a
	// digest without the section rather than no digest.
	if c.index != nil && c.StuckWindow > 0 {
		if _, err := c.index.Sync(); err != nil {
			c.log.Warn().Err(err).Msg("index sync failed, skipping stuck projects")
		} else if stuck, err := c.index.StuckProjects(c.Now.Add(-c.StuckWindow)); err != nil {
			c.log.Warn().Err(err).Msg("stuck-project query failed")
		} else {
			data.Stuck = stuck
		}
	}

	result := &DigestResult{Data: data}
	if c.summarizer == nil || data.Empty() {
		result.Text = data.RenderFallback()
		result.UsedFallback = true
		return result, nil
	}

	text, err := c.summarizer.Summarize(ctx, data.Facts())
	if err != nil || text == "" {
		if err != nil {
			c.log.Warn().Err(err).Msg("summarizer unavailable, using fallback digest")
		}
		result.Text = data.RenderFallback()
		result.UsedFallback = true
		return result, nil
	}
	result.Text = text
	return result, nil
}
