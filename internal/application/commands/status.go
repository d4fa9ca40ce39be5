package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

// StatusResult is the per-category count report. Recent holds the counts
// captured since yesterday when the index is available.
type StatusResult struct {
	Counts  map[domain.Category]int
	Recent  map[domain.Category]int
	Total   int
	Message string
}

// StatusCommand scans the vault for per-category counts. Read-only. The
// index adds the since-yesterday activity line; without one the report is
// just the folder totals.
type StatusCommand struct {
	vault ports.VaultRepository
	index ports.CaptureIndex // may be nil
	log   zerolog.Logger

	Now time.Time
}

// NewStatusCommand creates a new StatusCommand.
func NewStatusCommand(vault ports.VaultRepository, index ports.CaptureIndex, log zerolog.Logger, now time.Time) *StatusCommand {
	return &StatusCommand{vault: vault, index: index, log: log, Now: now}
}

// Execute runs the scan.
func (c *StatusCommand) Execute(ctx context.Context) (*StatusResult, error) {
	counts, err := c.vault.CountByCategory()
	if err != nil {
		return nil, fmt.Errorf("counting vault: %w", err)
	}

	total := 0
	var sb strings.Builder
	sb.WriteString("Vault status\n")
	for _, cat := range domain.Categories {
		n := counts[cat]
		total += n
		fmt.Fprintf(&sb, "- %s: %d\n", cat, n)
	}
	fmt.Fprintf(&sb, "Total: %d notes", total)

	result := &StatusResult{Counts: counts, Total: total}
	if c.index != nil {
		if recent, err := c.recentCounts(); err != nil {
			c.log.Warn().Err(err).Msg("capture index unavailable, skipping recent activity")
		} else {
			result.Recent = recent
			captured := 0
			for _, n := range recent {
				captured += n
			}
			fmt.Fprintf(&sb, "\nCaptured since yesterday: %d", captured)
		}
	}
	result.Message = sb.String()
	return result, nil
}

func (c *StatusCommand) recentCounts() (map[domain.Category]int, error) {
	if _, err := c.index.Sync(); err != nil {
		return nil, err
	}
	return c.index.CountSince(domain.DigestDaily.WindowStart(c.Now))
}
