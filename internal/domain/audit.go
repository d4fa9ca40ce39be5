package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AuditStatus is the terminal state recorded for a pipeline event.
type AuditStatus string

const (
	AuditFiled       AuditStatus = "filed"
	AuditNeedsReview AuditStatus = "needs_review"
	AuditFixed       AuditStatus = "fixed"
)

// FiledTo values for entries that did not land in a category folder.
const (
	FiledToPending   = "pending"
	FiledToAbandoned = "abandoned"
)

const capturedTextLimit = 100

// AuditEntry is one append-only row in the capture ledger. Entries are the
// system's sole source of historical truth and are never rewritten.
type AuditEntry struct {
	Timestamp    time.Time
	Status       AuditStatus
	FiledTo      string
	ResolvedName string
	Confidence   float64
	CapturedText string
}

// Row renders the entry as a single tab-separated line. The captured text
// is truncated to 100 runes and flattened so it cannot break the row
// structure.
func (e AuditEntry) Row() string {
	return strings.Join([]string{
		e.Timestamp.Format(time.RFC3339),
		string(e.Status),
		e.FiledTo,
		flattenField(e.ResolvedName),
		strconv.FormatFloat(e.Confidence, 'f', 2, 64),
		flattenField(truncateRunes(e.CapturedText, capturedTextLimit)),
	}, "\t")
}

// ParseAuditRow parses one ledger line back into an entry. Used for status
// reporting and the review TUI; the ledger itself is only ever appended.
func ParseAuditRow(line string) (AuditEntry, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 6 {
		return AuditEntry{}, fmt.Errorf("audit row has %d fields, want 6", len(parts))
	}
	ts, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return AuditEntry{}, fmt.Errorf("audit row timestamp: %w", err)
	}
	conf, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return AuditEntry{}, fmt.Errorf("audit row confidence: %w", err)
	}
	return AuditEntry{
		Timestamp:    ts,
		Status:       AuditStatus(parts[1]),
		FiledTo:      parts[2],
		ResolvedName: parts[3],
		Confidence:   conf,
		CapturedText: parts[5],
	}, nil
}

func flattenField(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
