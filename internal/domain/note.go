package domain

import "time"

// Fields carries the category-specific structure extracted at
// classification time. Only the fields relevant to the note's category are
// populated; empty fields are omitted from frontmatter and body.
type Fields struct {
	Context string   // People: relationship / conversation context
	Status  string   // Projects, Admin: active | someday | done
	Area    string   // Ideas: broad area the idea belongs to
	Due     string   // Admin: due date as spoken ("Friday", "2026-03-01")
	Notes   string   // free-form remainder
	Tasks   []string // distinct actionable items, one checkbox each
}

// Classification is the result of the external classification call.
type Classification struct {
	Category   Category
	Confidence float64
	Title      string
	Fields     Fields
	Reasoning  string
}

// Note is a single captured thought moving through the pipeline. It is
// either filed (category set, document persisted) or pending (held by the
// clarification store), never both.
type Note struct {
	RawText    string
	Category   Category
	Confidence float64
	Title      string
	Fields     Fields
	CreatedAt  time.Time
}

// PendingClarification correlates a low-confidence note with the expected
// clarifying reply. Owned exclusively by the pending store.
type PendingClarification struct {
	Note      *Note
	Key       string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the clarification window has closed.
func (p *PendingClarification) Expired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}
