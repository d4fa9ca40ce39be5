package ports

import (
	"time"

	"inkwell/internal/domain"
)

// PendingStore owns the clarification lifecycle for one conversation: at
// most one entry is open at a time, and every entry either resolves into a
// filed note or expires into a sweep.
type PendingStore interface {
	// Open holds a low-confidence note and returns its correlation key.
	// Fails with ErrClarificationOpen while an unexpired entry exists.
	Open(note *domain.Note, now time.Time) (string, error)

	// Resolve matches a clarifying reply to the open entry and returns the
	// note with the chosen category applied, removing the entry. Fails with
	// ErrUnknownCorrelation for a key that matches nothing and ErrExpired
	// for an entry past its window; an expired entry is left in place for
	// Sweep to log.
	Resolve(key string, category domain.Category, now time.Time) (*domain.Note, error)

	// Current returns the open entry, expired or not, or nil.
	Current() (*domain.PendingClarification, error)

	// Sweep removes every entry expired at now and returns them so the
	// caller can write the abandonment audit trail. Idempotent.
	Sweep(now time.Time) ([]*domain.PendingClarification, error)
}

// Recents is the conversation-scoped "last note" pointer the fix command
// resolves against. It is sibling state to the pending store, never
// ambient globals.
type Recents interface {
	SetLastFiled(doc *domain.Document) error
	LastFiled() (*domain.Document, error)
}
