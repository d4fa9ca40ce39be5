package ports

import "inkwell/internal/domain"

// AuditLedger is the append-only record of terminal pipeline events.
// Exactly one entry is appended per filing, clarification outcome or fix;
// entries are never mutated or deleted.
type AuditLedger interface {
	Append(entry domain.AuditEntry) error

	// Tail returns up to n of the most recent entries, oldest first. Used
	// by status reporting and the review TUI.
	Tail(n int) ([]domain.AuditEntry, error)
}
