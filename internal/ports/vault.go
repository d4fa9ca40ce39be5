package ports

import (
	"errors"
	"time"

	"inkwell/internal/domain"
)

// ErrStopWalk halts a Walk early without reporting an error.
var ErrStopWalk = errors.New("stop walk")

// ReadFilter narrows a Walk over the vault. The zero value matches every
// document.
type ReadFilter struct {
	Category domain.Category // empty matches all categories
	Since    time.Time       // inclusive lower bound on created time
	Until    time.Time       // exclusive upper bound, zero for unbounded
}

// TaskCompletion describes what a done-command touched: either a single
// checkbox inside a document, or the whole document's status.
type TaskCompletion struct {
	Document  *domain.Document
	Task      string // checked-off task text, empty if whole note was closed
	WholeNote bool
}

// VaultRepository is the persistence boundary of the pipeline: category
// folders of markdown documents with frontmatter. Writes appear atomic to
// concurrent readers; existing documents are never overwritten.
type VaultRepository interface {
	// EnsureStructure creates the category folders if missing.
	EnsureStructure() error

	// FileNote persists a classified note as a new document. The filename
	// derives from the note title; collisions get a numeric disambiguator.
	FileNote(note *domain.Note) (*domain.Document, error)

	// Move relocates a document to another category folder and rewrites its
	// frontmatter category. The document is observable in exactly one
	// location at every point.
	Move(doc *domain.Document, to domain.Category) (*domain.Document, error)

	// CompleteTask checks off the first open task matching hint, falling
	// back to closing a whole document matched by name or content.
	CompleteTask(hint string) (*TaskCompletion, error)

	// CountByCategory scans the category folders. Read-only; a missing
	// folder counts as zero.
	CountByCategory() (map[domain.Category]int, error)

	// Walk streams documents matching filter to fn in stable order. fn may
	// return ErrStopWalk to end the walk early.
	Walk(filter ReadFilter, fn func(*domain.Document) error) error

	// Load reads a single document from its path.
	Load(path string) (*domain.Document, error)
}
