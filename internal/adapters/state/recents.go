package state

import (
	"path/filepath"
	"sync"

	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

const lastNoteFilename = "lastnote.json"

type lastNoteRecord struct {
	Category string             `json:"category"`
	Slug     string             `json:"slug"`
	Path     string             `json:"path"`
	Meta     domain.Frontmatter `json:"meta"`
}

// Recents implements ports.Recents backed by a JSON pointer file. Only the
// location and metadata are kept; the body lives in the vault.
type Recents struct {
	mu   sync.Mutex
	path string
}

var _ ports.Recents = (*Recents)(nil)

// NewRecents creates the pointer store inside the given vault.
func NewRecents(vaultPath string) *Recents {
	return &Recents{path: filepath.Join(stateDir(vaultPath), lastNoteFilename)}
}

// SetLastFiled records doc as the most recently filed document.
func (r *Recents) SetLastFiled(doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeJSON(r.path, &lastNoteRecord{
		Category: string(doc.Category),
		Slug:     doc.Slug,
		Path:     doc.Path,
		Meta:     doc.Meta,
	})
}

// LastFiled returns the most recently filed document, or nil.
func (r *Recents) LastFiled() (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rec lastNoteRecord
	found, err := readJSON(r.path, &rec)
	if err != nil || !found {
		return nil, err
	}
	return &domain.Document{
		Category: domain.Category(rec.Category),
		Slug:     rec.Slug,
		Path:     rec.Path,
		Meta:     rec.Meta,
	}, nil
}
