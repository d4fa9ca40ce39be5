package state

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/application"
	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

const pendingFilename = "pending.json"

type pendingRecord struct {
	Key        string        `json:"key"`
	RawText    string        `json:"raw_text"`
	Category   string        `json:"category"`
	Confidence float64       `json:"confidence"`
	Title      string        `json:"title"`
	Fields     domain.Fields `json:"fields"`
	CreatedAt  time.Time     `json:"created_at"`
	ExpiresAt  time.Time     `json:"expires_at"`
}

// PendingStore implements ports.PendingStore backed by a single JSON file:
// at most one clarification is open, so the file either exists or not.
type PendingStore struct {
	mu   sync.Mutex
	path string
	ttl  time.Duration
}

var _ ports.PendingStore = (*PendingStore)(nil)

// NewPendingStore creates the store inside the given vault with the given
// clarification window.
func NewPendingStore(vaultPath string, ttl time.Duration) *PendingStore {
	return &PendingStore{
		path: filepath.Join(stateDir(vaultPath), pendingFilename),
		ttl:  ttl,
	}
}

// Open holds a low-confidence note and returns its correlation key.
func (s *PendingStore) Open(note *domain.Note, now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return "", err
	}
	if existing != nil && !existing.Expired(now) {
		return "", application.ErrClarificationOpen
	}

	rec := pendingRecord{
		Key:        uuid.NewString(),
		RawText:    note.RawText,
		Category:   string(note.Category),
		Confidence: note.Confidence,
		Title:      note.Title,
		Fields:     note.Fields,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := writeJSON(s.path, &rec); err != nil {
		return "", err
	}
	return rec.Key, nil
}

// Resolve matches a reply to the open entry. Expired entries stay on disk
// for Sweep to log.
func (s *PendingStore) Resolve(key string, category domain.Category, now time.Time) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.Key != key {
		return nil, application.ErrUnknownCorrelation
	}
	if existing.Expired(now) {
		return nil, application.ErrExpired
	}

	note := existing.Note
	note.Category = category
	if err := removeFile(s.path); err != nil {
		return nil, err
	}
	return note, nil
}

// Current returns the open entry, expired or not, or nil.
func (s *PendingStore) Current() (*domain.PendingClarification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Sweep removes the entry if expired and returns it.
func (s *PendingStore) Sweep(now time.Time) ([]*domain.PendingClarification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return nil, err
	}
	if existing == nil || !existing.Expired(now) {
		return nil, nil
	}
	if err := removeFile(s.path); err != nil {
		return nil, err
	}
	return []*domain.PendingClarification{existing}, nil
}

func (s *PendingStore) load() (*domain.PendingClarification, error) {
	var rec pendingRecord
	found, err := readJSON(s.path, &rec)
	if err != nil || !found {
		return nil, err
	}
	return &domain.PendingClarification{
		Note: &domain.Note{
			RawText:    rec.RawText,
			Category:   domain.Category(rec.Category),
			Confidence: rec.Confidence,
			Title:      rec.Title,
			Fields:     rec.Fields,
			CreatedAt:  rec.CreatedAt,
		},
		Key:       rec.Key,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}
