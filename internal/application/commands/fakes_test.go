package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/application"
	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

type fakeClassifier struct {
	cls   *domain.Classification
	err   error
	calls int
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (*domain.Classification, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cls, nil
}

type fakeSummarizer struct {
	text string
	err  error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, facts string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeVault struct {
	docs     []*domain.Document
	fileErr  error
	moveErr  error
	complete *ports.TaskCompletion
}

func (f *fakeVault) EnsureStructure() error { return nil }

func (f *fakeVault) FileNote(note *domain.Note) (*domain.Document, error) {
	if f.fileErr != nil {
		return nil, f.fileErr
	}
	doc := domain.NewDocument(note)
	doc.Path = filepath.Join(string(doc.Category), doc.Slug+".md")
	f.docs = append(f.docs, doc)
	return doc, nil
}

func (f *fakeVault) Move(doc *domain.Document, to domain.Category) (*domain.Document, error) {
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	moved := *doc
	moved.Category = to
	moved.Meta.Category = string(to)
	moved.Path = filepath.Join(string(to), doc.Slug+".md")
	for i, d := range f.docs {
		if d.Path == doc.Path {
			f.docs[i] = &moved
		}
	}
	return &moved, nil
}

func (f *fakeVault) CompleteTask(hint string) (*ports.TaskCompletion, error) {
	if f.complete == nil {
		return nil, application.ErrNoMatch
	}
	return f.complete, nil
}

func (f *fakeVault) CountByCategory() (map[domain.Category]int, error) {
	counts := make(map[domain.Category]int)
	for _, d := range f.docs {
		counts[d.Category]++
	}
	return counts, nil
}

func (f *fakeVault) Walk(filter ports.ReadFilter, fn func(*domain.Document) error) error {
	for _, d := range f.docs {
		if filter.Category != "" && d.Category != filter.Category {
			continue
		}
		created := d.CreatedAt()
		if !filter.Since.IsZero() && created.Before(filter.Since) {
			continue
		}
		if !filter.Until.IsZero() && !created.Before(filter.Until) {
			continue
		}
		if err := fn(d); err != nil {
			if err == ports.ErrStopWalk {
				return nil
			}
			return err
		}
	}
	return nil
}

func (f *fakeVault) Load(path string) (*domain.Document, error) {
	for _, d := range f.docs {
		if d.Path == path {
			return d, nil
		}
	}
	return nil, fmt.Errorf("not found: %s", path)
}

type fakePending struct {
	entry   *domain.PendingClarification
	ttl     time.Duration
	nextKey int
}

func (f *fakePending) Open(note *domain.Note, now time.Time) (string, error) {
	if f.entry != nil && !f.entry.Expired(now) {
		return "", application.ErrClarificationOpen
	}
	ttl := f.ttl
	if ttl == 0 {
		ttl = time.Hour
	}
	f.nextKey++
	key := fmt.Sprintf("key-%d", f.nextKey)
	f.entry = &domain.PendingClarification{
		Note:      note,
		Key:       key,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	return key, nil
}

func (f *fakePending) Resolve(key string, category domain.Category, now time.Time) (*domain.Note, error) {
	if f.entry == nil || f.entry.Key != key {
		return nil, application.ErrUnknownCorrelation
	}
	if f.entry.Expired(now) {
		return nil, application.ErrExpired
	}
	note := f.entry.Note
	note.Category = category
	f.entry = nil
	return note, nil
}

func (f *fakePending) Current() (*domain.PendingClarification, error) {
	return f.entry, nil
}

func (f *fakePending) Sweep(now time.Time) ([]*domain.PendingClarification, error) {
	if f.entry == nil || !f.entry.Expired(now) {
		return nil, nil
	}
	expired := []*domain.PendingClarification{f.entry}
	f.entry = nil
	return expired, nil
}

type fakeRecents struct {
	last   *domain.Document
	setErr error
}

func (f *fakeRecents) SetLastFiled(doc *domain.Document) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.last = doc
	return nil
}

func (f *fakeRecents) LastFiled() (*domain.Document, error) { return f.last, nil }

type fakeLedger struct {
	entries   []domain.AuditEntry
	appendErr error
}

func (f *fakeLedger) Append(entry domain.AuditEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLedger) Tail(n int) ([]domain.AuditEntry, error) {
	if len(f.entries) <= n {
		return f.entries, nil
	}
	return f.entries[len(f.entries)-n:], nil
}

type fakeIndex struct {
	stuck   []domain.StuckProject
	counts  map[domain.Category]int
	syncErr error
}

func (f *fakeIndex) Sync() (*ports.IndexStats, error) {
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return &ports.IndexStats{}, nil
}

func (f *fakeIndex) StuckProjects(before time.Time) ([]domain.StuckProject, error) {
	return f.stuck, nil
}

func (f *fakeIndex) CountSince(since time.Time) (map[domain.Category]int, error) {
	if f.counts == nil {
		return map[domain.Category]int{}, nil
	}
	return f.counts, nil
}

func (f *fakeIndex) Close() error { return nil }

// testWorld bundles one fake of everything, pre-wired for a confident
// Projects classification.
type testWorld struct {
	classifier *fakeClassifier
	summarizer *fakeSummarizer
	vault      *fakeVault
	pending    *fakePending
	recents    *fakeRecents
	ledger     *fakeLedger
	index      *fakeIndex
	now        time.Time
}

func newTestWorld() *testWorld {
	return &testWorld{
		classifier: &fakeClassifier{
			cls: &domain.Classification{
				Category:   domain.CategoryProjects,
				Confidence: 0.87,
				Title:      "Call Sarah about Q3 budget",
				Fields: domain.Fields{
					Tasks: []string{"Call Sarah to discuss numbers"},
				},
			},
		},
		summarizer: &fakeSummarizer{text: "Your morning briefing."},
		vault:      &fakeVault{},
		pending:    &fakePending{},
		recents:    &fakeRecents{},
		ledger:     &fakeLedger{},
		index:      &fakeIndex{},
		now:        time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (w *testWorld) pipeline(opts ...PipelineOption) (*Pipeline, error) {
	deps := PipelineDeps{
		Classifier: w.classifier,
		Summarizer: w.summarizer,
		Vault:      w.vault,
		Pending:    w.pending,
		Recents:    w.recents,
		Ledger:     w.ledger,
		Index:      w.index,
	}
	base := []PipelineOption{WithClock(func() time.Time { return w.now })}
	return NewPipeline(deps, append(base, opts...)...)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
