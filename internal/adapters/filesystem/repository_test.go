package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inkwell/internal/application"
	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(t.TempDir())
	if err := repo.EnsureStructure(); err != nil {
		t.Fatalf("EnsureStructure: %v", err)
	}
	return repo
}

func testNote(title string, category domain.Category) *domain.Note {
	return &domain.Note{
		RawText:    title,
		Category:   category,
		Confidence: 0.9,
		Title:      title,
		Fields: domain.Fields{
			Tasks: []string{"Call Sarah to discuss numbers"},
		},
		CreatedAt: time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestEnsureStructure(t *testing.T) {
	repo := testRepo(t)
	for _, cat := range domain.Categories {
		info, err := os.Stat(filepath.Join(repo.VaultPath(), string(cat)))
		if err != nil || !info.IsDir() {
			t.Errorf("category folder %s missing", cat)
		}
	}
}

func TestFileNote(t *testing.T) {
	repo := testRepo(t)

	doc, err := repo.FileNote(testNote("Call Sarah about Q3 budget", domain.CategoryProjects))
	if err != nil {
		t.Fatalf("FileNote: %v", err)
	}
	if doc.Slug != "Call-Sarah-about-Q3-budget" {
		t.Errorf("slug = %q", doc.Slug)
	}

	raw, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("reading filed document: %v", err)
	}
	content := string(raw)
	for _, want := range []string{"title: Call Sarah about Q3 budget", "category: Projects", "status: active", "- [ ] Call Sarah to discuss numbers"} {
		if !strings.Contains(content, want) {
			t.Errorf("document missing %q:\n%s", want, content)
		}
	}
}

func TestFileNoteCollision(t *testing.T) {
	repo := testRepo(t)

	first, err := repo.FileNote(testNote("Call Sarah", domain.CategoryProjects))
	if err != nil {
		t.Fatalf("first FileNote: %v", err)
	}
	second, err := repo.FileNote(testNote("Call Sarah", domain.CategoryProjects))
	if err != nil {
		t.Fatalf("second FileNote: %v", err)
	}

	if second.Slug != first.Slug+"-2" {
		t.Errorf("collision slug = %q, want %q", second.Slug, first.Slug+"-2")
	}
	if _, err := os.Stat(first.Path); err != nil {
		t.Error("first document must not be overwritten")
	}
}

func TestMove(t *testing.T) {
	repo := testRepo(t)

	doc, err := repo.FileNote(testNote("Call Sarah", domain.CategoryProjects))
	if err != nil {
		t.Fatalf("FileNote: %v", err)
	}

	moved, err := repo.Move(doc, domain.CategoryPeople)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if moved.Category != domain.CategoryPeople {
		t.Errorf("category = %s", moved.Category)
	}
	if _, err := os.Stat(doc.Path); !os.IsNotExist(err) {
		t.Error("document must leave its old location")
	}

	loaded, err := repo.Load(moved.Path)
	if err != nil {
		t.Fatalf("Load after move: %v", err)
	}
	if loaded.Meta.Category != "People" {
		t.Errorf("frontmatter category = %q, want People", loaded.Meta.Category)
	}
}

func TestMoveMissingDocument(t *testing.T) {
	repo := testRepo(t)
	ghost := &domain.Document{
		Category: domain.CategoryProjects,
		Slug:     "gone",
		Path:     filepath.Join(repo.VaultPath(), "Projects", "gone.md"),
	}
	if _, err := repo.Move(ghost, domain.CategoryPeople); !errors.Is(err, application.ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestCompleteTaskChecksCheckbox(t *testing.T) {
	repo := testRepo(t)
	if _, err := repo.FileNote(testNote("Call Sarah", domain.CategoryProjects)); err != nil {
		t.Fatalf("FileNote: %v", err)
	}

	completion, err := repo.CompleteTask("discuss numbers")
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if completion.WholeNote {
		t.Error("expected a single checkbox, not a whole-note close")
	}
	if completion.Task != "Call Sarah to discuss numbers" {
		t.Errorf("task = %q", completion.Task)
	}

	loaded, err := repo.Load(completion.Document.Path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(loaded.Body, "- [x] Call Sarah to discuss numbers") {
		t.Errorf("checkbox not checked:\n%s", loaded.Body)
	}
}

func TestCompleteTaskFallsBackToWholeNote(t *testing.T) {
	repo := testRepo(t)
	note := testNote("Renew passport", domain.CategoryAdmin)
	note.Fields.Tasks = nil
	if _, err := repo.FileNote(note); err != nil {
		t.Fatalf("FileNote: %v", err)
	}

	completion, err := repo.CompleteTask("renew passport")
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !completion.WholeNote {
		t.Fatal("expected a whole-note close")
	}

	loaded, err := repo.Load(completion.Document.Path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Meta.Status != domain.StatusDone {
		t.Errorf("status = %q, want done", loaded.Meta.Status)
	}
}

func TestCompleteTaskNoMatch(t *testing.T) {
	repo := testRepo(t)
	if _, err := repo.CompleteTask("nothing here"); !errors.Is(err, application.ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestCountByCategory(t *testing.T) {
	repo := NewRepository(t.TempDir())

	// A fresh vault with no folders counts everything as zero.
	counts, err := repo.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory on empty vault: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("counts = %v, want empty", counts)
	}

	if err := repo.EnsureStructure(); err != nil {
		t.Fatalf("EnsureStructure: %v", err)
	}
	for _, title := range []string{"One", "Two"} {
		if _, err := repo.FileNote(testNote(title, domain.CategoryIdeas)); err != nil {
			t.Fatalf("FileNote: %v", err)
		}
	}

	counts, err = repo.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if counts[domain.CategoryIdeas] != 2 {
		t.Errorf("Ideas = %d, want 2", counts[domain.CategoryIdeas])
	}
}

func TestWalkFilters(t *testing.T) {
	repo := testRepo(t)

	old := testNote("Old note", domain.CategoryProjects)
	old.CreatedAt = time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
	if _, err := repo.FileNote(old); err != nil {
		t.Fatalf("FileNote: %v", err)
	}
	if _, err := repo.FileNote(testNote("Fresh note", domain.CategoryProjects)); err != nil {
		t.Fatalf("FileNote: %v", err)
	}

	var titles []string
	filter := ports.ReadFilter{Since: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)}
	err := repo.Walk(filter, func(doc *domain.Document) error {
		titles = append(titles, doc.Meta.Title)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(titles) != 1 || titles[0] != "Fresh note" {
		t.Errorf("titles = %v, want [Fresh note]", titles)
	}
}

func TestWalkSkipsBrokenFiles(t *testing.T) {
	repo := testRepo(t)
	if _, err := repo.FileNote(testNote("Good note", domain.CategoryIdeas)); err != nil {
		t.Fatalf("FileNote: %v", err)
	}
	broken := filepath.Join(repo.VaultPath(), "Ideas", "broken.md")
	if err := os.WriteFile(broken, []byte("no frontmatter here"), 0644); err != nil {
		t.Fatalf("writing broken file: %v", err)
	}

	seen := 0
	err := repo.Walk(ports.ReadFilter{Category: domain.CategoryIdeas}, func(doc *domain.Document) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if seen != 1 {
		t.Errorf("walked %d documents, want 1", seen)
	}
}

func TestWalkStopsEarly(t *testing.T) {
	repo := testRepo(t)
	for _, title := range []string{"One", "Two", "Three"} {
		if _, err := repo.FileNote(testNote(title, domain.CategoryAdmin)); err != nil {
			t.Fatalf("FileNote: %v", err)
		}
	}

	seen := 0
	err := repo.Walk(ports.ReadFilter{}, func(doc *domain.Document) error {
		seen++
		return ports.ErrStopWalk
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if seen != 1 {
		t.Errorf("walked %d documents, want 1", seen)
	}
}
