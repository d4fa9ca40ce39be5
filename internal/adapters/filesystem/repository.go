package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"inkwell/internal/application"
	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

const maxSlugAttempts = 100

// Repository implements ports.VaultRepository using the filesystem: one
// folder per category, one markdown file per note.
type Repository struct {
	vaultPath string
}

// NewRepository creates a new filesystem repository
func NewRepository(vaultPath string) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(vaultPath, "~") {
		home, _ := os.UserHomeDir()
		vaultPath = filepath.Join(home, vaultPath[1:])
	}
	return &Repository{vaultPath: vaultPath}
}

// VaultPath returns the expanded vault root.
func (r *Repository) VaultPath() string {
	return r.vaultPath
}

// EnsureStructure creates the vault root and category folders if missing
func (r *Repository) EnsureStructure() error {
	for _, cat := range domain.Categories {
		dir := filepath.Join(r.vaultPath, string(cat))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s folder: %w", cat, err)
		}
	}
	return nil
}

// FileNote persists a classified note as a new markdown document. On a
// filename collision the slug gets a numeric suffix; existing documents
// are never overwritten.
func (r *Repository) FileNote(note *domain.Note) (*domain.Document, error) {
	doc := domain.NewDocument(note)
	categoryDir := filepath.Join(r.vaultPath, string(doc.Category))
	if err := os.MkdirAll(categoryDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create category folder: %w", err)
	}

	slug := doc.Slug
	for attempt := 2; ; attempt++ {
		candidate := filepath.Join(categoryDir, slug+".md")
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			doc.Slug = slug
			doc.Path = candidate
			break
		}
		if attempt > maxSlugAttempts {
			return nil, fmt.Errorf("no free filename for %q in %s", doc.Slug, doc.Category)
		}
		slug = fmt.Sprintf("%s-%d", doc.Slug, attempt)
	}

	if err := r.writeDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Move relocates a document to another category folder and rewrites its
// frontmatter category. The rename happens first so the document is
// observable in exactly one location throughout.
func (r *Repository) Move(doc *domain.Document, to domain.Category) (*domain.Document, error) {
	if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", application.ErrNoMatch, doc.Path)
	}

	dstDir := filepath.Join(r.vaultPath, string(to))
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create category folder: %w", err)
	}

	slug := doc.Slug
	dstPath := filepath.Join(dstDir, slug+".md")
	for attempt := 2; ; attempt++ {
		if _, err := os.Stat(dstPath); os.IsNotExist(err) {
			break
		}
		if attempt > maxSlugAttempts {
			return nil, fmt.Errorf("no free filename for %q in %s", doc.Slug, to)
		}
		slug = fmt.Sprintf("%s-%d", doc.Slug, attempt)
		dstPath = filepath.Join(dstDir, slug+".md")
	}

	if err := os.Rename(doc.Path, dstPath); err != nil {
		return nil, fmt.Errorf("failed to move document: %w", err)
	}

	moved := *doc
	moved.Category = to
	moved.Slug = slug
	moved.Path = dstPath
	moved.Meta.Category = string(to)
	if err := r.writeDocument(&moved); err != nil {
		return nil, fmt.Errorf("moved but frontmatter rewrite failed: %w", err)
	}
	return &moved, nil
}

// CompleteTask checks off the first open task matching hint. When no
// checkbox matches, a document whose title or content matches gets its
// status flipped to done instead.
func (r *Repository) CompleteTask(hint string) (*ports.TaskCompletion, error) {
	lowered := strings.ToLower(hint)

	var checked *ports.TaskCompletion
	err := r.Walk(ports.ReadFilter{}, func(doc *domain.Document) error {
		lines := strings.Split(doc.Body, "\n")
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if !strings.HasPrefix(trimmed, "- [ ] ") {
				continue
			}
			task := strings.TrimPrefix(trimmed, "- [ ] ")
			if !strings.Contains(strings.ToLower(task), lowered) {
				continue
			}
			lines[i] = strings.Replace(line, "- [ ] ", "- [x] ", 1)
			doc.Body = strings.Join(lines, "\n")
			if err := r.writeDocument(doc); err != nil {
				return err
			}
			checked = &ports.TaskCompletion{Document: doc, Task: task}
			return ports.ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if checked != nil {
		return checked, nil
	}

	// No single checkbox matched; fall back to closing a whole document.
	var closed *ports.TaskCompletion
	err = r.Walk(ports.ReadFilter{}, func(doc *domain.Document) error {
		if doc.Meta.Status == domain.StatusDone {
			return nil
		}
		title := strings.ToLower(doc.Meta.Title)
		if !strings.Contains(title, lowered) && !strings.Contains(strings.ToLower(doc.Body), lowered) {
			return nil
		}
		doc.Meta.Status = domain.StatusDone
		if err := r.writeDocument(doc); err != nil {
			return err
		}
		closed = &ports.TaskCompletion{Document: doc, WholeNote: true}
		return ports.ErrStopWalk
	})
	if err != nil {
		return nil, err
	}
	if closed == nil {
		return nil, application.ErrNoMatch
	}
	return closed, nil
}

// CountByCategory scans the category folders. A missing folder counts as
// zero rather than an error so status works on a fresh vault.
func (r *Repository) CountByCategory() (map[domain.Category]int, error) {
	counts := make(map[domain.Category]int)
	for _, cat := range domain.Categories {
		entries, err := os.ReadDir(filepath.Join(r.vaultPath, string(cat)))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s folder: %w", cat, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
				counts[cat]++
			}
		}
	}
	return counts, nil
}

// Walk streams documents matching filter to fn, per category in filename
// order. Unparseable files are skipped; the vault is hand-editable and one
// broken file must not hide the rest.
func (r *Repository) Walk(filter ports.ReadFilter, fn func(*domain.Document) error) error {
	categories := domain.Categories
	if filter.Category != "" {
		categories = []domain.Category{filter.Category}
	}

	for _, cat := range categories {
		dir := filepath.Join(r.vaultPath, string(cat))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to read %s folder: %w", cat, err)
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			doc, err := r.Load(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			created := doc.CreatedAt()
			if !filter.Since.IsZero() && created.Before(filter.Since) {
				continue
			}
			if !filter.Until.IsZero() && !created.Before(filter.Until) {
				continue
			}
			if err := fn(doc); err != nil {
				if err == ports.ErrStopWalk {
					return nil
				}
				return err
			}
		}
	}
	return nil
}

// Load reads a single document from its path
func (r *Repository) Load(path string) (*domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	meta, body, err := domain.ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	category, _ := domain.ParseCategory(filepath.Base(filepath.Dir(path)))
	return &domain.Document{
		Category: category,
		Slug:     strings.TrimSuffix(filepath.Base(path), ".md"),
		Path:     path,
		Meta:     meta,
		Body:     body,
	}, nil
}

// writeDocument renders to a temp file in the target directory and renames
// it into place, so concurrent readers never see a partial document.
func (r *Repository) writeDocument(doc *domain.Document) error {
	raw, err := doc.Render()
	if err != nil {
		return err
	}

	dir := filepath.Dir(doc.Path)
	tmp, err := os.CreateTemp(dir, "."+doc.Slug+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, doc.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize document: %w", err)
	}
	return nil
}
