package domain

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	frontmatterDelimiter = "---"
	createdLayout        = time.RFC3339

	// StatusActive and StatusDone are the document lifecycle statuses kept
	// in frontmatter. Done documents are excluded from digests.
	StatusActive = "active"
	StatusDone   = "done"
)

// Frontmatter is the structured metadata header of a filed document. The
// key set is the durable contract with the human reader; renames here break
// existing vaults.
type Frontmatter struct {
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Status   string   `yaml:"status"`
	Created  string   `yaml:"created"`
	Context  string   `yaml:"context,omitempty"`
	Area     string   `yaml:"area,omitempty"`
	Due      string   `yaml:"due,omitempty"`
	Tasks    []string `yaml:"tasks,omitempty"`
}

// Document is the persisted representation of a filed note.
type Document struct {
	Category Category
	Slug     string
	Path     string
	Meta     Frontmatter
	Body     string
}

// CreatedAt parses the frontmatter timestamp. A malformed or absent value
// returns the zero time rather than an error so window filters simply skip
// the document.
func (d *Document) CreatedAt() time.Time {
	t, err := time.Parse(createdLayout, d.Meta.Created)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NewDocument builds the in-memory document for a note about to be filed.
// The path is assigned by the vault repository.
func NewDocument(note *Note) *Document {
	status := note.Fields.Status
	if status == "" {
		status = StatusActive
	}
	return &Document{
		Category: note.Category,
		Slug:     Slugify(note.Title),
		Meta: Frontmatter{
			Title:    note.Title,
			Category: string(note.Category),
			Status:   status,
			Created:  note.CreatedAt.Format(createdLayout),
			Context:  note.Fields.Context,
			Area:     note.Fields.Area,
			Due:      note.Fields.Due,
			Tasks:    note.Fields.Tasks,
		},
		Body: RenderBody(note.Title, note.Fields),
	}
}

// RenderBody formats extracted fields as the markdown body: a title
// heading, then Tasks as checkboxes, then the remaining sections.
func RenderBody(title string, f Fields) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", title)
	if len(f.Tasks) > 0 {
		sb.WriteString("\n## Tasks\n")
		for _, task := range f.Tasks {
			fmt.Fprintf(&sb, "- [ ] %s\n", task)
		}
	}
	writeSection := func(header, text string) {
		if text != "" {
			fmt.Fprintf(&sb, "\n## %s\n%s\n", header, text)
		}
	}
	writeSection("Notes", f.Notes)
	writeSection("Context", f.Context)
	writeSection("Area", f.Area)
	writeSection("Due", f.Due)
	return sb.String()
}

// Render serializes the document to its on-disk form: a YAML frontmatter
// block followed by the markdown body.
func (d *Document) Render() ([]byte, error) {
	meta, err := yaml.Marshal(&d.Meta)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(frontmatterDelimiter + "\n")
	sb.Write(meta)
	sb.WriteString(frontmatterDelimiter + "\n\n")
	sb.WriteString(d.Body)
	return []byte(sb.String()), nil
}

// ParseDocument splits raw file content into frontmatter and body.
func ParseDocument(raw []byte) (Frontmatter, string, error) {
	var meta Frontmatter
	s := string(raw)
	if !strings.HasPrefix(s, frontmatterDelimiter) {
		return meta, "", fmt.Errorf("missing frontmatter delimiter")
	}
	rest := s[len(frontmatterDelimiter):]
	idx := strings.Index(rest, "\n"+frontmatterDelimiter)
	if idx == -1 {
		return meta, "", fmt.Errorf("unclosed frontmatter block")
	}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return meta, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	body := rest[idx+len("\n"+frontmatterDelimiter):]
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\n")
	return meta, body, nil
}
