package domain

import (
	"fmt"
	"strings"
	"time"
)

// DigestVariant selects the aggregation window and heading of a digest.
type DigestVariant int

const (
	DigestDaily DigestVariant = iota
	DigestWeekly
)

func (v DigestVariant) String() string {
	if v == DigestWeekly {
		return "Weekly Review"
	}
	return "Morning Briefing"
}

// WindowStart returns the inclusive start of the digest window: midnight
// yesterday for the daily briefing, midnight of the most recent Sunday for
// the weekly review.
func (v DigestVariant) WindowStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if v == DigestWeekly {
		return midnight.AddDate(0, 0, -int(now.Weekday()))
	}
	return midnight.AddDate(0, 0, -1)
}

// StuckProject is a Projects document whose status has not changed for
// longer than the configured window.
type StuckProject struct {
	Title  string
	Status string
	Since  time.Time
}

// DigestData is the deterministic aggregate a digest is built from. It is
// handed to the summarizer as a fact sheet, and rendered directly when
// summarization is unavailable.
type DigestData struct {
	Variant     DigestVariant
	WindowStart time.Time
	GeneratedAt time.Time
	NewCounts   map[Category]int
	NextActions []string
	DueDates    []string
	FollowUps   []string
	Stuck       []StuckProject
}

// NewDigestData prepares an empty aggregate for the given variant.
func NewDigestData(variant DigestVariant, now time.Time) *DigestData {
	return &DigestData{
		Variant:     variant,
		WindowStart: variant.WindowStart(now),
		GeneratedAt: now,
		NewCounts:   make(map[Category]int),
	}
}

// Add folds one in-window document into the aggregate. Done documents are
// counted but contribute no actions.
func (d *DigestData) Add(doc *Document) {
	d.NewCounts[doc.Category]++
	if doc.Meta.Status == StatusDone {
		return
	}
	switch doc.Category {
	case CategoryProjects, CategoryAdmin:
		for _, task := range doc.Meta.Tasks {
			d.NextActions = append(d.NextActions, fmt.Sprintf("%s — %s", doc.Meta.Title, task))
		}
		if doc.Meta.Due != "" {
			d.DueDates = append(d.DueDates, fmt.Sprintf("%s — due %s", doc.Meta.Title, doc.Meta.Due))
		}
	case CategoryPeople:
		for _, task := range doc.Meta.Tasks {
			d.FollowUps = append(d.FollowUps, fmt.Sprintf("%s — %s", doc.Meta.Title, task))
		}
	}
}

// TotalNew returns the number of documents captured in the window.
func (d *DigestData) TotalNew() int {
	total := 0
	for _, n := range d.NewCounts {
		total += n
	}
	return total
}

// Empty reports whether the window produced nothing to report.
func (d *DigestData) Empty() bool {
	return d.TotalNew() == 0 && len(d.Stuck) == 0
}

// Facts renders the aggregate as the plain-text fact sheet handed to the
// summarization call.
func (d *DigestData) Facts() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Window: %s since %s\n", d.Variant, d.WindowStart.Format("2006-01-02"))
	fmt.Fprintf(&sb, "New notes: %d\n", d.TotalNew())
	for _, cat := range Categories {
		if n := d.NewCounts[cat]; n > 0 {
			fmt.Fprintf(&sb, "  %s: %d\n", cat, n)
		}
	}
	writeList(&sb, "Next actions", d.NextActions)
	writeList(&sb, "Due", d.DueDates)
	writeList(&sb, "Follow-ups", d.FollowUps)
	if len(d.Stuck) > 0 {
		sb.WriteString("Stuck projects:\n")
		for _, p := range d.Stuck {
			fmt.Fprintf(&sb, "  %s (status %q since %s)\n", p.Title, p.Status, p.Since.Format("2006-01-02"))
		}
	}
	return sb.String()
}

// RenderFallback produces the deterministic bullet-list digest used when
// the summarizer is unavailable. It is always well-formed, including for an
// empty window.
func (d *DigestData) RenderFallback() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (since %s)\n", d.Variant, d.WindowStart.Format("2006-01-02"))
	if d.Empty() {
		sb.WriteString("\nNothing new captured in this window. Inbox is clear.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "\nNew notes: %d\n", d.TotalNew())
	for _, cat := range Categories {
		if n := d.NewCounts[cat]; n > 0 {
			fmt.Fprintf(&sb, "- %s: %d\n", cat, n)
		}
	}
	writeBullets(&sb, "Next actions", d.NextActions)
	writeBullets(&sb, "Due", d.DueDates)
	writeBullets(&sb, "Follow-ups", d.FollowUps)
	if len(d.Stuck) > 0 {
		sb.WriteString("\nStuck projects\n")
		for _, p := range d.Stuck {
			fmt.Fprintf(&sb, "- %s (status %q since %s)\n", p.Title, p.Status, p.Since.Format("2006-01-02"))
		}
	}
	return sb.String()
}

func writeList(sb *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(header + ":\n")
	for _, item := range items {
		fmt.Fprintf(sb, "  %s\n", item)
	}
}

func writeBullets(sb *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", header)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}
