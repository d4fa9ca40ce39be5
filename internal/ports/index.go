package ports

import (
	"time"

	"inkwell/internal/domain"
)

// IndexStats reports what one index sync touched.
type IndexStats struct {
	FilesScanned int
	Indexed      int
	Removed      int
	Duration     time.Duration
}

// CaptureIndex is a rebuildable query index over the vault. The filesystem
// stays the source of truth; the index answers the time-window and
// status-age questions a folder scan answers poorly.
type CaptureIndex interface {
	// Sync walks the vault and reconciles the index with it, tracking when
	// each document's status last changed.
	Sync() (*IndexStats, error)

	// StuckProjects returns Projects documents that are not done and whose
	// status has been unchanged since before the given time.
	StuckProjects(before time.Time) ([]domain.StuckProject, error)

	// CountSince returns per-category counts of documents created at or
	// after since.
	CountSince(since time.Time) (map[domain.Category]int, error)

	Close() error
}
