package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.CaptureIndex using SQLite. The vault stays the
// source of truth; Sync reconciles the index against it and tracks when
// each document's status last changed, which the filesystem alone cannot
// answer.
type Index struct {
	db        *sql.DB
	vault     ports.VaultRepository
	vaultPath string
	dbPath    string
	now       func() time.Time
}

// Ensure Index implements CaptureIndex
var _ ports.CaptureIndex = (*Index)(nil)

// NewIndex creates a new SQLite index over the given vault.
func NewIndex(vault ports.VaultRepository) *Index {
	return &Index{vault: vault, now: time.Now}
}

// Open initializes the index for the given vault path
func (idx *Index) Open(vaultPath string) error {
	// Expand ~ in path
	if len(vaultPath) > 0 && vaultPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		vaultPath = filepath.Join(home, vaultPath[1:])
	}

	idx.vaultPath = vaultPath
	idx.dbPath = databasePath(vaultPath)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS notes (
			path TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			created INTEGER NOT NULL,
			status_changed_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_category ON notes(category);
		CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := idx.checkMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to verify index metadata: %w", err)
	}
	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Sync walks the vault and reconciles the index with it. A document whose
// status differs from the indexed row gets a fresh status_changed_at; rows
// whose files disappeared are removed.
func (idx *Index) Sync() (*ports.IndexStats, error) {
	start := idx.now()
	stats := &ports.IndexStats{}

	tx, err := idx.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync: %w", err)
	}
	defer tx.Rollback()

	existing := make(map[string]string) // path -> status
	rows, err := tx.Query("SELECT path, status FROM notes")
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	for rows.Next() {
		var path, status string
		if err := rows.Scan(&path, &status); err != nil {
			rows.Close()
			return nil, err
		}
		existing[path] = status
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	nowUnix := start.Unix()
	err = idx.vault.Walk(ports.ReadFilter{}, func(doc *domain.Document) error {
		stats.FilesScanned++
		seen[doc.Path] = true

		prevStatus, known := existing[doc.Path]
		statusChanged := nowUnix
		if known && prevStatus == doc.Meta.Status {
			// Status unchanged; keep the recorded change time.
			var keep int64
			if err := tx.QueryRow("SELECT status_changed_at FROM notes WHERE path = ?", doc.Path).Scan(&keep); err == nil {
				statusChanged = keep
			}
		}

		_, err := tx.Exec(`
			INSERT OR REPLACE INTO notes (path, category, title, status, created, status_changed_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, doc.Path, string(doc.Category), doc.Meta.Title, doc.Meta.Status, doc.CreatedAt().Unix(), statusChanged)
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", doc.Path, err)
		}
		stats.Indexed++
		return nil
	})
	if err != nil {
		return nil, err
	}

	for path := range existing {
		if seen[path] {
			continue
		}
		if _, err := tx.Exec("DELETE FROM notes WHERE path = ?", path); err != nil {
			return nil, fmt.Errorf("failed to prune %s: %w", path, err)
		}
		stats.Removed++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sync: %w", err)
	}
	stats.Duration = idx.now().Sub(start)
	return stats, nil
}

// StuckProjects returns Projects documents that are not done and whose
// status has been unchanged since before the given time.
func (idx *Index) StuckProjects(before time.Time) ([]domain.StuckProject, error) {
	rows, err := idx.db.Query(`
		SELECT title, status, status_changed_at
		FROM notes
		WHERE category = ? AND status != ? AND status_changed_at < ?
		ORDER BY status_changed_at
	`, string(domain.CategoryProjects), domain.StatusDone, before.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query stuck projects: %w", err)
	}
	defer rows.Close()

	var stuck []domain.StuckProject
	for rows.Next() {
		var p domain.StuckProject
		var since int64
		if err := rows.Scan(&p.Title, &p.Status, &since); err != nil {
			return nil, err
		}
		p.Since = time.Unix(since, 0).UTC()
		stuck = append(stuck, p)
	}
	return stuck, rows.Err()
}

// CountSince returns per-category counts of documents created at or after
// since.
func (idx *Index) CountSince(since time.Time) (map[domain.Category]int, error) {
	rows, err := idx.db.Query(`
		SELECT category, COUNT(*)
		FROM notes
		WHERE created >= ?
		GROUP BY category
	`, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Category]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[domain.Category(category)] = n
	}
	return counts, rows.Err()
}

// databasePath returns the path for the SQLite database
func databasePath(vaultPath string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	// Hash vault path for unique DB name
	hash := hashVaultPath(vaultPath)

	return filepath.Join(dataHome, "inkwell", hash+".db")
}

// hashVaultPath returns a short hash of the vault path
func hashVaultPath(vaultPath string) string {
	h := sha256.Sum256([]byte(vaultPath))
	return hex.EncodeToString(h[:8])
}

// checkMeta resets the index when the schema version or vault path no
// longer match; the next Sync rebuilds it from the vault.
func (idx *Index) checkMeta() error {
	var version, vaultHash string
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'vault_path_hash'").Scan(&vaultHash)

	expectedHash := hashVaultPath(idx.vaultPath)
	if version != schemaVersion || vaultHash != expectedHash {
		if _, err := idx.db.Exec("DELETE FROM notes"); err != nil {
			return err
		}
	}

	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('vault_path_hash', ?);
	`, schemaVersion, expectedHash)
	return err
}
