package filesystem

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/domain"
)

const ledgerFilename = "Inbox-Log.tsv"

// Ledger implements ports.AuditLedger as a tab-separated file at the vault
// root. Rows are only ever appended.
type Ledger struct {
	path string
}

// NewLedger creates a ledger stored inside the given vault.
func NewLedger(vaultPath string) *Ledger {
	if strings.HasPrefix(vaultPath, "~") {
		home, _ := os.UserHomeDir()
		vaultPath = filepath.Join(home, vaultPath[1:])
	}
	return &Ledger{path: filepath.Join(vaultPath, ledgerFilename)}
}

// Path returns the ledger file location.
func (l *Ledger) Path() string {
	return l.path
}

// Append writes one row. The file is opened O_APPEND per call; the OS
// makes single-line appends atomic for this file size.
func (l *Ledger) Append(entry domain.AuditEntry) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry.Row() + "\n"); err != nil {
		return fmt.Errorf("failed to append ledger row: %w", err)
	}
	return nil
}

// Tail returns up to n of the most recent entries, oldest first. Rows that
// fail to parse are skipped; the ledger may predate format changes.
func (l *Ledger) Tail(n int) ([]domain.AuditEntry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	var entries []domain.AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		entry, err := domain.ParseAuditRow(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
