package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"fwc_backend/internal/models"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// SafeName lowercases a party name and collapses anything that is not
// alphanumeric into single underscores, for use in artifact filenames.
func SafeName(name string) string {
	if name == "" {
		name = "unknown"
	}
	safe := unsafeChars.ReplaceAllString(strings.ToLower(name), "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		safe = "unknown"
	}
	return safe
}

// DocType maps an order kind to its document type suffix.
func DocType(kind models.OrderKind) string {
	if kind == models.KindQuotation {
		return "quotation"
	}
	return "invoice"
}

// Store keeps rendered PDFs on the local filesystem under a single
// directory. Paths stored in order rows point into this directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// FileName builds the deterministic artifact name:
// <safe_party_name>-<ref_id>-<doctype>.pdf
func (s *Store) FileName(partyName, refID string, kind models.OrderKind) string {
	return fmt.Sprintf("%s-%s-%s.pdf", SafeName(partyName), refID, DocType(kind))
}

func (s *Store) Write(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}

func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}

func (s *Store) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	return os.Remove(path)
}
