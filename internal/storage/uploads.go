// Package storage persists uploaded images so the result page can show them.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var ErrEmptyName = errors.New("empty file name")

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces name to a plain ASCII base name safe to join onto
// a directory. It may return "" for names with no usable characters.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		if r == '/' || r == '\\' {
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// Saved describes one persisted upload.
type Saved struct {
	Name string // <uuid>_<sanitized name>
	Path string // on-disk location
	URL  string // public location under the store's URL prefix
}

// Store writes uploads into a single directory.
type Store struct {
	dir       string
	urlPrefix string
}

// NewStore creates dir if needed.
func NewStore(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save copies r to <dir>/<uuid>_<sanitized original>. A partially written
// file is removed when the copy fails.
func (s *Store) Save(original string, r io.Reader) (*Saved, error) {
	if original == "" {
		return nil, ErrEmptyName
	}
	name := uuid.New().String() + "_" + SanitizeFilename(original)
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return nil, fmt.Errorf("close %s: %w", name, err)
	}

	return &Saved{Name: name, Path: full, URL: path.Join(s.urlPrefix, name)}, nil
}

// Open reads back a saved upload.
func (s *Store) Open(saved *Saved) (*os.File, error) {
	return os.Open(saved.Path)
}

// Remove deletes a saved upload. Missing files are not an error.
func (s *Store) Remove(saved *Saved) error {
	if err := os.Remove(saved.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
