package media

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Data        []byte
	Filename    string // client supplied name, only the extension is kept
	ContentType string
}

func (u *Upload) Empty() bool {
	return u == nil || len(u.Data) == 0
}

// Store writes uploads to a flat directory. Stored files are never deleted
// when the records that reference them change.
type Store struct {
	dir string
	now func() time.Time
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes data synchronously and returns the generated filename.
func (s *Store) Save(data []byte, originalName string) (string, error) {
	name := GenerateFilename(s.now(), originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write media %s: %w", name, err)
	}
	return name, nil
}

// Remove deletes a file written by Save. Used only to undo a save whose record
// was never persisted.
func (s *Store) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid media name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var extPattern = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// GenerateFilename builds "<yyyyMMddHHmmssSSS>-<random>.<ext>" from the upload
// time and the original extension.
func GenerateFilename(now time.Time, originalName string) string {
	stamp := strings.ReplaceAll(now.UTC().Format("20060102150405.000"), ".", "")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	ext := filepath.Ext(originalName)
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return stamp + "-" + suffix + ext
}
