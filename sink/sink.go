// Package sink provides output destinations for generated Kotlin files.
package sink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// TempPattern names temporary files created during atomic writes.
const TempPattern = ".rxhttpgen-*.tmp"

// ErrExists is returned by FilesystemSink when Overwrite is false and the
// target file exists.
var ErrExists = errors.New("file already exists")

// OutputSink receives generated file content.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to the slash-separated relative path.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes below a root directory on the local filesystem.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite replaces existing files. If false, writing to an existing
	// path fails with ErrExists.
	Overwrite bool

	// SkipUnchanged leaves a file untouched when its content already
	// matches, so build tools watching modification times stay quiet.
	SkipUnchanged bool
}

// NewFilesystemSink returns a sink that overwrites files under root and
// skips unchanged ones.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:          root,
		Mode:          0644,
		Overwrite:     true,
		SkipUnchanged: true,
	}
}

// WriteFile writes content to path within the root directory, creating
// parent directories as needed. The write goes to a temp file that is then
// renamed (or hard-linked when Overwrite is false) into place.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}
	if s.Overwrite && s.SkipUnchanged {
		if existing, err := os.ReadFile(fullPath); err == nil && bytes.Equal(existing, content) {
			return nil
		}
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create directories")
	}
	tempPath, err := s.writeTemp(dir, content)
	if err != nil {
		return err
	}
	// Best effort; after a successful rename the temp file is gone.
	defer os.Remove(tempPath)

	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Overwrite {
		return errors.Wrap(os.Rename(tempPath, fullPath), "rename temp file")
	}
	// Link fails atomically if the target exists, avoiding a stat+rename race.
	if err := os.Link(tempPath, fullPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.Wrapf(ErrExists, "%q", path)
		}
		return errors.Wrap(err, "create file")
	}
	return nil
}

// resolve joins path to the root and rejects results outside it.
func (s *FilesystemSink) resolve(path string) (string, error) {
	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", errors.Wrap(err, "resolve root directory")
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", errors.Wrap(err, "resolve path")
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return "", errors.Newf("path escapes root directory: %q", path)
	}
	return fullPath, nil
}

// writeTemp writes content to a new temp file in dir with the sink's mode.
func (s *FilesystemSink) writeTemp(dir string, content []byte) (string, error) {
	f, err := os.CreateTemp(dir, TempPattern)
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	tempPath := f.Name()
	_, writeErr := f.Write(content)
	closeErr := f.Close()

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}
	switch {
	case writeErr != nil:
		err = errors.Wrap(writeErr, "write temp file")
	case closeErr != nil:
		err = errors.Wrap(closeErr, "close temp file")
	default:
		err = errors.Wrap(os.Chmod(tempPath, mode), "set file mode")
	}
	if err != nil {
		_ = os.Remove(tempPath)
		return "", err
	}
	return tempPath, nil
}

// MemorySink stores generated files in memory.
// All operations are thread-safe.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates a new MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = bytes.Clone(content)
	return nil
}

// Files returns a copy of all written files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		result[path] = bytes.Clone(content)
	}
	return result
}

// Paths returns the written paths in sorted order.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for path := range s.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Get returns the content of a single file, or nil if not found.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return nil
	}
	return bytes.Clone(content)
}

// Reset clears all stored files.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string][]byte)
}

// ValidatePath checks that path is relative, slash-separated, clean, and
// free of ".." components.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}
	// Windows drive letters, checked on every platform.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}
	slashed := filepath.ToSlash(path)
	if cleaned := filepath.Clean(slashed); cleaned != slashed {
		return errors.Newf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
