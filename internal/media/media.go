// Package media manages per-project image directories on disk. Files
// are keyed by project slug so renaming a project never breaks links.
package media

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mythwiki/internal/domain"
	"mythwiki/internal/storage/fs"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
}

// Store serves and persists media files below a configured base
// directory: <base>/<project-slug>/media/<filename>.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

type File struct {
	Filename string
}

// Dir returns the project's media directory, creating it on demand.
func (s *Store) Dir(projectSlug string) (string, error) {
	dir := filepath.Join(s.baseDir, projectSlug, "media")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.PersistenceError{Op: "create media dir", Err: err}
	}
	return dir, nil
}

// AllowedExtension reports whether the filename carries one of the
// accepted image extensions, case-insensitively.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save stores an uploaded file under the project's media directory.
// The name is sanitized to a bare basename and deduplicated with
// -2, -3... suffixes; the O_EXCL create makes the dedupe safe against
// concurrent uploads of the same name. Returns the stored filename.
func (s *Store) Save(projectSlug, filename string, r io.Reader) (string, error) {
	if filename == "" {
		return "", &domain.ValidationError{Message: "No file selected."}
	}
	name := fs.SafeBaseName(filename)
	if name == "" {
		return "", &domain.ValidationError{Message: "Invalid filename."}
	}
	if !AllowedExtension(name) {
		return "", &domain.ValidationError{Message: "Unsupported file type. Upload PNG, JPG, JPEG, WEBP, or GIF."}
	}

	dir, err := s.Dir(projectSlug)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := name
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		target, err := fs.ResolveUnderRoot(dir, candidate)
		if err != nil {
			return "", err
		}
		f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", &domain.PersistenceError{Op: "create media file", Err: err}
		}
		if _, err := io.Copy(f, r); err != nil {
			f.Close()
			// A partially written file is surfaced, not cleaned up.
			return "", &domain.PersistenceError{Op: "write media file", Err: err}
		}
		if err := f.Close(); err != nil {
			return "", &domain.PersistenceError{Op: "close media file", Err: err}
		}
		slog.Info("media saved", "project", projectSlug, "filename", candidate)
		return candidate, nil
	}
}

// List returns the project's media files with allowed extensions,
// sorted case-insensitively by name.
func (s *Store) List(projectSlug string) ([]File, error) {
	dir, err := s.Dir(projectSlug)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read media dir", Err: err}
	}

	var out []File
	for _, e := range entries {
		if e.IsDir() || !AllowedExtension(e.Name()) {
			continue
		}
		out = append(out, File{Filename: e.Name()})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Filename) < strings.ToLower(out[j].Filename)
	})
	return out, nil
}

// Count returns the number of listable media files for a project.
func (s *Store) Count(projectSlug string) (int, error) {
	files, err := s.List(projectSlug)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// FilePath resolves a stored filename to an absolute path guaranteed
// to lie inside the project's media directory, suitable for serving.
func (s *Store) FilePath(projectSlug, filename string) (string, error) {
	dir, err := s.Dir(projectSlug)
	if err != nil {
		return "", err
	}
	return fs.ResolveUnderRoot(dir, filename)
}
