// Package fs holds filesystem path-safety and write primitives shared
// by the media store.
package fs

import (
	"path"
	"path/filepath"
	"strings"

	"mythwiki/internal/domain"
)

// Top-level names that user-supplied path segments may never claim.
var reservedNames = map[string]bool{
	"media":     true,
	".mythwiki": true,
}

// NormalizeRelPath cleans a user-supplied relative path. Absolute
// paths, NUL bytes and anything resolving above its own root are
// rejected with a PathTraversalError.
func NormalizeRelPath(p string) (string, error) {
	if strings.ContainsRune(p, 0) {
		return "", &domain.PathTraversalError{Path: p}
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return "", &domain.PathTraversalError{Path: p}
	}
	clean := path.Clean(strings.Trim(p, "/"))
	if clean == "." {
		return "", nil
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", &domain.PathTraversalError{Path: p}
	}
	if reservedNames[strings.ToLower(firstSegment(clean))] {
		return "", &domain.PathTraversalError{Path: p}
	}
	return clean, nil
}

// ResolveUnderRoot joins rel onto root and verifies the result still
// lies inside root.
func ResolveUnderRoot(root, rel string) (string, error) {
	clean, err := NormalizeRelPath(rel)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.FromSlash(clean))
	back, err := filepath.Rel(root, full)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", &domain.PathTraversalError{Path: rel}
	}
	return full, nil
}

// SafeBaseName reduces a user-supplied filename to a bare base name:
// path components are stripped and anything outside letters, digits,
// dot, dash and underscore is dropped. Returns "" when nothing safe
// remains.
func SafeBaseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return ""
	}
	return out
}

func firstSegment(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}
