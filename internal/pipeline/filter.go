package pipeline

import (
	"path/filepath"
	"strings"
)

// Filter decides whether a filename is eligible for transcription based on
// its extension. The zero value rejects everything.
type Filter struct {
	allowed map[string]struct{}
}

// NewFilter builds a filter from an extension allow-set. Extensions are
// matched case-insensitively and are expected to carry the leading dot
// (config normalization guarantees this).
func NewFilter(extensions []string) Filter {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		allowed[ext] = struct{}{}
	}
	return Filter{allowed: allowed}
}

// Allows reports whether the file named by path has an allowed extension.
// A dotfile such as ".wav" counts as having no extension, not as a bare
// extension.
func (f Filter) Allows(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return false
	}
	_, ok := f.allowed[strings.ToLower(ext)]
	return ok
}
