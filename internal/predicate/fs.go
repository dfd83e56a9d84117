package predicate

import (
	"os"
	"regexp"
	"strings"
)

// ExistsFile reports whether a regular file exists at path.
func (r *Root) ExistsFile(path string) bool {
	info, err := os.Stat(r.Path(path))
	return err == nil && info.Mode().IsRegular()
}

// ExistsDir reports whether a directory exists at path.
func (r *Root) ExistsDir(path string) bool {
	info, err := os.Stat(r.Path(path))
	return err == nil && info.IsDir()
}

// Contains reports whether the file at path contains substring.
// The search is literal and case-sensitive over the whole file.
func (r *Root) Contains(path, substring string) bool {
	text, ok := r.read(path)
	if !ok {
		return false
	}
	return strings.Contains(text, substring)
}

// Matches reports whether pattern matches anywhere in the file at path.
// Patterns use RE2 syntax; a pattern that does not compile never matches.
func (r *Root) Matches(path, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	text, ok := r.read(path)
	if !ok {
		return false
	}
	return re.MatchString(text)
}

type matchConfig struct {
	caseSensitive bool
}

// MatchOption configures CountMatching.
type MatchOption func(*matchConfig)

// CaseSensitive disables the default case-insensitive filename matching.
func CaseSensitive() MatchOption {
	return func(c *matchConfig) { c.caseSensitive = true }
}

// CountMatching counts the entries of dir (non-recursive) whose name matches
// pattern. Matching is case-insensitive unless CaseSensitive is given.
// It returns 0 when dir does not exist or the pattern does not compile.
func (r *Root) CountMatching(dir, pattern string, opts ...MatchOption) int {
	var cfg matchConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0
	}

	n := 0
	for _, name := range r.ListDir(dir) {
		if re.MatchString(name) {
			n++
		}
	}
	return n
}

// ListDir returns the entry names of dir (non-recursive).
// A missing or unreadable directory yields an empty slice.
func (r *Root) ListDir(dir string) []string {
	entries, err := os.ReadDir(r.Path(dir))
	if err != nil {
		return []string{}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (r *Root) read(path string) (string, bool) {
	if !r.ExistsFile(path) {
		return "", false
	}
	data, err := os.ReadFile(r.Path(path))
	if err != nil {
		return "", false
	}
	return string(data), true
}
