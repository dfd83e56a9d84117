package predicate

import (
	"os"
	"path/filepath"
)

// DefaultRootMarker is the directory that holds the verification scripts.
// The project root is the directory containing it.
const DefaultRootMarker = "verify"

// Root anchors every predicate to a fixed project directory.
// The zero value is not usable; construct with NewRoot.
type Root struct {
	dir string
}

// NewRoot returns a Root for dir. Relative directories are made absolute
// once, so later changes of the working directory do not move the root.
func NewRoot(dir string) *Root {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Root{dir: dir}
}

// Dir returns the absolute project directory.
func (r *Root) Dir() string {
	return r.dir
}

// Path resolves a slash-separated path relative to the project root.
func (r *Root) Path(rel string) string {
	return filepath.Join(r.dir, filepath.FromSlash(rel))
}

// FindRoot walks up from start and returns the first directory that contains
// one of the markers (DefaultRootMarker when none are given). If no ancestor
// matches, start itself is returned.
func FindRoot(start string, markers ...string) string {
	if len(markers) == 0 {
		markers = []string{DefaultRootMarker}
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}

	for dir := abs; ; {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		dir = parent
	}
}
