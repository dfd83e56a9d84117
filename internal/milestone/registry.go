package milestone

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Milestone is a named delivery milestone and the body that verifies it.
type Milestone struct {
	ID    string
	Title string
	Run   func(ctx context.Context, s *Script)
}

//go:embed manifests/*.yaml
var manifestFS embed.FS

// Builtin returns the milestones shipped with specgate, ordered by ID.
// Go-coded milestones are combined with the embedded manifests.
func Builtin() ([]Milestone, error) {
	all := []Milestone{
		{ID: "m1", Title: "VUNNIX M1 — Core Infrastructure Verification", Run: verifyM1},
	}

	entries, err := manifestFS.ReadDir("manifests")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded manifests: %w", err)
	}
	for _, e := range entries {
		data, err := manifestFS.ReadFile(path.Join("manifests", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded manifest %s: %w", e.Name(), err)
		}
		m, err := ParseManifest(data)
		if err != nil {
			return nil, fmt.Errorf("embedded manifest %s: %w", e.Name(), err)
		}
		all = append(all, m.Milestone())
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// Lookup finds a built-in milestone by ID, ignoring case.
func Lookup(id string) (Milestone, error) {
	all, err := Builtin()
	if err != nil {
		return Milestone{}, err
	}
	ids := make([]string, 0, len(all))
	for _, m := range all {
		if strings.EqualFold(m.ID, id) {
			return m, nil
		}
		ids = append(ids, m.ID)
	}
	return Milestone{}, fmt.Errorf("unknown milestone %q: available milestones are %s", id, strings.Join(ids, ", "))
}
