package milestone

import (
	"context"

	"github.com/roach88/specgate/internal/predicate"
)

// Milestone turns the manifest into a runnable milestone.
func (m *Manifest) Milestone() Milestone {
	return Milestone{ID: m.ID, Title: m.Title, Run: m.run}
}

func (m *Manifest) run(ctx context.Context, s *Script) {
	// passed[name] is absent for skipped requirements, which keeps
	// their dependents skipped as well.
	passed := make(map[string]bool)

	for _, sec := range m.Sections {
		s.Section(sec.Title)
		for _, req := range sec.Checks {
			if req.When != "" && !passed[req.When] {
				s.skipped(req.Name, req.When)
				continue
			}
			passed[req.Name] = s.Record(req.Name, req.Predicate.Eval(s.Root()))
		}
	}

	for _, rt := range m.Runtime {
		if rt.Section != "" {
			s.Section(rt.Section)
		}
		s.Runtime(ctx, rt.Check())
	}
}

// Eval evaluates the predicate against root. Like every predicate it is
// total: an empty node is false.
func (p *Predicate) Eval(root *predicate.Root) bool {
	switch {
	case p.File != "":
		return root.ExistsFile(p.File)
	case p.Dir != "":
		return root.ExistsDir(p.Dir)
	case p.Contains != nil:
		return root.Contains(p.Contains.Path, p.Contains.Text)
	case p.Matches != nil:
		return root.Matches(p.Matches.Path, p.Matches.Pattern)
	case p.Count != nil:
		var opts []predicate.MatchOption
		if p.Count.CaseSensitive {
			opts = append(opts, predicate.CaseSensitive())
		}
		want := p.Count.Min
		if want < 1 {
			want = 1
		}
		return root.CountMatching(p.Count.Dir, p.Count.Pattern, opts...) >= want
	case len(p.Any) > 0:
		for i := range p.Any {
			if p.Any[i].Eval(root) {
				return true
			}
		}
		return false
	case len(p.All) > 0:
		for i := range p.All {
			if !p.All[i].Eval(root) {
				return false
			}
		}
		return true
	}
	return false
}
