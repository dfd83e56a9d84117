package milestone

import (
	"fmt"
	"regexp"
	"time"
)

// ManifestError reports an invalid manifest field.
type ManifestError struct {
	Field   string // e.g. "sections[0].checks[3].contains.path"
	Message string
}

func (e *ManifestError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldErr(field, format string, args ...any) error {
	return &ManifestError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that required fields are present, that each predicate
// node has exactly one kind, that patterns compile, and that every when gate
// names an earlier requirement.
func (m *Manifest) Validate() error {
	if m.ID == "" {
		return fieldErr("id", "is required")
	}
	if m.Title == "" {
		return fieldErr("title", "is required")
	}
	if m.Count() == 0 {
		return fieldErr("sections", "at least one check or runtime entry is required")
	}

	seen := make(map[string]bool)
	for i, sec := range m.Sections {
		field := fmt.Sprintf("sections[%d]", i)
		if sec.Title == "" {
			return fieldErr(field+".title", "is required")
		}
		if len(sec.Checks) == 0 {
			return fieldErr(field+".checks", "must be non-empty")
		}
		for j, req := range sec.Checks {
			reqField := fmt.Sprintf("%s.checks[%d]", field, j)
			if req.Name == "" {
				return fieldErr(reqField+".name", "is required")
			}
			if req.When != "" && !seen[req.When] {
				return fieldErr(reqField+".when", "%q does not name an earlier requirement", req.When)
			}
			if err := req.Predicate.validate(reqField); err != nil {
				return err
			}
			seen[req.Name] = true
		}
	}

	for i, rt := range m.Runtime {
		field := fmt.Sprintf("runtime[%d]", i)
		if rt.Name == "" {
			return fieldErr(field+".name", "is required")
		}
		if rt.Command == "" {
			return fieldErr(field+".command", "is required")
		}
		if rt.Timeout != "" {
			d, err := time.ParseDuration(rt.Timeout)
			if err != nil {
				return fieldErr(field+".timeout", "invalid duration %q", rt.Timeout)
			}
			if d <= 0 {
				return fieldErr(field+".timeout", "must be positive, got %s", rt.Timeout)
			}
		}
	}
	return nil
}

func (p *Predicate) kinds() []string {
	var k []string
	if p.File != "" {
		k = append(k, "file")
	}
	if p.Dir != "" {
		k = append(k, "dir")
	}
	if p.Contains != nil {
		k = append(k, "contains")
	}
	if p.Matches != nil {
		k = append(k, "matches")
	}
	if p.Count != nil {
		k = append(k, "count")
	}
	if p.Any != nil {
		k = append(k, "any")
	}
	if p.All != nil {
		k = append(k, "all")
	}
	return k
}

func (p *Predicate) validate(field string) error {
	kinds := p.kinds()
	switch len(kinds) {
	case 0:
		return fieldErr(field, "one of file, dir, contains, matches, count, any, all is required")
	case 1:
	default:
		return fieldErr(field, "exactly one predicate is allowed, found %v", kinds)
	}

	switch kinds[0] {
	case "contains":
		if p.Contains.Path == "" {
			return fieldErr(field+".contains.path", "is required")
		}
		if p.Contains.Text == "" {
			return fieldErr(field+".contains.text", "is required")
		}
	case "matches":
		if p.Matches.Path == "" {
			return fieldErr(field+".matches.path", "is required")
		}
		if _, err := regexp.Compile(p.Matches.Pattern); p.Matches.Pattern == "" || err != nil {
			return fieldErr(field+".matches.pattern", "must be a valid regular expression")
		}
	case "count":
		if p.Count.Dir == "" {
			return fieldErr(field+".count.dir", "is required")
		}
		if _, err := regexp.Compile(p.Count.Pattern); p.Count.Pattern == "" || err != nil {
			return fieldErr(field+".count.pattern", "must be a valid regular expression")
		}
		if p.Count.Min < 0 {
			return fieldErr(field+".count.min", "must be non-negative, got %d", p.Count.Min)
		}
	case "any", "all":
		nodes := p.Any
		if kinds[0] == "all" {
			nodes = p.All
		}
		if len(nodes) == 0 {
			return fieldErr(field+"."+kinds[0], "must be non-empty")
		}
		for i := range nodes {
			if err := nodes[i].validate(fmt.Sprintf("%s.%s[%d]", field, kinds[0], i)); err != nil {
				return err
			}
		}
	}
	return nil
}
