package check

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Report is the structured form of a finished run.
type Report struct {
	RunID     string   `json:"run_id"`
	Milestone string   `json:"milestone,omitempty"`
	Passed    int      `json:"passed"`
	Failed    int      `json:"failed"`
	Total     int      `json:"total"`
	ExitCode  int      `json:"exit_code"`
	Results   []Result `json:"results"`
}

// Report snapshots the current results.
func (c *Check) Report() Report {
	return Report{
		RunID:     c.runID,
		Milestone: c.milestone,
		Passed:    c.Passed(),
		Failed:    c.Failed(),
		Total:     c.Total(),
		ExitCode:  c.ExitCode(),
		Results:   c.Results(),
	}
}

// Write encodes the report as indented JSON followed by a newline.
func (r Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Slug derives a stable identifier from a requirement name: accents are
// stripped, letters lowercased, and every run of other characters becomes a
// single dash.
//
//	Slug("Migrations — Auth & RBAC Tables") == "migrations-auth-rbac-tables"
//	Slug("docker-compose.yml exists")       == "docker-compose-yml-exists"
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = norm.NFC.String(name)
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ColorEnabled reports whether output to w should be coloured: w must be a
// terminal and NO_COLOR must be unset.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
