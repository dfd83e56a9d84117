package check

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Status is the outcome of one requirement.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Exit codes returned by Summary and passed to the exit function.
const (
	ExitPass = 0
	ExitFail = 1
)

// rule is the banner line used by every banner in the output.
var rule = strings.Repeat("=", 60)

// Result is one evaluated requirement. It is created by Record and never
// modified afterwards.
type Result struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Passed reports whether the requirement was satisfied.
func (r Result) Passed() bool {
	return r.Status == StatusPass
}

// Check accumulates results in insertion order.
// It is not safe for concurrent use; runs are sequential.
type Check struct {
	w         io.Writer
	results   []Result
	exit      func(int)
	color     bool
	jsonOut   io.Writer
	runID     string
	milestone string

	passColor *color.Color
	failColor *color.Color
}

// Option configures a Check.
type Option func(*Check)

// WithExit replaces os.Exit as the function Finalize terminates with.
func WithExit(exit func(int)) Option {
	return func(c *Check) { c.exit = exit }
}

// WithColor colours the PASS/FAIL token. Use ColorEnabled to decide.
func WithColor(enabled bool) Option {
	return func(c *Check) { c.color = enabled }
}

// WithJSON writes a Report to w when the summary is printed.
func WithJSON(w io.Writer) Option {
	return func(c *Check) { c.jsonOut = w }
}

// WithRunID fixes the run ID instead of generating a UUIDv7.
func WithRunID(id string) Option {
	return func(c *Check) { c.runID = id }
}

// WithMilestone names the milestone in the Report.
func WithMilestone(id string) Option {
	return func(c *Check) { c.milestone = id }
}

// New creates a Check that writes progress to w.
func New(w io.Writer, opts ...Option) *Check {
	c := &Check{
		w:         w,
		exit:      os.Exit,
		passColor: color.New(color.FgGreen, color.Bold),
		failColor: color.New(color.FgRed, color.Bold),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runID == "" {
		c.runID = uuid.Must(uuid.NewV7()).String()
	}
	// fatih/color disables itself globally for non-TTY stdout; the
	// decision here is per Check.
	if c.color {
		c.passColor.EnableColor()
		c.failColor.EnableColor()
	} else {
		c.passColor.DisableColor()
		c.failColor.DisableColor()
	}
	return c
}

// Record appends a result and prints its progress line. Multiple detail
// arguments are joined with a space; an empty detail prints nothing extra.
// It returns passed so callers can gate follow-up checks on it.
func (c *Check) Record(name string, passed bool, detail ...string) bool {
	status := StatusFail
	if passed {
		status = StatusPass
	}
	d := strings.Join(detail, " ")

	c.results = append(c.results, Result{
		ID:     Slug(name),
		Name:   name,
		Status: status,
		Detail: d,
	})

	fmt.Fprintf(c.w, "  [%s] %s\n", c.token(status), name)
	if d != "" {
		fmt.Fprintf(c.w, "         %s\n", d)
	}
	return passed
}

// Passed counts passing results.
func (c *Check) Passed() int {
	return c.count(StatusPass)
}

// Failed counts failing results.
func (c *Check) Failed() int {
	return c.count(StatusFail)
}

// Total counts all results.
func (c *Check) Total() int {
	return len(c.results)
}

// Results returns a copy of the recorded results in insertion order.
func (c *Check) Results() []Result {
	out := make([]Result, len(c.results))
	copy(out, c.results)
	return out
}

// ExitCode is ExitPass when nothing failed and ExitFail otherwise.
func (c *Check) ExitCode() int {
	if c.Failed() > 0 {
		return ExitFail
	}
	return ExitPass
}

// Banner prints the top-level milestone banner.
func (c *Check) Banner(title string) {
	fmt.Fprintf(c.w, "%s\n  %s\n%s\n", rule, title, rule)
}

// Section prints a section banner. Sections are cosmetic and never affect
// the tally.
func (c *Check) Section(title string) {
	fmt.Fprintf(c.w, "\n%s\n  %s\n%s\n", rule, title, rule)
}

// Summary prints the totals and either the consolidated failure list or the
// success line, writes the JSON report when configured, and returns the exit
// code. It does not terminate the process.
func (c *Check) Summary() int {
	fmt.Fprintf(c.w, "\n%s\n", rule)
	fmt.Fprintf(c.w, "  RESULTS: %d/%d passed, %d failed\n", c.Passed(), c.Total(), c.Failed())
	fmt.Fprintln(c.w, rule)

	if c.Failed() > 0 {
		fmt.Fprintln(c.w, "\n  Failed checks:")
		for _, r := range c.results {
			if r.Passed() {
				continue
			}
			if r.Detail != "" {
				fmt.Fprintf(c.w, "    - %s (%s)\n", r.Name, r.Detail)
			} else {
				fmt.Fprintf(c.w, "    - %s\n", r.Name)
			}
		}
	} else {
		fmt.Fprintln(c.w, "\n  All checks passed.")
	}

	if c.jsonOut != nil {
		// Report write errors never change the exit code.
		_ = c.Report().Write(c.jsonOut)
	}
	return c.ExitCode()
}

// Finalize prints the summary and terminates through the exit function.
// It must be the last call of a run.
func (c *Check) Finalize() {
	c.exit(c.Summary())
}

func (c *Check) count(s Status) int {
	n := 0
	for _, r := range c.results {
		if r.Status == s {
			n++
		}
	}
	return n
}

func (c *Check) token(s Status) string {
	if s == StatusPass {
		return c.passColor.Sprint(s)
	}
	return c.failColor.Sprint(s)
}
