package milestone

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/specgate/internal/check"
	"github.com/roach88/specgate/internal/predicate"
)

// DefaultUnavailable is the runtime detail used when a command's tooling is
// missing and the check does not name a more specific message.
const DefaultUnavailable = "tooling not available"

// Script is what a milestone body works with: the run's Check and the
// project root. It is not safe for concurrent use.
type Script struct {
	check   *check.Check
	root    *predicate.Root
	timeout time.Duration
	log     *zap.Logger
}

// NewScript binds a Check to a project root. A non-positive timeout selects
// predicate.DefaultTimeout; a nil logger discards diagnostics.
func NewScript(c *check.Check, root *predicate.Root, timeout time.Duration, log *zap.Logger) *Script {
	if timeout <= 0 {
		timeout = predicate.DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Script{check: c, root: root, timeout: timeout, log: log}
}

// Root returns the project root predicates are evaluated against.
func (s *Script) Root() *predicate.Root {
	return s.root
}

// Section prints a section banner.
func (s *Script) Section(title string) {
	s.check.Section(title)
}

// Record records one requirement and returns passed.
func (s *Script) Record(name string, passed bool, detail ...string) bool {
	return s.check.Record(name, passed, detail...)
}

// RuntimeCheck describes a requirement verified by running a command.
type RuntimeCheck struct {
	Name    string
	Command string

	// Unavailable is the detail when the command or shell cannot be found.
	// Defaults to DefaultUnavailable.
	Unavailable string

	// Failure replaces the last output line as the detail of a non-zero exit.
	Failure string

	// Quiet drops the detail of a passing check.
	Quiet bool

	// Timeout overrides the script's default bound.
	Timeout time.Duration

	// Dir runs the command in a directory relative to the project root.
	Dir string
}

// Runtime runs rc.Command, classifies the outcome and records it.
func (s *Script) Runtime(ctx context.Context, rc RuntimeCheck) bool {
	timeout := rc.Timeout
	if timeout <= 0 {
		timeout = s.timeout
	}
	opts := []predicate.RunOption{predicate.WithTimeout(timeout)}
	if rc.Dir != "" {
		opts = append(opts, predicate.InDir(rc.Dir))
	}

	start := time.Now()
	out := s.root.Run(ctx, rc.Command, opts...)
	s.log.Debug("runtime command finished",
		zap.String("check", rc.Name),
		zap.String("command", rc.Command),
		zap.Stringer("kind", out.Kind),
		zap.Int("exit_code", out.ExitCode),
		zap.Duration("duration", time.Since(start)))

	passed, detail := Classify(out, rc)
	return s.check.Record(rc.Name, passed, detail)
}

// Classify maps a command outcome to a pass/fail status and a one-line
// detail:
//
//   - success: PASS with the last stdout line (none when Quiet)
//   - NotFound: FAIL with rc.Unavailable
//   - TimedOut: FAIL with "Command timed out"
//   - non-zero exit: FAIL with rc.Failure, else the last stdout line, else
//     the last stderr line, else "unknown"
func Classify(out predicate.Outcome, rc RuntimeCheck) (bool, string) {
	switch out.Kind {
	case predicate.NotFound:
		if rc.Unavailable != "" {
			return false, rc.Unavailable
		}
		return false, DefaultUnavailable
	case predicate.TimedOut:
		return false, predicate.MsgTimedOut
	}

	if out.Succeeded {
		if rc.Quiet {
			return true, ""
		}
		return true, predicate.LastLine(out.Stdout)
	}
	if rc.Failure != "" {
		return false, rc.Failure
	}
	if line := predicate.LastLine(out.Stdout); line != "" {
		return false, line
	}
	if line := predicate.LastLine(out.Stderr); line != "" {
		return false, line
	}
	return false, "unknown"
}

// skipped logs a requirement that a false gate kept out of the tally.
func (s *Script) skipped(name, gate string) {
	s.log.Debug("requirement skipped", zap.String("check", name), zap.String("gate", gate))
}

// Env carries what a run needs from its surroundings.
type Env struct {
	// Root is the project directory. Empty searches upwards from the
	// working directory with predicate.FindRoot.
	Root string

	// Out receives the text report. Defaults to os.Stdout.
	Out io.Writer

	// Timeout is the default bound for runtime checks.
	Timeout time.Duration

	Logger *zap.Logger

	// CheckOptions are passed to check.New (exit function, colour, JSON).
	CheckOptions []check.Option
}

// Execute runs m under the milestone contract: one Check, the banner, the
// body, then Finalize, which terminates through the configured exit function.
func Execute(ctx context.Context, m Milestone, env Env) {
	out := env.Out
	if out == nil {
		out = os.Stdout
	}
	dir := env.Root
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		dir = predicate.FindRoot(wd)
	}

	opts := append([]check.Option{check.WithMilestone(m.ID)}, env.CheckOptions...)
	c := check.New(out, opts...)
	s := NewScript(c, predicate.NewRoot(dir), env.Timeout, env.Logger)
	s.log.Debug("milestone started", zap.String("milestone", m.ID), zap.String("root", s.root.Dir()))

	c.Banner(m.Title)
	m.Run(ctx, s)
	c.Finalize()
}
