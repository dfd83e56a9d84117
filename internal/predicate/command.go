package predicate

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a command when no WithTimeout option is given.
const DefaultTimeout = 120 * time.Second

// Diagnostics reported in Outcome.Stderr for the non-completed kinds.
const (
	MsgTimedOut = "Command timed out"
	MsgNotFound = "Command not found"
)

// exitCommandNotFound is the POSIX shell status for an unknown command.
const exitCommandNotFound = 127

// waitDelay caps how long Run waits for output pipes after the child has
// been killed, so grandchildren holding the pipes cannot stall the run.
const waitDelay = time.Second

// Kind classifies how a command ended.
type Kind int

const (
	// Completed means the process ran and exited; ExitCode is set.
	Completed Kind = iota
	// TimedOut means the wall-clock bound (or the parent context) expired.
	TimedOut
	// NotFound means the command, the shell or the working directory
	// does not exist.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Completed:
		return "completed"
	case TimedOut:
		return "timed_out"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Outcome is the transient result of Run.
type Outcome struct {
	Succeeded bool
	Stdout    string // trimmed
	Stderr    string // trimmed
	Kind      Kind
	ExitCode  int // -1 unless Kind is Completed
}

type runConfig struct {
	timeout time.Duration
	dir     string
	shell   string
	env     []string
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithTimeout sets the wall-clock bound. Zero or negative disables the
// bound; the parent context still applies.
func WithTimeout(d time.Duration) RunOption {
	return func(c *runConfig) { c.timeout = d }
}

// InDir runs the command in a directory relative to the project root.
func InDir(rel string) RunOption {
	return func(c *runConfig) { c.dir = rel }
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(kv ...string) RunOption {
	return func(c *runConfig) { c.env = append(c.env, kv...) }
}

// WithShell replaces the default "sh" interpreter. The shell is invoked as
// `<shell> -c <command>`.
func WithShell(shell string) RunOption {
	return func(c *runConfig) { c.shell = shell }
}

// Run executes command through the shell in the project root and never
// returns an error: failures are folded into the Outcome.
func (r *Root) Run(ctx context.Context, command string, opts ...RunOption) Outcome {
	cfg := runConfig{timeout: DefaultTimeout, shell: "sh"}
	for _, opt := range opts {
		opt(&cfg)
	}

	dir := r.dir
	if cfg.dir != "" {
		dir = r.Path(cfg.dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return notFound()
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cfg.shell, "-c", command)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	if len(cfg.env) > 0 {
		cmd.Env = append(os.Environ(), cfg.env...)
	}
	configureProcess(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		return Outcome{Stderr: MsgTimedOut, Kind: TimedOut, ExitCode: -1}
	}

	out := Outcome{
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Kind:     Completed,
		ExitCode: -1,
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		out.Succeeded = true
		out.ExitCode = 0
	case errors.As(err, &exitErr):
		if exitErr.ExitCode() == exitCommandNotFound {
			return notFound()
		}
		out.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrWaitDelay):
		// Exited on its own but a descendant kept the pipes open.
		out.ExitCode = cmd.ProcessState.ExitCode()
		out.Succeeded = out.ExitCode == 0
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return notFound()
	default:
		if out.Stderr == "" {
			out.Stderr = err.Error()
		}
	}
	return out
}

func notFound() Outcome {
	return Outcome{Stderr: MsgNotFound, Kind: NotFound, ExitCode: -1}
}

// LastLine returns the final non-empty line of s, or "" when there is none.
func LastLine(s string) string {
	s = strings.TrimRight(s, "\r\n\t ")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
