package testutil

import "sync"

// ExitRecorder captures exit codes instead of terminating the test binary.
//
// Pass Exit wherever production code takes an exit function
// (check.WithExit, cli.RootOptions.Exit).
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ExitRecorder struct {
	mu    sync.Mutex
	codes []int
}

// NewExitRecorder creates a recorder with no recorded exits.
func NewExitRecorder() *ExitRecorder {
	return &ExitRecorder{}
}

// Exit records code. It matches the signature of os.Exit.
func (r *ExitRecorder) Exit(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, code)
}

// Calls returns how many times Exit was invoked.
func (r *ExitRecorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.codes)
}

// Code returns the last recorded exit code, or -1 if Exit was never called.
func (r *ExitRecorder) Code() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.codes) == 0 {
		return -1
	}
	return r.codes[len(r.codes)-1]
}
