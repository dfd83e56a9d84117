//go:build !unix

package predicate

import "os/exec"

func configureProcess(cmd *exec.Cmd) {}
