//go:build !windows

// Package process terminates the headless Chrome tree left behind by the
// render engine.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking the
// Chrome renderer and GPU helpers down with the browser. Non-positive pids
// are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// launcher.Kill() runs afterwards as the fallback
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
