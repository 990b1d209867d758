//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to pid's process group. Headless
// Chrome forks renderer and GPU helpers that can outlive the main
// process after a hard shutdown; signaling the group (negative PID)
// sweeps them up too. Errors are ignored; this is a cleanup of last
// resort after the launcher's own Kill.
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
