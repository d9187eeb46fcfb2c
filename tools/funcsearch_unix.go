//go:build unix

package tools

import "syscall"

// isProcessRunning reports whether a lock-owning process is still alive
// on Unix systems
func isProcessRunning(pid int) bool {
	// Signal 0 performs the permission/existence check without delivering
	// anything
	err := syscall.Kill(pid, syscall.Signal(0))

	if err == nil {
		return true
	}

	if err == syscall.ESRCH {
		// No such process
		return false
	}

	if err == syscall.EPERM {
		// Process exists but belongs to someone else; the lock is live
		return true
	}

	return false
}
