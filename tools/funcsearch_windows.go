//go:build windows

package tools

import (
	"os"
	"syscall"
)

// isProcessRunning reports whether a lock-owning process is still alive on
// Windows. FindProcess succeeds for any PID there, so the process handle
// has to be opened to tell.
func isProcessRunning(pid int) bool {
	const da = syscall.STANDARD_RIGHTS_READ | syscall.PROCESS_QUERY_INFORMATION | syscall.SYNCHRONIZE

	h, err := syscall.OpenProcess(da, false, uint32(pid))
	if err != nil {
		// Cannot open the process: it is gone or inaccessible
		return false
	}
	syscall.CloseHandle(h)

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	proc.Release()

	return true
}
