//go:build windows

package runner

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps console commands from flashing a window.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
