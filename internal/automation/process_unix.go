//go:build unix

package automation

import (
	"os/exec"
	"syscall"
)

// configureProcess starts the interpreter in its own process group so a
// timeout kills any helpers it spawned along with it
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
}
