//go:build !windows

package player

import (
	"os"
	"syscall"
)

// detachedAttr starts the player in its own process group so a Ctrl-C in the
// menu reaches vidswitch only.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killGroup kills the player together with anything it spawned.
func killGroup(p *os.Process) error {
	if p == nil {
		return nil
	}
	_ = syscall.Kill(-p.Pid, syscall.SIGKILL)
	return p.Kill()
}
