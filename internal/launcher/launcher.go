// Package launcher starts corner commands as detached shell processes.
package launcher

import (
	"fmt"
	"os/exec"
	"strings"
)

// Shell launches commands through a system shell without waiting for them.
type Shell struct {
	// Path and Flag default to the platform shell, sh -c or cmd /C.
	Path string
	Flag string

	logger Logger
}

type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

func New(logger Logger) *Shell {
	path, flag := defaultShell()
	return &Shell{Path: path, Flag: flag, logger: logger}
}

// Launch starts command and returns once the process exists. The child runs
// in its own session with no stdio attached and is reaped in the background.
func (s *Shell) Launch(command string) error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("no shell configured")
	}

	cmd := exec.Command(s.Path, s.Flag, command)
	cmd.SysProcAttr = detachedAttr()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s %s %q: %w", s.Path, s.Flag, command, err)
	}

	pid := cmd.Process.Pid
	if s.logger != nil {
		s.logger.Debug("Command started", "pid", pid, "command", command)
	}
	go s.reap(cmd, pid)
	return nil
}

func (s *Shell) reap(cmd *exec.Cmd, pid int) {
	err := cmd.Wait()
	if s.logger == nil {
		return
	}
	if err != nil {
		s.logger.Warn("Command exited with error", "pid", pid, "err", err)
		return
	}
	s.logger.Debug("Command exited", "pid", pid)
}
