//go:build !windows

package launcher

import "syscall"

func defaultShell() (string, string) {
	return "/bin/sh", "-c"
}

func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
