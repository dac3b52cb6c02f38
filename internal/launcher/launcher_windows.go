//go:build windows

package launcher

import (
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
)

func defaultShell() (string, string) {
	if comspec := os.Getenv("ComSpec"); comspec != "" {
		return comspec, "/C"
	}
	dir, err := windows.GetSystemDirectory()
	if err != nil {
		return "cmd.exe", "/C"
	}
	return filepath.Join(dir, "cmd.exe"), "/C"
}

func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
		HideWindow:    true,
	}
}
