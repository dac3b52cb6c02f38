//go:build !linux && !windows

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" || backend == "auto" {
		return "auto", nil
	}
	return "", fmt.Errorf("invalid --backend %q (unsupported platform)", value)
}

func listInputDevices(_ io.Writer, _ string) error {
	return fmt.Errorf("input device listing is not supported on this platform")
}

func permissionDeniedHint() string {
	return "Permission denied opening pointer backend."
}

func openSampler(_ options, _ *slog.Logger) (displaySampler, error) {
	return nil, fmt.Errorf("pointer sampling is not supported on this platform")
}
