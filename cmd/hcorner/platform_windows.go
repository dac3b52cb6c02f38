//go:build windows

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ice2642/hcorner/internal/adapters/wininput"
)

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "windows":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (windows supports auto|windows)", value)
	}
}

func listInputDevices(_ io.Writer, _ string) error {
	return fmt.Errorf("input device listing is not supported on Windows")
}

func permissionDeniedHint() string {
	return "Permission denied querying the cursor position."
}

func openSampler(opts options, logger *slog.Logger) (displaySampler, error) {
	if opts.devicePath != "" {
		logger.Warn("--device is ignored on Windows")
	}
	sampler, err := wininput.NewSampler()
	if err != nil {
		return nil, err
	}
	logger.Info("Backend", "name", "windows")
	return sampler, nil
}
