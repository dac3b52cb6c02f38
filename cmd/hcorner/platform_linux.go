//go:build linux

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ice2642/hcorner/internal/adapters/linuxinput"
	"github.com/ice2642/hcorner/internal/adapters/x11input"
)

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "x11", "evdev", "wayland":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (linux supports auto|x11|evdev)", value)
	}
}

func listInputDevices(out io.Writer, _ string) error {
	devices, err := linuxinput.ListInputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		fmt.Fprintf(out, "%s: %s [%s]\n", dev.Path, dev.Name, dev.Status())
	}
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied opening pointer backend. The evdev backend needs read access to /dev/input (input group or udev rule). On X11 ensure DISPLAY is set."
}

func openSampler(opts options, logger *slog.Logger) (displaySampler, error) {
	switch resolveLinuxBackend(opts.backend) {
	case "evdev":
		return openEvdevSampler(opts, logger)
	default:
		if opts.devicePath != "" {
			logger.Warn("--device is ignored on X11 backend")
		}
		sampler, err := x11input.NewSampler(logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Backend", "name", "x11")
		return sampler, nil
	}
}

func openEvdevSampler(opts options, logger *slog.Logger) (displaySampler, error) {
	devices, err := linuxinput.OpenPointerDevices(opts.devicePath)
	if err != nil {
		return nil, err
	}

	tracker, err := linuxinput.NewTracker(devices, linuxinput.TrackerConfig{
		ScreenWidth:  opts.screenWidth,
		ScreenHeight: opts.screenHeight,
	}, logger)
	if err != nil {
		for _, dev := range devices {
			_ = dev.Close()
		}
		return nil, err
	}
	if err := tracker.Start(); err != nil {
		tracker.Close()
		return nil, err
	}

	logger.Info("Backend", "name", "evdev", "screen", fmt.Sprintf("%dx%d", opts.screenWidth, opts.screenHeight))
	logger.Info("Pointer position is estimated from relative motion; push into a corner to trigger it")
	return tracker, nil
}

func resolveLinuxBackend(configured string) string {
	choice := strings.ToLower(strings.TrimSpace(configured))
	if choice == "" {
		choice = "auto"
	}
	if choice == "wayland" {
		choice = "evdev"
	}
	if choice != "auto" {
		return choice
	}

	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	switch sessionType {
	case "x11":
		return "x11"
	case "wayland":
		// XWayland only sees the pointer over its own windows.
		return "evdev"
	}

	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return "x11"
	}
	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return "evdev"
	}
	return "x11"
}
