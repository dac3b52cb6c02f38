package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ice2642/hcorner/internal/config"
	"github.com/ice2642/hcorner/internal/core/hotcorner"
	"github.com/ice2642/hcorner/internal/launcher"
)

type options struct {
	configPath    string
	backend       string
	devicePath    string
	screenWidth   int
	screenHeight  int
	dwell         time.Duration
	cooldown      time.Duration
	pollInterval  time.Duration
	retryInterval time.Duration
	tolerance     int
	listDevices   bool
	checkConfig   bool
	logLevel      slog.Level
}

// displaySampler is a hotcorner.Sampler holding an OS resource.
type displaySampler interface {
	hotcorner.Sampler
	Close()
}

func newSlogLogger(level slog.Level, out io.Writer) *slog.Logger {
	if debugLogsEnabled() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
}

func debugLogsEnabled() bool {
	return strings.TrimSpace(os.Getenv("DEBUG")) == "1"
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid --log-level %q (expected debug|info|warning|error)", value)
	}
}

func parseScreenSize(value string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(value)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid --screen-size %q (expected WIDTHxHEIGHT)", value)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid --screen-size width %q", w)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid --screen-size height %q", h)
	}
	return width, height, nil
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	defaults := hotcorner.DefaultParams()
	opts := options{}
	flags := flag.NewFlagSet("hcorner", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var backendRaw string
	var screenRaw string
	var logLevelRaw string

	flags.StringVar(&opts.configPath, "config", "", "Config file path. Defaults to $"+config.EnvPath+" or <user-config-dir>/"+config.FileName+".")
	flags.StringVar(&backendRaw, "backend", "auto", "Pointer backend. Linux: auto|x11|evdev. Windows: auto|windows.")
	flags.StringVar(&opts.devicePath, "device", "", "evdev backend: pointer device path, e.g. /dev/input/event4. All pointers if omitted.")
	flags.StringVar(&screenRaw, "screen-size", "1920x1080", "evdev backend: screen size in pixels (WIDTHxHEIGHT).")
	flags.DurationVar(&opts.dwell, "dwell", defaults.Dwell, "How long the pointer must rest in a corner before it triggers.")
	flags.DurationVar(&opts.cooldown, "cooldown", defaults.Cooldown, "Quiet period after a trigger.")
	flags.DurationVar(&opts.pollInterval, "poll-interval", hotcorner.DefaultPollInterval, "Delay between pointer samples.")
	flags.DurationVar(&opts.retryInterval, "retry-interval", hotcorner.DefaultRetryInterval, "Delay before retrying a failed pointer sample.")
	flags.IntVar(&opts.tolerance, "tolerance", defaults.Tolerance, "Pixels of slack around each corner.")
	flags.BoolVar(&opts.listDevices, "list-devices", false, "Print available input devices and exit.")
	flags.BoolVar(&opts.checkConfig, "check-config", false, "Load the config, print the corner table and exit.")
	flags.StringVar(&logLevelRaw, "log-level", "info", "Log verbosity (default: info). Allowed: debug, info, warning, error.")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}
	if opts.dwell < 0 {
		return opts, fmt.Errorf("--dwell must be >= 0")
	}
	if opts.cooldown < 0 {
		return opts, fmt.Errorf("--cooldown must be >= 0")
	}
	if opts.pollInterval <= 0 {
		return opts, fmt.Errorf("--poll-interval must be > 0")
	}
	if opts.retryInterval <= 0 {
		return opts, fmt.Errorf("--retry-interval must be > 0")
	}
	if opts.tolerance < 0 {
		return opts, fmt.Errorf("--tolerance must be >= 0")
	}

	width, height, err := parseScreenSize(screenRaw)
	if err != nil {
		return opts, err
	}
	parsedLevel, err := parseLogLevel(logLevelRaw)
	if err != nil {
		return opts, err
	}
	backendChoice, err := parseBackendChoice(backendRaw)
	if err != nil {
		return opts, err
	}

	opts.screenWidth = width
	opts.screenHeight = height
	opts.logLevel = parsedLevel
	opts.backend = backendChoice
	return opts, nil
}

func loadTable(opts options) (hotcorner.Table, error) {
	if opts.configPath != "" {
		return config.LoadFromPath(opts.configPath)
	}
	return config.Load()
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.listDevices {
		if err := listInputDevices(stdout, opts.backend); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	table, err := loadTable(opts)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}
	if opts.checkConfig {
		fmt.Fprint(stdout, config.Format(table))
		return 0
	}

	logger := newSlogLogger(opts.logLevel, stderr)
	for _, corner := range hotcorner.Corners {
		slot := table.Slot(corner)
		logger.Debug("Corner configured", "corner", corner.String(), "command", slot.Command, "enabled", slot.Enabled)
	}

	sampler, err := openSampler(opts, logger)
	if err != nil {
		if isPermissionError(err) {
			fmt.Fprintln(stderr, permissionDeniedHint())
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer sampler.Close()

	monitor, err := hotcorner.NewMonitor(hotcorner.MonitorConfig{
		Table: table,
		Params: hotcorner.Params{
			Dwell:     opts.dwell,
			Cooldown:  opts.cooldown,
			Tolerance: opts.tolerance,
		},
		PollInterval:  opts.pollInterval,
		RetryInterval: opts.retryInterval,
		Sampler:       sampler,
		Launcher:      launcher.New(logger),
		Logger:        logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := monitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger.Info("Stopped")
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
