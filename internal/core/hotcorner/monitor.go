package hotcorner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultPollInterval  = 50 * time.Millisecond
	DefaultRetryInterval = 10 * time.Millisecond
)

type MonitorConfig struct {
	Table         Table
	Params        Params
	PollInterval  time.Duration
	RetryInterval time.Duration

	Sampler  Sampler
	Launcher Launcher
	Clock    Clock
	Logger   Logger
}

// Monitor polls the sampler and launches corner commands. It is driven by a
// single goroutine and owns the detector state.
type Monitor struct {
	table         Table
	params        Params
	pollInterval  time.Duration
	retryInterval time.Duration

	sampler  Sampler
	launcher Launcher
	clock    Clock
	logger   Logger

	state        State
	sampleMisses int
	missLog      rate.Sometimes
}

// NewMonitor validates cfg. Zero intervals and a zero Params select the
// package defaults.
func NewMonitor(cfg MonitorConfig) (*Monitor, error) {
	if cfg.Sampler == nil {
		return nil, fmt.Errorf("sampler is nil")
	}
	if cfg.Launcher == nil {
		return nil, fmt.Errorf("launcher is nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	if cfg.Params == (Params{}) {
		cfg.Params = DefaultParams()
	}
	if cfg.Params.Dwell < 0 || cfg.Params.Cooldown < 0 || cfg.Params.Tolerance < 0 {
		return nil, fmt.Errorf("dwell, cooldown and tolerance must be >= 0")
	}

	return &Monitor{
		table:         cfg.Table,
		params:        cfg.Params,
		pollInterval:  cfg.PollInterval,
		retryInterval: cfg.RetryInterval,
		sampler:       cfg.Sampler,
		launcher:      cfg.Launcher,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		state:         NewState(),
		missLog:       rate.Sometimes{First: 1, Interval: 30 * time.Second},
	}, nil
}

// Run loops until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("Monitoring pointer",
		"dwell", m.params.Dwell,
		"cooldown", m.params.Cooldown,
		"tolerance", m.params.Tolerance,
		"poll", m.pollInterval,
	)
	for {
		if err := m.clock.Sleep(ctx, m.Step()); err != nil {
			return err
		}
	}
}

// Step runs one poll iteration and returns how long to wait before the next.
func (m *Monitor) Step() time.Duration {
	reading, ok := m.sampler.Sample()
	if !ok {
		m.sampleMisses++
		m.missLog.Do(func() {
			m.logger.Debug("Pointer sample unavailable, retrying", "misses", m.sampleMisses)
		})
		return m.retryInterval
	}
	m.sampleMisses = 0

	sample := PointerSample{Reading: reading, ObservedAt: m.clock.Now()}
	corner, fired := Detect(&m.state, sample, m.table, m.params)
	if fired {
		m.trigger(corner)
	}
	return m.pollInterval
}

func (m *Monitor) State() State {
	return m.state
}

func (m *Monitor) trigger(corner Corner) {
	command := m.table.Slot(corner).Command
	m.logger.Info("Corner triggered", "corner", corner.String(), "command", command)
	if err := m.launcher.Launch(command); err != nil {
		m.logger.Error("Failed to launch command", "corner", corner.String(), "command", command, "err", err)
	}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
