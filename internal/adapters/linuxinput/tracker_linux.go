//go:build linux

package linuxinput

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	"github.com/ice2642/hcorner/internal/core/hotcorner"

	evdev "github.com/holoplot/go-evdev"
)

type TrackerConfig struct {
	ScreenWidth  int
	ScreenHeight int
}

// Tracker estimates the pointer position from raw evdev motion. It is used
// where the display server does not expose a global pointer query.
type Tracker struct {
	devices []*evdev.InputDevice
	logger  hotcorner.Logger

	mu     sync.Mutex
	cursor cursor
	live   int

	stopCh    chan struct{}
	stopOnce  sync.Once
	readersWG sync.WaitGroup
}

func NewTracker(devices []*evdev.InputDevice, cfg TrackerConfig, logger hotcorner.Logger) (*Tracker, error) {
	if len(devices) == 0 {
		return nil, fmt.Errorf("no pointer devices")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		return nil, fmt.Errorf("screen size must be positive, got %dx%d", cfg.ScreenWidth, cfg.ScreenHeight)
	}

	return &Tracker{
		devices: devices,
		logger:  logger,
		cursor:  newCursor(cfg.ScreenWidth, cfg.ScreenHeight),
		stopCh:  make(chan struct{}),
	}, nil
}

func (t *Tracker) Start() error {
	for _, dev := range t.devices {
		if err := dev.NonBlock(); err != nil {
			return fmt.Errorf("failed to set nonblocking mode for %s: %w", dev.Path(), err)
		}
	}

	t.mu.Lock()
	t.live = len(t.devices)
	t.mu.Unlock()

	for _, dev := range t.devices {
		name, _ := dev.Name()
		t.logger.Info("Tracking pointer device", "path", dev.Path(), "name", name)
		t.readersWG.Add(1)
		go t.readLoop(dev)
	}
	return nil
}

func (t *Tracker) Close() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
		closeInputDevices(t.devices)
		t.readersWG.Wait()
	})
}

// Sample reports the estimated position. It fails before Start and once
// every device has gone away.
func (t *Tracker) Sample() (hotcorner.Reading, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.live == 0 {
		return hotcorner.Reading{}, false
	}
	return t.cursor.reading(), true
}

func (t *Tracker) readLoop(dev *evdev.InputDevice) {
	defer t.readersWG.Done()
	defer t.deviceGone()

	path := dev.Path()
	for {
		events, err := dev.ReadSlice(64)
		if err != nil {
			if t.stopped() || isDeviceClosedError(err) {
				return
			}
			if isWouldBlockError(err) {
				if !t.sleepWithStop(10 * time.Millisecond) {
					return
				}
				continue
			}
			t.logger.Warn("Read failed", "path", path, "err", err)
			if !t.sleepWithStop(100 * time.Millisecond) {
				return
			}
			continue
		}

		dx, dy := 0, 0
		for _, event := range events {
			if event.Type != evdev.EV_REL {
				continue
			}
			switch event.Code {
			case evdev.REL_X:
				dx += int(event.Value)
			case evdev.REL_Y:
				dy += int(event.Value)
			}
		}
		if dx != 0 || dy != 0 {
			t.mu.Lock()
			t.cursor.move(dx, dy)
			t.mu.Unlock()
		}
	}
}

func (t *Tracker) deviceGone() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.live--
	if t.live == 0 && !t.stopped() {
		t.logger.Warn("All pointer devices are gone; samples unavailable")
	}
}

func (t *Tracker) stopped() bool {
	select {
	case <-t.stopCh:
		return true
	default:
		return false
	}
}

func (t *Tracker) sleepWithStop(duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-t.stopCh:
		return false
	case <-timer.C:
		return true
	}
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
