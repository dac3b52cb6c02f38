//go:build linux

package linuxinput

import (
	"fmt"
	"os"
	"sort"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

// DeviceInfo describes an input device the way the evdev backend judges it.
type DeviceInfo struct {
	Path       string
	Name       string
	Virtual    bool
	RelativeXY bool
	Absolute   bool
}

// Tracked reports whether OpenPointerDevices follows the device when no
// explicit path is given.
func (d DeviceInfo) Tracked() bool {
	return !d.Virtual && d.RelativeXY
}

func (d DeviceInfo) Status() string {
	switch {
	case d.Tracked():
		return "tracked"
	case d.Virtual:
		return "ignored: virtual"
	case d.Absolute:
		return "ignored: absolute positioning only"
	default:
		return "ignored: no pointer motion"
	}
}

type probedDevice struct {
	dev  *evdev.InputDevice
	info DeviceInfo
}

// probeDevices opens every readable event node in path order. The caller
// owns the returned devices.
func probeDevices() ([]probedDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	probed := make([]probedDevice, 0, len(paths))
	for _, path := range paths {
		dev, err := openInputDevice(path.Path)
		if err != nil {
			continue
		}
		probed = append(probed, probedDevice{dev: dev, info: describeDevice(dev, path.Path, path.Name)})
	}
	return probed, nil
}

func ListInputDevices() ([]DeviceInfo, error) {
	probed, err := probeDevices()
	if err != nil {
		return nil, err
	}
	infos := make([]DeviceInfo, 0, len(probed))
	for _, p := range probed {
		infos = append(infos, p.info)
		_ = p.dev.Close()
	}
	return infos, nil
}

// OpenPointerDevices opens devicePath, or every tracked device when
// devicePath is empty.
func OpenPointerDevices(devicePath string) ([]*evdev.InputDevice, error) {
	if devicePath != "" {
		dev, err := openInputDevice(devicePath)
		if err != nil {
			return nil, err
		}
		if !hasRelativeXY(dev.CapableEvents(evdev.EV_REL)) {
			_ = dev.Close()
			return nil, fmt.Errorf("%s does not report relative pointer motion", devicePath)
		}
		return []*evdev.InputDevice{dev}, nil
	}

	probed, err := probeDevices()
	if err != nil {
		return nil, err
	}
	devices := make([]*evdev.InputDevice, 0, len(probed))
	for _, p := range probed {
		if !p.info.Tracked() {
			_ = p.dev.Close()
			continue
		}
		devices = append(devices, p.dev)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no readable pointer devices found; use --list-devices and pass --device")
	}
	return devices, nil
}

func describeDevice(dev *evdev.InputDevice, path, fallbackName string) DeviceInfo {
	name := fallbackName
	if actual, err := dev.Name(); err == nil && actual != "" {
		name = actual
	}
	id, err := dev.InputID()
	return DeviceInfo{
		Path:       path,
		Name:       name,
		Virtual:    (err == nil && id.BusType == uint16(evdev.BUS_VIRTUAL)) || nameLooksVirtual(name),
		RelativeXY: hasRelativeXY(dev.CapableEvents(evdev.EV_REL)),
		Absolute:   len(dev.CapableEvents(evdev.EV_ABS)) > 0,
	}
}

func openInputDevice(path string) (*evdev.InputDevice, error) {
	return evdev.OpenWithFlags(path, os.O_RDONLY)
}

func closeInputDevices(devices []*evdev.InputDevice) {
	for _, dev := range devices {
		_ = dev.Close()
	}
}

// nameLooksVirtual catches injectors such as ydotool that register on a
// physical bus type.
func nameLooksVirtual(name string) bool {
	lower := strings.ToLower(name)
	for _, token := range []string{"virtual", "uinput", "ydotool"} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func hasRelativeXY(codes []evdev.EvCode) bool {
	var hasRelX, hasRelY bool
	for _, code := range codes {
		switch code {
		case evdev.REL_X:
			hasRelX = true
		case evdev.REL_Y:
			hasRelY = true
		}
	}
	return hasRelX && hasRelY
}
