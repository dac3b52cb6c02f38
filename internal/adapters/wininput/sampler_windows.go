//go:build windows

package wininput

import (
	"unsafe"

	"github.com/ice2642/hcorner/internal/core/hotcorner"

	"golang.org/x/sys/windows"
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procGetCursorPos     = user32.NewProc("GetCursorPos")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

type point struct {
	X int32
	Y int32
}

// Sampler reads the cursor position and primary screen size from user32.
type Sampler struct{}

func NewSampler() (*Sampler, error) {
	if err := user32.Load(); err != nil {
		return nil, err
	}
	if err := procGetCursorPos.Find(); err != nil {
		return nil, err
	}
	if err := procGetSystemMetrics.Find(); err != nil {
		return nil, err
	}
	return &Sampler{}, nil
}

func (s *Sampler) Sample() (hotcorner.Reading, bool) {
	width, _, _ := procGetSystemMetrics.Call(smCXScreen)
	height, _, _ := procGetSystemMetrics.Call(smCYScreen)
	if width == 0 || height == 0 {
		return hotcorner.Reading{}, false
	}

	var pt point
	ok, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ok == 0 {
		return hotcorner.Reading{}, false
	}

	return hotcorner.Reading{
		ScreenWidth:  int(int32(width)),
		ScreenHeight: int(int32(height)),
		X:            int(pt.X),
		Y:            int(pt.Y),
	}, true
}

func (s *Sampler) Close() {}
