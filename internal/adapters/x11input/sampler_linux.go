//go:build linux

package x11input

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ice2642/hcorner/internal/core/hotcorner"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

var ErrDisplayUnavailable = errors.New("cannot connect to X server")

// Sampler reads the pointer position from the root window of the default
// screen over a single X connection.
type Sampler struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window
	screen  *xproto.ScreenInfo

	logger    hotcorner.Logger
	closeOnce sync.Once
}

func NewSampler(logger hotcorner.Logger) (*Sampler, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDisplayUnavailable, err)
	}
	conn := xu.Conn()
	if conn == nil {
		return nil, ErrDisplayUnavailable
	}

	s := &Sampler{
		xu:      xu,
		conn:    conn,
		rootWin: xu.RootWin(),
		screen:  xu.Screen(),
		logger:  logger,
	}
	logger.Debug("Connected to X server",
		"root", s.rootWin,
		"width", s.screen.WidthInPixels,
		"height", s.screen.HeightInPixels,
	)
	return s, nil
}

func (s *Sampler) Sample() (hotcorner.Reading, bool) {
	reply, err := xproto.QueryPointer(s.conn, s.rootWin).Reply()
	if err != nil || reply == nil {
		return hotcorner.Reading{}, false
	}
	return readingFrom(s.screen, reply)
}

func (s *Sampler) Close() {
	s.closeOnce.Do(func() {
		s.conn.Close()
	})
}

func readingFrom(screen *xproto.ScreenInfo, reply *xproto.QueryPointerReply) (hotcorner.Reading, bool) {
	if screen == nil || reply == nil || !reply.SameScreen {
		return hotcorner.Reading{}, false
	}
	return hotcorner.Reading{
		ScreenWidth:  int(screen.WidthInPixels),
		ScreenHeight: int(screen.HeightInPixels),
		X:            int(reply.RootX),
		Y:            int(reply.RootY),
	}, true
}
