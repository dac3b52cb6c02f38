// Package config loads the hot corner table from hcorner.conf.
//
// The file is line oriented:
//
//	# comment
//	TOP_LEFT="rofi -show drun",1
//	TOP_RIGHT=xterm,0
//	BOTTOM_LEFT="",0
//	BOTTOM_RIGHT="notify-send corner",1
//
// LEFT_CORNER and RIGHT_CORNER are accepted as older names for TOP_LEFT and
// TOP_RIGHT. The last line for a corner wins.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ice2642/hcorner/internal/core/hotcorner"
)

const (
	FileName = "hcorner.conf"
	// EnvPath overrides the config file location.
	EnvPath = "HCORNER_CONFIG"
)

var (
	ErrDirectoryUnavailable = errors.New("config directory unavailable")
	ErrReadFailure          = errors.New("config file unreadable")
	ErrIncomplete           = errors.New("config incomplete")
)

var keys = []struct {
	prefix string
	corner hotcorner.Corner
}{
	{prefix: "TOP_LEFT=", corner: hotcorner.TopLeft},
	{prefix: "LEFT_CORNER=", corner: hotcorner.TopLeft},
	{prefix: "TOP_RIGHT=", corner: hotcorner.TopRight},
	{prefix: "RIGHT_CORNER=", corner: hotcorner.TopRight},
	{prefix: "BOTTOM_LEFT=", corner: hotcorner.BottomLeft},
	{prefix: "BOTTOM_RIGHT=", corner: hotcorner.BottomRight},
}

var cornerKeys = map[hotcorner.Corner]string{
	hotcorner.TopLeft:     "TOP_LEFT",
	hotcorner.TopRight:    "TOP_RIGHT",
	hotcorner.BottomLeft:  "BOTTOM_LEFT",
	hotcorner.BottomRight: "BOTTOM_RIGHT",
}

// Path returns $HCORNER_CONFIG when set, otherwise hcorner.conf in the user
// config directory.
func Path() (string, error) {
	if path := strings.TrimSpace(os.Getenv(EnvPath)); path != "" {
		return path, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}
	if configDir == "" {
		return "", ErrDirectoryUnavailable
	}
	return filepath.Join(configDir, FileName), nil
}

func Load() (hotcorner.Table, error) {
	path, err := Path()
	if err != nil {
		return hotcorner.Table{}, err
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (hotcorner.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return hotcorner.Table{}, fmt.Errorf("%w: %s: %w", ErrReadFailure, path, err)
	}
	defer file.Close()

	table, err := LoadFromReader(file)
	if err != nil {
		if errors.Is(err, ErrIncomplete) {
			return hotcorner.Table{}, fmt.Errorf("%s: %w", path, err)
		}
		return hotcorner.Table{}, fmt.Errorf("%w: %s: %w", ErrReadFailure, path, err)
	}
	return table, nil
}

// LoadFromReader parses a whole config. Lines may be any length. Every
// corner must end up with a valid slot or ErrIncomplete is returned.
func LoadFromReader(r io.Reader) (hotcorner.Table, error) {
	var (
		table hotcorner.Table
		set   [len(hotcorner.Corners)]bool
	)

	reader := bufio.NewReader(r)
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return hotcorner.Table{}, err
		}

		line := strings.TrimSpace(raw)
		if line != "" && !strings.HasPrefix(line, "#") {
			for _, key := range keys {
				if !strings.HasPrefix(line, key.prefix) {
					continue
				}
				slot, ok := ParseSlot(strings.TrimPrefix(line, key.prefix))
				table[key.corner] = slot
				set[key.corner] = ok
				break
			}
		}

		if err != nil {
			break
		}
	}

	var missing []string
	for _, corner := range hotcorner.Corners {
		if !set[corner] {
			missing = append(missing, cornerKeys[corner])
		}
	}
	if len(missing) > 0 {
		return hotcorner.Table{}, fmt.Errorf("%w: missing or invalid %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return table, nil
}

// ParseSlot parses the value half of a corner line: a command and an enabled
// flag separated by a comma. A quoted command may itself contain commas.
func ParseSlot(value string) (hotcorner.Slot, bool) {
	command, flag, ok := splitValue(strings.TrimSpace(value))
	if !ok {
		return hotcorner.Slot{}, false
	}
	return hotcorner.Slot{
		Command: unquote(strings.TrimSpace(command)),
		Enabled: strings.TrimSpace(flag) == "1",
	}, true
}

func splitValue(value string) (command, flag string, ok bool) {
	if strings.HasPrefix(value, `"`) {
		if end := strings.IndexByte(value[1:], '"'); end >= 0 {
			rest := strings.TrimLeft(value[end+2:], " \t")
			if strings.HasPrefix(rest, ",") {
				return value[:end+2], rest[1:], true
			}
		}
	}
	return strings.Cut(value, ",")
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Format renders a table back into config syntax. Commands are always
// quoted, which reloads unchanged unless a command holds both a double
// quote and a comma: the parser has no escape syntax, so such a command
// is split at the first inner quote or comma.
func Format(table hotcorner.Table) string {
	var b strings.Builder
	for _, corner := range hotcorner.Corners {
		slot := table.Slot(corner)
		enabled := "0"
		if slot.Enabled {
			enabled = "1"
		}
		fmt.Fprintf(&b, "%s=\"%s\",%s\n", cornerKeys[corner], slot.Command, enabled)
	}
	return b.String()
}
