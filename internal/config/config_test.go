package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ice2642/hcorner/internal/core/hotcorner"
)

const fullConfig = `# hcorner
TOP_LEFT="notify-send hi",1
TOP_RIGHT=xterm,0

BOTTOM_LEFT="rofi -show drun", 1
BOTTOM_RIGHT="",0
`

func TestLoadFromReaderFullConfig(t *testing.T) {
	table, err := LoadFromReader(strings.NewReader(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, hotcorner.Table{
		hotcorner.TopLeft:     {Command: "notify-send hi", Enabled: true},
		hotcorner.TopRight:    {Command: "xterm", Enabled: false},
		hotcorner.BottomLeft:  {Command: "rofi -show drun", Enabled: true},
		hotcorner.BottomRight: {Command: "", Enabled: false},
	}, table)
}

func TestLoadFromReaderIgnoresOrderCommentsAndBlankLines(t *testing.T) {
	shuffled := `
   # leading comment
BOTTOM_RIGHT="",0
	# indented comment

BOTTOM_LEFT="rofi -show drun", 1
TOP_RIGHT=xterm,0
UNKNOWN_KEY=whatever,1
   TOP_LEFT="notify-send hi",1
`
	want, err := LoadFromReader(strings.NewReader(fullConfig))
	require.NoError(t, err)
	got, err := LoadFromReader(strings.NewReader(shuffled))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFromReaderMissingCornerIsIncomplete(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(fullConfig), "\n")
	for _, key := range []string{"TOP_LEFT", "TOP_RIGHT", "BOTTOM_LEFT", "BOTTOM_RIGHT"} {
		t.Run(key, func(t *testing.T) {
			var kept []string
			for _, line := range lines {
				if !strings.HasPrefix(line, key+"=") {
					kept = append(kept, line)
				}
			}
			_, err := LoadFromReader(strings.NewReader(strings.Join(kept, "\n")))
			require.ErrorIs(t, err, ErrIncomplete)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadFromReaderEmptyIsIncomplete(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader(""))
	require.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "TOP_LEFT, TOP_RIGHT, BOTTOM_LEFT, BOTTOM_RIGHT")
}

func TestLoadFromReaderMalformedLineLeavesCornerUnset(t *testing.T) {
	input := `TOP_LEFT=xterm,1
TOP_RIGHT=xterm
BOTTOM_LEFT=xterm,1
BOTTOM_RIGHT=xterm,1
`
	_, err := LoadFromReader(strings.NewReader(input))
	require.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "TOP_RIGHT")
	assert.NotContains(t, err.Error(), "TOP_LEFT")
}

func TestLoadFromReaderLaterMalformedLineUnsetsCorner(t *testing.T) {
	input := `TOP_LEFT=xterm,1
TOP_RIGHT=xterm,1
BOTTOM_LEFT=xterm,1
BOTTOM_RIGHT=xterm,1
BOTTOM_RIGHT=no-comma
`
	_, err := LoadFromReader(strings.NewReader(input))
	require.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "BOTTOM_RIGHT")
}

func TestLegacyKeysAreSynonymsAndLastWins(t *testing.T) {
	base := "BOTTOM_LEFT=bl,1\nBOTTOM_RIGHT=br,1\n"

	tests := []struct {
		name      string
		input     string
		wantLeft  hotcorner.Slot
		wantRight hotcorner.Slot
	}{
		{
			name:      "legacy only",
			input:     "LEFT_CORNER=old-left,1\nRIGHT_CORNER=old-right,0\n",
			wantLeft:  hotcorner.Slot{Command: "old-left", Enabled: true},
			wantRight: hotcorner.Slot{Command: "old-right", Enabled: false},
		},
		{
			name:      "modern after legacy",
			input:     "LEFT_CORNER=old-left,1\nTOP_LEFT=new-left,0\nRIGHT_CORNER=old-right,1\nTOP_RIGHT=new-right,1\n",
			wantLeft:  hotcorner.Slot{Command: "new-left", Enabled: false},
			wantRight: hotcorner.Slot{Command: "new-right", Enabled: true},
		},
		{
			name:      "legacy after modern",
			input:     "TOP_LEFT=new-left,0\nLEFT_CORNER=old-left,1\nTOP_RIGHT=new-right,1\nRIGHT_CORNER=old-right,0\n",
			wantLeft:  hotcorner.Slot{Command: "old-left", Enabled: true},
			wantRight: hotcorner.Slot{Command: "old-right", Enabled: false},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table, err := LoadFromReader(strings.NewReader(tc.input + base))
			require.NoError(t, err)
			assert.Equal(t, tc.wantLeft, table.Slot(hotcorner.TopLeft))
			assert.Equal(t, tc.wantRight, table.Slot(hotcorner.TopRight))
		})
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		value string
		want  hotcorner.Slot
		ok    bool
	}{
		{value: `"notify-send hi",1`, want: hotcorner.Slot{Command: "notify-send hi", Enabled: true}, ok: true},
		{value: `"echo a,b",1`, want: hotcorner.Slot{Command: "echo a,b", Enabled: true}, ok: true},
		{value: `"echo a,b" , 1`, want: hotcorner.Slot{Command: "echo a,b", Enabled: true}, ok: true},
		{value: `echo a,b,1`, want: hotcorner.Slot{Command: "echo a", Enabled: false}, ok: true},
		{value: `  xterm ,  1  `, want: hotcorner.Slot{Command: "xterm", Enabled: true}, ok: true},
		{value: `xterm,0`, want: hotcorner.Slot{Command: "xterm", Enabled: false}, ok: true},
		{value: `xterm,true`, want: hotcorner.Slot{Command: "xterm", Enabled: false}, ok: true},
		{value: `xterm,`, want: hotcorner.Slot{Command: "xterm", Enabled: false}, ok: true},
		{value: `"",1`, want: hotcorner.Slot{Command: "", Enabled: true}, ok: true},
		{value: `""xterm"",1`, want: hotcorner.Slot{Command: `"xterm"`, Enabled: true}, ok: true},
		{value: `xterm`, ok: false},
		{value: ``, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			got, ok := ParseSlot(tc.value)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatRoundTripsSimpleTable(t *testing.T) {
	table, err := LoadFromReader(strings.NewReader(fullConfig))
	require.NoError(t, err)

	again, err := LoadFromReader(strings.NewReader(Format(table)))
	require.NoError(t, err)
	assert.Equal(t, table, again)
}

func TestLoadFromReaderAcceptsVeryLongCommand(t *testing.T) {
	command := "echo " + strings.Repeat("a", 70000)
	input := `TOP_LEFT="` + command + `",1
TOP_RIGHT=xterm,0
BOTTOM_LEFT=,0
BOTTOM_RIGHT=,0`

	table, err := LoadFromReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, hotcorner.Slot{Command: command, Enabled: true}, table.Slot(hotcorner.TopLeft))
	assert.Equal(t, hotcorner.Slot{}, table.Slot(hotcorner.BottomRight), "last line without newline")
}

func TestFormatRoundTripsQuotesAndCommas(t *testing.T) {
	table := hotcorner.Table{
		hotcorner.TopLeft:     {Command: `echo "a"`, Enabled: true},
		hotcorner.TopRight:    {Command: `notify-send "hot corner" now`, Enabled: false},
		hotcorner.BottomLeft:  {Command: "echo a,b", Enabled: true},
		hotcorner.BottomRight: {Command: " padded ", Enabled: true},
	}

	again, err := LoadFromReader(strings.NewReader(Format(table)))
	require.NoError(t, err)
	assert.Equal(t, table, again)
}

func TestFormatCannotRoundTripQuoteWithComma(t *testing.T) {
	table := hotcorner.Table{
		hotcorner.TopLeft:     {Command: `echo "a",b`, Enabled: true},
		hotcorner.TopRight:    {},
		hotcorner.BottomLeft:  {},
		hotcorner.BottomRight: {},
	}

	again, err := LoadFromReader(strings.NewReader(Format(table)))
	require.NoError(t, err)
	assert.Equal(t, hotcorner.Slot{Command: `echo "a`, Enabled: false}, again.Slot(hotcorner.TopLeft))
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o600))

	table, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.True(t, table.Slot(hotcorner.TopLeft).Enabled)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.conf"))
	require.ErrorIs(t, err, ErrReadFailure)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFromPathIncompleteMentionsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("TOP_LEFT=a,1\n"), 0o600))

	_, err := LoadFromPath(path)
	require.ErrorIs(t, err, ErrIncomplete)
	assert.NotErrorIs(t, err, ErrReadFailure)
	assert.Contains(t, err.Error(), path)
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom-hcorner.conf")

	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-hcorner.conf", got)
}

func TestPathDefaultsToUserConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only drives os.UserConfigDir on linux")
	}
	dir := t.TempDir()
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), got)
}

func TestPathDirectoryUnavailable(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("relies on linux os.UserConfigDir rules")
	}
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")

	_, err := Path()
	require.ErrorIs(t, err, ErrDirectoryUnavailable)

	_, err = Load()
	require.ErrorIs(t, err, ErrDirectoryUnavailable)
}

func TestLoadUsesEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elsewhere.conf")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o600))
	t.Setenv(EnvPath, path)

	table, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "xterm", table.Slot(hotcorner.TopRight).Command)
}
