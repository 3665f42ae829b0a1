package wayland

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

const twoOutputs = `DP-1 "Dell Inc. DELL U2415 (DP-1)"
  Enabled: yes
  Modes:
    1920x1200 px, 59.950001 Hz (preferred)
    1920x1080 px, 60.000000 Hz (current)
  Position: 0,0
  Transform: normal
  Scale: 1.000000
eDP-1 "Sharp Corporation 0x14F9 (eDP-1)"
  Enabled: yes
  Modes:
    2560x1600 px, 60.002998 Hz (preferred, current)
  Position: 1920,0
  Transform: normal
  Scale: 2.000000
HDMI-A-1 "Unknown"
  Enabled: no
  Modes:
    1280x720 px, 60.000000 Hz
`

func TestParseRandr(t *testing.T) {
	displays, err := ParseRandr(twoOutputs)
	require.NoError(t, err)
	require.Len(t, displays, 2)

	assert.Equal(t, domain.Display{
		ID:       0,
		Name:     "DP-1",
		Bounds:   domain.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		WorkArea: domain.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		Primary:  true,
	}, displays[0])

	assert.Equal(t, "eDP-1", displays[1].Name)
	assert.Equal(t, domain.Rect{X: 1920, Y: 0, Width: 1280, Height: 800}, displays[1].Bounds, "scaled to logical size")
	assert.False(t, displays[1].Primary)
}

func TestParseRandr_Rotated(t *testing.T) {
	out := `DP-2 "Rotated"
  Enabled: yes
  Modes:
    1920x1080 px, 60.000000 Hz (current)
  Position: -1080,0
  Transform: 90
  Scale: 1.000000
`
	displays, err := ParseRandr(out)
	require.NoError(t, err)
	require.Len(t, displays, 1)
	assert.Equal(t, domain.Rect{X: -1080, Y: 0, Width: 1080, Height: 1920}, displays[0].Bounds)
}

func TestParseRandr_Errors(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{name: "empty", out: ""},
		{name: "all disabled", out: "DP-1 \"x\"\n  Enabled: no\n  Modes:\n    800x600 px, 60 Hz (current)\n"},
		{name: "bad position", out: "DP-1 \"x\"\n  Modes:\n    800x600 px, 60 Hz (current)\n  Position: a,b\n"},
		{name: "bad scale", out: "DP-1 \"x\"\n  Modes:\n    800x600 px, 60 Hz (current)\n  Scale: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRandr(tt.out)
			assert.Error(t, err)
		})
	}
}

type fakeRunner struct {
	calls    []string
	output   []byte
	err      error
	missing  map[string]bool
	combined []byte
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	return f.output, f.err
}

func (f *fakeRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	return f.combined, f.err
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", errors.New("not found")
	}
	return "/usr/bin/" + name, nil
}

func TestWaylandClient_RequiresGrim(t *testing.T) {
	_, err := newWaylandClient("wayland-0", &fakeRunner{missing: map[string]bool{"grim": true}})
	assert.ErrorContains(t, err, "grim")
}

func TestWaylandClient_Capture(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))))

	runner := &fakeRunner{output: buf.Bytes()}
	client, err := newWaylandClient("wayland-0", runner)
	require.NoError(t, err)

	img, err := client.CaptureScreen(context.Background(), domain.Rect{X: 1920, Y: 10, Width: 3, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, []string{"grim -g 1920,10 3x2 -"}, runner.calls)
}

func TestWaylandClient_Pointer(t *testing.T) {
	runner := &fakeRunner{}
	client, err := newWaylandClient("wayland-0", runner)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.MoveMouse(ctx, 672, 450))
	require.NoError(t, client.ClickMouse(ctx, domain.MouseButtonLeft, 1))
	require.NoError(t, client.ClickMouse(ctx, domain.MouseButtonRight, 1))

	assert.Equal(t, []string{
		"ydotool mousemove --absolute -- 672 450",
		"ydotool click 0xC0",
		"ydotool click 0xC1",
	}, runner.calls)
}

func TestWaylandClient_PointerFailure(t *testing.T) {
	runner := &fakeRunner{combined: []byte("failed to connect socket"), err: errors.New("exit status 2")}
	client, err := newWaylandClient("wayland-0", runner)
	require.NoError(t, err)

	err = client.MoveMouse(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect socket")

	runner.missing = map[string]bool{"ydotool": true}
	assert.ErrorContains(t, client.ClickMouse(context.Background(), domain.MouseButtonLeft, 1), "ydotool not found")
}
