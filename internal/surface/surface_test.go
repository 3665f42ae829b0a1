package surface

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	picker "github.com/inference-gateway/gridpick/internal/picker"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestInbound_Event(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected picker.Event
	}{
		{"activate", `{"type":"activate"}`, picker.ActivateEvent{}},
		{"toggle", `{"type":"toggle"}`, picker.ToggleEvent{}},
		{"cancel", `{"type":"cancel"}`, picker.CancelEvent{}},
		{"cell uses one-based numbers", `{"type":"cell","number":24}`, picker.CellPickedEvent{Index: 23}},
		{"grid point", `{"type":"grid_point","x":-100,"y":40}`, picker.GridPointPickedEvent{Point: domain.Point{X: -100, Y: 40}}},
		{"zoom point", `{"type":"zoom_point","x":12,"y":9}`, picker.ZoomPointPickedEvent{Point: domain.Point{X: 12, Y: 9}}},
		{"digit", `{"type":"digit","digit":"7"}`, picker.DigitEvent{Digit: '7'}},
		{"commit", `{"type":"commit"}`, picker.CommitEntryEvent{}},
		{"clear", `{"type":"clear"}`, picker.ClearEntryEvent{}},
		{"backspace", `{"type":"backspace"}`, picker.BackspaceEvent{}},
		{"back", `{"type":"back"}`, picker.BackToGridEvent{}},
		{"viewport", `{"type":"viewport","width":640,"height":480}`, picker.ViewportResizedEvent{Size: domain.Size{Width: 640, Height: 480}}},
		{"grid closed", `{"type":"closed","surface":"grid"}`, picker.SurfaceClosedEvent{Surface: picker.SurfaceGrid}},
		{"zoom closed", `{"type":"closed","surface":"ZOOM"}`, picker.SurfaceClosedEvent{Surface: picker.SurfaceZoom}},
		{
			"select display by index",
			`{"type":"select_display","policy":"index","index":1}`,
			picker.SelectDisplayEvent{Policy: display.Policy{Kind: display.PolicyIndex, Index: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := DecodeInbound([]byte(tt.data))
			require.NoError(t, err)

			ev, err := in.Event()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ev)
		})
	}
}

func TestInbound_EventErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"cell zero", `{"type":"cell","number":0}`},
		{"empty digit", `{"type":"digit","digit":""}`},
		{"two digits", `{"type":"digit","digit":"12"}`},
		{"unknown surface", `{"type":"closed","surface":"toolbar"}`},
		{"unknown policy", `{"type":"select_display","policy":"smallest"}`},
		{"unknown type", `{"type":"teleport"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := DecodeInbound([]byte(tt.data))
			require.NoError(t, err)

			ev, err := in.Event()
			assert.Error(t, err)
			assert.Nil(t, ev)
		})
	}
}

func TestDecodeInbound_Invalid(t *testing.T) {
	_, err := DecodeInbound([]byte(`{not json`))
	assert.Error(t, err)

	_, err = DecodeInbound([]byte(`{"number":3}`))
	assert.ErrorContains(t, err, "no type")
}

func TestGridShown(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	signal := domain.GridSignal{
		ActivationID: "act-1",
		Display:      domain.Display{ID: 1, Name: "head-1", Bounds: domain.Rect{X: 1920, Width: 200, Height: 100}},
		Grid:         domain.GridConfig{Rows: 1, Cols: 2},
		Cells: []domain.Cell{
			{Index: 0, Row: 0, Col: 0, Rect: domain.Rect{X: 1920, Width: 100, Height: 100}},
			{Index: 1, Row: 0, Col: 1, Rect: domain.Rect{X: 2020, Width: 100, Height: 100}},
		},
	}

	msg := GridShown(signal, "/tmp/frames/act-1-grid.png", now)

	assert.Equal(t, OutGridShown, msg.Type)
	assert.Equal(t, "act-1", msg.ActivationID)
	require.NotNil(t, msg.Display)
	assert.Equal(t, 1, msg.Display.ID)
	require.NotNil(t, msg.Grid)
	assert.Equal(t, 2, msg.Grid.CellCount())
	require.Len(t, msg.Cells, 2)
	assert.Equal(t, 1, msg.Cells[0].Number)
	assert.Equal(t, 2, msg.Cells[1].Number)
	assert.Equal(t, 2020, msg.Cells[1].Rect.X)
	assert.Equal(t, "/tmp/frames/act-1-grid.png", msg.Frame)
	assert.Equal(t, now, msg.Time)
}

func TestZoomShown(t *testing.T) {
	now := time.Now()
	signal := domain.ZoomSignal{
		ActivationID: "act-2",
		Cell:         domain.Cell{Index: 4, Rect: domain.Rect{X: 40, Y: 0, Width: 10, Height: 10}},
		Region: domain.ZoomRegion{
			Source: domain.Rect{X: 35, Y: 0, Width: 20, Height: 15},
			Cell:   domain.Rect{X: 40, Y: 0, Width: 10, Height: 10},
		},
		Viewport: domain.Size{Width: 60, Height: 45},
	}

	msg := ZoomShown(signal, "", now)

	assert.Equal(t, OutZoomShown, msg.Type)
	require.NotNil(t, msg.Cell)
	assert.Equal(t, 5, msg.Cell.Number)
	require.NotNil(t, msg.Region)
	assert.Equal(t, signal.Region.Source, *msg.Region)
	require.NotNil(t, msg.Viewport)
	assert.Equal(t, signal.Viewport, *msg.Viewport)
	require.NotNil(t, msg.Highlight)
	assert.Equal(t, domain.Rect{X: 15, Y: 0, Width: 30, Height: 30}, *msg.Highlight)
	assert.Empty(t, msg.Frame)
}

func TestNoticeAndErrorMessages(t *testing.T) {
	now := time.Now()
	p := domain.Point{X: 5, Y: 6}
	msg := NoticeMessage(domain.Notice{ActivationID: "a", Level: domain.NoticeInfo, Message: "clicked", Point: &p, Time: now})
	assert.Equal(t, OutNotice, msg.Type)
	assert.Equal(t, "a", msg.ActivationID)
	require.NotNil(t, msg.Notice)
	assert.Equal(t, "clicked", msg.Notice.Message)
	assert.Equal(t, now, msg.Time)

	errMsg := ErrorMessage(errors.New("bad input"), now)
	assert.Equal(t, OutError, errMsg.Type)
	assert.Equal(t, "bad input", errMsg.Error)

	assert.Equal(t, OutZoomHidden, Hidden(OutZoomHidden, now).Type)
}

type recordingRenderer struct {
	calls     []string
	renderErr error
	clearErr  error
}

func (r *recordingRenderer) RenderGrid(ctx context.Context, signal domain.GridSignal) error {
	r.calls = append(r.calls, "render_grid")
	return r.renderErr
}

func (r *recordingRenderer) ClearGrid(ctx context.Context) error {
	r.calls = append(r.calls, "clear_grid")
	return r.clearErr
}

func (r *recordingRenderer) RenderZoom(ctx context.Context, signal domain.ZoomSignal) error {
	r.calls = append(r.calls, "render_zoom")
	return r.renderErr
}

func (r *recordingRenderer) ClearZoom(ctx context.Context) error {
	r.calls = append(r.calls, "clear_zoom")
	return r.clearErr
}

func (r *recordingRenderer) Notify(ctx context.Context, notice domain.Notice) error {
	r.calls = append(r.calls, "notify")
	return nil
}

func TestTracker_Idempotent(t *testing.T) {
	ctx := context.Background()
	r := &recordingRenderer{}
	tracker := NewTracker(r)

	require.NoError(t, tracker.HideGrid(ctx))
	require.NoError(t, tracker.HideZoom(ctx))
	assert.Empty(t, r.calls)

	require.NoError(t, tracker.ShowGrid(ctx, domain.GridSignal{}))
	require.NoError(t, tracker.ShowGrid(ctx, domain.GridSignal{}))
	require.NoError(t, tracker.ShowZoom(ctx, domain.ZoomSignal{}))
	require.NoError(t, tracker.ShowZoom(ctx, domain.ZoomSignal{}))

	grid, zoom := tracker.Visible()
	assert.True(t, grid)
	assert.True(t, zoom)

	require.NoError(t, tracker.HideZoom(ctx))
	require.NoError(t, tracker.HideZoom(ctx))
	require.NoError(t, tracker.HideGrid(ctx))
	require.NoError(t, tracker.Notify(ctx, domain.Notice{}))

	assert.Equal(t, []string{"render_grid", "render_zoom", "clear_zoom", "clear_grid", "notify"}, r.calls)

	grid, zoom = tracker.Visible()
	assert.False(t, grid)
	assert.False(t, zoom)
}

func TestTracker_FailedRenderStaysHidden(t *testing.T) {
	ctx := context.Background()
	r := &recordingRenderer{renderErr: errors.New("no window")}
	tracker := NewTracker(r)

	assert.Error(t, tracker.ShowGrid(ctx, domain.GridSignal{}))
	grid, _ := tracker.Visible()
	assert.False(t, grid)

	require.NoError(t, tracker.HideGrid(ctx))
	assert.Equal(t, []string{"render_grid"}, r.calls)
}

func TestTracker_FailedClearStaysShown(t *testing.T) {
	tests := []struct {
		name    string
		show    func(ctx context.Context, tr *Tracker) error
		hide    func(ctx context.Context, tr *Tracker) error
		visible func(tr *Tracker) bool
		clear   string
	}{
		{
			name:    "grid",
			show:    func(ctx context.Context, tr *Tracker) error { return tr.ShowGrid(ctx, domain.GridSignal{}) },
			hide:    func(ctx context.Context, tr *Tracker) error { return tr.HideGrid(ctx) },
			visible: func(tr *Tracker) bool { grid, _ := tr.Visible(); return grid },
			clear:   "clear_grid",
		},
		{
			name:    "zoom",
			show:    func(ctx context.Context, tr *Tracker) error { return tr.ShowZoom(ctx, domain.ZoomSignal{}) },
			hide:    func(ctx context.Context, tr *Tracker) error { return tr.HideZoom(ctx) },
			visible: func(tr *Tracker) bool { _, zoom := tr.Visible(); return zoom },
			clear:   "clear_zoom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			r := &recordingRenderer{}
			tracker := NewTracker(r)
			require.NoError(t, tt.show(ctx, tracker))

			r.clearErr = errors.New("window gone")
			assert.Error(t, tt.hide(ctx, tracker))
			assert.True(t, tt.visible(tracker), "still shown after a failed clear")

			r.clearErr = nil
			require.NoError(t, tt.hide(ctx, tracker))
			assert.False(t, tt.visible(tracker))
			assert.Equal(t, 2, countCalls(r.calls, tt.clear), "retry reaches the renderer")
		})
	}
}

func countCalls(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	return img
}

func TestFrameEncoder_Encode(t *testing.T) {
	tests := []struct {
		name        string
		config      FrameConfig
		size        image.Point
		ext         string
		contentType string
		width       int
		height      int
	}{
		{"png default", FrameConfig{}, image.Pt(40, 20), "png", "image/png", 40, 20},
		{"jpeg", FrameConfig{Format: "jpeg", Quality: 90}, image.Pt(40, 20), "jpg", "image/jpeg", 40, 20},
		{"jpg alias with bad quality", FrameConfig{Format: "jpg", Quality: 500}, image.Pt(8, 8), "jpg", "image/jpeg", 8, 8},
		{"resize keeps aspect", FrameConfig{MaxWidth: 20}, image.Pt(40, 20), "png", "image/png", 20, 10},
		{"within bounds untouched", FrameConfig{MaxWidth: 100, MaxHeight: 100}, image.Pt(40, 20), "png", "image/png", 40, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewFrameEncoder(tt.config)
			frame, err := enc.Encode(solidImage(tt.size.X, tt.size.Y))
			require.NoError(t, err)

			assert.Equal(t, tt.ext, frame.Extension)
			assert.Equal(t, tt.contentType, enc.ContentType())
			assert.Equal(t, tt.width, frame.Width)
			assert.Equal(t, tt.height, frame.Height)
			assert.NotEmpty(t, frame.Data)
		})
	}
}

func TestFrameEncoder_EncodeNil(t *testing.T) {
	_, err := NewFrameEncoder(FrameConfig{}).Encode(nil)
	assert.Error(t, err)
}

func TestFrameEncoder_WriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	enc := NewFrameEncoder(FrameConfig{Format: "png"})

	path, err := enc.WriteFile(dir, "act-grid", solidImage(4, 4))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "act-grid.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
