package domain

import (
	"context"
	"image"
	"time"
)

// DisplaySource enumerates the attached displays. It is queried fresh at
// every activation.
type DisplaySource interface {
	ListDisplays(ctx context.Context) ([]Display, error)
}

// ScreenCapturer acquires one screenshot of an absolute rectangle
type ScreenCapturer interface {
	Capture(ctx context.Context, rect Rect) (*Screenshot, error)
}

// PointerInjector issues synthetic pointer input. Each primitive may fail
// with a process or OS level error which must be surfaced.
type PointerInjector interface {
	Move(ctx context.Context, x, y int) error
	Click(ctx context.Context, button MouseButton) error
}

// Surface is the UI layer that renders the grid and zoom views. Showing an
// already shown surface or hiding a hidden one must be a no-op.
type Surface interface {
	ShowGrid(ctx context.Context, signal GridSignal) error
	HideGrid(ctx context.Context) error
	ShowZoom(ctx context.Context, signal ZoomSignal) error
	HideZoom(ctx context.Context) error
	Notify(ctx context.Context, notice Notice) error
}

// GridSignal carries what a surface needs to draw the numbered grid
type GridSignal struct {
	ActivationID string      `json:"activation_id"`
	Display      Display     `json:"display"`
	Grid         GridConfig  `json:"grid"`
	Cells        []Cell      `json:"cells"`
	Screenshot   *Screenshot `json:"-"`
}

// ZoomSignal carries what a surface needs to draw the magnified crop
type ZoomSignal struct {
	ActivationID string      `json:"activation_id"`
	Cell         Cell        `json:"cell"`
	Region       ZoomRegion  `json:"region"`
	Viewport     Size        `json:"viewport"`
	Frame        image.Image `json:"-"`
	Screenshot   *Screenshot `json:"-"`
}

// NoticeLevel classifies operator-facing reports
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a report surfaced to the operator (rejected input, failed click,
// completed dispatch)
type Notice struct {
	ActivationID string      `json:"activation_id,omitempty"`
	Level        NoticeLevel `json:"level"`
	Message      string      `json:"message"`
	Point        *Point      `json:"point,omitempty"`
	Time         time.Time   `json:"time"`
}

// DispatchRecord is one journaled dispatch
type DispatchRecord struct {
	ID           string        `json:"id"`
	ActivationID string        `json:"activation_id"`
	DisplayID    int           `json:"display_id"`
	CellIndex    int           `json:"cell_index"`
	Point        Point         `json:"point"`
	Button       string        `json:"button"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration"`
	CreatedAt    time.Time     `json:"created_at"`
}

// DispatchJournal persists dispatch records
type DispatchJournal interface {
	Record(ctx context.Context, record DispatchRecord) error
	List(ctx context.Context, limit, offset int) ([]DispatchRecord, error)
	Close() error
	Health(ctx context.Context) error
}
