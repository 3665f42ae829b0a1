package picker

import (
	"time"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// Event is an input to the picker state machine. Operator input, surface
// lifecycle notifications and completions of asynchronous work all arrive
// as events on the same queue.
type Event interface {
	EventType() string
}

// SurfaceKind names one of the two surfaces
type SurfaceKind string

const (
	SurfaceGrid SurfaceKind = "grid"
	SurfaceZoom SurfaceKind = "zoom"
)

// ActivateEvent asks for a new selection cycle
type ActivateEvent struct{}

func (e ActivateEvent) EventType() string { return "Activate" }

// ActivationReadyEvent carries the snapshot taken for a new activation
type ActivationReadyEvent struct {
	ActivationID string
	Display      domain.Display
	Screenshot   *domain.Screenshot
	Settings     Settings
}

func (e ActivationReadyEvent) EventType() string { return "ActivationReady" }

// ActivationFailedEvent reports that displays could not be resolved or captured
type ActivationFailedEvent struct {
	Err error
}

func (e ActivationFailedEvent) EventType() string { return "ActivationFailed" }

// ToggleEvent activates when idle and cancels while a selection is pending
type ToggleEvent struct{}

func (e ToggleEvent) EventType() string { return "Toggle" }

// CancelEvent abandons the pending selection
type CancelEvent struct{}

func (e CancelEvent) EventType() string { return "Cancel" }

// CellPickedEvent selects a cell by zero-based index
type CellPickedEvent struct {
	Index int
}

func (e CellPickedEvent) EventType() string { return "CellPicked" }

// GridPointPickedEvent selects the cell under an absolute point
type GridPointPickedEvent struct {
	Point domain.Point
}

func (e GridPointPickedEvent) EventType() string { return "GridPointPicked" }

// DigitEvent appends one typed digit to the cell number
type DigitEvent struct {
	Digit rune
}

func (e DigitEvent) EventType() string { return "Digit" }

// CommitEntryEvent selects the cell number typed so far
type CommitEntryEvent struct{}

func (e CommitEntryEvent) EventType() string { return "CommitEntry" }

// ClearEntryEvent drops the typed digits
type ClearEntryEvent struct{}

func (e ClearEntryEvent) EventType() string { return "ClearEntry" }

// BackspaceEvent drops the last typed digit
type BackspaceEvent struct{}

func (e BackspaceEvent) EventType() string { return "Backspace" }

// BackToGridEvent leaves the zoom view and shows the grid again
type BackToGridEvent struct{}

func (e BackToGridEvent) EventType() string { return "BackToGrid" }

// ZoomPointPickedEvent is the final pick inside the zoom viewport
type ZoomPointPickedEvent struct {
	Point domain.Point
}

func (e ZoomPointPickedEvent) EventType() string { return "ZoomPointPicked" }

// ViewportResizedEvent reports the new size of the zoom viewport
type ViewportResizedEvent struct {
	Size domain.Size
}

func (e ViewportResizedEvent) EventType() string { return "ViewportResized" }

// SurfaceClosedEvent reports that a surface was closed outside the picker's control
type SurfaceClosedEvent struct {
	Surface SurfaceKind
}

func (e SurfaceClosedEvent) EventType() string { return "SurfaceClosed" }

// SelectDisplayEvent changes the display policy for activations
type SelectDisplayEvent struct {
	Policy display.Policy
}

func (e SelectDisplayEvent) EventType() string { return "SelectDisplay" }

// DispatchCompletedEvent reports the outcome of the move-then-click request
type DispatchCompletedEvent struct {
	Generation uint64
	Point      domain.Point
	Err        error
	Duration   time.Duration
	// DryRun is set when the injector only printed the commands
	DryRun bool
}

func (e DispatchCompletedEvent) EventType() string { return "DispatchCompleted" }

// CooldownElapsedEvent ends the quiet interval of one generation
type CooldownElapsedEvent struct {
	Generation uint64
}

func (e CooldownElapsedEvent) EventType() string { return "CooldownElapsed" }
