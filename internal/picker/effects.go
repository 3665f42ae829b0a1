package picker

import (
	"time"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// Effect is a side effect requested by a transition. The coordinator runs
// the effects of one transition in order before taking the next event.
type Effect interface {
	EffectType() string
}

// ShowGridEffect activates the grid surface
type ShowGridEffect struct {
	Signal domain.GridSignal
}

func (e ShowGridEffect) EffectType() string { return "ShowGrid" }

// HideGridEffect deactivates the grid surface
type HideGridEffect struct{}

func (e HideGridEffect) EffectType() string { return "HideGrid" }

// ShowZoomEffect activates the zoom surface. The frame is rendered from
// Signal.Region when the effect runs.
type ShowZoomEffect struct {
	Signal domain.ZoomSignal
}

func (e ShowZoomEffect) EffectType() string { return "ShowZoom" }

// HideZoomEffect deactivates the zoom surface
type HideZoomEffect struct{}

func (e HideZoomEffect) EffectType() string { return "HideZoom" }

// PrepareActivationEffect enumerates displays, resolves the target and
// captures it, then feeds ActivationReady or ActivationFailed back
type PrepareActivationEffect struct {
	Policy display.Policy
}

func (e PrepareActivationEffect) EffectType() string { return "PrepareActivation" }

// DispatchEffect issues move then click at Point
type DispatchEffect struct {
	Generation   uint64
	ActivationID string
	DisplayID    int
	CellIndex    int
	Point        domain.Point
	Button       domain.MouseButton
	Timeout      time.Duration
}

func (e DispatchEffect) EffectType() string { return "Dispatch" }

// StartCooldownEffect arms the quiet-interval timer
type StartCooldownEffect struct {
	Generation uint64
	Duration   time.Duration
}

func (e StartCooldownEffect) EffectType() string { return "StartCooldown" }

// ReportEffect surfaces a notice to the operator and the log
type ReportEffect struct {
	Level   domain.NoticeLevel
	Message string
	Point   *domain.Point
	Err     error
}

func (e ReportEffect) EffectType() string { return "Report" }
