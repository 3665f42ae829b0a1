package picker

import (
	"time"

	constants "github.com/inference-gateway/gridpick/internal/constants"
	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	grid "github.com/inference-gateway/gridpick/internal/grid"
	zoom "github.com/inference-gateway/gridpick/internal/zoom"
)

// Settings is the per-activation snapshot of the tunables
type Settings struct {
	Grid          domain.GridConfig
	ZoomFactor    float64
	Padding       float64
	MaxViewport   domain.Size
	Button        domain.MouseButton
	Interpolation zoom.Interpolation

	// Cooldown is the quiet interval after a dispatch; zero ends it at once
	Cooldown time.Duration
	// Timeout bounds each move or click primitive
	Timeout time.Duration
}

// DefaultSettings mirrors the configuration defaults
func DefaultSettings() Settings {
	return Settings{
		Grid:          domain.GridConfig{Rows: 6, Cols: 10},
		ZoomFactor:    3,
		Padding:       0.5,
		Button:        domain.MouseButtonLeft,
		Interpolation: zoom.InterpolationNearest,
		Cooldown:      constants.DefaultCooldown,
		Timeout:       constants.DefaultDispatchTimeout,
	}
}

// Session is the whole picker state. It is a value: Step returns a new
// Session and never mutates the one it was given. Everything below State
// belongs to the current activation and is rebuilt from scratch by the next.
type Session struct {
	State domain.DispatchState

	// Policy and Generation survive across activations
	Policy     display.Policy
	Generation uint64

	ActivationID string
	Settings     Settings
	Display      domain.Display
	Screenshot   *domain.Screenshot
	Entry        grid.NumericEntry

	Cell     domain.Cell
	Region   domain.ZoomRegion
	Viewport domain.Size

	Target domain.Point
}

// NewSession returns an idle session using policy for activations
func NewSession(policy display.Policy) Session {
	return Session{State: domain.StateIdle, Policy: policy}
}

// reset returns an idle session keeping only the cross-activation fields
func (s Session) reset() Session {
	return Session{
		State:      domain.StateIdle,
		Policy:     s.Policy,
		Generation: s.Generation,
	}
}

func (s Session) gridSignal() (domain.GridSignal, error) {
	cells, err := grid.Cells(s.Display, s.Settings.Grid)
	if err != nil {
		return domain.GridSignal{}, err
	}
	return domain.GridSignal{
		ActivationID: s.ActivationID,
		Display:      s.Display,
		Grid:         s.Settings.Grid,
		Cells:        cells,
		Screenshot:   s.Screenshot,
	}, nil
}

func (s Session) zoomSignal() domain.ZoomSignal {
	return domain.ZoomSignal{
		ActivationID: s.ActivationID,
		Cell:         s.Cell,
		Region:       s.Region,
		Viewport:     s.Viewport,
		Screenshot:   s.Screenshot,
	}
}
