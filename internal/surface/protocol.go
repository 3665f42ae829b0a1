package surface

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	picker "github.com/inference-gateway/gridpick/internal/picker"
	zoom "github.com/inference-gateway/gridpick/internal/zoom"
)

// Inbound message types, sent by an operator or agent
const (
	InActivate      = "activate"
	InToggle        = "toggle"
	InCancel        = "cancel"
	InCell          = "cell"
	InGridPoint     = "grid_point"
	InZoomPoint     = "zoom_point"
	InDigit         = "digit"
	InCommit        = "commit"
	InClear         = "clear"
	InBackspace     = "backspace"
	InBack          = "back"
	InViewport      = "viewport"
	InClosed        = "closed"
	InSelectDisplay = "select_display"
)

// Outbound message types, sent to the operator or agent
const (
	OutGridShown  = "grid_shown"
	OutGridHidden = "grid_hidden"
	OutZoomShown  = "zoom_shown"
	OutZoomHidden = "zoom_hidden"
	OutNotice     = "notice"
	OutError      = "error"
)

// Inbound is one operator message. Fields are used according to Type.
type Inbound struct {
	Type string `json:"type"`

	// Number is the one-based cell label for "cell"
	Number  int    `json:"number,omitempty"`
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
	Digit   string `json:"digit,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Surface string `json:"surface,omitempty"`
	Policy  string `json:"policy,omitempty"`
	Index   int    `json:"index,omitempty"`
}

// Outbound is one message to the operator
type Outbound struct {
	Type         string             `json:"type"`
	ActivationID string             `json:"activation_id,omitempty"`
	Display      *domain.Display    `json:"display,omitempty"`
	Grid         *domain.GridConfig `json:"grid,omitempty"`
	Cells        []CellView         `json:"cells,omitempty"`
	Cell         *CellView          `json:"cell,omitempty"`
	Region       *domain.Rect       `json:"region,omitempty"`
	Viewport     *domain.Size       `json:"viewport,omitempty"`
	Highlight    *domain.Rect       `json:"highlight,omitempty"`
	Frame        string             `json:"frame,omitempty"`
	Notice       *domain.Notice     `json:"notice,omitempty"`
	Error        string             `json:"error,omitempty"`
	Time         time.Time          `json:"time"`
}

// CellView is the overlay's view of a cell: the label it shows and where
type CellView struct {
	Number int         `json:"number"`
	Rect   domain.Rect `json:"rect"`
}

// DecodeInbound parses one JSON message
func DecodeInbound(data []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Inbound{}, fmt.Errorf("invalid message: %w", err)
	}
	if in.Type == "" {
		return Inbound{}, fmt.Errorf("message has no type")
	}
	return in, nil
}

// Event converts the message into a picker event
func (in Inbound) Event() (picker.Event, error) {
	switch in.Type {
	case InActivate:
		return picker.ActivateEvent{}, nil
	case InToggle:
		return picker.ToggleEvent{}, nil
	case InCancel:
		return picker.CancelEvent{}, nil
	case InCell:
		if in.Number < 1 {
			return nil, fmt.Errorf("cell number must be at least 1, got %d", in.Number)
		}
		return picker.CellPickedEvent{Index: in.Number - 1}, nil
	case InGridPoint:
		return picker.GridPointPickedEvent{Point: domain.Point{X: in.X, Y: in.Y}}, nil
	case InZoomPoint:
		return picker.ZoomPointPickedEvent{Point: domain.Point{X: in.X, Y: in.Y}}, nil
	case InDigit:
		runes := []rune(in.Digit)
		if len(runes) != 1 {
			return nil, fmt.Errorf("digit must be a single character, got %q", in.Digit)
		}
		return picker.DigitEvent{Digit: runes[0]}, nil
	case InCommit:
		return picker.CommitEntryEvent{}, nil
	case InClear:
		return picker.ClearEntryEvent{}, nil
	case InBackspace:
		return picker.BackspaceEvent{}, nil
	case InBack:
		return picker.BackToGridEvent{}, nil
	case InViewport:
		return picker.ViewportResizedEvent{Size: domain.Size{Width: in.Width, Height: in.Height}}, nil
	case InClosed:
		switch strings.ToLower(in.Surface) {
		case "grid":
			return picker.SurfaceClosedEvent{Surface: picker.SurfaceGrid}, nil
		case "zoom":
			return picker.SurfaceClosedEvent{Surface: picker.SurfaceZoom}, nil
		default:
			return nil, fmt.Errorf("unknown surface %q", in.Surface)
		}
	case InSelectDisplay:
		kind, err := display.ParsePolicyKind(in.Policy)
		if err != nil {
			return nil, err
		}
		return picker.SelectDisplayEvent{Policy: display.Policy{Kind: kind, Index: in.Index}}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", in.Type)
	}
}

// GridShown builds the message announcing the grid view
func GridShown(signal domain.GridSignal, frame string, now time.Time) Outbound {
	cells := make([]CellView, len(signal.Cells))
	for i, c := range signal.Cells {
		cells[i] = CellView{Number: c.Label(), Rect: c.Rect}
	}
	d := signal.Display
	g := signal.Grid
	return Outbound{
		Type:         OutGridShown,
		ActivationID: signal.ActivationID,
		Display:      &d,
		Grid:         &g,
		Cells:        cells,
		Frame:        frame,
		Time:         now,
	}
}

// ZoomShown builds the message announcing the zoom view
func ZoomShown(signal domain.ZoomSignal, frame string, now time.Time) Outbound {
	cell := CellView{Number: signal.Cell.Label(), Rect: signal.Cell.Rect}
	region := signal.Region.Source
	viewport := signal.Viewport
	highlight := zoom.CellInViewport(signal.Region, viewport)
	return Outbound{
		Type:         OutZoomShown,
		ActivationID: signal.ActivationID,
		Cell:         &cell,
		Region:       &region,
		Viewport:     &viewport,
		Highlight:    &highlight,
		Frame:        frame,
		Time:         now,
	}
}

// Hidden builds a grid_hidden or zoom_hidden message
func Hidden(kind string, now time.Time) Outbound {
	return Outbound{Type: kind, Time: now}
}

// NoticeMessage wraps a notice
func NoticeMessage(n domain.Notice) Outbound {
	return Outbound{Type: OutNotice, ActivationID: n.ActivationID, Notice: &n, Time: n.Time}
}

// ErrorMessage reports an undecodable or rejected inbound message
func ErrorMessage(err error, now time.Time) Outbound {
	return Outbound{Type: OutError, Error: err.Error(), Time: now}
}
