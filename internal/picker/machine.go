package picker

import (
	"errors"
	"fmt"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	grid "github.com/inference-gateway/gridpick/internal/grid"
	zoom "github.com/inference-gateway/gridpick/internal/zoom"
)

// ErrDropped is returned for events the current state does not accept.
// Dropped events are never queued for later.
var ErrDropped = errors.New("event dropped")

// Machine holds the transition table of the click resolution cycle. Step is
// pure: it maps (session, event) to the next session plus the effects the
// coordinator must run.
type Machine struct {
	transitions map[domain.DispatchState][]domain.DispatchState
}

// NewMachine creates a machine with every valid transition registered
func NewMachine() *Machine {
	m := &Machine{
		transitions: make(map[domain.DispatchState][]domain.DispatchState),
	}
	m.registerTransitions()
	return m
}

func (m *Machine) registerTransitions() {
	for state := domain.StateIdle; state <= domain.StateCoolingDown; state++ {
		m.addTransition(state, state)
	}

	m.addTransition(domain.StateIdle, domain.StateAwaitingCellSelection)

	m.addTransition(domain.StateAwaitingCellSelection, domain.StateAwaitingZoomClick)
	m.addTransition(domain.StateAwaitingCellSelection, domain.StateIdle)

	m.addTransition(domain.StateAwaitingZoomClick, domain.StateAwaitingCellSelection)
	m.addTransition(domain.StateAwaitingZoomClick, domain.StateDispatching)
	m.addTransition(domain.StateAwaitingZoomClick, domain.StateIdle)

	m.addTransition(domain.StateDispatching, domain.StateCoolingDown)

	m.addTransition(domain.StateCoolingDown, domain.StateIdle)
}

func (m *Machine) addTransition(from, to domain.DispatchState) {
	m.transitions[from] = append(m.transitions[from], to)
}

// CanTransition reports whether from -> to is a registered transition
func (m *Machine) CanTransition(from, to domain.DispatchState) bool {
	for _, candidate := range m.transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Step applies ev to s. A non-nil error means the event was dropped or its
// input rejected; the returned session is still the one to keep and the
// effects (usually a report) must still run.
func (m *Machine) Step(s Session, ev Event) (Session, []Effect, error) {
	next, effects, err := m.apply(s, ev)
	if !m.CanTransition(s.State, next.State) {
		return s, nil, fmt.Errorf("invalid transition from %s to %s on %s", s.State, next.State, ev.EventType())
	}
	return next, effects, err
}

func (m *Machine) apply(s Session, ev Event) (Session, []Effect, error) {
	switch s.State {
	case domain.StateIdle:
		return m.idle(s, ev)
	case domain.StateAwaitingCellSelection:
		return m.awaitingCell(s, ev)
	case domain.StateAwaitingZoomClick:
		return m.awaitingZoom(s, ev)
	case domain.StateDispatching:
		return m.dispatching(s, ev)
	case domain.StateCoolingDown:
		return m.coolingDown(s, ev)
	default:
		return s, nil, fmt.Errorf("unknown state %d", s.State)
	}
}

func (m *Machine) idle(s Session, ev Event) (Session, []Effect, error) {
	switch e := ev.(type) {
	case ActivateEvent, ToggleEvent:
		return s, []Effect{PrepareActivationEffect{Policy: s.Policy}}, nil
	case ActivationReadyEvent:
		return activate(s, e)
	case ActivationFailedEvent:
		return s, []Effect{ReportEffect{Level: domain.NoticeError, Message: "activation failed", Err: e.Err}}, nil
	case SelectDisplayEvent:
		s.Policy = e.Policy
		return s, nil, nil
	case CancelEvent:
		return s, teardown(), nil
	case SurfaceClosedEvent:
		return s, nil, nil
	default:
		return dropped(s, ev)
	}
}

func (m *Machine) awaitingCell(s Session, ev Event) (Session, []Effect, error) {
	switch e := ev.(type) {
	case CellPickedEvent:
		return selectCell(s, e.Index)
	case GridPointPickedEvent:
		index, ok := grid.CellAt(s.Display, s.Settings.Grid, e.Point)
		if !ok {
			return reject(s, domain.NewGeometryError("grid pick", domain.ErrPointOutside,
				"point %s outside display %s", e.Point, s.Display))
		}
		return selectCell(s, index)
	case DigitEvent, CommitEntryEvent, ClearEntryEvent, BackspaceEvent:
		return numericEntry(s, ev)
	case CancelEvent, ToggleEvent:
		return cancel(s)
	case SurfaceClosedEvent:
		if e.Surface == SurfaceGrid {
			return cancel(s)
		}
		return s, nil, nil
	case SelectDisplayEvent:
		return reselect(s, e.Policy)
	default:
		return dropped(s, ev)
	}
}

func (m *Machine) awaitingZoom(s Session, ev Event) (Session, []Effect, error) {
	switch e := ev.(type) {
	case ZoomPointPickedEvent:
		target, err := zoom.Resolve(s.Region, domain.Selection{
			CellIndex:     s.Cell.Index,
			ViewportPoint: e.Point,
			Viewport:      s.Viewport,
		})
		if err != nil {
			return reject(s, err)
		}
		s.Target = target
		s.State = domain.StateDispatching
		return s, []Effect{
			HideZoomEffect{},
			HideGridEffect{},
			DispatchEffect{
				Generation:   s.Generation,
				ActivationID: s.ActivationID,
				DisplayID:    s.Display.ID,
				CellIndex:    s.Cell.Index,
				Point:        target,
				Button:       s.Settings.Button,
				Timeout:      s.Settings.Timeout,
			},
		}, nil
	case BackToGridEvent:
		signal, err := s.gridSignal()
		if err != nil {
			return reject(s, err)
		}
		s.Cell = domain.Cell{}
		s.Region = domain.ZoomRegion{}
		s.Viewport = domain.Size{}
		s.Entry = s.Entry.Clear()
		s.State = domain.StateAwaitingCellSelection
		return s, []Effect{HideZoomEffect{}, ShowGridEffect{Signal: signal}}, nil
	case DigitEvent, CommitEntryEvent, ClearEntryEvent, BackspaceEvent:
		return numericEntry(s, ev)
	case ViewportResizedEvent:
		if e.Size.Empty() {
			return reject(s, domain.NewGeometryError("viewport resize", domain.ErrPointOutside,
				"viewport %s is empty", e.Size))
		}
		s.Viewport = e.Size
		return s, nil, nil
	case CancelEvent, ToggleEvent:
		return cancel(s)
	case SurfaceClosedEvent:
		if e.Surface == SurfaceZoom {
			return cancel(s)
		}
		return s, nil, nil
	case SelectDisplayEvent:
		return reselect(s, e.Policy)
	default:
		return dropped(s, ev)
	}
}

func (m *Machine) dispatching(s Session, ev Event) (Session, []Effect, error) {
	switch e := ev.(type) {
	case DispatchCompletedEvent:
		if e.Generation != s.Generation {
			return dropped(s, ev)
		}
		s.State = domain.StateCoolingDown
		return s, []Effect{StartCooldownEffect{Generation: s.Generation, Duration: s.Settings.Cooldown}, completionReport(e)}, nil
	case CancelEvent:
		return s, teardown(), nil
	case SelectDisplayEvent:
		s.Policy = e.Policy
		return s, nil, nil
	case SurfaceClosedEvent:
		return s, nil, nil
	default:
		return dropped(s, ev)
	}
}

func (m *Machine) coolingDown(s Session, ev Event) (Session, []Effect, error) {
	switch e := ev.(type) {
	case CooldownElapsedEvent:
		if e.Generation != s.Generation {
			return dropped(s, ev)
		}
		return s.reset(), nil, nil
	case CancelEvent:
		return s, teardown(), nil
	case SelectDisplayEvent:
		s.Policy = e.Policy
		return s, nil, nil
	case SurfaceClosedEvent:
		return s, nil, nil
	default:
		return dropped(s, ev)
	}
}

func activate(s Session, e ActivationReadyEvent) (Session, []Effect, error) {
	next := s.reset()
	next.Generation++
	next.ActivationID = e.ActivationID
	next.Settings = e.Settings
	next.Display = e.Display
	next.Screenshot = e.Screenshot
	next.Entry = grid.NewNumericEntry(e.Settings.Grid.CellCount())

	signal, err := next.gridSignal()
	if err != nil {
		return reject(s, err)
	}

	next.State = domain.StateAwaitingCellSelection
	return next, []Effect{ShowGridEffect{Signal: signal}}, nil
}

func selectCell(s Session, index int) (Session, []Effect, error) {
	cell, err := grid.CellByIndex(s.Display, s.Settings.Grid, index)
	if err != nil {
		return reject(s, err)
	}

	region, err := zoom.ComputeRegion(s.Display, cell.Rect, s.Settings.Padding)
	if err != nil {
		return reject(s, err)
	}

	hide := Effect(HideGridEffect{})
	if s.State == domain.StateAwaitingZoomClick {
		hide = HideZoomEffect{}
	}

	s.Cell = cell
	s.Region = region
	s.Viewport = zoom.ViewportSize(region, s.Settings.ZoomFactor, s.Settings.MaxViewport)
	s.Entry = s.Entry.Clear()
	s.State = domain.StateAwaitingZoomClick

	return s, []Effect{hide, ShowZoomEffect{Signal: s.zoomSignal()}}, nil
}

func numericEntry(s Session, ev Event) (Session, []Effect, error) {
	switch e := ev.(type) {
	case DigitEvent:
		entry, complete, err := s.Entry.Push(e.Digit)
		s.Entry = entry
		if err != nil {
			return reject(s, err)
		}
		if !complete {
			return s, nil, nil
		}
		return commit(s)
	case CommitEntryEvent:
		return commit(s)
	case ClearEntryEvent:
		s.Entry = s.Entry.Clear()
		return s, nil, nil
	case BackspaceEvent:
		s.Entry = s.Entry.Backspace()
		return s, nil, nil
	default:
		return dropped(s, ev)
	}
}

func commit(s Session) (Session, []Effect, error) {
	index, err := s.Entry.Commit(s.Settings.Grid)
	s.Entry = s.Entry.Clear()
	if err != nil {
		return reject(s, err)
	}
	return selectCell(s, index)
}

func cancel(s Session) (Session, []Effect, error) {
	return s.reset(), teardown(), nil
}

func reselect(s Session, policy display.Policy) (Session, []Effect, error) {
	s.Policy = policy
	return s.reset(), append(teardown(), PrepareActivationEffect{Policy: policy}), nil
}

func teardown() []Effect {
	return []Effect{HideZoomEffect{}, HideGridEffect{}}
}

func reject(s Session, err error) (Session, []Effect, error) {
	return s, []Effect{ReportEffect{Level: domain.NoticeWarning, Message: err.Error(), Err: err}}, err
}

func dropped(s Session, ev Event) (Session, []Effect, error) {
	return s, nil, fmt.Errorf("%w: %s in %s", ErrDropped, ev.EventType(), s.State)
}

func completionReport(e DispatchCompletedEvent) Effect {
	point := e.Point
	if e.Err != nil {
		return ReportEffect{
			Level:   domain.NoticeError,
			Message: fmt.Sprintf("click at %s failed: %v", point, e.Err),
			Point:   &point,
			Err:     e.Err,
		}
	}
	if e.DryRun {
		return ReportEffect{
			Level:   domain.NoticeInfo,
			Message: fmt.Sprintf("dry run: would click at %s", point),
			Point:   &point,
		}
	}
	return ReportEffect{
		Level:   domain.NoticeInfo,
		Message: fmt.Sprintf("clicked at %s", point),
		Point:   &point,
	}
}
