package domain

// DispatchState is the single process-wide state of the click resolution cycle
type DispatchState int

const (
	StateIdle DispatchState = iota
	StateAwaitingCellSelection
	StateAwaitingZoomClick
	StateDispatching
	StateCoolingDown
)

func (s DispatchState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingCellSelection:
		return "AwaitingCellSelection"
	case StateAwaitingZoomClick:
		return "AwaitingZoomClick"
	case StateDispatching:
		return "Dispatching"
	case StateCoolingDown:
		return "CoolingDown"
	default:
		return "Unknown"
	}
}

// Awaiting reports whether a surface is waiting on operator input
func (s DispatchState) Awaiting() bool {
	return s == StateAwaitingCellSelection || s == StateAwaitingZoomClick
}

// InFlight reports whether a dispatch sequence owns the machine
func (s DispatchState) InFlight() bool {
	return s == StateDispatching || s == StateCoolingDown
}
