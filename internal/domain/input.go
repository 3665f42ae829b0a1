package domain

// MouseButton represents a mouse button
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// String returns the string representation of a mouse button
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// X11Code returns the core protocol button number (1=left, 2=middle, 3=right)
func (b MouseButton) X11Code() int {
	switch b {
	case MouseButtonMiddle:
		return 2
	case MouseButtonRight:
		return 3
	default:
		return 1
	}
}

// ParseMouseButton parses a string into a MouseButton
func ParseMouseButton(s string) MouseButton {
	switch s {
	case "left":
		return MouseButtonLeft
	case "middle":
		return MouseButtonMiddle
	case "right":
		return MouseButtonRight
	default:
		return MouseButtonLeft
	}
}

// ValidMouseButton reports whether s names a supported button
func ValidMouseButton(s string) bool {
	return s == "left" || s == "middle" || s == "right"
}
