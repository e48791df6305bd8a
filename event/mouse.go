package event

// MouseButton is a button bitmask; mouse events carry the buttons
// involved, move events carry the currently held set
type MouseButton uint8

const (
	MouseBtnNone   MouseButton = 0
	MouseBtnLeft   MouseButton = 1 << 0
	MouseBtnMiddle MouseButton = 1 << 1
	MouseBtnRight  MouseButton = 1 << 2
)

// String returns a human-readable button set
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnNone:
		return "None"
	}
	s := ""
	for _, part := range []struct {
		bit  MouseButton
		name string
	}{{MouseBtnLeft, "Left"}, {MouseBtnMiddle, "Middle"}, {MouseBtnRight, "Right"}} {
		if b&part.bit != 0 {
			if s != "" {
				s += "+"
			}
			s += part.name
		}
	}
	return s
}
