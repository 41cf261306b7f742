package input

import (
	"strings"
	"time"
)

// EventType selects which payload field of an Event is meaningful.
type EventType int

const (
	EventMouse EventType = iota
	EventWheel
	EventKey
	EventCharacter
)

func (t EventType) String() string {
	switch t {
	case EventMouse:
		return "mouse"
	case EventWheel:
		return "wheel"
	case EventKey:
		return "key"
	case EventCharacter:
		return "character"
	}
	return "unknown"
}

// MouseAction is what a mouse event reports happened.
type MouseAction int

const (
	MouseActionDown MouseAction = iota
	MouseActionUp
	MouseActionMove
	MouseActionEnter
	MouseActionLeave
)

func (a MouseAction) String() string {
	switch a {
	case MouseActionDown:
		return "down"
	case MouseActionUp:
		return "up"
	case MouseActionMove:
		return "move"
	case MouseActionEnter:
		return "enter"
	case MouseActionLeave:
		return "leave"
	}
	return "unknown"
}

// KeyAction is what a key event reports happened. A raw down arrives
// before translation; a plain down is the translated press that may
// repeat while the key is held.
type KeyAction int

const (
	KeyActionRawDown KeyAction = iota
	KeyActionDown
	KeyActionUp
)

func (a KeyAction) String() string {
	switch a {
	case KeyActionRawDown:
		return "rawdown"
	case KeyActionDown:
		return "down"
	case KeyActionUp:
		return "up"
	}
	return "unknown"
}

// Button identifies a mouse button. ButtonNone is carried by move,
// enter and leave events.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight

	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	}
	return "unknown"
}

// Modifier is a bitmask of the modifier keys and lock states active
// when an event fired, plus the mouse buttons held at that moment.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModMeta
	ModIsKeypad
	ModIsAutoRepeat
	ModLeftButtonDown
	ModMiddleButtonDown
	ModRightButtonDown
	ModCapsLockOn
	ModNumLockOn
)

// Has reports whether every bit of mask is set.
func (m Modifier) Has(mask Modifier) bool { return m&mask == mask }

func (m Modifier) String() string {
	if m == 0 {
		return "none"
	}
	names := []struct {
		bit  Modifier
		name string
	}{
		{ModShift, "shift"},
		{ModControl, "control"},
		{ModAlt, "alt"},
		{ModMeta, "meta"},
		{ModIsKeypad, "keypad"},
		{ModIsAutoRepeat, "autorepeat"},
		{ModLeftButtonDown, "leftbutton"},
		{ModMiddleButtonDown, "middlebutton"},
		{ModRightButtonDown, "rightbutton"},
		{ModCapsLockOn, "capslock"},
		{ModNumLockOn, "numlock"},
	}
	var parts []string
	for _, n := range names {
		if m&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// WheelTickPixels is the pixel distance one wheel tick scrolls.
// Backends that report wheel motion in ticks multiply by this to fill
// in the pixel deltas.
const WheelTickPixels = 40

// Event is a single translated input event.
type Event struct {
	Type      EventType
	Time      time.Time
	Modifiers Modifier

	Mouse MouseEvent
	Wheel WheelEvent
	Key   KeyEvent

	// Text carries the typed character for EventCharacter events.
	Text string
}

// MouseEvent is the payload of an EventMouse event. X and Y are in
// window coordinates with the origin at the top left.
type MouseEvent struct {
	Action     MouseAction
	Button     Button
	X, Y       int
	ClickCount int
}

// WheelEvent is the payload of an EventWheel event. Deltas are in
// pixels, ticks in wheel notches; ByPage means the deltas should be
// read as pages instead.
type WheelEvent struct {
	DeltaX, DeltaY float32
	TicksX, TicksY float32
	ByPage         bool
}

// KeyEvent is the payload of an EventKey event.
type KeyEvent struct {
	Action KeyAction
	Code   KeyCode
}
