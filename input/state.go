package input

import "sync"

// State tracks the pointer position and the held keys and buttons
// implied by an event stream. The zero value is ready to use.
type State struct {
	mu      sync.RWMutex
	x, y    int
	buttons [buttonCount]bool
	keys    [KeyCodeMax]bool
}

// Apply folds one event into the state. Events must be applied in
// arrival order for the held sets to stay truthful.
func (s *State) Apply(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case EventMouse:
		s.x, s.y = ev.Mouse.X, ev.Mouse.Y
		b := ev.Mouse.Button
		if b < 0 || b >= buttonCount {
			return
		}
		switch ev.Mouse.Action {
		case MouseActionDown:
			s.buttons[b] = true
		case MouseActionUp:
			s.buttons[b] = false
		}
	case EventKey:
		code := ev.Key.Code
		if code < 0 || code >= KeyCodeMax {
			return
		}
		switch ev.Key.Action {
		case KeyActionRawDown, KeyActionDown:
			s.keys[code] = true
		case KeyActionUp:
			s.keys[code] = false
		}
	}
}

// MousePosition returns the pointer position from the most recent
// mouse event.
func (s *State) MousePosition() (x, y int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.x, s.y
}

// MouseDown reports whether a button is held. Buttons outside the
// known set read as released.
func (s *State) MouseDown(b Button) bool {
	if b < 0 || b >= buttonCount {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buttons[b]
}

// KeyDown reports whether a key is held. Codes outside [0, KeyCodeMax)
// read as released.
func (s *State) KeyDown(code KeyCode) bool {
	if code < 0 || code >= KeyCodeMax {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[code]
}

// Reset releases every held key and button. The pointer position is
// kept; it is still the best guess after focus loss or a context
// restore, while held state is not.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buttons = [buttonCount]bool{}
	s.keys = [KeyCodeMax]bool{}
}
