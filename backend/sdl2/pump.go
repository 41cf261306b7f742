// Package sdl2 translates SDL events into the input package's event
// stream, for programs hosting their window through SDL instead of
// GLFW.
package sdl2

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/mcanthony/love-nacl/input"
)

// Pump drains the SDL event queue into an input.Input. Poll must run
// on the thread that owns the SDL video subsystem.
type Pump struct {
	input *input.Input
}

// NewPump returns a pump feeding in.
func NewPump(in *input.Input) *Pump { return &Pump{input: in} }

// Poll translates every pending SDL event. It returns false once a
// quit event arrives, after closing the input.
func (p *Pump) Poll() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		if !p.Handle(e) {
			return false
		}
	}
	return true
}

// Handle translates a single SDL event. It returns false for a quit
// event.
func (p *Pump) Handle(e sdl.Event) bool {
	switch evt := e.(type) {
	case *sdl.QuitEvent:
		p.input.Close()
		return false
	case *sdl.KeyboardEvent:
		p.handleKeyboard(evt)
	case *sdl.TextInputEvent:
		p.handleText(evt)
	case *sdl.MouseButtonEvent:
		p.handleMouseButton(evt)
	case *sdl.MouseMotionEvent:
		p.handleMouseMotion(evt)
	case *sdl.MouseWheelEvent:
		p.handleMouseWheel(evt)
	case *sdl.WindowEvent:
		p.handleWindow(evt)
	}
	return true
}

func (p *Pump) handleKeyboard(evt *sdl.KeyboardEvent) {
	code := sdlKeyCode(evt.Keysym.Sym)
	if code < 0 {
		return
	}

	m := sdlModifiers(sdl.Keymod(evt.Keysym.Mod)) | buttonMask()
	if isKeypadKey(evt.Keysym.Sym) {
		m |= input.ModIsKeypad
	}

	push := func(ka input.KeyAction, extra input.Modifier) {
		p.input.Push(input.Event{
			Type:      input.EventKey,
			Time:      time.Now(),
			Modifiers: m | extra,
			Key:       input.KeyEvent{Action: ka, Code: code},
		})
	}

	switch {
	case evt.Type == sdl.KEYDOWN && evt.Repeat > 0:
		push(input.KeyActionDown, input.ModIsAutoRepeat)
	case evt.Type == sdl.KEYDOWN:
		push(input.KeyActionRawDown, 0)
		push(input.KeyActionDown, 0)
	case evt.Type == sdl.KEYUP:
		push(input.KeyActionUp, 0)
	}
}

func (p *Pump) handleText(evt *sdl.TextInputEvent) {
	mods := sdlModifiers(sdl.GetModState()) | buttonMask()
	// One character event per typed rune, the way browsers deliver
	// composed text.
	for _, r := range evt.GetText() {
		p.input.Push(input.Event{
			Type:      input.EventCharacter,
			Time:      time.Now(),
			Modifiers: mods,
			Text:      string(r),
		})
	}
}

func (p *Pump) handleMouseButton(evt *sdl.MouseButtonEvent) {
	b := sdlButton(evt.Button)
	if b < 0 {
		return
	}

	action := input.MouseActionDown
	if evt.Type == sdl.MOUSEBUTTONUP {
		action = input.MouseActionUp
	}
	p.input.Push(input.Event{
		Type:      input.EventMouse,
		Time:      time.Now(),
		Modifiers: sdlModifiers(sdl.GetModState()) | buttonMask(),
		Mouse: input.MouseEvent{
			Action:     action,
			Button:     b,
			X:          int(evt.X),
			Y:          int(evt.Y),
			ClickCount: int(evt.Clicks),
		},
	})
}

func (p *Pump) handleMouseMotion(evt *sdl.MouseMotionEvent) {
	p.input.Push(input.Event{
		Type:      input.EventMouse,
		Time:      time.Now(),
		Modifiers: sdlModifiers(sdl.GetModState()) | motionButtons(evt.State),
		Mouse: input.MouseEvent{
			Action: input.MouseActionMove,
			Button: input.ButtonNone,
			X:      int(evt.X),
			Y:      int(evt.Y),
		},
	})
}

func (p *Pump) handleMouseWheel(evt *sdl.MouseWheelEvent) {
	x, y := float32(evt.X), float32(evt.Y)
	if evt.Direction == sdl.MOUSEWHEEL_FLIPPED {
		x, y = -x, -y
	}
	p.input.Push(input.Event{
		Type:      input.EventWheel,
		Time:      time.Now(),
		Modifiers: sdlModifiers(sdl.GetModState()) | buttonMask(),
		Wheel: input.WheelEvent{
			DeltaX: x * input.WheelTickPixels,
			DeltaY: y * input.WheelTickPixels,
			TicksX: x,
			TicksY: y,
		},
	})
}

func (p *Pump) handleWindow(evt *sdl.WindowEvent) {
	switch evt.Event {
	case sdl.WINDOWEVENT_ENTER, sdl.WINDOWEVENT_LEAVE:
		action := input.MouseActionEnter
		if evt.Event == sdl.WINDOWEVENT_LEAVE {
			action = input.MouseActionLeave
		}
		x, y, _ := sdl.GetMouseState()
		p.input.Push(input.Event{
			Type:      input.EventMouse,
			Time:      time.Now(),
			Modifiers: sdlModifiers(sdl.GetModState()) | buttonMask(),
			Mouse: input.MouseEvent{
				Action: action,
				Button: input.ButtonNone,
				X:      int(x),
				Y:      int(y),
			},
		})
	case sdl.WINDOWEVENT_FOCUS_LOST:
		// Release events for held keys will never arrive now.
		p.input.ResetState()
	}
}

func buttonMask() input.Modifier {
	_, _, state := sdl.GetMouseState()
	return motionButtons(state)
}

func motionButtons(state uint32) input.Modifier {
	var m input.Modifier
	if state&sdl.ButtonLMask() != 0 {
		m |= input.ModLeftButtonDown
	}
	if state&sdl.ButtonMMask() != 0 {
		m |= input.ModMiddleButtonDown
	}
	if state&sdl.ButtonRMask() != 0 {
		m |= input.ModRightButtonDown
	}
	return m
}

func sdlModifiers(mod sdl.Keymod) input.Modifier {
	var m input.Modifier
	if mod&sdl.KMOD_SHIFT != 0 {
		m |= input.ModShift
	}
	if mod&sdl.KMOD_CTRL != 0 {
		m |= input.ModControl
	}
	if mod&sdl.KMOD_ALT != 0 {
		m |= input.ModAlt
	}
	if mod&sdl.KMOD_GUI != 0 {
		m |= input.ModMeta
	}
	if mod&sdl.KMOD_CAPS != 0 {
		m |= input.ModCapsLockOn
	}
	if mod&sdl.KMOD_NUM != 0 {
		m |= input.ModNumLockOn
	}
	return m
}

func isKeypadKey(sym sdl.Keycode) bool {
	return sym >= sdl.K_KP_DIVIDE && sym <= sdl.K_KP_PERIOD
}

// sdlKeyCode maps SDL keycodes to virtual-key codes. Unmapped keys
// return -1.
func sdlKeyCode(sym sdl.Keycode) input.KeyCode {
	switch {
	case sym >= sdl.K_a && sym <= sdl.K_z:
		return input.KeyA + input.KeyCode(sym-sdl.K_a)
	case sym >= sdl.K_0 && sym <= sdl.K_9:
		return input.Key0 + input.KeyCode(sym-sdl.K_0)
	case sym >= sdl.K_F1 && sym <= sdl.K_F12:
		return input.KeyF1 + input.KeyCode(sym-sdl.K_F1)
	case sym >= sdl.K_KP_1 && sym <= sdl.K_KP_9:
		return input.KeyNumpad1 + input.KeyCode(sym-sdl.K_KP_1)
	}

	switch sym {
	case sdl.K_KP_0:
		return input.KeyNumpad0
	case sdl.K_RETURN, sdl.K_KP_ENTER:
		return input.KeyReturn
	case sdl.K_ESCAPE:
		return input.KeyEscape
	case sdl.K_BACKSPACE:
		return input.KeyBackspace
	case sdl.K_TAB:
		return input.KeyTab
	case sdl.K_SPACE:
		return input.KeySpace
	case sdl.K_MINUS:
		return input.KeyMinus
	case sdl.K_EQUALS:
		return input.KeyEquals
	case sdl.K_LEFTBRACKET:
		return input.KeyLeftBracket
	case sdl.K_RIGHTBRACKET:
		return input.KeyRightBracket
	case sdl.K_BACKSLASH:
		return input.KeyBackslash
	case sdl.K_SEMICOLON:
		return input.KeySemicolon
	case sdl.K_QUOTE:
		return input.KeyQuote
	case sdl.K_BACKQUOTE:
		return input.KeyBackquote
	case sdl.K_COMMA:
		return input.KeyComma
	case sdl.K_PERIOD:
		return input.KeyPeriod
	case sdl.K_SLASH:
		return input.KeySlash
	case sdl.K_CAPSLOCK:
		return input.KeyCapsLock
	case sdl.K_PRINTSCREEN:
		return input.KeyPrint
	case sdl.K_SCROLLLOCK:
		return input.KeyScrollLock
	case sdl.K_PAUSE:
		return input.KeyPause
	case sdl.K_INSERT:
		return input.KeyInsert
	case sdl.K_HOME:
		return input.KeyHome
	case sdl.K_PAGEUP:
		return input.KeyPageUp
	case sdl.K_DELETE:
		return input.KeyDelete
	case sdl.K_END:
		return input.KeyEnd
	case sdl.K_PAGEDOWN:
		return input.KeyPageDown
	case sdl.K_RIGHT:
		return input.KeyRight
	case sdl.K_LEFT:
		return input.KeyLeft
	case sdl.K_DOWN:
		return input.KeyDown
	case sdl.K_UP:
		return input.KeyUp
	case sdl.K_NUMLOCKCLEAR:
		return input.KeyNumLock
	case sdl.K_KP_DIVIDE:
		return input.KeyNumpadDivide
	case sdl.K_KP_MULTIPLY:
		return input.KeyNumpadMultiply
	case sdl.K_KP_MINUS:
		return input.KeyNumpadSubtract
	case sdl.K_KP_PLUS:
		return input.KeyNumpadAdd
	case sdl.K_KP_PERIOD:
		return input.KeyNumpadDecimal
	case sdl.K_LCTRL:
		return input.KeyLeftControl
	case sdl.K_LSHIFT:
		return input.KeyLeftShift
	case sdl.K_LALT:
		return input.KeyLeftAlt
	case sdl.K_LGUI:
		return input.KeyLeftSuper
	case sdl.K_RCTRL:
		return input.KeyRightControl
	case sdl.K_RSHIFT:
		return input.KeyRightShift
	case sdl.K_RALT:
		return input.KeyRightAlt
	case sdl.K_RGUI:
		return input.KeyRightSuper
	}
	return -1
}

// sdlButton maps SDL mouse buttons. Buttons beyond the basic three
// return -1.
func sdlButton(button uint8) input.Button {
	switch button {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	}
	return -1
}
