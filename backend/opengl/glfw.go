package opengl

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/mcanthony/love-nacl/input"
)

// InputAdapter feeds GLFW window events into an input.Input. Events
// are delivered during glfw.PollEvents on the main thread.
type InputAdapter struct {
	window *glfw.Window
	input  *input.Input
}

// NewInputAdapter registers callbacks on the window and routes every
// translated event into in.
func NewInputAdapter(window *glfw.Window, in *input.Input) *InputAdapter {
	a := &InputAdapter{window: window, input: in}

	window.SetKeyCallback(a.keyCallback)
	window.SetCharCallback(a.charCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetScrollCallback(a.scrollCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)
	window.SetCursorEnterCallback(a.cursorEnterCallback)

	return a
}

func (a *InputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code := glfwKeyCode(key)
	if code < 0 {
		return
	}

	m := modifierMask(mods) | a.buttonMask()
	if isKeypadKey(key) {
		m |= input.ModIsKeypad
	}

	push := func(ka input.KeyAction, extra input.Modifier) {
		a.input.Push(input.Event{
			Type:      input.EventKey,
			Time:      time.Now(),
			Modifiers: m | extra,
			Key:       input.KeyEvent{Action: ka, Code: code},
		})
	}

	switch action {
	case glfw.Press:
		// A browser reports the raw press first and the translated
		// press second; a fresh GLFW press stands for both.
		push(input.KeyActionRawDown, 0)
		push(input.KeyActionDown, 0)
	case glfw.Repeat:
		push(input.KeyActionDown, input.ModIsAutoRepeat)
	case glfw.Release:
		push(input.KeyActionUp, 0)
	}
}

func (a *InputAdapter) charCallback(w *glfw.Window, char rune) {
	a.input.Push(input.Event{
		Type:      input.EventCharacter,
		Time:      time.Now(),
		Modifiers: a.windowModifiers(),
		Text:      string(char),
	})
}

func (a *InputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b := glfwButton(button)
	if b < 0 {
		return
	}

	ma := input.MouseActionDown
	if action == glfw.Release {
		ma = input.MouseActionUp
	}
	x, y := w.GetCursorPos()
	a.input.Push(input.Event{
		Type:      input.EventMouse,
		Time:      time.Now(),
		Modifiers: modifierMask(mods) | a.buttonMask(),
		Mouse: input.MouseEvent{
			Action:     ma,
			Button:     b,
			X:          int(x),
			Y:          int(y),
			ClickCount: 1,
		},
	})
}

func (a *InputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.Push(input.Event{
		Type:      input.EventWheel,
		Time:      time.Now(),
		Modifiers: a.windowModifiers(),
		Wheel: input.WheelEvent{
			DeltaX: float32(xoff) * input.WheelTickPixels,
			DeltaY: float32(yoff) * input.WheelTickPixels,
			TicksX: float32(xoff),
			TicksY: float32(yoff),
		},
	})
}

func (a *InputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.input.Push(input.Event{
		Type:      input.EventMouse,
		Time:      time.Now(),
		Modifiers: a.windowModifiers(),
		Mouse: input.MouseEvent{
			Action: input.MouseActionMove,
			Button: input.ButtonNone,
			X:      int(xpos),
			Y:      int(ypos),
		},
	})
}

func (a *InputAdapter) cursorEnterCallback(w *glfw.Window, entered bool) {
	action := input.MouseActionEnter
	if !entered {
		action = input.MouseActionLeave
	}
	x, y := w.GetCursorPos()
	a.input.Push(input.Event{
		Type:      input.EventMouse,
		Time:      time.Now(),
		Modifiers: a.windowModifiers(),
		Mouse: input.MouseEvent{
			Action: action,
			Button: input.ButtonNone,
			X:      int(x),
			Y:      int(y),
		},
	})
}

// windowModifiers rebuilds the modifier mask by polling key state, for
// the callbacks GLFW does not hand a modifier argument to.
func (a *InputAdapter) windowModifiers() input.Modifier {
	var m input.Modifier
	if a.keyHeld(glfw.KeyLeftShift, glfw.KeyRightShift) {
		m |= input.ModShift
	}
	if a.keyHeld(glfw.KeyLeftControl, glfw.KeyRightControl) {
		m |= input.ModControl
	}
	if a.keyHeld(glfw.KeyLeftAlt, glfw.KeyRightAlt) {
		m |= input.ModAlt
	}
	if a.keyHeld(glfw.KeyLeftSuper, glfw.KeyRightSuper) {
		m |= input.ModMeta
	}
	return m | a.buttonMask()
}

func (a *InputAdapter) keyHeld(keys ...glfw.Key) bool {
	for _, key := range keys {
		if a.window.GetKey(key) == glfw.Press {
			return true
		}
	}
	return false
}

func (a *InputAdapter) buttonMask() input.Modifier {
	var m input.Modifier
	if a.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press {
		m |= input.ModLeftButtonDown
	}
	if a.window.GetMouseButton(glfw.MouseButtonMiddle) == glfw.Press {
		m |= input.ModMiddleButtonDown
	}
	if a.window.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		m |= input.ModRightButtonDown
	}
	return m
}

func modifierMask(mods glfw.ModifierKey) input.Modifier {
	var m input.Modifier
	if mods&glfw.ModShift != 0 {
		m |= input.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= input.ModControl
	}
	if mods&glfw.ModAlt != 0 {
		m |= input.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= input.ModMeta
	}
	if mods&glfw.ModCapsLock != 0 {
		m |= input.ModCapsLockOn
	}
	if mods&glfw.ModNumLock != 0 {
		m |= input.ModNumLockOn
	}
	return m
}

func isKeypadKey(key glfw.Key) bool {
	return key >= glfw.KeyKP0 && key <= glfw.KeyKPEqual
}

// glfwKeyCode maps GLFW keys to virtual-key codes. Unmapped keys
// return -1.
func glfwKeyCode(key glfw.Key) input.KeyCode {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return input.KeyA + input.KeyCode(key-glfw.KeyA)
	case key >= glfw.Key0 && key <= glfw.Key9:
		return input.Key0 + input.KeyCode(key-glfw.Key0)
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return input.KeyF1 + input.KeyCode(key-glfw.KeyF1)
	case key >= glfw.KeyKP0 && key <= glfw.KeyKP9:
		return input.KeyNumpad0 + input.KeyCode(key-glfw.KeyKP0)
	}

	switch key {
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyApostrophe:
		return input.KeyQuote
	case glfw.KeyComma:
		return input.KeyComma
	case glfw.KeyMinus:
		return input.KeyMinus
	case glfw.KeyPeriod:
		return input.KeyPeriod
	case glfw.KeySlash:
		return input.KeySlash
	case glfw.KeySemicolon:
		return input.KeySemicolon
	case glfw.KeyEqual:
		return input.KeyEquals
	case glfw.KeyLeftBracket:
		return input.KeyLeftBracket
	case glfw.KeyBackslash:
		return input.KeyBackslash
	case glfw.KeyRightBracket:
		return input.KeyRightBracket
	case glfw.KeyGraveAccent:
		return input.KeyBackquote
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return input.KeyReturn
	case glfw.KeyTab:
		return input.KeyTab
	case glfw.KeyBackspace:
		return input.KeyBackspace
	case glfw.KeyInsert:
		return input.KeyInsert
	case glfw.KeyDelete:
		return input.KeyDelete
	case glfw.KeyRight:
		return input.KeyRight
	case glfw.KeyLeft:
		return input.KeyLeft
	case glfw.KeyDown:
		return input.KeyDown
	case glfw.KeyUp:
		return input.KeyUp
	case glfw.KeyPageUp:
		return input.KeyPageUp
	case glfw.KeyPageDown:
		return input.KeyPageDown
	case glfw.KeyHome:
		return input.KeyHome
	case glfw.KeyEnd:
		return input.KeyEnd
	case glfw.KeyCapsLock:
		return input.KeyCapsLock
	case glfw.KeyScrollLock:
		return input.KeyScrollLock
	case glfw.KeyNumLock:
		return input.KeyNumLock
	case glfw.KeyPrintScreen:
		return input.KeyPrint
	case glfw.KeyPause:
		return input.KeyPause
	case glfw.KeyKPDecimal:
		return input.KeyNumpadDecimal
	case glfw.KeyKPDivide:
		return input.KeyNumpadDivide
	case glfw.KeyKPMultiply:
		return input.KeyNumpadMultiply
	case glfw.KeyKPSubtract:
		return input.KeyNumpadSubtract
	case glfw.KeyKPAdd:
		return input.KeyNumpadAdd
	case glfw.KeyLeftShift:
		return input.KeyLeftShift
	case glfw.KeyRightShift:
		return input.KeyRightShift
	case glfw.KeyLeftControl:
		return input.KeyLeftControl
	case glfw.KeyRightControl:
		return input.KeyRightControl
	case glfw.KeyLeftAlt:
		return input.KeyLeftAlt
	case glfw.KeyRightAlt:
		return input.KeyRightAlt
	case glfw.KeyLeftSuper:
		return input.KeyLeftSuper
	case glfw.KeyRightSuper:
		return input.KeyRightSuper
	}
	return -1
}

// glfwButton maps GLFW mouse buttons. Buttons beyond the basic three
// return -1.
func glfwButton(button glfw.MouseButton) input.Button {
	switch button {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle
	case glfw.MouseButtonRight:
		return input.ButtonRight
	}
	return -1
}
