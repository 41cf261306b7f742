package sdl2

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/mcanthony/love-nacl/input"
)

func TestSDLKeyCode(t *testing.T) {
	tests := []struct {
		sym  sdl.Keycode
		want input.KeyCode
	}{
		{sdl.K_a, input.KeyA},
		{sdl.K_q, input.KeyQ},
		{sdl.K_z, input.KeyZ},
		{sdl.K_0, input.Key0},
		{sdl.K_9, input.Key9},
		{sdl.K_F1, input.KeyF1},
		{sdl.K_F12, input.KeyF12},
		{sdl.K_KP_0, input.KeyNumpad0},
		{sdl.K_KP_1, input.KeyNumpad1},
		{sdl.K_KP_9, input.KeyNumpad9},
		{sdl.K_KP_PLUS, input.KeyNumpadAdd},
		{sdl.K_RETURN, input.KeyReturn},
		{sdl.K_KP_ENTER, input.KeyReturn},
		{sdl.K_ESCAPE, input.KeyEscape},
		{sdl.K_SPACE, input.KeySpace},
		{sdl.K_TAB, input.KeyTab},
		{sdl.K_BACKSPACE, input.KeyBackspace},
		{sdl.K_LEFT, input.KeyLeft},
		{sdl.K_DOWN, input.KeyDown},
		{sdl.K_PAGEUP, input.KeyPageUp},
		{sdl.K_BACKQUOTE, input.KeyBackquote},
		{sdl.K_QUOTE, input.KeyQuote},
		{sdl.K_NUMLOCKCLEAR, input.KeyNumLock},
		{sdl.K_LSHIFT, input.KeyLeftShift},
		{sdl.K_RGUI, input.KeyRightSuper},
	}
	for _, tt := range tests {
		if got := sdlKeyCode(tt.sym); got != tt.want {
			t.Errorf("sdlKeyCode(%d) = %d, want %d", tt.sym, got, tt.want)
		}
	}

	if got := sdlKeyCode(sdl.K_MENU); got >= 0 {
		t.Errorf("sdlKeyCode(K_MENU) = %d, want unmapped -1", got)
	}
	for _, tt := range tests {
		if tt.want >= input.KeyCodeMax {
			t.Errorf("sdlKeyCode(%d) = %d, outside the tracked range", tt.sym, tt.want)
		}
	}
}

func TestSDLModifiers(t *testing.T) {
	got := sdlModifiers(sdl.KMOD_LSHIFT | sdl.KMOD_RALT | sdl.KMOD_NUM)
	want := input.ModShift | input.ModAlt | input.ModNumLockOn
	if got != want {
		t.Errorf("sdlModifiers() = %v, want %v", got, want)
	}

	got = sdlModifiers(sdl.KMOD_CTRL | sdl.KMOD_GUI | sdl.KMOD_CAPS)
	want = input.ModControl | input.ModMeta | input.ModCapsLockOn
	if got != want {
		t.Errorf("sdlModifiers() = %v, want %v", got, want)
	}

	if got := sdlModifiers(sdl.KMOD_NONE); got != 0 {
		t.Errorf("sdlModifiers(KMOD_NONE) = %v, want no bits", got)
	}
}

func TestSDLButton(t *testing.T) {
	tests := []struct {
		button uint8
		want   input.Button
	}{
		{sdl.BUTTON_LEFT, input.ButtonLeft},
		{sdl.BUTTON_MIDDLE, input.ButtonMiddle},
		{sdl.BUTTON_RIGHT, input.ButtonRight},
	}
	for _, tt := range tests {
		if got := sdlButton(tt.button); got != tt.want {
			t.Errorf("sdlButton(%d) = %v, want %v", tt.button, got, tt.want)
		}
	}

	if got := sdlButton(sdl.BUTTON_X1); got >= 0 {
		t.Errorf("sdlButton(BUTTON_X1) = %v, want unmapped -1", got)
	}
}

func TestSDLIsKeypadKey(t *testing.T) {
	if !isKeypadKey(sdl.K_KP_0) || !isKeypadKey(sdl.K_KP_ENTER) || !isKeypadKey(sdl.K_KP_DIVIDE) {
		t.Error("keypad keys should be flagged as keypad")
	}
	if isKeypadKey(sdl.K_a) || isKeypadKey(sdl.K_0) || isKeypadKey(sdl.K_RETURN) {
		t.Error("main-block keys should not be flagged as keypad")
	}
}

func TestHandleQuitClosesInput(t *testing.T) {
	in := input.New()
	p := NewPump(in)

	if p.Handle(&sdl.QuitEvent{Type: sdl.QUIT}) {
		t.Error("Handle(quit) = true, want false")
	}
	if in.Push(input.Event{Type: input.EventCharacter, Text: "x"}) {
		t.Error("input still accepts events after a quit")
	}
}

func TestMotionButtons(t *testing.T) {
	got := motionButtons(sdl.ButtonLMask() | sdl.ButtonRMask())
	want := input.ModLeftButtonDown | input.ModRightButtonDown
	if got != want {
		t.Errorf("motionButtons() = %v, want %v", got, want)
	}
	if got := motionButtons(0); got != 0 {
		t.Errorf("motionButtons(0) = %v, want no bits", got)
	}
}
