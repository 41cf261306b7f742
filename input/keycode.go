package input

// KeyCode identifies a key. Codes follow the Windows virtual-key
// layout, which is what browsers report, so printable keys match
// their ASCII uppercase value.
type KeyCode int

// KeyCodeMax bounds the key state array. Codes outside [0, KeyCodeMax)
// still travel through the queue but are not tracked as held state.
const KeyCodeMax KeyCode = 256

const (
	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyClear     KeyCode = 0x0C
	KeyReturn    KeyCode = 0x0D
	KeyShift     KeyCode = 0x10
	KeyControl   KeyCode = 0x11
	KeyAlt       KeyCode = 0x12
	KeyPause     KeyCode = 0x13
	KeyCapsLock  KeyCode = 0x14
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyPageUp    KeyCode = 0x21
	KeyPageDown  KeyCode = 0x22
	KeyEnd       KeyCode = 0x23
	KeyHome      KeyCode = 0x24
	KeyLeft      KeyCode = 0x25
	KeyUp        KeyCode = 0x26
	KeyRight     KeyCode = 0x27
	KeyDown      KeyCode = 0x28
	KeyPrint     KeyCode = 0x2C
	KeyInsert    KeyCode = 0x2D
	KeyDelete    KeyCode = 0x2E
)

const (
	Key0 KeyCode = 0x30 + iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

const (
	KeyA KeyCode = 0x41 + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyLeftSuper
	KeyRightSuper
)

const (
	KeyNumpad0 KeyCode = 0x60 + iota
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadMultiply
	KeyNumpadAdd
	_
	KeyNumpadSubtract
	KeyNumpadDecimal
	KeyNumpadDivide
)

const (
	KeyF1 KeyCode = 0x70 + iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

const (
	KeyNumLock    KeyCode = 0x90
	KeyScrollLock KeyCode = 0x91

	KeyLeftShift    KeyCode = 0xA0
	KeyRightShift   KeyCode = 0xA1
	KeyLeftControl  KeyCode = 0xA2
	KeyRightControl KeyCode = 0xA3
	KeyLeftAlt      KeyCode = 0xA4
	KeyRightAlt     KeyCode = 0xA5

	KeySemicolon    KeyCode = 0xBA
	KeyEquals       KeyCode = 0xBB
	KeyComma        KeyCode = 0xBC
	KeyMinus        KeyCode = 0xBD
	KeyPeriod       KeyCode = 0xBE
	KeySlash        KeyCode = 0xBF
	KeyBackquote    KeyCode = 0xC0
	KeyLeftBracket  KeyCode = 0xDB
	KeyBackslash    KeyCode = 0xDC
	KeyRightBracket KeyCode = 0xDD
	KeyQuote        KeyCode = 0xDE
)
