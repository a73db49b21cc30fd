package core

import "sync"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions. Only the keys the viewer reacts to are mapped.
type KeyCode uint16

const (
	KEY_UNKNOWN KeyCode = 0x00
	KEY_ENTER   KeyCode = 0x0D
	KEY_TAB     KeyCode = 0x09
	KEY_ESCAPE  KeyCode = 0x1B
	KEY_SPACE   KeyCode = 0x20
	KEY_LEFT    KeyCode = 0x25
	KEY_UP      KeyCode = 0x26
	KEY_RIGHT   KeyCode = 0x27
	KEY_DOWN    KeyCode = 0x28
	KEY_R       KeyCode = 0x52
	KEY_F1      KeyCode = 0x70
	KEYS_MAX_KEYS
)

type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool
}

type KeyboardState struct {
	Keys [256]bool
}

// InputState holds current and previous states for keyboard and mouse, plus
// the pointer motion accumulated since the last InputUpdate.
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState

	// set once the first cursor position arrives
	hasPointer bool
	deltaX     float64
	deltaY     float64
}

var inputMu sync.Mutex
var inputInitialized bool = false
var inputState *InputState = nil

func InputInitialize() error {
	inputMu.Lock()
	inputState = &InputState{}
	inputInitialized = true
	inputMu.Unlock()
	LogInfo("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputMu.Lock()
	inputInitialized = false
	inputMu.Unlock()
	return nil
}

// InputUpdate copies the current state into the previous one and clears the
// accumulated pointer motion. Must run after everything that reads input this frame.
func InputUpdate(deltaTime float64) error {
	inputMu.Lock()
	defer inputMu.Unlock()
	if !inputInitialized {
		return nil
	}
	inputState.KeyboardPrevious = inputState.KeyboardCurrent
	inputState.MousePrevious = inputState.MouseCurrent
	inputState.deltaX = 0
	inputState.deltaY = 0
	return nil
}

// keyboard input
func InputIsKeyDown(key KeyCode) bool {
	inputMu.Lock()
	defer inputMu.Unlock()
	if !inputInitialized {
		return false
	}
	return inputState.KeyboardCurrent.Keys[key]
}

func InputWasKeyDown(key KeyCode) bool {
	inputMu.Lock()
	defer inputMu.Unlock()
	if !inputInitialized {
		return false
	}
	return inputState.KeyboardPrevious.Keys[key]
}

func InputProcessKey(key KeyCode, pressed bool) error {
	inputMu.Lock()
	if !inputInitialized || inputState.KeyboardCurrent.Keys[key] == pressed {
		inputMu.Unlock()
		return nil
	}
	inputState.KeyboardCurrent.Keys[key] = pressed
	inputMu.Unlock()

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	// Fire off an event for immediate processing.
	EventFire(EventContext{
		Type: code,
		Data: &KeyEvent{
			KeyCode: key,
		},
	})
	return nil
}

// mouse input
func InputIsButtonDown(button Button) bool {
	inputMu.Lock()
	defer inputMu.Unlock()
	if !inputInitialized {
		return false
	}
	return inputState.MouseCurrent.Buttons[button]
}

func InputProcessButton(button Button, pressed bool) error {
	inputMu.Lock()
	if !inputInitialized || inputState.MouseCurrent.Buttons[button] == pressed {
		inputMu.Unlock()
		return nil
	}
	inputState.MouseCurrent.Buttons[button] = pressed
	inputMu.Unlock()

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	EventFire(EventContext{
		Type: code,
		Data: &MouseEvent{
			Button: button,
		},
	})
	return nil
}

func InputGetMousePosition() (float64, float64) {
	inputMu.Lock()
	defer inputMu.Unlock()
	if !inputInitialized {
		return 0, 0
	}
	return inputState.MouseCurrent.X, inputState.MouseCurrent.Y
}

// InputGetMouseDelta returns the pointer motion accumulated this frame in
// device units. ErrPointerInputUnavailable is returned while no pointer
// device has reported a position yet.
func InputGetMouseDelta() (float64, float64, error) {
	inputMu.Lock()
	defer inputMu.Unlock()
	if !inputInitialized || !inputState.hasPointer {
		return 0, 0, ErrPointerInputUnavailable
	}
	return inputState.deltaX, inputState.deltaY, nil
}

// InputProcessMouseMove records an absolute cursor position. With a captured
// cursor the position is virtual and unbounded, so deltas never clamp at the
// window edges. The first sample only establishes the origin.
func InputProcessMouseMove(x, y float64) error {
	inputMu.Lock()
	if !inputInitialized {
		inputMu.Unlock()
		return nil
	}
	if !inputState.hasPointer {
		inputState.hasPointer = true
		inputState.MouseCurrent.X = x
		inputState.MouseCurrent.Y = y
		inputMu.Unlock()
		return nil
	}
	dx := x - inputState.MouseCurrent.X
	dy := y - inputState.MouseCurrent.Y
	if dx == 0 && dy == 0 {
		inputMu.Unlock()
		return nil
	}
	inputState.deltaX += dx
	inputState.deltaY += dy
	inputState.MouseCurrent.X = x
	inputState.MouseCurrent.Y = y
	inputMu.Unlock()

	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: &MouseEvent{
			PosX:   x,
			PosY:   y,
			DeltaX: dx,
			DeltaY: dy,
		},
	})
	return nil
}

func InputProcessMouseWheel(zDelta int8) error {
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{
			Scroll: zDelta,
		},
	})
	return nil
}
