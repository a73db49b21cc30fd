package core

import (
	"sync"

	"github.com/spaghettifunk/skyview/engine/containers"
)

// EventCode identifies an event. System codes live below 0xFF, applications
// should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed. Data: *MouseEvent
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released. Data: *MouseEvent
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. Data: *MouseEvent with position and delta
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Mouse wheel. Data: *MouseEvent with Scroll
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Resized/resolution changed from the OS. Data: *SystemEvent
	EVENT_CODE_RESIZED EventCode = 0x08

	MAX_EVENT_CODE EventCode = 0xFF
)

// The number of events that can wait for the next EventProcess call.
const MAX_QUEUED_EVENTS = 1024

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   float64
	PosY   float64
	DeltaX float64
	DeltaY float64
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// FnOnEvent should return true if the event was handled, which stops it from
// reaching the remaining listeners.
type FnOnEvent func(context EventContext) bool

type eventSystemState struct {
	mu         sync.Mutex
	registered map[EventCode][]FnOnEvent
	pending    *containers.RingQueue[EventContext]
}

var eventState *eventSystemState = nil

// EventSystemInitialize (re)creates the event system state. Any previous
// registration is dropped.
func EventSystemInitialize() bool {
	eventState = &eventSystemState{
		registered: make(map[EventCode][]FnOnEvent),
		pending:    containers.NewRingQueue[EventContext](MAX_QUEUED_EVENTS),
	}
	return true
}

func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	eventState.registered = make(map[EventCode][]FnOnEvent)
	if n := eventState.pending.Len(); n > 0 {
		LogDebug("dropping %d undelivered events", n)
	}
	eventState.pending = containers.NewRingQueue[EventContext](MAX_QUEUED_EVENTS)
	return nil
}

// EventRegister adds a listener for the given code.
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if eventState == nil || onEvent == nil {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// EventFire dispatches the event immediately on the calling goroutine.
// Returns true if a listener handled it.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.Lock()
	listeners := append([]FnOnEvent(nil), eventState.registered[context.Type]...)
	eventState.mu.Unlock()

	for _, l := range listeners {
		if l(context) {
			return true
		}
	}
	return false
}

// EventQueue defers the event until the next EventProcess call. Safe to call
// from worker goroutines.
func EventQueue(context EventContext) error {
	if eventState == nil {
		return ErrUnknown
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	return eventState.pending.Enqueue(context)
}

// EventProcess drains the pending queue. Called once per frame from the main loop.
func EventProcess() {
	if eventState == nil {
		return
	}
	for {
		eventState.mu.Lock()
		context, err := eventState.pending.Dequeue()
		eventState.mu.Unlock()
		if err != nil {
			return
		}
		EventFire(context)
	}
}
