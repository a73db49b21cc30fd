package core

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	SetLogOutput(io.Discard)
}

func TestEventFireStopsAtFirstHandler(t *testing.T) {
	require.True(t, EventSystemInitialize())

	calls := 0
	EventRegister(EVENT_CODE_KEY_PRESSED, func(EventContext) bool {
		calls++
		return true
	})
	EventRegister(EVENT_CODE_KEY_PRESSED, func(EventContext) bool {
		calls++
		return false
	})

	assert.True(t, EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.Equal(t, 1, calls)
	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED}))
}

func TestEventQueueDefersUntilProcess(t *testing.T) {
	require.True(t, EventSystemInitialize())

	var got []EventCode
	EventRegister(EVENT_CODE_APPLICATION_QUIT, func(ctx EventContext) bool {
		got = append(got, ctx.Type)
		return true
	})

	require.NoError(t, EventQueue(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	assert.Empty(t, got)

	EventProcess()
	assert.Equal(t, []EventCode{EVENT_CODE_APPLICATION_QUIT}, got)

	EventProcess()
	assert.Len(t, got, 1)
}

func TestEventShutdownDropsQueuedEvents(t *testing.T) {
	require.True(t, EventSystemInitialize())
	require.NoError(t, EventQueue(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	require.NoError(t, EventSystemShutdown())

	fired := false
	EventRegister(EVENT_CODE_APPLICATION_QUIT, func(ctx EventContext) bool {
		fired = true
		return true
	})
	EventProcess()
	assert.False(t, fired)
}

func TestInputMouseDelta(t *testing.T) {
	require.True(t, EventSystemInitialize())
	require.NoError(t, InputInitialize())

	_, _, err := InputGetMouseDelta()
	assert.ErrorIs(t, err, ErrPointerInputUnavailable)

	// first sample only sets the origin
	require.NoError(t, InputProcessMouseMove(400, 300))
	dx, dy, err := InputGetMouseDelta()
	require.NoError(t, err)
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	require.NoError(t, InputProcessMouseMove(410, 295))
	require.NoError(t, InputProcessMouseMove(430, 290))
	dx, dy, err = InputGetMouseDelta()
	require.NoError(t, err)
	assert.Equal(t, 30.0, dx)
	assert.Equal(t, -10.0, dy)

	require.NoError(t, InputUpdate(0.016))
	dx, dy, err = InputGetMouseDelta()
	require.NoError(t, err)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestInputProcessKeyFiresOnChange(t *testing.T) {
	require.True(t, EventSystemInitialize())
	require.NoError(t, InputInitialize())

	pressed := 0
	EventRegister(EVENT_CODE_KEY_PRESSED, func(ctx EventContext) bool {
		ke, ok := ctx.Data.(*KeyEvent)
		require.True(t, ok)
		assert.Equal(t, KEY_ESCAPE, ke.KeyCode)
		pressed++
		return true
	})

	require.NoError(t, InputProcessKey(KEY_ESCAPE, true))
	require.NoError(t, InputProcessKey(KEY_ESCAPE, true))
	assert.Equal(t, 1, pressed)
	assert.True(t, InputIsKeyDown(KEY_ESCAPE))

	require.NoError(t, InputUpdate(0))
	assert.True(t, InputWasKeyDown(KEY_ESCAPE))
}

func TestMetricsProducesFPS(t *testing.T) {
	m := NewMetrics()
	produced := false
	for i := 0; i < 70; i++ {
		if m.Update(1.0 / 60.0) {
			produced = true
		}
	}
	require.True(t, produced)
	assert.InDelta(t, 61, m.FPS(), 1)
	assert.InDelta(t, 16.6, m.FrameTime(), 0.1)
}
