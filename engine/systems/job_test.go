package systems

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
)

func TestNewJobSystemValidation(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)

	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestJobSystemRunsCallbacks(t *testing.T) {
	js, err := NewJobSystem(2, 4)
	require.NoError(t, err)

	var completed, failed, finished atomic.Int32
	boom := errors.New("boom")

	for i := 0; i < 4; i++ {
		fail := i%2 == 1
		err := js.Submit(metadata.JobTask{
			JobType:     metadata.JOB_TYPE_GENERAL,
			InputParams: i,
			OnStart: func(params interface{}) (interface{}, error) {
				if fail {
					return nil, boom
				}
				return params.(int) * 2, nil
			},
			OnComplete: func(result interface{}) {
				completed.Add(1)
			},
			OnFailure: func(err error) {
				if errors.Is(err, boom) {
					failed.Add(1)
				}
			},
			OnCompletionCallback: func() {
				finished.Add(1)
			},
		})
		require.NoError(t, err)
	}

	// Shutdown drains the queue.
	require.NoError(t, js.Shutdown())
	assert.Equal(t, int32(2), completed.Load())
	assert.Equal(t, int32(2), failed.Load())
	assert.Equal(t, int32(4), finished.Load())
}

func TestJobSystemRejectsAfterShutdown(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	require.NoError(t, err)
	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())

	err = js.Submit(metadata.JobTask{OnStart: func(interface{}) (interface{}, error) { return nil, nil }})
	assert.ErrorIs(t, err, ErrJobSystemShutdown)

	err = js.Submit(metadata.JobTask{})
	assert.ErrorIs(t, err, ErrMissingJobEntryPoint)
}
