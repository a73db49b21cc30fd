package components

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/spaghettifunk/skyview/engine/math"
)

func TestControllerYawScalesBySensitivity(t *testing.T) {
	cc := NewCameraController(0.035, 88)
	cc.Update(math.NewVec2(100, 0))

	assert.InDelta(t, 3.5, cc.Yaw(), 1e-4)
	assert.Equal(t, float32(0), cc.Pitch())
}

func TestControllerPitchSaturates(t *testing.T) {
	cc := NewCameraController(0.035, 88)
	for i := 0; i < 3; i++ {
		cc.Update(math.NewVec2(0, 3000))
		assert.Equal(t, float32(88), cc.Pitch())
	}

	cc.Update(math.NewVec2(0, -10000))
	assert.Equal(t, float32(-88), cc.Pitch())
}

func TestControllerIgnoresNonFiniteDelta(t *testing.T) {
	cc := NewCameraController(0.035, 88)
	cc.Update(math.NewVec2(100, 1000))
	yaw, pitch := cc.Yaw(), cc.Pitch()

	nan := float32(gomath.NaN())
	inf := float32(gomath.Inf(1))
	for _, d := range []math.Vec2{
		math.NewVec2(nan, 0),
		math.NewVec2(0, nan),
		math.NewVec2(inf, 0),
		math.NewVec2(0, -inf),
	} {
		cc.Update(d)
		assert.Equal(t, yaw, cc.Yaw())
		assert.Equal(t, pitch, cc.Pitch())
	}
	assert.LessOrEqual(t, cc.Pitch(), float32(88))
}

func TestControllerPitchStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cc := NewCameraController(0.035, 88)

	for i := 0; i < 10000; i++ {
		dx := float32(rng.NormFloat64() * 500)
		dy := float32(rng.NormFloat64() * 500)
		cc.Update(math.NewVec2(dx, dy))
		require.GreaterOrEqual(t, cc.Pitch(), float32(-88))
		require.LessOrEqual(t, cc.Pitch(), float32(88))
	}
}

func TestControllerDefaults(t *testing.T) {
	cc := NewCameraController(0, 120)
	assert.Equal(t, DEFAULT_SENSITIVITY, cc.Sensitivity)
	assert.Equal(t, DEFAULT_PITCH_LIMIT, cc.PitchLimit)
}

func TestControllerOrientationSigns(t *testing.T) {
	tests := []struct {
		name     string
		delta    math.Vec2
		expected math.Vec3
	}{
		{name: "none", delta: math.NewVec2(0, 0), expected: math.NewVec3(0, 0, -1)},
		{name: "right", delta: math.NewVec2(90, 0), expected: math.NewVec3(1, 0, 0)},
		{name: "left", delta: math.NewVec2(-90, 0), expected: math.NewVec3(-1, 0, 0)},
		{name: "down", delta: math.NewVec2(0, 45), expected: math.NewVec3(0, -0.70710678, -0.70710678)},
		{name: "up", delta: math.NewVec2(0, -45), expected: math.NewVec3(0, 0.70710678, -0.70710678)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController(1, 88)
			q := cc.Update(tt.delta)
			got := q.Rotate(math.NewVec3Forward())
			assert.True(t, got.Compare(tt.expected, 1e-4), "got %v, want %v", got, tt.expected)
		})
	}
}

func TestControllerPitchIsLocal(t *testing.T) {
	// turned right, then looking down: forward tilts down along +X
	cc := NewCameraController(1, 88)
	q := cc.Update(math.NewVec2(90, 45))
	got := q.Rotate(math.NewVec3Forward())
	assert.True(t, got.Compare(math.NewVec3(0.70710678, -0.70710678, 0), 1e-4), "got %v", got)
}

func TestCameraViewIsInverseOfTransform(t *testing.T) {
	c := NewCamera(1280, 720)
	c.SetPosition(math.NewVec3(1, 2, 3))
	c.SetRotation(NewCameraController(1, 88).Update(math.NewVec2(30, 10)))

	world := c.Transform.GetWorld()
	assert.True(t, world.Mul(c.GetView()).Compare(math.NewMat4Identity(), 1e-4))

	// a point in front of the camera lands on -Z in view space
	target := c.GetPosition().Add(c.Forward().MulScalar(5))
	inView := target.Transform(c.GetView())
	assert.True(t, inView.Compare(math.NewVec3(0, 0, -5), 1e-3), "got %v", inView)
}

func TestCameraResize(t *testing.T) {
	c := NewCamera(800, 600)
	before := c.GetProjection()
	c.Resize(0, 0)
	assert.Equal(t, before, c.GetProjection())

	c.Resize(1600, 400)
	assert.InDelta(t, 4.0, c.AspectRatio, 1e-6)
	assert.NotEqual(t, before, c.GetProjection())
}
