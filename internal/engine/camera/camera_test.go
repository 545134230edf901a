package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFitToSphere(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(100, 40)
	c.FitToSphere(mgl32.Vec3{1, 2, 3}, 5)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Center)
	assert.Zero(t, c.Pitch, "orientation reset")
	assert.Zero(t, c.Yaw, "orientation reset")
	assert.InDelta(t, c.Distance, c.Position().Sub(c.Center).Len(), 1e-4)
	assert.Greater(t, c.Distance, float32(5), "sphere must fit in view")
}

func TestForwardLooksAtCenter(t *testing.T) {
	f := NewOrbitCamera().Forward()
	assert.InDeltaSlice(t, []float32{0, 0, -1}, f[:], 1e-5)
}

func TestZoomClamped(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	assert.GreaterOrEqual(t, c.Distance, c.MinDistance)
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	assert.LessOrEqual(t, c.Distance, c.MaxDistance)
}

func TestPitchClamped(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.Pitch)
}
