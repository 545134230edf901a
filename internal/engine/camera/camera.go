// Package camera provides the desktop navigator for viewing the scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center mgl32.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians
	Yaw      float32 // radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// FOV is the vertical field of view in radians.
	FOV float32

	radius float32
}

// NewOrbitCamera creates a camera looking down -Z at the origin.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             mgl32.DegToRad(45),
	}
	c.FitToSphere(mgl32.Vec3{}, 1)
	return c
}

// FitToSphere centers the view on a sphere so that it fills the viewport and
// resets the orientation.
func (c *OrbitCamera) FitToSphere(center mgl32.Vec3, radius float32) {
	if radius <= 0 {
		radius = 1
	}
	c.Center = center
	c.radius = radius
	c.Distance = radius / math32.Sin(c.FOV/2)
	c.MinDistance = radius * 0.01
	c.MaxDistance = c.Distance * 20
	c.Pitch = 0
	c.Yaw = 0
}

// Radius returns the display radius set by the last FitToSphere.
func (c *OrbitCamera) Radius() float32 { return c.radius }

// Position returns the camera position in model coordinates.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Center.Add(mgl32.Vec3{cp * sy, sp, cp * cy}.Mul(c.Distance))
}

// Forward returns the unit view direction.
func (c *OrbitCamera) Forward() mgl32.Vec3 {
	return c.Center.Sub(c.Position()).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection whose depth range
// encloses the display sphere.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	near := math32.Max(c.Distance-c.radius*2, c.radius*0.01)
	far := c.Distance + c.radius*2
	return mgl32.Perspective(c.FOV, aspect, near, far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+deltaY*c.DragSensitivity, -c.MaxPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}
