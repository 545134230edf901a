package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestScreenToRayCenter(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 1, 100)
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(50, 50, 100, 100, inv)
	assert.InDeltaSlice(t, []float32{0, 0, -1}, r.Direction[:], 1e-4)
	assert.InDelta(t, 9, r.Origin[2], 1e-3, "origin lies on the near plane")
}

func TestIntersectAABB(t *testing.T) {
	box := [2]mgl32.Vec3{{-1, -1, -1}, {1, 1, 1}}

	tests := []struct {
		name string
		ray  Ray
		t    float32
		hit  bool
	}{
		{"front", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, 4, true},
		{"inside", Ray{mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}}, 1, true},
		{"miss", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, 0, false},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box[0], box[1])
			assert.Equal(t, tt.hit, hit)
			assert.Equal(t, tt.t, got)
		})
	}
}

func TestAt(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{1, 0, 0}, Direction: mgl32.Vec3{0, 1, 0}}
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, r.At(2))
}
