// Package appearance holds the process-wide shading state read by every render
// context each frame and written by UI bindings and the flashlight locator.
package appearance

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Flashlight is the single shared positional light driven by a locator.
// At most one owner holds it at a time.
type Flashlight struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	On        bool

	owner any
}

// Acquire gives exclusive ownership to owner. It returns false when another
// owner already holds the flashlight. Re-acquiring by the current owner succeeds.
func (f *Flashlight) Acquire(owner any) bool {
	if owner == nil {
		return false
	}
	if f.owner != nil && f.owner != owner {
		return false
	}
	f.owner = owner
	return true
}

// Release switches the light off and drops ownership if owner holds it.
func (f *Flashlight) Release(owner any) {
	if owner == nil || f.owner != owner {
		return
	}
	f.owner = nil
	f.On = false
}

// Owned reports whether some locator currently holds the flashlight.
func (f *Flashlight) Owned() bool {
	return f.owner != nil
}

// State is the shared appearance block.
type State struct {
	Opacity        float32
	Representation Representation

	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Intensity float32

	Flashlight Flashlight
}

// Default returns the startup appearance: opaque surface, white diffuse headlight.
func Default() *State {
	return &State{
		Opacity:        1,
		Representation: Surface,
		Ambient:        mgl32.Vec3{0, 0, 0},
		Diffuse:        mgl32.Vec3{1, 1, 1},
		Specular:       mgl32.Vec3{0, 0, 0},
		Intensity:      1,
		Flashlight: Flashlight{
			Direction: mgl32.Vec3{0, 0, -1},
		},
	}
}

// SetOpacity stores opacity clamped to [0, 1].
func (s *State) SetOpacity(v float32) {
	s.Opacity = clamp01(v)
}

// SetRepresentation stores r if it is a known mode.
func (s *State) SetRepresentation(r Representation) {
	if r.Valid() {
		s.Representation = r
	}
}

// SetAmbient sets the ambient light color.
func (s *State) SetAmbient(r, g, b float32) {
	s.Ambient = clampColor(r, g, b)
}

// SetDiffuse sets the diffuse light color.
func (s *State) SetDiffuse(r, g, b float32) {
	s.Diffuse = clampColor(r, g, b)
}

// SetSpecular sets the specular light color.
func (s *State) SetSpecular(r, g, b float32) {
	s.Specular = clampColor(r, g, b)
}

// SetIntensity sets the headlight intensity. Negative values become zero.
func (s *State) SetIntensity(v float32) {
	s.Intensity = math32.Max(v, 0)
}

// Snapshot returns a copy for one render pass. The copy shares no ownership
// token with the live flashlight.
func (s *State) Snapshot() State {
	out := *s
	out.Flashlight.owner = nil
	return out
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Min(math32.Max(v, 0), 1)
}

func clampColor(r, g, b float32) mgl32.Vec3 {
	return mgl32.Vec3{clamp01(r), clamp01(g), clamp01(b)}
}
