// Package lighting describes the lights attached to a render context and packs
// them for shader upload.
package lighting

import "github.com/go-gl/mathgl/mgl32"

// MaxLights is the size of the light arrays in the mesh shader.
const MaxLights = 2

// Kind is the light model.
type Kind int

const (
	// KindHeadlight shines from the viewer along the view direction.
	KindHeadlight Kind = iota
	// KindPositional is a spot light placed in model coordinates.
	KindPositional
)

// Light is one light of a render context.
type Light struct {
	Kind      Kind
	Index     int // hardware light index the light models
	On        bool
	Intensity float32
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	// Cutoff is the cosine of the spot half-angle for positional lights.
	Cutoff float32
}

// Headlight returns the light modelling the viewer headlight at index 0:
// intensity 1 and white diffuse color.
func Headlight() Light {
	return Light{
		Kind:      KindHeadlight,
		Index:     0,
		On:        true,
		Intensity: 1,
		Diffuse:   mgl32.Vec3{1, 1, 1},
		Direction: mgl32.Vec3{0, 0, -1},
	}
}

// Flashlight returns the cyan positional light, switched off.
func Flashlight() Light {
	return Light{
		Kind:      KindPositional,
		Index:     1,
		On:        false,
		Intensity: 1,
		Diffuse:   mgl32.Vec3{0, 1, 1},
		Specular:  mgl32.Vec3{0, 1, 1},
		Direction: mgl32.Vec3{0, 0, -1},
		Cutoff:    0.9,
	}
}

// Block is the flattened light data uploaded as uniform arrays.
type Block struct {
	Count     int32
	Kinds     [MaxLights]int32
	Positions [MaxLights * 3]float32
	Dirs      [MaxLights * 3]float32
	Ambient   [MaxLights * 3]float32
	Diffuse   [MaxLights * 3]float32
	Specular  [MaxLights * 3]float32
	Cutoffs   [MaxLights]float32
}

// Pack flattens the lights that are on. Lights beyond MaxLights are dropped;
// intensity is folded into the colors.
func Pack(lights ...Light) Block {
	var b Block
	for _, l := range lights {
		if !l.On || int(b.Count) >= MaxLights {
			continue
		}
		i := int(b.Count)
		b.Kinds[i] = int32(l.Kind)
		put(b.Positions[:], i, l.Position)
		put(b.Dirs[:], i, l.Direction.Normalize())
		put(b.Ambient[:], i, l.Ambient.Mul(l.Intensity))
		put(b.Diffuse[:], i, l.Diffuse.Mul(l.Intensity))
		put(b.Specular[:], i, l.Specular.Mul(l.Intensity))
		b.Cutoffs[i] = l.Cutoff
		b.Count++
	}
	return b
}

func put(dst []float32, i int, v mgl32.Vec3) {
	dst[i*3+0] = v[0]
	dst[i*3+1] = v[1]
	dst[i*3+2] = v[2]
}
