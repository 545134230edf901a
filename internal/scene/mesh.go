// Package scene provides the mesh shown by the viewer: an OBJ file or a
// default cube, plus a file watcher for reloading it.
package scene

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoSource is returned when there is neither a mesh file nor a default primitive.
var ErrNoSource = errors.New("scene: no mesh file and default primitive disabled")

// Vertex is an interleaved GPU vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBounds returns an inverted box that any point will expand.
func EmptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
}

// Center returns the box center.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the box diagonal.
func (b Bounds) Diagonal() float32 {
	return b.Max.Sub(b.Min).Len()
}

// Mesh is triangle geometry ready for upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Triangles returns the triangle count.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// ViewRadius is the radius used to frame the mesh: three quarters of the box diagonal.
func (m *Mesh) ViewRadius() float32 {
	r := 0.75 * m.Bounds.Diagonal()
	if r <= 0 || math32.IsInf(r, 0) || math32.IsNaN(r) {
		return 1
	}
	return r
}

// SmoothNormals averages normals of vertices sharing a position.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.0001

	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum mgl32.Vec3
		for _, idx := range idxs {
			sum = sum.Add(mgl32.Vec3(vertices[idx].Normal))
		}
		if sum.Len() < 1e-6 {
			continue
		}
		avg := [3]float32(sum.Normalize())
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}
