// Package render owns the per-context GPU resource bundles and the per-frame
// render pass that applies clipping planes and shared appearance to them.
package render

import "github.com/Faultbox/geoviewer/internal/scene"

// ContextID identifies one render context (one window or one cluster node).
type ContextID uint32

// MeshHandle is a context-local handle to uploaded geometry.
type MeshHandle uint32

// Context is one instance of the graphics pipeline. Every call is made with
// the context current on the calling thread.
type Context interface {
	ID() ContextID
	// MaxClipPlanes returns how many clip units the hardware can enable at once.
	MaxClipPlanes() int
	// EnableClipPlane enables unit and loads eq = {a, b, c, d}, keeping a*x+b*y+c*z+d >= 0.
	EnableClipPlane(unit int, eq [4]float64)
	DisableClipPlane(unit int)
	UploadMesh(m *scene.Mesh) (MeshHandle, error)
	ReleaseMesh(h MeshHandle)
	Draw(res *Resources) error
}
