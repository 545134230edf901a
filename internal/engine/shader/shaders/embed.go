// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MaxClipPlanes is the size of the clip plane array in MeshVertexShader.
const MaxClipPlanes = 8

// MeshVertexShader transforms mesh vertices and writes one clip distance per plane.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader lights the mesh with the packed light block.
//
//go:embed mesh.frag
var MeshFragmentShader string
