// Package renderer provides the OpenGL render context the frame pass draws into.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/engine/lighting"
	"github.com/Faultbox/geoviewer/internal/engine/shader"
	"github.com/Faultbox/geoviewer/internal/engine/shader/shaders"
	"github.com/Faultbox/geoviewer/internal/logger"
	"github.com/Faultbox/geoviewer/internal/render"
	"github.com/Faultbox/geoviewer/internal/scene"
)

// ErrUnknownMesh is returned when drawing a handle this context never uploaded.
var ErrUnknownMesh = errors.New("unknown mesh handle")

// surfaceColor is the base material color of the actor.
var surfaceColor = mgl32.Vec3{0.85, 0.85, 0.85}

// Config holds renderer configuration.
type Config struct {
	ID         render.ContextID
	Width      int
	Height     int
	Background [4]float32
}

type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Renderer is one OpenGL render context. It implements render.Context.
// IMPORTANT: every method must be called with its GL context current.
type Renderer struct {
	config Config

	program *shader.Program
	maxClip int
	planes  [shaders.MaxClipPlanes][4]float32

	meshes   map[render.MeshHandle]*gpuMesh
	nextMesh render.MeshHandle

	view    mgl32.Mat4
	proj    mgl32.Mat4
	eye     mgl32.Vec3
	forward mgl32.Vec3
}

var _ render.Context = (*Renderer)(nil)

// New creates a renderer for the current GL context.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		meshes:  make(map[render.MeshHandle]*gpuMesh),
		view:    mgl32.Ident4(),
		proj:    mgl32.Ident4(),
		forward: mgl32.Vec3{0, 0, -1},
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	var clipUnits int32
	gl.GetIntegerv(gl.MAX_CLIP_DISTANCES, &clipUnits)
	r.maxClip = min(int(clipUnits), shaders.MaxClipPlanes)

	logger.Info("OpenGL initialized",
		zap.Uint32("context", uint32(cfg.ID)),
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("clip_units", r.maxClip),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])

	var err error
	r.program, err = shader.NewProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Uint32("context", uint32(r.config.ID)))
	for h := range r.meshes {
		r.ReleaseMesh(h)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// SetCamera sets the view for the next Draw. The headlight follows eye and forward.
func (r *Renderer) SetCamera(view, proj mgl32.Mat4, eye, forward mgl32.Vec3) {
	r.view = view
	r.proj = proj
	r.eye = eye
	r.forward = forward
}

// ID returns the context identity.
func (r *Renderer) ID() render.ContextID { return r.config.ID }

// MaxClipPlanes returns the number of usable clip distance units. The limit is
// fixed for a context and read once in New.
func (r *Renderer) MaxClipPlanes() int { return r.maxClip }

// EnableClipPlane enables a clip distance unit with the given plane equation.
func (r *Renderer) EnableClipPlane(unit int, eq [4]float64) {
	if unit < 0 || unit >= r.maxClip {
		return
	}
	r.planes[unit] = [4]float32{float32(eq[0]), float32(eq[1]), float32(eq[2]), float32(eq[3])}
	gl.Enable(gl.CLIP_DISTANCE0 + uint32(unit))
}

// DisableClipPlane disables a clip distance unit.
func (r *Renderer) DisableClipPlane(unit int) {
	if unit < 0 || unit >= r.maxClip {
		return
	}
	r.planes[unit] = [4]float32{}
	gl.Disable(gl.CLIP_DISTANCE0 + uint32(unit))
}

// UploadMesh creates the VAO, VBO and EBO of m.
func (r *Renderer) UploadMesh(m *scene.Mesh) (render.MeshHandle, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return 0, fmt.Errorf("mesh %q has no triangles", m.Name)
	}

	gm := &gpuMesh{indexCount: int32(len(m.Indices))}
	vertexSize := int(unsafe.Sizeof(scene.Vertex{}))

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	if err := glError(); err != nil {
		gl.DeleteVertexArrays(1, &gm.vao)
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
		return 0, fmt.Errorf("uploading mesh %q: %w", m.Name, err)
	}

	r.nextMesh++
	r.meshes[r.nextMesh] = gm
	logger.Debug("mesh uploaded",
		zap.Uint32("context", uint32(r.config.ID)),
		zap.String("mesh", m.Name),
		zap.Int("triangles", m.Triangles()),
	)
	return r.nextMesh, nil
}

// ReleaseMesh deletes the GPU buffers of h.
func (r *Renderer) ReleaseMesh(h render.MeshHandle) {
	gm, ok := r.meshes[h]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gm.vao)
	gl.DeleteBuffers(1, &gm.vbo)
	gl.DeleteBuffers(1, &gm.ebo)
	delete(r.meshes, h)
}

// Draw renders the actor of res with its lights and the enabled clip units.
func (r *Renderer) Draw(res *render.Resources) error {
	gm, ok := r.meshes[res.Actor.Mesh]
	if !ok {
		return fmt.Errorf("mesh %d: %w", res.Actor.Mesh, ErrUnknownMesh)
	}

	p := r.program
	p.Use()

	mvp := r.proj.Mul4(r.view)
	model := mgl32.Ident4()
	gl.UniformMatrix4fv(p.Uniform("uMVP"), 1, false, &mvp[0])
	gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, &model[0])
	gl.Uniform4fv(p.Uniform("uClipPlanes"), shaders.MaxClipPlanes, &r.planes[0][0])
	gl.Uniform3f(p.Uniform("uEye"), r.eye[0], r.eye[1], r.eye[2])
	gl.Uniform3f(p.Uniform("uColor"), surfaceColor[0], surfaceColor[1], surfaceColor[2])
	gl.Uniform1f(p.Uniform("uOpacity"), res.Actor.Opacity)
	gl.Uniform1i(p.Uniform("uEdges"), 0)

	head := res.Headlight
	head.Position = r.eye
	head.Direction = r.forward
	r.uploadLights(lighting.Pack(head, res.Flashlight))

	gl.BindVertexArray(gm.vao)

	translucent := res.Actor.Opacity < 1
	if translucent {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
	}

	switch res.Actor.Representation {
	case appearance.Points:
		gl.PointSize(3)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
	case appearance.Wireframe:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if translucent && res.Transparency.DepthPeeling {
		drawOrdered(gm, res.Transparency.MaxPeels)
	} else {
		drawElements(gm)
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	if res.Actor.EdgeVisibility {
		r.drawEdges(gm)
	}

	if translucent {
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
	gl.BindVertexArray(0)

	return glError()
}

func (r *Renderer) uploadLights(b lighting.Block) {
	p := r.program
	n := int32(lighting.MaxLights)
	gl.Uniform1i(p.Uniform("uLightCount"), b.Count)
	gl.Uniform1iv(p.Uniform("uLightKinds"), n, &b.Kinds[0])
	gl.Uniform3fv(p.Uniform("uLightPositions"), n, &b.Positions[0])
	gl.Uniform3fv(p.Uniform("uLightDirs"), n, &b.Dirs[0])
	gl.Uniform3fv(p.Uniform("uLightAmbient"), n, &b.Ambient[0])
	gl.Uniform3fv(p.Uniform("uLightDiffuse"), n, &b.Diffuse[0])
	gl.Uniform3fv(p.Uniform("uLightSpecular"), n, &b.Specular[0])
	gl.Uniform1fv(p.Uniform("uLightCutoffs"), n, &b.Cutoffs[0])
}

// drawEdges overlays the triangle edges in black.
func (r *Renderer) drawEdges(gm *gpuMesh) {
	gl.Uniform1i(r.program.Uniform("uEdges"), 1)
	gl.Enable(gl.POLYGON_OFFSET_LINE)
	gl.PolygonOffset(-1, -1)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	drawElements(gm)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.POLYGON_OFFSET_LINE)
	gl.Uniform1i(r.program.Uniform("uEdges"), 0)
}

// drawOrdered composites back faces before front faces, one layer per peel.
func drawOrdered(gm *gpuMesh, peels int) {
	if peels < 2 {
		drawElements(gm)
		return
	}
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
	drawElements(gm)
	gl.CullFace(gl.BACK)
	drawElements(gm)
	gl.Disable(gl.CULL_FACE)
}

func drawElements(gm *gpuMesh) {
	gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
}

func glError() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%04x", code)
	}
	return nil
}
