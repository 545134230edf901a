// Package viewer owns one viewing session: the shared scene state, the tools
// editing it and the per-context render pass.
package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/clip"
	"github.com/Faultbox/geoviewer/internal/config"
	"github.com/Faultbox/geoviewer/internal/device"
	"github.com/Faultbox/geoviewer/internal/engine/camera"
	"github.com/Faultbox/geoviewer/internal/engine/picking"
	"github.com/Faultbox/geoviewer/internal/locator"
	"github.com/Faultbox/geoviewer/internal/logger"
	"github.com/Faultbox/geoviewer/internal/render"
	"github.com/Faultbox/geoviewer/internal/scene"
)

// opacityStep is the change applied by the opacity commands.
const opacityStep = 0.1

// Session holds the state shared by every render context.
type Session struct {
	registry *clip.Registry
	state    *appearance.State
	tools    *locator.Manager
	cache    *render.Cache
	renderer *render.Renderer
	mouse    *device.Mouse
	camera   *camera.OrbitCamera

	mesh     *scene.Mesh
	watcher  *scene.Watcher
	centered bool

	log *zap.Logger
}

// New loads the scene source and builds the session. It fails before any
// frame is drawn when no mesh can be loaded.
func New(cfg *config.Config) (*Session, error) {
	mesh, err := scene.Load(scene.Source{File: cfg.Scene.File, Default: cfg.Scene.DefaultCube})
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	s := newSession(cfg, mesh)

	if cfg.Scene.Watch && cfg.Scene.File != "" {
		s.watcher, err = scene.Watch(cfg.Scene.File)
		if err != nil {
			s.log.Warn("mesh hot reload disabled", zap.Error(err))
		}
	}
	return s, nil
}

func newSession(cfg *config.Config, mesh *scene.Mesh) *Session {
	registry := clip.New(cfg.Tools.ClipPlanes)

	a := cfg.Appearance
	state := appearance.Default()
	state.SetRepresentation(a.Representation)
	state.SetOpacity(a.Opacity)
	state.SetAmbient(a.Ambient[0], a.Ambient[1], a.Ambient[2])
	state.SetDiffuse(a.Diffuse[0], a.Diffuse[1], a.Diffuse[2])
	state.SetSpecular(a.Specular[0], a.Specular[1], a.Specular[2])
	state.SetIntensity(a.Intensity)

	tools := locator.NewManager(cfg.Tools.Mode, registry, &state.Flashlight)
	cache := render.NewCache(mesh)

	s := &Session{
		registry: registry,
		state:    state,
		tools:    tools,
		cache:    cache,
		renderer: render.NewRenderer(registry, state, cache),
		mouse:    device.NewMouse(tools),
		camera:   camera.NewOrbitCamera(),
		mesh:     mesh,
		log:      logger.Named("viewer"),
	}
	s.log.Info("session created",
		zap.String("mesh", mesh.Name),
		zap.Int("triangles", mesh.Triangles()),
		zap.Int("clip_slots", registry.Capacity()),
		zap.Stringer("tool", cfg.Tools.Mode),
	)
	return s
}

// Registry returns the clipping plane registry.
func (s *Session) Registry() *clip.Registry { return s.registry }

// Appearance returns the shared appearance state.
func (s *Session) Appearance() *appearance.State { return s.state }

// Tools returns the tool lifecycle manager.
func (s *Session) Tools() *locator.Manager { return s.tools }

// Mouse returns the desktop locator device.
func (s *Session) Mouse() *device.Mouse { return s.mouse }

// Camera returns the navigator.
func (s *Session) Camera() *camera.OrbitCamera { return s.camera }

// Renderer returns the frame renderer.
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// Mesh returns the displayed mesh.
func (s *Session) Mesh() *scene.Mesh { return s.mesh }

// Center fits the view to the mesh: center of its bounds, radius 0.75 times
// the bounds diagonal.
func (s *Session) Center() {
	s.camera.FitToSphere(s.mesh.Bounds.Center(), s.mesh.ViewRadius())
	s.centered = true
	s.log.Debug("display centered",
		zap.Float32("radius", s.camera.Radius()),
	)
}

// BeginFrame runs once per frame before any context renders. It applies
// pending file changes and centers the display on the first frame.
func (s *Session) BeginFrame() {
	s.Poll()
	if !s.centered {
		s.Center()
	}
}

// Render draws one frame into ctx.
func (s *Session) Render(ctx render.Context) (render.PassStats, error) {
	return s.renderer.Render(ctx)
}

// ContextClosed releases the resources of a torn-down context.
func (s *Session) ContextClosed(ctx render.Context) {
	s.renderer.Forget(ctx)
}

// Poll applies pending file changes.
func (s *Session) Poll() {
	if s.watcher == nil || !s.watcher.Poll() {
		return
	}
	s.Reload()
}

// Reload reads the mesh file again. On failure the current mesh stays.
func (s *Session) Reload() {
	if s.watcher == nil {
		return
	}
	mesh, err := scene.LoadFile(s.watcher.Path())
	if err != nil {
		s.log.Warn("reloading mesh failed", zap.String("path", s.watcher.Path()), zap.Error(err))
		return
	}
	s.mesh = mesh
	s.cache.SetSource(mesh)
	s.log.Info("mesh reloaded",
		zap.String("mesh", mesh.Name),
		zap.Int("triangles", mesh.Triangles()),
	)
}

// PointerRay returns the ray under pixel (x, y) of a width x height viewport.
func (s *Session) PointerRay(x, y, width, height int) picking.Ray {
	aspect := float32(width) / float32(max(height, 1))
	viewProj := s.camera.ProjectionMatrix(aspect).Mul4(s.camera.ViewMatrix())
	return picking.ScreenToRay(float32(x), float32(y), float32(width), float32(height), viewProj.Inv())
}

// PointerPose returns the desktop device pose under the pointer, at the depth
// of the view center.
func (s *Session) PointerPose(x, y, width, height int) locator.Pose {
	ray := s.PointerRay(x, y, width, height)
	ray.Origin = s.camera.Position()
	return device.PoseAt(ray, s.camera.Distance)
}

// ViewTransform returns the view and projection for a viewport aspect plus the
// eye position and view direction the headlight follows.
func (s *Session) ViewTransform(aspect float32) (view, proj mgl32.Mat4, eye, forward mgl32.Vec3) {
	return s.camera.ViewMatrix(), s.camera.ProjectionMatrix(aspect), s.camera.Position(), s.camera.Forward()
}

// Close destroys every tool and stops watching the mesh file.
func (s *Session) Close() {
	s.mouse.DestroyAll()
	s.tools.Close()
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.log.Info("session closed")
}
