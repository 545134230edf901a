package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/engine/lighting"
	"github.com/Faultbox/geoviewer/internal/logger"
	"github.com/Faultbox/geoviewer/internal/scene"
)

// Actor is the drawable mesh and its surface properties.
type Actor struct {
	Mesh           MeshHandle
	Opacity        float32
	Representation appearance.Representation
	EdgeVisibility bool
}

// Transparency configures how translucent surfaces are composited.
type Transparency struct {
	DepthPeeling bool
	MaxPeels     int
	// OcclusionRatio stops peeling once fewer than this fraction of pixels change.
	OcclusionRatio float32
}

// Resources is the bundle of GPU objects owned by one render context.
// It is never shared between contexts.
type Resources struct {
	Context      ContextID
	Actor        Actor
	Headlight    lighting.Light
	Flashlight   lighting.Light
	Transparency Transparency

	generation uint64
}

// Cache maps each render context to its resource bundle.
// Bundles are built on first use and torn down only by Release.
type Cache struct {
	bundles    map[ContextID]*Resources
	source     *scene.Mesh
	generation uint64
}

// NewCache creates a cache whose bundles draw source.
func NewCache(source *scene.Mesh) *Cache {
	return &Cache{
		bundles:    make(map[ContextID]*Resources),
		source:     source,
		generation: 1,
	}
}

// Len returns the number of live bundles.
func (c *Cache) Len() int { return len(c.bundles) }

// Source returns the mesh new bundles bind.
func (c *Cache) Source() *scene.Mesh { return c.source }

// SetSource replaces the scene mesh. Each bundle rebinds it on its next Get.
func (c *Cache) SetSource(m *scene.Mesh) {
	if m == nil {
		return
	}
	c.source = m
	c.generation++
}

// Get returns the bundle of ctx, building it on the first call for that context.
func (c *Cache) Get(ctx Context) (*Resources, error) {
	id := ctx.ID()
	if res, ok := c.bundles[id]; ok {
		if res.generation != c.generation {
			c.rebind(ctx, res)
		}
		return res, nil
	}

	res, err := c.build(ctx)
	if err != nil {
		return nil, fmt.Errorf("building resources for context %d: %w", id, err)
	}
	c.bundles[id] = res
	logger.Info("render resources created",
		zap.Uint32("context", uint32(id)),
		zap.Int("bundles", len(c.bundles)),
	)
	return res, nil
}

// Release destroys the bundle of ctx. It is called from the context's teardown.
func (c *Cache) Release(ctx Context) {
	id := ctx.ID()
	res, ok := c.bundles[id]
	if !ok {
		return
	}
	ctx.ReleaseMesh(res.Actor.Mesh)
	delete(c.bundles, id)
	logger.Info("render resources released", zap.Uint32("context", uint32(id)))
}

// build follows the fixed recipe: actor bound to the current mesh, headlight
// modelling light 0, flashlight switched off, depth peeling with four peels.
func (c *Cache) build(ctx Context) (*Resources, error) {
	if c.source == nil {
		return nil, scene.ErrNoSource
	}
	mesh, err := ctx.UploadMesh(c.source)
	if err != nil {
		return nil, err
	}
	return &Resources{
		Context: ctx.ID(),
		Actor: Actor{
			Mesh:           mesh,
			Opacity:        1,
			Representation: appearance.Surface,
		},
		Headlight:  lighting.Headlight(),
		Flashlight: lighting.Flashlight(),
		Transparency: Transparency{
			DepthPeeling:   true,
			MaxPeels:       4,
			OcclusionRatio: 0.1,
		},
		generation: c.generation,
	}, nil
}

// rebind uploads the new source and drops the old mesh. On failure the old
// mesh stays bound and the upload is retried next frame.
func (c *Cache) rebind(ctx Context, res *Resources) {
	mesh, err := ctx.UploadMesh(c.source)
	if err != nil {
		logger.Warn("rebinding mesh failed, keeping previous",
			zap.Uint32("context", uint32(res.Context)),
			zap.Error(err),
		)
		return
	}
	ctx.ReleaseMesh(res.Actor.Mesh)
	res.Actor.Mesh = mesh
	res.generation = c.generation
}
