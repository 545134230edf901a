package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/clip"
	"github.com/Faultbox/geoviewer/internal/logger"
)

// Phase is the step a render pass is performing. Clip units are enabled in
// PhasePlanesEnabled, the actor is drawn in PhaseRendered and the units are
// disabled in PhasePlanesDisabled.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlanesEnabled
	PhaseRendered
	PhasePlanesDisabled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlanesEnabled:
		return "planes-enabled"
	case PhaseRendered:
		return "rendered"
	case PhasePlanesDisabled:
		return "planes-disabled"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// PassStats describes one completed pass.
type PassStats struct {
	Context ContextID
	// Limit is min(registry capacity, hardware clip units).
	Limit int
	// Slots lists the registry slots whose planes were enabled, in unit order.
	Slots []int
	// Skipped counts active slots left out because of Limit.
	Skipped int
}

// Renderer runs the per-context pass. It reads the registry and appearance
// state and writes only into the context's own resource bundle.
type Renderer struct {
	registry *clip.Registry
	state    *appearance.State
	cache    *Cache
	phase    Phase
	skipped  map[ContextID]int
	log      *zap.Logger
}

// NewRenderer creates a renderer over the session's shared state.
func NewRenderer(registry *clip.Registry, state *appearance.State, cache *Cache) *Renderer {
	return &Renderer{
		registry: registry,
		state:    state,
		cache:    cache,
		skipped:  make(map[ContextID]int),
		log:      logger.Named("render"),
	}
}

// Phase returns the current pass phase; it is PhaseIdle between passes.
func (r *Renderer) Phase() Phase { return r.phase }

// Cache returns the resource cache.
func (r *Renderer) Cache() *Cache { return r.cache }

// Render draws one frame into ctx. Clip units enabled for the pass are
// disabled again before returning, also when building or drawing fails.
// The appearance state is read once, so the whole pass sees one version of it.
func (r *Renderer) Render(ctx Context) (PassStats, error) {
	stats := PassStats{Context: ctx.ID()}
	st := r.state.Snapshot()

	stats.Limit = min(r.registry.Capacity(), max(ctx.MaxClipPlanes(), 0))
	active := r.registry.Active(-1)
	stats.Slots = active[:min(len(active), stats.Limit)]
	stats.Skipped = len(active) - len(stats.Slots)
	r.noteSkipped(stats)

	r.phase = PhasePlanesEnabled
	for unit, idx := range stats.Slots {
		s, err := r.registry.Slot(idx)
		if err != nil {
			continue
		}
		ctx.EnableClipPlane(unit, s.Plane.Equation())
	}

	r.phase = PhaseRendered
	err := r.draw(ctx, &st)

	r.phase = PhasePlanesDisabled
	for unit := range stats.Slots {
		ctx.DisableClipPlane(unit)
	}

	r.phase = PhaseIdle
	return stats, err
}

// Forget drops per-context bookkeeping after the context is torn down.
func (r *Renderer) Forget(ctx Context) {
	delete(r.skipped, ctx.ID())
	r.cache.Release(ctx)
}

func (r *Renderer) draw(ctx Context, st *appearance.State) error {
	res, err := r.cache.Get(ctx)
	if err != nil {
		return err
	}
	Apply(res, st)
	if err := ctx.Draw(res); err != nil {
		return fmt.Errorf("drawing context %d: %w", ctx.ID(), err)
	}
	return nil
}

// noteSkipped logs when the number of truncated planes changes for a context.
func (r *Renderer) noteSkipped(stats PassStats) {
	if prev := r.skipped[stats.Context]; prev == stats.Skipped {
		return
	}
	r.skipped[stats.Context] = stats.Skipped
	if stats.Skipped > 0 {
		r.log.Debug("active clipping planes exceed hardware limit",
			zap.Uint32("context", uint32(stats.Context)),
			zap.Int("limit", stats.Limit),
			zap.Int("skipped", stats.Skipped),
		)
	}
}

// Apply copies the shared appearance into a context's bundle.
func Apply(res *Resources, st *appearance.State) {
	res.Actor.Opacity = st.Opacity
	res.Actor.Representation = st.Representation
	res.Actor.EdgeVisibility = st.Representation.ShowEdges()

	res.Headlight.Intensity = st.Intensity
	res.Headlight.Ambient = st.Ambient
	res.Headlight.Diffuse = st.Diffuse
	res.Headlight.Specular = st.Specular

	res.Flashlight.On = st.Flashlight.On
	res.Flashlight.Position = st.Flashlight.Position
	res.Flashlight.Direction = st.Flashlight.Direction
}
