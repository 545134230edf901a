package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/clip"
	"github.com/Faultbox/geoviewer/internal/scene"
)

type call struct {
	op    string
	unit  int
	eq    [4]float64
	phase Phase
}

type fakeContext struct {
	id       ContextID
	maxClip  int
	calls    []call
	enabled  map[int]bool
	uploads  int
	released []MeshHandle
	next     MeshHandle
	drawn    []*Resources

	uploadErr error
	drawErr   error

	// phase reports the renderer's phase at each call when set.
	phase func() Phase
	// onDraw runs inside Draw, before the bundle is recorded.
	onDraw func()
}

func newFakeContext(id ContextID, maxClip int) *fakeContext {
	return &fakeContext{id: id, maxClip: maxClip, enabled: make(map[int]bool)}
}

func (f *fakeContext) ID() ContextID      { return f.id }
func (f *fakeContext) MaxClipPlanes() int { return f.maxClip }

func (f *fakeContext) record(c call) {
	if f.phase != nil {
		c.phase = f.phase()
	}
	f.calls = append(f.calls, c)
}

func (f *fakeContext) EnableClipPlane(unit int, eq [4]float64) {
	f.record(call{op: "enable", unit: unit, eq: eq})
	f.enabled[unit] = true
}

func (f *fakeContext) DisableClipPlane(unit int) {
	f.record(call{op: "disable", unit: unit})
	delete(f.enabled, unit)
}

func (f *fakeContext) UploadMesh(*scene.Mesh) (MeshHandle, error) {
	if f.uploadErr != nil {
		return 0, f.uploadErr
	}
	f.uploads++
	f.next++
	return f.next, nil
}

func (f *fakeContext) ReleaseMesh(h MeshHandle) { f.released = append(f.released, h) }

func (f *fakeContext) Draw(res *Resources) error {
	f.record(call{op: "draw"})
	if f.onDraw != nil {
		f.onDraw()
	}
	if f.drawErr != nil {
		return f.drawErr
	}
	snapshot := *res
	f.drawn = append(f.drawn, &snapshot)
	return nil
}

func (f *fakeContext) ops() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.op
	}
	return out
}

func activate(t *testing.T, r *clip.Registry, slots ...int) {
	t.Helper()
	for i, n := 0, r.Capacity(); i < n; i++ {
		_, ok := r.Allocate()
		require.True(t, ok)
	}
	for _, s := range slots {
		require.NoError(t, r.SetPlane(s, clip.PlaneThrough(mgl32.Vec3{float32(s), 0, 0}, mgl32.Vec3{1, 0, 0})))
		require.NoError(t, r.SetActive(s, true))
	}
}

func TestCacheBuildsOncePerContext(t *testing.T) {
	cache := NewCache(scene.Cube())
	a := newFakeContext(1, 8)
	b := newFakeContext(2, 8)

	ra, err := cache.Get(a)
	require.NoError(t, err)
	again, err := cache.Get(a)
	require.NoError(t, err)
	assert.Same(t, ra, again)
	assert.Equal(t, 1, a.uploads)

	rb, err := cache.Get(b)
	require.NoError(t, err)
	assert.NotSame(t, ra, rb)
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, ContextID(2), rb.Context)
}

func TestCacheRecipe(t *testing.T) {
	cache := NewCache(scene.Cube())
	res, err := cache.Get(newFakeContext(7, 8))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Headlight.Index)
	assert.Equal(t, float32(1), res.Headlight.Intensity)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, res.Headlight.Diffuse)
	assert.False(t, res.Flashlight.On)
	assert.True(t, res.Transparency.DepthPeeling)
	assert.Equal(t, 4, res.Transparency.MaxPeels)
	assert.Equal(t, float32(0.1), res.Transparency.OcclusionRatio)
}

func TestCacheRelease(t *testing.T) {
	cache := NewCache(scene.Cube())
	ctx := newFakeContext(1, 8)
	res, err := cache.Get(ctx)
	require.NoError(t, err)

	cache.Release(ctx)
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, []MeshHandle{res.Actor.Mesh}, ctx.released)

	cache.Release(ctx)
	assert.Len(t, ctx.released, 1, "second release is a no-op")
}

func TestCacheSetSourceRebinds(t *testing.T) {
	cache := NewCache(scene.Cube())
	ctx := newFakeContext(1, 8)
	res, err := cache.Get(ctx)
	require.NoError(t, err)
	old := res.Actor.Mesh

	cache.SetSource(scene.Cube())
	res, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, old, res.Actor.Mesh)
	assert.Equal(t, []MeshHandle{old}, ctx.released)

	_, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ctx.uploads, "no further rebinding without a new source")
}

func TestCacheRebindFailureKeepsMesh(t *testing.T) {
	cache := NewCache(scene.Cube())
	ctx := newFakeContext(1, 8)
	res, err := cache.Get(ctx)
	require.NoError(t, err)
	old := res.Actor.Mesh

	cache.SetSource(scene.Cube())
	ctx.uploadErr = errors.New("out of memory")
	res, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, old, res.Actor.Mesh)
	assert.Empty(t, ctx.released)
}

func TestCacheWithoutSource(t *testing.T) {
	cache := NewCache(nil)
	_, err := cache.Get(newFakeContext(1, 8))
	assert.ErrorIs(t, err, scene.ErrNoSource)
	assert.Equal(t, 0, cache.Len())
}

func TestRenderOrder(t *testing.T) {
	reg := clip.New(6)
	activate(t, reg, 1, 4)
	r := NewRenderer(reg, appearance.Default(), NewCache(scene.Cube()))
	ctx := newFakeContext(1, 8)
	ctx.phase = r.Phase

	stats, err := r.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"enable", "enable", "draw", "disable", "disable"}, ctx.ops())
	var phases []Phase
	for _, c := range ctx.calls {
		phases = append(phases, c.phase)
	}
	assert.Equal(t, []Phase{
		PhasePlanesEnabled, PhasePlanesEnabled,
		PhaseRendered,
		PhasePlanesDisabled, PhasePlanesDisabled,
	}, phases)
	assert.Equal(t, []int{1, 4}, stats.Slots)
	assert.Equal(t, 0, stats.Skipped)
	assert.Empty(t, ctx.enabled)
	assert.Equal(t, PhaseIdle, r.Phase())

	s, err := reg.Slot(4)
	require.NoError(t, err)
	assert.Equal(t, s.Plane.Equation(), ctx.calls[1].eq, "slot 4 is loaded into unit 1")
}

func TestRenderTruncatesToHardwareLimit(t *testing.T) {
	reg := clip.New(6)
	activate(t, reg, 0, 2, 3, 5)
	r := NewRenderer(reg, appearance.Default(), NewCache(scene.Cube()))
	ctx := newFakeContext(1, 4)

	stats, err := r.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Limit)
	assert.Equal(t, []int{0, 2, 3, 5}, stats.Slots)
	assert.Equal(t, 0, stats.Skipped)

	require.NoError(t, reg.SetActive(1, true))
	ctx.calls = nil
	stats, err = r.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, stats.Slots)
	assert.Equal(t, 1, stats.Skipped)

	var units []int
	for _, c := range ctx.calls {
		if c.op == "enable" {
			units = append(units, c.unit)
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3}, units)
	assert.Empty(t, ctx.enabled)
}

func TestRenderQueriesLimitEachPass(t *testing.T) {
	reg := clip.New(6)
	activate(t, reg, 0, 1, 2)
	r := NewRenderer(reg, appearance.Default(), NewCache(scene.Cube()))
	ctx := newFakeContext(1, 8)

	stats, err := r.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, stats.Slots)

	ctx.maxClip = 2
	stats, err = r.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Limit)
	assert.Equal(t, []int{0, 1}, stats.Slots)
	assert.Equal(t, 1, stats.Skipped)
}

func TestRenderNoHardwareUnits(t *testing.T) {
	reg := clip.New(6)
	activate(t, reg, 0, 1)
	r := NewRenderer(reg, appearance.Default(), NewCache(scene.Cube()))
	ctx := newFakeContext(1, 0)

	stats, err := r.Render(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats.Slots)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, []string{"draw"}, ctx.ops())
}

func TestRenderDisablesAfterFailure(t *testing.T) {
	reg := clip.New(6)
	activate(t, reg, 0, 1, 2)

	t.Run("draw", func(t *testing.T) {
		r := NewRenderer(reg, appearance.Default(), NewCache(scene.Cube()))
		ctx := newFakeContext(1, 8)
		ctx.drawErr = errors.New("lost context")
		ctx.phase = r.Phase

		_, err := r.Render(ctx)
		require.Error(t, err)
		assert.Empty(t, ctx.enabled)
		last := ctx.calls[len(ctx.calls)-1]
		assert.Equal(t, "disable", last.op)
		assert.Equal(t, PhasePlanesDisabled, last.phase)
		assert.Equal(t, PhaseIdle, r.Phase())
	})

	t.Run("build", func(t *testing.T) {
		r := NewRenderer(reg, appearance.Default(), NewCache(scene.Cube()))
		ctx := newFakeContext(1, 8)
		ctx.uploadErr = errors.New("no buffers")

		_, err := r.Render(ctx)
		require.Error(t, err)
		assert.Empty(t, ctx.enabled)
		assert.NotContains(t, ctx.ops(), "draw")
	})
}

func TestRenderAppliesAppearance(t *testing.T) {
	st := appearance.Default()
	st.SetOpacity(0.4)
	st.SetRepresentation(appearance.SurfaceWithEdges)
	st.SetIntensity(0.25)
	st.Flashlight.On = true
	st.Flashlight.Position = mgl32.Vec3{1, 2, 3}

	r := NewRenderer(clip.New(6), st, NewCache(scene.Cube()))
	a := newFakeContext(1, 8)
	b := newFakeContext(2, 8)
	for _, ctx := range []*fakeContext{a, b} {
		_, err := r.Render(ctx)
		require.NoError(t, err)
	}

	for _, ctx := range []*fakeContext{a, b} {
		require.Len(t, ctx.drawn, 1)
		res := ctx.drawn[0]
		assert.Equal(t, float32(0.4), res.Actor.Opacity)
		assert.Equal(t, appearance.SurfaceWithEdges, res.Actor.Representation)
		assert.True(t, res.Actor.EdgeVisibility)
		assert.Equal(t, float32(0.25), res.Headlight.Intensity)
		assert.True(t, res.Flashlight.On)
		assert.Equal(t, mgl32.Vec3{1, 2, 3}, res.Flashlight.Position)
	}
}

func TestRenderReadsStateOncePerPass(t *testing.T) {
	st := appearance.Default()
	r := NewRenderer(clip.New(6), st, NewCache(scene.Cube()))
	ctx := newFakeContext(1, 8)

	// A tool callback changing the state mid-pass shows up in the next pass.
	ctx.onDraw = func() {
		st.SetOpacity(0.2)
		st.SetRepresentation(appearance.Points)
	}
	_, err := r.Render(ctx)
	require.NoError(t, err)
	ctx.onDraw = nil
	_, err = r.Render(ctx)
	require.NoError(t, err)

	require.Len(t, ctx.drawn, 2)
	assert.Equal(t, float32(1), ctx.drawn[0].Actor.Opacity)
	assert.Equal(t, appearance.Surface, ctx.drawn[0].Actor.Representation)
	assert.Equal(t, float32(0.2), ctx.drawn[1].Actor.Opacity)
	assert.Equal(t, appearance.Points, ctx.drawn[1].Actor.Representation)
}

func TestForgetReleasesBundle(t *testing.T) {
	r := NewRenderer(clip.New(6), appearance.Default(), NewCache(scene.Cube()))
	ctx := newFakeContext(3, 8)
	_, err := r.Render(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, r.Cache().Len())

	r.Forget(ctx)
	assert.Equal(t, 0, r.Cache().Len())
}
