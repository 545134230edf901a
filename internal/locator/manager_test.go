package locator

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/clip"
)

func newTestManager(capacity int) (*Manager, *clip.Registry, *appearance.State) {
	r := clip.New(capacity)
	st := appearance.Default()
	return NewManager(ModeClippingPlane, r, &st.Flashlight), r, st
}

func TestManagerIgnoresNonPointingTools(t *testing.T) {
	m, r, _ := newTestManager(6)

	l, ok := m.ToolCreated(ToolEvent{ID: 1, Kind: KindButton, Name: "menu"})
	assert.False(t, ok)
	assert.Nil(t, l)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, r.Allocated())

	assert.False(t, m.ToolDestroyed(1), "unknown tool destroy is a no-op")
	assert.False(t, m.ToolDestroyed(42))
}

func TestManagerDuplicateTool(t *testing.T) {
	m, r, _ := newTestManager(6)

	_, ok := m.ToolCreated(ToolEvent{ID: 7, Kind: KindLocator})
	require.True(t, ok)
	_, ok = m.ToolCreated(ToolEvent{ID: 7, Kind: KindLocator})
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1, r.Allocated())
}

func TestManagerModeIsCapturedAtCreation(t *testing.T) {
	m, r, st := newTestManager(6)

	clipLoc, _ := m.ToolCreated(ToolEvent{ID: 1, Kind: KindLocator})
	m.SetMode(ModeFlashlight)
	lightLoc, _ := m.ToolCreated(ToolEvent{ID: 2, Kind: KindLocator})

	assert.IsType(t, &ClippingPlaneLocator{}, clipLoc)
	assert.IsType(t, &FlashlightLocator{}, lightLoc)
	assert.Equal(t, ModeFlashlight, m.Mode())

	// Tool 1 still drives a clipping plane after the mode switch.
	m.Press(1, Pose{Orientation: mgl32.QuatIdent()})
	assert.Equal(t, 1, r.ActiveCount())
	assert.False(t, st.Flashlight.On)

	m.Press(2, Pose{Orientation: mgl32.QuatIdent()})
	assert.True(t, st.Flashlight.On)

	require.True(t, m.ToolDestroyed(2))
	assert.False(t, st.Flashlight.On)
	assert.False(t, st.Flashlight.Owned())
}

func TestManagerRoutesEvents(t *testing.T) {
	m, r, _ := newTestManager(6)
	m.ToolCreated(ToolEvent{ID: 10, Kind: KindLocator})
	m.ToolCreated(ToolEvent{ID: 11, Kind: KindLocator})

	m.Press(11, NewPose(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}))
	m.Motion(11, NewPose(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 1, 0}))
	m.Release(11, Pose{})
	m.Press(99, Pose{})

	s0, _ := r.Slot(0)
	s1, _ := r.Slot(1)
	assert.False(t, s0.Active)
	assert.True(t, s1.Active)
	assert.InDelta(t, 2, s1.Plane.Offset, 1e-5)
}

func TestManagerDestroyRemovesOnlyTarget(t *testing.T) {
	m, r, _ := newTestManager(6)
	for id := ToolID(1); id <= 3; id++ {
		m.ToolCreated(ToolEvent{ID: id, Kind: KindLocator})
		m.Press(id, Pose{Orientation: mgl32.QuatIdent()})
	}

	require.True(t, m.ToolDestroyed(2))
	assert.False(t, m.ToolDestroyed(2), "second destroy is a no-op")

	assert.Equal(t, 2, m.Len())
	_, ok := m.Locator(2)
	assert.False(t, ok)

	s1, _ := r.Slot(1)
	assert.Equal(t, clip.Slot{}, s1)
	assert.Equal(t, []int{0, 2}, r.Active(-1))

	ids := []ToolID{}
	for _, l := range m.Locators() {
		ids = append(ids, l.Tool())
	}
	assert.Equal(t, []ToolID{1, 3}, ids)

	m.Close()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, r.Allocated())
}
