// Package device turns desktop input into tracked locator tools.
package device

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/engine/picking"
	"github.com/Faultbox/geoviewer/internal/locator"
	"github.com/Faultbox/geoviewer/internal/logger"
)

// Mouse emulates a 6-DOF input device with the mouse pointer. Every tool it
// creates is a pointing tool; the most recently created one follows the
// pointer and receives the button.
type Mouse struct {
	tools   *locator.Manager
	nextID  locator.ToolID
	created []locator.ToolID
	pose    locator.Pose
	pressed bool
	log     *zap.Logger
}

// NewMouse creates a mouse device feeding tools into the manager.
func NewMouse(tools *locator.Manager) *Mouse {
	return &Mouse{
		tools: tools,
		pose:  locator.NewPose(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}),
		log:   logger.Named("device"),
	}
}

// PoseAt returns the pose a distance depth along the ray, looking along it.
func PoseAt(ray picking.Ray, depth float32) locator.Pose {
	return locator.NewPose(ray.At(depth), ray.Direction)
}

// Tools returns the IDs of live tools, oldest first.
func (m *Mouse) Tools() []locator.ToolID {
	return append([]locator.ToolID(nil), m.created...)
}

// Current returns the tool driven by the pointer.
func (m *Mouse) Current() (locator.ToolID, bool) {
	if len(m.created) == 0 {
		return 0, false
	}
	return m.created[len(m.created)-1], true
}

// CreateTool announces a new pointing tool at the last pose.
func (m *Mouse) CreateTool() locator.ToolID {
	m.release()
	m.nextID++
	id := m.nextID
	m.created = append(m.created, id)
	m.tools.ToolCreated(locator.ToolEvent{ID: id, Kind: locator.KindLocator, Name: "mouse"})
	m.tools.Motion(id, m.pose)
	m.log.Debug("tool created", zap.Uint32("tool", uint32(id)))
	return id
}

// DestroyTool destroys the current tool. It returns false when none is left.
func (m *Mouse) DestroyTool() bool {
	id, ok := m.Current()
	if !ok {
		return false
	}
	m.release()
	m.created = m.created[:len(m.created)-1]
	m.tools.ToolDestroyed(id)
	m.log.Debug("tool destroyed", zap.Uint32("tool", uint32(id)))
	return true
}

// DestroyAll destroys every tool, newest first.
func (m *Mouse) DestroyAll() {
	for m.DestroyTool() {
	}
}

// Move updates the pointer pose.
func (m *Mouse) Move(p locator.Pose) {
	m.pose = p
	if id, ok := m.Current(); ok {
		m.tools.Motion(id, p)
	}
}

// Press presses the tool button at p.
func (m *Mouse) Press(p locator.Pose) {
	m.pose = p
	id, ok := m.Current()
	if !ok || m.pressed {
		return
	}
	m.pressed = true
	m.tools.Press(id, p)
}

// Release releases the tool button at p.
func (m *Mouse) Release(p locator.Pose) {
	m.pose = p
	m.release()
}

// Pressed reports whether the tool button is held.
func (m *Mouse) Pressed() bool { return m.pressed }

func (m *Mouse) release() {
	if !m.pressed {
		return
	}
	m.pressed = false
	if id, ok := m.Current(); ok {
		m.tools.Release(id, m.pose)
	}
}
