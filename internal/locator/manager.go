package locator

import (
	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/clip"
	"github.com/Faultbox/geoviewer/internal/logger"
)

// Manager creates a locator for every pointing tool and destroys it with the tool.
type Manager struct {
	mode       Mode
	registry   *clip.Registry
	flashlight *appearance.Flashlight
	locators   []Locator
}

// NewManager creates a manager that builds locators of the given mode.
func NewManager(mode Mode, registry *clip.Registry, flashlight *appearance.Flashlight) *Manager {
	return &Manager{
		mode:       mode,
		registry:   registry,
		flashlight: flashlight,
	}
}

// Mode returns the analysis tool used for new locators.
func (m *Manager) Mode() Mode { return m.mode }

// SetMode changes the analysis tool for locators created from now on.
// Existing locators keep the variant they were built with.
func (m *Manager) SetMode(mode Mode) {
	if mode != m.mode {
		logger.Info("analysis tool changed", zap.Stringer("mode", mode))
	}
	m.mode = mode
}

// Len returns the number of live locators.
func (m *Manager) Len() int { return len(m.locators) }

// Locators returns the live locators in creation order.
func (m *Manager) Locators() []Locator {
	out := make([]Locator, len(m.locators))
	copy(out, m.locators)
	return out
}

// Locator returns the locator bound to id.
func (m *Manager) Locator(id ToolID) (Locator, bool) {
	i := m.index(id)
	if i < 0 {
		return nil, false
	}
	return m.locators[i], true
}

// ToolCreated builds a locator for a pointing tool. Non-pointing tools and
// tools that already have a locator are ignored.
func (m *Manager) ToolCreated(ev ToolEvent) (Locator, bool) {
	if !ev.Kind.Pointing() {
		return nil, false
	}
	if m.index(ev.ID) >= 0 {
		logger.Warn("tool already has a locator", zap.Uint32("tool", uint32(ev.ID)))
		return nil, false
	}

	var l Locator
	switch m.mode {
	case ModeFlashlight:
		l = NewFlashlightLocator(ev.ID, m.flashlight)
	default:
		l = NewClippingPlaneLocator(ev.ID, m.registry)
	}
	m.locators = append(m.locators, l)

	logger.Info("locator created",
		zap.Uint32("tool", uint32(ev.ID)),
		zap.String("name", ev.Name),
		zap.Stringer("mode", m.mode),
		zap.Bool("inert", l.Inert()),
	)
	return l, true
}

// ToolDestroyed detaches and removes the locator bound to id.
// It returns false when the tool never had a locator.
func (m *Manager) ToolDestroyed(id ToolID) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	l := m.locators[i]
	l.Detach()
	m.locators = append(m.locators[:i], m.locators[i+1:]...)
	logger.Info("locator destroyed", zap.Uint32("tool", uint32(id)))
	return true
}

// Press forwards a button press to the locator bound to id.
func (m *Manager) Press(id ToolID, p Pose) {
	if l, ok := m.Locator(id); ok {
		l.ButtonPress(p)
	}
}

// Release forwards a button release to the locator bound to id.
func (m *Manager) Release(id ToolID, p Pose) {
	if l, ok := m.Locator(id); ok {
		l.ButtonRelease(p)
	}
}

// Motion forwards a pose update to the locator bound to id.
func (m *Manager) Motion(id ToolID, p Pose) {
	if l, ok := m.Locator(id); ok {
		l.Motion(p)
	}
}

// Close detaches every locator, newest first.
func (m *Manager) Close() {
	for i := len(m.locators) - 1; i >= 0; i-- {
		m.locators[i].Detach()
	}
	m.locators = nil
}

func (m *Manager) index(id ToolID) int {
	for i, l := range m.locators {
		if l.Tool() == id {
			return i
		}
	}
	return -1
}
