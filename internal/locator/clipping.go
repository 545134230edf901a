package locator

import (
	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/clip"
	"github.com/Faultbox/geoviewer/internal/logger"
)

// ClippingPlaneLocator drives one registry slot from a device pose.
// While the button is held the plane passes through the device position with
// the device's pointing axis as normal; on release the plane stays where it was.
type ClippingPlaneLocator struct {
	tool     ToolID
	registry *clip.Registry
	slot     int
	pressed  bool
}

// NewClippingPlaneLocator claims a free slot. When the registry is full the
// locator is created inert and never touches the registry.
func NewClippingPlaneLocator(tool ToolID, registry *clip.Registry) *ClippingPlaneLocator {
	l := &ClippingPlaneLocator{tool: tool, registry: registry, slot: -1}
	if slot, ok := registry.Allocate(); ok {
		l.slot = slot
		logger.Debug("clipping plane slot allocated",
			zap.Uint32("tool", uint32(tool)),
			zap.Int("slot", slot),
		)
	} else {
		logger.Info("no free clipping plane slot, locator is inert",
			zap.Uint32("tool", uint32(tool)),
			zap.Int("capacity", registry.Capacity()),
		)
	}
	return l
}

// Tool returns the bound tool.
func (l *ClippingPlaneLocator) Tool() ToolID { return l.tool }

// Slot returns the owned slot index, or -1 when inert or detached.
func (l *ClippingPlaneLocator) Slot() int { return l.slot }

// Inert reports whether the locator owns no slot.
func (l *ClippingPlaneLocator) Inert() bool { return l.slot < 0 }

// Pressed reports whether the button is currently held.
func (l *ClippingPlaneLocator) Pressed() bool { return l.pressed }

// ButtonPress activates the slot and places the plane at the device pose.
func (l *ClippingPlaneLocator) ButtonPress(p Pose) {
	if l.Inert() {
		return
	}
	l.pressed = true
	l.place(p)
	if err := l.registry.SetActive(l.slot, true); err != nil {
		logger.Warn("activating clipping plane", zap.Int("slot", l.slot), zap.Error(err))
	}
}

// ButtonRelease leaves the plane at its last pose.
func (l *ClippingPlaneLocator) ButtonRelease(Pose) {
	l.pressed = false
}

// Motion follows the device while the button is held.
func (l *ClippingPlaneLocator) Motion(p Pose) {
	if l.Inert() || !l.pressed {
		return
	}
	l.place(p)
}

// Detach frees the owned slot exactly once.
func (l *ClippingPlaneLocator) Detach() {
	if l.Inert() {
		return
	}
	if err := l.registry.Free(l.slot); err != nil {
		logger.Warn("freeing clipping plane", zap.Int("slot", l.slot), zap.Error(err))
	}
	logger.Debug("clipping plane slot freed",
		zap.Uint32("tool", uint32(l.tool)),
		zap.Int("slot", l.slot),
	)
	l.slot = -1
	l.pressed = false
}

func (l *ClippingPlaneLocator) place(p Pose) {
	plane := clip.PlaneThrough(p.Position, p.Forward())
	if err := l.registry.SetPlane(l.slot, plane); err != nil {
		logger.Warn("placing clipping plane", zap.Int("slot", l.slot), zap.Error(err))
	}
}
