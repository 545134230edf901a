package locator

import (
	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/logger"
)

// FlashlightLocator moves the shared flashlight with its device.
// The light shines while the button is held.
type FlashlightLocator struct {
	tool  ToolID
	light *appearance.Flashlight
	owns  bool
}

// NewFlashlightLocator takes ownership of light. If another locator already
// holds it the new one is inert.
func NewFlashlightLocator(tool ToolID, light *appearance.Flashlight) *FlashlightLocator {
	l := &FlashlightLocator{tool: tool, light: light}
	l.owns = light.Acquire(l)
	if !l.owns {
		logger.Info("flashlight already in use, locator is inert", zap.Uint32("tool", uint32(tool)))
	}
	return l
}

// Tool returns the bound tool.
func (l *FlashlightLocator) Tool() ToolID { return l.tool }

// Inert reports whether the locator does not hold the flashlight.
func (l *FlashlightLocator) Inert() bool { return !l.owns }

// ButtonPress switches the flashlight on at the device pose.
func (l *FlashlightLocator) ButtonPress(p Pose) {
	if !l.owns {
		return
	}
	l.aim(p)
	l.light.On = true
}

// ButtonRelease switches the flashlight off.
func (l *FlashlightLocator) ButtonRelease(p Pose) {
	if !l.owns {
		return
	}
	l.aim(p)
	l.light.On = false
}

// Motion writes the device pose into the flashlight.
func (l *FlashlightLocator) Motion(p Pose) {
	if !l.owns {
		return
	}
	l.aim(p)
}

// Detach forces the light off and gives up ownership.
func (l *FlashlightLocator) Detach() {
	if !l.owns {
		return
	}
	l.light.Release(l)
	l.owns = false
}

func (l *FlashlightLocator) aim(p Pose) {
	l.light.Position = p.Position
	l.light.Direction = p.Forward()
}
