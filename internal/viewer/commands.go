package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/locator"
)

// Command is a user action bound to a key.
type Command int

const (
	CmdNone Command = iota
	CmdCreateTool
	CmdDestroyTool
	CmdToggleTool
	CmdPoints
	CmdWireframe
	CmdSurface
	CmdSurfaceWithEdges
	CmdOpacityUp
	CmdOpacityDown
	CmdCenter
	CmdReload
	CmdScreenshot
	CmdQuit
)

var commandNames = map[Command]string{
	CmdNone:             "none",
	CmdCreateTool:       "create-tool",
	CmdDestroyTool:      "destroy-tool",
	CmdToggleTool:       "toggle-tool",
	CmdPoints:           "points",
	CmdWireframe:        "wireframe",
	CmdSurface:          "surface",
	CmdSurfaceWithEdges: "surface-with-edges",
	CmdOpacityUp:        "opacity-up",
	CmdOpacityDown:      "opacity-down",
	CmdCenter:           "center",
	CmdReload:           "reload",
	CmdScreenshot:       "screenshot",
	CmdQuit:             "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Execute runs cmd against the session. It returns false for CmdQuit.
func (s *Session) Execute(cmd Command) bool {
	switch cmd {
	case CmdCreateTool:
		s.mouse.CreateTool()
	case CmdDestroyTool:
		s.mouse.DestroyTool()
	case CmdToggleTool:
		if s.tools.Mode() == locator.ModeClippingPlane {
			s.tools.SetMode(locator.ModeFlashlight)
		} else {
			s.tools.SetMode(locator.ModeClippingPlane)
		}
	case CmdPoints:
		s.state.SetRepresentation(appearance.Points)
	case CmdWireframe:
		s.state.SetRepresentation(appearance.Wireframe)
	case CmdSurface:
		s.state.SetRepresentation(appearance.Surface)
	case CmdSurfaceWithEdges:
		s.state.SetRepresentation(appearance.SurfaceWithEdges)
	case CmdOpacityUp:
		s.state.SetOpacity(s.state.Opacity + opacityStep)
	case CmdOpacityDown:
		s.state.SetOpacity(s.state.Opacity - opacityStep)
	case CmdCenter:
		s.Center()
	case CmdReload:
		s.Reload()
	case CmdScreenshot:
		// Captured by the window owning the context.
	case CmdQuit:
		return false
	case CmdNone:
		return true
	}
	s.log.Debug("command", zap.Stringer("cmd", cmd))
	return true
}
