package viewer

import "github.com/veandco/go-sdl2/sdl"

// Keymap binds keys to commands.
var Keymap = map[sdl.Scancode]Command{
	sdl.SCANCODE_T:        CmdCreateTool,
	sdl.SCANCODE_X:        CmdDestroyTool,
	sdl.SCANCODE_F:        CmdToggleTool,
	sdl.SCANCODE_1:        CmdPoints,
	sdl.SCANCODE_2:        CmdWireframe,
	sdl.SCANCODE_3:        CmdSurface,
	sdl.SCANCODE_4:        CmdSurfaceWithEdges,
	sdl.SCANCODE_EQUALS:   CmdOpacityUp,
	sdl.SCANCODE_KP_PLUS:  CmdOpacityUp,
	sdl.SCANCODE_MINUS:    CmdOpacityDown,
	sdl.SCANCODE_KP_MINUS: CmdOpacityDown,
	sdl.SCANCODE_C:        CmdCenter,
	sdl.SCANCODE_R:        CmdReload,
	sdl.SCANCODE_F12:      CmdScreenshot,
	sdl.SCANCODE_ESCAPE:   CmdQuit,
}
