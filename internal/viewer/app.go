package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/config"
	"github.com/Faultbox/geoviewer/internal/engine/debug"
	"github.com/Faultbox/geoviewer/internal/engine/input"
	"github.com/Faultbox/geoviewer/internal/engine/renderer"
	"github.com/Faultbox/geoviewer/internal/engine/window"
	"github.com/Faultbox/geoviewer/internal/locator"
	"github.com/Faultbox/geoviewer/internal/render"
)

// windowCascade offsets every additional window so they do not stack exactly.
const windowCascade = 48

// view is one window with its own render context.
type view struct {
	win     *window.Window
	ctx     *renderer.Renderer
	lastErr string
}

// App runs a session in one or more SDL windows.
type App struct {
	config   *config.Config
	running  bool
	session  *Session
	input    *input.Input
	views    []*view
	dragging bool
	shots    *debug.Screenshots
	capture  bool
}

// NewApp loads the scene and opens the configured windows.
func NewApp(cfg *config.Config) (*App, error) {
	session, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if err := window.Init(); err != nil {
		session.Close()
		return nil, err
	}

	a := &App{
		config:  cfg,
		session: session,
		input:   input.New(),
		shots:   debug.NewScreenshots(cfg.Display.Screenshots, "geoviewer"),
	}

	for i := 0; i < cfg.Display.Windows; i++ {
		if err := a.openView(i); err != nil {
			a.Close()
			return nil, err
		}
	}

	session.log.Info("viewer initialized", zap.Int("windows", len(a.views)))
	return a, nil
}

func (a *App) openView(i int) error {
	d := a.config.Display
	title := d.Title
	if d.Windows > 1 {
		title = fmt.Sprintf("%s [%d]", d.Title, i+1)
	}
	wcfg := window.Config{
		Title:      title,
		Width:      d.Width,
		Height:     d.Height,
		Fullscreen: d.Fullscreen,
		VSync:      d.VSync,
	}
	if i > 0 {
		wcfg.X = windowCascade * (i + 1)
		wcfg.Y = windowCascade * (i + 1)
	}

	win, err := window.New(wcfg)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer comes AFTER the window, since its GL context must be current
	ctx, err := renderer.New(renderer.Config{
		ID:         render.ContextID(i + 1),
		Width:      d.Width,
		Height:     d.Height,
		Background: d.Background,
	})
	if err != nil {
		win.Close()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	a.views = append(a.views, &view{win: win, ctx: ctx})
	return nil
}

// Session returns the running session.
func (a *App) Session() *Session { return a.session }

// Run starts the main loop. It returns when the user quits or the last window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.session.log.Info("starting main loop")

	for a.running && len(a.views) > 0 {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			break
		}
		for _, ev := range a.input.Events() {
			a.handle(ev)
		}

		a.session.BeginFrame()
		for _, v := range a.views {
			a.draw(v)
		}
		a.capture = false

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.session.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close tears down every window, then the session.
func (a *App) Close() {
	a.session.log.Info("closing viewer")
	for len(a.views) > 0 {
		a.closeView(a.views[len(a.views)-1])
	}
	a.session.Close()
	window.Quit()
}

func (a *App) draw(v *view) {
	if err := v.win.MakeCurrent(); err != nil {
		a.session.log.Warn("make current failed", zap.Uint32("window", v.win.ID()), zap.Error(err))
		return
	}

	w, h := v.ctx.Size()
	viewMat, proj, eye, forward := a.session.ViewTransform(float32(w) / float32(max(h, 1)))
	v.ctx.Begin()
	v.ctx.SetCamera(viewMat, proj, eye, forward)

	_, err := a.session.Render(v.ctx)
	a.reportRenderError(v, err)

	if a.capture {
		a.screenshot(v)
	}
	v.win.SwapBuffers()
}

// screenshot saves the frame just drawn into v.
func (a *App) screenshot(v *view) {
	pixels, w, h := v.ctx.ReadPixels()
	if len(pixels) == 0 {
		return
	}
	name, err := a.shots.Save(uint32(v.ctx.ID()), pixels, w, h)
	if err != nil {
		a.session.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.session.log.Info("screenshot saved", zap.String("file", name))
}

// reportRenderError logs a pass failure once until it changes or clears.
func (a *App) reportRenderError(v *view, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == v.lastErr {
		return
	}
	v.lastErr = msg
	if err != nil {
		a.session.log.Error("render pass failed", zap.Uint32("context", uint32(v.ctx.ID())), zap.Error(err))
	}
}

func (a *App) closeView(v *view) {
	if err := v.win.MakeCurrent(); err == nil {
		a.session.ContextClosed(v.ctx)
		v.ctx.Close()
	}
	v.win.Close()

	for i, o := range a.views {
		if o == v {
			a.views = append(a.views[:i], a.views[i+1:]...)
			break
		}
	}
}

func (a *App) viewFor(windowID uint32) *view {
	for _, v := range a.views {
		if v.win.ID() == windowID {
			return v
		}
	}
	if len(a.views) > 0 {
		return a.views[0]
	}
	return nil
}

func (a *App) handle(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		if v := a.viewFor(ev.WindowID); v != nil && v.win.MakeCurrent() == nil {
			v.ctx.Resize(ev.Width, ev.Height)
		}

	case input.EventWindowClose:
		if v := a.viewFor(ev.WindowID); v != nil {
			a.closeView(v)
		}

	case input.EventKeyDown:
		if ev.Repeat {
			return
		}
		cmd, ok := Keymap[ev.Key]
		if !ok {
			return
		}
		if cmd == CmdScreenshot {
			a.capture = true
		}
		if !a.session.Execute(cmd) {
			a.running = false
		}

	case input.EventMouseDown:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			a.dragging = true
		case sdl.BUTTON_RIGHT:
			a.session.Mouse().Press(a.pointerPose(ev))
		}

	case input.EventMouseUp:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			a.dragging = false
		case sdl.BUTTON_RIGHT:
			a.session.Mouse().Release(a.pointerPose(ev))
		}

	case input.EventMouseMove:
		if a.dragging {
			a.session.Camera().HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
		}
		a.session.Mouse().Move(a.pointerPose(ev))

	case input.EventMouseWheel:
		a.session.Camera().HandleZoom(ev.Wheel)
	}
}

func (a *App) pointerPose(ev input.Event) (p locator.Pose) {
	v := a.viewFor(ev.WindowID)
	if v == nil {
		return p
	}
	w, h := v.ctx.Size()
	return a.session.PointerPose(ev.MouseX, ev.MouseY, w, h)
}
