// Package gui is the windowed galaxy viewer built on raylib.
//
// The window owns the GL context; galaxies are uploaded through a
// gpu.Renderer installed as the scene host's uploader, so regeneration and
// drawing both run on the window thread.
package gui

import (
	"fmt"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/galaxy/internal/camera"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/gpu"
	"github.com/san-kum/galaxy/internal/label"
	"github.com/san-kum/galaxy/internal/scene"
	"github.com/san-kum/galaxy/internal/tweak"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColAccent  = rl.NewColor(255, 96, 48, 255) // inside color
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColError   = rl.NewColor(255, 80, 80, 255)
	ColPanel   = rl.NewColor(16, 16, 20, 200)
)

const (
	rotateSpeed = 1.0
	wheelZoom   = 0.95
	orbitKey    = 0.03
)

type App struct {
	cfg      *config.Config
	log      *slog.Logger
	host     *scene.Host
	graph    *scene.Scene
	renderer *gpu.Renderer
	panel    *tweak.Panel
	orbit    *camera.Orbit
	viewport *camera.Viewport

	labelCh  <-chan label.Result
	title    *scene.Renderable
	titleErr error

	showPanel bool
	editing   bool
	editBuf   string
	inputErr  error
}

// initWindow opens a resizable window sized from cfg, sets the target FPS
// and disables the default exit key.
func initWindow(cfg config.WindowConfig) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "galaxy")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// Run opens the window, builds the first galaxy from cfg and blocks until the
// window is closed.
func Run(cfg *config.Config, log *slog.Logger) error {
	params, err := cfg.Galaxy.Parameters()
	if err != nil {
		return err
	}

	initWindow(cfg.Window)
	defer rl.CloseWindow()

	renderer, err := gpu.NewRenderer(log)
	if err != nil {
		return err
	}
	defer renderer.Close()

	graph := scene.New()
	host := scene.NewHost(graph,
		scene.WithUploader(renderer),
		scene.WithRandom(galaxy.SourceFactory(cfg.Seed)),
		scene.WithBudget(cfg.Render.BudgetBytes()),
		scene.WithLogger(log),
	)
	defer host.Close()

	app := &App{
		cfg:       cfg,
		log:       log.With("component", "gui"),
		host:      host,
		graph:     graph,
		renderer:  renderer,
		panel:     tweak.NewPanel(params, host.Regenerate),
		orbit:     cfg.Camera.Orbit(),
		viewport:  camera.NewViewport(cfg.Window.Width, cfg.Window.Height, cfg.Window.MaxPixelRatio),
		showPanel: true,
	}
	defer app.releaseTitle()

	if err := app.panel.Regenerate(); err != nil {
		app.log.Error("initial generation failed", "error", err)
	}
	if cfg.Label.Enabled {
		app.labelCh = label.LoadAsync(cfg.Label.Options())
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// Update processes one frame of input. It reports whether the user quit.
func (a *App) Update() bool {
	a.pollTitle()
	a.resize()

	if a.editing {
		a.editInput()
	} else if quit := a.keyInput(); quit {
		a.panel.Commit()
		return true
	}
	a.mouseInput()
	a.orbit.Update()
	return false
}

func (a *App) resize() {
	dpr := rl.GetWindowScaleDPI().X
	if a.viewport.Resize(rl.GetScreenWidth(), rl.GetScreenHeight(), float64(dpr)) {
		a.orbit.SetAspect(a.viewport.Aspect())
		w, h := a.viewport.FramebufferSize()
		a.log.Debug("viewport resized", "width", a.viewport.Width, "height", a.viewport.Height, "framebuffer", fmt.Sprintf("%dx%d", w, h))
	}
}

func keyRepeat(k int32) bool { return rl.IsKeyPressed(k) || rl.IsKeyPressedRepeat(k) }

func (a *App) keyInput() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}

	if keyRepeat(rl.KeyDown) || keyRepeat(rl.KeyJ) {
		a.panel.Move(1)
	}
	if keyRepeat(rl.KeyUp) || keyRepeat(rl.KeyK) {
		a.panel.Move(-1)
	}

	steps := 1
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		steps = 10
	}
	if keyRepeat(rl.KeyRight) || keyRepeat(rl.KeyL) {
		a.panel.Nudge(steps)
	}
	if keyRepeat(rl.KeyLeft) || keyRepeat(rl.KeyH) {
		a.panel.Nudge(-steps)
	}
	// releasing the adjust key finishes the change
	for _, k := range []int32{rl.KeyRight, rl.KeyL, rl.KeyLeft, rl.KeyH} {
		if rl.IsKeyReleased(k) {
			a.panel.Commit()
		}
	}

	if rl.IsKeyPressed(rl.KeyEnter) {
		if a.panel.Dirty() {
			a.panel.Commit()
		} else {
			a.editing, a.editBuf, a.inputErr = true, "", nil
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.panel.Regenerate()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.showPanel = !a.showPanel
	}

	if rl.IsKeyDown(rl.KeyA) {
		a.orbit.Rotate(-orbitKey, 0)
	}
	if rl.IsKeyDown(rl.KeyD) {
		a.orbit.Rotate(orbitKey, 0)
	}
	if rl.IsKeyDown(rl.KeyW) {
		a.orbit.Rotate(0, -orbitKey)
	}
	if rl.IsKeyDown(rl.KeyS) {
		a.orbit.Rotate(0, orbitKey)
	}
	return false
}

func (a *App) editInput() {
	for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
		a.editBuf += string(rune(c))
	}
	switch {
	case rl.IsKeyPressed(rl.KeyEnter):
		a.editing = false
		if err := a.panel.Set(a.editBuf); err != nil {
			a.inputErr = err
			return
		}
		a.panel.Commit()
	case rl.IsKeyPressed(rl.KeyEscape):
		a.editing, a.editBuf = false, ""
	case keyRepeat(rl.KeyBackspace):
		if r := []rune(a.editBuf); len(r) > 0 {
			a.editBuf = string(r[:len(r)-1])
		}
	}
}

func (a *App) mouseInput() {
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		h := float64(a.viewport.Height)
		a.orbit.Rotate(-2*math.Pi*float64(d.X)/h*rotateSpeed, -2*math.Pi*float64(d.Y)/h*rotateSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.orbit.Zoom(math.Pow(wheelZoom, -float64(wheel)))
	}
}

// pollTitle installs the title label once its background build finishes.
func (a *App) pollTitle() {
	if a.labelCh == nil {
		return
	}
	select {
	case res, ok := <-a.labelCh:
		a.labelCh = nil
		if !ok {
			return
		}
		if res.Err != nil {
			a.titleErr = res.Err
			a.log.Warn("title label unavailable", "error", res.Err)
			return
		}
		r := scene.NewRenderable(res.Geometry.Buffer, scene.SolidMaterial(res.Geometry.PointSize))
		gpuRes, err := a.renderer.Upload(r.Buffer, r.Material)
		if err != nil {
			a.titleErr = err
			a.log.Warn("title label upload failed", "error", err)
			return
		}
		r.Resource = gpuRes
		a.graph.Attach(r)
		a.title = r
		a.log.Debug("title label attached", "points", res.Geometry.Count)
	default:
	}
}

func (a *App) releaseTitle() {
	if a.title == nil {
		return
	}
	a.title.Release()
	a.graph.Detach(a.title)
	a.title = nil
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	rl.DrawRenderBatchActive()

	fbw, fbh := a.viewport.FramebufferSize()
	fbw, fbh = min(fbw, rl.GetRenderWidth()), min(fbh, rl.GetRenderHeight())
	frame := gpu.NewFrame(a.orbit.View(), a.orbit.Projection(), fbh)

	a.renderer.Begin(0, 0, fbw, fbh, frame)
	a.host.View(func(*scene.Renderable) {
		// opaque objects first, then additive ones over them
		for _, additive := range []bool{false, true} {
			a.graph.Each(func(r *scene.Renderable) {
				if r.Released() || (r.Material.Blending == scene.BlendAdditive) != additive {
					return
				}
				if pts, ok := r.Resource.(*gpu.Points); ok {
					a.renderer.Draw(pts)
				}
			})
		}
	})
	a.renderer.End()

	a.DrawHUD()
	rl.EndDrawing()
}
