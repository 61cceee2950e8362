package gui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/dom"
	"github.com/san-kum/glyphfall/internal/nav"
	"github.com/san-kum/glyphfall/internal/rain"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColNav     = rl.NewColor(8, 40, 8, 235)
	ColText    = rl.NewColor(200, 255, 200, 255)
	ColTextDim = rl.NewColor(60, 110, 60, 255)
)

const (
	navHeight    = 48
	scrollFactor = 40
)

type App struct {
	Driver *rain.Driver
	Canvas *Canvas
	Nav    *nav.Toggler
	Scroll float64
	Paused bool
	log    *slog.Logger
}

func initWindow(w, h int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), "glyphfall")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, src rain.Source, w, h int, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	params := cfg.Params()
	canvas := NewCanvas(w, h, params.Alphabet)
	grid, err := rain.NewGrid(w, h, params, src)
	if err != nil {
		return nil, err
	}
	// raylib's frame loop calls Tick directly, so the scheduler stays idle.
	driver, err := rain.NewDriver(grid, canvas, rain.NewManualScheduler(), cfg.Style())
	if err != nil {
		return nil, err
	}
	return &App{
		Driver: driver,
		Canvas: canvas,
		Nav:    nav.New(dom.NewElement("navigation", nav.TransparentClasses...), cfg.Nav.Threshold),
		log:    log,
	}, nil
}

// Run opens a w x h window and animates until it is closed.
func Run(cfg *config.Config, src rain.Source, w, h int, log *slog.Logger) error {
	initWindow(w, h)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, src, w, h, log)
	if err != nil {
		return err
	}
	defer app.Canvas.Unload()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
		a.Driver.Resize(w, h)
		a.log.Debug("window resized", "width", w, "height", h, "columns", a.Driver.Grid().Len())
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Driver.Resize(a.Canvas.Width(), a.Canvas.Height())
	}

	wheel := float64(rl.GetMouseWheelMove())
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyJ) {
		wheel--
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyK) {
		wheel++
	}
	if wheel != 0 {
		a.Scroll = max(a.Scroll-wheel*scrollFactor, 0)
		a.Nav.OnScroll(a.Scroll)
	}

	if !a.Paused {
		a.Canvas.Begin()
		a.Driver.Tick(rl.GetTime() * 1000)
		a.Canvas.End()
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.Canvas.Draw()
	a.drawNav()
	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawNav() {
	if a.Nav.Solid() {
		rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), navHeight, ColNav)
	}
	rl.DrawText("glyphfall", 24, 14, 20, ColText)
	rl.DrawText(fmt.Sprintf("scroll %d", int(a.Scroll)), int32(rl.GetScreenWidth()-140), 18, 14, ColTextDim)
}

func (a *App) drawHUD() {
	h := int32(rl.GetScreenHeight())
	status := "RUNNING"
	if a.Paused {
		status = "PAUSED"
	}
	line := fmt.Sprintf("%s  %d FPS  %d columns  %d frames", status, rl.GetFPS(), a.Driver.Grid().Len(), a.Driver.Frames())
	rl.DrawText(line, 24, h-28, 14, ColTextDim)
	rl.DrawText("[SPACE] PAUSE  [R] REBUILD  [WHEEL] SCROLL  [Q] QUIT", int32(rl.GetScreenWidth()-460), h-28, 14, ColTextDim)
}
