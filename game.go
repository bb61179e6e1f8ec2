package main

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/config"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/entity"
	"github.com/milk9111/glaze2d/ecs/render"
	"github.com/milk9111/glaze2d/prefabs"
	"github.com/milk9111/glaze2d/sandbox"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// spawnPrefab is built at the cursor on a left click.
const spawnPrefab = "rock"

type Game struct {
	cfg      *config.Config
	logger   *zap.Logger
	sim      *sandbox.Simulation
	renderer *render.DebugRenderSystem
	watcher  *prefabs.Watcher

	last   time.Time
	paused bool
}

func NewGame(cfg *config.Config, logger *zap.Logger) (*Game, error) {
	var renderer *render.DebugRenderSystem
	sim, err := sandbox.New(cfg, logger, func(eng *ecs.Engine) {
		renderer = render.NewDebugRenderSystem(eng)
		renderer.Install()
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		logger:   logger,
		sim:      sim,
		renderer: renderer,
	}
	g.fitCamera()

	if cfg.Sandbox.HotReload && cfg.Sandbox.PrefabDir != "" {
		w, err := prefabs.WatchDir(cfg.Sandbox.PrefabDir)
		if err != nil {
			logger.Warn("prefab hot reload disabled", zap.String("dir", cfg.Sandbox.PrefabDir), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	frame := now.Sub(g.last)
	g.last = now

	g.drainChanges()
	g.handleInput()

	switch {
	case g.paused && inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		g.sim.Step()
	case !g.paused:
		g.sim.Advance(frame)
	}
	return nil
}

func (g *Game) drainChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if _, err := g.sim.Apply(change); err != nil {
				g.logger.Warn("hot reload failed", zap.String("path", change.Path), zap.Error(err))
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.renderer.ShowStats = !g.renderer.ShowStats
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		pos := g.screenToWorld(float64(x), float64(y))
		if _, err := entity.BuildEntityAt(g.sim.Engine, spawnPrefab, pos, cp.Vector{}); err != nil {
			g.logger.Warn("spawn failed", zap.String("prefab", spawnPrefab), zap.Error(err))
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.renderer.Draw(screen)
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "paused (P resume, . step)", 4, 20)
	}
	if g.sim.Level != nil {
		msg := fmt.Sprintf("level: %s  t=%.0fms", g.sim.Level.Name, g.sim.Timestamp())
		ebitenutil.DebugPrintAt(screen, msg, 4, g.cfg.Sandbox.Height-16)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Sandbox.Width, g.cfg.Sandbox.Height
}

// fitCamera scales the level bounds onto the logical screen.
func (g *Game) fitCamera() {
	if g.sim.Level == nil {
		return
	}
	bb := g.sim.Level.Bounds
	w, h := bb.R-bb.L, bb.T-bb.B
	if w <= 0 || h <= 0 {
		return
	}
	zoom := math.Min(float64(g.cfg.Sandbox.Width)/w, float64(g.cfg.Sandbox.Height)/h)
	g.renderer.Zoom = zoom
	g.renderer.Camera = cp.Vector{X: bb.L, Y: bb.B}
}

func (g *Game) screenToWorld(x, y float64) cp.Vector {
	zoom := g.renderer.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return cp.Vector{X: x/zoom + g.renderer.Camera.X, Y: y/zoom + g.renderer.Camera.Y}
}
