package simulation

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids/pkg/ui"
	"github.com/tochemey/goakt/v3/log"
	"golang.org/x/image/font/basicfont"
)

const helpText = "B/right-click: boid  H/click: obstacle  R: radius  Space: pause  Q: quit"

var (
	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	regionColor     = color.RGBA{R: 90, G: 90, B: 120, A: 255}
	obstacleColor   = color.RGBA{R: 230, G: 70, B: 60, A: 255}
	radiusColor     = color.RGBA{R: 50, G: 100, B: 255, A: 50}
	boidColor       = color.RGBA{R: 100, G: 200, B: 255, A: 255}
)

type Game struct {
	ctx       context.Context
	engine    *Engine
	logger    log.Logger
	cfg       *Config
	region    flock.Confinement
	lastState flock.Snapshot
	paused    bool
	quit      bool

	// UI Controls
	panel            *ui.UIPanel
	widgetMaxSpeed   *ui.Slider
	widgetShowRadius *ui.Checkbox

	whiteImage *ebiten.Image

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame wires an ebiten front-end to a running engine.
func NewGame(ctx context.Context, engine *Engine, logger log.Logger) (*Game, error) {
	cfg := engine.Config()
	region, err := cfg.Region()
	if err != nil {
		return nil, err
	}

	g := &Game{
		ctx:    ctx,
		engine: engine,
		logger: logger,
		cfg:    cfg,
		region: region,
	}

	panel := ui.NewUIPanel(10, 10, 200, 250)
	panel.Title = "Boids"
	panel.AddSection("Flock")
	g.widgetMaxSpeed = panel.AddSlider("Max Speed", cfg.MinSliderSpeed, cfg.MaxSliderSpeed, cfg.MaxSpeed)
	g.widgetShowRadius = panel.AddCheckbox("Show Neighbor Radius", cfg.DisplayNeighborRadius)
	panel.EndSection()

	panel.AddSection("Actions")
	panel.AddButton("Add Boid (B)", func() { g.spawnAgents(1) })
	panel.AddButton("Add Obstacle (H)", func() { g.spawnObstacles(1) })
	panel.AddButton("Pause (Space)", func() { g.paused = !g.paused })
	panel.EndSection()
	g.panel = panel

	return g, nil
}

func (g *Game) spawnAgents(n uint32) {
	if err := g.engine.SpawnAgents(g.ctx, n); err != nil {
		g.logger.Errorf("spawn agents: %v", err)
	}
}

func (g *Game) spawnObstacles(n uint32) {
	if err := g.engine.SpawnObstacles(g.ctx, n); err != nil {
		g.logger.Errorf("spawn obstacles: %v", err)
	}
}

func (g *Game) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.quit = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.spawnAgents(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.spawnObstacles(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.widgetShowRadius.Toggle()
	}

	mx, my := ebiten.CursorPosition()
	p := geometry.NewVector(float64(mx), float64(my))
	if g.panel.Contains(p.X, p.Y) {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if err := g.engine.AddObstacle(g.ctx, p); err != nil {
			g.logger.Debugf("click ignored: %v", err)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && g.region.Contains(p) {
		if err := g.engine.AddAgent(g.ctx, p); err != nil {
			g.logger.Errorf("add agent: %v", err)
		}
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// 1. Update UI Panel
	g.panel.Update()
	if g.widgetMaxSpeed.Changed() {
		if err := g.engine.SetMaxSpeed(g.ctx, g.widgetMaxSpeed.Value); err != nil {
			g.logger.Errorf("set max speed: %v", err)
		}
	}

	// 2. Keyboard and mouse
	g.handleInput()
	if g.quit {
		return ebiten.Termination
	}

	// 3. Retrieve Latest State (Non-blocking)
	select {
	case snap := <-g.engine.Snapshots():
		g.lastState = snap
	default:
		// Use previous state if new one isn't ready
	}

	// 4. Trigger Simulation Step
	if !g.paused {
		if err := g.engine.Step(g.ctx, 1); err != nil {
			return fmt.Errorf("step: %w", err)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)
	g.drawRegion(screen)

	showRadius := g.widgetShowRadius.Value
	obstacleRange := g.cfg.ObstacleRadius
	if obstacleRange == 0 {
		obstacleRange = g.cfg.NeighborRadius
	}
	for _, o := range g.lastState.Obstacles {
		if showRadius {
			vector.StrokeCircle(screen, float32(o.X), float32(o.Y), float32(obstacleRange), 1, radiusColor, true)
		}
		vector.FillCircle(screen, float32(o.X), float32(o.Y), 6, obstacleColor, true)
	}

	for _, a := range g.lastState.Agents {
		if showRadius {
			vector.StrokeCircle(screen, float32(a.Position.X), float32(a.Position.Y), float32(g.cfg.NeighborRadius), 1, radiusColor, true)
		}
		g.drawBoid(screen, a)
	}

	g.panel.Draw(screen)
	g.drawOverlay(screen)
}

func (g *Game) drawRegion(screen *ebiten.Image) {
	switch r := g.region.(type) {
	case flock.Circle:
		vector.StrokeCircle(screen, float32(r.Center.X), float32(r.Center.Y), float32(r.Radius), 2, regionColor, true)
	case flock.Wrap:
		vector.StrokeRect(screen, 0, 0, float32(r.Width), float32(r.Height), 2, regionColor, true)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	h := screen.Bounds().Dy()
	status := fmt.Sprintf("Boids: %d  Obstacles: %d  Tick: %d  Max speed: %.2f",
		len(g.lastState.Agents), len(g.lastState.Obstacles), g.lastState.Tick, g.lastState.MaxSpeed)
	if g.paused {
		status += "  [PAUSED]"
	}
	text.Draw(screen, status, basicfont.Face7x13, 10, h-26, color.White)
	text.Draw(screen, helpText, basicfont.Face7x13, 10, h-10, color.White)

	// Performance stats on the right side to avoid overlap with panel
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, screen.Bounds().Dx()-130, 10)
}

// drawBoid renders an agent as a triangle pointing along its heading.
func (g *Game) drawBoid(screen *ebiten.Image, a flock.AgentState) {
	if g.whiteImage == nil {
		g.whiteImage = ebiten.NewImage(3, 3)
		g.whiteImage.Fill(boidColor)
	}
	angle := a.Heading
	tip := a.Position.Add(geometry.NewVectorPolar(6, angle))
	right := a.Position.Add(geometry.NewVectorPolar(5, angle+2.5))
	left := a.Position.Add(geometry.NewVectorPolar(5, angle-2.5))

	vertices := make([]ebiten.Vertex, 0, 3)
	for _, v := range []geometry.Vector2D{tip, right, left} {
		vertices = append(vertices, ebiten.Vertex{
			DstX: float32(v.X), DstY: float32(v.Y),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, g.whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(math.Ceil(g.cfg.WorldWidth)), int(math.Ceil(g.cfg.WorldHeight))
}
