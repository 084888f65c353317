// Sprites10k is a stress test: 10,000 bouncing sprites from four atlas
// regions, flushed as a handful of draw calls per frame.
//
// Sprites are assigned Order by colour so each colour forms one group even
// though they were submitted interleaved. Arrow keys pan and Q/E zoom the
// camera; sprites outside the view are culled before submission. Pass -config
// to load a YAML config and -debug to log per-flush statistics.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/sheaf"
)

const (
	windowTitle = "Sheaf — 10k Sprites"
	screenW     = 1280
	screenH     = 720
	spriteCount = 10000
	spriteSize  = 8
)

var palette = [4]color.NRGBA{
	{R: 255, G: 90, B: 90, A: 255},
	{R: 90, G: 255, B: 120, A: 255},
	{R: 90, G: 140, B: 255, A: 255},
	{R: 255, G: 220, B: 90, A: 255},
}

type sprite struct {
	pos, vel  sheaf.Vec2
	kind      int
	rot, spin float64
}

type game struct {
	r       *sheaf.Renderer
	target  *sheaf.EbitenTarget
	font    *sheaf.Font
	regions [4]sheaf.RegionID
	sprites []sprite
	cam     *sheaf.Camera
	culled  int
	lastRes sheaf.FlushResult
}

func square(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, spriteSize, spriteSize))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func loadConfig(path string) (sheaf.Config, error) {
	if path == "" {
		return sheaf.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return sheaf.Config{}, err
	}
	return sheaf.ParseConfig(data)
}

func newGame(cfg sheaf.Config) (*game, error) {
	cfg.Batch.InitialCapacity = max(cfg.Batch.InitialCapacity, spriteCount+256)
	r, err := sheaf.NewRenderer(cfg)
	if err != nil {
		return nil, err
	}
	g := &game{
		r:      r,
		target: sheaf.NewEbitenTarget(nil),
		cam:    sheaf.NewCamera(sheaf.Rect{Width: screenW, Height: screenH}),
	}
	g.cam.X, g.cam.Y = screenW/2, screenH/2
	g.cam.SetBounds(sheaf.Rect{Width: screenW, Height: screenH})
	for i, c := range palette {
		g.regions[i], err = r.Pack(fmt.Sprintf("square%d", i), square(c))
		if err != nil {
			return nil, err
		}
	}
	g.font, err = sheaf.NewDefaultFont(r.Pages().Pages()[0])
	if err != nil {
		return nil, err
	}
	r.Pages().Finalize()

	rng := rand.New(rand.NewSource(42))
	g.sprites = make([]sprite, spriteCount)
	for i := range g.sprites {
		g.sprites[i] = sprite{
			pos:  sheaf.Vec2{X: rng.Float64() * screenW, Y: rng.Float64() * screenH},
			vel:  sheaf.Vec2{X: (rng.Float64() - 0.5) * 4, Y: (rng.Float64() - 0.5) * 4},
			kind: rng.Intn(len(palette)),
			spin: (rng.Float64() - 0.5) * 0.2,
		}
	}
	return g, nil
}

func (g *game) Update() error {
	const pan = 8.0
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.cam.X -= pan / g.cam.Zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.cam.X += pan / g.cam.Zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.cam.Y -= pan / g.cam.Zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.cam.Y += pan / g.cam.Zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.cam.Zoom = max(1, g.cam.Zoom*0.98)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.cam.Zoom = min(8, g.cam.Zoom*1.02)
	}
	g.cam.Update(float32(1.0 / float64(ebiten.TPS())))

	for i := range g.sprites {
		s := &g.sprites[i]
		s.pos.X += s.vel.X
		s.pos.Y += s.vel.Y
		if s.pos.X < 0 || s.pos.X > screenW {
			s.vel.X = -s.vel.X
		}
		if s.pos.Y < 0 || s.pos.Y > screenH {
			s.vel.Y = -s.vel.Y
		}
		s.rot += s.spin
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.target.SetImage(screen)
	g.target.ResetStats()

	g.r.SetTransform(g.cam.ViewTransform())
	res, err := g.r.Frame(g.target, func(ctx *sheaf.Context) error {
		ctx.Clear(sheaf.Color{A: 1})
		half := sheaf.Vec2{X: spriteSize / 2, Y: spriteSize / 2}
		g.culled = 0
		for i := range g.sprites {
			s := &g.sprites[i]
			opts := sheaf.DrawOptions{
				Position: s.pos,
				Origin:   half,
				Rotation: s.rot,
				Order:    s.kind,
			}
			if !g.cam.RegionVisible(g.regions[s.kind], &opts) {
				g.culled++
				continue
			}
			if err := ctx.DrawRegion(g.regions[s.kind], opts); err != nil {
				return err
			}
		}
		// The overlay is placed in world space so it stays in the top-left
		// corner of the view.
		x, y := g.cam.ScreenToWorld(8, 8)
		stats := sheaf.NewText(fmt.Sprintf("FPS %.0f  sprites %d  culled %d  groups %d  draw calls %d",
			ebiten.ActualFPS(), g.lastRes.Requests, g.culled, g.lastRes.Groups, g.target.DrawCalls()), g.font)
		stats.Scale = 1 / g.cam.Zoom
		return ctx.DrawText(stats, sheaf.DrawTextOptions{Position: sheaf.Vec2{X: x, Y: y}, Order: len(palette)})
	})
	if err != nil {
		log.Printf("frame: %v", err)
	}
	g.lastRes = res
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	debug := flag.Bool("debug", false, "log per-flush statistics")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Batch.Debug = true
		sheaf.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	g, err := newGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer g.r.Close()

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetVsyncEnabled(false)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
