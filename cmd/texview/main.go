// texview shows the sprites of a texture set one at a time.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/texset/internal/assets"
	"github.com/Faultbox/texset/internal/config"
	"github.com/Faultbox/texset/internal/engine/capture"
	"github.com/Faultbox/texset/internal/engine/input"
	"github.com/Faultbox/texset/internal/engine/renderer"
	"github.com/Faultbox/texset/internal/engine/texture"
	"github.com/Faultbox/texset/internal/engine/window"
	"github.com/Faultbox/texset/internal/logger"
	"github.com/Faultbox/texset/pkg/math"
	"github.com/Faultbox/texset/pkg/texset"
)

// Sprites are never magnified beyond this factor.
const maxZoom = 8

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: texview [flags] <set.lst | directory> [sprite]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, args); err != nil {
		logger.Error("texview failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// viewer is the state of the preview loop.
type viewer struct {
	win     *window.Window
	render  *renderer.Renderer
	sprites *renderer.SpriteRenderer
	input   *input.Input
	shots   *capture.Capture
	set     *texset.Set
	names   []string
	current int
}

func run(cfg *config.Config, args []string) error {
	win, err := window.New(window.Config{
		Title:      "texview",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	w, h := win.DrawableSize()
	r, err := renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		return err
	}
	defer r.Close()

	sprites, err := renderer.NewSpriteRenderer()
	if err != nil {
		return err
	}
	defer sprites.Close()

	m, err := assets.NewFromConfig(cfg.Assets, assets.WithUploader(renderer.Uploader{}))
	if err != nil {
		return err
	}
	defer m.Close()

	loader := &texset.Loader{
		Files:    m,
		Textures: m,
		Scale:    cfg.Content,
		Log:      logger.Named(logger.CategorySprite),
		MapExt:   cfg.Assets.MapExt,
	}

	set, err := loadSet(loader, args[0])
	if err != nil {
		return err
	}
	defer set.Close()

	if set.Len() == 0 {
		return fmt.Errorf("texture set %s has no sprites", set.Name())
	}

	v := &viewer{
		win:     win,
		render:  r,
		sprites: sprites,
		input:   input.New(),
		shots:   capture.New("screenshots", set.Name()),
		set:     set,
		names:   set.Names(),
	}
	if len(args) > 1 {
		if !v.jump(args[1]) {
			logger.Warn("sprite not found, starting at the first one", zap.String("sprite", args[1]))
		}
	}
	v.updateTitle()

	return v.loop()
}

func loadSet(loader *texset.Loader, source string) (*texset.Set, error) {
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return loader.LoadDirectory(source)
	}
	return loader.LoadManifest(source)
}

func (v *viewer) loop() error {
	for {
		if v.input.Update() {
			return nil
		}

		screenshot := false
		for _, a := range v.input.Actions() {
			switch a {
			case input.ActionNext:
				v.step(1)
			case input.ActionPrev:
				v.step(-1)
			case input.ActionFirst:
				v.current = 0
				v.updateTitle()
			case input.ActionLast:
				v.current = len(v.names) - 1
				v.updateTitle()
			case input.ActionResize:
				v.render.Resize(v.win.DrawableSize())
			case input.ActionScreenshot:
				screenshot = true
			}
		}

		v.draw()
		if screenshot {
			v.screenshot()
		}
		v.win.SwapBuffers()
	}
}

func (v *viewer) screenshot() {
	pixels, w, h := v.render.ReadPixels()
	path, err := v.shots.FromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *viewer) draw() {
	v.render.Begin()
	defer v.render.End()

	ref, ok := v.set.Lookup(v.names[v.current])
	if !ok {
		return
	}
	tex := ref.Texture.(*texture.Texture)
	src := ref.PixelArea()

	w, h := v.render.Size()
	bounds := math.Vec2{X: float32(w), Y: float32(h)}
	dst := math.FitCentered(src.Size(), bounds, maxZoom)

	v.sprites.Draw(tex.ID, tex.Width, tex.Height, src, dst, w, h)
}

// step moves the selection by delta, wrapping around.
func (v *viewer) step(delta int) {
	n := len(v.names)
	v.current = ((v.current+delta)%n + n) % n
	v.updateTitle()
}

func (v *viewer) jump(name string) bool {
	for i, n := range v.names {
		if n == name {
			v.current = i
			return true
		}
	}
	return false
}

func (v *viewer) updateTitle() {
	name := v.names[v.current]
	ref, _ := v.set.Lookup(name)
	v.win.SetTitle(fmt.Sprintf("texview - %s/%s (%d/%d) %gx%g",
		v.set.Name(), name, v.current+1, len(v.names), ref.Area.W, ref.Area.H))
}
