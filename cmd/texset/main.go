// texset is a CLI utility for inspecting texture sets: atlas images with map
// files, or loose images listed in a texture set list file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/texset/internal/assets"
	"github.com/Faultbox/texset/internal/config"
	"github.com/Faultbox/texset/internal/engine/texture"
	"github.com/Faultbox/texset/internal/logger"
	"github.com/Faultbox/texset/pkg/texset"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
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

	command := args[0]
	rest := args[1:]

	switch command {
	case "info":
		cmdInfo(cfg, rest)
	case "list", "ls":
		cmdList(cfg, rest)
	case "lookup", "get":
		cmdLookup(cfg, rest)
	case "extract", "x":
		cmdExtract(cfg, rest)
	case "dir":
		cmdDir(cfg, rest)
	case "config":
		cmdConfig(cfg, rest)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`texset - texture set utility

Usage:
  texset [flags] <command> [options]

Commands:
  info <set.lst>                  Show texture set information
  list <set.lst> [pattern]        List sprites (optional glob pattern)
  lookup <set.lst> <name>         Show one sprite
  extract <set.lst> <output>      Write every sprite as an image
  dir <directory>                 Show information for a directory of atlases
  config [file]                   Write the effective configuration

Flags:
  -config <file>       Config file (default ./texset.yaml)
  -scale <n>           Content scale for standalone images
  -hires-scale <n>     Content scale for atlas maps
  -root <dir>          Additional asset search directory
  -encoding <name>     Charset of list and map files (e.g. euc-kr)
  -debug               Enable debug logging

Examples:
  texset info data/ui/hud.lst
  texset list data/ui/hud.lst "btn_*"
  texset -hires-scale 2 lookup data/ui/hud.lst btn_ok
  texset extract -tga data/ui/hud.lst ./output`)
}

// app holds the collaborators every command needs.
type app struct {
	manager *assets.Manager
	loader  *texset.Loader
}

func newApp(cfg *config.Config) *app {
	m, err := assets.NewFromConfig(cfg.Assets)
	if err != nil {
		fail(err)
	}
	return &app{
		manager: m,
		loader: &texset.Loader{
			Files:    m,
			Textures: m,
			Scale:    cfg.Content,
			Log:      logger.Named(logger.CategorySprite),
			MapExt:   cfg.Assets.MapExt,
		},
	}
}

func (a *app) close() {
	a.manager.Close()
}

func (a *app) manifest(path string) *texset.Set {
	set, err := a.loader.LoadManifest(path)
	if err != nil {
		fail(err)
	}
	return set
}

func fail(err error) {
	logger.Error("command failed", zap.Error(err))
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: texset info <set.lst>")
		os.Exit(1)
	}

	a := newApp(cfg)
	defer a.close()

	set := a.manifest(args[0])
	defer set.Close()

	printSetInfo(a, set, args[0])
}

func cmdDir(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: texset dir <directory>")
		os.Exit(1)
	}

	a := newApp(cfg)
	defer a.close()

	set, err := a.loader.LoadDirectory(args[0])
	if err != nil {
		fail(err)
	}
	defer set.Close()

	printSetInfo(a, set, args[0])
}

func printSetInfo(a *app, set *texset.Set, source string) {
	textures := set.Textures()

	fmt.Printf("Set:      %s\n", set.Name())
	fmt.Printf("Source:   %s\n", source)
	fmt.Printf("Sprites:  %d\n", set.Len())
	fmt.Printf("Textures: %d\n", len(textures))
	fmt.Printf("Scale:    hi-res %g, current %g\n",
		a.loader.Scale.HiResContentScale(), a.loader.Scale.CurrentContentScale())
	fmt.Println()

	for _, t := range textures {
		tex := t.(*texture.Texture)
		fmt.Printf("  %-40s %5d x %-5d\n", tex.Path, tex.Width, tex.Height)
	}
}

func cmdConfig(cfg *config.Config, args []string) {
	var (
		path string
		err  error
	)
	if len(args) > 0 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		path, err = cfg.Save()
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("Config written to %s\n", path)
}

func cmdList(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N sprites (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: texset list [-n N] <set.lst> [pattern]")
		os.Exit(1)
	}

	pattern := ""
	if fs.NArg() > 1 {
		pattern = fs.Arg(1)
	}

	a := newApp(cfg)
	defer a.close()

	set := a.manifest(fs.Arg(0))
	defer set.Close()

	count := 0
	for _, name := range set.Names() {
		if pattern != "" {
			if ok, err := path.Match(pattern, name); err != nil {
				fail(fmt.Errorf("bad pattern %q: %w", pattern, err))
			} else if !ok {
				continue
			}
		}

		ref, _ := set.Lookup(name)
		fmt.Printf("%-32s %s\n", name, formatArea(ref))

		count++
		if *limit > 0 && count >= *limit {
			fmt.Printf("... (limited to %d)\n", *limit)
			break
		}
	}

	fmt.Printf("\nTotal: %d sprites\n", count)
}

func cmdLookup(cfg *config.Config, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: texset lookup <set.lst> <name>")
		os.Exit(1)
	}

	a := newApp(cfg)
	defer a.close()

	set := a.manifest(args[0])
	defer set.Close()

	ref, ok := set.Lookup(args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "Sprite %q not found in %s\n", args[1], set.Name())
		os.Exit(1)
	}

	tex := ref.Texture.(*texture.Texture)
	px := ref.PixelArea()

	fmt.Printf("Sprite:   %s\n", ref.Name)
	fmt.Printf("Set:      %s\n", ref.SetName)
	fmt.Printf("Texture:  %s (%dx%d)\n", tex.Path, tex.Width, tex.Height)
	fmt.Printf("Area:     %s\n", formatArea(ref))
	fmt.Printf("Pixels:   %g %g %g %g\n", px.X, px.Y, px.W, px.H)
	u0, v0, u1, v1 := px.UV(float32(tex.Width), float32(tex.Height))
	fmt.Printf("UV:       %.4f %.4f %.4f %.4f\n", u0, v0, u1, v1)
}

func cmdExtract(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	tga := fs.Bool("tga", false, "Write TGA instead of PNG")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: texset extract [-tga] <set.lst> <output>")
		os.Exit(1)
	}
	outDir := fs.Arg(1)

	a := newApp(cfg)
	defer a.close()

	set := a.manifest(fs.Arg(0))
	defer set.Close()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fail(err)
	}

	ext := ".png"
	if *tga {
		ext = ".tga"
	}

	written := 0
	for _, name := range set.Names() {
		ref, _ := set.Lookup(name)
		tex := ref.Texture.(*texture.Texture)
		img := tex.SubImage(pixelRect(ref))
		if img.Bounds().Empty() {
			logger.Warn("sprite outside its texture", zap.String("sprite", name), zap.String("texture", tex.Path))
			continue
		}

		out := filepath.Join(outDir, safeFileName(name)+ext)
		if err := writeImage(out, img, *tga); err != nil {
			fail(err)
		}
		written++
	}

	fmt.Printf("Extracted %d of %d sprites to %s\n", written, set.Len(), outDir)
}

func writeImage(path string, img image.Image, tga bool) error {
	if tga {
		return os.WriteFile(path, texture.EncodeTGA(img), 0644)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// pixelRect rounds a sprite's pixel area to whole pixels.
func pixelRect(ref texset.Reference) image.Rectangle {
	px := ref.PixelArea()
	x0, y0 := round(px.X), round(px.Y)
	return image.Rect(x0, y0, x0+round(px.W), y0+round(px.H))
}

func round(v float32) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func formatArea(ref texset.Reference) string {
	r := ref.Area
	return fmt.Sprintf("%g %g %g %g", r.X, r.Y, r.W, r.H)
}

// safeFileName replaces path separators in sprite names.
func safeFileName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(name)
}
