package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagScale      = flag.Float64("scale", 0, "Content scale for standalone images")
	flagHiResScale = flag.Float64("hires-scale", 0, "Content scale for atlas maps")
	flagRoot       = flag.String("root", "", "Additional asset search directory")
	flagEncoding   = flag.String("encoding", "", "Charset of list and map files")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Viewer window width")
	flagHeight     = flag.Int("height", 0, "Viewer window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScale > 0 {
		cfg.Content.CurrentScale = float32(*flagScale)
	}
	if *flagHiResScale > 0 {
		cfg.Content.HiResScale = float32(*flagHiResScale)
	}
	if *flagRoot != "" {
		cfg.Assets.Roots = append(cfg.Assets.Roots, *flagRoot)
	}
	if *flagEncoding != "" {
		cfg.Assets.Encoding = *flagEncoding
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
