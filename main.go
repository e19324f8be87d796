// ascii-dream renders an endless, animated ASCII-art dream in the
// terminal. A background producer requests AI-generated images from a
// remote inference backend (or a built-in procedural one), converts them
// to colorized character art, and a bubbletea display loop plays them
// back as a continuous slideshow.
//
// Usage:
//
//	ascii-dream [flags]
//
// Flags:
//
//	-prompt string       Starting prompt (default: journey-based evolution)
//	-journey string      Evolution theme: abstract|nature|cosmic|liquid
//	-evolve              Keep evolving from the starting prompt
//	-fast                Halve generation resolution for faster frames
//	-aspect-ratio string Aspect ratio: 1:1|16:9|9:16|4:3|3:4
//	-frames int          Number of images to cycle through (default 1)
//	-speed float         Seconds between frames (default 3.0)
//	-width int           Art width in columns (default: auto-detect)
//	-motion string       Cycle movement: floating|pulsing|rotating|morphing
//	-seed int            Base seed for correlated motion (0 = random)
//	-backend string      Generator backend: remote|procedural
//	-config string       Path to configuration file
//	-verbose             Enable debug logging
//	-version             Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/will-marella/ascii-dream/pkg/config"
	"github.com/will-marella/ascii-dream/pkg/dream"
	"github.com/will-marella/ascii-dream/pkg/generate"
	"github.com/will-marella/ascii-dream/pkg/motion"
	"github.com/will-marella/ascii-dream/pkg/prompt"
	"github.com/will-marella/ascii-dream/pkg/render"
	"github.com/will-marella/ascii-dream/pkg/terminal"
	"github.com/will-marella/ascii-dream/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// prefillBudget bounds how long session start waits for the queue to
// fill. Generous because a cold backend can take tens of seconds per
// frame before its model is warm.
const prefillBudget = 5 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		startPrompt = flag.String("prompt", "", "Starting prompt (default: journey-based evolution)")
		journey     = flag.String("journey", "", "Evolution theme: abstract|nature|cosmic|liquid")
		evolve      = flag.Bool("evolve", false, "Keep evolving from the starting prompt")
		fast        = flag.Bool("fast", false, "Halve generation resolution for faster frames")
		aspectRatio = flag.String("aspect-ratio", "", "Aspect ratio: 1:1|16:9|9:16|4:3|3:4")
		frames      = flag.Int("frames", 0, "Number of images to cycle through")
		speed       = flag.Float64("speed", 0, "Seconds between frames")
		width       = flag.Int("width", 0, "Art width in columns (0 = auto-detect)")
		motionName  = flag.String("motion", "", "Cycle movement: floating|pulsing|rotating|morphing")
		seed        = flag.Int64("seed", 0, "Base seed for correlated motion (0 = random)")
		backend     = flag.String("backend", "", "Generator backend: remote|procedural")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("ascii-dream %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	// CLI flags override file and environment values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "prompt":
			cfg.Dream.StartPrompt = *startPrompt
		case "journey":
			cfg.Dream.Journey = *journey
		case "evolve":
			cfg.Dream.Evolve = *evolve
		case "fast":
			cfg.Backend.Fast = *fast
		case "aspect-ratio":
			cfg.Backend.AspectRatio = *aspectRatio
		case "frames":
			cfg.Dream.FramesPerCycle = *frames
		case "speed":
			cfg.Dream.RefreshRate = config.Duration{Duration: time.Duration(*speed * float64(time.Second))}
		case "width":
			cfg.Render.Width = *width
		case "motion":
			cfg.Dream.Motion = *motionName
		case "seed":
			cfg.Dream.Seed = *seed
		case "backend":
			cfg.Backend.Kind = *backend
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	logger, closeLog, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup logging: %v\n", err)
		return 1
	}
	defer closeLog()
	slog.SetDefault(logger)

	caps := terminal.Detect()
	if !caps.IsTTY {
		fmt.Fprintln(os.Stderr, "ascii-dream needs an interactive terminal")
		return 1
	}

	genW, genH, err := config.Dimensions(cfg.Backend.AspectRatio, cfg.Backend.Fast)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	seq, err := prompt.ForJourney(cfg.Dream.Journey, cfg.Dream.StartPrompt, cfg.Dream.Evolve)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	gen, err := buildGenerator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	artWidth := cfg.Render.Width
	if artWidth <= 0 {
		artWidth = render.AutoWidth(caps.Size.Cols)
	}
	conv := render.NewConverter(artWidth, cfg.Render.Charset, caps.Profile)

	queue := dream.NewQueue(gen, seq, conv, dream.Options{
		Depth:          cfg.Dream.QueueDepth,
		Width:          genW,
		Height:         genH,
		FramesPerCycle: cfg.Dream.FramesPerCycle,
		Motion:         motion.NewPlan(cfg.Dream.Seed, motion.ByName(cfg.Dream.Motion)),
		Log:            logger,
	})

	fmt.Print(tui.Startup(cfg.Dream.Journey, motion.Describe(cfg.Dream.Motion),
		cfg.Dream.FramesPerCycle, genW, genH))

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	queue.Start()

	prefillCtx, cancel := context.WithTimeout(ctx, prefillBudget)
	err = queue.Prefill(prefillCtx)
	cancel()
	if err != nil {
		queue.Stop()
		if ctx.Err() != nil {
			// Interrupted during warmup; not a failure.
			fmt.Println(tui.Goodbye())
			return 0
		}
		fmt.Fprintf(os.Stderr, "backend unreachable: %v\n", err)
		return 1
	}

	p := tea.NewProgram(
		tui.New(queue, conv, cfg.Dream.RefreshRate.Duration),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, runErr := p.Run()

	// Stop the producer before the process exits so an in-flight
	// generation finishes cleanly and nothing writes after teardown.
	queue.Stop()

	if runErr != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "display loop: %v\n", runErr)
		return 1
	}

	fmt.Println(tui.Goodbye())
	return 0
}

// loadConfig reads the config file (explicit path or XDG search).
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogging routes slog output to the configured log file. Without a
// file, logs are discarded: the TUI owns the terminal and stray writes
// would corrupt it.
func setupLogging(cfg *config.Config, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else {
		switch cfg.General.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// buildGenerator constructs the configured backend.
func buildGenerator(cfg *config.Config) (generate.Generator, error) {
	switch cfg.Backend.Kind {
	case "procedural":
		return generate.Procedural{}, nil
	case "remote":
		return generate.NewClient(cfg.Backend.URL, cfg.Backend.AuthToken, cfg.Backend.Timeout.Duration), nil
	default:
		return nil, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}
}
