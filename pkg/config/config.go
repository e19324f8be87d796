package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for ascii-dream. Values come from the
// TOML config file, then ASCII_DREAM_* environment overrides, then CLI
// flags, in that order of increasing precedence.
type Config struct {
	General GeneralConfig `toml:"general"`
	Dream   DreamConfig   `toml:"dream"`
	Backend BackendConfig `toml:"backend"`
	Render  RenderConfig  `toml:"render"`
}

// GeneralConfig holds process-wide settings.
type GeneralConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFile receives slog output while the TUI owns the terminal.
	// Empty means logs are discarded.
	LogFile string `toml:"log_file"`
}

// DreamConfig controls the dream session: prompts, cadence, and the
// prefetch queue.
type DreamConfig struct {
	// StartPrompt is an optional custom starting prompt. Without Evolve
	// it is repeated forever; with Evolve it is shown once before the
	// journey templates take over.
	StartPrompt string `toml:"start_prompt"`

	// Journey selects the prompt evolution theme: abstract, nature,
	// cosmic, or liquid.
	Journey string `toml:"journey"`

	// Evolve keeps prompts evolving even when StartPrompt is set.
	Evolve bool `toml:"evolve"`

	// FramesPerCycle is the number of prompts to loop over. 1 means
	// draw a fresh prompt for every frame.
	FramesPerCycle int `toml:"frames_per_cycle"`

	// QueueDepth is the prefetch queue capacity.
	QueueDepth int `toml:"queue_depth"`

	// RefreshRate is the time each frame stays on screen.
	RefreshRate Duration `toml:"refresh_rate"`

	// Motion names the seed correlation strategy used in cycle mode:
	// floating, pulsing, rotating, or morphing.
	Motion string `toml:"motion"`

	// Seed is the base seed for correlated motion. 0 picks a random base.
	Seed int64 `toml:"seed"`
}

// BackendConfig describes the image generation backend.
type BackendConfig struct {
	// Kind selects the generator: "remote" for the HTTP inference
	// backend, "procedural" for the built-in local synthesizer.
	Kind string `toml:"kind"`

	// URL is the remote inference endpoint.
	URL string `toml:"url"`

	// AuthToken is sent as a bearer token when non-empty.
	AuthToken string `toml:"auth_token"`

	// Timeout bounds a single generation call. Generous by default:
	// the first call may hit a cold start measured in tens of seconds.
	Timeout Duration `toml:"timeout"`

	// Fast halves generation resolution for quicker frames.
	Fast bool `toml:"fast"`

	// AspectRatio is one of 1:1, 16:9, 9:16, 4:3, 3:4.
	AspectRatio string `toml:"aspect_ratio"`
}

// RenderConfig controls ASCII conversion.
type RenderConfig struct {
	// Width is the art width in character columns. 0 auto-detects from
	// the terminal.
	Width int `toml:"width"`

	// Charset names the luminance ramp: "blocks" or "classic".
	Charset string `toml:"charset"`
}

// journeys is the closed set of prompt evolution themes.
var journeys = map[string]bool{
	"abstract": true,
	"nature":   true,
	"cosmic":   true,
	"liquid":   true,
}

// motions is the closed set of seed correlation strategies.
var motions = map[string]bool{
	"floating": true,
	"pulsing":  true,
	"rotating": true,
	"morphing": true,
}

// backendKinds is the closed set of generator backends.
var backendKinds = map[string]bool{
	"remote":     true,
	"procedural": true,
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Dream: DreamConfig{
			Journey:        "abstract",
			FramesPerCycle: 1,
			QueueDepth:     2,
			RefreshRate:    Duration{3 * time.Second},
			Motion:         "floating",
		},
		Backend: BackendConfig{
			Kind:        "remote",
			Timeout:     Duration{120 * time.Second},
			AspectRatio: "1:1",
		},
		Render: RenderConfig{
			Charset: "blocks",
		},
	}
}

// Validate checks that all closed-set fields hold known values and that
// numeric fields are in range.
func (c *Config) Validate() error {
	if !journeys[c.Dream.Journey] {
		return fmt.Errorf("unknown journey %q (choose from: abstract, nature, cosmic, liquid)", c.Dream.Journey)
	}
	if !motions[c.Dream.Motion] {
		return fmt.Errorf("unknown motion %q (choose from: floating, pulsing, rotating, morphing)", c.Dream.Motion)
	}
	if !backendKinds[c.Backend.Kind] {
		return fmt.Errorf("unknown backend kind %q (choose from: remote, procedural)", c.Backend.Kind)
	}
	if _, _, err := Dimensions(c.Backend.AspectRatio, c.Backend.Fast); err != nil {
		return err
	}
	if c.Dream.FramesPerCycle < 1 {
		return fmt.Errorf("frames_per_cycle must be >= 1, got %d", c.Dream.FramesPerCycle)
	}
	if c.Dream.QueueDepth < 1 {
		return fmt.Errorf("queue_depth must be >= 1, got %d", c.Dream.QueueDepth)
	}
	if c.Dream.RefreshRate.Duration <= 0 {
		return fmt.Errorf("refresh_rate must be positive, got %s", c.Dream.RefreshRate)
	}
	if c.Backend.Kind == "remote" && c.Backend.URL == "" {
		return fmt.Errorf("backend url is required for the remote backend")
	}
	return nil
}

// aspectDimensions maps each supported aspect ratio to its generation
// dimensions at quality resolution. Fast mode halves both axes.
var aspectDimensions = map[string][2]int{
	"1:1":  {512, 512},
	"16:9": {768, 432},
	"9:16": {432, 768},
	"4:3":  {576, 432},
	"3:4":  {432, 576},
}

// Dimensions converts an aspect ratio name and quality tier into pixel
// generation dimensions (width, height).
func Dimensions(aspect string, fast bool) (int, int, error) {
	dims, ok := aspectDimensions[aspect]
	if !ok {
		return 0, 0, fmt.Errorf("unknown aspect ratio %q (choose from: 1:1, 16:9, 9:16, 4:3, 3:4)", aspect)
	}
	w, h := dims[0], dims[1]
	if fast {
		w, h = w/2, h/2
	}
	return w, h, nil
}
