package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dream.Journey != "abstract" {
		t.Errorf("default journey = %q, want abstract", cfg.Dream.Journey)
	}
	if cfg.Dream.QueueDepth != 2 {
		t.Errorf("default queue depth = %d, want 2", cfg.Dream.QueueDepth)
	}
	if cfg.Dream.FramesPerCycle != 1 {
		t.Errorf("default frames per cycle = %d, want 1", cfg.Dream.FramesPerCycle)
	}
	if cfg.Dream.RefreshRate.Duration != 3*time.Second {
		t.Errorf("default refresh rate = %s, want 3s", cfg.Dream.RefreshRate)
	}
	if cfg.Backend.AspectRatio != "1:1" {
		t.Errorf("default aspect ratio = %q, want 1:1", cfg.Backend.AspectRatio)
	}
}

func TestLoadFromReader(t *testing.T) {
	input := `
[dream]
journey = "cosmic"
frames_per_cycle = 5
queue_depth = 3
refresh_rate = "1.5s"
motion = "pulsing"

[backend]
kind = "procedural"
fast = true
aspect_ratio = "16:9"

[render]
charset = "classic"
width = 100
`
	cfg, err := LoadFromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.Dream.Journey != "cosmic" {
		t.Errorf("journey = %q, want cosmic", cfg.Dream.Journey)
	}
	if cfg.Dream.FramesPerCycle != 5 {
		t.Errorf("frames_per_cycle = %d, want 5", cfg.Dream.FramesPerCycle)
	}
	if cfg.Dream.RefreshRate.Duration != 1500*time.Millisecond {
		t.Errorf("refresh_rate = %s, want 1.5s", cfg.Dream.RefreshRate)
	}
	if !cfg.Backend.Fast {
		t.Error("fast = false, want true")
	}
	if cfg.Render.Width != 100 {
		t.Errorf("width = %d, want 100", cfg.Render.Width)
	}

	// Unset fields keep their defaults.
	if cfg.General.LogLevel != "info" {
		t.Errorf("log_level = %q, want default info", cfg.General.LogLevel)
	}
}

func TestLoadFromReaderInvalidTOML(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("[dream\njourney = "))
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with procedural backend", func(c *Config) { c.Backend.Kind = "procedural" }, ""},
		{"remote backend with url", func(c *Config) { c.Backend.URL = "https://gpu.example.com/generate" }, ""},
		{"remote backend without url", func(c *Config) {}, "backend url"},
		{"unknown journey", func(c *Config) { c.Dream.Journey = "vaporwave" }, "unknown journey"},
		{"unknown motion", func(c *Config) { c.Dream.Motion = "strobing" }, "unknown motion"},
		{"unknown backend", func(c *Config) { c.Backend.Kind = "carrier-pigeon" }, "unknown backend"},
		{"unknown aspect ratio", func(c *Config) { c.Backend.AspectRatio = "2:1" }, "unknown aspect ratio"},
		{"zero frames per cycle", func(c *Config) {
			c.Backend.Kind = "procedural"
			c.Dream.FramesPerCycle = 0
		}, "frames_per_cycle"},
		{"zero queue depth", func(c *Config) {
			c.Backend.Kind = "procedural"
			c.Dream.QueueDepth = 0
		}, "queue_depth"},
		{"zero refresh rate", func(c *Config) {
			c.Backend.Kind = "procedural"
			c.Dream.RefreshRate = Duration{}
		}, "refresh_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: unexpected error %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate: expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		aspect string
		fast   bool
		wantW  int
		wantH  int
	}{
		{"1:1", false, 512, 512},
		{"1:1", true, 256, 256},
		{"16:9", false, 768, 432},
		{"16:9", true, 384, 216},
		{"9:16", false, 432, 768},
		{"4:3", true, 288, 216},
		{"3:4", false, 432, 576},
	}

	for _, tt := range tests {
		w, h, err := Dimensions(tt.aspect, tt.fast)
		if err != nil {
			t.Errorf("Dimensions(%q, %v): %v", tt.aspect, tt.fast, err)
			continue
		}
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("Dimensions(%q, %v) = %dx%d, want %dx%d",
				tt.aspect, tt.fast, w, h, tt.wantW, tt.wantH)
		}
	}

	if _, _, err := Dimensions("21:9", false); err == nil {
		t.Error("expected error for unsupported aspect ratio")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ASCII_DREAM_BACKEND_URL", "https://env.example.com/gen")
	t.Setenv("ASCII_DREAM_JOURNEY", "liquid")
	t.Setenv("ASCII_DREAM_SEED", "424242")

	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.Backend.URL != "https://env.example.com/gen" {
		t.Errorf("backend url = %q, want env value", cfg.Backend.URL)
	}
	if cfg.Dream.Journey != "liquid" {
		t.Errorf("journey = %q, want liquid", cfg.Dream.Journey)
	}
	if cfg.Dream.Seed != 424242 {
		t.Errorf("seed = %d, want 424242", cfg.Dream.Seed)
	}
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"3s", 3 * time.Second, false},
		{"500ms", 500 * time.Millisecond, false},
		{"2m", 2 * time.Minute, false},
		{"", 0, false},
		{"fast", 0, true},
		{"-1s", 0, true},
	}

	for _, tt := range tests {
		var d Duration
		err := d.UnmarshalText([]byte(tt.in))
		if tt.wantErr {
			if err == nil {
				t.Errorf("UnmarshalText(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("UnmarshalText(%q): %v", tt.in, err)
			continue
		}
		if d.Duration != tt.want {
			t.Errorf("UnmarshalText(%q) = %s, want %s", tt.in, d.Duration, tt.want)
		}
	}
}
