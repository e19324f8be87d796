// Package config provides TOML-based configuration for ascii-dream.
package config

import (
	"fmt"
	"time"
)

// Duration lets intervals like refresh_rate and timeout appear in TOML
// as Go duration strings ("3s", "2m", "1h30m") rather than bare
// integers.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string
// parses as zero; negative durations are rejected since no interval in
// the config can meaningfully go backwards.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
