// Package dream contains the prefetch queue at the heart of ascii-dream:
// a bounded buffer of display-ready frames filled by one background
// producer goroutine and drained by one consumer (the TUI). The queue
// absorbs generation latency and transient backend failures so the
// display loop never waits on the network directly.
package dream

import "image"

// Frame is one rendered text-art result paired with the prompt that
// produced it. Frames are immutable; ownership moves producer → queue →
// consumer, and the consumer keeps at most the last shown frame.
type Frame struct {
	// Art is the ANSI-styled character art, ready to print.
	Art string

	// Prompt is the source prompt. Fallback frames carry a " [fallback]"
	// suffix so a degraded backend is visible without being fatal.
	Prompt string
}

// Renderer converts a decoded image into display-ready art. It is the
// external rendering collaborator (pkg/render satisfies it).
type Renderer interface {
	Convert(img image.Image) string
}
