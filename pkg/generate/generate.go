// Package generate wraps image generation backends behind a uniform
// contract: prompt plus dimensions plus optional seed in, decoded image
// out. Backends never retry internally; retry policy belongs to the
// prefetch queue in pkg/dream.
package generate

import (
	"context"
	"fmt"
	"image"
)

// Request describes one generation call.
type Request struct {
	Prompt string
	Width  int
	Height int

	// Seed, when non-nil, pins the generation noise so consecutive
	// frames with nearby seeds look correlated. Nil means independent
	// randomness on the backend.
	Seed *int64
}

// Generator produces one image per request. Implementations block until
// the backend responds or ctx is done.
type Generator interface {
	Generate(ctx context.Context, req Request) (image.Image, error)
}

// Error is returned for any generation failure: transport errors,
// non-2xx responses, and undecodable payloads. Callers recover from it
// with retry and fallback; it is never fatal on its own.
type Error struct {
	Prompt string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generate %q: %v", e.Prompt, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
