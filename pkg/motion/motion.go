// Package motion derives per-frame generation seeds from a shared base so
// that a cycling sequence of frames drifts coherently instead of jumping
// between unrelated noise. The strategies are cosmetic heuristics; each is
// a pure function of the frame index.
package motion

import (
	"math"
	"math/rand/v2"
)

// Strategy maps a frame index to a seed offset from the base seed.
type Strategy func(frameIndex int) int64

// morphPattern is the offset cycle used by the morphing strategy: ramp up
// to a distant seed and back for a smooth there-and-back transition.
var morphPattern = []int64{0, 5, 15, 30, 50, 30, 15, 5, 0}

// Floating drifts gently away from the base seed.
func Floating(frameIndex int) int64 {
	return int64(frameIndex) * 7
}

// Pulsing breathes around the base seed on a sine wave.
func Pulsing(frameIndex int) int64 {
	return int64(10 * math.Sin(float64(frameIndex)*0.3))
}

// Rotating steps through seeds at a faster fixed stride.
func Rotating(frameIndex int) int64 {
	return int64(frameIndex) * 13
}

// Morphing cycles a fixed offset pattern for there-and-back transitions.
func Morphing(frameIndex int) int64 {
	return morphPattern[frameIndex%len(morphPattern)]
}

// strategies is the closed set of named strategies.
var strategies = map[string]Strategy{
	"floating": Floating,
	"pulsing":  Pulsing,
	"rotating": Rotating,
	"morphing": Morphing,
}

// descriptions gives each strategy a human-readable movement summary.
var descriptions = map[string]string{
	"floating": "gentle floating drift",
	"pulsing":  "organic breathing pulse",
	"rotating": "smooth spinning motion",
	"morphing": "fluid morphing transitions",
}

// ByName returns the named Strategy. Unknown names fall back to Floating.
func ByName(name string) Strategy {
	if s, ok := strategies[name]; ok {
		return s
	}
	return Floating
}

// Describe returns a human-readable description of the named strategy.
func Describe(name string) string {
	if d, ok := descriptions[name]; ok {
		return d
	}
	return "unknown movement"
}

// Plan binds a base seed to a Strategy. The zero base is replaced with a
// random one so unrelated sessions do not share noise.
type Plan struct {
	base     int64
	strategy Strategy
}

// NewPlan creates a Plan. A base of 0 selects a random base seed.
func NewPlan(base int64, strategy Strategy) *Plan {
	if base == 0 {
		base = rand.Int64N(math.MaxInt32)
	}
	if strategy == nil {
		strategy = Floating
	}
	return &Plan{base: base, strategy: strategy}
}

// Seed returns the generation seed for the given frame index.
func (p *Plan) Seed(frameIndex int) int64 {
	return p.base + p.strategy(frameIndex)
}

// Base returns the plan's base seed.
func (p *Plan) Base() int64 {
	return p.base
}
