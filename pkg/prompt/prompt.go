// Package prompt produces the unbounded sequence of text prompts that
// drives image generation. A Sequencer never fails and never runs out;
// state only moves forward.
package prompt

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Sequencer yields an infinite sequence of generation prompts.
type Sequencer interface {
	// Next returns the next prompt. It always succeeds.
	Next() string
}

// Fixed is a Sequencer that returns the same prompt forever.
type Fixed struct {
	Prompt string
}

// Next returns the fixed prompt.
func (f *Fixed) Next() string {
	return f.Prompt
}

// Evolving cycles through the template list of one journey theme, filling
// placeholders with random vocabulary draws on each call. If a start
// prompt was supplied it is returned exactly once before cycling begins.
type Evolving struct {
	templates []string
	start     string
	started   bool
	idx       int

	// pick selects one element from a vocabulary. Defaults to a uniform
	// random draw; tests inject a deterministic picker.
	pick func([]string) string
}

// NewEvolving creates an Evolving sequencer for the given journey theme.
// startPrompt may be empty. Returns an error for unknown journeys.
func NewEvolving(journey, startPrompt string) (*Evolving, error) {
	templates, ok := journeyTemplates[journey]
	if !ok {
		return nil, fmt.Errorf("unknown journey %q (choose from: %s)",
			journey, strings.Join(Journeys(), ", "))
	}
	return &Evolving{
		templates: templates,
		start:     startPrompt,
		pick:      func(vocab []string) string { return lo.Sample(vocab) },
	}, nil
}

// Next returns the next evolved prompt.
func (e *Evolving) Next() string {
	if !e.started {
		e.started = true
		if e.start != "" {
			return e.start
		}
	}

	tmpl := e.templates[e.idx%len(e.templates)]
	e.idx++

	return e.fill(tmpl)
}

// fill substitutes all placeholders in a template with vocabulary draws.
// Each placeholder is drawn independently.
func (e *Evolving) fill(tmpl string) string {
	r := strings.NewReplacer(
		"{color}", e.pick(colorPalette),
		"{color2}", e.pick(colorPalette),
		"{element}", e.pick(natureElements),
	)
	return r.Replace(tmpl)
}

// ForJourney builds the Sequencer implied by the CLI surface: a custom
// prompt without the evolve flag pins the prompt forever; anything else
// evolves through the journey templates.
func ForJourney(journey, startPrompt string, evolve bool) (Sequencer, error) {
	if startPrompt != "" && !evolve {
		return &Fixed{Prompt: startPrompt}, nil
	}
	return NewEvolving(journey, startPrompt)
}
