package prompt

import (
	"strings"
	"testing"
)

// firstPick is a deterministic picker that always chooses the first
// vocabulary entry.
func firstPick(vocab []string) string {
	return vocab[0]
}

func TestFixedAlwaysSame(t *testing.T) {
	s := &Fixed{Prompt: "a lighthouse in fog"}
	for i := 0; i < 10; i++ {
		if got := s.Next(); got != "a lighthouse in fog" {
			t.Fatalf("Next() call %d = %q, want fixed prompt", i, got)
		}
	}
}

func TestEvolvingUnknownJourney(t *testing.T) {
	if _, err := NewEvolving("vaporwave", ""); err == nil {
		t.Fatal("expected error for unknown journey")
	}
}

func TestEvolvingStartPromptOnce(t *testing.T) {
	e, err := NewEvolving("abstract", "my custom opener")
	if err != nil {
		t.Fatalf("NewEvolving: %v", err)
	}
	e.pick = firstPick

	if got := e.Next(); got != "my custom opener" {
		t.Fatalf("first Next() = %q, want start prompt", got)
	}
	if got := e.Next(); got == "my custom opener" {
		t.Fatal("start prompt returned twice")
	}
}

func TestEvolvingCyclesTemplates(t *testing.T) {
	e, err := NewEvolving("abstract", "")
	if err != nil {
		t.Fatalf("NewEvolving: %v", err)
	}
	e.pick = firstPick

	n := len(journeyTemplates["abstract"])
	first := make([]string, n)
	for i := 0; i < n; i++ {
		first[i] = e.Next()
	}

	// With a deterministic picker, the second pass through the cycle
	// must reproduce the first.
	for i := 0; i < n; i++ {
		if got := e.Next(); got != first[i] {
			t.Errorf("cycle position %d = %q, want %q", i, got, first[i])
		}
	}
}

func TestEvolvingFillsAllPlaceholders(t *testing.T) {
	for _, journey := range Journeys() {
		e, err := NewEvolving(journey, "")
		if err != nil {
			t.Fatalf("NewEvolving(%q): %v", journey, err)
		}

		for i := 0; i < 2*len(journeyTemplates[journey]); i++ {
			got := e.Next()
			if strings.Contains(got, "{") || strings.Contains(got, "}") {
				t.Errorf("journey %q prompt %d has unfilled placeholder: %q", journey, i, got)
			}
			if got == "" {
				t.Errorf("journey %q produced empty prompt", journey)
			}
		}
	}
}

func TestEvolvingIndependentDraws(t *testing.T) {
	e, err := NewEvolving("abstract", "")
	if err != nil {
		t.Fatalf("NewEvolving: %v", err)
	}

	// Drive the picker through a canned sequence so {color} and {color2}
	// receive different values.
	draws := []string{"blue", "crimson", "mist"}
	i := 0
	e.pick = func(vocab []string) string {
		v := draws[i%len(draws)]
		i++
		return v
	}

	// Template index 1 is "swirling {color} and {color2} patterns".
	e.Next()
	got := e.Next()
	want := "swirling blue and crimson patterns"
	if got != want {
		t.Errorf("Next() = %q, want %q", got, want)
	}
}

func TestForJourney(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		evolve    bool
		wantFixed bool
	}{
		{"custom prompt pins sequence", "a red door", false, true},
		{"custom prompt with evolve", "a red door", true, false},
		{"no prompt", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ForJourney("nature", tt.start, tt.evolve)
			if err != nil {
				t.Fatalf("ForJourney: %v", err)
			}
			_, isFixed := s.(*Fixed)
			if isFixed != tt.wantFixed {
				t.Errorf("fixed sequencer = %v, want %v", isFixed, tt.wantFixed)
			}
		})
	}
}
