package prompt

// journeyTemplates holds the ordered template list for each journey theme.
// Placeholders {color}, {color2}, and {element} are filled with random
// vocabulary draws on every call.
var journeyTemplates = map[string][]string{
	"abstract": {
		"geometric {color} shapes flowing smoothly",
		"swirling {color} and {color2} patterns",
		"abstract {color} waves in motion",
		"crystalline {color} structures forming",
		"fluid {color} ribbons dancing",
		"scattered {color} particles coalescing",
		"radiating {color} energy patterns",
		"interlocking {color} geometric forms",
		"flowing {color} liquid streams",
		"dynamic {color} and {color2} composition",
	},
	"nature": {
		"{element} in {color} light",
		"organic {element} patterns growing",
		"{element} flowing like {color} water",
		"ethereal {color} {element} swirling",
		"dreamy {element} in {color} mist",
		"{element} blooming with {color} energy",
		"wild {color} {element} dancing",
		"serene {element} in {color} atmosphere",
	},
	"cosmic": {
		"{color} nebula swirling in space",
		"cosmic {color} energy flowing",
		"stellar {color} and {color2} clouds",
		"galactic {color} vortex spinning",
		"celestial {color} patterns forming",
		"astral {color} waves rippling",
		"interstellar {color} matter dispersing",
		"cosmic {color2} dust in {color} void",
	},
	"liquid": {
		"{color} paint swirling in water",
		"liquid {color} and {color2} mixing",
		"flowing {color} ink dispersing",
		"{color} liquid marble patterns",
		"viscous {color} fluid in motion",
		"aquatic {color} and {color2} streams",
		"molten {color} material flowing",
		"fluid {color} dynamics in motion",
	},
}

// colorPalette is the vocabulary for {color} and {color2}.
var colorPalette = []string{
	"blue", "purple", "orange", "red", "green", "turquoise",
	"magenta", "cyan", "amber", "violet", "crimson", "emerald",
	"golden", "silver", "coral", "indigo", "rose", "teal",
}

// natureElements is the vocabulary for {element}.
var natureElements = []string{
	"leaves", "water", "fire", "clouds", "mountains", "flowers",
	"trees", "waves", "wind", "rain", "lightning", "mist",
}

// Journeys returns the names of all available journey themes, sorted.
func Journeys() []string {
	return []string{"abstract", "cosmic", "liquid", "nature"}
}
