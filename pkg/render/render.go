// Package render converts generated images into colorized character art
// for terminal display. Conversion is pure and synchronous: image in,
// ANSI-styled text block out.
package render

import (
	"image"
	"math"
	"strings"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	xdraw "golang.org/x/image/draw"
)

// charsets maps charset names to luminance ramps, darkest first.
var charsets = map[string][]rune{
	"blocks":  []rune(" ░░▒▒▓▓█"),
	"classic": []rune(" .:-=+*#%@"),
}

// cellAspect compensates for terminal cells being roughly twice as tall
// as they are wide.
const cellAspect = 2.0

// maxAutoWidth caps auto-detected art width in columns.
const maxAutoWidth = 80

// Converter turns images into colored character art at a fixed column
// width. The zero value is not usable; construct with NewConverter.
//
// The width is shared state: the display loop retargets it on terminal
// resize while the producer goroutine is converting, so it is held
// atomically.
type Converter struct {
	cols    atomic.Int64
	ramp    []rune
	profile termenv.Profile
}

// NewConverter creates a Converter rendering at the given width in
// character columns. Unknown charset names fall back to "blocks". The
// termenv profile degrades 24-bit colors for terminals that cannot show
// them.
func NewConverter(cols int, charset string, profile termenv.Profile) *Converter {
	if cols < 2 {
		cols = 2
	}
	ramp, ok := charsets[charset]
	if !ok {
		ramp = charsets["blocks"]
	}
	c := &Converter{ramp: ramp, profile: profile}
	c.cols.Store(int64(cols))
	return c
}

// AutoWidth picks an art width from the terminal's column count: about
// 70% of the terminal, capped at 80, matching the framing the dream
// display was designed around.
func AutoWidth(termCols int) int {
	if termCols <= 0 {
		termCols = 80
	}
	w := int(float64(termCols) * 0.7)
	if w > maxAutoWidth {
		w = maxAutoWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Width returns the converter's column width.
func (c *Converter) Width() int {
	return int(c.cols.Load())
}

// SetWidth retargets the converter, for terminal resizes. Safe to call
// while another goroutine is converting.
func (c *Converter) SetWidth(cols int) {
	if cols >= 2 {
		c.cols.Store(int64(cols))
	}
}

// Convert renders an image as a block of ANSI-colored characters. Each
// output cell takes its character from the pixel's luminance and its
// foreground color from the pixel itself. Returns "" for a nil image.
func (c *Converter) Convert(img image.Image) string {
	if img == nil {
		return ""
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return ""
	}

	// One pixel per output cell, with the cell aspect folded into the
	// row count. Read the width once so a mid-conversion resize cannot
	// tear the frame.
	cols := int(c.cols.Load())
	rows := int(math.Round(float64(cols) * float64(srcH) / float64(srcW) / cellAspect))
	if rows < 1 {
		rows = 1
	}

	grid := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	xdraw.CatmullRom.Scale(grid, grid.Bounds(), img, bounds, xdraw.Src, nil)

	// Restore a little of the edge detail lost in the downscale.
	grid = imaging.Sharpen(grid, 0.6)

	var b strings.Builder
	b.Grow(cols * rows * 24)

	for y := 0; y < rows; y++ {
		if y > 0 {
			b.WriteString("\x1b[0m\n")
		}
		for x := 0; x < cols; x++ {
			px := grid.NRGBAAt(x, y)
			col := colorful.Color{
				R: float64(px.R) / 255,
				G: float64(px.G) / 255,
				B: float64(px.B) / 255,
			}

			// Perceptual lightness picks the rune; ramp is darkest first.
			l, _, _ := col.Luv()
			idx := int(l * float64(len(c.ramp)))
			if idx >= len(c.ramp) {
				idx = len(c.ramp) - 1
			}
			if idx < 0 {
				idx = 0
			}

			tc := c.profile.Color(col.Hex())
			if tc != nil {
				b.WriteString("\x1b[")
				b.WriteString(tc.Sequence(false))
				b.WriteByte('m')
			}
			b.WriteRune(c.ramp[idx])
		}
	}

	b.WriteString("\x1b[0m")
	return b.String()
}
