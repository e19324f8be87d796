package generate

import (
	"context"
	"hash/fnv"
	"image"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Procedural is a local Generator that synthesizes soft abstract color
// fields instead of calling a remote model. It exists so the binary runs
// without a GPU backend and so the full pipeline is exercisable in tests.
//
// The prompt text selects the palette (hashed into a base hue) and the
// seed controls composition, so correlated seeds produce correlated
// frames just like the remote backend.
type Procedural struct{}

// blobCount is the number of radial color blobs composited per image.
const blobCount = 5

// blob is one radial color source in the field.
type blob struct {
	x, y   float64 // center, normalized to [0,1)
	radius float64
	c      colorful.Color
}

// Generate synthesizes an image. It never fails, but honors ctx so a
// cancelled session does not burn CPU on an image nobody will see.
func (Procedural) Generate(ctx context.Context, req Request) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Prompt: req.Prompt, Err: err}
	}

	w, h := req.Width, req.Height
	if w <= 0 {
		w = 512
	}
	if h <= 0 {
		h = 512
	}

	var seed uint64
	if req.Seed != nil {
		seed = uint64(*req.Seed)
	} else {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, promptHash(req.Prompt)))

	baseHue := float64(promptHash(req.Prompt) % 360)
	blobs := make([]blob, blobCount)
	for i := range blobs {
		// Hues stay within a 120-degree band around the prompt's base
		// hue so each prompt has a recognizable palette.
		hue := math.Mod(baseHue+rng.Float64()*120, 360)
		blobs[i] = blob{
			x:      rng.Float64(),
			y:      rng.Float64(),
			radius: 0.25 + rng.Float64()*0.5,
			c:      colorful.Hsv(hue, 0.5+rng.Float64()*0.5, 0.6+rng.Float64()*0.4),
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		if y%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &Error{Prompt: req.Prompt, Err: err}
			}
		}
		fy := float64(y) / float64(h)
		for x := 0; x < w; x++ {
			fx := float64(x) / float64(w)

			// Inverse-square falloff blend of all blobs.
			var sumR, sumG, sumB, sumW float64
			for _, bl := range blobs {
				dx := fx - bl.x
				dy := fy - bl.y
				d2 := dx*dx + dy*dy
				weight := 1 / (1 + d2/(bl.radius*bl.radius)*8)
				sumR += bl.c.R * weight
				sumG += bl.c.G * weight
				sumB += bl.c.B * weight
				sumW += weight
			}

			c := colorful.Color{R: sumR / sumW, G: sumG / sumW, B: sumB / sumW}.Clamped()
			r8, g8, b8 := c.RGB255()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r8
			img.Pix[i+1] = g8
			img.Pix[i+2] = b8
			img.Pix[i+3] = 0xff
		}
	}

	// Soften and enrich the field so it reads as a painted gradient
	// rather than flat math.
	out := imaging.Blur(img, 3.0)
	out = imaging.AdjustSaturation(out, 15)

	return out, nil
}

// promptHash maps a prompt to a stable 64-bit value.
func promptHash(prompt string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(prompt))
	return h.Sum64()
}
