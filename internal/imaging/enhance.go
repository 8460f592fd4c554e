package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// Enhance applies a recognition-oriented cleanup pass: grayscale
// conversion, a mild contrast boost, and sharpening. Scanned sheet music
// with faint staff lines benefits from this before it reaches the
// recognizer; clean digital exports do not need it, so the pass is
// opt-in.
func Enhance(img image.Image) image.Image {
	gray := effect.Grayscale(img)
	contrasted := adjust.Contrast(gray, 0.1)
	return effect.Sharpen(contrasted)
}
