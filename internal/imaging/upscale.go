package imaging

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Resolution guard defaults. Audiveris mis-detects staff lines on small
// scans, so anything below this is upscaled before recognition.
const (
	MinWidth      = 1200
	MinHeight     = 600
	DefaultFactor = 4
)

// MeetsMinSize reports whether img satisfies the minimum resolution the
// recognizer needs.
func MeetsMinSize(img image.Image, minWidth, minHeight int) bool {
	b := img.Bounds()
	return b.Dx() >= minWidth && b.Dy() >= minHeight
}

// EnsureMinSize implements the resolution guard: it returns img unchanged
// with factor 1 when both dimensions meet the threshold, and otherwise a
// Lanczos-resampled copy with both dimensions multiplied by factor,
// together with the factor that was applied.
func EnsureMinSize(img image.Image, minWidth, minHeight, factor int) (image.Image, int) {
	if MeetsMinSize(img, minWidth, minHeight) {
		return img, 1
	}
	return Upscale(img, factor), factor
}

// Upscale returns a copy of img with both dimensions multiplied by
// factor, resampled with a Lanczos filter. A factor of 1 or less returns
// a plain clone.
func Upscale(img image.Image, factor int) image.Image {
	b := img.Bounds()
	if factor <= 1 {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.Lanczos)
}

// DerivedPath builds a sibling path for a processed copy of inputPath,
// e.g. DerivedPath("scan.png", "upscaled") -> "scan_upscaled.png".
func DerivedPath(inputPath, suffix string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return fmt.Sprintf("%s_%s%s", stem, suffix, ext)
}
