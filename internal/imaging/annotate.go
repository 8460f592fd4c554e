package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"scoresight/internal/score"
)

// Fixed annotation palette, one color per symbol category.
const (
	hexNotehead = "#FF00FF" // magenta
	hexSharp    = "#FF0000" // red
	hexFlat     = "#00FF00" // green
	hexNatural  = "#0000FF" // blue
	hexText     = "#FF8C00" // orange, lyric/title text regions
	hexBanner   = "#FFFF00" // yellow, summary banner
)

// Options controls how Annotate renders detections.
type Options struct {
	// LineWidth is the rectangle outline thickness in pixels.
	// Zero means the default of 3.
	LineWidth int

	// Labels draws the short symbol label chip above each box.
	Labels bool

	// Banner draws a summary line in the top-left corner.
	Banner bool

	// BannerText overrides the default "detected: N symbols" banner.
	BannerText string
}

// SymbolColor returns the annotation color for a symbol category.
func SymbolColor(t score.SymbolType) color.RGBA {
	switch t {
	case score.Notehead:
		return MustParseHexColor(hexNotehead)
	case score.Sharp:
		return MustParseHexColor(hexSharp)
	case score.Flat:
		return MustParseHexColor(hexFlat)
	case score.Natural:
		return MustParseHexColor(hexNatural)
	}
	return color.RGBA{255, 255, 255, 255}
}

// TextRegionColor is the color used for OCR text-region boxes.
func TextRegionColor() color.RGBA { return MustParseHexColor(hexText) }

// ParseHexColor parses a "#RRGGBB" color string.
func ParseHexColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustParseHexColor is ParseHexColor for the package's own constants,
// panicking on malformed input.
func MustParseHexColor(hex string) color.RGBA {
	c, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// contrastColor picks black or white text for readability on bg, based
// on the background's CIE L* lightness.
func contrastColor(bg color.RGBA) color.RGBA {
	c := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	l, _, _ := c.Luv()
	if l > 0.65 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}

// Annotate renders the detections onto a copy of src and returns it.
// The source image is never modified and the output always has the same
// dimensions as the input.
//
// Every detection gets a rectangle outline in its symbol color; with
// Labels enabled, a small color-filled chip above the box carries the
// symbol's one-character label.
func Annotate(src image.Image, dets []score.Detection, opts Options) *image.RGBA {
	lineWidth := opts.LineWidth
	if lineWidth <= 0 {
		lineWidth = 3
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	for _, det := range dets {
		c := SymbolColor(det.Type)
		box := det.Bounds.Rect().Add(bounds.Min)
		DrawBox(dst, box, c, lineWidth)
		if opts.Labels {
			DrawLabel(dst, box.Min.X, box.Min.Y-labelHeight-2, det.Type.Label(), c)
		}
	}

	if opts.Banner {
		text := opts.BannerText
		if text == "" {
			text = fmt.Sprintf("detected: %d symbols", len(dets))
		}
		DrawLabel(dst, bounds.Min.X+10, bounds.Min.Y+10, text, MustParseHexColor(hexBanner))
	}

	return dst
}

// DrawBox draws a rectangle outline of the given thickness, clipped to
// the destination bounds. The outline grows outward from the rectangle
// edge so thin symbols are not obscured.
func DrawBox(dst *image.RGBA, r image.Rectangle, c color.RGBA, width int) {
	outer := r.Inset(-width)
	fill := image.NewUniform(c)

	// Four bars: top, bottom, left, right.
	bars := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, r.Min.Y),
		image.Rect(outer.Min.X, r.Max.Y, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, r.Min.Y, r.Min.X, r.Max.Y),
		image.Rect(r.Max.X, r.Min.Y, outer.Max.X, r.Max.Y),
	}
	for _, bar := range bars {
		draw.Draw(dst, bar.Intersect(dst.Bounds()), fill, image.Point{}, draw.Src)
	}
}

// Label chip geometry for the basicfont face.
const (
	labelHeight  = 13 // basicfont.Face7x13 line height
	labelPadding = 2
	glyphWidth   = 7 // basicfont.Face7x13 advance
)

// DrawLabel draws text on a filled background chip with its top-left
// corner at (x, y), clamped into the destination bounds. Text color is
// chosen automatically for contrast against bg.
func DrawLabel(dst *image.RGBA, x, y int, text string, bg color.RGBA) {
	if text == "" {
		return
	}
	b := dst.Bounds()
	if x < b.Min.X {
		x = b.Min.X
	}
	if y < b.Min.Y {
		y = b.Min.Y
	}

	chip := image.Rect(x, y, x+len(text)*glyphWidth+2*labelPadding, y+labelHeight+2*labelPadding)
	draw.Draw(dst, chip.Intersect(b), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(contrastColor(bg)),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x+labelPadding, y+labelPadding+basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)
}
