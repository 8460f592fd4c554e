package score

import (
	"image"
	"strings"
)

// SymbolType identifies one of the music symbol categories this tool
// detects and annotates.
type SymbolType string

const (
	Notehead SymbolType = "notehead"
	Sharp    SymbolType = "sharp"
	Flat     SymbolType = "flat"
	Natural  SymbolType = "natural"
)

// Label returns the short text drawn next to an annotated symbol.
func (t SymbolType) Label() string {
	switch t {
	case Notehead:
		return "o"
	case Sharp:
		return "#"
	case Flat:
		return "b"
	case Natural:
		return "n"
	}
	return "?"
}

// Bounds is an axis-aligned bounding box in pixel coordinates, with the
// origin at the top-left corner of the image the recognizer was fed.
type Bounds struct {
	X      int `json:"x"`      // Left edge
	Y      int `json:"y"`      // Top edge
	Width  int `json:"width"`  // Horizontal extent in pixels
	Height int `json:"height"` // Vertical extent in pixels
}

// Rect converts the box to a standard image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Scale returns the box with every coordinate divided by factor.
// Used to map detections from an upscaled copy back to the original image.
func (b Bounds) Scale(factor int) Bounds {
	if factor <= 1 {
		return b
	}
	return Bounds{
		X:      b.X / factor,
		Y:      b.Y / factor,
		Width:  b.Width / factor,
		Height: b.Height / factor,
	}
}

// Detection is a single recognized symbol.
//
// Shape preserves the recognizer's raw shape tag (e.g. "NOTEHEAD_BLACK",
// "KEY_SHARP") for diagnostics; Type is the classified category.
type Detection struct {
	Type   SymbolType `json:"type"`
	Shape  string     `json:"shape,omitempty"`
	Bounds Bounds     `json:"bounds"`
}

// ClassifySymbol maps a recognizer shape tag to a SymbolType. The second
// return value is false for shapes outside the supported categories.
//
// Accidentals are matched before noteheads so that composite tags such as
// "KEY_SHARP" or "SHARP_AND_FLAT" classify as accidentals.
func ClassifySymbol(shape string) (SymbolType, bool) {
	s := strings.ToLower(shape)
	switch {
	case strings.Contains(s, "sharp"):
		return Sharp, true
	case strings.Contains(s, "flat"):
		return Flat, true
	case strings.Contains(s, "natural"):
		return Natural, true
	case strings.Contains(s, "head"):
		return Notehead, true
	}
	return "", false
}

// CountByType tallies detections per symbol category.
func CountByType(dets []Detection) map[SymbolType]int {
	counts := make(map[SymbolType]int)
	for _, d := range dets {
		counts[d.Type]++
	}
	return counts
}
