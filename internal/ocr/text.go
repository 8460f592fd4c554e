package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"scoresight/internal/score"
)

// TextRegion is a block of text found on the sheet, with Tesseract's
// confidence that the region really contains text (0.0 to 1.0).
type TextRegion struct {
	Text       string       `json:"text,omitempty"`
	Confidence float64      `json:"confidence"`
	Bounds     score.Bounds `json:"bounds"`
}

// DetectTextRegions finds text blocks in the image file at imagePath.
//
// Regions below minConfidence are dropped. Detection runs at Tesseract's
// block level, which groups lyric lines and headings into paragraph-like
// regions; word-level granularity is unnecessary for annotation.
func DetectTextRegions(imagePath string, minConfidence float64) ([]TextRegion, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("setting OCR image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, fmt.Errorf("detecting text regions: %w", err)
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		confidence := float64(box.Confidence) / 100.0
		if confidence < minConfidence {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: confidence,
			Bounds: score.Bounds{
				X:      box.Box.Min.X,
				Y:      box.Box.Min.Y,
				Width:  box.Box.Dx(),
				Height: box.Box.Dy(),
			},
		})
	}
	return regions, nil
}
