package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"scoresight/internal/config"
	"scoresight/internal/imaging"
	"scoresight/internal/score"
)

// MockDetections returns a fixed detection set shaped like a simple
// melody line. It exists so the annotation path can be exercised and
// demonstrated without a recognizer installation.
func MockDetections() []score.Detection {
	boxes := []struct {
		t          score.SymbolType
		x, y, w, h int
	}{
		{score.Notehead, 55, 180, 15, 15},
		{score.Notehead, 95, 175, 15, 15},
		{score.Notehead, 130, 172, 15, 15},
		{score.Notehead, 165, 170, 15, 15},
		{score.Notehead, 205, 168, 15, 15},
		{score.Notehead, 265, 165, 15, 15},
		{score.Notehead, 310, 163, 15, 15},
		{score.Flat, 390, 155, 12, 25},
		{score.Notehead, 405, 160, 15, 15},
		{score.Sharp, 450, 152, 12, 28},
		{score.Notehead, 465, 158, 15, 15},
		{score.Natural, 505, 150, 12, 28},
		{score.Notehead, 520, 153, 15, 15},
	}

	dets := make([]score.Detection, 0, len(boxes))
	for _, b := range boxes {
		dets = append(dets, score.Detection{
			Type:   b.t,
			Bounds: score.Bounds{X: b.x, Y: b.y, Width: b.w, Height: b.h},
		})
	}
	return dets
}

// LoadDetections reads a JSON array of detections from path.
func LoadDetections(path string) ([]score.Detection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading detections file: %w", err)
	}
	var dets []score.Detection
	if err := json.Unmarshal(data, &dets); err != nil {
		return nil, fmt.Errorf("parsing detections file %s: %w", path, err)
	}
	return dets, nil
}

// Preview annotates inputPath with the given detections without invoking
// the recognizer, watermarking the output so it cannot be mistaken for a
// real detection run. Passing nil detections uses the built-in mock set.
func Preview(settings *config.Settings, inputPath, outputPath string, dets []score.Detection) (string, error) {
	img, err := imaging.LoadImage(inputPath)
	if err != nil {
		return "", err
	}
	if dets == nil {
		dets = MockDetections()
	}

	annotated := imaging.Annotate(img, dets, imaging.Options{
		LineWidth:  settings.Annotate.LineWidth,
		Labels:     settings.Annotate.Labels,
		Banner:     true,
		BannerText: fmt.Sprintf("MOCK DATA - %d symbols, no recognizer run", len(dets)),
	})

	if outputPath == "" {
		outputPath = imaging.DerivedPath(inputPath, "preview")
	}
	if err := imaging.SaveImage(annotated, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
