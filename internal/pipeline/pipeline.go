// Package pipeline wires the run together: resolution guard, recognizer
// invocation, symbol extraction, and annotation, in that order, with no
// feedback loops or retries. The only suspension point is waiting on the
// recognizer subprocess.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"scoresight/internal/config"
	"scoresight/internal/imaging"
	"scoresight/internal/ocr"
	"scoresight/internal/recognizer"
	"scoresight/internal/score"
)

// Pipeline runs the full detect flow for a single image.
type Pipeline struct {
	Engine   recognizer.Engine
	Settings *config.Settings
	Log      zerolog.Logger
}

// Result collects everything a run produced.
type Result struct {
	// Detections in recognizer output order, in the coordinate space
	// selected by annotate.space.
	Detections []score.Detection

	// TextRegions found by the optional OCR pass; nil when disabled.
	TextRegions []ocr.TextRegion

	// Counts per symbol category.
	Counts map[score.SymbolType]int

	// OutputPath is the annotated image written to disk.
	OutputPath string

	// UpscaledPath is the persisted upscaled copy, empty when the guard
	// did not fire or the copy was suppressed.
	UpscaledPath string

	// ScaleFactor actually applied by the guard (1 = untouched).
	ScaleFactor int

	// RecognizerOutput is the structured file the engine produced.
	RecognizerOutput string
}

// New assembles a pipeline from settings.
func New(engine recognizer.Engine, settings *config.Settings, log zerolog.Logger) *Pipeline {
	return &Pipeline{Engine: engine, Settings: settings, Log: log}
}

// Run processes inputPath and writes the annotated image to outputPath,
// or to <name>_detected.<ext> beside the input when outputPath is empty.
//
// Any failure is fatal for the run and returned unwrapped enough for the
// caller to classify with errors.Is against the recognizer sentinels.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	cfg := p.Settings

	original, err := imaging.LoadImage(inputPath)
	if err != nil {
		return nil, err
	}
	b := original.Bounds()
	p.Log.Info().Str("input", inputPath).
		Int("width", b.Dx()).Int("height", b.Dy()).
		Msg("processing image")

	// Resolution guard.
	recogImg, factor := imaging.EnsureMinSize(original,
		cfg.Upscale.MinWidth, cfg.Upscale.MinHeight, cfg.Upscale.Factor)
	if factor > 1 {
		p.Log.Info().Int("factor", factor).
			Int("width", recogImg.Bounds().Dx()).Int("height", recogImg.Bounds().Dy()).
			Msg("input below minimum resolution, upscaled")
	}
	if cfg.Enhance {
		recogImg = imaging.Enhance(recogImg)
		p.Log.Debug().Msg("applied enhancement pass")
	}

	result := &Result{ScaleFactor: factor}

	// The recognizer reads from disk, so a transformed image has to be
	// materialized. The upscaled copy is persisted beside the input
	// unless suppressed; a suppressed or enhance-only copy goes to a
	// temp file that is removed afterwards.
	recogPath := inputPath
	if factor > 1 || cfg.Enhance {
		persist := factor > 1 && cfg.Upscale.SaveCopy
		recogPath, err = p.materialize(recogImg, inputPath, persist)
		if err != nil {
			return nil, err
		}
		if persist {
			result.UpscaledPath = recogPath
			p.Log.Info().Str("path", recogPath).Msg("saved upscaled copy")
		} else {
			defer os.Remove(recogPath)
		}
	}

	// Recognizer invocation.
	outputDir := cfg.Recognizer.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(inputPath), "audiveris_output")
	}
	p.Log.Info().Str("engine", p.Engine.Name()).Str("output_dir", outputDir).
		Msg("running recognizer")
	recogOutput, err := p.Engine.Recognize(ctx, recogPath, outputDir)
	if err != nil {
		return nil, err
	}
	result.RecognizerOutput = recogOutput

	// Symbol extraction.
	detections, err := score.ParseRecognizerOutput(recogOutput)
	if err != nil {
		return nil, err
	}
	p.Log.Info().Int("symbols", len(detections)).Msg("parsed recognizer output")

	// Coordinate space policy: either annotate the image the recognizer
	// saw, or map the boxes back onto the original resolution.
	target := recogImg
	if cfg.Annotate.Space == config.SpaceOriginal && factor > 1 {
		target = original
		for i := range detections {
			detections[i].Bounds = detections[i].Bounds.Scale(factor)
		}
	}
	result.Detections = detections
	result.Counts = score.CountByType(detections)

	annotated := imaging.Annotate(target, detections, imaging.Options{
		LineWidth: cfg.Annotate.LineWidth,
		Labels:    cfg.Annotate.Labels,
		Banner:    cfg.Annotate.Banner,
	})

	if cfg.Annotate.TextRegions {
		regions, err := p.textRegions(recogPath, factor)
		if err != nil {
			return nil, err
		}
		result.TextRegions = regions
		drawTextRegions(annotated, regions)
	}

	if outputPath == "" {
		outputPath = imaging.DerivedPath(inputPath, "detected")
	}
	if err := imaging.SaveImage(annotated, outputPath); err != nil {
		return nil, err
	}
	result.OutputPath = outputPath
	p.Log.Info().Str("output", outputPath).Int("symbols", len(detections)).
		Msg("annotated image written")

	return result, nil
}

// materialize writes img to disk for the recognizer. With persist true
// the file is the derived _upscaled sibling of inputPath; otherwise a
// temp file with the input's extension.
func (p *Pipeline) materialize(img image.Image, inputPath string, persist bool) (string, error) {
	if persist {
		path := imaging.DerivedPath(inputPath, "upscaled")
		if err := imaging.SaveImage(img, path); err != nil {
			return "", err
		}
		return path, nil
	}

	f, err := os.CreateTemp("", "scoresight-*"+filepath.Ext(inputPath))
	if err != nil {
		return "", fmt.Errorf("creating temp image: %w", err)
	}
	path := f.Name()
	f.Close()
	if err := imaging.SaveImage(img, path); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// textRegions runs the OCR pass against the recognizer's input image and
// maps the regions into the annotation coordinate space.
func (p *Pipeline) textRegions(recogPath string, factor int) ([]ocr.TextRegion, error) {
	regions, err := ocr.DetectTextRegions(recogPath, p.Settings.Annotate.MinTextConf)
	if err != nil {
		return nil, err
	}
	if p.Settings.Annotate.Space == config.SpaceOriginal && factor > 1 {
		for i := range regions {
			regions[i].Bounds = regions[i].Bounds.Scale(factor)
		}
	}
	p.Log.Info().Int("regions", len(regions)).Msg("detected text regions")
	return regions, nil
}

func drawTextRegions(dst *image.RGBA, regions []ocr.TextRegion) {
	c := imaging.TextRegionColor()
	for _, r := range regions {
		imaging.DrawBox(dst, r.Bounds.Rect(), c, 2)
	}
}
