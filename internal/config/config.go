// Package config holds runtime settings, loaded from an optional
// scoresight.yaml file, SCORESIGHT_* environment variables, and command
// line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Settings is the full runtime configuration.
type Settings struct {
	Debug bool // enable debug logging

	Recognizer struct {
		Path      string        // recognizer executable, script, or .jar; empty = discover on PATH
		Timeout   time.Duration // bound on one batch run
		OutputDir string        // recognizer working/output directory; empty = next to the input
	}

	Upscale struct {
		MinWidth  int  // guard threshold, pixels
		MinHeight int  // guard threshold, pixels
		Factor    int  // linear scale applied when below threshold
		SaveCopy  bool // write <name>_upscaled.<ext> beside the input
	}

	Annotate struct {
		LineWidth   int    // rectangle outline thickness
		Labels      bool   // draw symbol label chips
		Banner      bool   // draw the summary banner
		Space       string // "recognizer" or "original" coordinate space
		TextRegions bool   // also box OCR text regions
		MinTextConf float64
	}

	Enhance bool // grayscale/contrast/sharpen pass before recognition
}

// Coordinate space values for Annotate.Space.
const (
	SpaceRecognizer = "recognizer" // annotate the image the recognizer saw (upscaled copy)
	SpaceOriginal   = "original"   // map detections back onto the original image
)

// Load builds Settings from defaults, an optional config file, and the
// environment. Flag bindings are layered on top by the command setup.
func Load() (*Settings, error) {
	setDefaults()

	viper.SetConfigName("scoresight")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := homeConfigDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("scoresight")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine; defaults apply.
	}

	s := &Settings{}
	Sync(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Sync copies viper's current values into the settings struct. Called
// again after flag parsing so command line arguments take precedence.
func Sync(s *Settings) {
	s.Debug = viper.GetBool("debug")

	s.Recognizer.Path = viper.GetString("recognizer.path")
	s.Recognizer.Timeout = viper.GetDuration("recognizer.timeout")
	s.Recognizer.OutputDir = viper.GetString("recognizer.outputdir")

	s.Upscale.MinWidth = viper.GetInt("upscale.minwidth")
	s.Upscale.MinHeight = viper.GetInt("upscale.minheight")
	s.Upscale.Factor = viper.GetInt("upscale.factor")
	s.Upscale.SaveCopy = viper.GetBool("upscale.savecopy")

	s.Annotate.LineWidth = viper.GetInt("annotate.linewidth")
	s.Annotate.Labels = viper.GetBool("annotate.labels")
	s.Annotate.Banner = viper.GetBool("annotate.banner")
	s.Annotate.Space = viper.GetString("annotate.space")
	s.Annotate.TextRegions = viper.GetBool("annotate.textregions")
	s.Annotate.MinTextConf = viper.GetFloat64("annotate.mintextconf")

	s.Enhance = viper.GetBool("enhance")
}

// Validate rejects settings no component can act on.
func (s *Settings) Validate() error {
	if s.Upscale.Factor < 1 {
		return fmt.Errorf("upscale.factor must be >= 1, got %d", s.Upscale.Factor)
	}
	if s.Upscale.MinWidth < 1 || s.Upscale.MinHeight < 1 {
		return fmt.Errorf("upscale thresholds must be positive, got %dx%d",
			s.Upscale.MinWidth, s.Upscale.MinHeight)
	}
	switch s.Annotate.Space {
	case SpaceRecognizer, SpaceOriginal:
	default:
		return fmt.Errorf("annotate.space must be %q or %q, got %q",
			SpaceRecognizer, SpaceOriginal, s.Annotate.Space)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("debug", false)

	viper.SetDefault("recognizer.path", "")
	viper.SetDefault("recognizer.timeout", 5*time.Minute)
	viper.SetDefault("recognizer.outputdir", "")

	viper.SetDefault("upscale.minwidth", 1200)
	viper.SetDefault("upscale.minheight", 600)
	viper.SetDefault("upscale.factor", 4)
	viper.SetDefault("upscale.savecopy", true)

	viper.SetDefault("annotate.linewidth", 3)
	viper.SetDefault("annotate.labels", true)
	viper.SetDefault("annotate.banner", false)
	viper.SetDefault("annotate.space", SpaceRecognizer)
	viper.SetDefault("annotate.textregions", false)
	viper.SetDefault("annotate.mintextconf", 0.5)

	viper.SetDefault("enhance", false)
}

func homeConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "scoresight"), nil
}
