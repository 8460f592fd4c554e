package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scoresight/internal/pipeline"
	"scoresight/internal/recognizer"
	"scoresight/internal/score"
)

// detectCommand runs the full pipeline on one image.
func detectCommand(st *state) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "detect <input_image>",
		Short: "Recognize music symbols and write an annotated copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := &recognizer.Audiveris{
				Path:    st.settings.Recognizer.Path,
				Timeout: st.settings.Recognizer.Timeout,
			}

			p := pipeline.New(engine, st.settings, st.log)
			res, err := p.Run(cmd.Context(), args[0], outputPath)
			if err != nil {
				return describeFailure(err)
			}

			printSummary(res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path for the annotated output image")
	cmd.Flags().StringP("audiveris", "a", "", "Path to the Audiveris executable or .jar")
	cmd.Flags().Duration("timeout", 5*time.Minute, "Recognizer timeout")
	cmd.Flags().Bool("enhance", false, "Apply grayscale/contrast/sharpen before recognition")
	cmd.Flags().String("space", "recognizer", "Annotation coordinate space: recognizer or original")
	cmd.Flags().Bool("text-regions", false, "Also box OCR-detected text regions")
	cmd.Flags().Bool("banner", false, "Draw a summary banner on the output")
	cmd.Flags().Int("factor", 4, "Upscale factor applied below the resolution threshold")
	cmd.Flags().Bool("upscaled-copy", true, "Persist the upscaled copy beside the input")

	bindings := map[string]string{
		"recognizer.path":      "audiveris",
		"recognizer.timeout":   "timeout",
		"enhance":              "enhance",
		"annotate.space":       "space",
		"annotate.textregions": "text-regions",
		"annotate.banner":      "banner",
		"upscale.factor":       "factor",
		"upscale.savecopy":     "upscaled-copy",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			cobra.CheckErr(err)
		}
	}

	return cmd
}

// describeFailure attaches remediation context to the known failure
// classes before they surface to the user.
func describeFailure(err error) error {
	switch {
	case errors.Is(err, recognizer.ErrNotFound):
		return err
	case errors.Is(err, recognizer.ErrFailed):
		return fmt.Errorf("recognition did not complete: %w", err)
	case errors.Is(err, recognizer.ErrNoOutput), errors.Is(err, score.ErrNoSheets):
		return fmt.Errorf("recognizer ran but produced nothing usable: %w", err)
	}
	return err
}

func printSummary(res *pipeline.Result) {
	fmt.Printf("Output saved to: %s\n", res.OutputPath)
	if res.UpscaledPath != "" {
		fmt.Printf("Upscaled copy: %s (factor %d)\n", res.UpscaledPath, res.ScaleFactor)
	}
	fmt.Printf("Total symbols detected: %d\n", len(res.Detections))
	for _, t := range []score.SymbolType{score.Notehead, score.Sharp, score.Flat, score.Natural} {
		if n := res.Counts[t]; n > 0 {
			fmt.Printf("  %s (%s): %d\n", t, t.Label(), n)
		}
	}
	if len(res.TextRegions) > 0 {
		fmt.Printf("Text regions: %d\n", len(res.TextRegions))
	}
}
