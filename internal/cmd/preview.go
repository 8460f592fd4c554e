package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scoresight/internal/pipeline"
	"scoresight/internal/score"
)

// previewCommand draws mock or saved detections without a recognizer,
// so the annotation output can be validated before Audiveris is set up.
func previewCommand(st *state) *cobra.Command {
	var (
		outputPath     string
		detectionsFile string
	)

	cmd := &cobra.Command{
		Use:   "preview <input_image>",
		Short: "Annotate an image from mock or saved detections (no recognizer)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dets []score.Detection
			if detectionsFile != "" {
				var err error
				dets, err = pipeline.LoadDetections(detectionsFile)
				if err != nil {
					return err
				}
			}

			out, err := pipeline.Preview(st.settings, args[0], outputPath, dets)
			if err != nil {
				return err
			}
			fmt.Printf("Preview saved to: %s\n", out)
			fmt.Println("This output uses mock data; install Audiveris for real detection.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path for the preview image")
	cmd.Flags().StringVar(&detectionsFile, "detections", "", "JSON file with detections to draw")

	return cmd
}
