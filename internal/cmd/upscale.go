package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scoresight/internal/imaging"
)

// upscaleCommand resamples an image without running recognition.
func upscaleCommand(st *state) *cobra.Command {
	var (
		outputPath string
		factor     int
	)

	cmd := &cobra.Command{
		Use:   "upscale <input_image>",
		Short: "Upscale an image for better recognition results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			img, err := imaging.LoadImage(inputPath)
			if err != nil {
				return err
			}
			b := img.Bounds()
			st.log.Info().Int("width", b.Dx()).Int("height", b.Dy()).Msg("original size")

			upscaled := imaging.Upscale(img, factor)
			ub := upscaled.Bounds()
			st.log.Info().Int("width", ub.Dx()).Int("height", ub.Dy()).Msg("new size")

			if outputPath == "" {
				outputPath = imaging.DerivedPath(inputPath, "upscaled")
			}
			if err := imaging.SaveImage(upscaled, outputPath); err != nil {
				return err
			}
			fmt.Printf("Saved to: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path for the upscaled image")
	cmd.Flags().IntVar(&factor, "factor", imaging.DefaultFactor, "Linear scale factor")

	return cmd
}
