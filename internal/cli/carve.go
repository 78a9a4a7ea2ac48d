package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/seam-mcp/internal/imaging"
	"github.com/ironsheep/seam-mcp/internal/ocr"
	"github.com/ironsheep/seam-mcp/internal/seam"
)

// carveOpts holds the flags of the carve command.
type carveOpts struct {
	in          string // source image
	out         string // destination; format from extension
	width       int    // target width, 0 keeps it
	height      int    // target height, 0 keeps it
	protectText bool   // keep seams out of detected text
}

func newCarveCmd() *cobra.Command {
	var opts carveOpts

	cmd := &cobra.Command{
		Use:   "carve",
		Short: "Seam-carve an image to a smaller size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCarve(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.in, "in", "i", "", "input image")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output image (png, jpg, gif, tif, bmp)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "target width in pixels (0 keeps the width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "target height in pixels (0 keeps the height)")
	cmd.Flags().BoolVar(&opts.protectText, "protect-text", false, "detect text and keep seams out of it")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runCarve(cmd *cobra.Command, opts *carveOpts) error {
	if opts.width == 0 && opts.height == 0 {
		return errors.New("nothing to do: set --width and/or --height")
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	img, err := imaging.NewImageCache(cfg.MaxPixels).Load(opts.in)
	if err != nil {
		return err
	}

	carve := imaging.CarveOptions{Width: opts.width, Height: opts.height, Logger: logger}
	if opts.protectText {
		d := &ocr.Detector{Language: cfg.OCRLanguage, MinConfidence: cfg.OCRMinConfidence, Logger: logger}
		if carve.Protect, err = d.Detect(img); err != nil {
			return fmt.Errorf("detect text: %w", err)
		}
		logger.Info("protecting text", "regions", len(carve.Protect))
	}

	prog := newProgress(logger)
	res, out, err := imaging.Carve(img, carve)
	if err != nil {
		return err
	}
	if err := imaging.Save(out, opts.out); err != nil {
		return err
	}

	prog.done("carved", "out", opts.out,
		"from", fmt.Sprintf("%dx%d", res.OriginalWidth, res.OriginalHeight),
		"to", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"seams", res.SeamsRemoved)
	return nil
}

func newEnergyCmd() *cobra.Command {
	var in, out string
	var heatmap bool

	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Render the energy map of an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrid(cmd, in)
			if err != nil {
				return err
			}
			e := seam.ComputeEnergy(g)
			if err := imaging.Save(imaging.RenderEnergy(e, heatmap), out); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("energy map written", "out", out, "max", e.Max())
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "input image")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image")
	cmd.Flags().BoolVar(&heatmap, "heatmap", false, "render a blue-to-red heatmap instead of grayscale")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newSeamCmd() *cobra.Command {
	var in, out, direction, color string

	cmd := &cobra.Command{
		Use:   "seam",
		Short: "Draw the minimum-energy seam over an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := seam.ParseOrientation(direction)
			if err != nil {
				return err
			}
			if color == "" {
				color = configFromContext(cmd.Context()).OverlayColor
			}

			g, err := loadGrid(cmd, in)
			if err != nil {
				return err
			}
			res, err := imaging.FindSeam(g.Image(), o)
			if err != nil {
				return err
			}

			canvas := g.Image()
			imaging.DrawSeam(canvas, res.Seam, o, imaging.ParseSeamColor(color))
			if err := imaging.Save(canvas, out); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("seam drawn", "out", out, "direction", o, "cost", res.Cost)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "input image")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image")
	cmd.Flags().StringVarP(&direction, "direction", "d", "vertical", "seam direction: vertical or horizontal")
	cmd.Flags().StringVar(&color, "color", "", "seam color as #RRGGBB (default from config)")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func loadGrid(cmd *cobra.Command, path string) (*seam.Grid, error) {
	return imaging.NewImageCache(configFromContext(cmd.Context()).MaxPixels).LoadGrid(path)
}
