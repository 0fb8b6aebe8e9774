// Command pixelctl runs a single pixel transformation on image files from the
// command line.
//
// Usage:
//
//	pixelctl filter   -o out.png --preset sharpen in.png
//	pixelctl rotate   -o out.png --angle 45 in.png
//	pixelctl scale    -o out.png --ratio 0.5 in.png
//	pixelctl segment  -o out.png --count 8 [--seed 1] in.png
//	pixelctl anaglyph -o out.png left.png right.png
//
// The output format follows the extension of -o (png, jpg or bmp).
package main

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-tools-mcp/internal/anaglyph"
	"github.com/ironsheep/pixel-tools-mcp/internal/config"
	"github.com/ironsheep/pixel-tools-mcp/internal/convolve"
	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
	"github.com/ironsheep/pixel-tools-mcp/internal/segment"
	"github.com/ironsheep/pixel-tools-mcp/internal/transform"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if err := newRootCmd(cfg, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries the state shared by every subcommand.
type cli struct {
	cfg    *config.Config
	out    io.Writer
	output string
}

func newRootCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	c := &cli{cfg: cfg, out: out}

	root := &cobra.Command{
		Use:          "pixelctl",
		Short:        "Apply pixel transformations to image files",
		Version:      Version,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "", "output image path (required)")
	root.PersistentFlags().IntVar(&c.cfg.Workers, "workers", cfg.Workers, "row workers per operation")
	_ = root.MarkPersistentFlagRequired("output")

	root.AddCommand(
		c.filterCmd(),
		c.rotateCmd(),
		c.scaleCmd(),
		c.segmentCmd(),
		c.anaglyphCmd(),
	)
	return root
}

func (c *cli) filterCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "filter <input>",
		Short: "Apply a blur, edge or sharpen convolution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := convolve.ParsePreset(name)
			if err != nil {
				return err
			}
			return c.run(args[0], func(buf *pixel.Buffer) (*pixel.Buffer, error) {
				return convolve.ApplyPreset(buf, preset, convolve.WithWorkers(c.cfg.Workers))
			})
		},
	}
	cmd.Flags().StringVar(&name, "preset", string(convolve.PresetBlur), "filter preset: blur, edge or sharpen")
	return cmd
}

func (c *cli) rotateCmd() *cobra.Command {
	var angle float64
	cmd := &cobra.Command{
		Use:   "rotate <input>",
		Short: "Rotate around the center onto a transparent square canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(args[0], func(buf *pixel.Buffer) (*pixel.Buffer, error) {
				return transform.Rotate(buf, angle, transform.WithWorkers(c.cfg.Workers))
			})
		},
	}
	cmd.Flags().Float64Var(&angle, "angle", 0, "rotation in degrees")
	return cmd
}

func (c *cli) scaleCmd() *cobra.Command {
	var ratio float64
	cmd := &cobra.Command{
		Use:   "scale <input>",
		Short: "Resize by a ratio with nearest-neighbor sampling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(args[0], func(buf *pixel.Buffer) (*pixel.Buffer, error) {
				return transform.Scale(buf, ratio, transform.WithWorkers(c.cfg.Workers))
			})
		},
	}
	cmd.Flags().Float64Var(&ratio, "ratio", 1, "scale ratio, must be positive")
	return cmd
}

func (c *cli) segmentCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "segment <input>",
		Short: "Reduce the image to N representative colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []segment.Option{segment.WithMaxAttempts(c.cfg.SegmentMaxAttempts)}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, segment.WithRand(rand.New(rand.NewPCG(seed, seed))))
			}
			return c.run(args[0], func(buf *pixel.Buffer) (*pixel.Buffer, error) {
				res, err := segment.Segment(buf, count, opts...)
				if err != nil {
					return nil, err
				}
				for _, center := range imaging.Palette(centerPixels(res.Centers)) {
					fmt.Fprintf(c.out, "%s sum=%d\n", center.Hex, center.Sum)
				}
				return res.Buffer, nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 4, "number of segments")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible output")
	return cmd
}

func (c *cli) anaglyphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "anaglyph <left> <right>",
		Short: "Merge a stereo pair into a red/cyan anaglyph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := imaging.OpenBuffer(args[0])
			if err != nil {
				return fmt.Errorf("left image: %w", err)
			}
			right, err := imaging.OpenBuffer(args[1])
			if err != nil {
				return fmt.Errorf("right image: %w", err)
			}
			out, err := anaglyph.ComposeBuffers(left, right)
			if err != nil {
				return err
			}
			return c.save(out)
		},
	}
}

// run loads input, applies op and writes the result to the output path.
func (c *cli) run(input string, op func(*pixel.Buffer) (*pixel.Buffer, error)) error {
	buf, err := imaging.OpenBuffer(input)
	if err != nil {
		return err
	}
	if c.cfg.Debug() {
		log.Printf("loaded %s (%dx%d)", input, buf.Width(), buf.Height())
	}
	out, err := op(buf)
	if err != nil {
		return err
	}
	return c.save(out)
}

func (c *cli) save(buf *pixel.Buffer) error {
	if err := imaging.Save(c.output, buf); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "wrote %s (%dx%d)\n", c.output, buf.Width(), buf.Height())
	return nil
}

func centerPixels(centers []segment.Center) []pixel.Pixel {
	pix := make([]pixel.Pixel, len(centers))
	for i, center := range centers {
		pix[i] = center.Pixel
	}
	return pix
}
