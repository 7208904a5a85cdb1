// Command drizzle combines a stack of dithered exposures into a single
// higher-resolution image using the variable-pixel-linear-reconstruction
// ("drizzle") resampling algorithm.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kestrel-imaging/drizzle/pkg/drizzlecli"
)

func main() {
	var (
		envPath    = flag.String("env", "", "path to a .env file overriding DRIZZLE_* settings")
		kernelFlag = flag.String("kernel", "", "resampling kernel: square, gaussian, point, turbo, lanczos2, lanczos3 (overrides config)")
		scaleFlag  = flag.Float64("scale", 0, "output/input linear scale ratio (overrides config, 0 = use config)")
		outWidth   = flag.Int("width", 0, "output image width in pixels")
		outHeight  = flag.Int("height", 0, "output image height in pixels")
		shiftsFlag = flag.String("shifts", "", "comma-separated dx:dy pairs, one per input frame, e.g. 0:0,0.5:0.3")
		maxDim     = flag.Int("max-dim", 0, "pre-scale loaded frames so neither side exceeds this many pixels (0 = no pre-scale)")
		annotate   = flag.Bool("annotate", false, "stamp a summary label onto the output image")
		output     = flag.String("o", "drizzle_out.png", "output image path")
		update     = flag.Bool("update", false, "check for a newer release and offer to install it")
		repo       = flag.String("update-repo", "kestrel-imaging/drizzle", "GitHub owner/repo to check for updates against")
	)
	flag.Parse()

	cfg, err := drizzlecli.LoadEnvConfig(*envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *kernelFlag != "" {
		k, err := drizzlecli.ParseKernel(*kernelFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		cfg.Kernel = k
	}
	if *scaleFlag != 0 {
		cfg.Scale = *scaleFlag
	}
	if *maxDim != 0 {
		cfg.WorkingMaxDim = *maxDim
	}

	if *update {
		if err := drizzlecli.CheckForUpdates(*repo, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "update check failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: drizzle [flags] frame1.png frame2.png ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	shifts, err := parseShifts(*shiftsFlag, len(paths))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	frames := make([]drizzlecli.Frame, len(paths))
	for i, p := range paths {
		frames[i] = drizzlecli.Frame{Path: p, Shift: shifts[i]}
	}

	if *outWidth == 0 || *outHeight == 0 {
		fmt.Fprintln(os.Stderr, "-width and -height are required")
		os.Exit(2)
	}

	result, err := drizzlecli.Run(cfg, frames, *outWidth, *outHeight, *annotate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drizzle failed: %v\n", err)
		os.Exit(1)
	}

	if err := drizzlecli.SaveFrame(*output, result.Image); err != nil {
		fmt.Fprintf(os.Stderr, "failed writing %s: %v\n", *output, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (%dx%d), %d frames, nskip=%d nmiss=%d\n",
		*output, result.OutWidth, result.OutHeight, result.Frames, result.NSkip, result.NMiss)
}

func parseShifts(spec string, n int) ([]drizzlecli.Shift, error) {
	shifts := make([]drizzlecli.Shift, n)
	if spec == "" {
		return shifts, nil
	}
	parts := strings.Split(spec, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("-shifts has %d entries, want %d (one per input frame)", len(parts), n)
	}
	for i, part := range parts {
		dxdy := strings.SplitN(part, ":", 2)
		if len(dxdy) != 2 {
			return nil, fmt.Errorf("invalid shift %q, want dx:dy", part)
		}
		dx, err := strconv.ParseFloat(dxdy[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dx in %q: %w", part, err)
		}
		dy, err := strconv.ParseFloat(dxdy[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dy in %q: %w", part, err)
		}
		shifts[i] = drizzlecli.Shift{DX: dx, DY: dy}
	}
	return shifts, nil
}
