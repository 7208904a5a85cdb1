// Package drizzlecli is the command-line front end: it loads frames from
// disk, builds pixel maps, drives the drizzle engine, and writes the
// combined output image.
package drizzlecli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kestrel-imaging/drizzle/pkg/drizzle"
)

// Config holds the run parameters a drizzle invocation needs, sourced from
// flags with environment-variable (and .env file) fallbacks.
type Config struct {
	Kernel        drizzle.KernelTag
	Scale         float64
	PixelFraction float64
	WeightScale   float64
	OutputWidth   int
	OutputHeight  int

	// WorkingMaxDim caps the longer side of each loaded frame before it
	// reaches the affine-pixmap builder; 0 disables pre-scaling.
	WorkingMaxDim int
}

// DefaultConfig matches the original engine's usual defaults: square kernel,
// unit scale, full pixel fraction, unit weight scale.
func DefaultConfig() Config {
	return Config{
		Kernel:        drizzle.KernelSquare,
		Scale:         1.0,
		PixelFraction: 1.0,
		WeightScale:   1.0,
	}
}

// LoadEnvConfig applies .env (if present) and DRIZZLE_* environment
// variables on top of DefaultConfig. A missing .env file is not an error —
// godotenv.Load's error is swallowed the same way the image toolkit this CLI
// grew out of tolerated a missing dotenv file.
func LoadEnvConfig(envPath string) (Config, error) {
	cfg := DefaultConfig()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("DRIZZLE_KERNEL"); v != "" {
		k, err := ParseKernel(v)
		if err != nil {
			return cfg, err
		}
		cfg.Kernel = k
	}
	if v := os.Getenv("DRIZZLE_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid DRIZZLE_SCALE %q: %w", v, err)
		}
		cfg.Scale = f
	}
	if v := os.Getenv("DRIZZLE_PIXEL_FRACTION"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid DRIZZLE_PIXEL_FRACTION %q: %w", v, err)
		}
		cfg.PixelFraction = f
	}
	if v := os.Getenv("DRIZZLE_WEIGHT_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid DRIZZLE_WEIGHT_SCALE %q: %w", v, err)
		}
		cfg.WeightScale = f
	}
	if v := os.Getenv("DRIZZLE_WORKING_MAX_DIM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid DRIZZLE_WORKING_MAX_DIM %q: %w", v, err)
		}
		cfg.WorkingMaxDim = n
	}
	return cfg, nil
}

// ParseKernel maps a kernel name (case-insensitive) to its tag.
func ParseKernel(name string) (drizzle.KernelTag, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "square":
		return drizzle.KernelSquare, nil
	case "gaussian":
		return drizzle.KernelGaussian, nil
	case "point":
		return drizzle.KernelPoint, nil
	case "turbo":
		return drizzle.KernelTurbo, nil
	case "lanczos2":
		return drizzle.KernelLanczos2, nil
	case "lanczos3":
		return drizzle.KernelLanczos3, nil
	default:
		return 0, fmt.Errorf("unknown kernel %q", name)
	}
}
