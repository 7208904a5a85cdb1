package drizzlecli

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/kestrel-imaging/drizzle/pkg/stdimg"
)

// PromptLine displays a prompt and reads a full line of input from the user,
// trimmed of surrounding whitespace.
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LoadFrame decodes a single input frame and converts it to *image.NRGBA,
// the plane format the drizzle engine's pixel accessors expect. If maxDim is
// positive and either source dimension exceeds it, the frame is pre-scaled
// to a convenient working resolution before the affine-pixmap builder ever
// sees it, the same way the image toolkit this CLI grew out of resampled
// before handing pixels to a downstream command.
func LoadFrame(path string, maxDim int) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	nrgba := stdimg.ToNRGBA(img)
	return prescale(nrgba, maxDim), nil
}

// prescale resizes src so its longer side is at most maxDim, using
// CatmullRom when shrinking (sharper than bilinear for downscaling) and
// BiLinear when growing. maxDim <= 0 or a source already within bounds is a
// no-op.
func prescale(src *image.NRGBA, maxDim int) *image.NRGBA {
	if maxDim <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	scale := float64(maxDim) / float64(w)
	if hs := float64(maxDim) / float64(h); hs < scale {
		scale = hs
	}
	newW := int(float64(w)*scale + 0.5)
	newH := int(float64(h)*scale + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	scaler := draw.CatmullRom
	if newW > w || newH > h {
		scaler = draw.BiLinear
	}
	scaler.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// SaveFrame writes img to path, choosing an encoder from the file extension
// and defaulting to PNG.
func SaveFrame(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		return gif.Encode(f, img, nil)
	default:
		return png.Encode(f, img)
	}
}
