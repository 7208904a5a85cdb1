package drizzlecli

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kestrel-imaging/drizzle/pkg/affine"
	"github.com/kestrel-imaging/drizzle/pkg/drizzle"
	"github.com/kestrel-imaging/drizzle/pkg/stdimg"
)

// Shift describes the per-frame registration offset applied ahead of
// drizzling: most multi-exposure stacks are dithered by a fraction of a
// pixel between frames rather than resampled through an arbitrary affine.
type Shift struct {
	DX, DY float64
}

// Frame is one input exposure: the path of its image file and the shift that
// registers it against the first frame in the stack.
type Frame struct {
	Path  string
	Shift Shift
}

// Result summarizes a completed drizzle run across an RGB stack: one
// drizzle.Params run per channel, sharing a single context plane.
type Result struct {
	Image     *image.NRGBA
	NSkip     int
	NMiss     int
	Frames    int
	OutWidth  int
	OutHeight int
}

// Run loads every frame, drizzles each color channel independently with a
// shared context plane, and returns the combined output image plus
// bookkeeping totals. annotate, if true, stamps a one-line summary onto the
// output using the font-rendering path the image toolkit this CLI is built
// on already carries.
func Run(cfg Config, frames []Frame, outWidth, outHeight int, annotate bool) (*Result, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no input frames given")
	}

	outData := [3]drizzle.Plane{
		drizzle.NewPlane(outWidth, outHeight),
		drizzle.NewPlane(outWidth, outHeight),
		drizzle.NewPlane(outWidth, outHeight),
	}
	outCounts := [3]drizzle.Plane{
		drizzle.NewPlane(outWidth, outHeight),
		drizzle.NewPlane(outWidth, outHeight),
		drizzle.NewPlane(outWidth, outHeight),
	}
	var ctx drizzle.ContextPlane

	totalSkip, totalMiss := 0, 0

	for idx, frame := range frames {
		src, err := LoadFrame(frame.Path, cfg.WorkingMaxDim)
		if err != nil {
			return nil, err
		}
		b := src.Bounds()
		w, h := b.Dx(), b.Dy()

		t := affine.Translate(frame.Shift.DX, frame.Shift.DY)
		pm := affine.BuildPixmap(t, w, h)

		if ctx == nil {
			ctx = drizzle.NewContextPlane(outWidth, outHeight, (len(frames)-1)/32+1)
		}

		channels := splitChannels(src, w, h)
		for c := 0; c < 3; c++ {
			p := &drizzle.Params{
				UUID:          idx + 1,
				Kernel:        cfg.Kernel,
				Scale:         cfg.Scale,
				PixelFraction: cfg.PixelFraction,
				WeightScale:   cfg.WeightScale,
				XRange:        drizzle.Range{Min: 0, Max: w - 1},
				YRange:        drizzle.Range{Min: 0, Max: h - 1},
				Data:          channels[c],
				Pixmap:        pm,
				OutputData:    outData[c],
				OutputCounts:  outCounts[c],
				OutputContext: ctx,
			}
			errSink := drizzle.Dobox(p)
			if errSink.Set() {
				return nil, fmt.Errorf("frame %s, channel %d: %s", frame.Path, c, errSink.Message())
			}
			totalSkip += p.NSkip
			totalMiss += p.NMiss
		}
	}

	out := combineChannels(outData, outWidth, outHeight)
	if annotate {
		label := fmt.Sprintf("%s kernel, %d frames", cfg.Kernel, len(frames))
		annotated, err := stdimg.Annotate(out, label, "", 12, 4, outHeight-6, color.NRGBA{R: 255, G: 255, B: 0, A: 255})
		if err == nil {
			out = annotated
		}
	}

	return &Result{
		Image:     out,
		NSkip:     totalSkip,
		NMiss:     totalMiss,
		Frames:    len(frames),
		OutWidth:  outWidth,
		OutHeight: outHeight,
	}, nil
}

// splitChannels decomposes an NRGBA image into three float32 planes in
// drizzle's Plane layout, normalized to [0,1] so the weighted-mean math
// operates on flux-like quantities rather than raw byte counts.
func splitChannels(src *image.NRGBA, w, h int) [3]drizzle.Plane {
	var planes [3]drizzle.Plane
	for c := range planes {
		planes[c] = drizzle.NewPlane(w, h)
	}
	b := src.Bounds()
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			idx := src.PixOffset(b.Min.X+i, b.Min.Y+j)
			planes[0][j][i] = float32(src.Pix[idx+0]) / 255.0
			planes[1][j][i] = float32(src.Pix[idx+1]) / 255.0
			planes[2][j][i] = float32(src.Pix[idx+2]) / 255.0
		}
	}
	return planes
}

func combineChannels(planes [3]drizzle.Plane, w, h int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			idx := out.PixOffset(i, j)
			out.Pix[idx+0] = toByte(planes[0][j][i])
			out.Pix[idx+1] = toByte(planes[1][j][i])
			out.Pix[idx+2] = toByte(planes[2][j][i])
			out.Pix[idx+3] = 255
		}
	}
	return out
}

func toByte(v float32) byte {
	f := v * 255.0
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return byte(f + 0.5)
}
