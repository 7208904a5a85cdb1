// Package affine builds drizzle pixel maps from 2D affine transforms: the
// common case where a frame only needs shifting, rotating, and scaling
// before being combined into an output mosaic.
package affine

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/kestrel-imaging/drizzle/pkg/drizzle"
)

// Transform wraps an f64.Aff3 mapping source (x,y) to destination (x,y):
//
//	xOut = M[0]*x + M[1]*y + M[2]
//	yOut = M[3]*x + M[4]*y + M[5]
type Transform struct {
	M f64.Aff3
}

// Identity returns the transform that maps every point to itself.
func Identity() Transform {
	return Transform{M: f64.Aff3{1, 0, 0, 0, 1, 0}}
}

// Translate returns a pure-shift transform.
func Translate(dx, dy float64) Transform {
	return Transform{M: f64.Aff3{1, 0, dx, 0, 1, dy}}
}

// RotateScale returns a transform that rotates by theta radians about
// (cx, cy) and scales by s, matching the corner/bounds convention the
// rotate command in the image-processing toolkit this engine grew out of
// used for its own inverse-mapped rotation.
func RotateScale(theta, s, cx, cy float64) Transform {
	cos := math.Cos(theta) * s
	sin := math.Sin(theta) * s
	// Forward map: translate to origin, rotate+scale, translate back.
	a, b := cos, -sin
	c, d := sin, cos
	tx := cx - a*cx - b*cy
	ty := cy - c*cx - d*cy
	return Transform{M: f64.Aff3{a, b, tx, c, d, ty}}
}

// Apply forward-maps a single point.
func (t Transform) Apply(x, y float64) (float64, float64) {
	m := t.M
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// BuildPixmap fills a drizzle.Pixmap of the given source dimensions with the
// forward map of t, evaluated at every integer source pixel center. Source
// pixels that fall outside [0,destW)x[0,destH) under the transform are still
// recorded (drizzle clips footprints against the destination itself); only
// non-finite results are marked unmappable, which BuildPixmap never produces
// for an affine transform with a non-degenerate matrix.
func BuildPixmap(t Transform, width, height int) *drizzle.Pixmap {
	pm := drizzle.NewPixmap(width, height)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			ox, oy := t.Apply(float64(i), float64(j))
			pm.Data[j][i] = [2]float64{ox, oy}
		}
	}
	return pm
}

// OutputBounds computes the destination image size that exactly contains the
// transformed footprint of a width x height source, the same corner-rotation
// approach the original rotate command used to size its output canvas.
func OutputBounds(t Transform, width, height int) (outW, outH int) {
	corners := [4][2]float64{
		{-0.5, -0.5},
		{float64(width) - 0.5, -0.5},
		{float64(width) - 0.5, float64(height) - 0.5},
		{-0.5, float64(height) - 0.5},
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		ox, oy := t.Apply(c[0], c[1])
		minX = math.Min(minX, ox)
		maxX = math.Max(maxX, ox)
		minY = math.Min(minY, oy)
		maxY = math.Max(maxY, oy)
	}
	outW = int(math.Ceil(maxX - minX))
	outH = int(math.Ceil(maxY - minY))
	return outW, outH
}
