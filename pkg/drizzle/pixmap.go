package drizzle

import "math"

// Pixmap is the forward source-to-destination coordinate mapping (spec.md
// §3). Data is shaped (H_in, W_in, 2): Data[j][i] = (x_out, y_out) for the
// center of source pixel (i, j). A non-finite component marks the source
// pixel as unmappable. The mapping table itself is an external collaborator
// (spec.md §1) — this type only wraps read access to it.
type Pixmap struct {
	Data [][][2]float64
}

// NewPixmap allocates a zeroed Pixmap of the given source width/height.
func NewPixmap(width, height int) *Pixmap {
	pm := &Pixmap{Data: make([][][2]float64, height)}
	for j := range pm.Data {
		pm.Data[j] = make([][2]float64, width)
	}
	return pm
}

// Width/Height report the source-image dimensions the pixmap was built for.
func (pm *Pixmap) Width() int {
	if len(pm.Data) == 0 {
		return 0
	}
	return len(pm.Data[0])
}

func (pm *Pixmap) Height() int {
	return len(pm.Data)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MapPixel forward-maps the integer source pixel (i, j) to destination
// coordinates (ox, oy). It returns unmappable=true (with ox, oy both 0)
// when either component of Data[j][i] is non-finite.
func (pm *Pixmap) MapPixel(i, j int) (ox, oy float64, unmappable bool) {
	entry := pm.Data[j][i]
	if !finite(entry[0]) || !finite(entry[1]) {
		return 0, 0, true
	}
	return entry[0], entry[1], false
}

// MapPoint forward-maps a possibly-fractional source coordinate (x, y) by
// bilinear interpolation of the four surrounding Data entries. Any
// surrounding entry being non-finite, or (x, y) falling outside the source
// image by more than the one-pixel margin the clamped stencil allows
// (x < -1 or x >= W_in, likewise for y), propagates unmappable.
func (pm *Pixmap) MapPoint(x, y float64) (ox, oy float64, unmappable bool) {
	w, h := pm.Width(), pm.Height()

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1

	// Clamp the stencil to the image so edge pixels (and points exactly on
	// the last row/column) still resolve; points far outside are rejected.
	if x1 < 0 || x0 >= w || y1 < 0 || y0 >= h {
		return 0, 0, true
	}
	cx0 := clampInt(x0, 0, w-1)
	cx1 := clampInt(x1, 0, w-1)
	cy0 := clampInt(y0, 0, h-1)
	cy1 := clampInt(y1, 0, h-1)

	c00 := pm.Data[cy0][cx0]
	c10 := pm.Data[cy0][cx1]
	c01 := pm.Data[cy1][cx0]
	c11 := pm.Data[cy1][cx1]

	if !finite(c00[0]) || !finite(c00[1]) || !finite(c10[0]) || !finite(c10[1]) ||
		!finite(c01[0]) || !finite(c01[1]) || !finite(c11[0]) || !finite(c11[1]) {
		return 0, 0, true
	}

	xFrac := x - float64(x0)
	yFrac := y - float64(y0)

	ox0 := c00[0]*(1-xFrac) + c10[0]*xFrac
	ox1 := c01[0]*(1-xFrac) + c11[0]*xFrac
	oy0 := c00[1]*(1-xFrac) + c10[1]*xFrac
	oy1 := c01[1]*(1-xFrac) + c11[1]*xFrac

	ox = ox0*(1-yFrac) + ox1*yFrac
	oy = oy0*(1-yFrac) + oy1*yFrac
	return ox, oy, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Invert finds a source coordinate (ix, iy) whose forward map is
// approximately (ox, oy), by Newton iteration starting from guess and using
// central-difference Jacobians of MapPoint. It is only used by the scanner
// when clipping the source-image footprint against the destination
// rectangle (spec.md §4.3), never by the kernel drivers. Returns ok=false if
// the map is locally unmappable or the iteration fails to converge within
// the source image bounds.
func (pm *Pixmap) Invert(ox, oy float64, guess [2]float64) (ix, iy float64, ok bool) {
	const (
		maxIter = 30
		eps     = 1e-6
		h       = 0.5
	)

	w, hgt := pm.Width(), pm.Height()
	x, y := guess[0], guess[1]

	for iter := 0; iter < maxIter; iter++ {
		fx, fy, bad := pm.MapPoint(x, y)
		if bad {
			return 0, 0, false
		}
		rx, ry := ox-fx, oy-fy
		if math.Abs(rx) < eps && math.Abs(ry) < eps {
			return clampFloat(x, 0, float64(w-1)), clampFloat(y, 0, float64(hgt-1)), true
		}

		// Central-difference Jacobian of the forward map at (x, y).
		xphOx, xphOy, b1 := pm.MapPoint(x+h, y)
		xmhOx, xmhOy, b2 := pm.MapPoint(x-h, y)
		yphOx, yphOy, b3 := pm.MapPoint(x, y+h)
		ymhOx, ymhOy, b4 := pm.MapPoint(x, y-h)
		if b1 || b2 || b3 || b4 {
			return 0, 0, false
		}
		dfxdx := (xphOx - xmhOx) / (2 * h)
		dfydx := (xphOy - xmhOy) / (2 * h)
		dfxdy := (yphOx - ymhOx) / (2 * h)
		dfydy := (yphOy - ymhOy) / (2 * h)

		det := dfxdx*dfydy - dfxdy*dfydx
		if math.Abs(det) < 1e-12 {
			return 0, 0, false
		}

		dx := (rx*dfydy - ry*dfxdy) / det
		dy := (ry*dfxdx - rx*dfydx) / det

		x += dx
		y += dy

		// Diverged outside any plausible source-image extent.
		if x < -float64(w) || x > 2*float64(w) || y < -float64(hgt) || y > 2*float64(hgt) {
			return 0, 0, false
		}
	}
	return 0, 0, false
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
