package drizzle

// Geometry primitives used by the kernel drivers (spec.md §4.1). These are
// the leaves of the engine: no allocation, no error path, pure arithmetic.

// over returns the area of the intersection of the axis-aligned rectangle
// [xmin,xmax]x[ymin,ymax] with the unit cell centered at integer (i,j).
// Requires xmin <= xmax and ymin <= ymax. Used by the turbo kernel.
func over(i, j int, xmin, xmax, ymin, ymax float64) float64 {
	dx := min(xmax, float64(i)+0.5) - max(xmin, float64(i)-0.5)
	dy := min(ymax, float64(j)+0.5) - max(ymin, float64(j)-0.5)

	if dx > 0.0 && dy > 0.0 {
		return dx * dy
	}
	return 0.0
}

// sgarea computes the signed area between one polygon edge and the x-axis,
// clipped to the unit square [0,1]^2. sgnDx records the x-direction of the
// directed edge (+1/-1) so that summing sgarea over a clockwise polygon's
// edges yields the polygon's area inside the unit square. Used by boxer.
//
// invSlope == 0 (a purely vertical segment) contributes zero: this is
// correct for the signed-area decomposition (a vertical segment bounds no
// area under it in x), not an oversight — see spec.md §9.
func sgarea(x1, y1, x2, y2 float64, sgnDx int, slope, invSlope float64) float64 {
	if invSlope == 0 {
		return 0.0
	}

	var xlo, xhi float64
	if sgnDx < 0 {
		xlo, xhi = x2, x1
	} else {
		xlo, xhi = x1, x2
	}

	if xlo >= 1.0 || xhi <= 0.0 {
		return 0.0
	}

	xlo = max(xlo, 0.0)
	xhi = min(xhi, 1.0)

	c := y1 - slope*x1
	ylo := slope*xlo + c
	yhi := slope*xhi + c

	if ylo <= 0.0 && yhi <= 0.0 {
		return 0.0
	}

	if ylo >= 1.0 && yhi >= 1.0 {
		return float64(sgnDx) * (xhi - xlo)
	}

	if ylo < 0.0 {
		ylo = 0.0
		xlo = -c * invSlope
	}
	if yhi < 0.0 {
		yhi = 0.0
		xhi = -c * invSlope
	}

	if ylo <= 1.0 {
		if yhi <= 1.0 {
			return float64(sgnDx) * 0.5 * (xhi - xlo) * (yhi + ylo)
		}
		xtop := (1.0 - c) * invSlope
		return float64(sgnDx) * (0.5*(xtop-xlo)*(1.0+ylo) + (xhi - xtop))
	}

	xtop := (1.0 - c) * invSlope
	return float64(sgnDx) * (0.5*(xhi-xtop)*(1.0+yhi) + (xtop - xlo))
}

// boxer computes the area common to the clockwise quadrilateral (x,y) and
// the unit cell centered at (is, js), by summing sgarea over the four
// directed edges translated so that cell becomes the origin unit square.
// Pre-computing slope/invSlope/sgnDx per edge is the caller's job since
// they're constant across the inner loop over output pixels.
func boxer(is, js float64, x, y [4]float64, sgnDx [4]int, slope, invSlope [4]float64) float64 {
	is -= 0.5
	js -= 0.5

	var px, py [4]float64
	for i := 0; i < 4; i++ {
		px[i] = x[i] - is
		py[i] = y[i] - js
	}

	var sum float64
	for i := 0; i < 4; i++ {
		next := (i + 1) & 0x3
		sum += sgarea(px[i], py[i], px[next], py[next], sgnDx[i], slope[i], invSlope[i])
	}
	return sum
}
