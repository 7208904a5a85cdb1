package drizzle

// doKernelSquare implements the square kernel: the exact intersection area
// between the transformed, shrunken input pixel (a quadrilateral in
// destination space) and each destination unit cell (spec.md §4.4 "Square
// kernel"). This is the highest-fidelity kernel and the one the polygon
// overlap primitives in geometry.go exist for.
func doKernelSquare(p *Params) *Error {
	logf("starting do_kernel_square")
	defer logf("ending do_kernel_square")

	dh := 0.5 * p.PixelFraction
	scale2 := p.Scale * p.Scale
	destW, destH := p.outputSize()

	driveRows(p, func(j, x1, x2 int) bool {
		// Corners are clockwise starting top-left: (i-dh,j+dh), (i+dh,j+dh),
		// (i+dh,j-dh), (i-dh,j-dh), taking y as increasing upward, matching
		// the original engine's yin[1]=yin[0]=j+dh / yin[3]=yin[2]=j-dh.
		yTop := float64(j) + dh
		yBot := float64(j) - dh

		for i := x1; i <= x2; i++ {
			xLeft := float64(i) - dh
			xRight := float64(i) + dh

			xin := [4]float64{xLeft, xRight, xRight, xLeft}
			yin := [4]float64{yTop, yTop, yBot, yBot}
			var xout, yout [4]float64
			missed := false
			for k := 0; k < 4; k++ {
				ox, oy, bad := p.Pixmap.MapPoint(xin[k], yin[k])
				if bad {
					missed = true
					break
				}
				xout[k] = ox
				yout[k] = oy
			}
			if missed {
				p.NMiss++
				continue
			}

			jaco := 0.5 * ((xout[1]-xout[3])*(yout[0]-yout[2]) - (xout[0]-xout[2])*(yout[1]-yout[3]))
			if jaco < 0.0 {
				jaco = -jaco
				xout[1], xout[3] = xout[3], xout[1]
				yout[1], yout[3] = yout[3], yout[1]
			}
			if jaco == 0 {
				p.NMiss++
				continue
			}

			d := p.Data.get(i, j) * float32(scale2)

			var w float64
			if p.Weights != nil {
				w = float64(p.Weights.get(i, j)) * p.WeightScale
			} else {
				w = 1.0
			}

			var sgnDx [4]int
			var slope, invSlope [4]float64
			for k := 0; k < 4; k++ {
				next := (k + 1) & 0x3
				edx := xout[next] - xout[k]
				edy := yout[next] - yout[k]
				if edx >= 0 {
					sgnDx[k] = 1
				} else {
					sgnDx[k] = -1
				}
				slope[k] = edy / edx
				invSlope[k] = edx / edy
			}

			minJJ := clampIntLo(fortranRound(minOf4(yout)), 0)
			maxJJ := clampIntHi(fortranRound(maxOf4(yout)), destH-1)
			minII := clampIntLo(fortranRound(minOf4(xout)), 0)
			maxII := clampIntHi(fortranRound(maxOf4(xout)), destW-1)

			nhit := 0
			for ii := minII; ii <= maxII; ii++ {
				for jj := minJJ; jj <= maxJJ; jj++ {
					dover := boxer(float64(ii), float64(jj), xout, yout, sgnDx, slope, invSlope)
					if dover <= 0.0 {
						continue
					}

					vc := p.OutputCounts.get(ii, jj)
					dover /= jaco
					dow := float32(dover * w)

					nhit++
					tagContext(p, ii, jj, dow)

					if updateData(p, ii, jj, d, vc, dow) {
						return true
					}
				}
			}
			if nhit == 0 {
				p.NMiss++
			}
		}
		return false
	})

	return p.Error
}

func minOf4(v [4]float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf4(v [4]float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
