package drizzle

// doKernelTurbo implements the turbo kernel: flux is spread evenly over an
// axis-aligned square approximating the shrunken, scaled source pixel
// (spec.md §4.4 "Turbo kernel"). Fast because it reuses the simpler
// aligned-rectangle overlap (over) instead of boxer's general quadrilateral
// overlap.
func doKernelTurbo(p *Params) *Error {
	pfo := p.PixelFraction / p.Scale / 2.0
	ac := 1.0 / (p.PixelFraction * p.PixelFraction)
	scale2 := p.Scale * p.Scale
	destW, destH := p.outputSize()

	driveRows(p, func(j, x1, x2 int) bool {
		for i := x1; i <= x2; i++ {
			ox, oy, bad := p.Pixmap.MapPixel(i, j)
			if bad {
				p.NMiss++
				continue
			}

			xxi := ox - pfo
			xxa := ox + pfo
			yyi := oy - pfo
			yya := oy + pfo

			iis := clampIntLo(fortranRound(xxi), 0)
			iie := clampIntHi(fortranRound(xxa), destW-1)
			jjs := clampIntLo(fortranRound(yyi), 0)
			jje := clampIntHi(fortranRound(yya), destH-1)

			d := p.Data.get(i, j) * float32(scale2)

			var w float64
			if p.Weights != nil {
				w = float64(p.Weights.get(i, j)) * p.WeightScale
			} else {
				w = 1.0
			}

			nhit := 0
			for jj := jjs; jj <= jje; jj++ {
				for ii := iis; ii <= iie; ii++ {
					dover := over(ii, jj, xxi, xxa, yyi, yya)
					if dover <= 0.0 {
						continue
					}
					dover *= scale2 * ac

					nhit++
					vc := p.OutputCounts.get(ii, jj)
					dow := float32(dover * w)

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
