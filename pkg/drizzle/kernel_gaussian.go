package drizzle

import "math"

// doKernelGaussian implements the gaussian kernel: flux is spread according
// to a Gaussian centered on the source pixel's destination position
// (spec.md §4.4 "Gaussian kernel"). There is no hard radial truncation —
// every pixel in the square footprint contributes, however small.
func doKernelGaussian(p *Params) *Error {
	const nsig = 2.5

	pfo := nsig * p.PixelFraction / 2.3548 / p.Scale
	pfo = max(pfo, 1.2/p.Scale)

	ac := 1.0 / (p.PixelFraction * p.PixelFraction)
	scale2 := p.Scale * p.Scale
	gaussianEfac := (2.3548 * 2.3548) * scale2 * ac / 2.0
	gaussianEs := gaussianEfac / math.Pi

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

			nxi := clampIntLo(fortranRound(xxi), 0)
			nxa := clampIntHi(fortranRound(xxa), destW-1)
			nyi := clampIntLo(fortranRound(yyi), 0)
			nya := clampIntHi(fortranRound(yya), destH-1)

			d := p.Data.get(i, j) * float32(scale2)

			var w float64
			if p.Weights != nil {
				w = float64(p.Weights.get(i, j)) * p.WeightScale
			} else {
				w = 1.0
			}

			nhit := 0
			for jj := nyi; jj <= nya; jj++ {
				ddy := oy - float64(jj)
				for ii := nxi; ii <= nxa; ii++ {
					ddx := ox - float64(ii)
					r2 := ddx*ddx + ddy*ddy
					dover := gaussianEs * math.Exp(-r2*gaussianEfac)

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
