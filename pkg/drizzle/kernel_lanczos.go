package drizzle

// doKernelLanczos implements both lanczos2 and lanczos3 (spec.md §4.4
// "Lanczos kernel"): the driver is shared, parameterized by the window
// order the kernel tag selects. A 512-entry lookup table of the 1D Lanczos
// function is built at entry; index clamping is documented in lanczos.go.
func doKernelLanczos(p *Params) *Error {
	logf("starting do_kernel_lanczos")
	defer logf("ending do_kernel_lanczos")

	const del = 0.01

	order := 2
	if p.Kernel == KernelLanczos3 {
		order = 3
	}

	pfo := float64(order) * p.PixelFraction / p.Scale
	scale2 := p.Scale * p.Scale
	lut := newLanczosLUT(order, del)
	sdp := p.Scale / del / p.PixelFraction

	destW, destH := p.outputSize()
	const dx, dy = 1.0, 1.0

	driveRows(p, func(j, x1, x2 int) bool {
		for i := x1; i <= x2; i++ {
			xx, yy, bad := p.Pixmap.MapPixel(i, j)
			if bad {
				p.NMiss++
				continue
			}

			xxi := xx - dx - pfo
			xxa := xx - dx + pfo
			yyi := yy - dy - pfo
			yya := yy - dy + pfo

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
				for ii := nxi; ii <= nxa; ii++ {
					ix := fortranRound(abs64(xx-float64(ii))*sdp) + 1
					iy := fortranRound(abs64(yy-float64(jj))*sdp) + 1

					dover := float64(lut.at(ix)) * float64(lut.at(iy))

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

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
