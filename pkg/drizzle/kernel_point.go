package drizzle

// doKernelPoint implements the point kernel: all the flux of a source pixel
// is placed at the single nearest destination pixel (spec.md §4.4 "Point
// kernel"). Rounding is Fortran-style (half away from zero).
//
// Deliberately NOT dividing by pixel_fraction² here, unlike turbo and
// gaussian: spec.md §9 leaves it open whether that is intentional "point
// flux" semantics or a historical quirk of the original engine, and
// instructs implementers to preserve current behavior rather than "clean
// it up". This port does the same.
func doKernelPoint(p *Params) *Error {
	scale2 := float32(p.Scale * p.Scale)
	destW, destH := p.outputSize()

	driveRows(p, func(j, x1, x2 int) bool {
		for i := x1; i <= x2; i++ {
			ox, oy, bad := p.Pixmap.MapPixel(i, j)
			if bad {
				p.NMiss++
				continue
			}

			ii := fortranRound(ox)
			jj := fortranRound(oy)
			if ii < 0 || ii >= destW || jj < 0 || jj >= destH {
				p.NMiss++
				continue
			}

			vc := p.OutputCounts.get(ii, jj)
			d := p.Data.get(i, j) * scale2

			var dow float32
			if p.Weights != nil {
				dow = p.Weights.get(i, j) * float32(p.WeightScale)
			} else {
				dow = 1.0
			}

			tagContext(p, ii, jj, dow)

			if updateData(p, ii, jj, d, vc, dow) {
				return true
			}
		}
		return false
	})

	return p.Error
}
