package drizzle

// driveRows implements the outer-loop skeleton shared by all five kernel
// drivers (spec.md §4.4): build the scanner, walk its restricted row range,
// and dispatch each normal row to process. nskip/nmiss bookkeeping here
// mirrors the per-status-code caller policy table in spec.md §4.3 exactly;
// per-source-pixel misses (unmappable pixel, zero-overlap footprint) are
// counted by process itself. process returns abort=true on a fatal error
// (an OOB plane write), which stops the outer loop immediately — spec.md §7:
// "the first fatal error short-circuits the outer loops and returns".
func driveRows(p *Params, process func(j, x1, x2 int) (abort bool)) {
	s, ymin, ymax := newImageScanner(p)

	rowWidth := p.XRange.Max - p.XRange.Min + 1
	totalRows := p.YRange.Max - p.YRange.Min + 1

	rangeRows := 0
	if ymax >= ymin {
		rangeRows = ymax - ymin + 1
	}
	p.NSkip = totalRows - rangeRows
	p.NMiss = p.NSkip * rowWidth

	for j := ymin; j <= ymax; j++ {
		status, x1, x2 := s.scanlineLimits(j)
		switch status {
		case scanFinished:
			remaining := ymax + 1 - j
			p.NSkip += remaining
			p.NMiss += remaining * rowWidth
			return
		case scanOutside, scanDegenerate:
			p.NMiss += rowWidth
			p.NSkip++
		default: // scanNormal
			p.NMiss += rowWidth - (x2 - x1 + 1)
			if process(j, x1, x2) {
				return
			}
		}
	}
}
