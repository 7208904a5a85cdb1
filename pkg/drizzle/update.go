package drizzle

// updateData merges a new (flux, weight) contribution into the running
// weighted-average data plane and the counts plane at (ii, jj). This is a
// single-pass, numerically-stable weighted mean: intermediate arithmetic is
// 64-bit, the stored result is rounded down to 32-bit (spec.md §4.5, §9).
//
// Returns true (after populating p.Error) if either plane is
// written out of bounds — that indicates a bug in the scanner or footprint
// calculation, never bad user data, so it is always fatal.
func updateData(p *Params, ii, jj int, d, vc, dow float32) bool {
	if dow == 0 {
		return false
	}

	vcPlusDow := float64(vc) + float64(dow)

	if !p.OutputData.inBounds(ii, jj) {
		p.errorSink().setMessagef("OOB in output_data[%d,%d]", ii, jj)
		return true
	}
	if vc == 0 {
		p.OutputData.set(ii, jj, d)
	} else {
		value := (float64(p.OutputData.get(ii, jj))*float64(vc) + float64(dow)*float64(d)) / vcPlusDow
		p.OutputData.set(ii, jj, float32(value))
	}

	if !p.OutputCounts.inBounds(ii, jj) {
		p.errorSink().setMessagef("OOB in output_counts[%d,%d]", ii, jj)
		return true
	}
	p.OutputCounts.set(ii, jj, float32(vcPlusDow))

	return false
}

// computeBitValue returns the bit, within its 32-bit plane, for input frame
// uuid (1-based). Plane index (1-based) is (uuid-1)/32 + 1.
func computeBitValue(uuid int) uint32 {
	bitNo := (uuid - 1) % 32
	return uint32(1) << uint(bitNo)
}

// computeBitPlane returns the 0-based context-plane index for uuid.
func computeBitPlane(uuid int) int {
	return (uuid - 1) / 32
}

// tagContext sets the uuid's bit in the context plane at (ii, jj), if an
// output context plane is present and the contribution was positive. Bits
// are only ever set, never cleared, during a run (spec.md §3).
func tagContext(p *Params, ii, jj int, dow float32) {
	if p.OutputContext == nil || dow <= 0 {
		return
	}
	plane := computeBitPlane(p.UUID)
	if !p.OutputContext.inBounds(plane, ii, jj) {
		return
	}
	p.OutputContext.setBit(plane, ii, jj, computeBitValue(p.UUID))
}
