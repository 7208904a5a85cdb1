package drizzle

import "testing"

func newUniformParams(kernel KernelTag, n int, value float32, pm *Pixmap) *Params {
	data := NewPlane(n, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			data.set(i, j, value)
		}
	}
	return &Params{
		UUID:          1,
		Kernel:        kernel,
		Scale:         1.0,
		PixelFraction: 1.0,
		WeightScale:   1.0,
		XRange:        Range{0, n - 1},
		YRange:        Range{0, n - 1},
		Data:          data,
		Pixmap:        pm,
		OutputData:    NewPlane(n+2, n+2),
		OutputCounts:  NewPlane(n+2, n+2),
	}
}

// A uniform input field must drizzle back to the same uniform value at any
// fully-covered interior output pixel, independent of kernel or footprint
// shift, since a weighted mean of identical contributions is that value.
func TestUniformFieldReproducesAtInterior(t *testing.T) {
	kernels := []KernelTag{KernelPoint, KernelTurbo, KernelGaussian, KernelSquare, KernelLanczos2, KernelLanczos3}
	const n = 9
	const value = float32(5.0)

	for _, k := range kernels {
		pm := newIdentityPixmap(n, n)
		p := newUniformParams(k, n, value, pm)
		errSink := Dobox(p)
		if errSink.Set() {
			t.Fatalf("%v: Dobox returned error: %s", k, errSink.Message())
		}
		// Interior pixel, far from every boundary, should have full coverage.
		got := p.OutputData.get(4, 4)
		if abs64(float64(got)-float64(value)) > 1e-3 {
			t.Errorf("%v: output_data[4,4] = %v, want %v", k, got, value)
		}
		if p.OutputCounts.get(4, 4) <= 0 {
			t.Errorf("%v: output_counts[4,4] = %v, want > 0", k, p.OutputCounts.get(4, 4))
		}
	}
}

func TestUniformFieldReproducesUnderShift(t *testing.T) {
	kernels := []KernelTag{KernelTurbo, KernelGaussian, KernelSquare, KernelLanczos2}
	const n = 9
	const value = float32(3.0)

	for _, k := range kernels {
		pm := newShiftedPixmap(n, n, 0.3, -0.2)
		p := newUniformParams(k, n, value, pm)
		errSink := Dobox(p)
		if errSink.Set() {
			t.Fatalf("%v: Dobox returned error: %s", k, errSink.Message())
		}
		got := p.OutputData.get(4, 4)
		if abs64(float64(got)-float64(value)) > 1e-3 {
			t.Errorf("%v: output_data[4,4] under shift = %v, want %v", k, got, value)
		}
	}
}

func TestPointKernelExactPixelPlacement(t *testing.T) {
	const n = 5
	pm := newIdentityPixmap(n, n)
	data := NewPlane(n, n)
	data.set(2, 2, 9.0)
	p := &Params{
		Kernel:        KernelPoint,
		Scale:         1.0,
		PixelFraction: 1.0,
		WeightScale:   1.0,
		XRange:        Range{0, n - 1},
		YRange:        Range{0, n - 1},
		Data:          data,
		Pixmap:        pm,
		OutputData:    NewPlane(n, n),
		OutputCounts:  NewPlane(n, n),
	}
	if errSink := Dobox(p); errSink.Set() {
		t.Fatalf("Dobox returned error: %s", errSink.Message())
	}
	if got := p.OutputData.get(2, 2); got != 9.0 {
		t.Fatalf("output_data[2,2] = %v, want 9.0", got)
	}
	if got := p.OutputCounts.get(2, 2); got != 1.0 {
		t.Fatalf("output_counts[2,2] = %v, want 1.0", got)
	}
}

func TestPointKernelHalfPixelShiftRoundsAwayFromZero(t *testing.T) {
	const n = 5
	pm := newShiftedPixmap(n, n, 0.5, 0.5)
	data := NewPlane(n, n)
	data.set(2, 2, 1.0)
	p := &Params{
		Kernel:        KernelPoint,
		Scale:         1.0,
		PixelFraction: 1.0,
		WeightScale:   1.0,
		XRange:        Range{0, n - 1},
		YRange:        Range{0, n - 1},
		Data:          data,
		Pixmap:        pm,
		OutputData:    NewPlane(n + 1, n + 1),
		OutputCounts:  NewPlane(n + 1, n + 1),
	}
	if errSink := Dobox(p); errSink.Set() {
		t.Fatalf("Dobox returned error: %s", errSink.Message())
	}
	// (2.5, 2.5) rounds away from zero to (3, 3), not banker's-rounds-to-even (2,2).
	if got := p.OutputData.get(3, 3); got != 1.0 {
		t.Fatalf("output_data[3,3] = %v, want 1.0 (Fortran rounding)", got)
	}
	if got := p.OutputData.get(2, 2); got != 0.0 {
		t.Fatalf("output_data[2,2] = %v, want 0.0 (flux should not land here)", got)
	}
}

func TestSquareKernelExactUnitOverlap(t *testing.T) {
	const n = 5
	pm := newIdentityPixmap(n, n)
	data := NewPlane(n, n)
	data.set(2, 2, 4.0)
	p := &Params{
		Kernel:        KernelSquare,
		Scale:         1.0,
		PixelFraction: 1.0,
		WeightScale:   1.0,
		XRange:        Range{0, n - 1},
		YRange:        Range{0, n - 1},
		Data:          data,
		Pixmap:        pm,
		OutputData:    NewPlane(n, n),
		OutputCounts:  NewPlane(n, n),
	}
	if errSink := Dobox(p); errSink.Set() {
		t.Fatalf("Dobox returned error: %s", errSink.Message())
	}
	if got := p.OutputData.get(2, 2); abs64(float64(got)-4.0) > 1e-6 {
		t.Fatalf("output_data[2,2] = %v, want 4.0", got)
	}
	if got := p.OutputCounts.get(2, 2); abs64(float64(got)-1.0) > 1e-6 {
		t.Fatalf("output_counts[2,2] = %v, want 1.0", got)
	}
	// Under an exactly-aligned map a neighboring cell receives only the unit
	// weight of its own source pixel, nothing spilled over from (2,2).
	if got := p.OutputCounts.get(1, 2); got != 1 {
		t.Fatalf("output_counts[1,2] = %v, want 1", got)
	}
}

func TestAllUnmappableSourceSkipsEveryPixel(t *testing.T) {
	const n = 4
	pm := NewPixmap(n, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			pm.Data[j][i] = [2]float64{nan(), nan()}
		}
	}
	data := NewPlane(n, n)
	p := &Params{
		Kernel:        KernelSquare,
		Scale:         1.0,
		PixelFraction: 1.0,
		WeightScale:   1.0,
		XRange:        Range{0, n - 1},
		YRange:        Range{0, n - 1},
		Data:          data,
		Pixmap:        pm,
		OutputData:    NewPlane(n, n),
		OutputCounts:  NewPlane(n, n),
	}
	errSink := Dobox(p)
	if errSink.Set() {
		t.Fatalf("unmappable pixmap should not produce a fatal error, got: %s", errSink.Message())
	}
	if p.NMiss != n*n {
		t.Fatalf("NMiss = %d, want %d (every source pixel unmappable)", p.NMiss, n*n)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if p.OutputCounts.get(i, j) != 0 {
				t.Fatalf("output_counts[%d,%d] = %v, want 0 when nothing was mappable", i, j, p.OutputCounts.get(i, j))
			}
		}
	}
}

func TestContextPlaneTagsDistinctBitsWithoutClobbering(t *testing.T) {
	const n = 4
	pm := newIdentityPixmap(n, n)
	ctx := NewContextPlane(n, n, 1)

	data1 := NewPlane(n, n)
	data1.set(1, 1, 1.0)
	p1 := &Params{
		UUID:          1,
		Kernel:        KernelPoint,
		Scale:         1.0,
		PixelFraction: 1.0,
		WeightScale:   1.0,
		XRange:        Range{0, n - 1},
		YRange:        Range{0, n - 1},
		Data:          data1,
		Pixmap:        pm,
		OutputData:    NewPlane(n, n),
		OutputCounts:  NewPlane(n, n),
		OutputContext: ctx,
	}
	if errSink := Dobox(p1); errSink.Set() {
		t.Fatalf("Dobox (uuid 1) returned error: %s", errSink.Message())
	}

	data2 := NewPlane(n, n)
	data2.set(1, 1, 1.0)
	p2 := &Params{
		UUID:          2,
		Kernel:        KernelPoint,
		Scale:         1.0,
		PixelFraction: 1.0,
		WeightScale:   1.0,
		XRange:        Range{0, n - 1},
		YRange:        Range{0, n - 1},
		Data:          data2,
		Pixmap:        pm,
		OutputData:    p1.OutputData,
		OutputCounts:  p1.OutputCounts,
		OutputContext: ctx,
	}
	if errSink := Dobox(p2); errSink.Set() {
		t.Fatalf("Dobox (uuid 2) returned error: %s", errSink.Message())
	}

	bits := ctx[0][1][1]
	if bits&computeBitValue(1) == 0 {
		t.Fatalf("context bit for uuid 1 was cleared by the second run")
	}
	if bits&computeBitValue(2) == 0 {
		t.Fatalf("context bit for uuid 2 was not set")
	}
}

func TestDoboxRejectsInvalidKernel(t *testing.T) {
	p := &Params{
		Kernel:       KernelTag(99),
		Data:         NewPlane(2, 2),
		Pixmap:       newIdentityPixmap(2, 2),
		OutputData:   NewPlane(2, 2),
		OutputCounts: NewPlane(2, 2),
		XRange:       Range{0, 1},
		YRange:       Range{0, 1},
	}
	errSink := Dobox(p)
	if !errSink.Set() {
		t.Fatalf("expected an error for an invalid kernel tag")
	}
}
