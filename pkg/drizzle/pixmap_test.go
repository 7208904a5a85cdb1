package drizzle

import "testing"

func newIdentityPixmap(w, h int) *Pixmap {
	pm := NewPixmap(w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			pm.Data[j][i] = [2]float64{float64(i), float64(j)}
		}
	}
	return pm
}

func newShiftedPixmap(w, h int, dx, dy float64) *Pixmap {
	pm := NewPixmap(w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			pm.Data[j][i] = [2]float64{float64(i) + dx, float64(j) + dy}
		}
	}
	return pm
}

func TestMapPixelIdentity(t *testing.T) {
	pm := newIdentityPixmap(10, 10)
	ox, oy, bad := pm.MapPixel(3, 7)
	if bad {
		t.Fatalf("MapPixel reported unmappable for an in-bounds identity entry")
	}
	if ox != 3 || oy != 7 {
		t.Fatalf("MapPixel(3,7) = (%v,%v), want (3,7)", ox, oy)
	}
}

func TestMapPixelUnmappable(t *testing.T) {
	pm := newIdentityPixmap(4, 4)
	pm.Data[2][2][0] = nan()
	_, _, bad := pm.MapPixel(2, 2)
	if !bad {
		t.Fatalf("MapPixel expected unmappable for a NaN entry")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestMapPointIdentityInterpolatesExactly(t *testing.T) {
	pm := newIdentityPixmap(10, 10)
	ox, oy, bad := pm.MapPoint(3.5, 4.25)
	if bad {
		t.Fatalf("MapPoint reported unmappable inside the identity grid")
	}
	if abs64(ox-3.5) > 1e-9 || abs64(oy-4.25) > 1e-9 {
		t.Fatalf("MapPoint(3.5,4.25) = (%v,%v), want (3.5,4.25)", ox, oy)
	}
}

func TestMapPointOutOfBoundsIsUnmappable(t *testing.T) {
	pm := newIdentityPixmap(4, 4)
	_, _, bad := pm.MapPoint(-5, -5)
	if !bad {
		t.Fatalf("MapPoint expected unmappable far outside the source image")
	}
}

func TestInvertRoundTripsOnIdentity(t *testing.T) {
	pm := newIdentityPixmap(20, 20)
	ix, iy, ok := pm.Invert(7.3, 11.6, [2]float64{7, 11})
	if !ok {
		t.Fatalf("Invert failed to converge on an identity map")
	}
	if abs64(ix-7.3) > 1e-4 || abs64(iy-11.6) > 1e-4 {
		t.Fatalf("Invert(7.3,11.6) = (%v,%v), want close to (7.3,11.6)", ix, iy)
	}
}

func TestInvertRoundTripsOnShifted(t *testing.T) {
	pm := newShiftedPixmap(20, 20, 2.0, -1.5)
	ix, iy, ok := pm.Invert(9.0, 6.0, [2]float64{7, 7})
	if !ok {
		t.Fatalf("Invert failed to converge on a shifted map")
	}
	if abs64(ix-7.0) > 1e-4 || abs64(iy-7.5) > 1e-4 {
		t.Fatalf("Invert(9,6) = (%v,%v), want close to (7,7.5)", ix, iy)
	}
}
