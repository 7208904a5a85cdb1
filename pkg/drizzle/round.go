package drizzle

import "math"

// fortranRound rounds half away from zero, matching Fortran's NINT and the
// original engine's rounding convention throughout. Go's math.Round already
// implements this (unlike banker's rounding); this wrapper exists to name
// the convention at call sites and as the one place to fix it if that ever
// changes. See spec.md §9 "Fortran rounding" — substituting banker's
// rounding here would shift every footprint by one pixel at half-integers.
func fortranRound(x float64) int {
	return int(math.Round(x))
}
