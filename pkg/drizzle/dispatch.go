package drizzle

// Dobox dispatches a drizzle run to the driver selected by p.Kernel and
// returns the error sink (spec.md §4.3 "Dispatcher"). p.Error is populated
// (Set() true) only if the run failed; callers should check Error.Set()
// rather than comparing against nil, since Dobox always returns the sink it
// used (allocating one if p.Error was nil).
func Dobox(p *Params) *Error {
	errSink := p.errorSink()

	switch p.Kernel {
	case KernelSquare:
		return doKernelSquare(p)
	case KernelGaussian:
		return doKernelGaussian(p)
	case KernelPoint:
		return doKernelPoint(p)
	case KernelTurbo:
		return doKernelTurbo(p)
	case KernelLanczos2, KernelLanczos3:
		return doKernelLanczos(p)
	default:
		errSink.setMessage("Invalid kernel type")
		return errSink
	}
}
