package drizzle

import "log"

// Verbose gates the debug-level start/end logging the square and lanczos
// drivers emit, matching cdrizzlebox.c's driz_log_message calls around its
// two most expensive kernels. Off by default; set to true to trace a run.
var Verbose = false

func logf(format string, args ...any) {
	if !Verbose {
		return
	}
	log.Printf(format, args...)
}
