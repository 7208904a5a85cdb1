package drizzle

import (
	"bytes"
	"log"
	"testing"
)

func TestLogfSilentByDefault(t *testing.T) {
	if Verbose {
		t.Fatalf("Verbose defaults to true, want false")
	}
	var buf bytes.Buffer
	old := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(old)

	logf("starting do_kernel_square")
	if buf.Len() != 0 {
		t.Fatalf("logf wrote output while Verbose is false: %q", buf.String())
	}
}

func TestLogfWritesWhenVerbose(t *testing.T) {
	Verbose = true
	defer func() { Verbose = false }()

	var buf bytes.Buffer
	old := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(old)

	logf("starting do_kernel_square")
	if buf.Len() == 0 {
		t.Fatalf("logf wrote nothing while Verbose is true")
	}
}
