// Package timerutil provides a scoped wall-clock timer that prints elapsed
// time when its scope ends.
//
// Go has no destructors, so Start returns a stop function that callers defer
// at the point where the timed scope ends, rather than relying on a value
// going out of scope.
package timerutil

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Start begins timing a labeled scope and returns a function that, when
// called, prints the elapsed time to stdout in the form:
//
//	>>> <label>: <seconds> seconds<<<
//
// Typical use:
//
//	stop := timerutil.Start("reading file")
//	defer stop()
func Start(label string) func() {
	return StartTo(os.Stdout, label)
}

// StartTo is Start but writes to an arbitrary writer; tests use this to
// capture timer output without touching stdout.
func StartTo(w io.Writer, label string) func() {
	begin := time.Now()
	return func() {
		elapsed := time.Since(begin)
		fmt.Fprintf(w, ">>> %s: %g seconds<<<\n", label, elapsed.Seconds())
	}
}
