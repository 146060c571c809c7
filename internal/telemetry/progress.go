package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/time/rate"
)

// ShowProcessEnv is the environment variable that gates progress output,
// matching the original implementation's toggle. Enabled unless explicitly
// disabled.
const ShowProcessEnv = "SHOW_PROCESS"

// ProgressEnabled reports whether SHOW_PROCESS permits progress output.
// Unset or any value other than "0"/"false" enables it.
func ProgressEnabled() bool {
	switch os.Getenv(ShowProcessEnv) {
	case "0", "false", "FALSE", "False":
		return false
	default:
		return true
	}
}

// Progress reports "<i>/<n>" progress to a writer, rate-limited so a tight
// loop over millions of vertices does not spend its time in terminal I/O.
// On a TTY it overwrites the line with a carriage return; otherwise it
// prints one line per update, which is friendlier to redirected output and
// CI logs.
type Progress struct {
	w       io.Writer
	limiter *rate.Limiter
	isTTY   bool
	total   int
}

// NewProgress builds a Progress reporter writing to w, reporting against a
// known total, updating at most a few times per second.
func NewProgress(w io.Writer, total int) *Progress {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = isatty.IsTerminal(f.Fd())
	}
	return &Progress{
		w:       w,
		limiter: rate.NewLimiter(rate.Limit(10), 1),
		isTTY:   isTTY,
		total:   total,
	}
}

// Update reports the current count, subject to rate limiting. Call Finish
// once done to guarantee the final count is always printed.
func (p *Progress) Update(i int) {
	if !p.limiter.Allow() {
		return
	}
	p.print(i)
}

// Finish unconditionally prints the final count and, on a TTY, ends the
// line.
func (p *Progress) Finish() {
	p.print(p.total)
	if p.isTTY {
		fmt.Fprintln(p.w)
	}
}

func (p *Progress) print(i int) {
	if p.isTTY {
		fmt.Fprintf(p.w, "\r%d/%d", i, p.total)
	} else {
		fmt.Fprintf(p.w, "%d/%d\n", i, p.total)
	}
}
