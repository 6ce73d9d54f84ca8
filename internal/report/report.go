// Package report writes severity-tagged operator lines for the management commands.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Severity tags an operator line.
type Severity string

const (
	SeveritySuccess Severity = "SUCCESS"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Reporter prints one line per event, coloured by severity when the output is a terminal.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer

	success *color.Color
	warning *color.Color
	failure *color.Color
}

// New creates a Reporter writing to out. Colour follows fatih/color's
// detection of stdout, so writers other than a terminal receive plain text
// when color.NoColor is set.
func New(out io.Writer) *Reporter {
	return &Reporter{
		out:     out,
		success: color.New(color.FgGreen, color.Bold),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
}

// Stdout creates a Reporter on stdout.
func Stdout() *Reporter {
	return New(color.Output)
}

// NoColor creates a Reporter that never emits escape sequences.
func NoColor(out io.Writer) *Reporter {
	r := New(out)
	for _, c := range []*color.Color{r.success, r.warning, r.failure} {
		c.DisableColor()
	}
	return r
}

func (r *Reporter) Successf(format string, args ...any) {
	r.write(SeveritySuccess, r.success, format, args...)
}

func (r *Reporter) Warningf(format string, args ...any) {
	r.write(SeverityWarning, r.warning, format, args...)
}

func (r *Reporter) Errorf(format string, args ...any) {
	r.write(SeverityError, r.failure, format, args...)
}

func (r *Reporter) write(sev Severity, c *color.Color, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = c.Fprintln(r.out, fmt.Sprintf("%s: %s", sev, fmt.Sprintf(format, args...)))
}
