// Package clipboard copies single lines of plain text out of the app.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// ErrUnavailable means neither the system clipboard nor the terminal
// fallback could take the text.
var ErrUnavailable = errors.New("no clipboard available")

// Writer puts text on some clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System is the OS clipboard (pbcopy, xclip/xsel/wl-copy, Windows API).
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// OSC52 asks the terminal emulator to set its clipboard. Works over SSH
// where no system clipboard exists; there is no way to learn whether the
// terminal honoured it.
type OSC52 struct {
	Out io.Writer
}

func (o OSC52) WriteAll(text string) error {
	out := o.Out
	if out == nil {
		out = os.Stdout
	}
	termenv.NewOutput(out).Copy(text)
	return nil
}

// Copier tries its writers in order until one succeeds.
type Copier struct {
	writers []Writer
}

// New returns a Copier using the system clipboard and, when osc52 is set,
// the terminal escape as a fallback.
func New(osc52 bool) *Copier {
	c := &Copier{writers: []Writer{System{}}}
	if osc52 {
		c.writers = append(c.writers, OSC52{})
	}
	return c
}

// NewWith builds a Copier from explicit writers.
func NewWith(writers ...Writer) *Copier { return &Copier{writers: writers} }

// Copy writes text; the returned error joins every writer's failure.
func (c *Copier) Copy(text string) error {
	var errs []error
	for _, w := range c.writers {
		err := w.WriteAll(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}
