package console

import (
	"fmt"
	"io"
	"os"

	"tickertape/internal/application/port"

	"github.com/mattn/go-isatty"
)

const clearScreen = "\033[H\033[2J"

type Sink struct {
	w   io.Writer
	tty bool
}

// NewSink writes to stdout.
func NewSink() *Sink { return NewWriterSink(os.Stdout) }

// NewWriterSink detects a terminal when w is an *os.File.
func NewWriterSink(w io.Writer) *Sink {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Sink{w: w, tty: tty}
}

// IsTerminal reports whether ANSI sequences make sense on this sink.
func (s *Sink) IsTerminal() bool { return s.tty }

func (s *Sink) WriteLine(line string) error {
	_, err := fmt.Fprintln(s.w, line)
	return err
}

// Clear wipes the terminal; on pipes and files it only prints a blank line.
func (s *Sink) Clear() error {
	if !s.tty {
		_, err := fmt.Fprint(s.w, "\n")
		return err
	}
	_, err := fmt.Fprint(s.w, clearScreen)
	return err
}

var _ port.Sink = (*Sink)(nil)
