package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"tickertape/internal/application/usecase/display"
)

// ErrNoChoice is returned when input ends before a valid mode was chosen.
var ErrNoChoice = errors.New("no display mode chosen")

// Menu asks for a display mode until a valid one is entered.
type Menu struct {
	in  *bufio.Reader
	out io.Writer
}

func NewMenu(in io.Reader, out io.Writer) *Menu {
	return &Menu{in: bufio.NewReader(in), out: out}
}

func (m *Menu) Choose() (display.ModeInfo, error) {
	for {
		fmt.Fprintln(m.out, "Choose a mode:")
		for _, info := range display.Catalog {
			fmt.Fprintf(m.out, "%s - %s\n", info.Key, info.Desc)
		}
		fmt.Fprint(m.out, "Your choice: ")

		line, err := m.in.ReadString('\n')
		if info, ok := display.Lookup(line); ok {
			return info, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return display.ModeInfo{}, ErrNoChoice
			}
			return display.ModeInfo{}, err
		}
		if strings.TrimSpace(line) != "" {
			fmt.Fprintf(m.out, "unknown choice %q\n", strings.TrimSpace(line))
		}
	}
}
