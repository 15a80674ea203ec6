package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSinkWriteLineAndClear(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	if s.IsTerminal() {
		t.Fatal("bytes.Buffer is not a terminal")
	}
	_ = s.WriteLine("BTCUSDT: 63250.50 USDT")
	_ = s.Clear()

	if got := buf.String(); got != "BTCUSDT: 63250.50 USDT\n\n" {
		t.Errorf("got %q", got)
	}
	if strings.Contains(buf.String(), clearScreen) {
		t.Error("escape codes written to a non-terminal")
	}
}

func TestMenuChoose(t *testing.T) {
	var out bytes.Buffer
	m := NewMenu(strings.NewReader("9\n\nchart\n"), &out)

	info, err := m.Choose()
	if err != nil {
		t.Fatalf("Choose failed: %v", err)
	}
	if info.Name != "chart" {
		t.Errorf("expected chart, got %s", info.Name)
	}
	if !strings.Contains(out.String(), `unknown choice "9"`) {
		t.Errorf("invalid choice not reported:\n%s", out.String())
	}
	if strings.Count(out.String(), "Your choice: ") != 3 {
		t.Errorf("expected 3 prompts:\n%s", out.String())
	}
}

func TestMenuChooseWithoutTrailingNewline(t *testing.T) {
	m := NewMenu(strings.NewReader("2"), &bytes.Buffer{})
	info, err := m.Choose()
	if err != nil || info.Name != "tape" {
		t.Errorf("expected tape, got %+v (%v)", info, err)
	}
}

func TestMenuEOF(t *testing.T) {
	m := NewMenu(strings.NewReader("x\n"), &bytes.Buffer{})
	if _, err := m.Choose(); !errors.Is(err, ErrNoChoice) {
		t.Errorf("expected ErrNoChoice, got %v", err)
	}
}
