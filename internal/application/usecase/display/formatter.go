package display

import (
	"fmt"
	"strings"
	"time"

	"tickertape/internal/domain"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiDim    = "\033[2m"

	TimeLayout = "2006-01-02 15:04:05"
	NoData     = "no data"
	QuoteAsset = "USDT"
)

type Dir int

const (
	DirSame Dir = 0
	DirUp   Dir = +1
	DirDown Dir = -1
)

// Formatter renders quotes. With Color set it colors prices by direction
// relative to the previous render.
type Formatter struct {
	Color bool
	prev  map[string]float64
}

func NewFormatter(color bool) *Formatter {
	return &Formatter{Color: color, prev: make(map[string]float64)}
}

func (f *Formatter) colorize(s, c string) string {
	if !f.Color {
		return s
	}
	return c + s + ansiReset
}

// FormatPrice renders "63250.50 USDT" or "no data".
func FormatPrice(q domain.Quote) string {
	if !q.OK {
		return NoData
	}
	return fmt.Sprintf("%.2f %s", q.Price, QuoteAsset)
}

// TapeLine renders one tape sample:
// 2024-01-02 15:04:05 | BTCUSDT: 63250.50 USDT | ETHUSDT: no data
func TapeLine(now time.Time, quotes []domain.Quote) string {
	var sb strings.Builder
	sb.WriteString(now.Format(TimeLayout))
	for _, q := range quotes {
		sb.WriteString(" | ")
		sb.WriteString(q.Symbol)
		sb.WriteString(": ")
		sb.WriteString(FormatPrice(q))
	}
	return sb.String()
}

// direction compares q against the previous render and remembers it.
func (f *Formatter) direction(q domain.Quote) Dir {
	if !q.OK {
		return DirSame
	}
	prev, seen := f.prev[q.Symbol]
	f.prev[q.Symbol] = q.Price
	switch {
	case !seen:
		return DirSame
	case q.Price > prev:
		return DirUp
	case q.Price < prev:
		return DirDown
	default:
		return DirSame
	}
}

// CounterBlock renders the framed counter view, one line per symbol.
func (f *Formatter) CounterBlock(quotes []domain.Quote) []string {
	syms := make([]string, 0, len(quotes))
	for _, q := range quotes {
		syms = append(syms, q.Symbol)
	}
	title := "===== Current price " + strings.Join(syms, " and ") + " ====="

	lines := make([]string, 0, len(quotes)+2)
	lines = append(lines, "", title)
	for _, q := range quotes {
		px := FormatPrice(q)
		col := ansiDim
		if q.OK {
			switch f.direction(q) {
			case DirUp:
				col = ansiGreen
			case DirDown:
				col = ansiRed
			default:
				col = ansiYellow
			}
		}
		lines = append(lines, q.Symbol+": "+f.colorize(px, col))
	}
	lines = append(lines, strings.Repeat("=", len(title)), "")
	return lines
}
