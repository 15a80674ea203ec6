package display

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tickertape/internal/application/port"
	"tickertape/internal/application/service"

	"github.com/shopspring/decimal"
)

const (
	DefaultRefresh     = 10 * time.Second
	DefaultAverage     = time.Minute
	DefaultChartPoints = 30
	tailLines          = 10
	archiveTimeout     = 3 * time.Second
)

// Counter clears the screen and prints the current prices.
type Counter struct {
	store    port.PriceReader
	sink     port.Sink
	fmt      *Formatter
	interval time.Duration
}

func NewCounter(store port.PriceReader, sink port.Sink, f *Formatter, interval time.Duration) *Counter {
	return &Counter{store: store, sink: sink, fmt: f, interval: interval}
}

func (c *Counter) Name() string            { return ModeCounter }
func (c *Counter) Interval() time.Duration { return c.interval }

func (c *Counter) Render(now time.Time) error {
	if err := c.sink.Clear(); err != nil {
		return err
	}
	return writeLines(c.sink, c.fmt.CounterBlock(c.store.Snapshot()))
}

// Tape prints one timestamped line per interval, appends it to the tape file
// and archives the sample.
type Tape struct {
	store    port.PriceReader
	sink     port.Sink
	file     port.TapeWriter
	samples  *service.SampleService
	interval time.Duration
}

func NewTape(store port.PriceReader, sink port.Sink, file port.TapeWriter, samples *service.SampleService, interval time.Duration) *Tape {
	return &Tape{store: store, sink: sink, file: file, samples: samples, interval: interval}
}

func (t *Tape) Name() string            { return ModeTape }
func (t *Tape) Interval() time.Duration { return t.interval }

func (t *Tape) Render(now time.Time) error {
	line, recErr := t.Record(now)
	if err := t.sink.WriteLine(line); err != nil {
		return errors.Join(err, recErr)
	}
	return recErr
}

// Record samples the store, appends to the tape file and archive, and returns the line.
// Write failures are returned but never stop the sample.
func (t *Tape) Record(now time.Time) (string, error) {
	quotes := t.store.Snapshot()
	line := TapeLine(now, quotes)

	var errs []error
	if t.file != nil {
		if err := t.file.Append(line); err != nil {
			errs = append(errs, fmt.Errorf("tape append: %w", err))
		}
	}
	if t.samples != nil {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		err := t.samples.Record(ctx, now.UnixMilli(), quotes)
		cancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("archive sample: %w", err))
		}
	}
	return line, errors.Join(errs...)
}

// Dual shows the counter with the most recent tape lines underneath.
type Dual struct {
	counter *Counter
	tape    *Tape
	tail    []string
}

func NewDual(counter *Counter, tape *Tape) *Dual {
	return &Dual{counter: counter, tape: tape}
}

func (d *Dual) Name() string            { return ModeDual }
func (d *Dual) Interval() time.Duration { return d.counter.Interval() }

func (d *Dual) Render(now time.Time) error {
	line, recErr := d.tape.Record(now)
	d.tail = append(d.tail, line)
	if len(d.tail) > tailLines {
		d.tail = d.tail[len(d.tail)-tailLines:]
	}

	if err := d.counter.Render(now); err != nil {
		return errors.Join(err, recErr)
	}
	if err := writeLines(d.counter.sink, append([]string{"----- tape -----"}, d.tail...)); err != nil {
		return errors.Join(err, recErr)
	}
	return recErr
}

// Tail returns the tape lines currently on screen.
func (d *Dual) Tail() []string {
	out := make([]string, len(d.tail))
	copy(out, d.tail)
	return out
}

// Average samples every interval and prints the mean of each window.
type Average struct {
	store    port.PriceReader
	sink     port.Sink
	interval time.Duration
	window   time.Duration

	start time.Time
	sums  map[string]decimal.Decimal
	count map[string]int64
}

func NewAverage(store port.PriceReader, sink port.Sink, interval, window time.Duration) *Average {
	if interval <= 0 {
		interval = DefaultRefresh
	}
	if window < interval {
		window = interval
	}
	a := &Average{store: store, sink: sink, interval: interval, window: window}
	a.reset(time.Time{})
	return a
}

func (a *Average) Name() string            { return ModeAverage }
func (a *Average) Interval() time.Duration { return a.interval }

func (a *Average) reset(now time.Time) {
	a.start = now
	a.sums = make(map[string]decimal.Decimal)
	a.count = make(map[string]int64)
}

func (a *Average) Render(now time.Time) error {
	if a.start.IsZero() {
		a.start = now.Add(-a.interval)
	}
	for _, q := range a.store.Snapshot() {
		if !q.OK {
			continue
		}
		a.sums[q.Symbol] = a.sums[q.Symbol].Add(decimal.NewFromFloat(q.Price))
		a.count[q.Symbol]++
	}
	if now.Sub(a.start) < a.window {
		return nil
	}

	lines := []string{"", fmt.Sprintf("===== Average price over the last %s =====", a.window)}
	for _, sym := range a.store.Symbols() {
		lines = append(lines, sym+": "+a.averageOf(sym))
	}
	lines = append(lines, "")
	a.reset(now)
	return writeLines(a.sink, lines)
}

func (a *Average) averageOf(sym string) string {
	n := a.count[sym]
	if n == 0 {
		return NoData
	}
	avg := a.sums[sym].Div(decimal.NewFromInt(n))
	return fmt.Sprintf("%s %s (%d samples)", avg.StringFixed(2), QuoteAsset, n)
}

var sparkBars = []rune("▁▂▃▄▅▆▇█")

// Chart keeps a rolling window per symbol and draws it as a sparkline.
type Chart struct {
	store    port.PriceReader
	sink     port.Sink
	symbols  []string
	interval time.Duration
	points   int
	series   map[string][]float64
	stamps   []string
}

// NewChart charts the given symbols, or every tracked symbol when none are given.
func NewChart(store port.PriceReader, sink port.Sink, interval time.Duration, points int, symbols ...string) *Chart {
	if points <= 0 {
		points = DefaultChartPoints
	}
	if len(symbols) == 0 {
		symbols = store.Symbols()
	}
	return &Chart{
		store:    store,
		sink:     sink,
		symbols:  symbols,
		interval: interval,
		points:   points,
		series:   make(map[string][]float64),
	}
}

func (c *Chart) Name() string            { return ModeChart }
func (c *Chart) Interval() time.Duration { return c.interval }

// Series returns a copy of the rolling window for sym.
func (c *Chart) Series(sym string) []float64 {
	s := c.series[sym]
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

func (c *Chart) Render(now time.Time) error {
	sampled := false
	for _, sym := range c.symbols {
		px, ok := c.store.Get(sym)
		if !ok {
			continue
		}
		s := append(c.series[sym], px)
		if len(s) > c.points {
			s = s[len(s)-c.points:]
		}
		c.series[sym] = s
		sampled = true
	}
	// stamps cover only renders that added a point
	if sampled {
		c.stamps = append(c.stamps, now.Format("15:04:05"))
		if len(c.stamps) > c.points {
			c.stamps = c.stamps[len(c.stamps)-c.points:]
		}
	}

	if err := c.sink.Clear(); err != nil {
		return err
	}
	lines := []string{""}
	for _, sym := range c.symbols {
		lines = append(lines, c.chartLines(sym)...)
	}
	if len(c.stamps) > 0 {
		lines = append(lines, fmt.Sprintf("%s .. %s", c.stamps[0], c.stamps[len(c.stamps)-1]))
	}
	return writeLines(c.sink, lines)
}

func (c *Chart) chartLines(sym string) []string {
	s := c.series[sym]
	header := fmt.Sprintf("Chart %s (%s)", sym, QuoteAsset)
	if len(s) == 0 {
		return []string{header, "  " + NoData, ""}
	}
	lo, hi := s[0], s[0]
	for _, v := range s {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return []string{
		header,
		"  " + Sparkline(s, lo, hi),
		fmt.Sprintf("  min %.2f  max %.2f  last %.2f", lo, hi, s[len(s)-1]),
		"",
	}
}

// Sparkline maps each value onto eight bar heights between lo and hi.
func Sparkline(values []float64, lo, hi float64) string {
	var sb strings.Builder
	span := hi - lo
	top := len(sparkBars) - 1
	for _, v := range values {
		idx := top / 2
		if span > 0 {
			idx = int((v - lo) / span * float64(top))
		}
		idx = max(0, min(top, idx))
		sb.WriteRune(sparkBars[idx])
	}
	return sb.String()
}

func writeLines(sink port.Sink, lines []string) error {
	for _, l := range lines {
		if err := sink.WriteLine(l); err != nil {
			return err
		}
	}
	return nil
}
