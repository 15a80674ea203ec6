package display

import (
	"fmt"
	"strings"
	"time"

	"tickertape/internal/application/port"
	"tickertape/internal/application/service"
)

const (
	ModeCounter = "counter"
	ModeTape    = "tape"
	ModeDual    = "dual"
	ModeAverage = "average"
	ModeChart   = "chart"
)

type ModeInfo struct {
	Key  string // menu key
	Name string
	Desc string
}

// Catalog lists the modes in menu order.
var Catalog = []ModeInfo{
	{Key: "1", Name: ModeCounter, Desc: "Counter (clears the console every refresh)"},
	{Key: "2", Name: ModeTape, Desc: "Tape (prints and saves every sample)"},
	{Key: "3", Name: ModeDual, Desc: "Counter and tape together"},
	{Key: "4", Name: ModeAverage, Desc: "Slow (average price per window)"},
	{Key: "5", Name: ModeChart, Desc: "Chart (rolling sparkline)"},
}

// Lookup accepts a menu key or a mode name.
func Lookup(choice string) (ModeInfo, bool) {
	c := strings.ToLower(strings.TrimSpace(choice))
	for _, m := range Catalog {
		if c == m.Key || c == m.Name {
			return m, true
		}
	}
	return ModeInfo{}, false
}

type BuildDeps struct {
	Store         port.PriceReader
	Sink          port.Sink
	Formatter     *Formatter
	TapeFile      port.TapeWriter
	Samples       *service.SampleService
	Refresh       time.Duration
	AverageWindow time.Duration
	ChartPoints   int
	ChartSymbols  []string
}

// Build creates the named mode.
func Build(name string, deps BuildDeps) (Mode, error) {
	info, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown display mode %q", name)
	}
	if deps.Formatter == nil {
		deps.Formatter = NewFormatter(false)
	}
	if deps.Refresh <= 0 {
		deps.Refresh = DefaultRefresh
	}
	if deps.AverageWindow <= 0 {
		deps.AverageWindow = DefaultAverage
	}

	switch info.Name {
	case ModeCounter:
		return NewCounter(deps.Store, deps.Sink, deps.Formatter, deps.Refresh), nil
	case ModeTape:
		return NewTape(deps.Store, deps.Sink, deps.TapeFile, deps.Samples, deps.Refresh), nil
	case ModeDual:
		return NewDual(
			NewCounter(deps.Store, deps.Sink, deps.Formatter, deps.Refresh),
			NewTape(deps.Store, deps.Sink, deps.TapeFile, deps.Samples, deps.Refresh),
		), nil
	case ModeAverage:
		return NewAverage(deps.Store, deps.Sink, deps.Refresh, deps.AverageWindow), nil
	case ModeChart:
		return NewChart(deps.Store, deps.Sink, deps.Refresh, deps.ChartPoints, deps.ChartSymbols...), nil
	}
	return nil, fmt.Errorf("unknown display mode %q", name)
}
