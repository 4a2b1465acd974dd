// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package versus renders pairwise relative-speedup charts of sorting
// benchmark results.
//
// Build turns one (pair, type, prediction state) group of a
// grouped.Result into a Chart, a description of the chart that does
// not depend on how it is drawn. A Chart can then be written as an
// interactive HTML document (WriteHTML) or as a static image
// (WriteImage). Batch drives the whole pipeline over a Result.
package versus

import (
	"fmt"
	"image/color"

	"github.com/sortbench/sortversus/grouped"
	"github.com/sortbench/sortversus/hwinfo"
	"github.com/sortbench/sortversus/internal/fault"
	"github.com/sortbench/sortversus/palette"
	"github.com/sortbench/sortversus/speedup"
)

// Chart layout constants.
const (
	Width  = 1000 // pixels
	Height = 600  // pixels

	yMin, yMax = -2.0, 2.0
	tickLo     = -2.0
	tickHi     = 2.8
	tickStep   = 0.2

	lineWidth  = 1.5
	markerSize = 5
)

// A Chart is one relative-speedup chart: every pattern of one
// (pair, type, prediction state) group as a line with markers.
type Chart struct {
	Pair  grouped.Pair
	Type  string
	State string

	Title string
	X, Y  Axis

	// Baseline is the "no difference" line at speedup 0.
	Baseline Baseline

	Series []Series
	Tools  Tools
}

// Name returns the name identifying c among the charts of one input,
// "{a}-vs-{b}-{state}-{type}".
func (c *Chart) Name() string {
	return fmt.Sprintf("%s-%s-%s", c.Pair, c.State, c.Type)
}

// An Axis describes one chart axis.
type Axis struct {
	Label string
	Log   bool

	// Min and Max are the initially visible range. They are
	// ignored if both are zero.
	Min, Max float64

	// Ticks are the tick values. If nil, the renderer picks ticks.
	Ticks []float64
	// TickRule labels Ticks. The zero rule is unused.
	TickRule speedup.TickRule
}

// HasRange reports whether a has a fixed visible range.
func (a Axis) HasRange() bool { return a.Min != 0 || a.Max != 0 }

// Baseline is a horizontal reference line at Y from X0 to X1.
type Baseline struct {
	X0, X1 float64
	Y      float64
	Color  color.NRGBA
}

// A Series is the speedup of the chart's pair on one pattern.
type Series struct {
	Pattern    string
	Color      color.RGBA
	Points     []grouped.Point
	LineWidth  float64
	MarkerSize float64
}

// Build returns the chart of pair within the (typ, state) group sizes.
// hw labels the Y axis. policy applies to every series; with
// grouped.FailFast the first missing measurement fails the chart.
func Build(sizes grouped.Sizes, pair grouped.Pair, typ, state string, hw hwinfo.Hardware, policy grouped.Policy) (*Chart, error) {
	ctx := fault.Context{A: pair.A, B: pair.B, Type: typ, State: state}
	lo, hi, ok := sizes.Bounds()
	if !ok {
		return nil, fault.Annotate(fault.New(fault.MalformedInput, "no input sizes >= 1"), ctx)
	}
	colors, err := palette.New(sizes.Patterns())
	if err != nil {
		return nil, fault.Annotate(err, ctx)
	}

	c := &Chart{
		Pair:  pair,
		Type:  typ,
		State: state,
		X: Axis{
			Label: "Input Size (log)",
			Log:   true,
		},
		Y: Axis{
			Label:    fmt.Sprintf("Relative symmetric speedup | > 0, a x b | < 0, b x a | %s", hw.Label()),
			Min:      yMin,
			Max:      yMax,
			Ticks:    speedup.Ticks(tickLo, tickHi, tickStep),
			TickRule: speedup.Factor,
		},
		Baseline: Baseline{
			X0:    float64(lo),
			X1:    float64(hi),
			Color: color.NRGBA{0, 0, 0, 0x66},
		},
		Tools: NewTools(),
	}
	c.Title = c.Name()

	for _, pattern := range colors.Patterns() {
		pts, err := sizes.Series(pair, pattern, policy)
		if err != nil {
			return nil, fault.Annotate(err, ctx)
		}
		clr, err := colors.Color(pattern)
		if err != nil {
			return nil, fault.Annotate(err, ctx)
		}
		c.Series = append(c.Series, Series{
			Pattern:    pattern,
			Color:      clr,
			Points:     pts,
			LineWidth:  lineWidth,
			MarkerSize: markerSize,
		})
	}
	return c, nil
}

// Ratios returns, for every point of c, the time ratio b/a implied by
// its speedup.
func (c *Chart) Ratios() []float64 {
	var rs []float64
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p.Speedup >= 0 {
				rs = append(rs, p.Speedup+1)
			} else {
				rs = append(rs, 1/(1-p.Speedup))
			}
		}
	}
	return rs
}
