// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package versus

import (
	"fmt"
	"io"
	"slices"

	"github.com/sortbench/sortversus/speedup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ImageFormats lists the formats WriteImage accepts.
var ImageFormats = []string{"svg", "png"}

// WriteImage writes a static rendering of c to w in the given format,
// "svg" or "png". Static images have no interactions.
func (c *Chart) WriteImage(w io.Writer, format string) error {
	if !slices.Contains(ImageFormats, format) {
		return fmt.Errorf("unsupported image format %q", format)
	}
	p, err := c.Plot()
	if err != nil {
		return err
	}
	// 96 pixels per inch.
	wt, err := p.WriterTo(vg.Length(Width)*vg.Inch/96, vg.Length(Height)*vg.Inch/96, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Plot returns c as a gonum plot.
func (c *Chart) Plot() (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = c.Title
	pl.X.Label.Text = c.X.Label
	pl.Y.Label.Text = c.Y.Label
	if c.X.Log {
		pl.X.Scale = plot.LogScale{}
		pl.X.Tick.Marker = plot.LogTicks{}
	}
	if c.Y.Ticks != nil {
		pl.Y.Tick.Marker = ruleTicks{c.Y.Ticks, c.Y.TickRule}
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	base, err := plotter.NewLine(plotter.XYs{{X: c.Baseline.X0, Y: c.Baseline.Y}, {X: c.Baseline.X1, Y: c.Baseline.Y}})
	if err != nil {
		return nil, err
	}
	base.LineStyle.Color = c.Baseline.Color
	pl.Add(base)

	pl.Legend.Top = true
	for _, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for i, p := range s.Points {
			xys[i].X, xys[i].Y = float64(p.Size), p.Speedup
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", s.Pattern, err)
		}
		l.LineStyle.Color = s.Color
		l.LineStyle.Width = vg.Points(s.LineWidth)

		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", s.Pattern, err)
		}
		sc.GlyphStyle.Shape = draw.SquareGlyph{}
		sc.GlyphStyle.Color = s.Color
		sc.GlyphStyle.Radius = vg.Points(s.MarkerSize / 2)

		pl.Add(l, sc)
		pl.Legend.Add(s.Pattern, l, sc)
	}

	// Fix the visible range after adding plotters, which widen it.
	if c.X.HasRange() {
		pl.X.Min, pl.X.Max = c.X.Min, c.X.Max
	}
	if c.Y.HasRange() {
		pl.Y.Min, pl.Y.Max = c.Y.Min, c.Y.Max
	}
	return pl, nil
}

// ruleTicks is a plot.Ticker that puts ticks at fixed values and labels
// them with a speedup.TickRule.
type ruleTicks struct {
	values []float64
	rule   speedup.TickRule
}

func (r ruleTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for _, v := range r.values {
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: r.rule.Label(v)})
	}
	return ticks
}

var _ plot.Ticker = ruleTicks{}
