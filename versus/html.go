// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package versus

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sortbench/sortversus/palette"
	"github.com/sortbench/sortversus/speedup"
)

// WriteHTML writes c to w as a standalone interactive HTML document.
// The chart's data is inlined in the document; the charting library
// is loaded from its CDN.
func (c *Chart) WriteHTML(w io.Writer) error {
	return c.echarts().Render(w)
}

func (c *Chart) echarts() *charts.Line {
	line := charts.NewLine()

	patterns := make([]string, len(c.Series))
	for i, s := range c.Series {
		patterns[i] = s.Pattern
	}

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Name(),
			ChartID:   chartID(c.Name()),
			Width:     fmt.Sprintf("%dpx", Width),
			Height:    fmt.Sprintf("%dpx", Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithXAxisOpts(echartsXAxis(c.X)),
		charts.WithYAxisOpts(echartsYAxis(c.Y)),
		// Leave room on the right for the legend.
		charts.WithGridOpts(opts.Grid{Left: "8%", Right: "18%"}),
		charts.WithLegendOpts(opts.Legend{
			Show:   true,
			Data:   patterns,
			Orient: "vertical",
			Right:  "1%",
			Top:    "middle",
		}),
	)
	for _, o := range echartsTools(c.Tools) {
		line.SetGlobalOptions(o)
	}
	line.AddJSFuncs(echartsOverride(chartID(c.Name()), c.Y, c.Tools))

	line.AddSeries("no difference",
		[]opts.LineData{
			{Value: []interface{}{c.Baseline.X0, c.Baseline.Y}, Symbol: "none"},
			{Value: []interface{}{c.Baseline.X1, c.Baseline.Y}, Symbol: "none"},
		},
		charts.WithLineStyleOpts(opts.LineStyle{
			Color:   fmt.Sprintf("#%02x%02x%02x", c.Baseline.Color.R, c.Baseline.Color.G, c.Baseline.Color.B),
			Opacity: float32(c.Baseline.Color.A) / 0xff,
		}),
	)

	for _, s := range c.Series {
		data := make([]opts.LineData, len(s.Points))
		for i, p := range s.Points {
			data[i] = opts.LineData{
				Name:       strconv.Itoa(p.Size),
				Value:      []interface{}{p.Size, p.Speedup},
				Symbol:     "emptyRect",
				SymbolSize: int(s.MarkerSize),
			}
		}
		hex := palette.Hex(s.Color)
		line.AddSeries(s.Pattern, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: true}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: hex, Width: float32(s.LineWidth)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
		)
	}
	return line
}

func echartsXAxis(a Axis) opts.XAxis {
	x := opts.XAxis{Name: a.Label, Type: "value"}
	if a.Log {
		x.Type = "log"
	}
	if a.HasRange() {
		x.Min, x.Max = a.Min, a.Max
	}
	return x
}

func echartsYAxis(a Axis) opts.YAxis {
	y := opts.YAxis{Name: a.Label, Type: "value"}
	if a.Log {
		y.Type = "log"
	}
	if a.HasRange() {
		y.Min, y.Max = a.Min, a.Max
	}
	if a.TickRule != (speedup.TickRule{}) {
		y.AxisLabel = &opts.AxisLabel{
			Show:         true,
			Formatter:    echartsFormatter(a.TickRule),
			ShowMinLabel: true,
			ShowMaxLabel: true,
		}
	}
	return y
}

// An echartsPatch holds chart options go-echarts has no fields for.
// It is applied with setOption once the chart is initialized.
type echartsPatch struct {
	YAxis    *echartsAxisPatch `json:"yAxis,omitempty"`
	DataZoom []echartsDataZoom `json:"dataZoom,omitempty"`
}

type echartsAxisPatch struct {
	Interval float64 `json:"interval"`
}

// echartsDataZoom is an "inside" data zoom, which handles drag and
// wheel on the plot area itself.
type echartsDataZoom struct {
	Type             string      `json:"type"`
	XAxisIndex       int         `json:"xAxisIndex"`
	ZoomOnMouseWheel interface{} `json:"zoomOnMouseWheel"` // true, false or "ctrl"
	MoveOnMouseMove  bool        `json:"moveOnMouseMove"`
	MoveOnMouseWheel bool        `json:"moveOnMouseWheel"`
}

func newEchartsPatch(y Axis, t Tools) echartsPatch {
	var p echartsPatch
	if len(y.Ticks) > 1 {
		p.YAxis = &echartsAxisPatch{Interval: math.Round((y.Ticks[1]-y.Ticks[0])*1e9) / 1e9}
	}
	pan := t.Has(Pan) && t.ActiveDrag == Pan
	var wheel interface{} = false
	switch {
	case t.Has(WheelZoom) && t.ActiveScroll == WheelZoom:
		wheel = true
	case t.Has(WheelZoom):
		// Available, but only while ctrl is held.
		wheel = "ctrl"
	}
	if pan || wheel != false {
		p.DataZoom = []echartsDataZoom{{
			Type:             "inside",
			ZoomOnMouseWheel: wheel,
			MoveOnMouseMove:  pan,
		}}
	}
	return p
}

// echartsOverride returns the script applying newEchartsPatch to the
// chart with the given id.
func echartsOverride(id string, y Axis, t Tools) string {
	data, err := json.Marshal(newEchartsPatch(y, t))
	if err != nil {
		// The patch is built from plain values.
		panic(err)
	}
	return fmt.Sprintf("goecharts_%s.setOption(%s);", id, data)
}

// echartsFormatter expresses r as an ECharts axis label formatter. The
// function text avoids double quotes and angle brackets, which would be
// escaped inside the JSON chart options.
func echartsFormatter(r speedup.TickRule) string {
	return opts.FuncOpts(fmt.Sprintf(
		"function (t) { var s = Math.sign(t) === -1 ? -1 : 1; return (t + s * %s).toFixed(%d) + %s; }",
		strconv.FormatFloat(r.Offset, 'g', -1, 64), r.Precision, jsString(r.Suffix)))
}

func jsString(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}

// echartsTools maps t onto ECharts components. Box zoom and reset are
// toolbox features and hover is the item tooltip. Pan and wheel zoom
// are part of newEchartsPatch.
func echartsTools(t Tools) []charts.GlobalOpts {
	var o []charts.GlobalOpts
	feature := &opts.ToolBoxFeature{}
	if t.Has(BoxZoom) {
		feature.DataZoom = &opts.ToolBoxFeatureDataZoom{
			Show:  true,
			Title: map[string]string{"zoom": "box zoom", "back": "undo zoom"},
		}
	}
	if t.Has(Reset) {
		feature.Restore = &opts.ToolBoxFeatureRestore{Show: true, Title: "reset"}
	}
	if feature.DataZoom != nil || feature.Restore != nil {
		o = append(o, charts.WithToolboxOpts(opts.Toolbox{Show: true, Right: "18%", Feature: feature}))
	}
	if t.Has(Hover) && len(t.Tooltip) > 0 {
		o = append(o, charts.WithTooltipOpts(opts.Tooltip{
			Show:      true,
			Trigger:   "item",
			Formatter: tooltipTemplate(t.Tooltip),
		}))
	}
	return o
}

// tooltipTemplate builds an ECharts tooltip template. The point's name
// is its input size and its value is the (size, speedup) pair.
func tooltipTemplate(fields []TooltipField) string {
	var lines []string
	for _, f := range fields {
		var ref string
		switch f.Field {
		case "x":
			ref = "{b}"
		case "y":
			ref = "{c}"
		case "pattern":
			ref = "{a}"
		default:
			continue
		}
		lines = append(lines, f.Label+": "+ref)
	}
	return strings.Join(lines, "<br/>")
}

// chartID turns name into an HTML id that is also a JavaScript
// identifier suffix, so rendering the same chart twice gives the same
// document.
func chartID(name string) string {
	return "chart_" + strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, name)
}
