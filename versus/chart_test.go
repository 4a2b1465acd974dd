// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package versus

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sortbench/sortversus/grouped"
	"github.com/sortbench/sortversus/hwinfo"
	"github.com/sortbench/sortversus/internal/fault"
	"github.com/sortbench/sortversus/palette"
)

var zen3 = hwinfo.Hardware{Match: "zen3", Arch: "Zen3", BoostGHz: 4.9}

// xySizes is the (i32, predictable) group of the x/y example: x takes
// 10, 100, 1000 and y takes 20, 100, 2000 at sizes 1, 1000, 1000000.
var xySizes = grouped.Sizes{
	1:       {"random": {"x": 10, "y": 20}},
	1000:    {"random": {"x": 100, "y": 100}},
	1000000: {"random": {"x": 1000, "y": 2000}},
}

func TestBuild(t *testing.T) {
	c, err := Build(xySizes, grouped.Pair{A: "x", B: "y"}, "i32", "predictable", zen3, grouped.FailFast)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.Name(), "x-vs-y-predictable-i32"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
	if c.Title != c.Name() {
		t.Errorf("Title = %q, want %q", c.Title, c.Name())
	}
	if !c.X.Log {
		t.Errorf("X axis is not logarithmic")
	}
	if c.Y.Min != -2 || c.Y.Max != 2 {
		t.Errorf("Y range = [%v, %v], want [-2, 2]", c.Y.Min, c.Y.Max)
	}
	if n := len(c.Y.Ticks); n != 25 || c.Y.Ticks[0] != -2 || math.Abs(c.Y.Ticks[n-1]-2.8) > 1e-9 {
		t.Errorf("Y ticks = %v, want -2.0 to 2.8 by 0.2", c.Y.Ticks)
	}
	if got := c.Y.TickRule.Label(0); got != "1.0x" {
		t.Errorf("label of tick 0 = %q, want 1.0x", got)
	}
	if want := "Zen3 4.9GHz"; !strings.Contains(c.Y.Label, want) {
		t.Errorf("Y label %q does not mention %q", c.Y.Label, want)
	}
	if c.Baseline != (Baseline{X0: 1, X1: 1000000, Y: 0, Color: c.Baseline.Color}) {
		t.Errorf("Baseline = %+v, want 1 to 1000000 at 0", c.Baseline)
	}

	if len(c.Series) != 1 {
		t.Fatalf("got %d series, want 1", len(c.Series))
	}
	s := c.Series[0]
	if s.Pattern != "random" || s.Color != palette.Colorblind[7] {
		t.Errorf("series = %s %v, want random in palette slot 7", s.Pattern, s.Color)
	}
	want := []grouped.Point{{Size: 1, Speedup: 1.0}, {Size: 1000, Speedup: 0.0}, {Size: 1000000, Speedup: 1.0}}
	if diff := cmp.Diff(want, s.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSeriesOrder(t *testing.T) {
	sizes := grouped.Sizes{
		10: {
			"random":     {"a": 1, "b": 2},
			"descending": {"a": 1, "b": 2},
			"ascending":  {"a": 1, "b": 2},
			"saw10":      {"a": 1, "b": 2},
			"saw2":       {"a": 1, "b": 2},
		},
	}
	c, err := Build(sizes, grouped.Pair{A: "a", B: "b"}, "u64", "unpredictable", zen3, grouped.FailFast)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range c.Series {
		got = append(got, fmt.Sprintf("%s:%s", s.Pattern, palette.Hex(s.Color)))
	}
	want := []string{
		"ascending:#0072b2",
		"descending:#e69f00",
		"random:#000000",
		"saw2:#f0e442",
		"saw10:#009e73",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFaults(t *testing.T) {
	pair := grouped.Pair{A: "a", B: "b"}

	missing := grouped.Sizes{1: {"p": {"a": 1, "b": 2}}, 5: {"p": {"a": 1}}}
	_, err := Build(missing, pair, "i32", "predictable", zen3, grouped.FailFast)
	checkFault(t, err, fault.MissingKey, fault.Context{A: "a", B: "b", Type: "i32", State: "predictable", Pattern: "p", Size: 5})

	c, err := Build(missing, pair, "i32", "predictable", zen3, grouped.SkipMissing)
	if err != nil {
		t.Fatalf("SkipMissing: %v", err)
	}
	if n := len(c.Series[0].Points); n != 1 {
		t.Errorf("SkipMissing kept %d points, want 1", n)
	}

	many := grouped.Sizes{1: {}}
	for i := 0; i < 9; i++ {
		many[1][fmt.Sprintf("p%d", i)] = grouped.Durations{"a": 1, "b": 1}
	}
	_, err = Build(many, pair, "i32", "predictable", zen3, grouped.FailFast)
	checkFault(t, err, fault.CapacityExceeded, fault.Context{A: "a", B: "b", Type: "i32", State: "predictable"})

	_, err = Build(grouped.Sizes{0: {"p": {"a": 1, "b": 1}}}, pair, "i32", "predictable", zen3, grouped.FailFast)
	if !errors.Is(err, fault.MalformedInput) {
		t.Errorf("sizes < 1 only: got %v, want MalformedInput", err)
	}
}

func TestToolsFresh(t *testing.T) {
	a, b := NewTools(), NewTools()
	a.Items[0] = Reset
	a.Tooltip[0].Label = "changed"
	if b.Items[0] != WheelZoom || b.Tooltip[0].Label != "Input Size" {
		t.Errorf("NewTools values share state")
	}
	if b.ActiveDrag != Pan {
		t.Errorf("ActiveDrag = %v, want pan", b.ActiveDrag)
	}
	if b.ActiveScroll == WheelZoom {
		t.Errorf("wheel zoom is active by default")
	}
	for _, tool := range []Tool{WheelZoom, BoxZoom, Pan, Hover, Reset} {
		if !b.Has(tool) {
			t.Errorf("NewTools lacks %v", tool)
		}
	}
}

func TestRatios(t *testing.T) {
	c, err := Build(xySizes, grouped.Pair{A: "y", B: "x"}, "i32", "predictable", zen3, grouped.FailFast)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 1, 0.5}
	if diff := cmp.Diff(want, c.Ratios()); diff != "" {
		t.Errorf("Ratios mismatch (-want +got):\n%s", diff)
	}
	g, ok := c.Geomean()
	if !ok || math.Abs(g-(-(math.Cbrt(4)-1))) > 1e-9 {
		t.Errorf("Geomean = %v, %v; want %v", g, ok, -(math.Cbrt(4) - 1))
	}
}

func checkFault(t *testing.T, err error, kind fault.Kind, ctx fault.Context) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("got %v, want %v", err, kind)
	}
	var fe *fault.Error
	if !errors.As(err, &fe) {
		t.Fatalf("error %v is not a *fault.Error", err)
	}
	if diff := cmp.Diff(ctx, fe.Context); diff != "" {
		t.Errorf("fault context mismatch (-want +got):\n%s", diff)
	}
}
