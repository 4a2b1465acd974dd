// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package versus

// A Tool is an interaction a chart offers.
type Tool int

const (
	NoTool Tool = iota
	WheelZoom
	BoxZoom
	Pan
	Hover
	Reset
)

var toolNames = [...]string{
	NoTool:    "none",
	WheelZoom: "wheel-zoom",
	BoxZoom:   "box-zoom",
	Pan:       "pan",
	Hover:     "hover",
	Reset:     "reset",
}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "unknown"
}

// A TooltipField is one row of the hover tooltip.
type TooltipField struct {
	Label string
	Field string // "x", "y", or "pattern"
}

// Tools is the set of interactions of one chart. A Tools value is never
// shared between charts; use NewTools for each chart.
type Tools struct {
	Items []Tool

	// ActiveDrag is the tool a mouse drag uses by default.
	ActiveDrag Tool
	// ActiveScroll is the tool the mouse wheel uses by default.
	ActiveScroll Tool

	Tooltip []TooltipField
}

// NewTools returns the standard chart tools: wheel zoom, box zoom, pan,
// hover and reset, with pan on drag and nothing on the wheel until the
// viewer picks wheel zoom.
func NewTools() Tools {
	return Tools{
		Items:        []Tool{WheelZoom, BoxZoom, Pan, Hover, Reset},
		ActiveDrag:   Pan,
		ActiveScroll: NoTool,
		Tooltip: []TooltipField{
			{"Input Size", "x"},
			{"Relative speedup", "y"},
			{"Name", "pattern"},
		},
	}
}

// Has reports whether t includes tool.
func (t Tools) Has(tool Tool) bool {
	for _, x := range t.Items {
		if x == tool {
			return true
		}
	}
	return false
}
