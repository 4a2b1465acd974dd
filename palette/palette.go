// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package palette assigns colors to input patterns.
package palette

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/maruel/natural"
	"github.com/sortbench/sortversus/internal/fault"
)

// Colorblind is the 8-color colorblind-safe palette that all pattern
// colors come from.
var Colorblind = [8]color.RGBA{
	{0x00, 0x72, 0xB2, 0xFF},
	{0xE6, 0x9F, 0x00, 0xFF},
	{0xF0, 0xE4, 0x42, 0xFF},
	{0x00, 0x9E, 0x73, 0xFF},
	{0x56, 0xB4, 0xE9, 0xFF},
	{0xD5, 0x5E, 0x00, 0xFF},
	{0xCC, 0x79, 0xA7, 0xFF},
	{0x00, 0x00, 0x00, 0xFF},
}

// Random is the pattern that always gets the last palette slot, so it
// stands out in every chart.
const Random = "random"

const randomSlot = len(Colorblind) - 1

// An Assigner maps each pattern of one group to a palette color.
type Assigner struct {
	patterns []string
	slots    map[string]int
}

// New returns an Assigner for the distinct patterns of a group.
// Patterns are ordered naturally ("n2" before "n10") regardless of the
// order they are given in. It fails with fault.CapacityExceeded if there
// are more distinct patterns than palette colors.
func New(patterns []string) (*Assigner, error) {
	sorted := Sort(patterns)
	if len(sorted) > len(Colorblind) {
		return nil, fault.New(fault.CapacityExceeded, "%d distinct patterns, palette has %d colors", len(sorted), len(Colorblind))
	}
	a := &Assigner{patterns: sorted, slots: make(map[string]int, len(sorted))}
	next := 0
	for _, p := range sorted {
		if p == Random {
			a.slots[p] = randomSlot
			continue
		}
		a.slots[p] = next
		next++
	}
	return a, nil
}

// Patterns returns the assigner's patterns in natural order.
func (a *Assigner) Patterns() []string {
	return append([]string(nil), a.patterns...)
}

// Slot returns the palette index of pattern.
func (a *Assigner) Slot(pattern string) (int, error) {
	slot, ok := a.slots[pattern]
	if !ok {
		return 0, &fault.Error{Kind: fault.MissingKey, Context: fault.Context{Pattern: pattern}, Msg: "pattern not in group"}
	}
	return slot, nil
}

// Color returns the palette color of pattern.
func (a *Assigner) Color(pattern string) (color.RGBA, error) {
	slot, err := a.Slot(pattern)
	if err != nil {
		return color.RGBA{}, err
	}
	return Colorblind[slot], nil
}

// Sort returns the distinct elements of names in natural order.
func Sort(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Sort(natural.StringSlice(out))
	return out
}

// Hex formats c as a CSS color, "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
