// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speedup computes the symmetric relative speedup between two
// measurements and formats it for display.
//
// The relative speedup of a over b is 0 when both took the same time,
// positive when a is faster and negative when b is faster. Its
// magnitude plus one is the multiplicative factor: a value of 1 means
// one side was twice as fast as the other, -0.5 means b was 1.5 times
// as fast as a.
package speedup

import (
	"math"
	"strconv"
)

// Relative returns the symmetric relative speedup of a over b, where a
// and b are durations. Both must be Valid.
func Relative(a, b float64) float64 {
	if a <= b {
		// a is faster.
		return b/a - 1
	}
	// b is faster.
	return -(a/b - 1)
}

// FromRatio converts a time ratio b/a into the relative speedup of a
// over b. FromRatio(b/a) equals Relative(a, b) up to rounding.
func FromRatio(r float64) float64 {
	if r >= 1 {
		return r - 1
	}
	return -(1/r - 1)
}

// Valid reports whether d can be used as a duration in Relative.
func Valid(d float64) bool {
	return d > 0 && !math.IsInf(d, 0)
}

// A TickRule maps a relative-speedup tick value to a label that reads
// as a multiplicative factor. Non-negative ticks t are shown as
// t+Offset and negative ticks as t-Offset, rounded to Precision
// decimal places and followed by Suffix.
//
// TickRule is plain data so each chart backend can implement it in its
// own terms.
type TickRule struct {
	Offset    float64
	Precision int
	Suffix    string
}

// Factor is the rule used on speedup axes: 0 reads as "1.0x", 1 as
// "2.0x", and -1 as "-2.0x".
var Factor = TickRule{Offset: 1, Precision: 1, Suffix: "x"}

// Label returns the label for tick value t.
func (r TickRule) Label(t float64) string {
	v := t - r.Offset
	if t >= 0 {
		v = t + r.Offset
	}
	p := math.Pow(10, float64(r.Precision))
	v = math.Round(v*p) / p
	return strconv.FormatFloat(v, 'f', r.Precision, 64) + r.Suffix
}

// Ticks returns the tick values from lo to hi inclusive in increments
// of step. Values are computed from integer multiples of step so they
// do not accumulate rounding error.
func Ticks(lo, hi, step float64) []float64 {
	n := int(math.Floor((hi-lo)/step + 1e-9))
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		t := lo + float64(i)*step
		// Snap to the step's decimal grid, so -2+10*0.2 is 0, not 4e-16.
		t = math.Round(t/step) * step
		t = math.Round(t*1e9) / 1e9
		ticks = append(ticks, t)
	}
	return ticks
}
