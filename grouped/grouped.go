// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grouped holds benchmark results regrouped by the dimensions
// charts are drawn over, and extracts speedup series from them.
//
// A Result maps
//
//	type -> prediction state -> input size -> pattern -> algorithm -> duration
//
// Within one (type, prediction state) group, every algorithm measured
// for a pattern is expected at every size where that pattern appears.
// A Result is built once per input file and never modified.
package grouped

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/sortbench/sortversus/internal/fault"
	"github.com/sortbench/sortversus/speedup"
)

// Durations maps an algorithm name to its measured duration.
type Durations map[string]float64

// Patterns maps an input pattern to the durations measured on it.
type Patterns map[string]Durations

// Sizes maps an input size to the measurements at that size.
type Sizes map[int]Patterns

// States maps a branch-prediction state to its measurements.
type States map[string]Sizes

// Result maps a data type to its measurements.
type Result map[string]States

// A Pair is an ordered pair of distinct algorithm names.
type Pair struct {
	A, B string
}

func (p Pair) String() string { return p.A + "-vs-" + p.B }

// A Point is the relative speedup of a pair at one input size.
type Point struct {
	Size    int
	Speedup float64
}

// A Policy decides what a missing algorithm measurement does to a
// series.
type Policy int

const (
	// FailFast reports the first missing measurement as a
	// fault.MissingKey error.
	FailFast Policy = iota
	// SkipMissing omits sizes where either algorithm is missing.
	SkipMissing
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case SkipMissing:
		return "skip-missing"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Types returns the data types of r in natural order.
func (r Result) Types() []string { return sortedKeys(r) }

// States returns the prediction states of s in natural order.
func (s States) States() []string { return sortedKeys(s) }

// Group returns the sizes of the (typ, state) group.
func (r Result) Group(typ, state string) (Sizes, error) {
	states, ok := r[typ]
	if !ok {
		return nil, &fault.Error{Kind: fault.MissingKey, Context: fault.Context{Type: typ, State: state}, Msg: "no such type"}
	}
	sizes, ok := states[state]
	if !ok {
		return nil, &fault.Error{Kind: fault.MissingKey, Context: fault.Context{Type: typ, State: state}, Msg: "no such prediction state"}
	}
	return sizes, nil
}

// Series is Sizes.Series on the (typ, state) group of r.
func (r Result) Series(pair Pair, typ, state, pattern string, policy Policy) ([]Point, error) {
	sizes, err := r.Group(typ, state)
	if err != nil {
		return nil, err
	}
	pts, err := sizes.Series(pair, pattern, policy)
	return pts, fault.Annotate(err, fault.Context{Type: typ, State: state})
}

// Sizes returns the input sizes of s that are at least 1, ascending.
func (s Sizes) Sizes() []int {
	sizes := make([]int, 0, len(s))
	for size := range s {
		if size >= 1 {
			sizes = append(sizes, size)
		}
	}
	sort.Ints(sizes)
	return sizes
}

// Bounds returns the smallest and largest input size of s that are at
// least 1. ok is false if there are none.
func (s Sizes) Bounds() (min, max int, ok bool) {
	sizes := s.Sizes()
	if len(sizes) == 0 {
		return 0, 0, false
	}
	return sizes[0], sizes[len(sizes)-1], true
}

// Patterns returns the distinct patterns measured at any size of s, in
// natural order.
func (s Sizes) Patterns() []string {
	set := make(map[string]struct{})
	for _, pats := range s {
		for p := range pats {
			set[p] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Algorithms returns the distinct algorithms measured anywhere in s,
// in natural order.
func (s Sizes) Algorithms() []string {
	set := make(map[string]struct{})
	for _, pats := range s {
		for _, durs := range pats {
			for alg := range durs {
				set[alg] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// Pairs returns every ordered pair of distinct names. Names are
// deduplicated and sorted naturally first, so the order is the same for
// any permutation of the input. Both (a, b) and (b, a) are included.
func Pairs(names []string) []Pair {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	sorted := sortedKeys(set)
	pairs := make([]Pair, 0, len(sorted)*(len(sorted)-1))
	for _, a := range sorted {
		for _, b := range sorted {
			if a != b {
				pairs = append(pairs, Pair{a, b})
			}
		}
	}
	return pairs
}

// Series returns the relative speedup of pair.A over pair.B on pattern
// at every input size of s that is at least 1, ascending by size.
// Sizes where pattern was not measured contribute no point. A size
// where pattern was measured but either algorithm was not is a
// fault.MissingKey; policy decides whether that fails the series or
// drops the point. Non-positive durations are fault.MalformedInput.
func (s Sizes) Series(pair Pair, pattern string, policy Policy) ([]Point, error) {
	var pts []Point
	for _, size := range s.Sizes() {
		durs, ok := s[size][pattern]
		if !ok {
			continue
		}
		ta, okA := durs[pair.A]
		tb, okB := durs[pair.B]
		if !okA || !okB {
			if policy == SkipMissing {
				continue
			}
			missing := pair.A
			if okA {
				missing = pair.B
			}
			return nil, &fault.Error{
				Kind:    fault.MissingKey,
				Context: fault.Context{A: pair.A, B: pair.B, Pattern: pattern, Size: size},
				Msg:     fmt.Sprintf("no measurement for algorithm %q", missing),
			}
		}
		for _, d := range []float64{ta, tb} {
			if !speedup.Valid(d) {
				return nil, &fault.Error{
					Kind:    fault.MalformedInput,
					Context: fault.Context{A: pair.A, B: pair.B, Pattern: pattern, Size: size},
					Msg:     fmt.Sprintf("invalid duration %v", d),
				}
			}
		}
		pts = append(pts, Point{size, speedup.Relative(ta, tb)})
	}
	return pts, nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	return keys
}
