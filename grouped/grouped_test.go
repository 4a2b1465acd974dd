// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grouped

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sortbench/sortversus/internal/fault"
)

func TestPairs(t *testing.T) {
	got := Pairs([]string{"c", "a", "b"})
	want := []Pair{{"a", "b"}, {"a", "c"}, {"b", "a"}, {"b", "c"}, {"c", "a"}, {"c", "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pairs mismatch (-want +got):\n%s", diff)
	}
	for _, p := range got {
		if p.A == p.B {
			t.Errorf("pair %v has equal names", p)
		}
	}

	// Order does not depend on input order, and duplicates collapse.
	if diff := cmp.Diff(want, Pairs([]string{"b", "c", "a", "b"})); diff != "" {
		t.Errorf("Pairs of permuted input differs (-want +got):\n%s", diff)
	}

	if got := Pairs([]string{"only"}); len(got) != 0 {
		t.Errorf("Pairs of one name = %v, want none", got)
	}
	if got := Pairs(nil); len(got) != 0 {
		t.Errorf("Pairs(nil) = %v, want none", got)
	}
}

func TestPairsCount(t *testing.T) {
	names := []string{"ipnsort", "fluxsort", "pdqsort", "std_unstable", "crumsort"}
	if got, want := len(Pairs(names)), len(names)*(len(names)-1); got != want {
		t.Errorf("got %d pairs, want %d", got, want)
	}
}

func TestSeries(t *testing.T) {
	sizes := Sizes{
		5: {"p": {"a": 5, "b": 5}},
		1: {"p": {"a": 10, "b": 20}},
	}
	got, err := sizes.Series(Pair{"a", "b"}, "p", FailFast)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{1, 1.0}, {5, 0.0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Series mismatch (-want +got):\n%s", diff)
	}

	got, err = sizes.Series(Pair{"b", "a"}, "p", FailFast)
	if err != nil {
		t.Fatal(err)
	}
	want = []Point{{1, -1.0}, {5, 0.0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reciprocal Series mismatch (-want +got):\n%s", diff)
	}
}

func TestSeriesSkipsSmallAndAbsent(t *testing.T) {
	sizes := Sizes{
		0:   {"p": {"a": 1, "b": 1000}},
		-3:  {"p": {"a": 1, "b": 1000}},
		10:  {"q": {"a": 1, "b": 2}},
		100: {"p": {"a": 300, "b": 100}},
	}
	got, err := sizes.Series(Pair{"a", "b"}, "p", FailFast)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{100, -2.0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Series mismatch (-want +got):\n%s", diff)
	}

	got, err = sizes.Series(Pair{"a", "b"}, "absent", FailFast)
	if err != nil || len(got) != 0 {
		t.Errorf("Series of absent pattern = %v, %v; want no points", got, err)
	}
}

// missingSizes has pattern "p" at sizes 1 and 5, but "b" is missing at 5.
var missingSizes = Sizes{
	1: {"p": {"a": 10, "b": 30}},
	5: {"p": {"a": 5}},
}

func TestSeriesMissingFailFast(t *testing.T) {
	_, err := missingSizes.Series(Pair{"a", "b"}, "p", FailFast)
	if !errors.Is(err, fault.MissingKey) {
		t.Fatalf("got %v, want MissingKey", err)
	}
	var fe *fault.Error
	if !errors.As(err, &fe) {
		t.Fatalf("error %v is not a *fault.Error", err)
	}
	if fe.Size != 5 || fe.Pattern != "p" || fe.A != "a" || fe.B != "b" {
		t.Errorf("fault context = %+v, want pair a/b pattern p size 5", fe.Context)
	}
}

func TestSeriesMissingSkip(t *testing.T) {
	got, err := missingSizes.Series(Pair{"a", "b"}, "p", SkipMissing)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{1, 2.0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Series mismatch (-want +got):\n%s", diff)
	}
}

func TestSeriesInvalidDuration(t *testing.T) {
	sizes := Sizes{1: {"p": {"a": 0, "b": 1}}}
	_, err := sizes.Series(Pair{"a", "b"}, "p", SkipMissing)
	if !errors.Is(err, fault.MalformedInput) {
		t.Errorf("got %v, want MalformedInput", err)
	}
}

func TestResultSeries(t *testing.T) {
	r := Result{"i32": {"predictable": missingSizes}}
	_, err := r.Series(Pair{"a", "b"}, "i32", "predictable", "p", FailFast)
	var fe *fault.Error
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *fault.Error", err)
	}
	if fe.Type != "i32" || fe.State != "predictable" {
		t.Errorf("fault context = %+v, want type and state filled in", fe.Context)
	}

	for _, c := range [][2]string{{"u64", "predictable"}, {"i32", "random"}} {
		if _, err := r.Series(Pair{"a", "b"}, c[0], c[1], "p", FailFast); !errors.Is(err, fault.MissingKey) {
			t.Errorf("Series on %v: got %v, want MissingKey", c, err)
		}
	}
}

func TestTraversal(t *testing.T) {
	r := Result{
		"u64": {"unpredictable": {1: {"random": {"x": 1, "y": 2}}}},
		"i32": {
			"predictable": {
				0:  {"zeros": {"z": 1}},
				10: {"random": {"x": 1, "y": 2}, "ascending": {"x": 1, "y": 2}},
				2:  {"random_d20": {"x": 1, "y": 2}, "random_d2": {"w": 1}},
			},
		},
	}
	if diff := cmp.Diff([]string{"i32", "u64"}, r.Types()); diff != "" {
		t.Errorf("Types mismatch (-want +got):\n%s", diff)
	}
	sizes := r["i32"]["predictable"]
	if diff := cmp.Diff([]int{2, 10}, sizes.Sizes()); diff != "" {
		t.Errorf("Sizes mismatch (-want +got):\n%s", diff)
	}
	if lo, hi, ok := sizes.Bounds(); !ok || lo != 2 || hi != 10 {
		t.Errorf("Bounds = %d, %d, %v; want 2, 10, true", lo, hi, ok)
	}
	wantPats := []string{"ascending", "random", "random_d2", "random_d20", "zeros"}
	if diff := cmp.Diff(wantPats, sizes.Patterns()); diff != "" {
		t.Errorf("Patterns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"w", "x", "y", "z"}, sizes.Algorithms()); diff != "" {
		t.Errorf("Algorithms mismatch (-want +got):\n%s", diff)
	}
	if _, _, ok := (Sizes{0: nil}).Bounds(); ok {
		t.Errorf("Bounds of sizes < 1 reported ok")
	}
}
