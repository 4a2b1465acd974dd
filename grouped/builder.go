// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grouped

import (
	"fmt"
	"strconv"

	"github.com/sortbench/sortversus/internal/fault"
	"github.com/sortbench/sortversus/speedup"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchmath"
	"golang.org/x/perf/benchproc"
)

// Config says where each dimension of a Result comes from in a
// benchmark result. Each field other than Unit and Filter is a
// single-field benchproc projection, such as "/pattern" for the
// "pattern=" part of a benchmark name.
type Config struct {
	Type      string
	State     string
	Pattern   string
	Size      string
	Algorithm string

	// Unit is the measurement used as the duration.
	Unit string

	// Filter, if non-empty, is a benchproc filter expression
	// applied to every result before grouping.
	Filter string
}

// DefaultConfig matches benchmark names of the form
//
//	BenchmarkSort/type=i32/prediction=predictable/pattern=random/len=1000/impl=ipnsort
func DefaultConfig() Config {
	return Config{
		Type:      "/type",
		State:     "/prediction",
		Pattern:   "/pattern",
		Size:      "/len",
		Algorithm: "/impl",
		Unit:      "sec/op",
	}
}

// A Builder collects benchmark results into a Result.
type Builder struct {
	unit   string
	filter *benchproc.Filter

	// dims holds the projections in cellKey field order.
	dims    [5]*benchproc.Projection
	residue *benchproc.Projection

	cells map[cellKey]*builderCell
	order []cellKey

	// Warn, if non-nil, is called for problems that do not make
	// the input unusable.
	Warn func(format string, args ...interface{})
}

type cellKey struct {
	typ, state, pattern, size, alg string
}

type builderCell struct {
	// values is the observed values in this cell.
	values []float64
	// residue is the set of residue keys mapped to this cell.
	// It is used to check for non-unique keys.
	residue map[benchproc.Key]struct{}
}

// NewBuilder returns a Builder that groups results as described by cfg.
func NewBuilder(cfg Config) (*Builder, error) {
	b := &Builder{unit: cfg.Unit, cells: make(map[cellKey]*builderCell)}
	if cfg.Filter != "" {
		f, err := benchproc.NewFilter(cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("parsing filter: %w", err)
		}
		b.filter = f
	}
	var pp benchproc.ProjectionParser
	for i, dim := range []struct{ name, proj string }{
		{"type", cfg.Type},
		{"state", cfg.State},
		{"pattern", cfg.Pattern},
		{"size", cfg.Size},
		{"algorithm", cfg.Algorithm},
	} {
		p, err := pp.Parse(dim.proj, b.filter)
		if err != nil {
			return nil, fmt.Errorf("parsing %s projection: %w", dim.name, err)
		}
		if n := len(p.Fields()); n != 1 {
			return nil, fmt.Errorf("%s projection %q has %d fields, want 1", dim.name, dim.proj, n)
		}
		b.dims[i] = p
	}
	b.residue = pp.Residue()
	return b, nil
}

// Add adds a single result. Results excluded by the filter are ignored.
// A result without one of the dimensions or the duration unit, or with
// a size that is not an integer, is a fault.MalformedInput.
func (b *Builder) Add(res *benchfmt.Result) error {
	if b.filter != nil {
		if match, _ := b.filter.Apply(res); !match {
			return nil
		}
	}
	file, line := res.Pos()
	malformed := func(format string, args ...interface{}) error {
		return &fault.Error{
			Kind:    fault.MalformedInput,
			Context: fault.Context{File: fmt.Sprintf("%s:%d", file, line)},
			Msg:     fmt.Sprintf("%s: ", res.Name.Full()) + fmt.Sprintf(format, args...),
		}
	}

	var vals [5]string
	for i, p := range b.dims {
		vals[i] = p.Project(res).Get(p.Fields()[0])
		if vals[i] == "" {
			return malformed("no value for %s", p.Fields()[0])
		}
	}
	k := cellKey{vals[0], vals[1], vals[2], vals[3], vals[4]}
	if _, err := strconv.Atoi(k.size); err != nil {
		return malformed("size %q is not an integer", k.size)
	}
	v, ok := res.Value(b.unit)
	if !ok {
		return malformed("no %s measurement", b.unit)
	}
	if !speedup.Valid(v) {
		return malformed("%s = %v is not a positive duration", b.unit, v)
	}

	c := b.cells[k]
	if c == nil {
		c = &builderCell{residue: make(map[benchproc.Key]struct{})}
		b.cells[k] = c
		b.order = append(b.order, k)
	}
	c.values = append(c.values, v)
	c.residue[b.residue.Project(res)] = struct{}{}
	return nil
}

// AddFiles reads every result from files. Syntax errors in the input
// are fault.MalformedInput.
func (b *Builder) AddFiles(files *benchfmt.Files) error {
	for files.Scan() {
		switch rec := files.Result(); rec := rec.(type) {
		case *benchfmt.SyntaxError:
			return fault.Wrap(fault.MalformedInput, rec)
		case *benchfmt.Result:
			if err := b.Add(rec); err != nil {
				return err
			}
		}
	}
	return files.Err()
}

// Result returns the grouped results. Repeated measurements of one
// (type, state, size, pattern, algorithm) cell are summarized by their
// median. An empty Builder is a fault.MalformedInput.
func (b *Builder) Result() (Result, error) {
	if len(b.cells) == 0 {
		return nil, fault.New(fault.MalformedInput, "no %s results", b.unit)
	}
	var residues []benchproc.Key
	r := make(Result)
	for _, k := range b.order {
		c := b.cells[k]
		if len(c.residue) > 1 {
			for rk := range c.residue {
				residues = append(residues, rk)
			}
		}
		size, _ := strconv.Atoi(k.size)
		sample := benchmath.NewSample(c.values, &benchmath.DefaultThresholds)
		center := benchmath.AssumeNothing.Summary(sample, 0.95).Center
		r.set(k.typ, k.state, size, k.pattern, k.alg, center)
	}
	if len(residues) > 0 && b.Warn != nil {
		if nonsingular := benchproc.NonSingularFields(residues); len(nonsingular) > 0 {
			b.Warn("results vary in %s; summarizing by median\n", nonsingular)
		}
	}
	return r, nil
}

func (r Result) set(typ, state string, size int, pattern, alg string, d float64) {
	states := r[typ]
	if states == nil {
		states = make(States)
		r[typ] = states
	}
	sizes := states[state]
	if sizes == nil {
		sizes = make(Sizes)
		states[state] = sizes
	}
	pats := sizes[size]
	if pats == nil {
		pats = make(Patterns)
		sizes[size] = pats
	}
	durs := pats[pattern]
	if durs == nil {
		durs = make(Durations)
		pats[pattern] = durs
	}
	durs[alg] = d
}
