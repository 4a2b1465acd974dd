// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sortversus draws pairwise relative-speedup charts from sorting
// benchmark results.
//
// Usage:
//
//	sortversus [flags] results.bench
//
// The input is in the Go benchmark format. By default each result's
// name carries its configuration as key=value parts:
//
//	BenchmarkSort/type=i32/prediction=predictable/pattern=random/len=1000/impl=ipnsort 1 3650 ns/op
//
// For every element type, prediction state and ordered pair (a, b) of
// distinct implementations measured in that group, sortversus writes
// one interactive HTML chart named
//
//	{base}-{a}-vs-{b}-{prediction}-{type}.html
//
// into the output directory, where base is the input file name up to
// its first dot. The chart has one line per input pattern showing the
// relative symmetric speedup of a over b at each input size: 0 means
// equal times, 1 means a took half as long as b, -1 means b took half
// as long as a.
//
// The input file name must identify the machine the results were
// recorded on; the Y axis is labeled with its architecture and boost
// clock. The built-in table knows zen3, firestorm, broadwell and
// cascade. The -hardware flag replaces it with a YAML file of entries
// of the form
//
//	- match: zen3
//	  arch: Zen3
//	  boost_ghz: 4.9
//
// Repeated measurements of one configuration are summarized by their
// median.
//
// Flags:
//
//	-type, -state, -pattern, -size, -impl projection
//		where each dimension comes from, as a benchstat projection
//		of a single field (default /type, /prediction, /pattern,
//		/len, /impl)
//	-unit name
//		measurement used as the duration (default sec/op)
//	-filter query
//		use only results matching the benchstat filter query
//	-hardware file
//		read the hardware table from file
//	-o dir
//		write charts into dir, which must exist (default .)
//	-svg, -png
//		also write static images of each chart
//	-index
//		also write {base}-index.html listing every chart
//	-skip-missing
//		leave out points where a measurement is missing instead
//		of failing
//	-j n
//		render up to n charts at once
//	-v
//		log each written chart and its geomean speedup
//
// Sortversus prints the path of every file it writes. It exits with
// status 1 if any chart cannot be built or written and 2 on a usage
// error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sortbench/sortversus/grouped"
	"github.com/sortbench/sortversus/hwinfo"
	"github.com/sortbench/sortversus/speedup"
	"github.com/sortbench/sortversus/versus"
	"golang.org/x/perf/benchfmt"
)

// errUsage reports a command line that sortversus cannot run. The
// usage message has already been printed.
var errUsage = errors.New("usage error")

func main() {
	log.SetPrefix("sortversus: ")
	log.SetFlags(0)

	err := sortversus(os.Stdout, os.Stderr, os.Args[1:])
	if err != nil && !errors.Is(err, errUsage) {
		log.Print(err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	}
	return 1
}

func sortversus(w, wErr io.Writer, args []string) error {
	cfg := grouped.DefaultConfig()

	flags := flag.NewFlagSet("sortversus", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: sortversus [flags] results.bench\n")
		flags.PrintDefaults()
	}
	flags.StringVar(&cfg.Type, "type", cfg.Type, "element type `projection`")
	flags.StringVar(&cfg.State, "state", cfg.State, "prediction state `projection`")
	flags.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "input pattern `projection`")
	flags.StringVar(&cfg.Size, "size", cfg.Size, "input size `projection`")
	flags.StringVar(&cfg.Algorithm, "impl", cfg.Algorithm, "implementation `projection`")
	flags.StringVar(&cfg.Unit, "unit", cfg.Unit, "duration `unit`")
	flags.StringVar(&cfg.Filter, "filter", "", "use only results matching `query`")
	flagHardware := flags.String("hardware", "", "read the hardware table from `file`")
	flagOut := flags.String("o", ".", "write charts into `dir`")
	flagSVG := flags.Bool("svg", false, "also write SVG images")
	flagPNG := flags.Bool("png", false, "also write PNG images")
	flagIndex := flags.Bool("index", false, "also write an index of all charts")
	flagSkip := flags.Bool("skip-missing", false, "leave out points with missing measurements")
	flagJobs := flags.Int("j", runtime.NumCPU(), "render up to `n` charts at once")
	flagVerbose := flags.Bool("v", false, "log each chart")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errUsage
	}
	input := flags.Arg(0)

	table := hwinfo.Default()
	if *flagHardware != "" {
		var err error
		if table, err = hwinfo.Load(*flagHardware); err != nil {
			return err
		}
	}
	hw, err := table.Lookup(filepath.Base(input))
	if err != nil {
		return err
	}

	warn := func(format string, args ...interface{}) {
		fmt.Fprintf(wErr, format, args...)
	}
	builder, err := grouped.NewBuilder(cfg)
	if err != nil {
		return err
	}
	builder.Warn = warn
	files := &benchfmt.Files{Paths: []string{input}}
	if err := builder.AddFiles(files); err != nil {
		return err
	}
	result, err := builder.Result()
	if err != nil {
		return err
	}

	policy := grouped.FailFast
	if *flagSkip {
		policy = grouped.SkipMissing
	}
	writer := &versus.Writer{Dir: *flagOut, Base: versus.BaseName(input)}
	if *flagSVG {
		writer.Images = append(writer.Images, "svg")
	}
	if *flagPNG {
		writer.Images = append(writer.Images, "png")
	}
	batch := &versus.Batch{
		Result:   result,
		Hardware: hw,
		Policy:   policy,
		Writer:   writer,
		File:     input,
		Parallel: *flagJobs,
	}
	if *flagVerbose {
		batch.Logf = warn
	}
	artifacts, err := batch.Run()
	if err != nil {
		return err
	}

	for _, a := range artifacts {
		fmt.Fprintln(w, a.Path)
		for _, img := range a.Images {
			fmt.Fprintln(w, img)
		}
		if *flagVerbose {
			if s, ok := a.Chart.Geomean(); ok {
				warn("%s: geomean %+.3f (%s)\n", a.Chart.Name(), s, speedup.Factor.Label(s))
			}
		}
	}

	if *flagIndex {
		path := filepath.Join(*flagOut, writer.Base+"-index.html")
		if err := writeIndex(path, writer.Base, hw.Label(), artifacts); err != nil {
			return err
		}
		fmt.Fprintln(w, path)
	}
	return nil
}

func writeIndex(path, title, hardware string, artifacts []*versus.Artifact) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := versus.WriteIndex(f, title, hardware, artifacts); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
