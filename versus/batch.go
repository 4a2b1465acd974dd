// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package versus

import (
	"sync"
	"sync/atomic"

	"github.com/sortbench/sortversus/grouped"
	"github.com/sortbench/sortversus/hwinfo"
	"github.com/sortbench/sortversus/internal/fault"
)

// A Job is one chart to render.
type Job struct {
	Pair  grouped.Pair
	Type  string
	State string
}

// A Batch renders and writes every chart of a Result.
type Batch struct {
	Result   grouped.Result
	Hardware hwinfo.Hardware
	Policy   grouped.Policy
	Writer   *Writer

	// File names the input in fault contexts.
	File string

	// Parallel is the maximum number of charts rendered at once.
	// Values below 1 mean 1.
	Parallel int

	// Logf, if non-nil, is called once per written artifact, in Jobs
	// order, from the goroutine calling Run after every job is done.
	Logf func(format string, args ...interface{})
}

// Jobs returns the charts of b in a fixed order: types, then prediction
// states, then ordered algorithm pairs of that group.
func (b *Batch) Jobs() []Job {
	var jobs []Job
	for _, typ := range b.Result.Types() {
		states := b.Result[typ]
		for _, state := range states.States() {
			for _, pair := range grouped.Pairs(states[state].Algorithms()) {
				jobs = append(jobs, Job{pair, typ, state})
			}
		}
	}
	return jobs
}

// Run renders and writes every job. It stops starting new jobs after
// the first failure and returns the error of the earliest failed job in
// Jobs order. On success the artifacts are in Jobs order.
func (b *Batch) Run() ([]*Artifact, error) {
	jobs := b.Jobs()
	artifacts := make([]*Artifact, len(jobs))
	errs := make([]error, len(jobs))

	parallel := b.Parallel
	if parallel < 1 {
		parallel = 1
	}
	limit := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var failed atomic.Bool

	for i, job := range jobs {
		limit <- struct{}{}
		if failed.Load() {
			<-limit
			break
		}
		wg.Add(1)
		go func(i int, job Job) {
			defer func() {
				<-limit
				wg.Done()
			}()
			artifacts[i], errs[i] = b.run(job)
			if errs[i] != nil {
				failed.Store(true)
			}
		}(i, job)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if b.Logf != nil {
		for _, a := range artifacts {
			b.Logf("wrote %s\n", a.Path)
			for _, img := range a.Images {
				b.Logf("wrote %s\n", img)
			}
		}
	}
	return artifacts, nil
}

func (b *Batch) run(job Job) (*Artifact, error) {
	ctx := fault.Context{File: b.File, A: job.Pair.A, B: job.Pair.B, Type: job.Type, State: job.State}
	sizes, err := b.Result.Group(job.Type, job.State)
	if err != nil {
		return nil, fault.Annotate(err, ctx)
	}
	c, err := Build(sizes, job.Pair, job.Type, job.State, b.Hardware, b.Policy)
	if err != nil {
		return nil, fault.Annotate(err, ctx)
	}
	return b.Writer.Write(c)
}
