// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hwinfo identifies the machine a benchmark file was recorded
// on from the file's name.
package hwinfo

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sortbench/sortversus/internal/fault"
	"gopkg.in/yaml.v3"
)

// Hardware describes one benchmark machine.
type Hardware struct {
	// Match is the case-insensitive substring of a result file
	// name that identifies this machine.
	Match    string  `yaml:"match"`
	Arch     string  `yaml:"arch"`
	BoostGHz float64 `yaml:"boost_ghz"`
}

// Label returns a short description of h for chart titles, such as
// "Zen3 4.9GHz".
func (h Hardware) Label() string {
	if h.BoostGHz == 0 {
		return h.Arch
	}
	return h.Arch + " " + strconv.FormatFloat(h.BoostGHz, 'f', -1, 64) + "GHz"
}

// A Table is an ordered list of known machines. The first matching
// entry wins.
type Table []Hardware

//go:embed hardware.yaml
var defaultYAML []byte

// Default returns the built-in table.
func Default() Table {
	t, err := Parse(defaultYAML)
	if err != nil {
		// The embedded table is part of the binary.
		panic(err)
	}
	return t
}

// Parse decodes a YAML table.
func Parse(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	for i, h := range t {
		if h.Match == "" || h.Arch == "" {
			return nil, fmt.Errorf("hardware entry %d: match and arch are required", i)
		}
		t[i].Match = strings.ToLower(h.Match)
	}
	return t, nil
}

// Load reads a YAML table from path.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Lookup returns the first entry whose Match is a substring of name.
// There is no fallback: if nothing matches, Lookup fails with
// fault.UnrecognizedHardware.
func (t Table) Lookup(name string) (Hardware, error) {
	lower := strings.ToLower(name)
	for _, h := range t {
		if strings.Contains(lower, h.Match) {
			return h, nil
		}
	}
	return Hardware{}, &fault.Error{
		Kind:    fault.UnrecognizedHardware,
		Context: fault.Context{File: name},
		Msg:     fmt.Sprintf("name matches none of %s", t.matches()),
	}
}

func (t Table) matches() string {
	m := make([]string, len(t))
	for i, h := range t {
		m[i] = strconv.Quote(h.Match)
	}
	return strings.Join(m, ", ")
}
