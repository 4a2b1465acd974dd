// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hwinfo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sortbench/sortversus/internal/fault"
)

func TestDefaultLookup(t *testing.T) {
	table := Default()
	for name, want := range map[string]string{
		"zen3-ipnsort":               "Zen3 4.9GHz",
		"ipnsort-ZEN3-run2":          "Zen3 4.9GHz",
		"firestorm_m1":               "Firestorm 3.2GHz",
		"broadwell-i32":              "Broadwell 3GHz",
		"cascade-lake-x-fluxsort_vs": "Cascade Lake-X 4.8GHz",
	} {
		h, err := table.Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		if got := h.Label(); got != want {
			t.Errorf("Lookup(%q).Label() = %q, want %q", name, got, want)
		}
	}
}

func TestUnrecognized(t *testing.T) {
	_, err := Default().Lookup("skylake-results")
	if !errors.Is(err, fault.UnrecognizedHardware) {
		t.Fatalf("got %v, want UnrecognizedHardware", err)
	}
	if !strings.Contains(err.Error(), "skylake-results") {
		t.Errorf("error %q does not name the input", err)
	}
}

func TestFirstMatchWins(t *testing.T) {
	table, err := Parse([]byte(`
- {match: Zen, arch: Zen}
- {match: zen3, arch: Zen3, boost_ghz: 4.9}
`))
	if err != nil {
		t.Fatal(err)
	}
	h, err := table.Lookup("zen3")
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Label(); got != "Zen" {
		t.Errorf("Lookup(zen3).Label() = %q, want Zen", got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, data := range []string{
		`- {arch: Zen3}`,
		`{not: a list}`,
	} {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("Parse(%q) succeeded", data)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hw.yaml")
	if err := os.WriteFile(path, []byte("- {match: graviton, arch: Graviton3, boost_ghz: 2.6}\n"), 0666); err != nil {
		t.Fatal(err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	h, err := table.Lookup("Graviton-u64")
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Label(); got != "Graviton3 2.6GHz" {
		t.Errorf("Label() = %q, want Graviton3 2.6GHz", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load of a missing file succeeded")
	}
}
