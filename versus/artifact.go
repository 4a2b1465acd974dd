// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package versus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// BaseName returns the part of path's final element before its first
// dot, which prefixes every artifact written for that input.
func BaseName(path string) string {
	base, _, _ := strings.Cut(filepath.Base(path), ".")
	return base
}

// An Artifact is a chart that has been written to disk.
type Artifact struct {
	Chart *Chart
	// Path is the HTML document.
	Path string
	// Images are the paths of any static renderings.
	Images []string
}

// A Writer writes charts into a directory, one file per chart and
// format, named "{Base}-{chart name}.{ext}".
type Writer struct {
	// Dir is the output directory. It must exist; Writer does not
	// create directories. Empty means the working directory.
	Dir string
	// Base prefixes every file name, usually BaseName of the input.
	Base string
	// Images lists the static image formats to write alongside the
	// HTML document, from ImageFormats.
	Images []string
}

// Stem returns the file name of c without an extension.
func (w *Writer) Stem(c *Chart) string {
	return w.Base + "-" + c.Name()
}

// Write writes c, replacing any existing files of the same names.
// Images must all be in ImageFormats; otherwise nothing is written.
func (w *Writer) Write(c *Chart) (*Artifact, error) {
	for _, format := range w.Images {
		if !slices.Contains(ImageFormats, format) {
			return nil, fmt.Errorf("unsupported image format %q", format)
		}
	}
	stem := filepath.Join(w.Dir, w.Stem(c))
	a := &Artifact{Chart: c, Path: stem + ".html"}
	if err := writeFile(a.Path, c.WriteHTML); err != nil {
		return nil, err
	}
	for _, format := range w.Images {
		path := stem + "." + format
		err := writeFile(path, func(iw io.Writer) error { return c.WriteImage(iw, format) })
		if err != nil {
			return nil, err
		}
		a.Images = append(a.Images, path)
	}
	return a, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return bw.Flush()
}
