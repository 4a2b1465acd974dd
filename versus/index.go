// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package versus

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/aclements/go-moremath/stats"
	"github.com/google/safehtml/template"
	"github.com/sortbench/sortversus/speedup"
)

// Geomean returns the relative speedup of the chart's pair implied by
// the geometric mean of its time ratios over every point. ok is false
// if the chart has no points.
func (c *Chart) Geomean() (s float64, ok bool) {
	rs := c.Ratios()
	if len(rs) == 0 {
		return 0, false
	}
	return speedup.FromRatio(stats.GeoMean(rs)), true
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
.versus { border-collapse: collapse; }
.versus th { text-align: left; border-bottom: 1px solid #666; padding: 0em 1em; }
.versus td { padding: 0em 1em; }
.versus td.speedup { text-align: right; font-family: monospace; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Hardware}}</p>
<table class='versus'>
<tr><th>type<th>prediction<th>a<th>b<th>geomean
{{range .Rows -}}
<tr><td>{{.Type}}<td>{{.State}}<td><a href='{{.Href}}'>{{.A}}</a><td>{{.B}}<td class='speedup'>{{.Speedup}}
{{end -}}
</table>
</body>
</html>
`))

type indexRow struct {
	Type, State, A, B string
	Href              string
	Speedup           string
}

// WriteIndex writes an HTML document linking every artifact with its
// geomean speedup. Links are relative to the artifacts' directory.
func WriteIndex(w io.Writer, title, hardware string, artifacts []*Artifact) error {
	data := struct {
		Title    string
		Hardware string
		Rows     []indexRow
	}{Title: title, Hardware: hardware}
	for _, a := range artifacts {
		c := a.Chart
		row := indexRow{
			Type:  c.Type,
			State: c.State,
			A:     c.Pair.A,
			B:     c.Pair.B,
			Href:  filepath.Base(a.Path),
		}
		if s, ok := c.Geomean(); ok {
			row.Speedup = fmt.Sprintf("%+.3f (%s)", s, speedup.Factor.Label(s))
		}
		data.Rows = append(data.Rows, row)
	}
	return indexTemplate.Execute(w, data)
}
