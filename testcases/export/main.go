// seehuhn.de/go/drawboard - a touch drawing surface
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command export replays all test cases on a drawing surface.
// The resulting buffers are written as PNG images to testdata/output,
// and the expected marks of every case are written to
// testdata/testcases.json. Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/drawboard"
	"seehuhn.de/go/drawboard/testcases"
)

const outDir = "testdata/output"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := writePNG(&tc, filepath.Join(outDir, name+".png")); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			out.TestCases = append(out.TestCases, toJSON(name, tc.Expected()))
		}
	}

	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

func writePNG(tc *testcases.TestCase, fname string) error {
	s := drawboard.New()
	if _, err := tc.Replay(s); err != nil {
		return err
	}
	defer s.Detach()

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type jsonTestCase struct {
	Name  string     `json:"name"`
	Side  int        `json:"side"`
	Marks []jsonMark `json:"marks"`
}

type jsonMark struct {
	Op     string      `json:"op"` // "stroke" or "dot"
	Erase  bool        `json:"erase,omitempty"`
	Width  float64     `json:"width,omitempty"`
	Radius float64     `json:"radius,omitempty"`
	Pts    [][]float64 `json:"pts"`
}

func toJSON(name string, d *testcases.Drawing) jsonTestCase {
	jtc := jsonTestCase{
		Name:  name,
		Side:  d.Side,
		Marks: []jsonMark{},
	}
	for _, m := range d.Marks {
		jm := jsonMark{
			Op:    "stroke",
			Erase: m.Erase,
			Width: m.Width,
			Pts:   make([][]float64, len(m.Points)),
		}
		if m.Radius > 0 {
			jm.Op = "dot"
			jm.Width = 0
			jm.Radius = m.Radius
		}
		for i, pt := range m.Points {
			jm.Pts[i] = []float64{pt.X, pt.Y}
		}
		jtc.Marks = append(jtc.Marks, jm)
	}
	return jtc
}
