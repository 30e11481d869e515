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

// Command genpdf generates reference images for the drawing surface tests.
// The expected marks of every test case are drawn into a PDF file, which
// is then rendered to PNG using Ghostscript.
package main

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/drawboard/testcases"
)

const refDir = "testdata/reference"

// kappa is the control point distance for a quarter circle of radius 1.
const kappa = 0.5522847498307936

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			d := tc.Expected()
			if d.Side == 0 {
				continue
			}
			if err := generatePDF(d, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(d *testcases.Drawing, pdfPath string) error {
	side := float64(d.Side)
	paper := &pdf.Rectangle{URx: side, URy: side}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Black background: 0 is a transparent pixel, 255 full ink.
	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, side, side)
	page.Fill()

	// The buffer has its origin in the top-left corner.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, side})

	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	// Erasing is painting with the background color.
	for _, m := range d.Marks {
		gray := color.DeviceGray(1)
		if m.Erase {
			gray = color.DeviceGray(0)
		}

		if m.Radius > 0 {
			c := m.Points[0]
			r := m.Radius
			k := r * kappa
			page.SetFillColor(gray)
			page.MoveTo(c.X+r, c.Y)
			page.CurveTo(c.X+r, c.Y+k, c.X+k, c.Y+r, c.X, c.Y+r)
			page.CurveTo(c.X-k, c.Y+r, c.X-r, c.Y+k, c.X-r, c.Y)
			page.CurveTo(c.X-r, c.Y-k, c.X-k, c.Y-r, c.X, c.Y-r)
			page.CurveTo(c.X+k, c.Y-r, c.X+r, c.Y-k, c.X+r, c.Y)
			page.ClosePath()
			page.Fill()
			continue
		}

		page.SetStrokeColor(gray)
		page.SetLineWidth(m.Width)
		for i, pt := range m.Points {
			if i == 0 {
				page.MoveTo(pt.X, pt.Y)
			} else {
				page.LineTo(pt.X, pt.Y)
			}
		}
		page.Stroke()
	}

	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale, matching the alpha channel
	// -r72: 1 point = 1 pixel
	// -dGraphicsAlphaBits=4: anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
