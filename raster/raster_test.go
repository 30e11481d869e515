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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// grid collects emitted coverage into a w×h array.
type grid struct {
	w, h int
	pix  []float32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, pix: make([]float32, w*h)}
}

func (g *grid) emit(y, xMin int, coverage []float32) {
	copy(g.pix[y*g.w+xMin:], coverage)
}

func (g *grid) at(x, y int) float32 {
	return g.pix[y*g.w+x]
}

func (g *grid) sum() float64 {
	var s float64
	for _, c := range g.pix {
		s += float64(c)
	}
	return s
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
	g := newGrid(10, 1)
	r.Fill(triangle, g.emit)

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20.0
		if d := math.Abs(float64(g.at(x, 0) - expected)); d > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, g.at(x, 0))
		}
	}
}

func TestFillImplicitClose(t *testing.T) {
	square := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 6, Y: 2}).
		LineTo(vec.Vec2{X: 6, Y: 6}).
		LineTo(vec.Vec2{X: 2, Y: 6})

	r := NewRasterizer(rect.Rect{URx: 8, URy: 8})
	g := newGrid(8, 8)
	r.Fill(square, g.emit)

	for y := range 8 {
		for x := range 8 {
			want := float32(0)
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				want = 1
			}
			if got := g.at(x, y); math.Abs(float64(got-want)) > 1e-6 {
				t.Errorf("pixel (%d,%d): got %.4f, want %.0f", x, y, got, want)
			}
		}
	}
}

func TestFillClipped(t *testing.T) {
	// Only the part inside the clip rectangle is emitted.
	big := (&path.Data{}).
		MoveTo(vec.Vec2{X: -100, Y: -100}).
		LineTo(vec.Vec2{X: 100, Y: -100}).
		LineTo(vec.Vec2{X: 100, Y: 100}).
		LineTo(vec.Vec2{X: -100, Y: 100}).
		Close()

	r := NewRasterizer(rect.Rect{URx: 5, URy: 3})
	g := newGrid(5, 3)
	r.Fill(big, g.emit)

	if s := g.sum(); math.Abs(s-15) > 1e-4 {
		t.Errorf("total coverage %.4f, want 15", s)
	}
}

func TestFillNonFinite(t *testing.T) {
	bad := []vec.Vec2{
		{X: math.NaN(), Y: 3},
		{X: 3, Y: math.Inf(1)},
		{X: 1e30, Y: 3},
	}
	for _, p := range bad {
		tri := (&path.Data{}).
			MoveTo(vec.Vec2{X: 1, Y: 1}).
			LineTo(vec.Vec2{X: 8, Y: 1}).
			LineTo(p).
			Close()

		r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
		called := false
		r.Fill(tri, func(y, xMin int, coverage []float32) { called = true })
		if called {
			t.Errorf("%v: coverage emitted for a non-finite path", p)
		}
	}
}

func TestStrokeHorizontal(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 5}).
		LineTo(vec.Vec2{X: 18, Y: 5})

	r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
	r.Width = 4
	g := newGrid(20, 10)
	r.Stroke(line, g.emit)

	for y := range 10 {
		for x := range 20 {
			want := float32(0)
			if x >= 2 && x < 18 && y >= 3 && y < 7 {
				want = 1
			}
			if got := g.at(x, y); math.Abs(float64(got-want)) > 1e-5 {
				t.Errorf("pixel (%d,%d): got %.4f, want %.0f", x, y, got, want)
			}
		}
	}
}

func TestStrokeCaps(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 30, Y: 10})

	// Area of a 20×4 line, extended at both ends by the cap.
	cases := []struct {
		cap  graphics.LineCapStyle
		area float64
	}{
		{graphics.LineCapButt, 80},
		{graphics.LineCapSquare, 96},
		{graphics.LineCapRound, 80 + 4*math.Pi},
	}
	for _, c := range cases {
		t.Run(c.cap.String(), func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 40, URy: 20})
			r.Width = 4
			r.Cap = c.cap
			r.Flatness = 0.01
			g := newGrid(40, 20)
			r.Stroke(line, g.emit)

			if s := g.sum(); math.Abs(s-c.area) > 0.25 {
				t.Errorf("area %.3f, want %.3f", s, c.area)
			}
		})
	}
}

func TestStrokeOverlapCoveredOnce(t *testing.T) {
	// A path which doubles back on itself must not exceed full coverage.
	zigzag := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 10}).
		LineTo(vec.Vec2{X: 35, Y: 10}).
		LineTo(vec.Vec2{X: 5, Y: 11}).
		LineTo(vec.Vec2{X: 35, Y: 12})

	r := NewRasterizer(rect.Rect{URx: 40, URy: 20})
	r.Width = 6
	g := newGrid(40, 20)
	r.Stroke(zigzag, g.emit)

	for i, c := range g.pix {
		if c > 1+1e-5 {
			t.Fatalf("pixel (%d,%d): coverage %.4f > 1", i%g.w, i/g.w, c)
		}
	}
}

func TestStrokeInvalidWidth(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 5}).
		LineTo(vec.Vec2{X: 18, Y: 5})

	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
		r.Width = w
		called := false
		r.Stroke(line, func(y, xMin int, coverage []float32) { called = true })
		if called {
			t.Errorf("width %g: coverage emitted", w)
		}
	}
}

func TestStrokeDegenerate(t *testing.T) {
	dot := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 10})

	r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
	r.Width = 6
	r.Flatness = 0.01

	g := newGrid(20, 20)
	r.Stroke(dot, g.emit)
	if s := g.sum(); s != 0 {
		t.Errorf("butt cap: area %.3f, want 0", s)
	}

	r.Cap = graphics.LineCapRound
	g = newGrid(20, 20)
	r.Stroke(dot, g.emit)
	if s, want := g.sum(), 9*math.Pi; math.Abs(s-want) > 0.25 {
		t.Errorf("round cap: area %.3f, want %.3f", s, want)
	}
}

// TestSweepStrategies checks that the buffered and the active edge list
// sweeps give the same coverage.
func TestSweepStrategies(t *testing.T) {
	const size = 64
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5.3, Y: 7.1}).
		LineTo(vec.Vec2{X: 40.7, Y: 12.2}).
		CubeTo(vec.Vec2{X: 70, Y: 30}, vec.Vec2{X: 10, Y: 50}, vec.Vec2{X: 30.5, Y: 60.5}).
		LineTo(vec.Vec2{X: 8, Y: 33})

	render := func(buffered int, stroke bool) *grid {
		r := NewRasterizer(rect.Rect{URx: size, URy: size})
		r.bufferedArea = buffered
		r.Width = 5
		r.Join = graphics.LineJoinRound
		g := newGrid(size, size)
		if stroke {
			r.Stroke(p, g.emit)
		} else {
			r.Fill(p, g.emit)
		}
		return g
	}

	for _, stroke := range []bool{false, true} {
		a := render(1<<30, stroke)
		b := render(0, stroke)
		for i := range a.pix {
			if d := math.Abs(float64(a.pix[i] - b.pix[i])); d > 1e-4 {
				t.Errorf("stroke=%t pixel (%d,%d): buffered %.5f, active %.5f",
					stroke, i%size, i/size, a.pix[i], b.pix[i])
			}
		}
	}
}
