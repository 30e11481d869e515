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

// Package raster converts paths into anti-aliased pixel coverage.
//
// Coordinates are device pixels with y pointing down. Output is delivered
// row by row through an [EmitFunc]; the caller decides how coverage is
// combined with existing pixels.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one pixel row, starting at column xMin.
// Values range from 0 (outside) to 1 (inside). The slice is only valid
// during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }

// Rasterizer computes coverage for filled and stroked paths.
// Internal buffers are kept between calls, so a single instance should be
// reused for all drawing on one target.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Clip restricts output to this rectangle. Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in pixels, between a curve and the
	// polygon used to approximate it.
	Flatness float64

	// Width is the line width used by Stroke.
	Width float64

	// Cap is the style used at the open ends of stroked subpaths.
	Cap graphics.LineCapStyle

	// Join is the style used where two stroked segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the line
	// width. Longer miters are drawn as bevels.
	MiterLimit float64

	// bufferedArea is the largest bounding box area (in pixels) which is
	// rasterized using full 2D buffers. Larger paths use an active edge list.
	bufferedArea int

	cover   []float32
	area    []float32
	edges   []edge
	active  []int
	touched []bool

	// bounding box of the collected edges
	boxEmpty     bool
	boxX0, boxX1 float64
	boxY0, boxY1 float64
	nonFinite    bool // some edge had a NaN or infinite coordinate

	// stroke outlines, one polygon per outlineStarts entry
	outline       []vec.Vec2
	outlineStarts []int

	// flattened subpaths, one run of segments per runStarts entry
	segs      []segment
	runStarts []int
	runClosed []bool
	points    []vec.Vec2 // subpaths without direction
}

// NewRasterizer returns a Rasterizer for the given clip rectangle.
// Stroke parameters are set to the defaults of an HTML canvas context.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,

		bufferedArea: bufferedAreaLimit,
	}
}

// Fill computes the coverage of p under the nonzero winding rule.
// Open subpaths are closed implicitly.
func (r *Rasterizer) Fill(p *path.Data, emit EmitFunc) {
	r.startEdges()

	var cur, first vec.Vec2
	open := false
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				r.addEdge(cur, first)
			}
			cur = p.Coords[k]
			first = cur
			open = true
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			c1, c2 := quadControls(cur, p.Coords[k], p.Coords[k+1])
			r.flattenCubic(cur, c1, c2, p.Coords[k+1], r.addEdge)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			r.addEdge(cur, first)
			cur = first
			open = false
		}
	}
	if open {
		r.addEdge(cur, first)
	}

	r.sweep(emit)
}

// quadControls returns the cubic control points equivalent to the quadratic
// Bézier curve p0, c, p1.
func quadControls(p0, c, p1 vec.Vec2) (vec.Vec2, vec.Vec2) {
	return p0.Add(c.Sub(p0).Mul(2.0 / 3)), p1.Add(c.Sub(p1).Mul(2.0 / 3))
}

// flattenCubic approximates a cubic Bézier curve by line segments.
// The number of segments is chosen using Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, line func(a, b vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(min(f, maxCurveSegments)))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		line(prev, pt)
		prev = pt
	}
}

// startEdges discards the edges of the previous path.
func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.boxEmpty = true
	r.nonFinite = false
}

// addEdge records the segment from a to b. Horizontal segments do not
// contribute to coverage and are dropped.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	if !finite(a) || !finite(b) {
		r.nonFinite = true
		return
	}

	dy := b.Y - a.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})

	if r.boxEmpty {
		r.boxX0, r.boxX1 = min(a.X, b.X), max(a.X, b.X)
		r.boxY0, r.boxY1 = min(a.Y, b.Y), max(a.Y, b.Y)
		r.boxEmpty = false
		return
	}
	r.boxX0 = min(r.boxX0, a.X, b.X)
	r.boxX1 = max(r.boxX1, a.X, b.X)
	r.boxY0 = min(r.boxY0, a.Y, b.Y)
	r.boxY1 = max(r.boxY1, a.Y, b.Y)
}

// finite reports whether v can be rasterized. NaN, infinite and very
// large coordinates are rejected.
func finite(v vec.Vec2) bool {
	return math.Abs(v.X) <= maxCoordinate && math.Abs(v.Y) <= maxCoordinate
}

// span returns the pixel range covered by the collected edges, clamped to
// the clip rectangle.
func (r *Rasterizer) span() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 || r.nonFinite {
		return 0, 0, 0, 0, false
	}
	xMin = int(max(math.Floor(r.boxX0), r.Clip.LLx))
	xMax = int(min(math.Floor(r.boxX1)+1, r.Clip.URx))
	yMin = int(max(math.Floor(r.boxY0), r.Clip.LLy))
	yMax = int(min(math.Floor(r.boxY1)+1, r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// sweep rasterizes the collected edges and emits the non-empty rows.
func (r *Rasterizer) sweep(emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.span()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.bufferedArea {
		r.sweepBuffered(xMin, xMax, yMin, yMax, emit)
	} else {
		r.sweepActive(xMin, xMax, yMin, yMax, emit)
	}
}

// Coverage accumulation.
//
// Every pixel carries two numbers. cover is the signed height of the edge
// pieces inside the pixel; it is carried forward to all pixels further
// right. area is the part of that height which falls into the pixel
// itself, weighted by the horizontal distance to the right pixel border.
// Summing the carried cover and the local area along a row gives the
// signed area of the path inside each pixel.

// accumulate adds the part of e inside scanline y to the row buffers.
// The buffers are indexed by x-x0, for x0 <= x < x1. Pieces left of x0
// are folded into the first column.
func accumulate(e *edge, y int, cover, area []float32, x0, x1 int) {
	yTop := max(float64(y), e.top())
	yBot := min(float64(y+1), e.bottom())
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))

	if right < x0 {
		h := sign * float32(yBot-yTop)
		cover[0] += h
		area[0] += h
		return
	}
	if left >= x1 {
		return
	}

	if left == right {
		addPiece(e, yTop, yBot, sign, left, cover, area, x0, x1)
		return
	}

	// The edge crosses several pixel columns; split it at column borders.
	// Everything left of x0 is handled as a single piece.
	dydx := 1 / e.dxdy
	for col := max(left, x0-1); col <= min(right, x1-1); col++ {
		xl, xr := float64(col), float64(col+1)
		if col < x0 {
			xl, xr = float64(left), float64(x0)
		}
		ya := e.y0 + dydx*(xl-e.x0)
		yb := e.y0 + dydx*(xr-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi <= lo {
			continue
		}
		addPiece(e, lo, hi, sign, col, cover, area, x0, x1)
	}
}

// addPiece adds the part of e between heights lo and hi, which lies
// inside pixel column col.
func addPiece(e *edge, lo, hi float64, sign float32, col int, cover, area []float32, x0, x1 int) {
	h := sign * float32(hi-lo)
	switch {
	case col < x0:
		cover[0] += h
		area[0] += h
	case col < x1:
		xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
		i := col - x0
		cover[i] += h
		area[i] += h * float32(1-(xMid-float64(col)))
	}
}

// integrateNonZero turns accumulated cover and area into coverage under the
// nonzero winding rule. The result overwrites cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros strips zero coverage from both ends of a row.
func trimZeros(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}

// sweepBuffered accumulates all edges into 2D buffers covering the
// bounding box, then integrates the rows one by one.
func (r *Rasterizer) sweepBuffered(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin
	n := w * h

	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.touched = slices.Grow(r.touched[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.touched)

	for i := range r.edges {
		e := &r.edges[i]
		y0 := max(int(math.Floor(e.top())), yMin)
		y1 := min(int(math.Floor(e.bottom()))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			k := row * w
			accumulate(e, y, r.cover[k:k+w], r.area[k:k+w], xMin, xMax)
			r.touched[row] = true
		}
	}

	for row := range h {
		if !r.touched[row] {
			continue
		}
		k := row * w
		cov := r.cover[k : k+w]
		integrateNonZero(cov, r.area[k:k+w])
		if trimmed, offs := trimZeros(cov); trimmed != nil {
			emit(yMin+row, xMin+offs, trimmed)
		}
	}
}

// sweepActive processes one scanline at a time, keeping a list of the
// edges which intersect the current line.
func (r *Rasterizer) sweepActive(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.edges) && r.edges[next].top() < yf+1 {
			r.active = append(r.active, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		hit := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.bottom() <= yf {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			hit = true
			i++
		}
		if !hit {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if trimmed, offs := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offs, trimmed)
		}
	}
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches the HTML canvas default.
	defaultMiterLimit = 10.0

	// bufferedAreaLimit separates the two sweep strategies.
	bufferedAreaLimit = 65536

	// maxCurveSegments caps the flattening of huge curves.
	maxCurveSegments = 1 << 12

	// maxCoordinate bounds the coordinates the rasterizer accepts.
	// Paths reaching further out are not drawn.
	maxCoordinate = 1 << 24

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6

	// cuspCosineThreshold detects segments which double back on
	// themselves, cos(179.43°).
	cuspCosineThreshold = -0.9999
)
