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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a flattened piece of a subpath.
type segment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, A→B
	N    vec.Vec2 // unit normal, T rotated by 90°
}

// Stroke computes the coverage of the outline of p, using Width, Cap, Join
// and MiterLimit. Overlapping parts of the outline are covered once.
// Nothing is drawn if Width is not a positive, finite number.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	if !(r.Width > 0) || r.Width > maxCoordinate {
		return
	}

	r.splitSubpaths(p)
	if len(r.runStarts) == 0 && len(r.points) == 0 {
		return
	}

	r.outline = r.outline[:0]
	r.outlineStarts = r.outlineStarts[:0]
	d := r.Width / 2

	// Subpaths without direction are only visible with round caps.
	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.points {
			start := len(r.outline)
			r.addArc(pt, d, vec.Vec2{X: 1}, 2*math.Pi, true)
			r.outlineStarts = append(r.outlineStarts, start)
		}
	}

	for i := range r.runStarts {
		segs := r.run(i)
		start := len(r.outline)
		if r.runClosed[i] {
			r.outlineClosed(segs, d)
		} else {
			r.outlineOpen(segs, d)
		}
		if len(r.outline)-start >= 3 {
			r.outlineStarts = append(r.outlineStarts, start)
		} else {
			r.outline = r.outline[:start]
		}
	}

	r.fillOutline(emit)
}

// splitSubpaths flattens p into runs of segments, one run per subpath.
// Subpaths which contain drawing commands but no segment of positive
// length are collected in r.points.
func (r *Rasterizer) splitSubpaths(p *path.Data) {
	r.segs = r.segs[:0]
	r.runStarts = r.runStarts[:0]
	r.runClosed = r.runClosed[:0]
	r.points = r.points[:0]

	var cur, start vec.Vec2
	first := 0
	open := false
	drew := false

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open && (drew || len(r.segs) > first) {
				r.endRun(first, start, false)
			}
			cur = p.Coords[k]
			start = cur
			first = len(r.segs)
			open = true
			drew = false
			k++

		case path.CmdLineTo:
			if open {
				drew = true
				r.addSegment(cur, p.Coords[k])
				cur = p.Coords[k]
			}
			k++

		case path.CmdQuadTo:
			if open {
				drew = true
				c1, c2 := quadControls(cur, p.Coords[k], p.Coords[k+1])
				r.flattenCubic(cur, c1, c2, p.Coords[k+1], r.addSegment)
				cur = p.Coords[k+1]
			}
			k += 2

		case path.CmdCubeTo:
			if open {
				drew = true
				r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addSegment)
				cur = p.Coords[k+2]
			}
			k += 3

		case path.CmdClose:
			if open {
				if cur != start {
					r.addSegment(cur, start)
				}
				r.endRun(first, start, true)
				cur = start
				first = len(r.segs)
				open = false
				drew = false
			}
		}
	}

	if open && (drew || len(r.segs) > first) {
		r.endRun(first, start, false)
	}
}

// endRun finishes the subpath whose segments start at index first.
func (r *Rasterizer) endRun(first int, start vec.Vec2, closed bool) {
	if len(r.segs) == first {
		r.points = append(r.points, start)
		return
	}
	r.runStarts = append(r.runStarts, first)
	r.runClosed = append(r.runClosed, closed)
}

// run returns the segments of subpath i.
func (r *Rasterizer) run(i int) []segment {
	end := len(r.segs)
	if i+1 < len(r.runStarts) {
		end = r.runStarts[i+1]
	}
	return r.segs[r.runStarts[i]:end]
}

// addSegment appends the segment from a to b, unless it has zero length.
func (r *Rasterizer) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	l := d.Length()
	if !(l >= zeroLengthThreshold) {
		return
	}
	t := d.Mul(1 / l)
	r.segs = append(r.segs, segment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// turn returns the sine of the angle between the tangents t1 and t2.
// Positive values mean that the +N side is on the inside of the corner.
func turn(t1, t2 vec.Vec2) float64 {
	return t1.X*t2.Y - t1.Y*t2.X
}

// outlineOpen appends the outline polygon of an open subpath: the +N side
// forwards, the end cap, the -N side backwards and the start cap.
func (r *Rasterizer) outlineOpen(segs []segment, d float64) {
	first := &segs[0]
	last := &segs[len(segs)-1]

	r.addCap(first.A, first.T.Mul(-1), d)

	skip := false
	for i := range segs {
		s := &segs[i]
		if !skip {
			r.outline = append(r.outline, s.A.Add(s.N.Mul(d)))
		}
		skip = false
		if i == len(segs)-1 {
			r.outline = append(r.outline, s.B.Add(s.N.Mul(d)))
			break
		}
		next := &segs[i+1]
		switch sin := turn(s.T, next.T); {
		case math.Abs(sin) < collinearityThreshold:
			r.outline = append(r.outline, s.B.Add(s.N.Mul(d)))
		case sin > 0:
			skip = r.innerCorner(s.B, s.T, next.T, s.N, next.N, d, true)
		default:
			r.outline = append(r.outline, s.B.Add(s.N.Mul(d)))
			r.addJoin(s.B, s.T, next.T, d, true)
		}
	}

	r.addCap(last.B, last.T, d)

	skip = false
	for i := len(segs) - 1; i >= 0; i-- {
		s := &segs[i]
		if !skip {
			r.outline = append(r.outline, s.B.Sub(s.N.Mul(d)))
		}
		skip = false
		if i == 0 {
			r.outline = append(r.outline, s.A.Sub(s.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		switch sin := turn(prev.T, s.T); {
		case math.Abs(sin) < collinearityThreshold:
			r.outline = append(r.outline, s.A.Sub(s.N.Mul(d)))
		case sin > 0:
			r.outline = append(r.outline, s.A.Sub(s.N.Mul(d)))
			r.addJoin(s.A, prev.T, s.T, d, false)
		default:
			skip = r.innerCorner(s.A, prev.T, s.T, prev.N, s.N, d, false)
		}
	}
}

// outlineClosed appends the outline of a closed subpath. Both sides are
// emitted as one polygon; the corner at the start point is joined like
// all other corners.
func (r *Rasterizer) outlineClosed(segs []segment, d float64) {
	first := &segs[0]
	last := &segs[len(segs)-1]
	closing := turn(last.T, first.T)

	r.outline = append(r.outline, first.A.Add(first.N.Mul(d)))
	for i := range segs {
		s := &segs[i]
		next := first
		sin := closing
		if i < len(segs)-1 {
			next = &segs[i+1]
			sin = turn(s.T, next.T)
		}
		switch {
		case math.Abs(sin) < collinearityThreshold:
			r.outline = append(r.outline, s.B.Add(s.N.Mul(d)), next.A.Add(next.N.Mul(d)))
		case sin > 0:
			r.innerCorner(s.B, s.T, next.T, s.N, next.N, d, true)
		default:
			r.outline = append(r.outline, s.B.Add(s.N.Mul(d)))
			r.addJoin(s.B, s.T, next.T, d, true)
			r.outline = append(r.outline, next.A.Add(next.N.Mul(d)))
		}
	}

	switch {
	case math.Abs(closing) < collinearityThreshold:
		r.outline = append(r.outline, first.A.Sub(first.N.Mul(d)), last.B.Sub(last.N.Mul(d)))
	case closing > 0:
		r.outline = append(r.outline, first.A.Sub(first.N.Mul(d)))
		r.addJoin(first.A, last.T, first.T, d, false)
		r.outline = append(r.outline, last.B.Sub(last.N.Mul(d)))
	default:
		r.innerCorner(first.A, last.T, first.T, last.N, first.N, d, false)
	}

	for i := len(segs) - 1; i >= 0; i-- {
		s := &segs[i]
		if i == 0 {
			r.outline = append(r.outline, s.A.Sub(s.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		switch sin := turn(prev.T, s.T); {
		case math.Abs(sin) < collinearityThreshold:
			r.outline = append(r.outline, s.A.Sub(s.N.Mul(d)), prev.B.Sub(prev.N.Mul(d)))
		case sin > 0:
			r.outline = append(r.outline, s.A.Sub(s.N.Mul(d)))
			r.addJoin(s.A, prev.T, s.T, d, false)
			r.outline = append(r.outline, prev.B.Sub(prev.N.Mul(d)))
		default:
			r.innerCorner(s.A, prev.T, s.T, prev.N, s.N, d, false)
		}
	}
}

// addCap appends the cap at p. The vector t points away from the line.
func (r *Rasterizer) addCap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := p.Add(t.Mul(d))
		r.outline = append(r.outline, ext.Add(n.Mul(d)), ext.Sub(n.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(p, d, n, -math.Pi, true)
	}
	// butt caps need no extra points
}

// innerCorner appends the inner side of the corner at p. Where possible
// the two offset lines are cut at their intersection and true is
// returned, meaning the next offset point must be skipped.
func (r *Rasterizer) innerCorner(p, t1, t2, n1, n2 vec.Vec2, d float64, plusSide bool) bool {
	cos := t1.Dot(t2)
	half := math.Sqrt((1 + cos) / 2) // cos of half the turning angle
	if cos <= 1-1e-9 && half >= 1e-9 {
		dir := n1.Add(n2)
		if !plusSide {
			dir = dir.Mul(-1)
		}
		if l := dir.Length(); l >= 1e-9 {
			r.outline = append(r.outline, p.Add(dir.Mul(d/(l*half))))
			return true
		}
	}

	if plusSide {
		r.outline = append(r.outline, p.Add(n1.Mul(d)), p.Add(n2.Mul(d)))
	} else {
		r.outline = append(r.outline, p.Sub(n1.Mul(d)), p.Sub(n2.Mul(d)))
	}
	return false
}

// addJoin appends the outer side of the corner at p, where the direction
// changes from t1 to t2.
func (r *Rasterizer) addJoin(p, t1, t2 vec.Vec2, d float64, plusSide bool) {
	cos := t1.Dot(t2)
	sin := turn(t1, t2)
	if math.Abs(sin) < collinearityThreshold {
		return
	}

	if cos < cuspCosineThreshold {
		// The path reverses direction: cap both ends.
		r.addCap(p, t1, d)
		r.addCap(p, t2.Mul(-1), d)
		return
	}

	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}
	n2 := vec.Vec2{X: -t2.Y, Y: t2.X}

	switch r.Join {
	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cos)))
		if plusSide {
			if sin < 0 {
				angle = -angle
			}
			r.addArc(p, d, n1, angle, false)
		} else {
			if sin > 0 {
				angle = -angle
			}
			r.addArc(p, d, n2.Mul(-1), angle, false)
		}

	case graphics.LineJoinBevel:
		// the offset points already form the bevel

	default:
		// The miter length relative to the line width is 1/cos(θ/2).
		half := math.Sqrt((1 + cos) / 2)
		if half <= 0 || 1/half > r.MiterLimit+1e-10 {
			return // bevel
		}
		bisector := n1.Add(n2)
		if !plusSide {
			bisector = bisector.Mul(-1)
		}
		l := bisector.Length()
		if l > zeroLengthThreshold {
			r.outline = append(r.outline, p.Add(bisector.Mul(d/(l*half))))
		}
	}
}

// addArc appends points on the circle of the given radius around center,
// starting in direction dir and turning by sweep radians.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, dir vec.Vec2, sweep float64, withStart bool) {
	at := func(angle float64) vec.Vec2 {
		c, s := math.Cos(angle), math.Sin(angle)
		return center.Add(vec.Vec2{
			X: dir.X*c - dir.Y*s,
			Y: dir.X*s + dir.Y*c,
		}.Mul(radius))
	}

	n := 1
	if radius >= r.Flatness {
		// A chord spanning angle θ deviates from the circle by
		// radius*(1-cos(θ/2)).
		step := 2 * math.Acos(1-r.Flatness/radius)
		if !(step > 0) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	i := 1
	if withStart {
		i = 0
	}
	for ; i <= n; i++ {
		r.outline = append(r.outline, at(sweep*float64(i)/float64(n)))
	}
}

// fillOutline rasterizes all outline polygons together, so that
// overlapping parts are covered only once.
func (r *Rasterizer) fillOutline(emit EmitFunc) {
	if len(r.outlineStarts) == 0 {
		return
	}

	r.startEdges()
	for i, start := range r.outlineStarts {
		end := len(r.outline)
		if i+1 < len(r.outlineStarts) {
			end = r.outlineStarts[i+1]
		}
		poly := r.outline[start:end]
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	r.sweep(emit)
}
