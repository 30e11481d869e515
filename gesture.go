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

package drawboard

import "seehuhn.de/go/geom/vec"

// toBuffer maps a point from display coordinates to buffer coordinates.
func (s *Surface) toBuffer(p vec.Vec2) vec.Vec2 {
	return p.Mul(s.sizeRatio)
}

// TouchStart begins a gesture at the first touch point of ev.
// A new path is started at this point.
func (s *Surface) TouchStart(ev *TouchEvent) {
	ev.PreventDefault()
	p, ok := ev.first()
	if !ok || s.ctx == nil {
		return
	}

	s.gesture = &gesture{start: p}
	s.ctx.BeginPath()
	// Unlike a bare canvas lineTo, the first move draws from the touch point.
	s.ctx.MoveTo(s.toBuffer(p))
}

// TouchMove extends the path of the current gesture to the first touch
// point of ev, and strokes the whole path with the width of the current
// mode. Nothing happens while this width is zero.
func (s *Surface) TouchMove(ev *TouchEvent) {
	ev.PreventDefault()
	g := s.gesture
	width := s.activeWidth()
	if g == nil || s.ctx == nil || width == 0 {
		return
	}
	p, ok := ev.first()
	if !ok {
		return
	}

	g.moved = true
	s.ctx.SetColor(s.ink)
	s.ctx.SetLineWidth(width)
	s.ctx.LineTo(s.toBuffer(p))
	s.ctx.Stroke()
}

// TouchEnd finishes the current gesture. A gesture without movement
// leaves a dot at its start point: in brush mode the dot has the stroke
// width as its diameter, in eraser mode the eraser width is the radius.
func (s *Surface) TouchEnd(ev *TouchEvent) {
	ev.PreventDefault()
	g := s.gesture
	if g == nil {
		return
	}
	s.gesture = nil

	if g.moved || s.ctx == nil {
		return
	}

	radius := s.strokeWidth / 2
	if s.mode == Eraser {
		radius = s.eraserWidth
	}
	s.ctx.BeginPath()
	s.ctx.SetColor(s.ink)
	s.ctx.Arc(s.toBuffer(g.start), radius)
	s.ctx.Fill()
}

// Gesturing reports whether a touch is in progress.
func (s *Surface) Gesturing() bool {
	return s.gesture != nil
}
