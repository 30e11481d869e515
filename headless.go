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

// Headless is an Element without a screen. Events are injected by calling
// its methods, which makes it useful for tests and for replaying recorded
// gestures.
type Headless struct {
	width float64
	h     Handler
}

// NewHeadless returns an element with the given displayed width.
func NewHeadless(width float64) *Headless {
	return &Headless{width: width}
}

// DisplayWidth implements the Element interface.
func (e *Headless) DisplayWidth() float64 {
	return e.width
}

// Listen implements the Element interface.
func (e *Headless) Listen(h Handler) func() {
	e.h = h
	return func() {
		if e.h == h {
			e.h = nil
		}
	}
}

// Listening reports whether a handler is registered.
func (e *Headless) Listening() bool {
	return e.h != nil
}

// SetDisplayWidth changes the displayed width and notifies the handler.
func (e *Headless) SetDisplayWidth(width float64) {
	e.width = width
	if e.h != nil {
		e.h.Resize()
	}
}

// Start delivers a touch start event at (x, y), in display pixels.
// The delivered event is returned.
func (e *Headless) Start(x, y float64) *TouchEvent {
	ev := NewTouchEvent(vec.Vec2{X: x, Y: y})
	if e.h != nil {
		e.h.TouchStart(ev)
	}
	return ev
}

// Move delivers a touch move event at (x, y).
func (e *Headless) Move(x, y float64) *TouchEvent {
	ev := NewTouchEvent(vec.Vec2{X: x, Y: y})
	if e.h != nil {
		e.h.TouchMove(ev)
	}
	return ev
}

// End delivers a touch end event. Like in browsers, the lifted finger is
// no longer part of the touch list.
func (e *Headless) End() *TouchEvent {
	ev := NewTouchEvent()
	if e.h != nil {
		e.h.TouchEnd(ev)
	}
	return ev
}
