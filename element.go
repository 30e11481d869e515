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

// Element is the on-screen element a Surface draws for, typically a
// canvas element provided by the host UI.
type Element interface {
	// DisplayWidth returns the displayed width of the element, in display
	// (CSS) pixels.
	DisplayWidth() float64

	// Listen arranges for touch and resize notifications of the element to
	// be delivered to h, until the returned function is called.
	Listen(h Handler) (cancel func())
}

// Handler receives the events of an Element.
// Handlers are called one at a time, never concurrently.
type Handler interface {
	TouchStart(ev *TouchEvent)
	TouchMove(ev *TouchEvent)
	TouchEnd(ev *TouchEvent)

	// Resize is called after the displayed size of the element changed.
	Resize()
}

// TouchEvent describes a touch notification.
type TouchEvent struct {
	// Touches lists the active touch points, relative to the top-left
	// corner of the element, in display pixels. Only the first point is
	// used by a Surface.
	Touches []vec.Vec2

	prevented bool
}

// NewTouchEvent returns an event for the given touch points.
func NewTouchEvent(touches ...vec.Vec2) *TouchEvent {
	return &TouchEvent{Touches: touches}
}

// PreventDefault asks the host not to perform its default action, for
// example scrolling, for this event.
func (ev *TouchEvent) PreventDefault() {
	ev.prevented = true
}

// DefaultPrevented reports whether PreventDefault has been called.
func (ev *TouchEvent) DefaultPrevented() bool {
	return ev.prevented
}

// first returns the first touch point of the event.
func (ev *TouchEvent) first() (vec.Vec2, bool) {
	if len(ev.Touches) == 0 {
		return vec.Vec2{}, false
	}
	return ev.Touches[0], true
}
