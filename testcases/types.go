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

// Package testcases contains recorded interactions with a drawing surface,
// together with the expected state of selected pixels.
package testcases

import (
	"seehuhn.de/go/drawboard"
)

// TestCase is a sequence of user interactions with a surface.
type TestCase struct {
	Name         string  // lowercase a-z and _ only
	DisplayWidth float64 // displayed width of the element
	Steps        []Step
	Probes       []Probe // expected pixel states after the last step
}

// Op identifies the kind of a Step.
type Op int

const (
	OpStart Op = iota
	OpMove
	OpEnd
	OpMode
	OpStrokeWidth
	OpEraserWidth
	OpClear
	OpResize
)

// Step is a single interaction.
type Step struct {
	Op    Op
	X, Y  float64        // touch position for OpStart and OpMove
	Mode  drawboard.Mode // for OpMode
	Value float64        // width for OpStrokeWidth, OpEraserWidth, OpResize
}

// Coverage is the expected state of a probed pixel.
type Coverage int

const (
	// Blank pixels are fully transparent.
	Blank Coverage = iota

	// Inked pixels are fully covered by ink.
	Inked
)

func (c Coverage) String() string {
	if c == Inked {
		return "inked"
	}
	return "blank"
}

// Probe is an expected pixel state, in buffer coordinates.
type Probe struct {
	X, Y int
	Want Coverage
}

func start(x, y float64) Step { return Step{Op: OpStart, X: x, Y: y} }
func move(x, y float64) Step { return Step{Op: OpMove, X: x, Y: y} }
func end() Step { return Step{Op: OpEnd} }
func setMode(m drawboard.Mode) Step { return Step{Op: OpMode, Mode: m} }
func strokeWidth(w float64) Step { return Step{Op: OpStrokeWidth, Value: w} }
func eraserWidth(w float64) Step { return Step{Op: OpEraserWidth, Value: w} }
func clearAll() Step { return Step{Op: OpClear} }
func resize(w float64) Step { return Step{Op: OpResize, Value: w} }
func inked(x, y int) Probe { return Probe{X: x, Y: y, Want: Inked} }
func blank(x, y int) Probe { return Probe{X: x, Y: y, Want: Blank} }
func tap(x, y float64) []Step { return []Step{start(x, y), end()} }

// drag builds a complete gesture through the given display coordinates,
// given as x, y pairs.
func drag(coords ...float64) []Step {
	steps := []Step{start(coords[0], coords[1])}
	for i := 2; i+1 < len(coords); i += 2 {
		steps = append(steps, move(coords[i], coords[i+1]))
	}
	return append(steps, end())
}

// seq concatenates steps and step sequences.
func seq(parts ...any) []Step {
	var res []Step
	for _, p := range parts {
		switch p := p.(type) {
		case Step:
			res = append(res, p)
		case []Step:
			res = append(res, p...)
		}
	}
	return res
}
