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

package testcases

import "seehuhn.de/go/drawboard"

// All cases use a display width of 100, so that one display pixel
// corresponds to two buffer pixels.

var gestureCases = []TestCase{
	{
		Name:         "tap_dot",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(20), tap(10, 10)),
		Probes: []Probe{
			inked(20, 20), // centre of the dot, radius 10
			inked(27, 20),
			inked(20, 13),
			blank(32, 20),
			blank(20, 32),
			blank(5, 5),
		},
	},
	{
		Name:         "drag_line",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(8), drag(10, 50, 40, 50, 80, 50)),
		Probes: []Probe{
			inked(30, 100),
			inked(90, 98),
			inked(150, 102),
			blank(90, 106),
			blank(90, 92),
			inked(17, 100), // round cap
			inked(162, 100),
			blank(14, 100),
			blank(165, 100),
		},
	},
	{
		Name:         "drag_corner",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(6), drag(20, 20, 60, 20, 60, 60)),
		Probes: []Probe{
			inked(80, 40),
			inked(120, 80),
			inked(120, 38), // round join
			blank(80, 80),
			blank(110, 60),
			blank(35, 40),
		},
	},
	{
		Name:         "single_move",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(4), drag(10, 10, 30, 10)),
		Probes: []Probe{
			inked(40, 20),
			inked(21, 19),
			blank(16, 19), // beyond the round start cap
			blank(40, 24),
		},
	},
	{
		// A 20° corner: a miter would reach far beyond the corner point.
		Name:         "sharp_turn",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(10), drag(20, 50, 80, 50, 20, 71.84)),
		Probes: []Probe{
			inked(100, 100),
			inked(36, 100), // round start cap
			blank(33, 100),
			inked(163, 100), // round join
			blank(175, 97),
			blank(100, 110),
		},
	},
	{
		Name:         "two_taps",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(10), tap(20, 20), tap(70, 70)),
		Probes: []Probe{
			inked(40, 40),
			inked(140, 140),
			blank(90, 90),
		},
	},
}

var eraserCases = []TestCase{
	{
		Name:         "erase_line",
		DisplayWidth: 100,
		Steps: seq(
			strokeWidth(20), drag(10, 50, 90, 50),
			setMode(drawboard.Eraser), eraserWidth(10), drag(50, 20, 50, 80),
		),
		Probes: []Probe{
			inked(40, 100),
			inked(160, 100),
			inked(90, 100),
			blank(100, 100),
			blank(97, 90),
			blank(100, 60),
		},
	},
	{
		// Eraser taps use the full eraser width as radius.
		Name:         "erase_tap",
		DisplayWidth: 100,
		Steps: seq(
			strokeWidth(60), tap(50, 50),
			setMode(drawboard.Eraser), eraserWidth(20), tap(50, 50),
		),
		Probes: []Probe{
			blank(100, 100),
			blank(114, 100),
			inked(124, 100),
			inked(100, 75),
			blank(100, 135),
		},
	},
	{
		Name:         "brush_after_eraser",
		DisplayWidth: 100,
		Steps: seq(
			setMode(drawboard.Eraser), setMode(drawboard.Brush),
			strokeWidth(10), tap(50, 50),
		),
		Probes: []Probe{
			inked(100, 100),
			blank(110, 100),
		},
	},
}
