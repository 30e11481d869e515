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

var lifecycleCases = []TestCase{
	{
		Name:         "clear",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(10), drag(10, 10, 90, 90), clearAll()),
		Probes: []Probe{
			blank(20, 20),
			blank(100, 100),
			blank(160, 160),
		},
	},
	{
		Name:         "draw_after_clear",
		DisplayWidth: 100,
		Steps: seq(
			strokeWidth(10), drag(10, 10, 90, 10), clearAll(),
			tap(50, 50),
		),
		Probes: []Probe{
			blank(100, 20),
			inked(100, 100),
		},
	},
	{
		// The path survives clearing, the next move strokes all of it.
		Name:         "clear_mid_gesture",
		DisplayWidth: 100,
		Steps: seq(
			strokeWidth(10), start(10, 50), move(50, 50), clearAll(),
			move(90, 50), end(),
		),
		Probes: []Probe{
			inked(60, 100),
			inked(140, 100),
		},
	},
	{
		Name:         "resize_clears",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(10), drag(10, 50, 90, 50), resize(100)),
		Probes: []Probe{
			blank(40, 100),
			blank(100, 100),
		},
	},
	{
		Name:         "resize_grows",
		DisplayWidth: 100,
		Steps:        seq(resize(150), strokeWidth(10), tap(120, 120)),
		Probes: []Probe{
			inked(240, 240),
			blank(250, 240),
		},
	},
	{
		// A resize aborts the gesture: later moves and the end are ignored.
		Name:         "resize_mid_gesture",
		DisplayWidth: 100,
		Steps: seq(
			strokeWidth(10), start(10, 10), move(50, 10), resize(100),
			move(90, 10), end(),
		),
		Probes: []Probe{
			blank(20, 20),
			blank(60, 20),
			blank(140, 20),
		},
	},
	{
		Name:         "eraser_survives_resize",
		DisplayWidth: 100,
		Steps: seq(
			setMode(drawboard.Eraser), resize(100), eraserWidth(10),
			drag(10, 50, 90, 50), tap(50, 80),
		),
		Probes: []Probe{
			blank(100, 100),
			blank(100, 160),
		},
	},
}

var widthCases = []TestCase{
	{
		Name:         "zero_brush_width",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(0), drag(10, 50, 90, 50), tap(50, 80)),
		Probes: []Probe{
			blank(100, 100),
			blank(100, 160),
		},
	},
	{
		Name:         "zero_eraser_width",
		DisplayWidth: 100,
		Steps: seq(
			strokeWidth(20), drag(10, 50, 90, 50),
			setMode(drawboard.Eraser), eraserWidth(0), drag(50, 20, 50, 80),
		),
		Probes: []Probe{
			inked(100, 100),
			inked(100, 92),
		},
	},
	{
		Name:         "width_change",
		DisplayWidth: 100,
		Steps: seq(
			strokeWidth(4), drag(10, 20, 90, 20),
			strokeWidth(20), drag(10, 70, 90, 70),
		),
		Probes: []Probe{
			inked(100, 40),
			blank(100, 44),
			inked(100, 148),
			blank(100, 152),
		},
	},
	{
		Name:         "negative_width_tap",
		DisplayWidth: 100,
		Steps:        seq(strokeWidth(-10), tap(50, 50)),
		Probes: []Probe{
			blank(100, 100),
		},
	},
}
