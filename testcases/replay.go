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

import (
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawboard"
)

// Replay attaches s to a new headless element of the case's display width
// and delivers all steps. The element is returned, s stays attached.
func (tc *TestCase) Replay(s *drawboard.Surface) (*drawboard.Headless, error) {
	elem := drawboard.NewHeadless(tc.DisplayWidth)
	if err := s.Attach(elem); err != nil {
		return nil, fmt.Errorf("%s: %w", tc.Name, err)
	}

	for _, st := range tc.Steps {
		switch st.Op {
		case OpStart:
			elem.Start(st.X, st.Y)
		case OpMove:
			elem.Move(st.X, st.Y)
		case OpEnd:
			elem.End()
		case OpMode:
			s.SetMode(st.Mode)
		case OpStrokeWidth:
			s.SetStrokeWidth(st.Value)
		case OpEraserWidth:
			s.SetEraserWidth(st.Value)
		case OpClear:
			s.Clear()
		case OpResize:
			elem.SetDisplayWidth(st.Value)
		default:
			return nil, fmt.Errorf("%s: unknown op %d", tc.Name, st.Op)
		}
	}
	return elem, nil
}

// Mark is a single paint operation in buffer coordinates.
// A mark with a positive Radius is a filled circle around Points[0].
// Otherwise Points is a polyline, stroked with the given Width, round caps
// and round joins.
type Mark struct {
	Erase  bool
	Width  float64
	Points []vec.Vec2
	Radius float64
}

// Drawing is the expected outcome of a test case.
type Drawing struct {
	Side  int // width and height of the pixel buffer
	Marks []Mark
}

// Expected computes the marks which are visible after the last step,
// without using a rasterizer. The result is used to generate reference
// images with an independent renderer.
func (tc *TestCase) Expected() *Drawing {
	var (
		mode        = drawboard.Brush
		strokeWidth = float64(drawboard.DefaultStrokeWidth)
		eraserWidth = float64(drawboard.DefaultEraserWidth)
		lineWidth   = 1.0
		ratio       float64
		side        int
		marks       []Mark
		path        []vec.Vec2 // nil outside of gestures
		moved       bool
	)

	allocate := func(w float64) {
		side, ratio = 0, 0
		if w > 0 && !math.IsInf(w, 1) {
			side = int(drawboard.SupersampleFactor * w)
			ratio = float64(side) / w
		}
		marks = nil
		path = nil
		lineWidth = 1
	}
	allocate(tc.DisplayWidth)

	for _, st := range tc.Steps {
		switch st.Op {
		case OpStart:
			path = []vec.Vec2{{X: st.X * ratio, Y: st.Y * ratio}}
			moved = false
		case OpMove:
			width := strokeWidth
			if mode == drawboard.Eraser {
				width = eraserWidth
			}
			if path == nil || width == 0 {
				continue
			}
			moved = true
			if width > 0 && !math.IsInf(width, 1) {
				lineWidth = width
			}
			path = append(path, vec.Vec2{X: st.X * ratio, Y: st.Y * ratio})
			marks = append(marks, Mark{
				Erase:  mode == drawboard.Eraser,
				Width:  lineWidth,
				Points: slices.Clone(path),
			})
		case OpEnd:
			if path == nil {
				continue
			}
			if !moved {
				radius := strokeWidth / 2
				if mode == drawboard.Eraser {
					radius = eraserWidth
				}
				if radius > 0 && !math.IsInf(radius, 1) {
					marks = append(marks, Mark{
						Erase:  mode == drawboard.Eraser,
						Points: []vec.Vec2{path[0]},
						Radius: radius,
					})
				}
			}
			path = nil
		case OpMode:
			mode = st.Mode
		case OpStrokeWidth:
			strokeWidth = st.Value
		case OpEraserWidth:
			eraserWidth = st.Value
		case OpClear:
			marks = nil
		case OpResize:
			allocate(st.Value)
		}
	}

	return &Drawing{Side: side, Marks: marks}
}
