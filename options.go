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

import (
	"image/color"
	"log/slog"

	"seehuhn.de/go/pdf/graphics"
)

// Option configures a Surface during creation.
//
// Example:
//
//	s := drawboard.New(
//	    drawboard.WithStrokeWidth(3),
//	    drawboard.WithEraserWidth(30),
//	)
type Option func(*options)

type options struct {
	mode        Mode
	strokeWidth float64
	eraserWidth float64
	ink         color.Color
	lineCap     graphics.LineCapStyle
	lineJoin    graphics.LineJoinStyle
	logger      *slog.Logger
}

// Default values for new surfaces.
const (
	DefaultStrokeWidth = 5
	DefaultEraserWidth = 20
)

func defaultOptions() options {
	return options{
		mode:        Brush,
		strokeWidth: DefaultStrokeWidth,
		eraserWidth: DefaultEraserWidth,
		ink:         color.Black,
		lineCap:     graphics.LineCapRound,
		lineJoin:    graphics.LineJoinRound,
	}
}

// WithMode sets the initial mode.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithStrokeWidth sets the initial brush width, in buffer pixels.
func WithStrokeWidth(w float64) Option {
	return func(o *options) {
		o.strokeWidth = w
	}
}

// WithEraserWidth sets the initial eraser width, in buffer pixels.
func WithEraserWidth(w float64) Option {
	return func(o *options) {
		o.eraserWidth = w
	}
}

// WithInk sets the color used by the brush. Only the alpha channel of the
// color matters for the eraser. A nil color is ignored.
func WithInk(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.ink = c
		}
	}
}

// WithLineStyle sets the cap and join style of brush and eraser strokes.
// The default is round caps and round joins.
func WithLineStyle(lineCap graphics.LineCapStyle, join graphics.LineJoinStyle) Option {
	return func(o *options) {
		o.lineCap = lineCap
		o.lineJoin = join
	}
}

// WithLogger sets the logger of the surface, overriding [SetLogger].
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
