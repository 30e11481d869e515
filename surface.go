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

// Package drawboard implements a touch-driven freehand drawing surface.
//
// A [Surface] owns a square pixel buffer at twice the displayed width of
// the element it is attached to. Single-finger drags draw straight line
// segments between the reported touch points, taps draw dots. In [Eraser]
// mode the same gestures clear pixels instead. The buffer can be cleared
// and exported as a PNG image.
//
// All methods must be called from one goroutine, normally the one which
// delivers the events of the element.
package drawboard

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/drawboard/canvas"
)

// SupersampleFactor is the ratio between the width of the pixel buffer and
// the displayed width of the element.
const SupersampleFactor = 2

var (
	// ErrAttached is returned by Attach if the surface already has an
	// element.
	ErrAttached = errors.New("drawboard: surface is already attached")

	// ErrNoElement is returned by Attach for a nil element.
	ErrNoElement = errors.New("drawboard: no element")

	// ErrNotAttached is returned by operations which need a pixel buffer,
	// if the surface is not attached.
	ErrNotAttached = errors.New("drawboard: surface is not attached")

	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("drawboard: unknown mode")
)

// Surface is a freehand drawing surface.
type Surface struct {
	elem   Element
	cancel func()
	ctx    *canvas.Context // nil while not attached

	sizeRatio   float64
	mode        Mode
	strokeWidth float64
	eraserWidth float64

	ink      color.Color
	lineCap  graphics.LineCapStyle
	lineJoin graphics.LineJoinStyle

	gesture *gesture // nil unless a touch is in progress

	log *slog.Logger
}

// gesture is the state of a single-finger touch, from touch start to
// touch end.
type gesture struct {
	start vec.Vec2 // display coordinates
	moved bool
}

// New returns a surface which is not yet attached to an element.
func New(opts ...Option) *Surface {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Surface{
		mode:        o.mode,
		strokeWidth: o.strokeWidth,
		eraserWidth: o.eraserWidth,
		ink:         o.ink,
		lineCap:     o.lineCap,
		lineJoin:    o.lineJoin,
		log:         o.logger,
	}
}

func (s *Surface) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return Logger()
}

// Attach binds the surface to elem: the pixel buffer is allocated to
// match the displayed size of elem, and the surface starts receiving the
// events of elem. Call Detach to release the element.
func (s *Surface) Attach(elem Element) error {
	if elem == nil {
		return ErrNoElement
	}
	if s.elem != nil {
		return ErrAttached
	}

	s.elem = elem
	s.ctx = canvas.New(0, 0)
	s.resize()
	s.cancel = elem.Listen(s)

	s.logger().Info("drawboard: attached",
		"width", s.ctx.Width(), "ratio", s.sizeRatio, "mode", s.mode)
	return nil
}

// Detach stops event delivery and releases the element and the pixel
// buffer. Any gesture in progress is discarded. Detach can be called
// more than once.
func (s *Surface) Detach() {
	if s.elem == nil {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.elem = nil
	s.cancel = nil
	s.ctx = nil
	s.gesture = nil
	s.sizeRatio = 0
	s.logger().Info("drawboard: detached")
}

// Attached reports whether the surface currently has an element.
func (s *Surface) Attached() bool {
	return s.elem != nil
}

// Resize reallocates the pixel buffer to match the displayed width of the
// element. This clears all pixels. A touch in progress is aborted, since
// its coordinates refer to the old buffer.
//
// Resize is called by the element when its size changes.
func (s *Surface) Resize() {
	if s.ctx == nil {
		return
	}
	if s.gesture != nil {
		s.gesture = nil
		s.logger().Debug("drawboard: gesture aborted by resize")
	}
	s.resize()
}

// resize sizes the buffer for the current display width and restores the
// drawing state, which the reallocation resets.
func (s *Surface) resize() {
	w := s.elem.DisplayWidth()

	side := 0
	s.sizeRatio = 0
	if w > 0 && !math.IsInf(w, 1) {
		side = int(SupersampleFactor * w)
		s.sizeRatio = float64(side) / w
	}
	s.ctx.Resize(side, side)
	s.ctx.SetComposite(s.mode.composite())
	s.ctx.SetLineCap(s.lineCap)
	s.ctx.SetLineJoin(s.lineJoin)

	s.logger().Debug("drawboard: buffer allocated",
		"displayWidth", w, "side", side, "ratio", s.sizeRatio)
}

// SizeRatio returns the ratio between buffer pixels and display pixels.
// It is zero while the surface is not attached.
func (s *Surface) SizeRatio() float64 {
	return s.sizeRatio
}

// Size returns the width and height of the pixel buffer.
func (s *Surface) Size() (width, height int) {
	if s.ctx == nil {
		return 0, 0
	}
	return s.ctx.Width(), s.ctx.Height()
}

// SetMode switches between brush and eraser. The compositing rule of the
// buffer changes together with the mode.
func (s *Surface) SetMode(m Mode) {
	s.mode = m
	if s.ctx != nil {
		s.ctx.SetComposite(m.composite())
	}
	s.logger().Debug("drawboard: mode changed", "mode", m)
}

// Mode returns the current mode.
func (s *Surface) Mode() Mode {
	return s.mode
}

// SetStrokeWidth sets the brush width, in buffer pixels. The value is
// not checked: zero disables drawing, other non-positive or non-finite
// widths give degenerate output.
func (s *Surface) SetStrokeWidth(w float64) {
	s.strokeWidth = w
}

// StrokeWidth returns the brush width.
func (s *Surface) StrokeWidth() float64 {
	return s.strokeWidth
}

// SetEraserWidth sets the eraser width, in buffer pixels. Like for
// SetStrokeWidth, the value is not checked.
func (s *Surface) SetEraserWidth(w float64) {
	s.eraserWidth = w
}

// EraserWidth returns the eraser width.
func (s *Surface) EraserWidth() float64 {
	return s.eraserWidth
}

// activeWidth returns the width belonging to the current mode.
func (s *Surface) activeWidth() float64 {
	if s.mode == Eraser {
		return s.eraserWidth
	}
	return s.strokeWidth
}

// Clear makes all pixels transparent. Mode and widths are not changed.
func (s *Surface) Clear() {
	if s.ctx == nil {
		return
	}
	s.ctx.Clear()
}

// ExportImage returns the buffer contents as a PNG data URL of the form
// "data:image/png;base64,...". The empty string is returned if the
// surface is not attached.
func (s *Surface) ExportImage() string {
	if s.ctx == nil {
		return ""
	}
	return s.ctx.DataURL()
}

// WritePNG writes the buffer contents to w as a PNG image.
func (s *Surface) WritePNG(w io.Writer) error {
	if s.ctx == nil {
		return ErrNotAttached
	}
	return s.ctx.EncodePNG(w)
}

// Image returns a copy of the pixel buffer, or nil if the surface is not
// attached.
func (s *Surface) Image() *image.RGBA {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Image()
}

// Preview returns a copy of the pixel buffer, scaled down to the
// displayed size of the element. It returns nil if the surface is not
// attached.
func (s *Surface) Preview() *image.RGBA {
	if s.ctx == nil {
		return nil
	}
	side := int(math.Round(float64(s.ctx.Width()) / SupersampleFactor))
	return s.ctx.Scaled(side, side)
}
