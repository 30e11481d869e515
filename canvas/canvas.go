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

// Package canvas implements an immediate mode 2D drawing context, modelled
// on the HTML canvas API, on top of an RGBA pixel buffer.
//
// Drawing state (color, line width, compositing rule) applies to every
// subsequent paint operation until it is changed. Paths are built with
// BeginPath, MoveTo, LineTo and Arc and painted with Stroke or Fill.
package canvas

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/drawboard/raster"
)

// Context is a drawing context for a single pixel buffer.
//
// A Context is not safe for concurrent use.
type Context struct {
	img *image.RGBA
	ras *raster.Rasterizer

	path path.Data

	composite  Composite
	ink        color.RGBA // premultiplied
	lineWidth  float64
	lineCap    graphics.LineCapStyle
	lineJoin   graphics.LineJoinStyle
	miterLimit float64
}

// New returns a context with a transparent buffer of the given size.
func New(width, height int) *Context {
	c := &Context{}
	c.Resize(width, height)
	return c
}

// Resize replaces the buffer by a transparent one of the given size and
// resets all drawing state to its defaults, just like assigning to the
// width of an HTML canvas does. Negative sizes are treated as zero.
func (c *Context) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)

	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	if c.ras == nil {
		c.ras = raster.NewRasterizer(clip)
	} else {
		c.ras.Clip = clip
	}

	c.BeginPath()
	c.composite = SourceOver
	c.ink = color.RGBA{A: 0xff}
	c.lineWidth = 1
	c.lineCap = graphics.LineCapButt
	c.lineJoin = graphics.LineJoinMiter
	c.miterLimit = 10
}

// Width returns the width of the buffer in pixels.
func (c *Context) Width() int { return c.img.Rect.Dx() }

// Height returns the height of the buffer in pixels.
func (c *Context) Height() int { return c.img.Rect.Dy() }

// Clear makes every pixel of the buffer transparent.
// The drawing state and the current path are not changed.
func (c *Context) Clear() {
	clear(c.img.Pix)
}

// RGBAAt returns the premultiplied color of the pixel at (x, y).
func (c *Context) RGBAAt(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// SetComposite sets the rule used to combine painted pixels with the
// buffer contents.
func (c *Context) SetComposite(op Composite) {
	c.composite = op
}

// Composite returns the current compositing rule.
func (c *Context) Composite() Composite {
	return c.composite
}

// SetColor sets the color used by Stroke and Fill.
func (c *Context) SetColor(col color.Color) {
	c.ink = color.RGBAModel.Convert(col).(color.RGBA)
}

// Color returns the current paint color.
func (c *Context) Color() color.RGBA {
	return c.ink
}

// SetLineWidth sets the width used by Stroke. As for an HTML canvas,
// zero, negative, infinite and NaN values are ignored.
func (c *Context) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 1) {
		c.lineWidth = w
	}
}

// LineWidth returns the current line width.
func (c *Context) LineWidth() float64 {
	return c.lineWidth
}

// SetLineCap sets the style of the ends of stroked subpaths.
func (c *Context) SetLineCap(lineCap graphics.LineCapStyle) {
	c.lineCap = lineCap
}

// SetLineJoin sets the style of corners in stroked paths.
func (c *Context) SetLineJoin(join graphics.LineJoinStyle) {
	c.lineJoin = join
}

// SetMiterLimit sets the miter limit. Values below 1 are ignored.
func (c *Context) SetMiterLimit(limit float64) {
	if limit >= 1 && !math.IsInf(limit, 1) {
		c.miterLimit = limit
	}
}

// BeginPath discards the current path.
func (c *Context) BeginPath() {
	c.path.Cmds = c.path.Cmds[:0]
	c.path.Coords = c.path.Coords[:0]
}

// MoveTo starts a new subpath at p.
func (c *Context) MoveTo(p vec.Vec2) {
	c.path.MoveTo(p)
}

// LineTo adds a straight line to p. If the path is empty, this is the
// same as MoveTo.
func (c *Context) LineTo(p vec.Vec2) {
	if len(c.path.Cmds) == 0 {
		c.path.MoveTo(p)
		return
	}
	c.path.LineTo(p)
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	if len(c.path.Cmds) > 0 {
		c.path.Close()
	}
}

// kappa is the control point distance for approximating a quarter circle
// of radius 1 by a cubic Bézier curve.
const kappa = 0.5522847498307936

// Arc adds a full circle around center to the path. If the path is not
// empty, a straight line connects the current point to the start of the
// circle. Circles with a negative or non-finite radius are not added.
func (c *Context) Arc(center vec.Vec2, radius float64) {
	if !(radius >= 0) || math.IsInf(radius, 1) {
		return
	}

	x, y := center.X, center.Y
	k := radius * kappa
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

	c.LineTo(pt(x+radius, y))
	c.path.
		CubeTo(pt(x+radius, y+k), pt(x+k, y+radius), pt(x, y+radius)).
		CubeTo(pt(x-k, y+radius), pt(x-radius, y+k), pt(x-radius, y)).
		CubeTo(pt(x-radius, y-k), pt(x-k, y-radius), pt(x, y-radius)).
		CubeTo(pt(x+k, y-radius), pt(x+radius, y-k), pt(x+radius, y))
}

// Stroke paints the outline of the current path. The path is kept, so
// that further segments can be added and the whole path stroked again.
func (c *Context) Stroke() {
	c.ras.Width = c.lineWidth
	c.ras.Cap = c.lineCap
	c.ras.Join = c.lineJoin
	c.ras.MiterLimit = c.miterLimit
	c.ras.Stroke(&c.path, c.paint)
}

// Fill paints the interior of the current path, using the nonzero winding
// rule.
func (c *Context) Fill() {
	c.ras.Fill(&c.path, c.paint)
}
