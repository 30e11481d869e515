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

package canvas

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// pngDataPrefix starts every data URL returned by DataURL.
const pngDataPrefix = "data:image/png;base64,"

// emptyDataURL is returned for a buffer without pixels, matching what
// browsers return for a canvas of size zero.
const emptyDataURL = "data:,"

// EncodePNG writes the buffer to w as a PNG image.
func (c *Context) EncodePNG(w io.Writer) error {
	enc := &png.Encoder{CompressionLevel: png.DefaultCompression}
	return enc.Encode(w, c.img)
}

// DataURL returns the buffer as a base64-encoded PNG data URL.
func (c *Context) DataURL() string {
	if c.img.Rect.Empty() {
		return emptyDataURL
	}

	buf := &bytes.Buffer{}
	if err := c.EncodePNG(buf); err != nil {
		// encoding to memory only fails for empty images
		return emptyDataURL
	}
	return pngDataPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// Image returns a copy of the buffer.
func (c *Context) Image() *image.RGBA {
	img := image.NewRGBA(c.img.Rect)
	copy(img.Pix, c.img.Pix)
	return img
}

// Scaled returns a copy of the buffer, resampled to the given size.
func (c *Context) Scaled(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	if dst.Rect.Empty() || c.img.Rect.Empty() {
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Rect, c.img, c.img.Rect, xdraw.Src, nil)
	return dst
}
