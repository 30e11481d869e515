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

import "fmt"

// Composite is a rule for combining painted pixels with the buffer.
type Composite int

const (
	// SourceOver paints the current color over the existing pixels.
	SourceOver Composite = iota

	// DestinationOut removes existing pixels where paint is applied.
	// The paint color is irrelevant, only its alpha is used.
	DestinationOut
)

func (op Composite) String() string {
	switch op {
	case SourceOver:
		return "source-over"
	case DestinationOut:
		return "destination-out"
	default:
		return fmt.Sprintf("Composite(%d)", int(op))
	}
}

// paint combines one row of coverage values with the buffer, using the
// current color and compositing rule. All values are premultiplied.
func (c *Context) paint(y, xMin int, coverage []float32) {
	sa := float32(c.ink.A) / 0xff
	sr := float32(c.ink.R)
	sg := float32(c.ink.G)
	sb := float32(c.ink.B)
	sA := float32(c.ink.A)

	pix := c.img.Pix[c.img.PixOffset(xMin, y):]
	for i, cov := range coverage {
		if cov <= 0 {
			continue
		}
		px := pix[4*i : 4*i+4 : 4*i+4]
		keep := 1 - sa*cov

		switch c.composite {
		case DestinationOut:
			px[0] = scale(px[0], keep, 0)
			px[1] = scale(px[1], keep, 0)
			px[2] = scale(px[2], keep, 0)
			px[3] = scale(px[3], keep, 0)
		default:
			px[0] = scale(px[0], keep, sr*cov)
			px[1] = scale(px[1], keep, sg*cov)
			px[2] = scale(px[2], keep, sb*cov)
			px[3] = scale(px[3], keep, sA*cov)
		}
	}
}

// scale returns v*keep + add, rounded and clamped to a byte.
func scale(v uint8, keep, add float32) uint8 {
	x := float32(v)*keep + add + 0.5
	switch {
	case x <= 0:
		return 0
	case x >= 0xff:
		return 0xff
	default:
		return uint8(x)
	}
}
