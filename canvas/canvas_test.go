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
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func pt(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func TestResizeResetsState(t *testing.T) {
	c := New(10, 10)
	c.SetComposite(DestinationOut)
	c.SetLineWidth(7)
	c.SetColor(color.White)
	c.SetLineCap(graphics.LineCapRound)
	c.MoveTo(pt(1, 1))

	c.Resize(20, 5)

	if c.Width() != 20 || c.Height() != 5 {
		t.Errorf("size %dx%d, want 20x5", c.Width(), c.Height())
	}
	if c.Composite() != SourceOver {
		t.Errorf("composite %s, want source-over", c.Composite())
	}
	if c.LineWidth() != 1 {
		t.Errorf("line width %g, want 1", c.LineWidth())
	}
	if c.Color() != (color.RGBA{A: 0xff}) {
		t.Errorf("color %v, want opaque black", c.Color())
	}

	// The path was discarded, so LineTo starts a new one and draws nothing.
	c.LineTo(pt(10, 2))
	c.Stroke()
	for x := range 20 {
		if a := c.RGBAAt(x, 2).A; a != 0 {
			t.Fatalf("pixel (%d,2) has alpha %d", x, a)
		}
	}
}

func TestResizeNegative(t *testing.T) {
	c := New(-3, 4)
	if c.Width() != 0 || c.Height() != 4 {
		t.Errorf("size %dx%d, want 0x4", c.Width(), c.Height())
	}
}

func TestSetLineWidthIgnoresInvalid(t *testing.T) {
	c := New(1, 1)
	c.SetLineWidth(3)
	for _, w := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		c.SetLineWidth(w)
		if c.LineWidth() != 3 {
			t.Errorf("after SetLineWidth(%g): width %g, want 3", w, c.LineWidth())
		}
	}
}

func TestStrokeSourceOver(t *testing.T) {
	c := New(20, 10)
	c.SetLineWidth(4)
	c.MoveTo(pt(2, 5))
	c.LineTo(pt(18, 5))
	c.Stroke()

	if got := c.RGBAAt(10, 5); got != (color.RGBA{A: 0xff}) {
		t.Errorf("inside: %v, want opaque black", got)
	}
	if got := c.RGBAAt(10, 8); got.A != 0 {
		t.Errorf("outside: %v, want transparent", got)
	}
}

func TestStrokeKeepsPath(t *testing.T) {
	c := New(30, 10)
	c.SetLineWidth(2)
	c.MoveTo(pt(2, 5))
	c.LineTo(pt(10, 5))
	c.Stroke()
	c.Clear()

	// The second stroke covers the first segment again.
	c.LineTo(pt(28, 5))
	c.Stroke()
	if a := c.RGBAAt(5, 5).A; a != 0xff {
		t.Errorf("first segment alpha %d, want 255", a)
	}
	if a := c.RGBAAt(20, 5).A; a != 0xff {
		t.Errorf("second segment alpha %d, want 255", a)
	}
}

func TestDestinationOut(t *testing.T) {
	c := New(10, 10)
	c.SetColor(color.RGBA{R: 0xff, A: 0xff})
	c.Arc(pt(5, 5), 10)
	c.Fill()
	if got := c.RGBAAt(5, 5); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("after fill: %v", got)
	}

	// The paint color does not matter for erasing, only its alpha.
	c.SetComposite(DestinationOut)
	c.SetColor(color.RGBA{G: 0xff, A: 0xff})
	c.BeginPath()
	c.Arc(pt(5, 5), 2)
	c.Fill()

	if got := c.RGBAAt(5, 5); got != (color.RGBA{}) {
		t.Errorf("erased pixel: %v, want transparent", got)
	}
	if got := c.RGBAAt(0, 0); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("untouched pixel: %v, want opaque red", got)
	}
}

func TestArcInvalidRadius(t *testing.T) {
	for _, r := range []float64{-1, math.NaN(), math.Inf(1)} {
		c := New(10, 10)
		c.Arc(pt(5, 5), r)
		c.Fill()
		if c.RGBAAt(5, 5).A != 0 {
			t.Errorf("radius %g: pixel painted", r)
		}
	}
}

func TestArcArea(t *testing.T) {
	c := New(40, 40)
	c.Arc(pt(20, 20), 10)
	c.Fill()

	var sum float64
	for y := range 40 {
		for x := range 40 {
			sum += float64(c.RGBAAt(x, y).A) / 0xff
		}
	}
	// Curves are flattened to within a quarter pixel.
	if want := 100 * math.Pi; math.Abs(sum-want) > 0.05*want {
		t.Errorf("area %.2f, want %.2f", sum, want)
	}
}

func TestDataURL(t *testing.T) {
	c := New(8, 8)
	c.Arc(pt(4, 4), 3)
	c.Fill()

	url := c.DataURL()
	if !strings.HasPrefix(url, pngDataPrefix) {
		t.Fatalf("unexpected prefix: %.30q", url)
	}
	data, err := base64.StdEncoding.DecodeString(url[len(pngDataPrefix):])
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("decoded size %v", b)
	}
	if _, _, _, a := img.At(4, 4).RGBA(); a != 0xffff {
		t.Errorf("centre alpha %d, want 0xffff", a)
	}
}

func TestDataURLEmpty(t *testing.T) {
	c := New(0, 0)
	if got := c.DataURL(); got != emptyDataURL {
		t.Errorf("got %q, want %q", got, emptyDataURL)
	}
}

func TestScaled(t *testing.T) {
	c := New(20, 20)
	c.Arc(pt(10, 10), 8)
	c.Fill()

	img := c.Scaled(10, 10)
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Fatalf("size %v", b)
	}
	if a := img.RGBAAt(5, 5).A; a < 0xf0 {
		t.Errorf("centre alpha %d", a)
	}
	if a := img.RGBAAt(0, 0).A; a > 0x10 {
		t.Errorf("corner alpha %d", a)
	}
}

func TestImageIsCopy(t *testing.T) {
	c := New(4, 4)
	img := c.Image()
	img.Pix[3] = 0xff
	if c.RGBAAt(0, 0).A != 0 {
		t.Error("modifying the copy changed the buffer")
	}
}
