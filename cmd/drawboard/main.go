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

//go:build js && wasm

// Command drawboard runs a drawing surface in a web page.
//
// The page must contain a canvas element with id "drawboard", whose
// displayed size is set by CSS. Build with
//
//	GOOS=js GOARCH=wasm go build -o drawboard.wasm ./cmd/drawboard
//
// and load the result using wasm_exec.js from the Go distribution. The
// page can control the surface through the global object "drawboard",
// which has the methods setMode, setStrokeWidth, setEraserWidth, clear
// and exportImage.
package main

import (
	"image"
	"log/slog"
	"os"
	"syscall/js"

	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawboard"
)

func main() {
	drawboard.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "drawboard")
	if canvas.IsNull() {
		slog.Error("no canvas element with id \"drawboard\"")
		return
	}

	elem := &domElement{canvas: canvas}
	s := drawboard.New()
	elem.surface = s
	if err := s.Attach(elem); err != nil {
		slog.Error("attach failed", "error", err)
		return
	}
	elem.present()

	js.Global().Set("drawboard", api(s, elem))

	select {}
}

// api builds the JavaScript object used by the page to control s.
func api(s *drawboard.Surface, elem *domElement) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("setMode", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		m, err := drawboard.ParseMode(args[0].String())
		if err != nil {
			return err.Error()
		}
		s.SetMode(m)
		return nil
	}))
	obj.Set("setStrokeWidth", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			s.SetStrokeWidth(args[0].Float())
		}
		return nil
	}))
	obj.Set("setEraserWidth", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			s.SetEraserWidth(args[0].Float())
		}
		return nil
	}))
	obj.Set("clear", js.FuncOf(func(this js.Value, args []js.Value) any {
		s.Clear()
		elem.present()
		return nil
	}))
	obj.Set("exportImage", js.FuncOf(func(this js.Value, args []js.Value) any {
		return s.ExportImage()
	}))
	return obj
}

// domElement connects a surface to a canvas element of the page.
type domElement struct {
	canvas  js.Value
	surface *drawboard.Surface
}

// DisplayWidth implements the drawboard.Element interface.
func (e *domElement) DisplayWidth() float64 {
	return e.canvas.Call("getBoundingClientRect").Get("width").Float()
}

// Listen implements the drawboard.Element interface.
func (e *domElement) Listen(h drawboard.Handler) func() {
	touch := func(deliver func(*drawboard.TouchEvent)) js.Func {
		return js.FuncOf(func(this js.Value, args []js.Value) any {
			jsEv := args[0]
			ev := drawboard.NewTouchEvent(e.touches(jsEv)...)
			deliver(ev)
			if ev.DefaultPrevented() {
				jsEv.Call("preventDefault")
			}
			e.present()
			return nil
		})
	}
	funcs := map[string]js.Func{
		"touchstart": touch(h.TouchStart),
		"touchmove":  touch(h.TouchMove),
		"touchend":   touch(h.TouchEnd),
	}

	// Listeners must not be passive, or preventDefault has no effect.
	opts := js.Global().Get("Object").New()
	opts.Set("passive", false)
	for name, f := range funcs {
		e.canvas.Call("addEventListener", name, f, opts)
	}

	onResize := js.FuncOf(func(this js.Value, args []js.Value) any {
		h.Resize()
		e.present()
		return nil
	})
	observer := js.Global().Get("ResizeObserver").New(onResize)
	observer.Call("observe", e.canvas)

	return func() {
		observer.Call("disconnect")
		onResize.Release()
		for name, f := range funcs {
			e.canvas.Call("removeEventListener", name, f, opts)
			f.Release()
		}
	}
}

// touches returns the touch points of a DOM touch event, relative to the
// top-left corner of the canvas.
func (e *domElement) touches(jsEv js.Value) []vec.Vec2 {
	list := jsEv.Get("touches")
	n := list.Length()
	if n == 0 {
		return nil
	}
	rect := e.canvas.Call("getBoundingClientRect")
	left, top := rect.Get("left").Float(), rect.Get("top").Float()

	res := make([]vec.Vec2, n)
	for i := range n {
		t := list.Index(i)
		res[i] = vec.Vec2{
			X: t.Get("clientX").Float() - left,
			Y: t.Get("clientY").Float() - top,
		}
	}
	return res
}

// present copies the pixel buffer of the surface into the canvas.
func (e *domElement) present() {
	img := e.surface.Image()
	if img == nil {
		return
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if e.canvas.Get("width").Int() != w || e.canvas.Get("height").Int() != h {
		e.canvas.Set("width", w)
		e.canvas.Set("height", h)
	}
	if w == 0 || h == 0 {
		return
	}

	// ImageData holds non-premultiplied colors.
	nrgba := image.NewNRGBA(img.Rect)
	xdraw.Draw(nrgba, nrgba.Rect, img, image.Point{}, xdraw.Src)

	ctx := e.canvas.Call("getContext", "2d")
	data := ctx.Call("createImageData", w, h)
	js.CopyBytesToJS(data.Get("data"), nrgba.Pix)
	ctx.Call("putImageData", data, 0, 0)
}
