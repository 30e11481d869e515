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

package drawboard_test

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"seehuhn.de/go/drawboard"
	"seehuhn.de/go/drawboard/testcases"
)

// TestProbes replays every recorded interaction and checks the state of
// the probed pixels.
func TestProbes(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				s := drawboard.New()
				if _, err := tc.Replay(s); err != nil {
					t.Fatal(err)
				}
				defer s.Detach()

				img := s.Image()
				for _, p := range tc.Probes {
					a := img.RGBAAt(p.X, p.Y).A
					var got testcases.Coverage
					switch a {
					case 0:
						got = testcases.Blank
					case 0xff:
						got = testcases.Inked
					default:
						t.Errorf("pixel (%d,%d): partial alpha %d, want %s",
							p.X, p.Y, a, p.Want)
						continue
					}
					if got != p.Want {
						t.Errorf("pixel (%d,%d): %s, want %s", p.X, p.Y, got, p.Want)
					}
				}
			})
		}
	}
}

// TestExpectedSize checks that the expected drawings agree with the
// surface about the buffer size.
func TestExpectedSize(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			s := drawboard.New()
			if _, err := tc.Replay(s); err != nil {
				t.Fatal(err)
			}
			w, _ := s.Size()
			if d := tc.Expected(); d.Side != w {
				t.Errorf("%s_%s: expected side %d, buffer %d", category, tc.Name, d.Side, w)
			}
			s.Detach()
		}
	}
}

// TestAgainstReference compares the alpha channel of the buffer with
// reference images made by testcases/genpdf. The test is skipped if the
// reference images have not been generated.
func TestAgainstReference(t *testing.T) {
	refDir := filepath.Join("testdata", "reference")
	if _, err := os.Stat(refDir); errors.Is(err, fs.ErrNotExist) {
		t.Skip("no reference images, run testcases/genpdf first")
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				refPath := filepath.Join(refDir, name+".png")
				ref, err := loadGray(refPath)
				if errors.Is(err, fs.ErrNotExist) {
					t.Skip("no reference image")
				} else if err != nil {
					t.Fatalf("loading reference: %v", err)
				}

				s := drawboard.New()
				if _, err := tc.Replay(s); err != nil {
					t.Fatal(err)
				}
				defer s.Detach()

				img := s.Image()
				w, h := img.Rect.Dx(), img.Rect.Dy()
				if len(ref) != w*h {
					t.Fatalf("reference has %d pixels, buffer %dx%d", len(ref), w, h)
				}
				actual := make([]byte, w*h)
				for i := range actual {
					actual[i] = img.Pix[4*i+3]
				}

				if err := compareImages(name, ref, actual, w, h); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

func loadGray(path string) (gray []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray = make([]byte, w*h)

	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray[y*w+x] = c.Y
		}
	}
	return gray, nil
}

func compareImages(name string, expected, actual []byte, w, h int) error {
	total := w * h
	if total == 0 {
		return nil
	}

	diffs := make([]int, total)
	for i := range total {
		diff := int(expected[i]) - int(actual[i])
		if diff < 0 {
			diff = -diff
		}
		diffs[i] = diff
	}
	sort.Ints(diffs)

	p80 := diffs[int(math.Round(0.80*float64(total-1)))]
	p95 := diffs[int(math.Round(0.95*float64(total-1)))]
	p99 := diffs[int(math.Round(0.99*float64(total-1)))]

	// Edge pixels differ between anti-aliasing methods, the bulk of the
	// image must agree.
	var failures []string
	if p80 > 0 {
		failures = append(failures, fmt.Sprintf("80th percentile diff is %d (want 0)", p80))
	}
	if p95 >= 64 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <64)", p95))
	}
	if p99 >= 128 {
		failures = append(failures, fmt.Sprintf("99th percentile diff is %d (want <128)", p99))
	}

	if len(failures) > 0 {
		_ = writeDiffImage(name, expected, actual, w, h)
		return fmt.Errorf("%s", strings.Join(failures, "; "))
	}
	return nil
}

// writeDiffImage writes a 3-panel image to debug/: actual output on the
// left, differences in the middle (green=missing, red=extra), reference
// on the right.
func writeDiffImage(name string, expected, actual []byte, w, h int) (err error) {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			i := y*w + x

			a := actual[i]
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			diff := int(expected[i]) - int(actual[i])
			diffColor := color.RGBA{A: 255}
			if diff > 0 {
				diffColor.G = uint8(diff)
			} else if diff < 0 {
				diffColor.R = uint8(-diff)
			}
			img.Set(x+w, y, diffColor)

			e := expected[i]
			img.Set(x+w*2, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
