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
	"fmt"
	"strings"

	"seehuhn.de/go/drawboard/canvas"
)

// Mode selects between drawing and erasing.
type Mode int

const (
	// Brush paints with the ink color, using the stroke width.
	Brush Mode = iota

	// Eraser clears pixels, using the eraser width.
	Eraser
)

func (m Mode) String() string {
	switch m {
	case Brush:
		return "brush"
	case Eraser:
		return "eraser"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts the name of a mode, as returned by Mode.String,
// back to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "brush":
		return Brush, nil
	case "eraser":
		return Eraser, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// composite returns the compositing rule used while in mode m.
func (m Mode) composite() canvas.Composite {
	if m == Eraser {
		return canvas.DestinationOut
	}
	return canvas.SourceOver
}
