// snapcam - capture one still image and send it to a paired device
//  Copyright (C) 2026, The Veea Project
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
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package frames defines the raw sensor frame and the frame source
// collaborator that produces one frame per capture request.
package frames

import (
	"fmt"

	"github.com/veea-project/snapcam/pixel"
)

// Frame is one raw sensor frame. Pix holds Height rows of Stride
// bytes each. A frame is never modified after acquisition; it is
// consumed by the encoder and then dropped.
type Frame struct {
	Format pixel.Format
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// Check reports whether the frame's shape and payload are consistent.
func (f *Frame) Check() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid frame dimensions %dx%d", f.Width, f.Height)
	}
	if f.Stride < f.Format.RowBytes(f.Width) {
		return fmt.Errorf("frame stride %d too small for width %d", f.Stride, f.Width)
	}
	if len(f.Pix) < f.Stride*f.Height {
		return fmt.Errorf("frame payload %d bytes, want at least %d", len(f.Pix), f.Stride*f.Height)
	}
	return nil
}
