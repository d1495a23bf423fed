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

package frames

import (
	"errors"
	"time"

	"github.com/veea-project/snapcam/pixel"
)

var (
	// ErrSourceUnavailable means the sensor service is not ready or
	// not responding.
	ErrSourceUnavailable = errors.New("frame source unavailable")

	// ErrNoFrame means no frame arrived within the acquire timeout.
	ErrNoFrame = errors.New("timed out waiting for frame")

	// ErrUnsupportedFormat means the source offers no pixel format
	// the converter understands.
	ErrUnsupportedFormat = errors.New("frame source offers no supported pixel format")
)

// Source is the camera collaborator. Configure asks for a format and
// resolution but the source is free to pick something else, so
// callers must read the actual shape back from acquired frames.
// Acquire is the only call allowed to block, and only up to timeout.
type Source interface {
	Configure(format pixel.Format, width, height int) error
	Acquire(timeout time.Duration) (*Frame, error)
	Close() error
}
