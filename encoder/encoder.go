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

// Package encoder writes converted image rows into a standard raster
// container. The encoders stream row by row through a caller-supplied
// sink, so storage and wireless transfer are just two sinks; only one
// row buffer is ever resident.
package encoder

import (
	"errors"
	"fmt"
	"io"
)

// Format selects the container written around the pixels. The choice
// is always the caller's; it is never inferred from the pixel format.
type Format uint8

const (
	PNG Format = iota
	BMP
	Raw
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case Raw:
		return "raw"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat maps a container name from config back to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "raw":
		return Raw, nil
	}
	return 0, fmt.Errorf("unknown container format %q", name)
}

// Tag returns the 4-byte ASCII tag identifying the container in a
// transfer metadata record.
func (f Format) Tag() [4]byte {
	switch f {
	case PNG:
		return [4]byte{'P', 'N', 'G', ' '}
	case BMP:
		return [4]byte{'B', 'M', 'P', ' '}
	}
	return [4]byte{'R', 'A', 'W', ' '}
}

// RowSource yields converted RGB rows one at a time. Row must fill
// dst with exactly Width()*3 bytes for row y; rows are requested in
// whatever order the container needs them.
type RowSource interface {
	Width() int
	Height() int
	Row(y int, dst []byte) error
}

var errEmptyImage = errors.New("encoder: empty image")

// Encode writes src to w in the requested container format.
func Encode(w io.Writer, format Format, src RowSource) error {
	switch format {
	case PNG:
		return EncodePNG(w, src)
	case BMP:
		return EncodeBMP(w, src)
	case Raw:
		return EncodeRaw(w, src)
	}
	return fmt.Errorf("unknown container format %d", format)
}

// EncodeRaw writes the converted RGB rows top to bottom with no
// framing at all.
func EncodeRaw(w io.Writer, src RowSource) error {
	width, height := src.Width(), src.Height()
	if width <= 0 || height <= 0 {
		return errEmptyImage
	}
	row := make([]byte, width*3)
	for y := 0; y < height; y++ {
		if err := src.Row(y, row); err != nil {
			return err
		}
		if err := writeAll(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeAll(w io.Writer, p []byte) error {
	_, err := w.Write(p)
	return err
}
