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

package encoder

import (
	"encoding/binary"
	"io"
)

const bmpHeaderSize = 54

// EncodeBMP writes src as an uncompressed 24-bit BMP: the classic
// 54-byte header followed by bottom-up scanlines in B,G,R order, each
// padded with zeros to a multiple of four bytes. No checksums, so the
// artifact is easy to inspect with anything.
func EncodeBMP(w io.Writer, src RowSource) error {
	width, height := src.Width(), src.Height()
	if width <= 0 || height <= 0 {
		return errEmptyImage
	}

	rowBytes := width * 3
	pad := (4 - rowBytes%4) % 4
	imageSize := (rowBytes + pad) * height

	var hdr [bmpHeaderSize]byte
	hdr[0], hdr[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(hdr[2:], uint32(bmpHeaderSize+imageSize))
	binary.LittleEndian.PutUint32(hdr[10:], bmpHeaderSize) // pixel data offset
	binary.LittleEndian.PutUint32(hdr[14:], 40)            // info header size
	binary.LittleEndian.PutUint32(hdr[18:], uint32(width))
	binary.LittleEndian.PutUint32(hdr[22:], uint32(height))
	binary.LittleEndian.PutUint16(hdr[26:], 1)  // planes
	binary.LittleEndian.PutUint16(hdr[28:], 24) // bits per pixel
	// compression (offset 30) stays zero: uncompressed
	binary.LittleEndian.PutUint32(hdr[34:], uint32(imageSize))
	if err := writeAll(w, hdr[:]); err != nil {
		return err
	}

	// Padding bytes at the end of the buffer are zero and never
	// touched again.
	row := make([]byte, rowBytes+pad)
	for y := height - 1; y >= 0; y-- {
		if err := src.Row(y, row[:rowBytes]); err != nil {
			return err
		}
		for x := 0; x < rowBytes; x += 3 {
			row[x], row[x+2] = row[x+2], row[x]
		}
		if err := writeAll(w, row); err != nil {
			return err
		}
	}
	return nil
}
