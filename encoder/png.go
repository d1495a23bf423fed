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

	"github.com/veea-project/snapcam/checksum"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// A zlib stream built from stored deflate blocks carries at most
// 65535 literal bytes per block.
const maxStoredBlock = 65535

// EncodePNG writes src as an 8-bit truecolour PNG: signature, IHDR,
// one IDAT, IEND. The IDAT payload is a zlib stream of stored
// (uncompressed) deflate blocks around the filtered scanlines, so any
// conformant inflate implementation decodes it without real
// decompression. The IDAT length is computed up front, which lets the
// whole image stream through w without being buffered.
func EncodePNG(w io.Writer, src RowSource) error {
	width, height := src.Width(), src.Height()
	if width <= 0 || height <= 0 {
		return errEmptyImage
	}

	if err := writeAll(w, pngSignature); err != nil {
		return err
	}

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(height))
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolour
	// compression method, filter method and interlace stay zero
	if err := writeChunk(w, "IHDR", ihdr[:]); err != nil {
		return err
	}

	// Every scanline carries a leading "no filter" byte.
	rowLen := width*3 + 1
	dataLen := height * rowLen
	blocks := (dataLen + maxStoredBlock - 1) / maxStoredBlock
	wrappedLen := 2 + dataLen + 5*blocks + 4

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:], uint32(wrappedLen))
	copy(hdr[4:], "IDAT")
	if err := writeAll(w, hdr[:]); err != nil {
		return err
	}
	crc := checksum.NewCRC32().Update(hdr[4:])

	// zlib header: deflate, 32K window, no preset dictionary. The two
	// bytes must satisfy the header's mod-31 self check.
	zlibHdr := []byte{0x78, 0x01}
	if err := writeAll(w, zlibHdr); err != nil {
		return err
	}
	crc = crc.Update(zlibHdr)

	adler := checksum.NewAdler32()
	row := make([]byte, rowLen)
	row[0] = 0 // filter: none
	remaining := dataLen
	blockLeft := 0
	for y := 0; y < height; y++ {
		if err := src.Row(y, row[1:]); err != nil {
			return err
		}
		adler = adler.Update(row)

		// Stream the row through the stored blocks, opening a new
		// block whenever the current one is exhausted. A row may
		// straddle a block boundary.
		out := row
		for len(out) > 0 {
			if blockLeft == 0 {
				blockLeft = remaining
				if blockLeft > maxStoredBlock {
					blockLeft = maxStoredBlock
				}
				var bh [5]byte
				if remaining == blockLeft {
					bh[0] = 1 // final block
				}
				binary.LittleEndian.PutUint16(bh[1:], uint16(blockLeft))
				binary.LittleEndian.PutUint16(bh[3:], ^uint16(blockLeft))
				if err := writeAll(w, bh[:]); err != nil {
					return err
				}
				crc = crc.Update(bh[:])
			}

			n := len(out)
			if n > blockLeft {
				n = blockLeft
			}
			if err := writeAll(w, out[:n]); err != nil {
				return err
			}
			crc = crc.Update(out[:n])
			out = out[n:]
			blockLeft -= n
			remaining -= n
		}
	}

	// The zlib stream ends with the Adler32 of the uncompressed
	// payload; it counts towards the chunk CRC.
	var tail [4]byte
	binary.BigEndian.PutUint32(tail[0:], adler.Sum())
	if err := writeAll(w, tail[:]); err != nil {
		return err
	}
	crc = crc.Update(tail[:])

	binary.BigEndian.PutUint32(tail[0:], crc.Sum())
	if err := writeAll(w, tail[:]); err != nil {
		return err
	}

	return writeChunk(w, "IEND", nil)
}

// writeChunk frames payload as length | tag | payload | CRC32, with
// the CRC computed over tag and payload only.
func writeChunk(w io.Writer, tag string, payload []byte) error {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:], uint32(len(payload)))
	copy(hdr[4:], tag)
	if err := writeAll(w, hdr[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if err := writeAll(w, payload); err != nil {
			return err
		}
	}
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[0:], checksum.NewCRC32().Update(hdr[4:]).Update(payload).Sum())
	return writeAll(w, sum[:])
}
