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

// Package pixel converts packed sensor rows into 8-bit RGB triples,
// one row at a time.
package pixel

import "fmt"

// Format identifies the packed layout of a raw sensor row. Both
// supported layouts use two bytes per pixel sample.
type Format uint8

const (
	// RGB565BE packs each pixel as 5/6/5-bit channels, high byte first.
	RGB565BE Format = iota

	// YUYV422 packs two pixels per 4-byte group (Y0 U Y1 V), the pair
	// sharing one chroma sample.
	YUYV422
)

func (f Format) String() string {
	switch f {
	case RGB565BE:
		return "RGB565BE"
	case YUYV422:
		return "YUYV422"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat maps a format name (as used in config files and sensor
// capability headers) back to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "RGB565BE":
		return RGB565BE, nil
	case "YUYV422":
		return YUYV422, nil
	}
	return 0, fmt.Errorf("unknown pixel format %q", name)
}

// BytesPerPixel returns the packed size of one pixel sample.
func (f Format) BytesPerPixel() int {
	return 2
}

// RowBytes returns the packed size of one row of width pixels. YUYV
// rows always carry complete 4-byte groups, so an odd width rounds up
// to include the trailing pair.
func (f Format) RowBytes(width int) int {
	if f == YUYV422 {
		return (width + 1) / 2 * 4
	}
	return width * f.BytesPerPixel()
}

// ConvertRow unpacks width pixels from src into RGB triples in dst.
// dst must hold at least width*3 bytes. For YUYV422, src must contain
// complete 4-byte groups, so an odd width needs (width+1)/2 groups;
// only the first pixel of the trailing pair is emitted.
func ConvertRow(f Format, src []byte, width int, dst []byte) {
	switch f {
	case RGB565BE:
		ConvertRGB565BE(src, width, dst)
	case YUYV422:
		ConvertYUYV(src, width, dst)
	}
}

// ConvertRGB565BE expands big-endian RGB565 pixels to RGB triples.
// Each channel is widened by replicating its top bits into the low
// bits, so full-scale channel values map to exactly 255.
func ConvertRGB565BE(src []byte, width int, dst []byte) {
	for x := 0; x < width; x++ {
		v := uint16(src[2*x])<<8 | uint16(src[2*x+1])
		r := uint8(v >> 11)
		g := uint8(v >> 5 & 0x3F)
		b := uint8(v & 0x1F)
		dst[3*x] = r<<3 | r>>2
		dst[3*x+1] = g<<2 | g>>4
		dst[3*x+2] = b<<3 | b>>2
	}
}

// ConvertYUYV converts 4:2:2 YUYV pixels to RGB triples using the
// BT.601 integer transform. The transform runs once per luma sample,
// reusing the pair's shared chroma.
func ConvertYUYV(src []byte, width int, dst []byte) {
	for x := 0; x < width; x += 2 {
		y0 := int32(src[2*x])
		u := int32(src[2*x+1])
		y1 := int32(src[2*x+2])
		v := int32(src[2*x+3])
		putRGB(dst[3*x:], y0, u, v)
		if x+1 < width {
			putRGB(dst[3*(x+1):], y1, u, v)
		}
	}
}

func putRGB(dst []byte, y, u, v int32) {
	c := y - 16
	d := u - 128
	e := v - 128
	dst[0] = clamp((298*c + 409*e + 128) >> 8)
	dst[1] = clamp((298*c - 100*d - 208*e + 128) >> 8)
	dst[2] = clamp((298*c + 516*d + 128) >> 8)
}

func clamp(v int32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
