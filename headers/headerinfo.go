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

// Package headers reads and writes the capability header block the
// sensor service sends when a client connects, before any frames.
// The block is a small YAML map terminated by a blank line. What the
// sensor reports may differ from what the client asked for; clients
// must adapt to the reported shape.
package headers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v1"
)

// Field names used in the capability header block.
const (
	PixelFormat = "PixelFormat"
	Width       = "Width"
	Height      = "Height"
	Stride      = "Stride"
	FPS         = "FPS"
	Brand       = "Brand"
	Model       = "Model"
)

// HeaderInfo contains the sensor description fields reported by the
// sensor service.
type HeaderInfo struct {
	pixelFormat string
	width       int
	height      int
	stride      int
	fps         int
	brand       string
	model       string
}

// New builds a HeaderInfo for a sensor service to announce. A zero
// stride defaults to width*2; readers widen it where the pixel format
// needs complete trailing groups.
func New(pixelFormat string, width, height, stride, fps int, brand, model string) *HeaderInfo {
	if stride == 0 {
		stride = width * 2
	}
	return &HeaderInfo{
		pixelFormat: pixelFormat,
		width:       width,
		height:      height,
		stride:      stride,
		fps:         fps,
		brand:       brand,
		model:       model,
	}
}

// PixelFormat returns the name of the packed pixel layout.
func (h *HeaderInfo) PixelFormat() string {
	return h.pixelFormat
}

// Width returns the frame width in pixels.
func (h *HeaderInfo) Width() int {
	return h.width
}

// Height returns the frame height in pixels.
func (h *HeaderInfo) Height() int {
	return h.height
}

// Stride returns the packed row pitch in bytes.
func (h *HeaderInfo) Stride() int {
	return h.stride
}

// FPS returns the sensor frame rate.
func (h *HeaderInfo) FPS() int {
	return h.fps
}

// Brand returns the sensor brand.
func (h *HeaderInfo) Brand() string {
	return h.brand
}

// Model returns the sensor model.
func (h *HeaderInfo) Model() string {
	return h.model
}

// FrameSize returns the number of bytes in one packed frame.
func (h *HeaderInfo) FrameSize() int {
	return h.stride * h.height
}

// ReadHeaderInfo consumes one header block from reader.
func ReadHeaderInfo(reader *bufio.Reader) (*HeaderInfo, error) {
	var buf bytes.Buffer
	for {
		line, err := reader.ReadString(byte('\n'))
		if err != nil {
			return nil, err
		}
		if strings.Trim(line, " ") == "\n" {
			break
		}
		buf.WriteString(line)
	}
	h := make(map[string]interface{})
	if err := yaml.Unmarshal(buf.Bytes(), &h); err != nil {
		return nil, err
	}

	return &HeaderInfo{
		pixelFormat: toStr(h[PixelFormat]),
		width:       toInt(h[Width]),
		height:      toInt(h[Height]),
		stride:      toInt(h[Stride]),
		fps:         toInt(h[FPS]),
		brand:       toStr(h[Brand]),
		model:       toStr(h[Model]),
	}, nil
}

// WriteTo writes the header block, including the terminating blank
// line.
func (h *HeaderInfo) WriteTo(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %s\n%s: %d\n%s: %d\n%s: %d\n%s: %d\n%s: %s\n%s: %s\n\n",
		PixelFormat, h.pixelFormat,
		Width, h.width,
		Height, h.height,
		Stride, h.stride,
		FPS, h.fps,
		Brand, h.brand,
		Model, h.model)
	return err
}

func toInt(v interface{}) int {
	out, ok := v.(int)
	if !ok {
		return 0
	}
	return out
}

func toStr(v interface{}) string {
	out, ok := v.(string)
	if !ok {
		return ""
	}
	return out
}
