package frames

import (
	"time"

	"github.com/veea-project/snapcam/pixel"
)

// TestSource yields deterministic synthetic frames without a sensor
// attached. It honours whatever shape Configure asks for, which makes
// it handy for one-shot test captures and for exercising the pipeline
// in tests.
type TestSource struct {
	format pixel.Format
	width  int
	height int
}

func NewTestSource() *TestSource {
	return &TestSource{format: pixel.RGB565BE, width: 160, height: 120}
}

func (s *TestSource) Configure(format pixel.Format, width, height int) error {
	s.format = format
	s.width = width
	s.height = height
	return nil
}

// Acquire returns a gradient fill pattern immediately.
func (s *TestSource) Acquire(timeout time.Duration) (*Frame, error) {
	stride := s.format.RowBytes(s.width)
	pix := make([]byte, stride*s.height)
	for y := 0; y < s.height; y++ {
		row := pix[y*stride:]
		switch s.format {
		case pixel.RGB565BE:
			for x := 0; x < s.width; x++ {
				r := uint16(x*31/max(s.width-1, 1)) & 0x1F
				g := uint16(y*63/max(s.height-1, 1)) & 0x3F
				b := uint16((x+y)*31/max(s.width+s.height-2, 1)) & 0x1F
				v := r<<11 | g<<5 | b
				row[2*x] = byte(v >> 8)
				row[2*x+1] = byte(v)
			}
		case pixel.YUYV422:
			for x := 0; x < s.width; x += 2 {
				row[2*x] = byte(16 + (x+y)%220)
				row[2*x+1] = byte(128)
				row[2*x+2] = byte(16 + (x+1+y)%220)
				row[2*x+3] = byte(128)
			}
		}
	}
	return &Frame{
		Format: s.format,
		Width:  s.width,
		Height: s.height,
		Stride: stride,
		Pix:    pix,
	}, nil
}

func (s *TestSource) Close() error {
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
