package encoder

import (
	"github.com/veea-project/snapcam/frames"
	"github.com/veea-project/snapcam/pixel"
)

// Rows adapts a raw sensor frame into a RowSource, converting each
// packed row to RGB on demand.
func Rows(f *frames.Frame) RowSource {
	return &frameRows{frame: f}
}

type frameRows struct {
	frame *frames.Frame
}

func (r *frameRows) Width() int {
	return r.frame.Width
}

func (r *frameRows) Height() int {
	return r.frame.Height
}

func (r *frameRows) Row(y int, dst []byte) error {
	f := r.frame
	pixel.ConvertRow(f.Format, f.Pix[y*f.Stride:], f.Width, dst)
	return nil
}
