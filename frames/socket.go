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
	"bufio"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/veea-project/snapcam/headers"
	"github.com/veea-project/snapcam/pixel"
)

const connectTimeout = 10 * time.Second

// SocketSource acquires frames from the sensor daemon over a unix
// socket. Configure dials the daemon and sends a request header; the
// daemon answers with a capability header describing what it actually
// configured (which may differ from the request), then sends one
// packed frame after another. Acquire reads the next whole frame off
// the stream.
type SocketSource struct {
	path   string
	conn   net.Conn
	reader *bufio.Reader

	format pixel.Format
	width  int
	height int
	stride int
}

func NewSocketSource(path string) *SocketSource {
	return &SocketSource{path: path}
}

func (s *SocketSource) Configure(format pixel.Format, width, height int) error {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}

	conn, err := net.DialTimeout("unix", s.path, connectTimeout)
	if err != nil {
		return ErrSourceUnavailable
	}

	req := headers.New(format.String(), width, height, 0, 0, "", "")
	if err := req.WriteTo(conn); err != nil {
		conn.Close()
		return ErrSourceUnavailable
	}

	reader := bufio.NewReader(conn)
	conn.SetReadDeadline(time.Now().Add(connectTimeout))
	h, err := headers.ReadHeaderInfo(reader)
	if err != nil {
		conn.Close()
		return ErrSourceUnavailable
	}

	actual, err := pixel.ParseFormat(h.PixelFormat())
	if err != nil {
		conn.Close()
		return ErrUnsupportedFormat
	}
	if h.Width() <= 0 || h.Height() <= 0 {
		conn.Close()
		return fmt.Errorf("sensor reported invalid shape %dx%d", h.Width(), h.Height())
	}

	s.conn = conn
	s.reader = reader
	s.format = actual
	s.width = h.Width()
	s.height = h.Height()
	s.stride = h.Stride()
	if s.stride < actual.RowBytes(s.width) {
		// A missing or undersized stride gets the packed minimum,
		// which for YUYV includes the trailing chroma group on odd
		// widths.
		s.stride = actual.RowBytes(s.width)
	}
	return nil
}

func (s *SocketSource) Acquire(timeout time.Duration) (*Frame, error) {
	if s.conn == nil {
		return nil, ErrSourceUnavailable
	}

	s.conn.SetReadDeadline(time.Now().Add(timeout))
	pix := make([]byte, s.stride*s.height)
	if _, err := io.ReadFull(s.reader, pix); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrNoFrame
		}
		return nil, err
	}

	return &Frame{
		Format: s.format,
		Width:  s.width,
		Height: s.height,
		Stride: s.stride,
		Pix:    pix,
	}, nil
}

func (s *SocketSource) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.reader = nil
	return err
}
