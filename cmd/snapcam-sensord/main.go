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

// snapcam-sensord stands in for the camera module on bench setups.
// It serves the frame socket with deterministic gradient frames so
// snapcamd can be exercised end to end with no sensor attached.
package main

import (
	"bufio"
	"log"
	"net"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"

	"github.com/veea-project/snapcam/frames"
	"github.com/veea-project/snapcam/headers"
	"github.com/veea-project/snapcam/pixel"
)

const framesPerSdNotify = 45

var version = "<not set>"

type Args struct {
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/snapcam-sensord.yaml"
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()
	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	log.Printf("running version: %s", version)
	conf, err := ParseConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	log.Printf("frame output: %s", conf.FrameOutput)
	log.Printf("sensor ceiling: %dx%d at %d fps", conf.MaxWidth, conf.MaxHeight, conf.FPS)

	for {
		os.Remove(conf.FrameOutput)
		listener, err := net.Listen("unix", conf.FrameOutput)
		if err != nil {
			return err
		}
		log.Print("waiting for client connection")

		conn, err := listener.Accept()
		if err != nil {
			log.Printf("socket accept failed: %v", err)
			listener.Close()
			continue
		}

		// Prevent concurrent connections.
		listener.Close()

		err = handleConn(conn, conf)
		log.Printf("client connection ended with: %v", err)
	}
}

// handleConn serves one client: read its request header, answer with
// the shape actually configured, then stream frames until the client
// goes away.
func handleConn(conn net.Conn, conf *Config) error {
	defer conn.Close()

	req, err := headers.ReadHeaderInfo(bufio.NewReader(conn))
	if err != nil {
		return err
	}
	log.Printf("client requested %dx%d %s", req.Width(), req.Height(), req.PixelFormat())

	format, err := pixel.ParseFormat(req.PixelFormat())
	if err != nil {
		// An unknown request still gets frames, in the sensor's
		// native layout. The client reads the answer and adapts.
		format = pixel.RGB565BE
	}
	width := clamp(req.Width(), 1, conf.MaxWidth)
	height := clamp(req.Height(), 1, conf.MaxHeight)

	source := frames.NewTestSource()
	if err := source.Configure(format, width, height); err != nil {
		return err
	}
	frame, err := source.Acquire(0)
	if err != nil {
		return err
	}

	h := headers.New(format.String(), width, height, frame.Stride, conf.FPS, conf.Brand, conf.Model)
	if err := h.WriteTo(conn); err != nil {
		return err
	}

	log.Printf("serving %dx%d %s frames", width, height, format)
	frameInterval := time.Second / time.Duration(conf.FPS)
	notifyCount := 0
	for {
		if _, err := conn.Write(frame.Pix); err != nil {
			return err
		}

		if notifyCount++; notifyCount >= framesPerSdNotify {
			daemon.SdNotify(false, "WATCHDOG=1")
			notifyCount = 0
		}

		time.Sleep(frameInterval)
		frame, err = source.Acquire(0)
		if err != nil {
			return err
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
