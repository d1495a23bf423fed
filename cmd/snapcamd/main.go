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

package main

import (
	"bytes"
	"fmt"
	"log"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"
	"github.com/godbus/dbus"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"

	"github.com/veea-project/snapcam/encoder"
	"github.com/veea-project/snapcam/frames"
	"github.com/veea-project/snapcam/transfer"
)

const watchdogInterval = 10 * time.Second

var version = "<not set>"

type Args struct {
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Quick      bool   `arg:"-q,--quick" help:"don't cycle sensor power on startup"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
	TestShot   bool   `arg:"--testshot" help:"capture one image from the built-in test source and exit"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/snapcamd.yaml"
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
	logConfig(conf)

	if args.TestShot {
		return runTestShot(conf)
	}

	var store transfer.Store = transfer.NullStore{}
	if conf.OutputDir != "" {
		log.Print("deleting temp files")
		if err := deleteTempFiles(conf.OutputDir); err != nil {
			return err
		}
		store = newFileStore(conf.OutputDir)
	}

	log.Print("host initialisation")
	if _, err := host.Init(); err != nil {
		return err
	}

	if !args.Quick {
		if err := cycleSensorPower(conf.PowerPin); err != nil {
			return err
		}
	}

	log.Print("configuring frame source")
	source := frames.NewSocketSource(conf.FrameSource)
	if err := source.Configure(conf.pixelFormat(), conf.Width, conf.Height); err != nil {
		return err
	}
	defer source.Close()

	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}

	controller := transfer.New(transfer.Config{
		Format:           conf.container(),
		AcquireTimeout:   conf.acquireTimeout(),
		ChunkOverhead:    conf.ChunkOverhead,
		ChunkHardCap:     conf.ChunkHardCap,
		StreamRate:       conf.StreamRate,
		FailOnStoreError: conf.FailOnStoreError,
	}, source, &dbusNotifier{conn: conn}, store)
	controller.Start()
	defer controller.Stop()

	log.Print("starting d-bus service")
	if err := startService(conn, controller); err != nil {
		return err
	}

	log.Print("ready for capture triggers")
	for range time.Tick(watchdogInterval) {
		daemon.SdNotify(false, "WATCHDOG=1")
	}
	return nil
}

// runTestShot captures one image from the built-in gradient source
// and stores it, bypassing the link. Useful for checking the encode
// and storage path on a bench with no sensor or peer.
func runTestShot(conf *Config) error {
	source := frames.NewTestSource()
	if err := source.Configure(conf.pixelFormat(), conf.Width, conf.Height); err != nil {
		return err
	}
	frame, err := source.Acquire(0)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encoder.Encode(&buf, conf.container(), encoder.Rows(frame)); err != nil {
		return err
	}
	name, err := newFileStore(conf.OutputDir).Save(buf.Bytes(), conf.container())
	if err != nil {
		return err
	}
	log.Printf("test shot stored: %s (%d bytes)", name, buf.Len())
	return nil
}

func logConfig(conf *Config) {
	log.Printf("frame source: %s", conf.FrameSource)
	log.Printf("requested shape: %dx%d %s", conf.Width, conf.Height, conf.PixelFormat)
	log.Printf("container: %s", conf.Container)
	log.Printf("output dir: %s", conf.OutputDir)
	log.Printf("power pin: %s", conf.PowerPin)
	log.Printf("acquire timeout: %ds", conf.AcquireTimeout)
	log.Printf("chunk overhead: %d, hard cap: %d", conf.ChunkOverhead, conf.ChunkHardCap)
	log.Printf("stream rate: %g bytes/sec", conf.StreamRate)
}

func cycleSensorPower(pinName string) error {
	if pinName == "" {
		return nil
	}

	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return fmt.Errorf("unknown sensor power pin %q", pinName)
	}

	log.Print("turning sensor power off")
	if err := pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("failed to set sensor power pin low: %v", err)
	}
	time.Sleep(2 * time.Second)

	log.Print("turning sensor power on")
	if err := pin.Out(gpio.High); err != nil {
		return fmt.Errorf("failed to set sensor power pin high: %v", err)
	}

	log.Print("waiting for sensor startup")
	time.Sleep(3 * time.Second)
	return nil
}
