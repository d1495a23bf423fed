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
	"errors"
	"fmt"
	"io/ioutil"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/veea-project/snapcam/encoder"
	"github.com/veea-project/snapcam/pixel"
)

type Config struct {
	FrameSource      string  `yaml:"frame-source"`
	PixelFormat      string  `yaml:"pixel-format"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Container        string  `yaml:"container"`
	OutputDir        string  `yaml:"output-dir"`
	PowerPin         string  `yaml:"power-pin"`
	AcquireTimeout   int     `yaml:"acquire-timeout-secs"`
	ChunkOverhead    int     `yaml:"chunk-overhead"`
	ChunkHardCap     int     `yaml:"chunk-hard-cap"`
	StreamRate       float64 `yaml:"stream-rate"`
	FailOnStoreError bool    `yaml:"fail-on-store-error"`
}

var defaultConfig = Config{
	FrameSource:    "/var/run/snapcam-frames",
	PixelFormat:    "RGB565BE",
	Width:          640,
	Height:         480,
	Container:      "png",
	OutputDir:      "/var/spool/snapcam",
	PowerPin:       "GPIO23",
	AcquireTimeout: 10,
	ChunkOverhead:  3,
	ChunkHardCap:   244,
	StreamRate:     4096,
}

func ParseConfigFile(filename string) (*Config, error) {
	buf, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseConfig(buf)
}

func ParseConfig(buf []byte) (*Config, error) {
	conf := defaultConfig
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (conf *Config) Validate() error {
	if _, err := pixel.ParseFormat(conf.PixelFormat); err != nil {
		return err
	}
	if _, err := encoder.ParseFormat(conf.Container); err != nil {
		return err
	}
	// The metadata announcement carries dimensions as 16 bit fields.
	if conf.Width < 1 || conf.Width > 65535 || conf.Height < 1 || conf.Height > 65535 {
		return fmt.Errorf("image dimensions %dx%d out of range", conf.Width, conf.Height)
	}
	if conf.FrameSource == "" {
		return errors.New("no frame source configured")
	}
	if conf.AcquireTimeout < 1 {
		return errors.New("acquire-timeout-secs must be at least 1")
	}
	if conf.ChunkOverhead < 0 {
		return errors.New("chunk-overhead must not be negative")
	}
	if conf.StreamRate < 0 {
		return errors.New("stream-rate must not be negative")
	}
	return nil
}

func (conf *Config) pixelFormat() pixel.Format {
	f, _ := pixel.ParseFormat(conf.PixelFormat)
	return f
}

func (conf *Config) container() encoder.Format {
	f, _ := encoder.ParseFormat(conf.Container)
	return f
}

func (conf *Config) acquireTimeout() time.Duration {
	return time.Duration(conf.AcquireTimeout) * time.Second
}
