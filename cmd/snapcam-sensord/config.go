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
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	FrameOutput string `yaml:"frame-output"`
	MaxWidth    int    `yaml:"max-width"`
	MaxHeight   int    `yaml:"max-height"`
	FPS         int    `yaml:"fps"`
	Brand       string `yaml:"brand"`
	Model       string `yaml:"model"`
}

var defaultConfig = Config{
	FrameOutput: "/var/run/snapcam-frames",
	MaxWidth:    1280,
	MaxHeight:   960,
	FPS:         9,
	Brand:       "Veea",
	Model:       "SimSensor",
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
	if conf.FrameOutput == "" {
		return nil, errors.New("no frame output socket configured")
	}
	if conf.MaxWidth < 1 || conf.MaxHeight < 1 {
		return nil, errors.New("sensor shape must be at least 1x1")
	}
	if conf.FPS < 1 {
		return nil, errors.New("fps must be at least 1")
	}
	return &conf, nil
}
