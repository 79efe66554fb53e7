/*
 * config.go, part of timtools.
 *
 * Copyright 2024 The timtools Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package timtools

import (
	"os"

	"github.com/pelletier/go-toml"

	"github.com/rmera/timtools/box"
)

//Config holds the options for reading configurations and estimating cutoffs. It can be
//read from a TOML file, for instance:
//
//	is2d = false
//	start = 10
//	end = -1
//	stride = 2
//	safety_factor = 0.9
type Config struct {
	Is2D         bool    `toml:"is2d" default:"true"`
	Start        int     `toml:"start"`
	End          int     `toml:"end"`
	Stride       int     `toml:"stride" default:"1"`
	SafetyFactor float64 `toml:"safety_factor" default:"0.95"`
}

//DefaultConfig returns the default options: 2D boxes, every frame, and
//the usual 0.95 safety factor.
func DefaultConfig() Config {
	return Config{Is2D: true, Stride: 1, SafetyFactor: box.DefaultSafetyFactor}
}

//Range returns the frame range selected by the configuration.
func (C Config) Range() Range {
	return Range{Start: C.Start, End: C.End, Stride: C.Stride}
}

//LoadConfig reads a TOML configuration file. Options missing from the file
//keep their default values.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return c, Error{"Can't open configuration: " + err.Error(), path, []string{"LoadConfig"}, true}
	}
	defer f.Close()
	if err := toml.NewDecoder(f).Decode(&c); err != nil {
		return c, Error{"Can't read configuration: " + err.Error(), path, []string{"LoadConfig"}, true}
	}
	if c.Stride <= 0 {
		return c, Error{InvalidRange + ": stride must be positive", path, []string{"LoadConfig"}, true}
	}
	if c.SafetyFactor <= 0 || c.SafetyFactor > 1 {
		return c, Error{"safety_factor must be in (0,1]", path, []string{"LoadConfig"}, true}
	}
	return c, nil
}
