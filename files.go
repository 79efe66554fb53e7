/*
 * files.go, part of timtools.
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
	"path/filepath"
	"strings"

	"github.com/rmera/timtools/traj"
	"github.com/rmera/timtools/traj/gsd"
	"github.com/rmera/timtools/traj/stf"
)

//Format returns the trajectory format of the file name, "gsd" or "stf",
//from its extension, or an empty string if the extension is not known.
func Format(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".zst", ".zstd":
		if strings.ToLower(filepath.Ext(strings.TrimSuffix(name, filepath.Ext(name)))) == ".gsd" {
			return "gsd"
		}
	case ".gsd":
		return "gsd"
	case ".stf", ".stz", ".str", ".stl":
		return "stf"
	}
	return ""
}

//Open opens a trajectory for reading. The format is chosen from the extension of
//the file name: .gsd (or .gsd.zst) for GSD and .stf (or .stz, .str, .stl) for STF.
//The caller must Close the returned trajectory.
func Open(filename string) (traj.Reader, error) {
	switch Format(filename) {
	case "gsd":
		r, err := gsd.Open(filename)
		if err != nil {
			return nil, errDecorate(err, "Open")
		}
		return r, nil
	case "stf":
		r, err := stf.Open(filename)
		if err != nil {
			return nil, errDecorate(err, "Open")
		}
		return r, nil
	}
	return nil, Error{UnknownFormat, filename, []string{"Open"}, true}
}

//FrameCount returns the number of frames in the trajectory filename.
func FrameCount(filename string) (int, error) {
	r, err := Open(filename)
	if err != nil {
		return 0, errDecorate(err, "FrameCount")
	}
	defer r.Close()
	return r.Len(), nil
}

//ParticleCount returns the number of particles in a frame of the trajectory filename.
//The frame is the first one unless given. Negative frames count from the end, so
//-1 is the last frame.
func ParticleCount(filename string, frame ...int) (int, error) {
	f := 0
	if len(frame) > 0 {
		f = frame[0]
	}
	r, err := Open(filename)
	if err != nil {
		return 0, errDecorate(err, "ParticleCount")
	}
	defer r.Close()
	if f < 0 {
		f += r.Len()
	}
	if f < 0 || f >= r.Len() {
		return 0, Error{FrameOutOfRange, filename, []string{"ParticleCount"}, true}
	}
	if c, ok := r.(ParticleCounter); ok {
		n, err := c.NParticles(f)
		return n, errDecorate(err, "ParticleCount")
	}
	fr, err := r.ReadFrame(f)
	if err != nil {
		return 0, errDecorate(err, "ParticleCount")
	}
	return fr.N, nil
}
