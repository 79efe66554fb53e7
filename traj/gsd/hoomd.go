/*
 * hoomd.go, part of timtools.
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

package gsd

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/timtools/box"
	"github.com/rmera/timtools/traj"
	v3 "github.com/rmera/timtools/v3"
)

//Names of the HOOMD chunks the Reader uses.
const (
	StepChunk        = "configuration/step"
	DimensionsChunk  = "configuration/dimensions"
	BoxChunk         = "configuration/box"
	NChunk           = "particles/N"
	PositionChunk    = "particles/position"
	OrientationChunk = "particles/orientation"
)

//HOOMD schema defaults for chunks that are not in the file.
var defaultBox = [6]float64{1, 1, 1, 0, 0, 0}

const defaultDimensions = 3

//Reader reads frames from a GSD file that follows the HOOMD schema.
//It implements traj.Reader
type Reader struct {
	*File
}

//Open opens a HOOMD GSD trajectory for reading.
func Open(name string) (*Reader, error) {
	F, err := OpenFile(name)
	if err != nil {
		return nil, errDecorate(err, "Open")
	}
	if schema, _, _ := F.Schema(); schema != "hoomd" {
		log.Printf("GSD file %s has schema '%s', not 'hoomd'. Will try to read it anyway", name, schema) //just a heads-up
	}
	return &Reader{F}, nil
}

//chunk returns the named chunk for frame i or, if the frame doesn't have it,
//the one of frame 0. It returns nil if neither has it.
func (R *Reader) chunk(i int, name string) (*Chunk, error) {
	c, err := R.Chunk(i, name)
	if err != nil || c != nil || i == 0 {
		return c, err
	}
	return R.Chunk(0, name)
}

//NParticles returns the number of particles in frame i, without reading the
//rest of the frame.
func (R *Reader) NParticles(i int) (int, error) {
	c, err := R.chunk(i, NChunk)
	if err != nil {
		return 0, errDecorate(err, "NParticles")
	}
	if c == nil {
		return 0, nil
	}
	n, err := c.Uint64()
	if err != nil {
		return 0, Error{WrongFormat, R.filename, []string{"NParticles"}, true, err}
	}
	return int(n), nil
}

//ReadFrame reads the ith frame in the trajectory. The box in the frame is 2D if
//the file says the simulation is 2D.
func (R *Reader) ReadFrame(i int) (*traj.Frame, error) {
	if i < 0 || i >= R.Len() {
		return nil, traj.NewLastFrameError(R.filename, "gsd", "ReadFrame")
	}
	fr := &traj.Frame{Index: i, Dimensions: defaultDimensions, BoxData: defaultBox}
	c, err := R.chunk(i, StepChunk)
	if err != nil {
		return nil, errDecorate(err, "ReadFrame")
	}
	if c != nil {
		if fr.Step, err = c.Uint64(); err != nil {
			return nil, Error{WrongFormat, R.filename, []string{"ReadFrame"}, true, err}
		}
	}
	c, err = R.chunk(i, DimensionsChunk)
	if err != nil {
		return nil, errDecorate(err, "ReadFrame")
	}
	if c != nil {
		d, err := c.Uint64()
		if err != nil {
			return nil, Error{WrongFormat, R.filename, []string{"ReadFrame"}, true, err}
		}
		fr.Dimensions = int(d)
	}
	c, err = R.chunk(i, BoxChunk)
	if err != nil {
		return nil, errDecorate(err, "ReadFrame")
	}
	if c != nil {
		if c.Len() != 6 {
			return nil, Error{fmt.Sprintf("%s: box has %d elements", WrongShape, c.Len()), R.filename, []string{"ReadFrame"}, true, nil}
		}
		copy(fr.BoxData[:], c.Float64s())
	}
	fr.Box = box.FromHOOMD(fr.BoxData, fr.Dimensions == 2)
	if fr.N, err = R.NParticles(i); err != nil {
		return nil, errDecorate(err, "ReadFrame")
	}
	if fr.N == 0 {
		return fr, nil
	}
	if fr.Positions, err = R.positions(i, fr.N); err != nil {
		return nil, errDecorate(err, "ReadFrame")
	}
	if fr.Orientations, err = R.orientations(i, fr.N); err != nil {
		return nil, errDecorate(err, "ReadFrame")
	}
	return fr, nil
}

//checkShape returns an error if the chunk c is not nxm
func (R *Reader) checkShape(c *Chunk, n int, m uint32) error {
	if int(c.N) != n || c.M != m {
		return Error{fmt.Sprintf("%s: %s is %dx%d, expected %dx%d", WrongShape, c.Name, c.N, c.M, n, m), R.filename, []string{"checkShape"}, true, nil}
	}
	return nil
}

func (R *Reader) positions(i, n int) (*v3.Matrix, error) {
	c, err := R.chunk(i, PositionChunk)
	if err != nil {
		return nil, errDecorate(err, "positions")
	}
	if c == nil {
		return v3.Zeros(n), nil
	}
	if err := R.checkShape(c, n, 3); err != nil {
		return nil, errDecorate(err, "positions")
	}
	if c.Type == Float {
		return v3.FromFloat32(c.Float32s())
	}
	return v3.NewMatrix(c.Float64s())
}

func (R *Reader) orientations(i, n int) (*mat.Dense, error) {
	c, err := R.chunk(i, OrientationChunk)
	if err != nil {
		return nil, errDecorate(err, "orientations")
	}
	if c == nil {
		return traj.IdentityOrientations(n), nil
	}
	if err := R.checkShape(c, n, 4); err != nil {
		return nil, errDecorate(err, "orientations")
	}
	return mat.NewDense(n, 4, c.Float64s()), nil
}
