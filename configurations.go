/*
 * configurations.go, part of timtools.
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
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/timtools/box"
	"github.com/rmera/timtools/traj"
	v3 "github.com/rmera/timtools/v3"
)

//Range selects frames from a trajectory, as Start:End:Stride.
//Negative Start and End count from the end of the trajectory (-1 is the last frame).
//An End of 0 means "up to and including the last frame" and a Stride of 0 or less
//means 1. The zero Range selects every frame.
type Range struct {
	Start, End, Stride int
}

//All selects every frame in a trajectory.
var All = Range{}

//Indices returns the indexes of the frames selected by R from a trajectory of n frames.
func (R Range) Indices(n int) []int {
	clamp := func(i int) int {
		if i < 0 {
			i += n
		}
		if i < 0 {
			return 0
		}
		if i > n {
			return n
		}
		return i
	}
	if R.Stride < 0 {
		return []int{}
	}
	stride := R.Stride
	if stride == 0 {
		stride = 1
	}
	start := clamp(R.Start)
	end := n
	if R.End != 0 {
		end = clamp(R.End)
	}
	if end <= start {
		return []int{}
	}
	ret := make([]int, 0, (end-start+stride-1)/stride)
	for i := start; i < end; i += stride {
		ret = append(ret, i)
	}
	return ret
}

//Configuration is the box, positions and orientations of the particles in one frame.
//Check returns an error for ranges that can't be used: negative strides
//are not supported.
func (R Range) Check() error {
	if R.Stride < 0 {
		return Error{fmt.Sprintf("%s: negative stride %d", InvalidRange, R.Stride), "", []string{"Check"}, true}
	}
	return nil
}

type Configuration struct {
	Frame        int //index of the frame in the trajectory
	Step         uint64
	N            int
	Box          box.Box
	Positions    *v3.Matrix //Nx3
	Orientations *mat.Dense //Nx4 quaternions
}

//ConfigIter reads configurations from a trajectory, one at a time. The trajectory is
//kept open until the last configuration is read or Close is called.
type ConfigIter struct {
	r        traj.Reader
	filename string
	indices  []int
	pos      int
	is2D     bool
}

//Configurations opens filename and returns an iterator over the configurations in the
//frames selected by rng. If is2D is true, the boxes are 2D, whatever the file says.
//The file is closed when the iterator is exhausted, or when Close is called.
func Configurations(filename string, rng Range, is2D bool) (*ConfigIter, error) {
	if err := rng.Check(); err != nil {
		return nil, Error{err.Error(), filename, []string{"Configurations"}, true}
	}
	r, err := Open(filename)
	if err != nil {
		return nil, errDecorate(err, "Configurations")
	}
	return &ConfigIter{r: r, filename: filename, indices: rng.Indices(r.Len()), is2D: is2D}, nil
}

//Len returns the total number of configurations the iterator will give.
func (C *ConfigIter) Len() int {
	return len(C.indices)
}

//Next returns the next configuration. After the last one, it closes the trajectory and
//returns a traj.LastFrameError.
func (C *ConfigIter) Next() (*Configuration, error) {
	if C.r == nil || C.pos >= len(C.indices) {
		C.Close()
		return nil, traj.NewLastFrameError(C.filename, Format(C.filename), "Next")
	}
	fr, err := C.r.ReadFrame(C.indices[C.pos])
	if err != nil {
		C.Close()
		return nil, errDecorate(err, "Next")
	}
	C.pos++
	return configuration(fr, C.is2D), nil
}

//Close closes the underlying trajectory. It is safe to call it more than once.
func (C *ConfigIter) Close() error {
	if C.r == nil {
		return nil
	}
	err := C.r.Close()
	C.r = nil
	return err
}

func configuration(fr *traj.Frame, is2D bool) *Configuration {
	return &Configuration{
		Frame:        fr.Index,
		Step:         fr.Step,
		N:            fr.N,
		Box:          box.FromHOOMD(fr.BoxData, is2D),
		Positions:    fr.Positions,
		Orientations: fr.Orientations,
	}
}

//ReadConfigurations returns all the configurations in the frames of filename selected by rng.
//See Configurations.
func ReadConfigurations(filename string, rng Range, is2D bool) ([]*Configuration, error) {
	it, err := Configurations(filename, rng, is2D)
	if err != nil {
		return nil, errDecorate(err, "ReadConfigurations")
	}
	defer it.Close()
	ret := make([]*Configuration, 0, it.Len())
	for {
		c, err := it.Next()
		if traj.IsLastFrame(err) {
			break
		}
		if err != nil {
			return nil, errDecorate(err, "ReadConfigurations")
		}
		ret = append(ret, c)
	}
	return ret, nil
}
