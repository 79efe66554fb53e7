/*
 * reader.go, part of timtools.
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

package stf

import (
	"github.com/rmera/timtools/box"
	"github.com/rmera/timtools/traj"
	v3 "github.com/rmera/timtools/v3"
)

//Reader gives random access to the frames of an STF file. It implements traj.Reader.
//STF files can only be read sequentially, so reading a frame before the last one
//read reopens the file.
type Reader struct {
	filename string
	s        *StfR
	next     int //the frame s will read next
	nframes  int
}

//Open opens the STF file name and counts its frames.
func Open(name string) (*Reader, error) {
	R := &Reader{filename: name}
	if err := R.rewind(); err != nil {
		return nil, errDecorate(err, "Open")
	}
	for {
		err := R.s.Next(nil)
		if traj.IsLastFrame(err) {
			break
		}
		if err != nil {
			R.Close()
			return nil, errDecorate(err, "Open")
		}
		R.nframes++
	}
	if err := R.rewind(); err != nil {
		return nil, errDecorate(err, "Open")
	}
	return R, nil
}

func (R *Reader) rewind() error {
	if R.s != nil {
		R.s.Close()
	}
	var err error
	R.s, _, err = New(R.filename)
	if err != nil {
		return errDecorate(err, "rewind")
	}
	R.next = 0
	return nil
}

//Len returns the number of frames in the file.
func (R *Reader) Len() int {
	return R.nframes
}

//FileName returns the name of the file.
func (R *Reader) FileName() string {
	return R.filename
}

//NParticles returns the number of particles per frame. It is the same for all frames.
func (R *Reader) NParticles(i int) (int, error) {
	if i < 0 || i >= R.nframes {
		return 0, traj.NewLastFrameError(R.filename, "stf", "NParticles")
	}
	return R.s.Len(), nil
}

//ReadFrame reads the ith frame. A frame whose box has a zero third vector
//is taken as 2D.
func (R *Reader) ReadFrame(i int) (*traj.Frame, error) {
	if i < 0 || i >= R.nframes {
		return nil, traj.NewLastFrameError(R.filename, "stf", "ReadFrame")
	}
	if i < R.next {
		if err := R.rewind(); err != nil {
			return nil, errDecorate(err, "ReadFrame")
		}
	}
	for ; R.next < i; R.next++ {
		if err := R.s.Next(nil); err != nil {
			return nil, errDecorate(err, "ReadFrame")
		}
	}
	n := R.s.Len()
	fr := &traj.Frame{Index: i, Dimensions: 3, N: n}
	if n > 0 {
		fr.Positions = v3.Zeros(n)
		fr.Orientations = traj.IdentityOrientations(n)
	}
	vecs := make([]float64, 9)
	if err := R.s.Next(fr.Positions, vecs); err != nil {
		return nil, errDecorate(err, "ReadFrame")
	}
	R.next++
	var a [3][3]float64
	for j := range vecs {
		a[j/3][j%3] = vecs[j]
	}
	if a[0] == [3]float64{} {
		//no box information, the frame keeps a zero box.
		return fr, nil
	}
	if a[2] == [3]float64{} {
		fr.Dimensions = 2
	}
	fr.Box = box.FromVectors(a[0], a[1], a[2], fr.Dimensions == 2)
	fr.BoxData = fr.Box.GSD()
	return fr, nil
}

//Close closes the file.
func (R *Reader) Close() error {
	if R.s == nil {
		return nil
	}
	err := R.s.Close()
	R.s = nil
	return err
}
