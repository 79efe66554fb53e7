/*
 * traj.go, part of timtools.
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

//Package traj contains the types shared by the trajectory readers in timtools:
//the Frame type, the Reader interface and the error interfaces all readers
//implement.
package traj

import (
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/timtools/box"
	v3 "github.com/rmera/timtools/v3"
)

//Frame is one configuration of a particle trajectory.
type Frame struct {
	Index      int    //position of the frame in the trajectory
	Step       uint64 //simulation time step, 0 if unknown
	Dimensions int    //2 or 3
	Box        box.Box

	//The box as stored in the file, [Lx Ly Lz xy xz yz], for readers that
	//need to interpret it differently than the file does.
	BoxData [6]float64

	N            int        //number of particles
	Positions    *v3.Matrix //Nx3, nil if N is 0
	Orientations *mat.Dense //Nx4 quaternions (real part first), nil if N is 0
}

//Reader is a random-access trajectory.
type Reader interface {
	//Len returns the number of frames in the trajectory.
	Len() int

	//ReadFrame reads the ith frame. Reading past the last frame
	//returns a LastFrameError.
	ReadFrame(i int) (*Frame, error)

	//FileName is the name of the file the trajectory was read from
	FileName() string

	Close() error
}

//IdentityOrientations returns n quaternions (1,0,0,0) in a nx4 matrix,
//or nil if n is 0.
func IdentityOrientations(n int) *mat.Dense {
	if n <= 0 {
		return nil
	}
	o := mat.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		o.Set(i, 0, 1)
	}
	return o
}
