/*
 * box.go, part of timtools.
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

package box

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Box is a periodic, possibly triclinic, simulation cell.
type Box struct {
	Lx, Ly, Lz float64
	XY, XZ, YZ float64
	Is2D       bool
}

//New returns a 3D box with the given lengths and tilt factors.
func New(lx, ly, lz, xy, xz, yz float64) Box {
	return Box{Lx: lx, Ly: ly, Lz: lz, XY: xy, XZ: xz, YZ: yz}
}

//New2D returns a 2D box with the given lengths and tilt factor.
func New2D(lx, ly, xy float64) Box {
	return Box{Lx: lx, Ly: ly, XY: xy, Is2D: true}
}

//FromGSD builds a box from the 6 values HOOMD stores for a frame,
//[Lx Ly Lz xy xz yz]. If is2D is true, only Lx, Ly and xy are used.
func FromGSD(raw []float64, is2D bool) (Box, error) {
	if len(raw) < 6 {
		return Box{}, Error{fmt.Sprintf("box descriptor needs 6 values, got %d", len(raw)), []string{"FromGSD"}}
	}
	return FromHOOMD([6]float64(raw[:6]), is2D), nil
}

//FromHOOMD is like FromGSD for a complete descriptor, so it can't fail.
func FromHOOMD(raw [6]float64, is2D bool) Box {
	if is2D {
		return New2D(raw[0], raw[1], raw[3])
	}
	return New(raw[0], raw[1], raw[2], raw[3], raw[4], raw[5])
}

//FromVectors builds a box from its three lattice vectors. The vectors don't need
//to follow the HOOMD convention, the box is rotated so they do. For 2D boxes a3 is ignored.
func FromVectors(a1, a2, a3 [3]float64, is2D bool) Box {
	dot := func(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
	b := Box{Is2D: is2D}
	b.Lx = math.Sqrt(dot(a1, a1))
	a2x := dot(a1, a2) / b.Lx
	b.Ly = math.Sqrt(dot(a2, a2) - a2x*a2x)
	b.XY = a2x / b.Ly
	if is2D {
		return b
	}
	//unit vector along the in-plane part of a2 that is perpendicular to a1
	var v1 [3]float64
	for i := range v1 {
		v1[i] = (a2[i] - a2x*a1[i]/b.Lx) / b.Ly
	}
	a3x := dot(a1, a3) / b.Lx
	a3y := dot(a3, v1)
	b.Lz = math.Sqrt(dot(a3, a3) - a3x*a3x - a3y*a3y)
	b.XZ = a3x / b.Lz
	b.YZ = a3y / b.Lz
	return b
}

//Vectors returns the three lattice vectors of the box. The third one is zero for
//2D boxes.
func (b Box) Vectors() [3][3]float64 {
	if b.Is2D {
		return [3][3]float64{
			{b.Lx, 0, 0},
			{b.XY * b.Ly, b.Ly, 0},
			{0, 0, 0},
		}
	}
	return [3][3]float64{
		{b.Lx, 0, 0},
		{b.XY * b.Ly, b.Ly, 0},
		{b.XZ * b.Lz, b.YZ * b.Lz, b.Lz},
	}
}

//Matrix returns a 3x3 gonum matrix with the lattice vectors as columns.
//For 2D boxes the (2,2) element is 1, so the matrix stays invertible.
func (b Box) Matrix() *mat.Dense {
	v := b.Vectors()
	m := mat.NewDense(3, 3, nil)
	for i, vec := range v {
		for j, val := range vec {
			m.Set(j, i, val)
		}
	}
	if b.Is2D {
		m.Set(2, 2, 1)
	}
	return m
}

//Volume returns the volume of the box, or its area if the box is 2D.
func (b Box) Volume() float64 {
	return math.Abs(mat.Det(b.Matrix()))
}

//GSD returns the 6 values HOOMD uses to store the box, [Lx Ly Lz xy xz yz].
//2D boxes get Lz=1, as HOOMD writes them.
func (b Box) GSD() [6]float64 {
	if b.Is2D {
		return [6]float64{b.Lx, b.Ly, 1, b.XY, 0, 0}
	}
	return [6]float64{b.Lx, b.Ly, b.Lz, b.XY, b.XZ, b.YZ}
}

//Check returns an error if the box is degenerate: non-positive or non-finite lengths,
//or non-finite tilt factors. Lz, xz and yz are not checked for 2D boxes.
func (b Box) Check() error {
	type value struct {
		name string
		v    float64
	}
	lengths := []value{{"Lx", b.Lx}, {"Ly", b.Ly}}
	tilts := []value{{"xy", b.XY}}
	if !b.Is2D {
		lengths = append(lengths, value{"Lz", b.Lz})
		tilts = append(tilts, value{"xz", b.XZ}, value{"yz", b.YZ})
	}
	for _, l := range lengths {
		if math.IsNaN(l.v) || math.IsInf(l.v, 0) || l.v <= 0 {
			return Error{fmt.Sprintf("box length %s must be positive and finite, got %g", l.name, l.v), []string{"Check"}}
		}
	}
	for _, t := range tilts {
		if math.IsNaN(t.v) || math.IsInf(t.v, 0) {
			return Error{fmt.Sprintf("box tilt factor %s is not finite: %g", t.name, t.v), []string{"Check"}}
		}
	}
	return nil
}

func (b Box) String() string {
	if b.Is2D {
		return fmt.Sprintf("2D box Lx=%g Ly=%g xy=%g", b.Lx, b.Ly, b.XY)
	}
	return fmt.Sprintf("box Lx=%g Ly=%g Lz=%g xy=%g xz=%g yz=%g", b.Lx, b.Ly, b.Lz, b.XY, b.XZ, b.YZ)
}

//Error is the error type for the box package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string {
	return "box: " + err.message
}

//Decorate adds deco to the trail of callers of the error, and returns the trail.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical is always true, a box error means a box that can't be used.
func (err Error) Critical() bool { return true }
