/*
 * box_test.go, part of timtools.
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
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestFromGSD(Te *testing.T) {
	raw := []float64{10, 20, 30, 0.1, 0.2, 0.3}
	b, err := FromGSD(raw, false)
	if err != nil {
		Te.Fatal(err)
	}
	if b != New(10, 20, 30, 0.1, 0.2, 0.3) {
		Te.Errorf("wrong 3D box %v", b)
	}
	b, err = FromGSD(raw, true)
	if err != nil {
		Te.Fatal(err)
	}
	if b != New2D(10, 20, 0.1) {
		Te.Errorf("wrong 2D box %v", b)
	}
	if _, err := FromGSD(raw[:5], false); err == nil {
		Te.Error("expected an error for a short descriptor")
	}
	if b := FromHOOMD([6]float64{10, 20, 30, 0.1, 0.2, 0.3}, true); b != New2D(10, 20, 0.1) {
		Te.Errorf("FromHOOMD: wrong 2D box %v", b)
	}
	if b := FromHOOMD([6]float64{10, 20, 30, 0.1, 0.2, 0.3}, false); b != New(10, 20, 30, 0.1, 0.2, 0.3) {
		Te.Errorf("FromHOOMD: wrong 3D box %v", b)
	}
}

func TestVectorsRoundTrip(Te *testing.T) {
	for _, b := range []Box{New(10, 12, 9, 0.5, 0.3, 0.2), New(5, 5, 5, -0.2, 0, 0.4), New2D(8, 6, 0.25)} {
		v := b.Vectors()
		b2 := FromVectors(v[0], v[1], v[2], b.Is2D)
		got := []float64{b2.Lx, b2.Ly, b2.Lz, b2.XY, b2.XZ, b2.YZ}
		want := []float64{b.Lx, b.Ly, b.Lz, b.XY, b.XZ, b.YZ}
		for i := range got {
			if !scalar.EqualWithinAbs(got[i], want[i], 1e-12) {
				Te.Errorf("%v: element %d got %v want %v", b, i, got[i], want[i])
			}
		}
	}
}

func TestFromRotatedVectors(Te *testing.T) {
	//an orthorhombic box with its axes permuted
	b := FromVectors([3]float64{0, 4, 0}, [3]float64{0, 0, 6}, [3]float64{8, 0, 0}, false)
	if !scalar.EqualWithinAbs(b.Lx, 4, 1e-12) || !scalar.EqualWithinAbs(b.Ly, 6, 1e-12) || !scalar.EqualWithinAbs(b.Lz, 8, 1e-12) {
		Te.Errorf("wrong lengths %v", b)
	}
	if b.XY != 0 || b.XZ != 0 || b.YZ != 0 {
		Te.Errorf("unexpected tilts %v", b)
	}
}

func TestVolume(Te *testing.T) {
	if v := New(2, 3, 4, 0.5, 0.1, 0.7).Volume(); !scalar.EqualWithinAbs(v, 24, 1e-12) {
		Te.Errorf("tilt factors shouldn't change the volume, got %v", v)
	}
	if a := New2D(2, 3, 1).Volume(); !scalar.EqualWithinAbs(a, 6, 1e-12) {
		Te.Errorf("wrong area %v", a)
	}
}

func TestCheck(Te *testing.T) {
	if err := New(1, 1, 1, 0, 0, 0).Check(); err != nil {
		Te.Error(err)
	}
	if err := New2D(1, 1, 0).Check(); err != nil {
		Te.Errorf("Lz must not be checked in 2D: %v", err)
	}
	if err := New(1, 1, 0, 0, 0, 0).Check(); err == nil {
		Te.Error("expected an error for Lz=0 in 3D")
	}
	if err := New(1, -1, 1, 0, 0, 0).Check(); err == nil {
		Te.Error("expected an error for a negative length")
	}
}

func TestGSD(Te *testing.T) {
	if g := New2D(3, 4, 0.5).GSD(); g != [6]float64{3, 4, 1, 0.5, 0, 0} {
		Te.Errorf("wrong 2D descriptor %v", g)
	}
}
