/*
 * rcut.go, part of timtools.
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
	"math"

	"gonum.org/v1/gonum/floats"
)

//DefaultSafetyFactor is the fraction of the largest cutoff usually employed,
//to stay away from interactions exactly at the limit.
const DefaultSafetyFactor = 0.95

//PlaneDistances returns the perpendicular distances between the pairs of opposite
//faces of the box. dz is Lz, even for 2D boxes, where it has no meaning.
func PlaneDistances(b Box) (dx, dy, dz float64) {
	xy, xz, yz := b.XY, b.XZ, b.YZ
	if b.Is2D {
		xz, yz = 0, 0
	}
	xyz := xy*yz - xz
	dx = b.Lx / math.Sqrt(1+xy*xy+xyz*xyz)
	dy = b.Ly / math.Sqrt(1+yz*yz)
	dz = b.Lz
	return dx, dy, dz
}

//LargestRcut returns the largest cutoff radius that can be used in the box b,
//which is half the smallest distance between opposite faces of the box.
//Lz is ignored for 2D boxes.
//b is not checked. A degenerate box may give a zero, NaN, infinite or negative result.
//Use Box.Check first if in doubt.
func LargestRcut(b Box) float64 {
	dx, dy, dz := PlaneDistances(b)
	if b.Is2D {
		return floats.Min([]float64{dx, dy}) / 2
	}
	return floats.Min([]float64{dx, dy, dz}) / 2
}

//LargestRcut returns the largest cutoff radius that can be used in the box.
//See the LargestRcut function.
func (b Box) LargestRcut() float64 {
	return LargestRcut(b)
}

//SafeRcut returns factor times the largest cutoff for b. If factor is not
//in (0,1], DefaultSafetyFactor is used.
func SafeRcut(b Box, factor float64) float64 {
	if factor <= 0 || factor > 1 {
		factor = DefaultSafetyFactor
	}
	return factor * LargestRcut(b)
}
