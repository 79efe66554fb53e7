/*
 * gocoords.go, part of timtools.
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

package v3

import (
	"fmt"
	"strings"
)

//FromFloat32 returns a new Matrix with the values in data, which
//must contain 3 elements per vector (x0 y0 z0 x1 y1 z1...).
func FromFloat32(data []float32) (*Matrix, error) {
	f := make([]float64, len(data))
	for i, v := range data {
		f[i] = float64(v)
	}
	m, err := NewMatrix(f)
	if err != nil {
		return nil, errDecorate(err, "FromFloat32")
	}
	return m, nil
}

//Float32s puts the elements of F, in row-major order, in dst, if given and
//large enough, or in a newly allocated slice, and returns it.
func (F *Matrix) Float32s(dst ...[]float32) []float32 {
	r := F.NVecs()
	var ret []float32
	if len(dst) > 0 && len(dst[0]) >= r*3 {
		ret = dst[0][:r*3]
	} else {
		ret = make([]float32, r*3)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < 3; j++ {
			ret[i*3+j] = float32(F.At(i, j))
		}
	}
	return ret
}

//String returns a neat string representation of a Matrix, one vector per line.
func (F *Matrix) String() string {
	r := F.NVecs()
	s := make([]string, 0, r)
	for i := 0; i < r; i++ {
		s = append(s, fmt.Sprintf("%8.3f %8.3f %8.3f", F.At(i, 0), F.At(i, 1), F.At(i, 2)))
	}
	return strings.Join(s, "\n")
}
