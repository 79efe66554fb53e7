/*
 * doc.go, part of timtools.
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

/*Package box implements the periodic simulation cell used by HOOMD-style trajectories,
described by three lengths (Lx, Ly, Lz) and three tilt factors (xy, xz, yz).

The lattice vectors follow the HOOMD convention: the first one lies along x, the second
one in the xy plane and the third one is general:

	a1 = (Lx, 0, 0)
	a2 = (xy*Ly, Ly, 0)
	a3 = (xz*Lz, yz*Lz, Lz)

A 2D box has no extent in z; Lz, xz and yz are ignored by every geometric function.

The main function of the package is LargestRcut, which gives the largest cutoff radius
that can be used in the box without a particle interacting with its own periodic images.
*/
package box
