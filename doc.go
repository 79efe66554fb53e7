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

/*Package timtools provides a few helpers for particle simulation trajectories: extracting
the box, positions and orientations of the particles in selected frames, counting particles,
and finding the largest cutoff radius that can be used in a periodic box.

	**timtools Capabilities**

    Reads HOOMD GSD trajectories (also zstd-compressed ones) and STF trajectories.

    Iterates over a range of frames (start, end, stride), giving for each frame the box,
	the positions and the orientations (quaternions) of the particles. The box can be
	forced to be 2D, regardless of what the file says.

    Counts the particles and frames in a trajectory.

    Computes the largest cutoff radius for a periodic, possibly triclinic, box
	(see the box package).

    Plots per-frame box quantities (see the timplot package).

The geometry lives in the box package, the file formats in traj/gsd and traj/stf, and
the coordinates use the v3.Matrix type, a gonum Dense with 3 columns.*/
package timtools
