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

/*Package gsd reads and writes GSD files, the binary trajectory format used by HOOMD-blue.

A GSD file is a container of named chunks ("particles/position", "configuration/box"...),
each an NxM array of one of a few numeric types, grouped in frames. The file
starts with a 256 bytes header, followed by the chunk data. The header points to
an index, with one 32 bytes entry per chunk, and to a name list. All values are
little endian. Both the 1.x name list (fixed 64-byte names) and the 2.x one
(null-terminated names) are supported.

File gives access to the raw chunks. Reader interprets them with the HOOMD schema,
where a chunk missing from a frame takes its value from the first frame, or from
the schema default if the first frame doesn't have it either.

Files compressed with zstd (as produced by "zstd traj.gsd") are read transparently,
after decompressing them in memory.
*/
package gsd
