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

/*Package stf implements the simple trajectory format (STF), a compressed text trajectory
format that is very easy to read and write from other languages.

timtools uses STF as a second trajectory backend, next to GSD. STF stores positions and,
optionally, the box vectors of each frame, but no orientations, so frames read from STF
files get identity orientations.

Format

An STF file is compressed. The compression is chosen from the last letter of the file name:
zstd for ".stf" (the default, and for any letter not listed), gzip for ".stz", flate for ".str" and
lzw for ".stl".

An STF file may only contain ASCII symbols.

The file starts with a header, one key=value pair per line, ending with a line that starts with
"**" followed by one or more spaces and the number of particles per frame. The "prec" key gives
the precision (a positive integer, 2 if absent). The "**" sequence may not appear anywhere else.

After the header, each frame has one line per particle, with 3 integers: the x, y and z
coordinates multiplied by 10^prec and rounded.

Each frame ends with a line that starts with "*", optionally followed by whitespace and 9
floating-point numbers: the three box vectors, a1x a1y a1z a2x a2y a2z a3x a3y a3z.
*/
package stf
