/*
 * errors.go, part of timtools.
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

package timtools

import (
	"fmt"

	"github.com/rmera/timtools/traj"
)

func errDecorate(err error, caller string) error {
	return traj.ErrDecorate(err, caller)
}

//Error is the error type of the timtools package. It fulfills traj.TrajError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("timtools: %s: %s", err.filename, err.message)
}

//Decorate adds deco to the trail of callers of the error, and returns the trail.
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file the error is about, if any.
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file the error is about, if known.
func (err Error) Format() string { return Format(err.filename) }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnknownFormat   = "Unknown trajectory format"
	FrameOutOfRange = "Frame out of range"
	InvalidRange    = "Invalid frame range"
)
