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

package gsd

import (
	"fmt"

	"github.com/rmera/timtools/traj"
)

//errDecorate is a helper function that decorates the error with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	return traj.ErrDecorate(err, caller)
}

//Error is the general structure for GSD errors. It fulfills traj.Error and traj.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	cause    error //the underlying error, if any
}

func (err Error) Error() string {
	if err.cause != nil {
		return fmt.Sprintf("gsd file %s error: %s: %s", err.filename, err.message, err.cause.Error())
	}
	return fmt.Sprintf("gsd file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//E is a copy, so the longer trail is only kept in the returned slice.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Unwrap returns the error that caused this one, if any.
func (err Error) Unwrap() error { return err.cause }

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "gsd") associated to the error
func (err Error) Format() string { return "gsd" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead      = "Traj object uninitialized to read"
	TrajUnIniWrite     = "Traj object uninitialized to write"
	ReadError          = "Error reading file"
	WriteError         = "Error writing file"
	UnableToOpen       = "Unable to open file"
	UnsupportedVersion = "Unsupported GSD version"
	WrongFormat        = "Wrong format in the GSD file"
	WrongShape         = "Wrong chunk dimensions"
)
