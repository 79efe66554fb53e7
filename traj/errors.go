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

package traj

//Errors

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
//The decoration slice contains the functions in the calling stack, with, optionally, extra information
//in the format "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

//TrajError is the interface for errors in trajectories
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

//LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so  they can be
//filtered in a typeswitch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}

//ErrDecorate adds caller to the decoration of err, if err implements Error,
//and returns err. Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

//IsLastFrame returns true if err signals the normal end of a trajectory.
func IsLastFrame(err error) bool {
	_, ok := err.(LastFrameError)
	return ok
}

//lastFrame implements LastFrameError
type lastFrame struct {
	deco     []string
	fileName string
	format   string
}

//NewLastFrameError returns the error readers give when asked for a frame past the
//end of the trajectory.
func NewLastFrameError(filename, format, caller string) LastFrameError {
	return &lastFrame{deco: []string{caller}, fileName: filename, format: format}
}

func (E *lastFrame) NormalLastFrameTermination() {}

func (E *lastFrame) FileName() string { return E.fileName }

func (E *lastFrame) Error() string { return "EOF" }

func (E *lastFrame) Critical() bool { return false }

func (E *lastFrame) Format() string { return E.format }

func (E *lastFrame) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
