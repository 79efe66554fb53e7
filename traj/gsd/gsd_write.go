/*
 * gsd_write.go, part of timtools.
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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rmera/timtools/traj"
)

//Writer is a GSD file opened for writing. Chunks are written to the file as
//they are given; the index and name list are written on Close, so a file
//is not valid until closed.
type Writer struct {
	f           *os.File
	filename    string
	application string
	names       []string
	ids         map[string]uint16
	index       []indexEntry
	frame       uint64
	inFrame     bool
	offset      int64
	writable    bool
}

//NewWriter creates the file name (truncating it if it exists) and prepares it for writing
//HOOMD frames. application is recorded in the header.
func NewWriter(name, application string) (*Writer, error) {
	W := &Writer{filename: name, application: application, ids: make(map[string]uint16)}
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen, name, []string{"os.Create", "NewWriter"}, true, err}
	}
	//placeholder, the real header is written on Close
	if _, err := W.f.Write(make([]byte, headerSize)); err != nil {
		W.f.Close()
		return nil, Error{WriteError, name, []string{"Write", "NewWriter"}, true, err}
	}
	W.offset = headerSize
	W.writable = true
	return W, nil
}

//WriteChunk writes an NxM chunk of type t to the current frame. data must be a slice
//of the Go type corresponding to t (e.g. []float32 for Float) with N*M elements.
func (W *Writer) WriteChunk(name string, t Type, N uint64, M uint32, data interface{}) error {
	if !W.writable {
		return Error{TrajUnIniWrite, W.filename, []string{"WriteChunk"}, true, nil}
	}
	if N == 0 || M == 0 {
		return Error{fmt.Sprintf("%s: %s is %dx%d", WrongShape, name, N, M), W.filename, []string{"WriteChunk"}, true, nil}
	}
	if len(name) >= nameSize {
		return Error{fmt.Sprintf("chunk name too long: %s", name), W.filename, []string{"WriteChunk"}, true, nil}
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		return Error{WriteError, W.filename, []string{"binary.Write", "WriteChunk"}, true, err}
	}
	if uint64(buf.Len()) != N*uint64(M)*uint64(t.Size()) {
		return Error{fmt.Sprintf("%s: %d bytes of data for a %dx%d chunk of type %d", WrongShape, buf.Len(), N, M, t), W.filename, []string{"WriteChunk"}, true, nil}
	}
	id, ok := W.ids[name]
	if !ok {
		id = uint16(len(W.names))
		W.ids[name] = id
		W.names = append(W.names, name)
	}
	if _, err := W.f.Write(buf.Bytes()); err != nil {
		return Error{WriteError, W.filename, []string{"Write", "WriteChunk"}, true, err}
	}
	W.index = append(W.index, indexEntry{Frame: W.frame, N: N, Location: W.offset, M: M, ID: id, Type: uint8(t)})
	W.offset += int64(buf.Len())
	W.inFrame = true
	return nil
}

//EndFrame finishes the current frame. Chunks written afterwards go to the next frame.
func (W *Writer) EndFrame() error {
	if !W.writable {
		return Error{TrajUnIniWrite, W.filename, []string{"EndFrame"}, true, nil}
	}
	if !W.inFrame {
		return Error{"Can't write an empty frame", W.filename, []string{"EndFrame"}, true, nil}
	}
	W.frame++
	W.inFrame = false
	return nil
}

//WNext writes fr as a new HOOMD frame. The box is written from fr.Box.
//Positions and orientations are written only if fr.N > 0; nil orientations
//are not written (readers then use the default, or frame 0's).
func (W *Writer) WNext(fr *traj.Frame) error {
	bx := fr.Box.GSD()
	boxdata := make([]float32, 6)
	for i, v := range bx {
		boxdata[i] = float32(v)
	}
	dims := uint8(3)
	if fr.Box.Is2D {
		dims = 2
	}
	chunks := []struct {
		name string
		t    Type
		n    uint64
		m    uint32
		data interface{}
	}{
		{StepChunk, Uint64, 1, 1, []uint64{fr.Step}},
		{DimensionsChunk, Uint8, 1, 1, []uint8{dims}},
		{BoxChunk, Float, 6, 1, boxdata},
		{NChunk, Uint32, 1, 1, []uint32{uint32(fr.N)}},
	}
	for _, c := range chunks {
		if err := W.WriteChunk(c.name, c.t, c.n, c.m, c.data); err != nil {
			return errDecorate(err, "WNext")
		}
	}
	if fr.N > 0 && fr.Positions != nil {
		if fr.Positions.NVecs() != fr.N {
			return Error{fmt.Sprintf("%d positions given, but N is %d", fr.Positions.NVecs(), fr.N), W.filename, []string{"WNext"}, true, nil}
		}
		if err := W.WriteChunk(PositionChunk, Float, uint64(fr.N), 3, fr.Positions.Float32s()); err != nil {
			return errDecorate(err, "WNext")
		}
	}
	if fr.N > 0 && fr.Orientations != nil {
		r, c := fr.Orientations.Dims()
		if r != fr.N || c != 4 {
			return Error{fmt.Sprintf("%s: orientations are %dx%d, N is %d", WrongShape, r, c, fr.N), W.filename, []string{"WNext"}, true, nil}
		}
		q := make([]float32, 0, r*4)
		for i := 0; i < r; i++ {
			for j := 0; j < 4; j++ {
				q = append(q, float32(fr.Orientations.At(i, j)))
			}
		}
		if err := W.WriteChunk(OrientationChunk, Float, uint64(fr.N), 4, q); err != nil {
			return errDecorate(err, "WNext")
		}
	}
	return errDecorate(W.EndFrame(), "WNext")
}

//Close writes the index, the name list and the header, and closes the file.
//Chunks written after the last call to EndFrame are kept, as one more frame.
func (W *Writer) Close() error {
	if !W.writable {
		return nil
	}
	W.writable = false
	defer W.f.Close()
	wrap := func(err error, where string) error {
		return Error{WriteError, W.filename, []string{where, "Close"}, true, err}
	}
	sort.SliceStable(W.index, func(i, j int) bool {
		if W.index[i].Frame != W.index[j].Frame {
			return W.index[i].Frame < W.index[j].Frame
		}
		return W.index[i].ID < W.index[j].ID
	})
	h := header{Magic: gsdMagic, SchemaVersion: MakeVersion(1, 4), GSDVersion: MakeVersion(2, 0)}
	copy(h.Application[:len(h.Application)-1], W.application)
	copy(h.Schema[:], "hoomd")

	//The index needs at least one entry. Unused entries have location 0.
	entries := W.index
	if len(entries) == 0 {
		entries = make([]indexEntry, 1)
	}
	h.IndexLocation = uint64(W.offset)
	h.IndexAllocated = uint64(len(entries))
	if err := binary.Write(W.f, binary.LittleEndian, entries); err != nil {
		return wrap(err, "binary.Write")
	}
	W.offset += int64(len(entries) * indexEntrySize)

	var names bytes.Buffer
	for _, n := range W.names {
		names.WriteString(n)
		names.WriteByte(0)
	}
	//pad with zeros, leaving room for the empty name that ends the list.
	blocks := names.Len()/nameSize + 1
	names.Write(make([]byte, blocks*nameSize-names.Len()))
	h.NamelistLocation = uint64(W.offset)
	h.NamelistAllocated = uint64(blocks)
	if _, err := W.f.Write(names.Bytes()); err != nil {
		return wrap(err, "Write")
	}
	if _, err := W.f.Seek(0, io.SeekStart); err != nil {
		return wrap(err, "Seek")
	}
	if err := binary.Write(W.f, binary.LittleEndian, &h); err != nil {
		return wrap(err, "binary.Write")
	}
	return nil
}

//Len returns the number of frames completed so far.
func (W *Writer) Len() int {
	return int(W.frame)
}
