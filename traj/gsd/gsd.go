/*
 * gsd.go, part of timtools.
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
	"math"
	"os"
	"sort"

	"github.com/klauspost/compress/zstd"

	"github.com/rmera/timtools/traj"
)

const (
	gsdMagic      uint64 = 0x65DF65DF65DF65DF
	headerSize           = 256
	indexEntrySize       = 32
	nameSize             = 64
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

//Type is the type of the elements of a chunk.
type Type uint8

const (
	Uint8  Type = 1
	Uint16 Type = 2
	Uint32 Type = 3
	Uint64 Type = 4
	Int8   Type = 5
	Int16  Type = 6
	Int32  Type = 7
	Int64  Type = 8
	Float  Type = 9
	Double Type = 10
	Char   Type = 11
)

//Size returns the size in bytes of one element of the type, or 0 for an unknown type.
func (t Type) Size() int {
	switch t {
	case Uint8, Int8, Char:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float:
		return 4
	case Uint64, Int64, Double:
		return 8
	}
	return 0
}

//MakeVersion packs a major and minor version as GSD does.
func MakeVersion(major, minor uint32) uint32 {
	return major<<16 | minor
}

type header struct {
	Magic             uint64
	IndexLocation     uint64
	IndexAllocated    uint64
	NamelistLocation  uint64
	NamelistAllocated uint64
	SchemaVersion     uint32
	GSDVersion        uint32
	Application       [64]byte
	Schema            [64]byte
	Reserved          [80]byte
}

type indexEntry struct {
	Frame    uint64
	N        uint64
	Location int64
	M        uint32
	ID       uint16
	Type     uint8
	Flags    uint8
}

//Chunk is one NxM array stored in a GSD file.
type Chunk struct {
	Name string
	Type Type
	N    uint64
	M    uint32
	data []byte
}

//Len returns the number of elements in the chunk.
func (C *Chunk) Len() int {
	return int(C.N) * int(C.M)
}

//Float64s returns the elements of the chunk, in row-major order, converted to float64.
func (C *Chunk) Float64s() []float64 {
	n := C.Len()
	size := C.Type.Size()
	ret := make([]float64, n)
	le := binary.LittleEndian
	for i := 0; i < n; i++ {
		b := C.data[i*size : (i+1)*size]
		switch C.Type {
		case Uint8, Char:
			ret[i] = float64(b[0])
		case Int8:
			ret[i] = float64(int8(b[0]))
		case Uint16:
			ret[i] = float64(le.Uint16(b))
		case Int16:
			ret[i] = float64(int16(le.Uint16(b)))
		case Uint32:
			ret[i] = float64(le.Uint32(b))
		case Int32:
			ret[i] = float64(int32(le.Uint32(b)))
		case Uint64:
			ret[i] = float64(le.Uint64(b))
		case Int64:
			ret[i] = float64(int64(le.Uint64(b)))
		case Float:
			ret[i] = float64(math.Float32frombits(le.Uint32(b)))
		case Double:
			ret[i] = math.Float64frombits(le.Uint64(b))
		}
	}
	return ret
}

//Float32s returns the elements of a Float chunk, in row-major order, without conversion.
//For other types it returns nil.
func (C *Chunk) Float32s() []float32 {
	if C.Type != Float {
		return nil
	}
	n := C.Len()
	ret := make([]float32, n)
	for i := range ret {
		ret[i] = math.Float32frombits(binary.LittleEndian.Uint32(C.data[i*4:]))
	}
	return ret
}

//Uint64 returns the first element of an integer chunk. Useful for 1x1 chunks like
//the time step or the number of particles.
func (C *Chunk) Uint64() (uint64, error) {
	if C.Len() == 0 {
		return 0, fmt.Errorf("chunk %s is empty", C.Name)
	}
	le := binary.LittleEndian
	switch C.Type {
	case Uint8, Int8, Char:
		return uint64(C.data[0]), nil
	case Uint16, Int16:
		return uint64(le.Uint16(C.data)), nil
	case Uint32, Int32:
		return uint64(le.Uint32(C.data)), nil
	case Uint64, Int64:
		return le.Uint64(C.data), nil
	}
	return 0, fmt.Errorf("chunk %s has non-integer type %d", C.Name, C.Type)
}

//File is a GSD file opened for reading.
type File struct {
	filename string
	r        io.ReaderAt
	size     int64
	closer   io.Closer
	header   header
	index    []indexEntry
	names    []string
	ids      map[string]uint16
	nframes  int
	readable bool
}

//OpenFile opens the GSD file name for reading. zstd-compressed files are
//decompressed in memory.
func OpenFile(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen, name, []string{"os.Open", "OpenFile"}, true, err}
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Error{UnableToOpen, name, []string{"Stat", "OpenFile"}, true, err}
	}
	m := make([]byte, len(zstdMagic))
	if _, err := f.ReadAt(m, 0); err == nil && bytes.Equal(m, zstdMagic) {
		data, err := decompress(f)
		f.Close()
		if err != nil {
			return nil, Error{"Can't decompress file", name, []string{"decompress", "OpenFile"}, true, err}
		}
		F, err := NewFile(bytes.NewReader(data), int64(len(data)), name)
		if err != nil {
			return nil, errDecorate(err, "OpenFile")
		}
		return F, nil
	}
	F, err := NewFile(f, st.Size(), name)
	if err != nil {
		f.Close()
		return nil, errDecorate(err, "OpenFile")
	}
	F.closer = f
	return F, nil
}

func decompress(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

//NewFile reads the GSD header, index and name list from r, which contains
//size bytes. name is only used for error messages.
func NewFile(r io.ReaderAt, size int64, name string) (*File, error) {
	F := &File{filename: name, r: r, size: size, ids: make(map[string]uint16)}
	if size < headerSize {
		return nil, Error{WrongFormat + ": file too short", name, []string{"NewFile"}, true, nil}
	}
	if err := binary.Read(io.NewSectionReader(r, 0, headerSize), binary.LittleEndian, &F.header); err != nil {
		return nil, Error{ReadError, name, []string{"binary.Read", "NewFile"}, true, err}
	}
	if F.header.Magic != gsdMagic {
		return nil, Error{WrongFormat + ": wrong magic number", name, []string{"NewFile"}, true, nil}
	}
	major := F.header.GSDVersion >> 16
	if major != 1 && major != 2 {
		return nil, Error{fmt.Sprintf("%s %d.%d", UnsupportedVersion, major, F.header.GSDVersion&0xffff), name, []string{"NewFile"}, true, nil}
	}
	if err := F.readNames(major); err != nil {
		return nil, errDecorate(err, "NewFile")
	}
	if err := F.readIndex(); err != nil {
		return nil, errDecorate(err, "NewFile")
	}
	F.readable = true
	return F, nil
}

func (F *File) section(location, length uint64) (*io.SectionReader, error) {
	if location > uint64(F.size) || length > uint64(F.size)-location {
		return nil, Error{fmt.Sprintf("%s: block at %d of %d bytes past the end of the file", WrongFormat, location, length), F.filename, []string{"section"}, true, nil}
	}
	return io.NewSectionReader(F.r, int64(location), int64(length)), nil
}

func (F *File) readNames(major uint32) error {
	n := F.header.NamelistAllocated * nameSize
	sr, err := F.section(F.header.NamelistLocation, n)
	if err != nil {
		return errDecorate(err, "readNames")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(sr, buf); err != nil {
		return Error{ReadError, F.filename, []string{"io.ReadFull", "readNames"}, true, err}
	}
	if major == 1 {
		for i := uint64(0); i < F.header.NamelistAllocated; i++ {
			entry := buf[i*nameSize : (i+1)*nameSize]
			end := bytes.IndexByte(entry, 0)
			if end < 0 {
				end = nameSize
			}
			if end == 0 {
				break
			}
			F.addName(string(entry[:end]))
		}
		return nil
	}
	for len(buf) > 0 {
		end := bytes.IndexByte(buf, 0)
		if end <= 0 {
			break
		}
		F.addName(string(buf[:end]))
		buf = buf[end+1:]
	}
	return nil
}

func (F *File) addName(name string) {
	F.ids[name] = uint16(len(F.names))
	F.names = append(F.names, name)
}

func (F *File) readIndex() error {
	n := F.header.IndexAllocated
	sr, err := F.section(F.header.IndexLocation, n*indexEntrySize)
	if err != nil {
		return errDecorate(err, "readIndex")
	}
	entries := make([]indexEntry, n)
	if err := binary.Read(sr, binary.LittleEndian, entries); err != nil {
		return Error{ReadError, F.filename, []string{"binary.Read", "readIndex"}, true, err}
	}
	for _, e := range entries {
		if e.Location == 0 {
			continue
		}
		if int(e.ID) >= len(F.names) {
			return Error{fmt.Sprintf("%s: chunk id %d without a name", WrongFormat, e.ID), F.filename, []string{"readIndex"}, true, nil}
		}
		if Type(e.Type).Size() == 0 {
			return Error{fmt.Sprintf("%s: unknown chunk type %d", WrongFormat, e.Type), F.filename, []string{"readIndex"}, true, nil}
		}
		F.index = append(F.index, e)
	}
	sort.SliceStable(F.index, func(i, j int) bool {
		if F.index[i].Frame != F.index[j].Frame {
			return F.index[i].Frame < F.index[j].Frame
		}
		return F.index[i].ID < F.index[j].ID
	})
	if len(F.index) > 0 {
		F.nframes = int(F.index[len(F.index)-1].Frame) + 1
	}
	return nil
}

//Len returns the number of frames in the file.
func (F *File) Len() int {
	return F.nframes
}

//FileName returns the name of the file.
func (F *File) FileName() string {
	return F.filename
}

//Application returns the application that created the file.
func (F *File) Application() string {
	return cString(F.header.Application[:])
}

//Schema returns the name of the schema the file follows, and its version as major, minor.
func (F *File) Schema() (string, uint32, uint32) {
	v := F.header.SchemaVersion
	return cString(F.header.Schema[:]), v >> 16, v & 0xffff
}

//Names returns the names of all the chunks in the file.
func (F *File) Names() []string {
	ret := make([]string, len(F.names))
	copy(ret, F.names)
	return ret
}

func cString(b []byte) string {
	if end := bytes.IndexByte(b, 0); end >= 0 {
		return string(b[:end])
	}
	return string(b)
}

//Chunk reads the chunk called name in the given frame. It returns nil, and no error,
//if the frame does not contain that chunk.
func (F *File) Chunk(frame int, name string) (*Chunk, error) {
	if !F.readable {
		return nil, Error{TrajUnIniRead, F.filename, []string{"Chunk"}, true, nil}
	}
	if frame < 0 || frame >= F.nframes {
		return nil, traj.NewLastFrameError(F.filename, "gsd", "Chunk")
	}
	id, ok := F.ids[name]
	if !ok {
		return nil, nil
	}
	f := uint64(frame)
	first := sort.Search(len(F.index), func(i int) bool { return F.index[i].Frame >= f })
	for i := first; i < len(F.index) && F.index[i].Frame == f; i++ {
		e := F.index[i]
		if e.ID != id {
			continue
		}
		c := &Chunk{Name: name, Type: Type(e.Type), N: e.N, M: e.M}
		n := e.N * uint64(e.M) * uint64(c.Type.Size())
		sr, err := F.section(uint64(e.Location), n)
		if err != nil {
			return nil, errDecorate(err, "Chunk: "+name)
		}
		c.data = make([]byte, n)
		if _, err := io.ReadFull(sr, c.data); err != nil {
			return nil, Error{ReadError, F.filename, []string{"io.ReadFull", "Chunk: " + name}, true, err}
		}
		return c, nil
	}
	return nil, nil
}

//Close closes the file. It can't be read after this call.
func (F *File) Close() error {
	if !F.readable {
		return nil
	}
	F.readable = false
	if F.closer != nil {
		return F.closer.Close()
	}
	return nil
}
