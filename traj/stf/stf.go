/*
 * stf.go, part of timtools.
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

package stf

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/rmera/timtools/traj"
	v3 "github.com/rmera/timtools/v3"
)

const (
	lzwLitwidth int = 8
	defaultPrec int = 2
)

//Write!
type StfW struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//Close flushes the compressor and closes the file.
func (S *StfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.h.Close()
	if err2 := S.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return Error{WriteError, S.filename, []string{"Close"}, true, err}
	}
	return nil
}

//Len returns the number of particles per frame.
func (S *StfW) Len() int {
	return S.natoms
}

//WNext writes a frame with the coordinates in coord and, if given, the 9 box vector
//components in box.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true, nil}
	}
	if coord == nil {
		return Error{NilCoordinates, S.filename, []string{"WNext"}, true, nil}
	}
	v := coord.NVecs()
	if v != S.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true, nil}
	}
	var floats [3]float64
	w := bufio.NewWriter(S.h)
	for i := 0; i < v; i++ {
		floats[0] = coord.At(i, 0)
		floats[1] = coord.At(i, 1)
		floats[2] = coord.At(i, 2)
		w.WriteString(coordsEncode(floats, S.prec))
	}
	if len(box) > 0 && len(box[0]) >= 9 {
		b := box[0]
		fmt.Fprintf(w, "* %g %g %g %g %g %g %g %g %g\n", b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7], b[8])
	} else {
		w.WriteString("*\n")
	}
	if err := w.Flush(); err != nil {
		return Error{WriteError, S.filename, []string{"WNext"}, true, err}
	}
	return nil
}

//NewWriter creates an STF file for natoms particles per frame. The header is written from
//the given map, if not nil. Only the first compression level given is used.
func NewWriter(name string, natoms int, header map[string]string, compressionLevel ...int) (*StfW, error) {
	var level int = 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	S := new(StfW)
	S.filename = name
	S.natoms = natoms
	S.prec = defaultPrec
	if p, ok := header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			return nil, Error{fmt.Sprintf("Invalid precision '%s'", p), name, []string{"NewWriter"}, true, err}
		}
		S.prec = prec
	}
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen, name, []string{"os.Create", "NewWriter"}, true, err}
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch compression(name) {
	case 'l':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	case 'r':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, level) }
	default:
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		}
	}
	S.h, err = AnyNewWriter(S.f)
	if err != nil {
		S.f.Close()
		return nil, Error{"Can't create compressor", S.filename, []string{"NewWriter"}, true, err}
	}
	keys := make([]string, 0, len(header)+1)
	for k := range header {
		keys = append(keys, k)
	}
	if _, ok := header["prec"]; !ok {
		keys = append(keys, "prec")
	}
	sort.Strings(keys)
	var headerstr strings.Builder
	for _, k := range keys {
		v := header[k]
		if k == "prec" {
			v = strconv.Itoa(S.prec)
		}
		fmt.Fprintf(&headerstr, "%s=%s\n", k, v)
	}
	fmt.Fprintf(&headerstr, "** %d\n", S.natoms)
	if _, err := S.h.Write([]byte(headerstr.String())); err != nil {
		S.h.Close()
		S.f.Close()
		return nil, Error{WriteError, S.filename, []string{"NewWriter"}, true, err}
	}
	S.writeable = true
	return S, nil
}

//compression returns the letter that selects the compression of the file name.
//'s' (zstd) for names that end in ".stf"
func compression(name string) byte {
	name = strings.ToLower(name)
	if strings.HasSuffix(name, ".stf") {
		return 's'
	}
	return name[len(name)-1]
}

//Read!
type StfR struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	header   map[string]string
	prec     int
	readable bool
}

//stdql makes a *zstd.Decoder an io.ReadCloser.
type stdql struct {
	*zstd.Decoder
}

//Close Closes the object. It can not be used after this call
func (s stdql) Close() error {
	s.Decoder.Close()
	return nil
}

func coordsEncode(f [3]float64, prec int) string {
	p := math.Pow(10.0, float64(prec))
	var temp [3]int
	for i, v := range f {
		temp[i] = int(math.RoundToEven(v * p))
	}
	return fmt.Sprintf("%d %d %d\n", temp[0], temp[1], temp[2])
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := math.Pow(10.0, float64(prec))
	s := strings.Fields(str)
	if len(s) < 3 {
		return fmt.Errorf("Ill formated coordinates line in stf: Too few fields: %s", str)
	}
	if len(s) > 3 {
		return fmt.Errorf("Ill formated coordinates line in stf: Too many fields: %s", str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("Can't parse coordinate %d (%s). Error: %s", i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

//New opens a STF trajectory for reading, and returns a pointer
//to the handle, a map with the metadata (or nil, if no metadata is found)
//and error or nil.
func New(name string) (*StfR, map[string]string, error) {
	S := new(StfR)
	S.natoms = -1 //just so we know if things don't work
	S.prec = defaultPrec
	S.filename = name
	var err error
	S.f, err = os.Open(S.filename)
	if err != nil {
		return nil, nil, Error{UnableToOpen, name, []string{"os.Open", "New"}, true, err}
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch compression(name) {
	case 'l':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case 'r':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	default:
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return stdql{r}, nil
		}
	}
	S.dec, err = AnyNewReader(bufio.NewReader(S.f))
	if err != nil {
		S.f.Close()
		return nil, nil, Error{"Can't read header", S.filename, []string{"New"}, true, err}
	}
	S.h = bufio.NewReader(S.dec)
	if err := S.readHeader(); err != nil {
		S.dec.Close()
		S.f.Close()
		return nil, nil, errDecorate(err, "New")
	}
	S.readable = true
	return S, S.header, nil
}

func (S *StfR) readHeader() error {
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			return Error{"Can't read header", S.filename, []string{"readHeader"}, true, err}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				return Error{fmt.Sprintf("Can't read atom number from '%s'", str), S.filename, []string{"readHeader"}, true, nil}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil {
				return Error{fmt.Sprintf("Can't read atom number from '%s'", nat[1]), S.filename, []string{"readHeader"}, true, err}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return Error{"Malformed header line: " + str, S.filename, []string{"readHeader"}, true, nil}
		}
		if S.header == nil {
			S.header = make(map[string]string)
		}
		S.header[kv[0]] = kv[1]
	}
	if p, ok := S.header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			log.Printf("Invalid precision for trajectory %s. Will assume the default", S.filename)
		}
	}
	return nil
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *StfR) Readable() bool {
	return S.readable
}

//Next puts in the given matrix (c) the coordinates for the next frame of the trajectory
//and, if given, and the information is present, puts the box vector information in box
//Returns error if the operation is not successful. If the error is a traj.LastFrameError, the end of the
//trajectory has been reached, not an actual error. If c is nil, the frame is read and checked, but discarded.
func (S *StfR) Next(c *v3.Matrix, box ...[]float64) error {
	if !S.readable {
		return Error{TrajUnIniRead, S.filename, []string{"Next"}, true, nil}
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		b, err := S.h.ReadString('\n')
		if err != nil {
			// EOF should only happen when reading the first atom
			if err == io.EOF && i == 0 && b == "" {
				//nothing bad happened here, the trajectory just ended.
				S.Close()
				return traj.NewLastFrameError(S.filename, "stf", "Next")
			}
			return Error{ReadError, S.filename, []string{"Next"}, true, err}
		}
		err = coordsDecode(strings.TrimSuffix(b, "\n"), &temp, S.prec)
		if err != nil {
			return Error{WrongFormat, S.filename, []string{"Next"}, true, err}
		}
		if c == nil {
			continue //We ignore this whole frame, reading the content but not saving it.
			//Note that we still check the frame for correctness.
		}
		for j, v := range temp {
			c.Set(i, j, v)
		}
	}
	s, err := S.h.ReadString('\n')
	if err == io.EOF && s == "" && S.natoms == 0 {
		S.Close()
		return traj.NewLastFrameError(S.filename, "stf", "Next")
	}
	if err != nil && !(err == io.EOF && s != "") {
		return Error{"Can't read the frame termination mark", S.filename, []string{"Next"}, true, err}
	}
	if s == "" || s[0] != '*' {
		return Error{"Wrong number of atoms in frame", S.filename, []string{"Next"}, true, nil}
	}
	if len(box) > 0 && len(box[0]) >= 9 {
		fields := strings.Fields(s)
		if len(fields) < 10 { // The "*" and the 9 numbers
			log.Printf("Trajectory file %s does not contain (correct) box information: %s", S.filename, fields) //just a heads-up
			return nil
		}
		var errbox error
		for j, v := range fields[1:10] {
			box[0][j], errbox = strconv.ParseFloat(v, 64)
			if errbox != nil {
				break
			}
		}
		//If we got an error reading any of the values, we just set the whole thing to zero
		//and log, no error returned.
		if errbox != nil {
			log.Printf("Failed to read box in a frame from %s", S.filename) //just a heads-up
			for i := range box[0] {
				box[0][i] = 0.0
			}
		}
	}
	return nil
}

//Close closes the object, and marks it as unreadable
func (S *StfR) Close() error {
	if !S.readable {
		return nil
	}
	S.readable = false
	S.dec.Close()
	return S.f.Close()
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}
