/*
 * gsd_test.go, part of timtools.
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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/timtools/box"
	"github.com/rmera/timtools/traj"
	v3 "github.com/rmera/timtools/v3"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

//testFrames returns n frames of 4 particles in a slowly sheared box.
func testFrames(n int) []*traj.Frame {
	ret := make([]*traj.Frame, 0, n)
	for i := 0; i < n; i++ {
		pos := make([]float64, 0, 12)
		for j := 0; j < 4; j++ {
			pos = append(pos, float64(j)+0.5, float64(i)*0.25, -float64(j))
		}
		p, _ := v3.NewMatrix(pos)
		o := traj.IdentityOrientations(4)
		o.Set(1, 0, 0)
		o.Set(1, 3, 1) //180 degrees around z
		ret = append(ret, &traj.Frame{
			Index:        i,
			Step:         uint64(1000 * i),
			Box:          box.New(10, 12, 14, 0.1*float64(i), 0.05, -0.2),
			N:            4,
			Positions:    p,
			Orientations: o,
		})
	}
	return ret
}

func writeTestFile(Te *testing.T, name string, frames []*traj.Frame) {
	Te.Helper()
	w, err := NewWriter(name, "timtools test")
	if err != nil {
		Te.Fatal(err)
	}
	for _, f := range frames {
		if err := w.WNext(f); err != nil {
			Te.Fatal(err)
		}
	}
	if w.Len() != len(frames) {
		Te.Errorf("writer has %d frames, expected %d", w.Len(), len(frames))
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
}

func compareFrames(Te *testing.T, want, got *traj.Frame) {
	Te.Helper()
	if got.Index != want.Index || got.Step != want.Step || got.N != want.N {
		Te.Errorf("frame %d: got index %d step %d N %d, want %d %d %d", want.Index, got.Index, got.Step, got.N, want.Index, want.Step, want.N)
	}
	wb, gb := want.Box.GSD(), got.Box.GSD()
	if diff := cmp.Diff(wb[:], gb[:], approx); diff != "" {
		Te.Errorf("frame %d box mismatch (-want +got):\n%s", want.Index, diff)
	}
	if diff := cmp.Diff(want.Positions.RawMatrix().Data, got.Positions.RawMatrix().Data, approx); diff != "" {
		Te.Errorf("frame %d positions mismatch (-want +got):\n%s", want.Index, diff)
	}
	if diff := cmp.Diff(want.Orientations.RawMatrix().Data, got.Orientations.RawMatrix().Data, approx); diff != "" {
		Te.Errorf("frame %d orientations mismatch (-want +got):\n%s", want.Index, diff)
	}
}

func TestGSDWriteRead(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "test.gsd")
	frames := testFrames(3)
	writeTestFile(Te, name, frames)
	r, err := Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	if r.Len() != 3 {
		Te.Fatalf("expected 3 frames, got %d", r.Len())
	}
	if schema, major, minor := r.Schema(); schema != "hoomd" || major != 1 || minor != 4 {
		Te.Errorf("wrong schema %s %d.%d", schema, major, minor)
	}
	if r.Application() != "timtools test" {
		Te.Errorf("wrong application %q", r.Application())
	}
	fmt.Println("chunks:", r.Names())
	for i, want := range frames {
		got, err := r.ReadFrame(i)
		if err != nil {
			Te.Fatal(err)
		}
		if got.Dimensions != 3 {
			Te.Errorf("frame %d: expected 3 dimensions, got %d", i, got.Dimensions)
		}
		compareFrames(Te, want, got)
	}
	_, err = r.ReadFrame(3)
	if !traj.IsLastFrame(err) {
		Te.Errorf("expected a last frame error, got %v", err)
	}
}

func TestGSD2D(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "test2d.gsd")
	fr := testFrames(1)
	fr[0].Box = box.New2D(8, 9, 0.5)
	writeTestFile(Te, name, fr)
	r, err := Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	got, err := r.ReadFrame(0)
	if err != nil {
		Te.Fatal(err)
	}
	if got.Dimensions != 2 || !got.Box.Is2D {
		Te.Errorf("expected a 2D frame, got %d dimensions, box %v", got.Dimensions, got.Box)
	}
	if got.BoxData[2] != 1 {
		Te.Errorf("HOOMD stores Lz=1 for 2D boxes, got %v", got.BoxData[2])
	}
	if got.Box.Lz != 0 {
		Te.Errorf("2D box shouldn't have Lz, got %v", got.Box.Lz)
	}
}

//Frame 1 only has the step and positions, the rest must come from frame 0.
func TestGSDFrameZeroDefaults(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "defaults.gsd")
	fr := testFrames(1)[0]
	w, err := NewWriter(name, "timtools test")
	if err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(fr); err != nil {
		Te.Fatal(err)
	}
	if err := w.WriteChunk(StepChunk, Uint64, 1, 1, []uint64{50}); err != nil {
		Te.Fatal(err)
	}
	if err := w.WriteChunk(PositionChunk, Float, 4, 3, make([]float32, 12)); err != nil {
		Te.Fatal(err)
	}
	if err := w.EndFrame(); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	r, err := Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	got, err := r.ReadFrame(1)
	if err != nil {
		Te.Fatal(err)
	}
	if got.Step != 50 || got.N != 4 {
		Te.Errorf("wrong step %d or N %d", got.Step, got.N)
	}
	wb, gb := fr.Box.GSD(), got.Box.GSD()
	if diff := cmp.Diff(wb[:], gb[:], approx); diff != "" {
		Te.Errorf("box not taken from frame 0 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(fr.Orientations.RawMatrix().Data, got.Orientations.RawMatrix().Data, approx); diff != "" {
		Te.Errorf("orientations not taken from frame 0 (-want +got):\n%s", diff)
	}
	if !mat.Equal(got.Positions, mat.NewDense(4, 3, nil)) {
		Te.Errorf("positions should be the ones of frame 1, got\n%v", got.Positions)
	}
}

//A file with only N and positions gets the schema defaults for the rest.
func TestGSDSchemaDefaults(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "bare.gsd")
	w, err := NewWriter(name, "timtools test")
	if err != nil {
		Te.Fatal(err)
	}
	if err := w.WriteChunk(NChunk, Uint32, 1, 1, []uint32{2}); err != nil {
		Te.Fatal(err)
	}
	if err := w.WriteChunk(PositionChunk, Float, 2, 3, []float32{1, 2, 3, 4, 5, 6}); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	r, err := Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	if r.Len() != 1 {
		Te.Fatalf("expected 1 frame, got %d", r.Len())
	}
	got, err := r.ReadFrame(0)
	if err != nil {
		Te.Fatal(err)
	}
	if got.BoxData != defaultBox || got.Dimensions != 3 || got.Step != 0 {
		Te.Errorf("wrong defaults: box %v dimensions %d step %d", got.BoxData, got.Dimensions, got.Step)
	}
	if !mat.Equal(got.Orientations, traj.IdentityOrientations(2)) {
		Te.Errorf("expected identity orientations, got %v", mat.Formatted(got.Orientations))
	}
	n, err := r.NParticles(0)
	if err != nil || n != 2 {
		Te.Errorf("NParticles: %d %v", n, err)
	}
}

//Positions are read from single and double precision chunks.
func TestGSDPositionTypes(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "types.gsd")
	w, err := NewWriter(name, "timtools test")
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{1.5, -2, 3.25, 4, 5, 6.125}
	if err := w.WriteChunk(NChunk, Uint32, 1, 1, []uint32{2}); err != nil {
		Te.Fatal(err)
	}
	if err := w.WriteChunk(PositionChunk, Double, 2, 3, want); err != nil {
		Te.Fatal(err)
	}
	if err := w.EndFrame(); err != nil {
		Te.Fatal(err)
	}
	f32 := make([]float32, len(want))
	for i, v := range want {
		f32[i] = float32(-v)
	}
	if err := w.WriteChunk(PositionChunk, Float, 2, 3, f32); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	r, err := Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	for i, sign := range []float64{1, -1} {
		fr, err := r.ReadFrame(i)
		if err != nil {
			Te.Fatal(err)
		}
		if fr.N != 2 {
			Te.Fatalf("frame %d: expected 2 particles, got %d", i, fr.N)
		}
		for j, v := range want {
			if got := fr.Positions.At(j/3, j%3); got != sign*v {
				Te.Errorf("frame %d element %d: got %v want %v", i, j, got, sign*v)
			}
		}
	}
	c, err := r.Chunk(1, PositionChunk)
	if err != nil || c == nil {
		Te.Fatalf("no position chunk in frame 1: %v", err)
	}
	if got := c.Float32s(); !cmp.Equal(got, f32) {
		Te.Errorf("Float32s: got %v want %v", got, f32)
	}
	if c, _ := r.Chunk(0, PositionChunk); c.Float32s() != nil {
		Te.Error("Float32s should give nil for a double chunk")
	}
}

func TestErrorDecorate(Te *testing.T) {
	err := Error{ReadError, "x.gsd", []string{"ReadFrame"}, true, nil}
	deco := err.Decorate("Configurations")
	if !cmp.Equal(deco, []string{"ReadFrame", "Configurations"}) {
		Te.Errorf("wrong trail %v", deco)
	}
	if len(err.Decorate("")) != 1 {
		Te.Error("an empty caller should not be added to the trail")
	}
}

func TestGSDZstd(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "test.gsd")
	frames := testFrames(2)
	writeTestFile(Te, plain, frames)
	data, err := os.ReadFile(plain)
	if err != nil {
		Te.Fatal(err)
	}
	compressed := plain + ".zst"
	out, err := os.Create(compressed)
	if err != nil {
		Te.Fatal(err)
	}
	enc, err := zstd.NewWriter(out)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := enc.Write(data); err != nil {
		Te.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		Te.Fatal(err)
	}
	out.Close()
	r, err := Open(compressed)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	if r.Len() != 2 {
		Te.Fatalf("expected 2 frames, got %d", r.Len())
	}
	for i, want := range frames {
		got, err := r.ReadFrame(i)
		if err != nil {
			Te.Fatal(err)
		}
		compareFrames(Te, want, got)
	}
}

//v1File builds, in memory, a GSD 1.0 file with one frame that has only particles/N.
func v1File(n uint32) []byte {
	var buf bytes.Buffer
	h := header{Magic: gsdMagic, GSDVersion: MakeVersion(1, 0), SchemaVersion: MakeVersion(1, 0)}
	copy(h.Schema[:], "hoomd")
	h.IndexLocation = headerSize + 4
	h.IndexAllocated = 1
	h.NamelistLocation = h.IndexLocation + indexEntrySize
	h.NamelistAllocated = 2
	binary.Write(&buf, binary.LittleEndian, &h)
	binary.Write(&buf, binary.LittleEndian, n)
	binary.Write(&buf, binary.LittleEndian, indexEntry{Frame: 0, N: 1, M: 1, Location: headerSize, ID: 0, Type: uint8(Uint32)})
	names := make([]byte, 2*nameSize)
	copy(names, NChunk)
	buf.Write(names)
	return buf.Bytes()
}

func TestGSDVersion1(Te *testing.T) {
	data := v1File(7)
	F, err := NewFile(bytes.NewReader(data), int64(len(data)), "v1.gsd")
	if err != nil {
		Te.Fatal(err)
	}
	r := &Reader{F}
	if r.Len() != 1 {
		Te.Fatalf("expected 1 frame, got %d", r.Len())
	}
	if names := r.Names(); len(names) != 1 || names[0] != NChunk {
		Te.Errorf("wrong names %v", names)
	}
	n, err := r.NParticles(0)
	if err != nil || n != 7 {
		Te.Errorf("NParticles: %d %v", n, err)
	}
	fr, err := r.ReadFrame(0)
	if err != nil {
		Te.Fatal(err)
	}
	if fr.Positions.NVecs() != 7 {
		Te.Errorf("expected 7 default positions, got %d", fr.Positions.NVecs())
	}
}

func TestGSDBadFiles(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "zeros.gsd")
	if err := os.WriteFile(name, make([]byte, 300), 0644); err != nil {
		Te.Fatal(err)
	}
	if _, err := Open(name); err == nil {
		Te.Error("expected an error for a file without the GSD magic number")
	}
	short := filepath.Join(dir, "short.gsd")
	if err := os.WriteFile(short, []byte("gsd"), 0644); err != nil {
		Te.Fatal(err)
	}
	if _, err := Open(short); err == nil {
		Te.Error("expected an error for a truncated file")
	}
	_, err := Open(filepath.Join(dir, "missing.gsd"))
	if !errors.Is(err, os.ErrNotExist) {
		Te.Errorf("expected a wrapped os.ErrNotExist, got %v", err)
	}
	var gerr Error
	if !errors.As(err, &gerr) || gerr.Format() != "gsd" || !gerr.Critical() {
		Te.Errorf("expected a critical gsd.Error, got %v", err)
	}
	//an index pointing past the end of the file
	data := v1File(3)
	data = data[:len(data)-nameSize]
	if _, err := NewFile(bytes.NewReader(data), int64(len(data)), "cut.gsd"); err == nil {
		Te.Error("expected an error for a truncated name list")
	}
}

func TestWriterErrors(Te *testing.T) {
	w, err := NewWriter(filepath.Join(Te.TempDir(), "w.gsd"), "timtools test")
	if err != nil {
		Te.Fatal(err)
	}
	if err := w.EndFrame(); err == nil {
		Te.Error("expected an error ending an empty frame")
	}
	if err := w.WriteChunk(PositionChunk, Float, 2, 3, []float32{1, 2, 3}); err == nil {
		Te.Error("expected an error for too little data")
	}
	if err := w.WriteChunk(PositionChunk, Float, 0, 3, []float32{}); err == nil {
		Te.Error("expected an error for an empty chunk")
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := w.WriteChunk(NChunk, Uint32, 1, 1, []uint32{1}); err == nil {
		Te.Error("expected an error writing to a closed file")
	}
	var _ io.Closer = w
}
