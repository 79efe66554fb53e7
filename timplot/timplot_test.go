/*
 * timplot_test.go, part of timtools.
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

package timplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/timtools"
	"github.com/rmera/timtools/box"
)

func testSeries() *Series {
	confs := make([]*timtools.Configuration, 0, 4)
	for i := 0; i < 4; i++ {
		confs = append(confs, &timtools.Configuration{Frame: 2 * i, Box: box.New(10+float64(i), 20, 30, 0, 0, 0)})
	}
	return BoxSeries(confs)
}

func TestBoxSeries(Te *testing.T) {
	s := testSeries()
	if s.Len() != 4 {
		Te.Fatalf("expected 4 points, got %d", s.Len())
	}
	if s.Min() != 5 {
		Te.Errorf("expected a minimum rcut of 5, got %v", s.Min())
	}
	if math.Abs(s.Mean()-5.75) > 1e-12 {
		Te.Errorf("expected a mean rcut of 5.75, got %v", s.Mean())
	}
	if s.Frames[3] != 6 || s.Lz[0] != 30 {
		Te.Errorf("wrong series %+v", s)
	}
}

func TestRcutPlot(Te *testing.T) {
	dir := Te.TempDir()
	for _, name := range []string{"rcut.png", "rcut.svg"} {
		out := filepath.Join(dir, name)
		if err := RcutPlot(testSeries(), "Largest cutoff", out); err != nil {
			Te.Fatal(err)
		}
		if st, err := os.Stat(out); err != nil || st.Size() == 0 {
			Te.Errorf("plot %s not written: %v", name, err)
		}
	}
	if err := RcutPlot(testSeries(), "Largest cutoff", filepath.Join(dir, "rcut.txt")); err == nil {
		Te.Error("expected an error for an unsupported format")
	}
	if err := RcutPlot(&Series{}, "Empty", filepath.Join(dir, "empty.png")); err == nil {
		Te.Error("expected an error for an empty series")
	}
}
