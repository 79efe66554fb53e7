/*
 * timplot.go, part of timtools.
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

//Package timplot draws some per-frame quantities of the periodic box of a trajectory.
package timplot

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/timtools"
)

//Series contains the largest cutoff radius and the box lengths for a set of frames.
//All the slices have the same length.
type Series struct {
	Frames []int
	Rcut   []float64
	Lx     []float64
	Ly     []float64
	Lz     []float64
}

//BoxSeries collects the box data from the given configurations.
func BoxSeries(confs []*timtools.Configuration) *Series {
	s := &Series{
		Frames: make([]int, 0, len(confs)),
		Rcut:   make([]float64, 0, len(confs)),
		Lx:     make([]float64, 0, len(confs)),
		Ly:     make([]float64, 0, len(confs)),
		Lz:     make([]float64, 0, len(confs)),
	}
	for _, c := range confs {
		s.Add(c)
	}
	return s
}

//Add appends the data of one configuration to the series.
func (S *Series) Add(c *timtools.Configuration) {
	S.Frames = append(S.Frames, c.Frame)
	S.Rcut = append(S.Rcut, c.Box.LargestRcut())
	S.Lx = append(S.Lx, c.Box.Lx)
	S.Ly = append(S.Ly, c.Box.Ly)
	S.Lz = append(S.Lz, c.Box.Lz)
}

func (S *Series) Len() int {
	return len(S.Frames)
}

//Mean returns the average of the largest cutoff over the series,
//or NaN for an empty series.
func (S *Series) Mean() float64 {
	return stat.Mean(S.Rcut, nil)
}

//Min returns the smallest value of the largest cutoff over the series, which is the one
//that can be safely used for the whole trajectory. It panics for an empty series.
func (S *Series) Min() float64 {
	return floats.Min(S.Rcut)
}

func xys(frames []int, values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(frames))
	for i, f := range frames {
		pts[i].X = float64(f)
		pts[i].Y = values[i]
	}
	return pts
}

var formats = []string{".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff"}

//RcutPlot plots the largest cutoff radius against the frame index. The format is taken
//from the extension of filename, which must be one gonum/plot supports.
//If the series has box lengths, they are plotted too.
func RcutPlot(S *Series, title, filename string) error {
	if S == nil || S.Len() == 0 {
		return fmt.Errorf("timplot: RcutPlot: no data to plot")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	supported := false
	for _, v := range formats {
		if ext == v {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("timplot: RcutPlot: unsupported plot format %q", ext)
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Length"
	p.Add(plotter.NewGrid())
	lines := []struct {
		name  string
		data  []float64
		color color.RGBA
	}{
		{"rcut", S.Rcut, color.RGBA{R: 255, A: 255}},
		{"Lx", S.Lx, color.RGBA{B: 255, A: 255}},
		{"Ly", S.Ly, color.RGBA{G: 160, A: 255}},
		{"Lz", S.Lz, color.RGBA{R: 120, G: 120, B: 120, A: 255}},
	}
	for _, v := range lines {
		//2D boxes have no Lz
		if v.name == "Lz" && floats.Max(v.data) == 0 {
			continue
		}
		l, err := plotter.NewLine(xys(S.Frames, v.data))
		if err != nil {
			return fmt.Errorf("timplot: RcutPlot: %w", err)
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = v.color
		p.Add(l)
		p.Legend.Add(v.name, l)
	}
	p.Legend.Top = true
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("timplot: RcutPlot: %w", err)
	}
	return nil
}
