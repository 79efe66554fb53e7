/*
 * main.go, part of timtools.
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

//Command timtools prints the box and the largest safe cutoff radius for
//the selected frames of a GSD or STF trajectory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/stat"

	"github.com/rmera/timtools"
	"github.com/rmera/timtools/box"
	"github.com/rmera/timtools/timplot"
	"github.com/rmera/timtools/traj"
)

func main() {
	cfgfile := flag.String("config", "", "TOML file with options. Flags given explicitly override it")
	is2D := flag.Bool("2d", true, "treat the boxes as 2D")
	start := flag.Int("start", 0, "first frame to read. Negative values count from the end")
	end := flag.Int("end", 0, "read up to, but not including, this frame. 0 means the last frame")
	stride := flag.Int("stride", 1, "read every stride-th frame")
	frame := flag.Int("frame", 0, "frame for the particle count")
	safety := flag.Float64("safety", box.DefaultSafetyFactor, "safety factor for the cutoff, in (0,1]")
	plotfile := flag.String("plot", "", "write a plot of the cutoff vs the frame to this file (png, svg, pdf...)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] trajectory\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	filename := flag.Arg(0)

	cfg := timtools.DefaultConfig()
	if *cfgfile != "" {
		var err error
		cfg, err = timtools.LoadConfig(*cfgfile)
		if err != nil {
			log.Fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "2d":
			cfg.Is2D = *is2D
		case "start":
			cfg.Start = *start
		case "end":
			cfg.End = *end
		case "stride":
			cfg.Stride = *stride
		case "safety":
			cfg.SafetyFactor = *safety
		}
	})

	nframes, err := timtools.FrameCount(filename)
	if err != nil {
		log.Fatal(err)
	}
	natoms, err := timtools.ParticleCount(filename, *frame)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %d frames, %d particles in frame %d\n", filename, nframes, natoms, *frame)

	it, err := timtools.Configurations(filename, cfg.Range(), cfg.Is2D)
	if err != nil {
		log.Fatal(err)
	}
	defer it.Close()
	series := &timplot.Series{}
	fmt.Println("# frame N Lx Ly Lz xy xz yz rcut safe_rcut")
	for {
		c, err := it.Next()
		if traj.IsLastFrame(err) {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		if err := c.Box.Check(); err != nil {
			log.Printf("frame %d: %s", c.Frame, err)
		}
		b := c.Box.GSD()
		rcut := c.Box.LargestRcut()
		fmt.Printf("%d %d %g %g %g %g %g %g %g %g\n", c.Frame, c.N, b[0], b[1], b[2], b[3], b[4], b[5], rcut, box.SafeRcut(c.Box, cfg.SafetyFactor))
		series.Add(c)
	}
	if series.Len() == 0 {
		log.Fatalf("no frames selected in %s", filename)
	}
	lo := series.Min()
	fmt.Printf("# min rcut: %g (safe: %g) mean rcut: %g std: %g\n", lo, cfg.SafetyFactor*lo, series.Mean(), stat.StdDev(series.Rcut, nil))
	if *plotfile != "" {
		if err := timplot.RcutPlot(series, "Largest cutoff radius: "+filename, *plotfile); err != nil {
			log.Fatal(err)
		}
	}
}
