// rayinfo summarizes a ray archive produced by the raytracing solver:
// per-fan ray counts and misfit statistics, plus group totals.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/vmtomo/internal/rayfan"
)

func main() {
	perFan := flag.Bool("fans", true, "Print a line per rayfan")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: rayinfo [flags] <archive.ray>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	g, err := rayfan.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("[RayInfo] %v", err)
	}

	fmt.Printf("Ray archive version %d: %d rayfans, %d rays\n",
		g.Version, len(g.Rayfans), g.NRays())
	if *perFan {
		for _, f := range g.Rayfans {
			off := f.Offsets()
			fmt.Printf(" fan %5d: %6d rays, offsets %.2f to %.2f km, rms %.4f s, chi2 %.2f\n",
				f.StartPointID, f.NRays(), floats.Min(off), floats.Max(off),
				f.RMS(), f.MeanChi2())
		}
	}
	fmt.Printf("Group: mean rms %.4f s, mean chi2 %.2f\n", g.MeanRMS(), g.MeanChi2())
}
