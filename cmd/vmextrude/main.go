// vmextrude sweeps a 2D velocity profile along a line to build a 3D model.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/vmtomo/internal/vm"
)

func main() {
	startX := flag.Float64("start-x", 0, "Line start x coordinate (km)")
	startY := flag.Float64("start-y", 0, "Line start y coordinate (km)")
	endX := flag.Float64("end-x", 0, "Line end x coordinate (km)")
	endY := flag.Float64("end-y", 0, "Line end y coordinate (km)")
	dx := flag.Float64("dx", 0, "Output x spacing (km, default: source model spacing)")
	dy := flag.Float64("dy", 0, "Output y spacing (km, default: same as dx)")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: vmextrude [flags] <profile.vm> <out.vm>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	m, err := vm.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("[Extrude] %v", err)
	}
	out, err := m.Extrude(
		vm.Point3{X: *startX, Y: *startY},
		vm.Point3{X: *endX, Y: *endY},
		*dx, *dy,
	)
	if err != nil {
		log.Fatalf("[Extrude] %v", err)
	}
	if err := out.WriteFile(flag.Arg(1)); err != nil {
		log.Fatalf("[Extrude] %v", err)
	}
	log.Printf("[Extrude] wrote %dx%dx%d model to %s", out.Nx(), out.Ny(), out.Nz(), flag.Arg(1))
}
