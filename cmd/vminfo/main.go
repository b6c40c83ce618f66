// vminfo prints a summary of a VM velocity model file: grid dimensions,
// interface count, and per-layer velocity ranges. With -ascii it also dumps
// the slowness grid as plain text for plotting tools.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/vmtomo/internal/vm"
)

func main() {
	headOnly := flag.Bool("head", false, "Read only the file header (fast for large models)")
	asciiOut := flag.String("ascii", "", "Also dump the grid as ASCII to this file")
	meters := flag.Bool("meters", false, "ASCII dump: coordinates in meters instead of kilometers")
	velocity := flag.Bool("velocity", true, "ASCII dump: velocity values instead of slowness")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: vminfo [flags] <model.vm>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	var (
		m   *vm.Model
		err error
	)
	if *headOnly {
		m, err = vm.ReadHeaderFile(path)
	} else {
		m, err = vm.ReadFile(path)
	}
	if err != nil {
		log.Fatalf("[VMInfo] %v", err)
	}

	fmt.Println(m)
	if !*headOnly {
		for i := 0; i <= m.Nr(); i++ {
			smin, smax, ok := m.LayerSummary(i)
			if !ok {
				fmt.Printf("Layer %d: pinched out everywhere\n", i)
				continue
			}
			// slowness extremes swap when inverted to velocity
			fmt.Printf("Layer %d: velocity %.3f to %.3f km/s\n", i, 1/smax, 1/smin)
		}
	}

	if *asciiOut != "" {
		if *headOnly {
			log.Fatalf("[VMInfo] -ascii needs the full grid; drop -head")
		}
		opts := vm.ASCIIOptions{Meters: *meters, Velocity: *velocity}
		if err := m.WriteASCIIFile(*asciiOut, opts); err != nil {
			log.Fatalf("[VMInfo] %v", err)
		}
		log.Printf("[VMInfo] wrote ASCII grid to %s", *asciiOut)
	}
}
