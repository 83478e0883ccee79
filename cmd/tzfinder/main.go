// Command tzfinder is a thin CLI wrapper over the core engine: it is not
// part of the core's stability contract, only its I/O contract is.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tzfinder "github.com/tzpoly/tzfinder"
)

func main() {
	dataDir := flag.String("data", "", "timezone data directory")
	lng := flag.Float64("lng", 0, "longitude")
	lat := flag.Float64("lat", 0, "latitude")
	fn := flag.String("f", "timezone_at", "function: timezone_at, timezone_at_land, certain_timezone_at, light.timezone_at, light.timezone_at_land")
	verbose := flag.Bool("v", false, "verbose output")
	flag.Parse()

	if *dataDir == "" {
		log.Fatal("Please provide -data (the timezone data directory)")
	}

	start := time.Now()

	var result string
	var err error

	switch *fn {
	case "light.timezone_at":
		var f *tzfinder.FinderLight
		f, err = tzfinder.OpenLight(*dataDir)
		if err != nil {
			log.Fatalf("failed to open data: %v", err)
		}
		defer f.Close()
		result, err = f.TimezoneAt(*lng, *lat)
	case "light.timezone_at_land":
		var f *tzfinder.FinderLight
		f, err = tzfinder.OpenLight(*dataDir)
		if err != nil {
			log.Fatalf("failed to open data: %v", err)
		}
		defer f.Close()
		result, err = f.TimezoneAt(*lng, *lat)
		if err == nil && tzfinder.IsOceanTimezone(result) {
			result = ""
		}
	case "timezone_at", "timezone_at_land", "certain_timezone_at":
		var f *tzfinder.Finder
		f, err = tzfinder.Open(*dataDir, tzfinder.BackingMapped)
		if err != nil {
			log.Fatalf("failed to open data: %v", err)
		}
		defer f.Close()
		if *verbose {
			fmt.Fprintf(os.Stderr, "handle %s\n", f.HandleID)
		}
		switch *fn {
		case "timezone_at":
			result, err = f.TimezoneAt(*lng, *lat)
		case "timezone_at_land":
			result, err = f.TimezoneAtLand(*lng, *lat)
		case "certain_timezone_at":
			result, err = f.CertainTimezoneAt(*lng, *lat)
		}
	default:
		log.Fatalf("unknown function %q", *fn)
	}

	if err != nil {
		log.Fatalf("query failed: %v", err)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "resolved in %v\n", time.Since(start))
	}

	fmt.Println(result)
}
