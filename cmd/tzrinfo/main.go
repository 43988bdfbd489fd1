package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ngrash.dev/tzrules/rules"
	"ngrash.dev/tzrules/tzbin"
)

var idFlag = flag.String("id", "", "Zone id to assign (default: the file name)")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzrinfo <tzif file>")
		os.Exit(1)
	}

	dir, file := filepath.Split(args[0])
	if dir == "" {
		dir = "."
	}

	id := *idFlag
	if id == "" {
		id = file
	}

	loader := rules.FileByteLoader{Dir: filepath.Clean(dir)}
	z, err := rules.FindZoneById(id, loader, tzbin.Decode)
	if err != nil {
		fmt.Println("opening zone:", err)
		os.Exit(1)
	}

	// Looking the same id up again is free: FindZoneById serves it out of the
	// process-wide cache rather than re-decoding the file.
	z, err = rules.FindZoneById(id, loader, tzbin.Decode)
	if err != nil {
		fmt.Println("opening zone:", err)
		os.Exit(1)
	}

	printZone(z)
}

func printZone(z *rules.Zone) {
	fmt.Println("Zone", z.ID())
	fmt.Println("  displayName   =", z.DisplayName())
	fmt.Println("  standardName  =", z.StandardName())
	fmt.Println("  daylightName  =", z.DaylightName())
	fmt.Println("  baseUtcOffset =", z.BaseUtcOffset())
	fmt.Println("  supportsDst   =", z.SupportsDaylightSavingTime())
	fmt.Println("  rules         =", len(z.Rules()))
	fmt.Println()

	now := rules.FromInstant(rules.FromTime(time.Now()), rules.Absolute)
	fmt.Println("  offset(now)   =", z.GetOffset(now))
	fmt.Println("  isDst(now)    =", z.IsDaylightSaving(now))
}
