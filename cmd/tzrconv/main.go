package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"

	"ngrash.dev/tzrules/rules"
	"ngrash.dev/tzrules/text"
	"ngrash.dev/tzrules/tzbin"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		return fmt.Errorf("Usage: tzrconv <tzif file>\n")
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	z, err := tzbin.Decode(b, args[0])
	if err != nil {
		return err
	}

	serialized := text.Encode(z)
	roundTripped, err := text.Decode(serialized)
	if err != nil {
		return err
	}

	if diff := cmp.Diff(z, roundTripped, cmp.AllowUnexported(rules.Zone{})); diff != "" {
		fmt.Println("round-trip differs: -decoded +reencoded")
		fmt.Println(diff)
	} else {
		fmt.Println("round-trip identical")
	}

	fmt.Println(serialized)
	return nil
}
