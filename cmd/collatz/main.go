// Command collatz encodes files as Collatz trajectories and decodes them back.
//
//	collatz encode <in> <out>
//	collatz decode <in> <out>
//	collatz verify <in>
//	collatz selftest <0|1|2>
//
// Anything else prints usage and exits 0. I/O failures exit 1.
package main

import (
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
