// Package main is the rigcalib command line tool.
package main

import (
	"os"

	"go.viam.com/rigcalib/cli"
)

func main() {
	os.Exit(cli.Run(os.Args, os.Stdout, os.Stderr))
}
