// Package main provides memcopy-bench, which times a sequential copy of a raw
// buffer against the same copy done in shuffled small chunks.
package main

import (
	"os"

	"github.com/calvinalkan/memcopy-bench/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args))
}
