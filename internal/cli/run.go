// Package cli implements the memcopy-bench command.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/memcopy-bench/internal/bench"
	"github.com/calvinalkan/memcopy-bench/pkg/rawmem"
)

const benchLong = `Allocates two 1 MiB buffers outside the Go heap and copies random text
from one to the other twice: once as a single sequential copy, and once
as 1-32 byte chunks visited in shuffled order. Each copy is timed once
and the destination is verified against the source text.

Prints one line:

  sequentialAccessCopyTime = <ms>, randomAccessCopyTime = <ms>

Takes no arguments. Exits 1 if an allocation or a verification fails.`

// Run is the main entry point. Returns exit code.
//
// args includes the program name, like os.Args.
func Run(out io.Writer, errOut io.Writer, args []string) int {
	return run(out, errOut, args, rawmem.NewMmap(), bench.DefaultConfig())
}

func run(out io.Writer, errOut io.Writer, args []string, alloc rawmem.Allocator, cfg bench.Config) int {
	logger := newLogger(errOut)
	cmd := benchCommand(alloc, cfg, logger)

	if len(args) > 0 {
		args = args[1:]
	}

	return cmd.Run(NewIO(out, errOut), args)
}

func benchCommand(alloc rawmem.Allocator, cfg bench.Config, logger *slog.Logger) *Command {
	return &Command{
		Flags: flag.NewFlagSet("memcopy-bench", flag.ContinueOnError),
		Usage: "memcopy-bench",
		Short: "Compare sequential and shuffled-chunk copies of a raw buffer",
		Long:  benchLong,
		Exec: func(o *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %s", errUnexpectedArgs, strings.Join(args, " "))
			}

			runner := bench.NewRunner(alloc, bench.Options{Logger: logger})

			result, err := runner.Run(cfg)
			if err != nil {
				return err
			}

			o.Println(bench.FormatReport(result))

			return nil
		},
	}
}
