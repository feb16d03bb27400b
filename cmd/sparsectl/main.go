// SPDX-License-Identifier: MIT

// sparsectl inspects and converts sparse array files.
//
// Usage:
//
//	sparsectl info <file>                       Print shape, nnz, index width and layout stats
//	sparsectl convert [flags] <in> <out>        Re-encode a store (format chosen by extension)
//	sparsectl version                           Print version info
//
// Convert flags:
//
//	--sum-duplicates       canonicalize before writing
//	--eliminate-zeros      drop explicit zeros before writing
//	--transpose            reverse the axes before writing
//	--compression=<name>   none, lz4 or zstd for .spz output
//
// Supported files: .spz (binary container), .mtx (Matrix Market), .json.
// Settings are read from sparsectl.yaml or $SPARSECTL_CONFIG and SPARSECTL_*
// environment variables; flags win over both.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/lvsparse/internal/config"
	"github.com/katalvlaran/lvsparse/internal/logging"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/sparseio"
)

const version = "0.1.0"

// errUsage marks command-line mistakes; run maps it to exit code 2.
var errUsage = errors.New("usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "sparsectl: %v\n", err)
		return 1
	}
	lc := cfg.Logging()
	lc.Output = stderr
	log := logging.Init(lc)

	app := newApp(cfg, log)
	app.Writer = stdout
	app.ErrWriter = stderr

	err = app.Run(append([]string{app.Name}, args...))
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "sparsectl: %v\nrun 'sparsectl help' for usage\n", err)
		return 2
	default:
		command := ""
		if len(args) > 0 {
			command = args[0]
		}
		log.Error().Err(err).Str("command", command).Msg("failed")
		return 1
	}
}

// newApp wires the subcommands. Flag defaults come from cfg, so an explicit
// flag overrides the file and environment layers.
func newApp(cfg *config.Config, log zerolog.Logger) *cli.App {
	onUsageError := func(_ *cli.Context, err error, _ bool) error {
		return usageErrorf("%v", err)
	}

	return &cli.App{
		Name:    "sparsectl",
		Usage:   "Inspect and convert sparse array files (.spz, .mtx, .json)",
		Version: version,
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				return usageErrorf("unknown command: %s", c.Args().First())
			}
			return usageErrorf("missing command")
		},
		OnUsageError:   onUsageError,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:         "info",
				Aliases:      []string{"i"},
				Usage:        "Print shape, nnz, index width and layout stats",
				ArgsUsage:    "<file>",
				OnUsageError: onUsageError,
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageErrorf("info: expected exactly one file, got %d", c.NArg())
					}
					return cmdInfo(c.Args().First(), cfg, c.App.Writer)
				},
			},
			{
				Name:         "convert",
				Aliases:      []string{"c"},
				Usage:        "Re-encode a store; the formats follow the file extensions",
				ArgsUsage:    "<in> <out>",
				OnUsageError: onUsageError,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "sum-duplicates",
						Usage: "canonicalize before writing",
						Value: cfg.Sparse.SumDuplicates,
					},
					&cli.BoolFlag{
						Name:  "eliminate-zeros",
						Usage: "drop explicit zeros before writing",
						Value: cfg.Sparse.EliminateZeros,
					},
					&cli.BoolFlag{
						Name:  "transpose",
						Usage: "reverse the axes before writing",
					},
					&cli.StringFlag{
						Name:  "compression",
						Usage: "block codec for .spz output: none, lz4 or zstd",
						Value: cfg.Output.Compression,
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return usageErrorf("convert: expected <in> <out>, got %d paths", c.NArg())
					}
					return cmdConvert(convertFlags{
						sumDuplicates:  c.Bool("sum-duplicates"),
						eliminateZeros: c.Bool("eliminate-zeros"),
						transpose:      c.Bool("transpose"),
						compression:    c.String("compression"),
						in:             c.Args().Get(0),
						out:            c.Args().Get(1),
					}, cfg, log)
				},
			},
			{
				Name:  "version",
				Usage: "Print version info",
				Action: func(c *cli.Context) error {
					fmt.Fprintf(c.App.Writer, "sparsectl %s\n", version)
					return nil
				},
			},
		},
	}
}

func cmdInfo(path string, cfg *config.Config, w io.Writer) error {
	rec := &sparse.DiagnosticRecorder{}
	opts := append(cfg.StoreOptions(), sparse.WithDiagnostics(rec))
	c, err := sparseio.ReadFile[float64](path, opts...)
	if err != nil {
		return err
	}
	f, _ := sparseio.FormatFromPath(path) // ReadFile succeeded

	fmt.Fprintf(w, "file:       %s (%s)\n", path, f)
	fmt.Fprintf(w, "shape:      %v\n", c.Shape())
	fmt.Fprintf(w, "stored:     %d\n", c.NNZ())
	fmt.Fprintf(w, "nonzero:    %d\n", c.CountNonzero())
	fmt.Fprintf(w, "indices:    %s\n", c.IndexWidth())
	fmt.Fprintf(w, "canonical:  %t\n", c.HasCanonicalFormat())

	if c.Ndim() != 2 {
		return nil
	}
	perRow, err := c.NNZAxis(1)
	if err != nil {
		return err
	}
	maxRow := 0
	for _, n := range perRow {
		maxRow = max(maxRow, n)
	}
	fmt.Fprintf(w, "row max:    %d\n", maxRow)

	dia, err := c.Copy().ToDIA(false)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "diagonals:  %d\n", len(dia.Offsets()))
	for _, d := range rec.Diagnostics() {
		fmt.Fprintf(w, "advisory:   %s: %s\n", d.Kind, d.Message)
	}
	return nil
}

type convertFlags struct {
	sumDuplicates  bool
	eliminateZeros bool
	transpose      bool
	compression    string
	in, out        string
}

func cmdConvert(fl convertFlags, cfg *config.Config, log zerolog.Logger) error {
	comp, err := sparseio.ParseCompression(fl.compression)
	if err != nil {
		return err
	}

	c, err := sparseio.ReadFile[float64](fl.in, cfg.StoreOptions()...)
	if err != nil {
		return err
	}
	before := c.NNZ()
	if fl.sumDuplicates {
		c.SumDuplicates()
	}
	if fl.eliminateZeros {
		c.EliminateZeros()
	}
	if fl.transpose {
		if c, err = c.Transpose(nil, false); err != nil {
			return err
		}
	}

	opts := append(cfg.WriteOptions(), sparseio.WithCompression(comp))
	if err := sparseio.WriteFile(fl.out, c, opts...); err != nil {
		return err
	}
	log.Info().
		Str("in", fl.in).
		Str("out", fl.out).
		Stringer("shape", c.Shape()).
		Int("nnz_in", before).
		Int("nnz_out", c.NNZ()).
		Msg("converted")
	return nil
}
