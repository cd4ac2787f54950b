// Command icsearch searches indexed interaction-combinator graphs for one
// whose reduced normal form exposes a factor pair of N.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/icsearch/icsearch/internal/search"
	"github.com/icsearch/icsearch/pkg/enum"
	"github.com/icsearch/icsearch/pkg/ic"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("icsearch", pflag.ContinueOnError)

	maxNodes := flags.Int("max-nodes", 100, "node capacity per candidate graph")
	gasLimit := flags.Uint64("gas-limit", 100000, "reduction steps allowed per candidate graph")
	ceiling := flags.Uint64("ceiling", search.DefaultCeiling, "highest enumerator index to try before giving up")
	workers := flags.Int("workers", 1, "number of parallel search workers; 1 runs the sequential driver")
	progressEvery := flags.Uint64("progress-every", search.DefaultProgressEvery, "how often, in indices, to log progress")
	dotPath := flags.String("dot-out", "", "if set, write the terminal graph of a found solution as DOT to this path")
	verbose := flags.Bool("verbose", false, "enable debug-level logging")

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: icsearch [flags] N")
		return 2
	}

	nValue, err := strconv.ParseInt(flags.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid N: %v\n", err)
		return 2
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	sugar := logger.Sugar()

	d := &search.Driver{
		MaxNodes:      *maxNodes,
		GasLimit:      *gasLimit,
		Ceiling:       *ceiling,
		ProgressEvery: *progressEvery,
		Logger:        sugar,
		Progress: func(index uint64, found bool) {
			if !found {
				sugar.Debugw("progress", "index", index)
			}
		},
	}

	var result search.Result
	if *workers > 1 {
		result = d.ParallelRun(nValue, *workers)
	} else {
		result = d.Run(nValue)
	}

	if !result.Found {
		fmt.Fprintf(os.Stderr, "no factorization found for N=%d within %d indices\n", nValue, *ceiling)
		return 1
	}

	fmt.Printf("N=%d = %d * %d (index=%d, run=%s)\n", nValue, result.FactorA, result.FactorB, result.Index, result.RunID)

	if *dotPath != "" {
		if err := writeSolutionDOT(*dotPath, nValue, result, *maxNodes, *gasLimit); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write DOT output: %v\n", err)
			return 1
		}
	}

	return 0
}

// newLogger builds a zap logger tuned for CLI use: console-formatted,
// no sampling.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// writeSolutionDOT rebuilds the solution's graph deterministically and
// exports its terminal (reduced) form, since Result itself carries only
// the index and factors, not the graph.
func writeSolutionDOT(path string, nValue int64, result search.Result, maxNodes int, gasLimit uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	net := ic.NewNet(maxNodes, gasLimit)

	if err := rebuildAndReduce(net, result.Index, nValue); err != nil {
		return err
	}

	return ic.WriteDOT(f, net)
}

// rebuildAndReduce reconstructs the graph at index and drives it to
// quiescence, mirroring exactly what the driver did to find it.
func rebuildAndReduce(net *ic.Net, index uint64, nValue int64) error {
	if err := enum.BuildNet(index, net); err != nil {
		return err
	}
	net.SetInput(nValue)
	ic.Reduce(net)
	return nil
}
