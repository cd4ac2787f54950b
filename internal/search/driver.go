// Package search implements the thin driver that binds the enumerator to
// the reduction engine and evaluates the factorization predicate against
// each candidate graph.
package search

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/icsearch/icsearch/pkg/enum"
	"github.com/icsearch/icsearch/pkg/ic"
)

// ProgressFunc is called from the worker that owns the current index. The
// core calls it at coarse intervals with found=false. Run calls it exactly
// once with found=true when a solution is detected; under ParallelRun each
// worker that finds a solution in its own range calls it once, so it may
// fire with found=true more than once per run. Thread-safety across
// workers is the caller's concern.
type ProgressFunc func(currentIndex uint64, found bool)

// DefaultCeiling is the upper bound on indices a single Run will try
// before giving up, absent an explicit override.
const DefaultCeiling = 1_000_000

// DefaultProgressEvery is how often, in indices, the progress callback
// fires with found=false.
const DefaultProgressEvery = 1000

// Driver builds one net per Run and loops indices against it until a
// solution is found or the index ceiling is reached. It never queries the
// enumerator or the predicate concurrently with itself — a Driver is not
// safe for concurrent use; ParallelRun's workers share the Driver's
// settings but each works on its own net.
type Driver struct {
	MaxNodes      int
	GasLimit      uint64
	Ceiling       uint64
	ProgressEvery uint64
	Progress      ProgressFunc
	Logger        *zap.SugaredLogger // optional; nil is safe
}

// Result is what a completed search run found.
type Result struct {
	RunID     uuid.UUID
	Index     uint64
	Found     bool
	FactorA   int64
	FactorB   int64
	Exhausted bool
}

// Run searches indices [0, Ceiling) for one whose reduced graph exposes a
// factor pair of N, invoking Progress periodically and exactly once on a
// find. It returns the first index found, or Exhausted == true if the
// ceiling was reached with no solution.
func (d *Driver) Run(nValue int64) Result {
	d.applyDefaults()
	runID := uuid.New()
	logger := d.Logger

	if logger != nil {
		logger.Infow("search run started", "run_id", runID, "n", nValue,
			"max_nodes", d.MaxNodes, "gas_limit", d.GasLimit, "ceiling", d.Ceiling)
	}

	net := ic.NewNet(d.MaxNodes, d.GasLimit)

	for index := uint64(0); index < d.Ceiling; index++ {
		if err := enum.BuildNet(index, net); err != nil {
			// This index's graph doesn't fit in max_nodes; it can never
			// hold a solution, so move on rather than treating it as fatal.
			continue
		}
		net.SetInput(nValue)

		ic.Reduce(net)

		if net.Found() {
			a, b := net.Factors()
			if ic.HasValidFactor(net, nValue) {
				if logger != nil {
					logger.Infow("search run solved", "run_id", runID, "index", index, "a", a, "b", b)
				}
				if d.Progress != nil {
					d.Progress(index, true)
				}
				return Result{RunID: runID, Index: index, Found: true, FactorA: a, FactorB: b}
			}
		}

		if d.Progress != nil && index%d.ProgressEvery == 0 {
			d.Progress(index, false)
		}
	}

	if logger != nil {
		logger.Infow("search run exhausted", "run_id", runID, "ceiling", d.Ceiling)
	}
	return Result{RunID: runID, Index: d.Ceiling, Exhausted: true}
}

func (d *Driver) applyDefaults() {
	if d.Ceiling == 0 {
		d.Ceiling = DefaultCeiling
	}
	if d.ProgressEvery == 0 {
		d.ProgressEvery = DefaultProgressEvery
	}
	if d.MaxNodes <= 0 {
		d.MaxNodes = 100
	}
	if d.GasLimit == 0 {
		d.GasLimit = 100000
	}
}
