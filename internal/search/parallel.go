package search

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/icsearch/icsearch/pkg/enum"
	"github.com/icsearch/icsearch/pkg/ic"
)

// ParallelRun fans the search out across workers disjoint index ranges.
// Each worker allocates its own net and never touches another worker's
// state; a monotonic shared "best index seen" value, checked between
// indices, lets a worker stop once nothing left in its range could beat
// the best solution found so far — without ever skipping an index that
// still could. The reported solution index is the true minimum among
// workers that found one, not just whichever worker finished first.
// Progress is called with found=true once by each worker that finds a
// solution, not once per run.
func (d *Driver) ParallelRun(nValue int64, workers int) Result {
	d.applyDefaults()
	if workers < 1 {
		workers = 1
	}

	runID := uuid.New()
	if d.Logger != nil {
		d.Logger.Infow("parallel search run started", "run_id", runID, "n", nValue, "workers", workers)
	}

	var bestIndex atomic.Uint64
	bestIndex.Store(d.Ceiling) // sentinel: no solution found yet
	results := make([]Result, workers)
	chunk := (d.Ceiling + uint64(workers) - 1) / uint64(workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := uint64(w) * chunk
		end := start + chunk
		if end > d.Ceiling {
			end = d.Ceiling
		}
		if start >= end {
			results[w] = Result{RunID: runID, Exhausted: true}
			continue
		}

		wg.Add(1)
		go func(w int, start, end uint64) {
			defer wg.Done()
			results[w] = d.runRange(runID, nValue, start, end, &bestIndex)
		}(w, start, end)
	}
	wg.Wait()

	best := Result{RunID: runID, Index: d.Ceiling, Exhausted: true}
	for _, r := range results {
		if r.Found && (!best.Found || r.Index < best.Index) {
			best = r
		}
	}
	if best.Found {
		best.Exhausted = false
	}

	if d.Logger != nil {
		d.Logger.Infow("parallel search run finished", "run_id", runID, "found", best.Found, "index", best.Index)
	}
	return best
}

// runRange is the per-worker body: its own net, its own side channel.
// It stops only once its current index can no longer improve on the
// best solution found anywhere — never because another worker merely
// found *something*, since that something might not be the minimum.
func (d *Driver) runRange(runID uuid.UUID, nValue int64, start, end uint64, bestIndex *atomic.Uint64) Result {
	net := ic.NewNet(d.MaxNodes, d.GasLimit)

	for index := start; index < end; index++ {
		if index >= bestIndex.Load() {
			// Every remaining index in this range is >= index, so none
			// of them could beat the best solution already on record.
			break
		}

		if err := enum.BuildNet(index, net); err != nil {
			continue
		}
		net.SetInput(nValue)

		ic.Reduce(net)

		if net.Found() {
			a, b := net.Factors()
			if ic.HasValidFactor(net, nValue) {
				for {
					cur := bestIndex.Load()
					if index >= cur || bestIndex.CompareAndSwap(cur, index) {
						break
					}
				}
				if d.Progress != nil {
					d.Progress(index, true)
				}
				// This range's indices only increase, so this is already
				// this worker's own best; nothing further to gain here.
				return Result{RunID: runID, Index: index, Found: true, FactorA: a, FactorB: b}
			}
		}

		if d.Progress != nil && index%d.ProgressEvery == 0 {
			d.Progress(index, false)
		}
	}

	return Result{RunID: runID, Exhausted: true}
}
