package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/icsearch/icsearch/internal/search"
)

// ParallelSuite exercises the disjoint-range fan-out.
type ParallelSuite struct {
	suite.Suite
}

func (s *ParallelSuite) TestParallelRunExhaustsWithinCeiling() {
	d := &search.Driver{Ceiling: 20, MaxNodes: 13, GasLimit: 1000}
	result := d.ParallelRun(unfactorablePrime, 4)

	require.True(s.T(), result.Exhausted)
	require.False(s.T(), result.Found)
	require.Equal(s.T(), uint64(20), result.Index)
}

func (s *ParallelSuite) TestParallelRunClampsWorkersBelowOne() {
	d := &search.Driver{Ceiling: 6, MaxNodes: 13, GasLimit: 1000}
	result := d.ParallelRun(unfactorablePrime, 0)

	require.True(s.T(), result.Exhausted)
}

func (s *ParallelSuite) TestParallelRunToleratesMoreWorkersThanIndices() {
	d := &search.Driver{Ceiling: 3, MaxNodes: 13, GasLimit: 1000}
	result := d.ParallelRun(unfactorablePrime, 16)

	require.True(s.T(), result.Exhausted)
	require.False(s.T(), result.Found)
}

func (s *ParallelSuite) TestParallelRunFindsSolution() {
	d := &search.Driver{Ceiling: findSolutionCeiling, MaxNodes: 13, GasLimit: 1000}
	result := d.ParallelRun(6, 4)

	require.True(s.T(), result.Found)
	require.False(s.T(), result.Exhausted)
	require.Equal(s.T(), int64(6), result.FactorA*result.FactorB)
}

// TestParallelRunMatchesSequentialMinimumIndex guards the minimum-index
// contract directly: a multi-worker fan-out must land on exactly the
// same solution index as the single-threaded driver for the same N and
// ceiling, not merely whichever worker happens to finish first.
func (s *ParallelSuite) TestParallelRunMatchesSequentialMinimumIndex() {
	seq := &search.Driver{Ceiling: findSolutionCeiling, MaxNodes: 13, GasLimit: 1000}
	par := &search.Driver{Ceiling: findSolutionCeiling, MaxNodes: 13, GasLimit: 1000}

	seqResult := seq.Run(6)
	parResult := par.ParallelRun(6, 8)

	require.True(s.T(), seqResult.Found)
	require.True(s.T(), parResult.Found)
	require.Equal(s.T(), seqResult.Index, parResult.Index, "parallel fan-out must report the same minimum index as the sequential driver")
}

func (s *ParallelSuite) TestParallelRunSingleWorkerAgreesWithSequentialExhaustion() {
	seq := &search.Driver{Ceiling: 10, MaxNodes: 13, GasLimit: 1000}
	par := &search.Driver{Ceiling: 10, MaxNodes: 13, GasLimit: 1000}

	seqResult := seq.Run(unfactorablePrime)
	parResult := par.ParallelRun(unfactorablePrime, 1)

	require.Equal(s.T(), seqResult.Found, parResult.Found)
	require.Equal(s.T(), seqResult.Exhausted, parResult.Exhausted)
}

func TestParallelSuite(t *testing.T) {
	suite.Run(t, new(ParallelSuite))
}
