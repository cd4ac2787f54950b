// Package enum implements the indexed enumerator: a total, deterministic
// map from a non-negative integer index to a syntactically valid
// interaction-combinator graph, used as the candidate generator for the
// search driver.
package enum

import "github.com/icsearch/icsearch/pkg/ic"

// sizeCap bounds the node count derived from an index: n = 3 + (index mod
// sizeCap), so every built net has between 3 and sizeCap+2 nodes.
const sizeCap = 10

// bitsPerNode is the width, in bits, of the pattern slice used to choose
// each node's type beyond the mandatory delta/gamma pair.
const bitsPerNode = 2

// patternPeriod bounds how far into the pattern bits are drawn from
// before wrapping — node k reads bits from position (k mod
// patternPeriod) * bitsPerNode.
const patternPeriod = 16

// BuildNet resets net and deterministically constructs the graph for
// index into it. It fails only when net's capacity is too small to hold
// the index's node count — build_net's total domain is every index whose
// n <= capacity.
func BuildNet(index uint64, net *ic.Net) error {
	net.Reset()

	n := 3 + int(index%sizeCap)
	pattern := index / sizeCap

	d, err := net.NewNode(ic.Delta)
	if err != nil {
		return err
	}
	g, err := net.NewNode(ic.Gamma)
	if err != nil {
		return err
	}
	net.Connect(d, ic.Principal, g, ic.Principal)

	for k := 2; k < n; k++ {
		if _, err := net.NewNode(nodeType(pattern, k)); err != nil {
			return err
		}
	}

	for i := 0; i < n; i++ {
		next := (i + 1) % n
		prev := (i + n - 1) % n

		net.Connect(i, ic.Aux1, next, ic.Aux2)
		net.Connect(i, ic.Aux2, prev, ic.Aux1)

		if i != 0 && i != 1 {
			net.Connect(i, ic.Principal, (i+2)%n, ic.Principal)
		}
	}

	return nil
}

// nodeType derives the agent type for ring position k from two bits of
// pattern, taken at position (k mod patternPeriod) * bitsPerNode:
// 0 -> delta, 1 -> gamma, 2 or 3 -> epsilon.
func nodeType(pattern uint64, k int) ic.AgentType {
	shift := uint((k % patternPeriod) * bitsPerNode)
	bits := (pattern >> shift) & 0b11
	switch bits {
	case 0:
		return ic.Delta
	case 1:
		return ic.Gamma
	default:
		return ic.Epsilon
	}
}

// NodeCount returns the node count BuildNet would use for index, without
// constructing anything — useful for callers sizing a Net up front.
func NodeCount(index uint64) int {
	return 3 + int(index%sizeCap)
}

// State tracks the next index a sequential enumeration will build.
type State struct {
	Current uint64
}

// Next builds the net at state.Current, then advances state regardless of
// outcome. It reports whether the build succeeded.
func Next(state *State, net *ic.Net) bool {
	err := BuildNet(state.Current, net)
	state.Current++
	return err == nil
}
