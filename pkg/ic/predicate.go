package ic

// evaluatePredicate inspects the terminal graph for the factorization
// stand-in predicate and records a solution on the side channel if one
// is found. This is deliberately the ad-hoc rule the source and its test
// suite depend on: it has no formal connection to IC semantics. See
// DESIGN.md for why it is kept as-is rather than "fixed".
func (n *Net) evaluatePredicate() {
	var soleDelta, soleGamma int = -1, -1
	d, g := 0, 0

	for i := 0; i < n.used; i++ {
		if !n.nodes[i].active {
			continue
		}
		switch n.nodes[i].typ {
		case Delta:
			d++
			soleDelta = i
		case Gamma:
			g++
			soleGamma = i
		}
	}

	if d != 1 || g != 1 {
		return
	}

	a := int64(soleDelta) + 1
	b := int64(soleGamma) + 1
	if a*b == n.inputN {
		n.factorA = a
		n.factorB = b
		n.found = true
	}
}

// HasValidFactor reports whether net recorded a solution whose factors
// actually multiply out to N. It is a pure query: it never mutates net
// and returns true only if net.Found() and factorA*factorB == N, even if
// the caller manually poked the side channel (E4).
func HasValidFactor(n *Net, nValue int64) bool {
	return n.found && n.factorA*n.factorB == nValue
}

// SetSideChannel is a test/diagnostic hook that lets a caller manually
// populate the factorization side channel, bypassing reduction — used
// by scenario E4 and by callers that already know the answer.
func (n *Net) SetSideChannel(a, b int64, found bool) {
	n.factorA = a
	n.factorB = b
	n.found = found
}
