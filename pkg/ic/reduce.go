package ic

// Status is the outcome of a call to Reduce.
type Status int

const (
	// Finished means the redex queue emptied and a re-scan found no
	// further active pairs: the net is in normal form (or stuck).
	Finished Status = iota
	// GasExhausted means the gas budget ran out before quiescence.
	GasExhausted
)

func (s Status) String() string {
	if s == Finished {
		return "finished"
	}
	return "gas-exhausted"
}

// Reduce drives net to quiescence or until its gas budget runs out,
// applying the four rewrite schemas to every active pair it finds.
// It never panics: malformed queue entries are silently discarded and
// an out-of-capacity duplication only aborts that one rewrite.
func Reduce(n *Net) Status {
	scanAndEnqueue(n)

	status := Finished
	// rewroteSinceScan tracks whether the net changed since the last
	// empty-queue re-scan. If it did not, every pair that scan found has
	// already been tried (only aborted duplications remain), so another
	// scan would find nothing new.
	rewroteSinceScan := true
	for {
		if n.gasUsed >= n.gasLimit {
			status = GasExhausted
			break
		}

		r, ok := n.queue.pop()
		if !ok {
			if !rewroteSinceScan {
				status = Finished
				break
			}
			rewroteSinceScan = false
			scanAndEnqueue(n)
			r, ok = n.queue.pop()
			if !ok {
				status = Finished
				break
			}
		}

		if !isValidRedex(n, r) {
			continue
		}

		if applyRewrite(n, r.a, r.b) {
			n.gasUsed++
			rewroteSinceScan = true
			scanAndEnqueue(n)
		}
	}

	n.evaluatePredicate()
	return status
}

// scanAndEnqueue performs a full ascending scan of active nodes, enqueuing
// every active pair it finds that the queue might be missing. Node i is
// paired with j only when j > i, so each pair is enqueued once per scan.
func scanAndEnqueue(n *Net) {
	for i := 0; i < n.used; i++ {
		if !n.nodes[i].active {
			continue
		}
		j, jp := n.PeerOf(i, Principal)
		if jp != Principal || j <= i {
			continue
		}
		if !n.validIndex(j) || !n.nodes[j].active {
			continue
		}
		n.queue.push(redex{i, j})
	}
}

// isValidRedex revalidates invariant 4 for a dequeued candidate: both
// nodes active, both in range, and principal ports mutually linked.
func isValidRedex(n *Net, r redex) bool {
	if !n.validIndex(r.a) || !n.validIndex(r.b) {
		return false
	}
	if !n.nodes[r.a].active || !n.nodes[r.b].active {
		return false
	}
	pa, pap := n.PeerOf(r.a, Principal)
	if pa != r.b || pap != Principal {
		return false
	}
	pb, pbp := n.PeerOf(r.b, Principal)
	return pb == r.a && pbp == Principal
}

// applyRewrite dispatches on (type(a), type(b)) and performs the matching
// schema. It returns false when no rewrite was actually performed (the
// duplication schema aborting for lack of capacity), in which case no
// gas is charged.
func applyRewrite(n *Net, a, b int) bool {
	ta, tb := n.nodes[a].typ, n.nodes[b].typ

	switch {
	case ta == Epsilon && tb == Epsilon:
		// Neither side is distinguished; retire one arbitrary side.
		n.recordTrace(RuleErasure, a, b)
		n.retire(a)
		return true

	case ta == Epsilon:
		n.recordTrace(RuleErasure, a, b)
		n.retire(a)
		return true

	case tb == Epsilon:
		n.recordTrace(RuleErasure, b, a)
		n.retire(b)
		return true

	case ta == Delta && tb == Delta:
		n.recordTrace(RuleCrossAnnihilate, a, b)
		n.crossAnnihilate(a, b)
		return true

	case ta == Gamma && tb == Gamma:
		n.recordTrace(RuleParallelAnnihilate, a, b)
		n.parallelAnnihilate(a, b)
		return true

	case (ta == Delta && tb == Gamma) || (ta == Gamma && tb == Delta):
		var d, g int
		if ta == Delta {
			d, g = a, b
		} else {
			d, g = b, a
		}
		n.recordTrace(RuleDuplicate, d, g)
		return n.duplicate(d, g)

	default:
		return false
	}
}

// crossAnnihilate implements the delta-delta schema: aux1 crosses to
// aux2 and vice versa, then both nodes retire.
func (n *Net) crossAnnihilate(a, b int) {
	peerA1n, peerA1p := n.PeerOf(a, Aux1)
	peerA2n, peerA2p := n.PeerOf(a, Aux2)
	peerB1n, peerB1p := n.PeerOf(b, Aux1)
	peerB2n, peerB2p := n.PeerOf(b, Aux2)

	n.retire(a)
	n.retire(b)

	n.connectPeers(peerA1n, peerA1p, peerB2n, peerB2p)
	n.connectPeers(peerA2n, peerA2p, peerB1n, peerB1p)
}

// parallelAnnihilate implements the gamma-gamma schema: aux ports wire
// straight across (aux1-aux1, aux2-aux2), then both nodes retire.
func (n *Net) parallelAnnihilate(a, b int) {
	peerA1n, peerA1p := n.PeerOf(a, Aux1)
	peerA2n, peerA2p := n.PeerOf(a, Aux2)
	peerB1n, peerB1p := n.PeerOf(b, Aux1)
	peerB2n, peerB2p := n.PeerOf(b, Aux2)

	n.retire(a)
	n.retire(b)

	n.connectPeers(peerA1n, peerA1p, peerB1n, peerB1p)
	n.connectPeers(peerA2n, peerA2p, peerB2n, peerB2p)
}

// duplicate implements the delta-gamma commutation schema. d is the
// delta node, g the gamma node, regardless of dequeue order. Returns
// false (no gas charged) if the two replacement nodes cannot be
// allocated.
func (n *Net) duplicate(d, g int) bool {
	if n.capacity-n.used < 2 {
		return false
	}

	peerD1n, peerD1p := n.PeerOf(d, Aux1)
	peerD2n, peerD2p := n.PeerOf(d, Aux2)
	peerG1n, peerG1p := n.PeerOf(g, Aux1)
	peerG2n, peerG2p := n.PeerOf(g, Aux2)

	n.retire(d)
	n.retire(g)

	dPrime, err := n.NewNode(Delta)
	if err != nil {
		return false
	}
	gPrime, err := n.NewNode(Gamma)
	if err != nil {
		return false
	}

	n.Connect(dPrime, Principal, gPrime, Principal)
	n.connectPeers(dPrime, Aux1, peerD1n, peerD1p)
	n.connectPeers(dPrime, Aux2, peerG1n, peerG1p)
	n.connectPeers(gPrime, Aux1, peerD2n, peerD2p)
	n.connectPeers(gPrime, Aux2, peerG2n, peerG2p)

	return true
}

// connectPeers wires (an, ap) to (bn, bp) via Connect, doing nothing if
// either endpoint was unlinked (defensive; the enumerator's totality
// guarantee means this should not happen in practice).
func (n *Net) connectPeers(an, ap, bn, bp int) {
	if an == unlinked || bn == unlinked {
		return
	}
	n.Connect(an, ap, bn, bp)
}
