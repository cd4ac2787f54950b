// Package ic implements a small interaction-combinator graph store and
// reduction engine: a fixed-capacity arena of nodes wired together through
// indexed ports, plus the local rewrite rules for the three agents
// delta, gamma and epsilon.
package ic

import "fmt"

// AgentType identifies the kind of agent a node represents.
type AgentType int

const (
	// Delta is a binary combinator: one principal port, two auxiliary ports.
	Delta AgentType = iota
	// Gamma is the other binary combinator, symmetric to Delta.
	Gamma
	// Epsilon is the erasure agent. It carries three ports for storage
	// uniformity with Delta/Gamma, but only its principal port ever
	// participates in a rewrite.
	Epsilon
)

func (t AgentType) String() string {
	switch t {
	case Delta:
		return "delta"
	case Gamma:
		return "gamma"
	case Epsilon:
		return "epsilon"
	default:
		return "unknown"
	}
}

// Principal and auxiliary port indices. Port 0 is always principal.
const (
	Principal = 0
	Aux1      = 1
	Aux2      = 2
)

const numPorts = 3

// unlinked marks a port with no peer.
const unlinked = -1

// link is one endpoint of a connection: the peer node index and peer port,
// or (unlinked, unlinked) if the port currently carries no connection.
type link struct {
	node int
	port int
}

func (l link) isUnlinked() bool { return l.node == unlinked }

// node is one arena slot: an agent type, its three ports, and an active
// flag. Retired nodes keep their slot; they are never reallocated within
// a single reduction.
type node struct {
	typ    AgentType
	ports  [numPorts]link
	active bool
}

// Net is a bounded arena of nodes plus the bookkeeping a reduction needs:
// a gas budget, a redex work-queue, and the factorization side channel.
type Net struct {
	nodes    []node
	used     int
	capacity int

	gasLimit uint64
	gasUsed  uint64

	queue redexQueue

	// Side channel used only by the factorization predicate.
	inputN  int64
	factorA int64
	factorB int64
	found   bool

	// Optional rewrite trace; see EnableTrace.
	traceBuf   []TraceEvent
	traceOn    bool
	traceHead  uint64
	traceCount uint64
}

// NewNet allocates a Net with the given node capacity and gas budget.
func NewNet(capacity int, gasLimit uint64) *Net {
	if capacity < 0 {
		capacity = 0
	}
	return &Net{
		nodes:    make([]node, capacity),
		capacity: capacity,
		gasLimit: gasLimit,
		queue:    newRedexQueue(4 * (capacity + 1)),
	}
}

// Capacity returns the net's fixed node capacity.
func (n *Net) Capacity() int { return n.capacity }

// UsedNodes returns the current bump-allocated high-water mark.
func (n *Net) UsedNodes() int { return n.used }

// GasLimit returns the configured gas budget.
func (n *Net) GasLimit() uint64 { return n.gasLimit }

// GasUsed returns the gas spent so far.
func (n *Net) GasUsed() uint64 { return n.gasUsed }

// SetGasLimit changes the budget for subsequent reductions.
func (n *Net) SetGasLimit(limit uint64) { n.gasLimit = limit }

// Reset clears the net back to an empty arena with zero gas used and no
// recorded solution, ready for the enumerator to build a fresh graph at
// the same capacity. The underlying storage is reused, not reallocated.
func (n *Net) Reset() {
	for i := range n.nodes {
		n.nodes[i] = node{}
	}
	n.used = 0
	n.gasUsed = 0
	n.queue.reset()
	n.inputN = 0
	n.factorA = 0
	n.factorB = 0
	n.found = false

	n.traceHead = 0
	n.traceCount = 0
}

// SetInput sets the predicate's input N ahead of a reduction.
func (n *Net) SetInput(value int64) { n.inputN = value }

// InputN returns the predicate's configured input.
func (n *Net) InputN() int64 { return n.inputN }

// Found reports whether the terminal graph exposed a valid factor pair.
func (n *Net) Found() bool { return n.found }

// Factors returns the recorded factor pair, valid only if Found() is true.
func (n *Net) Factors() (a, b int64) { return n.factorA, n.factorB }

// ErrCapacityExhausted is returned by NewNode when the arena is full.
var ErrCapacityExhausted = fmt.Errorf("ic: node capacity exhausted")

// NewNode appends a node of the given type with all ports unlinked and
// active set to true. Returns ErrCapacityExhausted when the arena is full.
func (n *Net) NewNode(typ AgentType) (int, error) {
	if n.used >= n.capacity {
		return -1, ErrCapacityExhausted
	}
	idx := n.used
	n.nodes[idx] = node{
		typ:    typ,
		ports:  [numPorts]link{{unlinked, unlinked}, {unlinked, unlinked}, {unlinked, unlinked}},
		active: true,
	}
	n.used++
	return idx, nil
}

// validIndex reports whether idx addresses a node within the used range.
func (n *Net) validIndex(idx int) bool {
	return idx >= 0 && idx < n.used
}

func validPort(p int) bool {
	return p >= 0 && p < numPorts
}

// Type returns the agent type of node idx.
func (n *Net) Type(idx int) AgentType { return n.nodes[idx].typ }

// Active reports whether node idx is still live.
func (n *Net) Active(idx int) bool { return n.nodes[idx].active }

// PeerOf returns the (peerNode, peerPort) that port p of node idx links to,
// or (-1, -1) if that port is unlinked.
func (n *Net) PeerOf(idx, p int) (int, int) {
	l := n.nodes[idx].ports[p]
	return l.node, l.port
}

// Connect is the single mutation primitive for links. It validates indices
// and ports (no-op on violation), severs any prior link on either endpoint
// symmetrically, writes the mutual link, and — if both ports are principal
// and both nodes active — enqueues the new redex.
func (n *Net) Connect(a, pa, b, pb int) {
	if !n.validIndex(a) || !n.validIndex(b) || !validPort(pa) || !validPort(pb) {
		return
	}

	if old := n.nodes[a].ports[pa]; !old.isUnlinked() {
		n.severPeer(old, a, pa)
	}
	if old := n.nodes[b].ports[pb]; !old.isUnlinked() {
		n.severPeer(old, b, pb)
	}

	n.nodes[a].ports[pa] = link{b, pb}
	n.nodes[b].ports[pb] = link{a, pa}

	if pa == Principal && pb == Principal && n.nodes[a].active && n.nodes[b].active {
		n.queue.push(redex{a, b})
	}
}

// severPeer clears the peer side of a link, but only if that peer still
// points back at (owner, ownerPort) — guards against links that were
// already overwritten by a previous Connect in the same call.
func (n *Net) severPeer(l link, owner, ownerPort int) {
	if !n.validIndex(l.node) || !validPort(l.port) {
		return
	}
	back := n.nodes[l.node].ports[l.port]
	if back.node == owner && back.port == ownerPort {
		n.nodes[l.node].ports[l.port] = link{unlinked, unlinked}
	}
}

// retire marks a node inactive. Its storage is kept until the next Reset.
func (n *Net) retire(idx int) {
	n.nodes[idx].active = false
}
