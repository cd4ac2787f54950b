package enum

import (
	"testing"

	"github.com/icsearch/icsearch/pkg/ic"
)

// TestEnumerationTotality covers property 9: for indices 0..1000 with
// capacity 13, BuildNet succeeds, produces at least one active pair,
// every linked port points at a valid peer that links back, and node
// count is in [3, 12].
func TestEnumerationTotality(t *testing.T) {
	net := ic.NewNet(13, 1000)

	for index := uint64(0); index <= 1000; index++ {
		if err := BuildNet(index, net); err != nil {
			t.Fatalf("index %d: BuildNet failed: %v", index, err)
		}

		used := net.UsedNodes()
		if used < 3 || used > 12 {
			t.Fatalf("index %d: expected node count in [3, 12], got %d", index, used)
		}

		// Every port that IS linked must point at a valid, bidirectionally
		// agreeing peer (E5). The ring construction leaves some principal
		// ports unlinked for every ring size except n == 4 (node 0 when
		// n == 3, nodes 2..n-3 when n >= 5), because each later principal
		// Connect severs a partner an earlier one wired — a literal
		// consequence of the specified construction; see DESIGN.md.
		foundActivePair := false
		for i := 0; i < used; i++ {
			for p := 0; p < 3; p++ {
				peerNode, peerPort := net.PeerOf(i, p)
				if peerNode < 0 {
					continue
				}
				if peerNode >= used {
					t.Fatalf("index %d: node %d port %d peer_node %d out of range", index, i, p, peerNode)
				}
				backNode, backPort := net.PeerOf(peerNode, peerPort)
				if backNode != i || backPort != p {
					t.Fatalf("index %d: node %d port %d's peer does not link back", index, i, p)
				}
			}
			if p0, pp := net.PeerOf(i, ic.Principal); pp == ic.Principal && p0 > i {
				foundActivePair = true
			}
		}
		if !foundActivePair {
			t.Fatalf("index %d: expected at least one active pair", index)
		}
	}
}

// TestDeterminism covers property 10 for the enumerator: BuildNet(i, ...)
// yields identical nets across two calls.
func TestDeterminism(t *testing.T) {
	netA := ic.NewNet(13, 1000)
	netB := ic.NewNet(13, 1000)

	for index := uint64(0); index < 200; index++ {
		if err := BuildNet(index, netA); err != nil {
			t.Fatalf("index %d: %v", index, err)
		}
		if err := BuildNet(index, netB); err != nil {
			t.Fatalf("index %d: %v", index, err)
		}

		if netA.UsedNodes() != netB.UsedNodes() {
			t.Fatalf("index %d: used node count diverged", index)
		}
		for i := 0; i < netA.UsedNodes(); i++ {
			if netA.Type(i) != netB.Type(i) {
				t.Fatalf("index %d: node %d type diverged", index, i)
			}
			for p := 0; p < 3; p++ {
				an, ap := netA.PeerOf(i, p)
				bn, bp := netB.PeerOf(i, p)
				if an != bn || ap != bp {
					t.Fatalf("index %d: node %d port %d diverged", index, i, p)
				}
			}
		}
	}
}

// TestCapacityExhaustionFails covers the documented failure mode: net
// capacity too small for the index's node count fails the build.
func TestCapacityExhaustionFails(t *testing.T) {
	net := ic.NewNet(3, 1000)
	if err := BuildNet(5, net); err != ic.ErrCapacityExhausted {
		t.Fatalf("expected ErrCapacityExhausted, got %v", err)
	}
}

// TestNodeCountMatchesBuild ensures NodeCount agrees with what BuildNet
// actually allocates.
func TestNodeCountMatchesBuild(t *testing.T) {
	net := ic.NewNet(13, 1000)
	for index := uint64(0); index < 50; index++ {
		if err := BuildNet(index, net); err != nil {
			t.Fatalf("index %d: %v", index, err)
		}
		if got, want := net.UsedNodes(), NodeCount(index); got != want {
			t.Fatalf("index %d: NodeCount() == %d but BuildNet used %d", index, want, got)
		}
	}
}

// TestStateNext builds sequential indices and always advances state.
func TestStateNext(t *testing.T) {
	net := ic.NewNet(13, 1000)
	state := &State{}

	for i := 0; i < 10; i++ {
		if !Next(state, net) {
			t.Fatalf("index %d: expected Next to succeed", i)
		}
		if state.Current != uint64(i+1) {
			t.Fatalf("expected state.Current == %d, got %d", i+1, state.Current)
		}
	}
}
