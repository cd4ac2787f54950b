package ic

import (
	"strings"
	"testing"
)

func TestActiveNodeViewsSkipsRetired(t *testing.T) {
	net := NewNet(4, 1000)
	a, _ := net.NewNode(Delta)
	b, _ := net.NewNode(Delta)
	net.Connect(a, Principal, b, Principal)
	Reduce(net)

	views := net.ActiveNodeViews()
	if len(views) != 0 {
		t.Errorf("expected no active nodes after annihilation, got %d", len(views))
	}
}

func TestWriteDOTRendersNodesAndEdges(t *testing.T) {
	net := NewNet(4, 1000)
	a, _ := net.NewNode(Delta)
	b, _ := net.NewNode(Gamma)
	net.Connect(a, Aux1, b, Aux1)

	var sb strings.Builder
	if err := WriteDOT(&sb, net); err != nil {
		t.Fatalf("WriteDOT returned an error: %v", err)
	}

	out := sb.String()
	if !strings.HasPrefix(out, "digraph ic {") {
		t.Errorf("expected digraph header, got %q", out)
	}
	if !strings.Contains(out, "n0 [label=\"delta#0\"];") {
		t.Errorf("expected node 0 label, got %q", out)
	}
	if !strings.Contains(out, "n0:p1 -> n1:p1;") {
		t.Errorf("expected a single edge between aux ports, got %q", out)
	}
	if strings.Count(out, "->") != 1 {
		t.Errorf("expected exactly one edge line, got %q", out)
	}
}
