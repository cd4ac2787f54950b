package ic

import (
	"fmt"
	"io"
)

// PortLink describes one outgoing connection from a node for the purposes
// of the read-only DOT export view: the local port, and the peer node/port
// it links to.
type PortLink struct {
	Port     int
	PeerNode int
	PeerPort int
}

// NodeView is a read-only snapshot of one active node, exposing exactly
// what a Graphviz exporter needs: id, agent type, and its port links.
type NodeView struct {
	ID    int
	Type  AgentType
	Links []PortLink
}

// ActiveNodeViews returns a snapshot of every active node and its links,
// in ascending node-id order. The core never performs DOT rendering
// itself; this is the narrow, read-only contract collaborators use.
func (n *Net) ActiveNodeViews() []NodeView {
	views := make([]NodeView, 0, n.used)
	for i := 0; i < n.used; i++ {
		if !n.nodes[i].active {
			continue
		}
		v := NodeView{ID: i, Type: n.nodes[i].typ}
		for p := 0; p < numPorts; p++ {
			peer := n.nodes[i].ports[p]
			if peer.isUnlinked() {
				continue
			}
			v.Links = append(v.Links, PortLink{Port: p, PeerNode: peer.node, PeerPort: peer.port})
		}
		views = append(views, v)
	}
	return views
}

// WriteDOT renders the active portion of net as a Graphviz digraph: one
// node per active agent, labeled with its type, and one edge per
// connection. Each bidirectional link is written exactly once (from the
// lower-indexed endpoint, or the lower port when both endpoints are the
// same node) so annihilated self-loops don't double up.
func WriteDOT(w io.Writer, n *Net) error {
	if _, err := fmt.Fprintln(w, "digraph ic {"); err != nil {
		return err
	}

	for _, v := range n.ActiveNodeViews() {
		if _, err := fmt.Fprintf(w, "  n%d [label=\"%s#%d\"];\n", v.ID, v.Type, v.ID); err != nil {
			return err
		}
	}

	for _, v := range n.ActiveNodeViews() {
		for _, l := range v.Links {
			if l.PeerNode < v.ID {
				continue
			}
			if l.PeerNode == v.ID && l.PeerPort < l.Port {
				continue
			}
			if _, err := fmt.Fprintf(w, "  n%d:p%d -> n%d:p%d;\n", v.ID, l.Port, l.PeerNode, l.PeerPort); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
