// Package graph holds the statically-sized prompt graph and the
// loop-to-graph compiler. Graphs are produced, never executed: running
// nodes against a model is the harness's job, and the only contract toward
// it is structural (node order, parallelizability, skippability).
package graph

import (
	"fmt"

	"pir/internal/pir"
)

type NodeKind int

const (
	// PromptNode invokes a PromptSpec against the model.
	PromptNode NodeKind = iota
	// ExternalNode is a non-LLM tool call with a typed boundary; the core
	// treats it as an opaque black box.
	ExternalNode
)

func (k NodeKind) String() string {
	if k == ExternalNode {
		return "external"
	}
	return "prompt"
}

// Node is the tagged variant over prompt and external nodes. Graph
// algorithms switch on Kind rather than relying on dispatch.
type Node struct {
	ID    string
	Kind  NodeKind
	Entry bool

	// Prompt is set for PromptNode.
	Prompt *pir.PromptSpec

	// Inputs/Outputs are the declared schemas of an ExternalNode.
	Inputs  []pir.OutputField
	Outputs []pir.OutputField

	// Parallel marks the node's iteration as independent of its siblings,
	// safe for the harness to run concurrently. Sequentially
	// state-dependent nodes must run in declared order.
	Parallel bool
}

// NewPromptNode creates a model-invoking node.
func NewPromptNode(id string, prompt *pir.PromptSpec, entry bool) Node {
	return Node{ID: id, Kind: PromptNode, Prompt: prompt, Entry: entry}
}

// NewExternalNode creates an opaque tool-call node with a typed boundary.
func NewExternalNode(id string, inputs, outputs []pir.OutputField) Node {
	return Node{ID: id, Kind: ExternalNode, Inputs: inputs, Outputs: outputs}
}

// Edge is a directed data dependency: Path selects a field out of the
// source node's structured output, and the destination is To.inputs.Field.
type Edge struct {
	From  string
	Path  string
	To    string
	Field string
}

// Graph is an acyclic, statically-sized prompt graph.
type Graph struct {
	ID    string
	Nodes []Node
	Edges []Edge
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Validate checks the structural invariants: node ids unique, every edge
// endpoint resolving, and no cycle.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for _, node := range g.Nodes {
		if seen[node.ID] {
			return fmt.Errorf("graph %q declares node %q twice", g.ID, node.ID)
		}
		seen[node.ID] = true
	}

	for _, edge := range g.Edges {
		if !seen[edge.From] {
			return fmt.Errorf("edge source %q does not resolve in graph %q", edge.From, g.ID)
		}
		if !seen[edge.To] {
			return fmt.Errorf("edge destination %q does not resolve in graph %q", edge.To, g.ID)
		}
	}

	_, err := g.TopoOrder()
	return err
}

// TopoOrder returns the node ids in a deterministic topological order:
// among ready nodes, declaration order wins. A cycle is an error naming
// the nodes involved.
func (g *Graph) TopoOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.Nodes))
	for _, node := range g.Nodes {
		indegree[node.ID] = 0
	}
	for _, edge := range g.Edges {
		if edge.From == edge.To {
			return nil, fmt.Errorf("graph %q has a self-edge on %q", g.ID, edge.To)
		}
		indegree[edge.To]++
	}

	order := make([]string, 0, len(g.Nodes))
	done := make(map[string]bool, len(g.Nodes))
	for len(order) < len(g.Nodes) {
		progressed := false
		for _, node := range g.Nodes {
			if done[node.ID] || indegree[node.ID] > 0 {
				continue
			}
			done[node.ID] = true
			order = append(order, node.ID)
			for _, edge := range g.Edges {
				if edge.From == node.ID {
					indegree[edge.To]--
				}
			}
			progressed = true
		}
		if !progressed {
			var stuck []string
			for _, node := range g.Nodes {
				if !done[node.ID] {
					stuck = append(stuck, node.ID)
				}
			}
			return nil, fmt.Errorf("graph %q contains a cycle through %v", g.ID, stuck)
		}
	}
	return order, nil
}
