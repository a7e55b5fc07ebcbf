package graph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pir/internal/pir"
)

// Feed populates one body input per iteration by evaluating a dotted path
// expression against the graph's static inputs and the loop state, e.g.
// "inputs.topic" or "state.best".
type Feed struct {
	Input string
	Expr  string
}

// StateVar is one entry of the initial-state or state-update mapping.
type StateVar struct {
	Name string
	Expr string
}

// Loop is the authoring-level bounded loop construct. It never appears in
// a finalized graph: Unroll expands it before anything executes.
type Loop struct {
	Name   string
	Bound  int
	Body   *pir.PromptSpec
	Feeds  []Feed
	Init   []StateVar
	Update []StateVar
	Select Selection
}

// LoopNotBoundedError rejects a loop without a positive compile-time
// iteration bound.
type LoopNotBoundedError struct {
	Name  string
	Bound int
}

func (e *LoopNotBoundedError) Error() string {
	return fmt.Sprintf("loop %q is not bounded: bound %d must be a positive integer", e.Name, e.Bound)
}

// Unroll expands the loop into a finite acyclic graph with exactly Bound
// body-node instances and, for argmax selection, one judge node per body
// node. When a state-update mapping is present, iterations are chained by
// explicit edges and must run in order even though argmax itself is
// order-independent; without state, every iteration is marked safe to run
// in parallel.
func Unroll(l *Loop) (*Graph, error) {
	if l.Bound <= 0 {
		return nil, &LoopNotBoundedError{Name: l.Name, Bound: l.Bound}
	}
	if l.Select.Policy == PolicyArgMax && l.Select.Judge == nil {
		return nil, fmt.Errorf("loop %q selects by argmax but declares no judge", l.Name)
	}

	id := l.Name
	if id == "" {
		id = "loop-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(fingerprint(l))).String()
	}

	stateful := len(l.Update) > 0
	g := &Graph{ID: id}

	for i := 0; i < l.Bound; i++ {
		body := NewPromptNode(bodyID(i), l.Body, !stateful || i == 0)
		body.Parallel = !stateful
		g.Nodes = append(g.Nodes, body)

		if l.Select.Policy == PolicyArgMax {
			judge := NewPromptNode(judgeID(i), l.Select.Judge, false)
			judge.Parallel = !stateful
			g.Nodes = append(g.Nodes, judge)
			g.Edges = append(g.Edges, Edge{
				From:  bodyID(i),
				Path:  "output",
				To:    judgeID(i),
				Field: "candidate",
			})
		}

		if stateful && i > 0 {
			g.Edges = append(g.Edges, stateEdges(l, i)...)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// stateEdges wires iteration i-1's state into iteration i: one edge per
// feed expression that reads state, or a single state edge when the update
// mapping exists but no feed consumes it (the dependency is still real).
func stateEdges(l *Loop, i int) []Edge {
	var edges []Edge
	for _, feed := range l.Feeds {
		if !readsState(feed.Expr) {
			continue
		}
		edges = append(edges, Edge{
			From:  bodyID(i - 1),
			Path:  feed.Expr,
			To:    bodyID(i),
			Field: feed.Input,
		})
	}
	if len(edges) == 0 {
		edges = append(edges, Edge{
			From:  bodyID(i - 1),
			Path:  "state",
			To:    bodyID(i),
			Field: "state",
		})
	}
	return edges
}

func readsState(expr string) bool {
	return expr == "state" || strings.HasPrefix(expr, "state.")
}

// fingerprint summarizes the loop's structure so unnamed loops get a
// stable id: unrolling is a pure function of its input, so the same loop
// must compile to the same graph every time.
func fingerprint(l *Loop) string {
	var b strings.Builder
	fmt.Fprintf(&b, "bound=%d;policy=%s;", l.Bound, l.Select.Policy)
	if l.Body != nil {
		fmt.Fprintf(&b, "body=%s;", l.Body.Name)
	}
	if l.Select.Judge != nil {
		fmt.Fprintf(&b, "judge=%s;", l.Select.Judge.Name)
	}
	for _, f := range l.Feeds {
		fmt.Fprintf(&b, "feed=%s<-%s;", f.Input, f.Expr)
	}
	for _, v := range l.Init {
		fmt.Fprintf(&b, "init=%s<-%s;", v.Name, v.Expr)
	}
	for _, v := range l.Update {
		fmt.Fprintf(&b, "update=%s<-%s;", v.Name, v.Expr)
	}
	return b.String()
}

func bodyID(i int) string {
	return fmt.Sprintf("body_%d", i)
}

func judgeID(i int) string {
	return fmt.Sprintf("judge_%d", i)
}

// BodyNodes returns the ids of the body instances in iteration order.
func (g *Graph) BodyNodes() []string {
	var ids []string
	for _, node := range g.Nodes {
		if strings.HasPrefix(node.ID, "body_") {
			ids = append(ids, node.ID)
		}
	}
	return ids
}

// JudgeNodes returns the ids of the judge instances in iteration order.
func (g *Graph) JudgeNodes() []string {
	var ids []string
	for _, node := range g.Nodes {
		if strings.HasPrefix(node.ID, "judge_") {
			ids = append(ids, node.ID)
		}
	}
	return ids
}
