package graph

import (
	"fmt"

	"pir/internal/pir"
)

type PolicyKind int

const (
	// PolicyArgMax selects the iteration with the strictly greatest judge
	// score, ties broken by earliest index.
	PolicyArgMax PolicyKind = iota
	// PolicyFirstSuccess selects the first iteration whose output
	// satisfies the predicate, permitting the harness to skip the rest.
	PolicyFirstSuccess
)

func (k PolicyKind) String() string {
	if k == PolicyFirstSuccess {
		return "first_success"
	}
	return "argmax"
}

// Selection is a loop's selection policy. Judge is the scoring
// sub-computation used by argmax; its invocation is the harness's job,
// never the compiler's.
type Selection struct {
	Policy PolicyKind
	Judge  *pir.PromptSpec
}

// Result is one iteration's outcome as reported by the harness.
type Result struct {
	Index  int
	Score  float64
	Scored bool // whether the judge produced a score
	Output map[string]any
}

// EmptyCandidateSetError reports argmax over zero executed iterations.
type EmptyCandidateSetError struct{}

func (*EmptyCandidateSetError) Error() string {
	return "empty candidate set: no iterations were executed"
}

// NoSuccessfulIterationError reports first_success exhausting the bound
// without a satisfying iteration. Whether that is fatal or yields a
// fallback is the harness's decision.
type NoSuccessfulIterationError struct {
	Bound int
}

func (e *NoSuccessfulIterationError) Error() string {
	return fmt.Sprintf("no successful iteration after %d attempts", e.Bound)
}

// ArgMax selects the iteration with the strictly greatest score; ties go
// to the earliest index. Every result must carry a score.
func ArgMax(results []Result) (int, error) {
	if len(results) == 0 {
		return 0, &EmptyCandidateSetError{}
	}

	best := -1
	for i, r := range results {
		if !r.Scored {
			return 0, fmt.Errorf("argmax: iteration %d carries no score", r.Index)
		}
		if best < 0 || r.Score > results[best].Score {
			best = i
		}
	}
	return results[best].Index, nil
}

// FirstSuccessResult carries the selected index and the iteration indexes
// the harness may skip thanks to short-circuiting.
type FirstSuccessResult struct {
	Index   int
	Skipped []int
}

// FirstSuccess evaluates the predicate against each result in iteration
// order and selects the first satisfying one. Results after the selection
// are reported as skippable; the harness must preserve iteration order
// when deciding "first".
func FirstSuccess(results []Result, predicate func(Result) bool) (FirstSuccessResult, error) {
	for i, r := range results {
		if predicate(r) {
			var skipped []int
			for _, rest := range results[i+1:] {
				skipped = append(skipped, rest.Index)
			}
			return FirstSuccessResult{Index: r.Index, Skipped: skipped}, nil
		}
	}
	return FirstSuccessResult{}, &NoSuccessfulIterationError{Bound: len(results)}
}
