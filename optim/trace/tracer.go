// Package trace counts labeled call sites so that the cost of different
// optimization strategies can be compared after a run.
//
// Labels are conventionally "<trial>/<event>", for example
// "newton/objective" or "ncg/reset". A [Scope] binds a tracer to one trial
// and builds those labels.
//
// A Tracer is diagnostic only. It never influences the control flow of the
// solvers that feed it. It is not safe for concurrent use: trials that run in
// parallel must each own a tracer and merge into a parent once they finish.
package trace

import (
	"fmt"
	"io"
	"maps"
	"slices"
)

// Tracer accumulates non-negative invocation counts per label.
type Tracer struct {
	calls map[string]int
}

// New returns an empty tracer.
func New() *Tracer {
	return &Tracer{calls: make(map[string]int)}
}

// Increment adds amount to the count stored under label. The first
// increment of a label stores amount itself. Negative amounts panic.
func (t *Tracer) Increment(label string, amount int) {
	if amount < 0 {
		panic(fmt.Sprintf("trace: negative increment %d for %q", amount, label))
	}
	if t.calls == nil {
		t.calls = make(map[string]int)
	}
	t.calls[label] += amount
}

// Merge adds every count held by other into t. other is not modified.
func (t *Tracer) Merge(other *Tracer) {
	if other == nil {
		return
	}
	for label, n := range other.calls {
		t.Increment(label, n)
	}
}

// Count returns the count stored under label, or zero.
func (t *Tracer) Count(label string) int {
	return t.calls[label]
}

// Counts returns a copy of the label → count mapping.
func (t *Tracer) Counts() map[string]int {
	return maps.Clone(t.calls)
}

// Labels returns the recorded labels in lexical order.
func (t *Tracer) Labels() []string {
	return slices.Sorted(maps.Keys(t.calls))
}

// Len returns the number of distinct labels.
func (t *Tracer) Len() int {
	return len(t.calls)
}

// Print writes one "label: count" line per label to w.
func (t *Tracer) Print(w io.Writer) error {
	for _, label := range t.Labels() {
		if _, err := fmt.Fprintf(w, "%s: %d\n", label, t.calls[label]); err != nil {
			return err
		}
	}
	return nil
}
