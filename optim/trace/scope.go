package trace

import "strings"

// Scope binds a tracer to a trial name. The zero Scope, or one built from a
// nil tracer, discards every event.
type Scope struct {
	tracer *Tracer
	trial  string
}

// NewScope returns a scope that records events for trial into t.
func NewScope(t *Tracer, trial string) Scope {
	return Scope{tracer: t, trial: trial}
}

// Tracer returns the underlying tracer, which may be nil.
func (s Scope) Tracer() *Tracer { return s.tracer }

// Trial returns the trial name.
func (s Scope) Trial() string { return s.trial }

// Label returns the full label "<trial>/<event>".
func (s Scope) Label(event string) string {
	if s.trial == "" {
		return event
	}
	return s.trial + "/" + event
}

// Add increments event by n.
func (s Scope) Add(event string, n int) {
	if s.tracer == nil {
		return
	}
	s.tracer.Increment(s.Label(event), n)
}

// Inc increments event by one.
func (s Scope) Inc(event string) {
	s.Add(event, 1)
}

// Count reads back the count of event for this trial.
func (s Scope) Count(event string) int {
	if s.tracer == nil {
		return 0
	}
	return s.tracer.Count(s.Label(event))
}

// Sub returns a scope with a fresh tracer whose labels nest below this
// scope's trial, e.g. "<trial>/cg". The caller merges it back with
// [Scope.MergeSub] once the sub-run finishes.
func (s Scope) Sub(name string) Scope {
	if s.tracer == nil {
		return Scope{trial: s.Label(name)}
	}
	return Scope{tracer: New(), trial: s.Label(name)}
}

// MergeSub folds the counts of a scope created by Sub into this scope's tracer.
func (s Scope) MergeSub(sub Scope) {
	if s.tracer == nil || sub.tracer == nil || sub.tracer == s.tracer {
		return
	}
	s.tracer.Merge(sub.tracer)
}

// SplitLabel splits "<trial>/<event>" at the first slash. Labels without a
// slash have an empty trial.
func SplitLabel(label string) (trial, event string) {
	trial, event, ok := strings.Cut(label, "/")
	if !ok {
		return "", label
	}
	return trial, event
}
