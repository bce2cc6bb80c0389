package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementStartsAtAmount(t *testing.T) {
	tr := New()
	tr.Increment("a/grad", 3)
	assert.Equal(t, 3, tr.Count("a/grad"))

	tr.Increment("a/grad", 2)
	assert.Equal(t, 5, tr.Count("a/grad"))
	assert.Equal(t, 0, tr.Count("missing"))
}

func TestIncrementNegativePanics(t *testing.T) {
	require.Panics(t, func() { New().Increment("x", -1) })
}

func TestZeroValueTracerIsUsable(t *testing.T) {
	var tr Tracer
	tr.Increment("x", 1)
	assert.Equal(t, 1, tr.Count("x"))
}

func TestMerge(t *testing.T) {
	parent := New()
	parent.Increment("a/grad", 2)
	parent.Increment("b/obj", 1)

	child := New()
	child.Increment("a/grad", 3)

	parent.Merge(child)

	assert.Equal(t, map[string]int{"a/grad": 5, "b/obj": 1}, parent.Counts())
	assert.Equal(t, map[string]int{"a/grad": 3}, child.Counts(), "merge source must be unchanged")

	parent.Merge(nil)
	assert.Equal(t, 5, parent.Count("a/grad"))
}

func TestCountsIsACopy(t *testing.T) {
	tr := New()
	tr.Increment("x", 1)
	c := tr.Counts()
	c["x"] = 100
	assert.Equal(t, 1, tr.Count("x"))
}

func TestPrintIsSorted(t *testing.T) {
	tr := New()
	tr.Increment("b/grad", 2)
	tr.Increment("a/objective", 7)

	var buf bytes.Buffer
	require.NoError(t, tr.Print(&buf))
	assert.Equal(t, "a/objective: 7\nb/grad: 2\n", buf.String())
	assert.Equal(t, []string{"a/objective", "b/grad"}, tr.Labels())
	assert.Equal(t, 2, tr.Len())
}

func TestScope(t *testing.T) {
	tr := New()
	sc := NewScope(tr, "newton")
	sc.Inc("grad")
	sc.Add("objective", 4)

	assert.Equal(t, 1, tr.Count("newton/grad"))
	assert.Equal(t, 4, sc.Count("objective"))
	assert.Equal(t, "newton", sc.Trial())
	assert.Same(t, tr, sc.Tracer())
}

func TestNilScopeDiscards(t *testing.T) {
	var sc Scope
	sc.Inc("grad")
	assert.Equal(t, 0, sc.Count("grad"))
	assert.Equal(t, "grad", sc.Label("grad"))

	sub := sc.Sub("cg")
	sub.Inc("matvec")
	sc.MergeSub(sub)
	assert.Nil(t, sub.Tracer())
}

func TestSubScopeMergesIntoParent(t *testing.T) {
	tr := New()
	sc := NewScope(tr, "ncg")

	sub := sc.Sub("cg")
	sub.Add("matvec", 2)
	assert.Equal(t, 0, tr.Count("ncg/cg/matvec"), "sub-run counts stay private until merged")

	sc.MergeSub(sub)
	assert.Equal(t, 2, tr.Count("ncg/cg/matvec"))
}

func TestSplitLabel(t *testing.T) {
	trial, event := SplitLabel("ncg/cg/matvec")
	assert.Equal(t, "ncg", trial)
	assert.Equal(t, "cg/matvec", event)

	trial, event = SplitLabel("plain")
	assert.Equal(t, "", trial)
	assert.Equal(t, "plain", event)
}

func TestCollector(t *testing.T) {
	tr := New()
	tr.Increment("steepest/objective", 12)
	tr.Increment("steepest/grad", 4)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector(tr, "optim")))

	expected := `
# HELP optim_calls_total Number of traced calls per trial and event.
# TYPE optim_calls_total counter
optim_calls_total{event="grad",trial="steepest"} 4
optim_calls_total{event="objective",trial="steepest"} 12
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "optim_calls_total"))
}
