package report

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(entries []*Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Text())
	}
	return out
}

func fill(a *Aggregator, n int) {
	for i := range n {
		e := NewEntry(fmt.Sprintf("tile%d", i))
		e.SetReport(fmt.Sprintf("line %d", i))
		a.Add(e)
	}
}

func TestAggregator_EightReportsMakeTwoBins(t *testing.T) {
	a := NewAggregator()
	fill(a, 8)

	require.Len(t, a.Bins(), 2)
	assert.Equal(t, 7, a.Bins()[0].Len())
	assert.Equal(t, 1, a.Bins()[1].Len())
	assert.True(t, a.Bins()[0].IsFull())
	assert.False(t, a.Bins()[1].IsFull())

	want := []string{"line 0", "line 1", "line 2", "line 3", "line 4", "line 5", "line 6"}
	if diff := cmp.Diff(want, texts(a.Bins()[0].Entries())); diff != "" {
		t.Errorf("first bin mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"line 7"}, texts(a.Bins()[1].Entries()))
}

func TestAggregator_NoBinUntilFirstAdd(t *testing.T) {
	a := NewAggregator()
	assert.Empty(t, a.Bins())
	assert.Equal(t, 0, a.Len())

	fill(a, 1)
	assert.Len(t, a.Bins(), 1)
}

func TestAggregator_ExactlyFullDoesNotAllocate(t *testing.T) {
	a := NewAggregator()
	fill(a, BinSize)
	assert.Len(t, a.Bins(), 1)

	fill(a, BinSize)
	assert.Len(t, a.Bins(), 2)
	assert.Equal(t, 2*BinSize, a.Len())
}

func TestAggregator_AllPreservesArrivalOrder(t *testing.T) {
	a := NewAggregator()
	fill(a, 17)

	got := texts(slices.Collect(a.All()))
	require.Len(t, got, 17)
	for i, line := range got {
		assert.Equal(t, fmt.Sprintf("line %d", i), line)
	}
}

func TestBin_AddRejectsWhenFull(t *testing.T) {
	var b Bin
	for range BinSize {
		assert.True(t, b.Add(NewEntry("x")))
	}
	assert.True(t, b.IsFull())
	assert.False(t, b.Add(NewEntry("overflow")))
	assert.Equal(t, BinSize, b.Len())
}

func TestEntry_TextIsSetOnce(t *testing.T) {
	e := NewEntry("building@(0,0)")
	e.SetReport("Building - a.png")
	e.SetReport("Building - b.png")

	assert.Equal(t, "Building - a.png", e.Text())
	assert.Equal(t, "building@(0,0)", e.Subject())
}
