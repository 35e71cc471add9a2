package live_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonelang-ai/tonelang-go/live"
)

func TestSplitPaths(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single", input: "t0/d0", expected: []string{"t0/d0"}},
		{name: "batch with spaces", input: "t0/d0, t1/d0 ,t2", expected: []string{"t0/d0", "t1/d0", "t2"}},
		{name: "empty entries dropped", input: "t0,,t1,", expected: []string{"t0", "t1"}},
		{name: "all empty", input: " , ,", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, live.SplitPaths(tt.input))
		})
	}
}

func TestResolveAll_PartialFailure(t *testing.T) {
	g := sessionFixture()

	resolved, failures := live.ResolveAll(g, []string{"t0/d0", "t9/d0", "t1/d0"})
	require.Len(t, resolved, 2)
	require.Len(t, failures, 1)

	var pathErr *live.PathError
	require.ErrorAs(t, failures[0], &pathErr)
	assert.Equal(t, live.ErrNotFound, pathErr.Kind)

	assert.Equal(t, "t0/d0", resolved[0].Raw)
	assert.Equal(t, "t1/d0", resolved[1].Raw)
}

func TestSortIndicesDescending(t *testing.T) {
	indices := []int{0, 5, 2, 2, 9}
	live.SortIndicesDescending(indices)
	assert.Equal(t, []int{9, 5, 2, 2, 0}, indices)
}
