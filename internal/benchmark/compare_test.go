package benchmark

import (
	"testing"

	"wasmweight/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	prev := []model.Benchmark{sample("a", 100, 50), sample("gone", 7), sample("a", 200, 50)}
	curr := []model.Benchmark{sample("a", 220, 50, 9), sample("new", 1)}

	comps := Compare(prev, curr)
	require.Len(t, comps, 2)

	assert.Equal(t, "a", comps[0].Benchmark)
	assert.Equal(t, "out0", comps[0].Output)
	assert.Equal(t, uint64(200), comps[0].Prev)
	assert.Equal(t, uint64(220), comps[0].Curr)
	assert.InDelta(t, 10.0, comps[0].Diff, 0.001)
	assert.Equal(t, "a/out0: 200 -> 220 bytes (+10.00%)", comps[0].String())

	assert.Equal(t, "out1", comps[1].Output)
	assert.Zero(t, comps[1].Diff)
}

func TestCompare_ZeroPrevious(t *testing.T) {
	comps := Compare([]model.Benchmark{sample("a", 0)}, []model.Benchmark{sample("a", 10)})
	require.Len(t, comps, 1)
	assert.Zero(t, comps[0].Diff)
}
