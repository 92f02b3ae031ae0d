package benchmark

import (
	"fmt"

	"wasmweight/internal/model"
)

type Comparison struct {
	Benchmark string
	Output    string
	Prev      uint64
	Curr      uint64
	Diff      float64 // Percentage change
}

type outputKey struct {
	benchmark string
	output    string
}

// Compare pairs up outputs of the same benchmark and output name across two
// measurement documents, in the order they appear in curr. Outputs missing
// from either side are skipped. When a benchmark occurs more than once in
// prev, its last occurrence wins.
func Compare(prev, curr []model.Benchmark) []Comparison {
	prevMap := make(map[outputKey]uint64)
	for _, b := range prev {
		for _, o := range b.Outputs {
			prevMap[outputKey{b.Name, o.Name}] = o.Bytes
		}
	}

	var comparisons []Comparison
	for _, b := range curr {
		for _, o := range b.Outputs {
			p, ok := prevMap[outputKey{b.Name, o.Name}]
			if !ok {
				continue
			}
			comp := Comparison{
				Benchmark: b.Name,
				Output:    o.Name,
				Prev:      p,
				Curr:      o.Bytes,
			}
			if p > 0 {
				comp.Diff = (float64(o.Bytes) - float64(p)) / float64(p) * 100
			}
			comparisons = append(comparisons, comp)
		}
	}
	return comparisons
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s/%s: %d -> %d bytes (%+.2f%%)", c.Benchmark, c.Output, c.Prev, c.Curr, c.Diff)
}
