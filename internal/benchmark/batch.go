package benchmark

import (
	"context"

	werrors "wasmweight/internal/errors"
	"wasmweight/internal/model"
)

// Resolve maps command-line keys to definitions, failing on the first unknown
// key before anything is built.
func Resolve(keys []string) ([]Definition, error) {
	defs := make([]Definition, 0, len(keys))
	for _, key := range keys {
		def, ok := Lookup(key)
		if !ok {
			return nil, &werrors.UnknownBenchmarkError{Name: key}
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Measure runs the named benchmarks in order and returns their results.
// It is all-or-nothing: the first failure aborts the batch and the results
// gathered so far are discarded.
func Measure(ctx context.Context, runner Runner, keys []string) ([]model.Benchmark, error) {
	defs, err := Resolve(keys)
	if err != nil {
		return nil, err
	}

	results := make([]model.Benchmark, 0, len(defs))
	for _, def := range defs {
		b, err := runner.Run(ctx, def)
		if err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, nil
}

// Merge concatenates measurement documents in input order. Benchmarks that
// appear in several inputs are kept as they are; nothing is deduplicated.
func Merge(paths []string) ([]model.Benchmark, error) {
	merged := make([]model.Benchmark, 0)
	for _, path := range paths {
		doc, err := ReadDocument(path)
		if err != nil {
			return nil, err
		}
		merged = append(merged, doc...)
	}
	return merged, nil
}
