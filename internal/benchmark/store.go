package benchmark

import (
	"bytes"
	"io"
	"os"

	werrors "wasmweight/internal/errors"
	"wasmweight/internal/model"
	"wasmweight/internal/utils"
)

// ReadDocument loads a measurement document from path.
func ReadDocument(path string) ([]model.Benchmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, werrors.NewIOError("failed to read", path, err)
	}
	benchmarks, err := model.DecodeBenchmarks(bytes.NewReader(data))
	if err != nil {
		return nil, werrors.NewParseError(path, err)
	}
	return benchmarks, nil
}

// WriteDocument writes benchmarks to dst atomically.
func WriteDocument(dst string, benchmarks []model.Benchmark) error {
	err := utils.WriteFileAtomic(dst, func(w io.Writer) error {
		return model.EncodeBenchmarks(w, benchmarks)
	})
	if err != nil {
		return werrors.NewIOError("failed to write", dst, err)
	}
	return nil
}
