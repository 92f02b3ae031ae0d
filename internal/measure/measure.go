// Package measure computes the raw and gzip-compressed size of build
// artifacts. Both functions expect a complete, closed file; callers run them
// only after the producing build step has exited.
package measure

import (
	"bytes"
	"os"

	werrors "wasmweight/internal/errors"

	"github.com/klauspost/compress/gzip"
)

// RawSize returns the length of the file at path in bytes.
func RawSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, werrors.NewIOError("failed to stat", path, err)
	}
	return uint64(info.Size()), nil
}

// CompressedSize returns the length of the file's contents after gzip
// compression at the default level.
func CompressedSize(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, werrors.NewIOError("failed to read", path, err)
	}
	n, err := CompressedLen(data)
	if err != nil {
		return 0, werrors.NewIOError("failed to compress", path, err)
	}
	return n, nil
}

// CompressedLen gzips data in memory and returns the compressed length.
func CompressedLen(data []byte) (uint64, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return uint64(buf.Len()), nil
}

// Sizes holds the raw and compressed size of one artifact.
type Sizes struct {
	Raw        uint64
	Compressed uint64
}

// File measures both sizes of the file at path.
func File(path string) (Sizes, error) {
	raw, err := RawSize(path)
	if err != nil {
		return Sizes{}, err
	}
	gz, err := CompressedSize(path)
	if err != nil {
		return Sizes{}, err
	}
	return Sizes{Raw: raw, Compressed: gz}, nil
}
