package measure

import (
	"bytes"
	"crypto/rand"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	werrors "wasmweight/internal/errors"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gzip header and trailer plus stored-block framing for small inputs
const deflateOverhead = 64

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestRawSize(t *testing.T) {
	path := writeFile(t, "module.wasm", []byte("\x00asm\x01\x00\x00\x00"))

	n, err := RawSize(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), n)
}

func TestRawSize_Missing(t *testing.T) {
	_, err := RawSize(filepath.Join(t.TempDir(), "missing.wasm"))
	require.Error(t, err)

	var ioErr *werrors.IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompressedSize_Deterministic(t *testing.T) {
	path := writeFile(t, "shim.js", bytes.Repeat([]byte("export function greet() {}\n"), 200))

	first, err := CompressedSize(path)
	require.NoError(t, err)
	second, err := CompressedSize(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	raw, err := RawSize(path)
	require.NoError(t, err)
	assert.Less(t, first, raw)
}

func TestCompressedSize_IncompressibleBound(t *testing.T) {
	data := make([]byte, 4096)
	_, err := rand.Read(data)
	require.NoError(t, err)
	path := writeFile(t, "random.wasm", data)

	gz, err := CompressedSize(path)
	require.NoError(t, err)
	assert.LessOrEqual(t, gz, uint64(len(data))+deflateOverhead)
}

func TestCompressedSize_ValidGzip(t *testing.T) {
	data := []byte("hello hello hello hello")
	n, err := CompressedLen(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, uint64(buf.Len()), n)

	r, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	var out bytes.Buffer
	_, err = out.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, data, out.Bytes())
}

func TestCompressedSize_Missing(t *testing.T) {
	_, err := CompressedSize(filepath.Join(t.TempDir(), "nope.js"))
	var ioErr *werrors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestFile(t *testing.T) {
	path := writeFile(t, "pkg.wasm", bytes.Repeat([]byte{0}, 1000))

	s, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), s.Raw)
	assert.Greater(t, s.Compressed, uint64(0))
	assert.Less(t, s.Compressed, s.Raw)
}
