// Package lockfile locates and normalizes Cargo.lock files.
package lockfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	werrors "wasmweight/internal/errors"

	"github.com/pelletier/go-toml/v2"
)

// CargoLock is the lockfile name searched for.
const CargoLock = "Cargo.lock"

// Find walks from dir up to the filesystem root and returns the path and
// contents of the first Cargo.lock it meets.
func Find(dir string) (string, string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", "", werrors.NewIOError("failed to resolve", dir, err)
	}

	cur := start
	for {
		path := filepath.Join(cur, CargoLock)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			return path, string(data), nil
		case !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission):
			return "", "", werrors.NewIOError("failed to read", path, err)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", "", werrors.Configurationf("could not find `%s` in %s or any parent directory", CargoLock, start)
		}
		cur = parent
	}
}

// Normalize parses a TOML lockfile and re-serializes it as JSON with sorted
// keys, so formatting differences never show up as provenance changes.
func Normalize(source, contents string) (string, error) {
	var doc map[string]any
	if err := toml.Unmarshal([]byte(contents), &doc); err != nil {
		return "", werrors.NewParseError(source, err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", werrors.NewParseError(source, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Load finds the nearest Cargo.lock above dir and returns it normalized.
func Load(dir string) (string, error) {
	path, contents, err := Find(dir)
	if err != nil {
		return "", err
	}
	return Normalize(path, contents)
}
