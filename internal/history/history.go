// Package history turns the archive of dated measurement snapshots into the
// time series published for the website.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	werrors "wasmweight/internal/errors"
	"wasmweight/internal/git"
	"wasmweight/internal/model"
	"wasmweight/internal/utils"

	"github.com/klauspost/compress/gzip"
)

const (
	// DefaultWindow is how many of the most recent builds are published.
	DefaultWindow = 60

	// DefaultDataRepo holds the nightly snapshots.
	DefaultDataRepo = "https://github.com/rustwasm/wasm-weight-tracker-data"

	snapshotExt    = ".json.gz"
	snapshotLayout = "2006-01-02-1504"
	dateLayout     = "2006-01-02T15:04:05"
)

// ParseSnapshotName converts a snapshot file name such as
// 2023-01-01-0900.json.gz into the build date 2023-01-01T09:00:00.
// Names without the snapshot extension are not snapshots and report ok=false.
func ParseSnapshotName(name string) (date string, ok bool, err error) {
	if !strings.HasSuffix(name, snapshotExt) {
		return "", false, nil
	}
	stem := strings.TrimSuffix(name, snapshotExt)
	if len(stem) != len(snapshotLayout) {
		return "", true, werrors.NewParseError(name, fmt.Errorf("expected a name of the form YYYY-MM-DD-HHMM%s", snapshotExt))
	}
	t, err := time.Parse(snapshotLayout, stem)
	if err != nil {
		return "", true, werrors.NewParseError(name, err)
	}
	return t.Format(dateLayout), true, nil
}

// ReadBuilds loads every snapshot in dir, sorted by date. Subdirectories and
// files that are not snapshots are ignored.
func ReadBuilds(dir string) ([]model.Build, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, werrors.NewIOError("failed to read", dir, err)
	}

	builds := make([]model.Build, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		date, ok, err := ParseSnapshotName(e.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		slog.Debug("parsing snapshot", "name", e.Name())
		data, err := readSnapshot(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		builds = append(builds, model.Build{Date: date, Data: data})
	}

	slog.Debug("found builds", "count", len(builds))
	sort.SliceStable(builds, func(i, j int) bool {
		return builds[i].Date < builds[j].Date
	})
	return builds, nil
}

func readSnapshot(path string) ([]model.Benchmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, werrors.NewIOError("failed to open", path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, werrors.NewParseError(path, err)
	}
	defer zr.Close()

	data, err := model.DecodeBenchmarks(zr)
	if err != nil {
		return nil, werrors.NewParseError(path, err)
	}
	return data, nil
}

// Latest returns the last n builds, or all of them when there are fewer.
func Latest(builds []model.Build, n int) []model.Build {
	if n < 0 {
		n = 0
	}
	if n > len(builds) {
		n = len(builds)
	}
	return builds[len(builds)-n:]
}

// WriteSeries writes builds to dst as a JSON array.
func WriteSeries(dst string, builds []model.Build) error {
	if builds == nil {
		builds = []model.Build{}
	}
	err := utils.WriteFileAtomic(dst, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(builds)
	})
	if err != nil {
		return werrors.NewIOError("failed to write", dst, err)
	}
	return nil
}

// EnsureDataRepo clones url into dir unless dir already exists and returns
// the directory holding the snapshots.
func EnsureDataRepo(ctx context.Context, client git.IClient, url, dir string) (string, error) {
	if !utils.Exists(dir) {
		slog.Info("cloning data repository", "url", url, "path", dir)
		if err := client.Clone(ctx, url, dir); err != nil {
			return "", err
		}
	}
	return SnapshotDir(dir), nil
}

// SnapshotDir is where a data checkout keeps its snapshots.
func SnapshotDir(dataDir string) string {
	return filepath.Join(dataDir, "builds")
}
