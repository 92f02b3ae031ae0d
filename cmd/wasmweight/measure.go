package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"wasmweight/internal/benchmark"
	"wasmweight/internal/config"
	werrors "wasmweight/internal/errors"
	"wasmweight/internal/model"
	"wasmweight/internal/notify"
	"wasmweight/internal/telemetry"

	"github.com/spf13/cobra"
)

var measureCmd = &cobra.Command{
	Use:   "measure <output> <benchmark>...",
	Short: "Build benchmarks and write their measurements",
	Long: `Clones and builds each named benchmark in order, then writes a JSON document
recording the inputs of every build and the sizes of its artifacts.

Any failure aborts the whole batch and nothing is written.
Run 'wasmweight benchmarks' to list the available names.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)
	measureCmd.Flags().String("tmp-dir", "", "Directory for checkouts and build output (default: a fresh temporary directory)")
	measureCmd.Flags().String("metrics-file", "", "Write Prometheus metrics for the run to this file")
	bindTo(measureCmd.Flags(), "tmp-dir", "tmp_dir")
	bindTo(measureCmd.Flags(), "metrics-file", "metrics_file")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Get()
	dst, keys := args[0], args[1:]

	// Unknown names fail before any directory is created.
	if _, err := benchmark.Resolve(keys); err != nil {
		return err
	}

	root, cleanup, err := workDir(cfg.TmpDir)
	if err != nil {
		return err
	}
	defer cleanup()

	var rec *telemetry.Recorder
	if cfg.MetricsFile != "" {
		rec = telemetry.NewRecorder()
	}

	results, err := benchmark.Measure(ctx, newBenchmarkRunner(root, rec), keys)
	if rec != nil {
		if werr := rec.WriteTextfile(cfg.MetricsFile); werr != nil {
			slog.Warn("failed to write metrics", "path", cfg.MetricsFile, "error", werr)
		}
	}
	if err != nil {
		return err
	}

	if err := benchmark.WriteDocument(dst, results); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Measured %d benchmark(s), wrote %s\n", len(results), dst)
	notify.Send(ctx, newNotifier(cfg.Slack), fmt.Sprintf("wasmweight: measured %s", strings.Join(benchmarkNames(results), ", ")))
	return nil
}

// workDir prepares the build root. An explicit directory is kept after the
// run so later runs can reuse its checkouts and cargo cache.
func workDir(tmpDir string) (string, func(), error) {
	if tmpDir == "" {
		dir, err := os.MkdirTemp("", "wasmweight-")
		if err != nil {
			return "", nil, werrors.NewIOError("failed to create", os.TempDir(), err)
		}
		return dir, func() { os.RemoveAll(dir) }, nil
	}

	target := filepath.Join(tmpDir, "target")
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", nil, werrors.NewIOError("failed to create", target, err)
	}
	return tmpDir, func() {}, nil
}

func benchmarkNames(bs []model.Benchmark) []string {
	names := make([]string, 0, len(bs))
	for _, b := range bs {
		names = append(names, b.Name)
	}
	return names
}
