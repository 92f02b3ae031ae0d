package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"wasmweight/internal/git"
	"wasmweight/internal/measure"
	"wasmweight/internal/model"
	"wasmweight/internal/process"
	"wasmweight/internal/telemetry"
	"wasmweight/internal/utils"
)

// ToolRunner implements Runner by driving git, rustc, cargo, wasm-pack, npm
// and wasm-strip as external processes.
//
// Checkouts live at Root/<benchmark name> and are reused across runs without
// pulling, so a stale checkout is measured as is. All benchmarks share a
// cargo target directory at Root/target.
type ToolRunner struct {
	Root     string
	Git      git.IClient
	Proc     process.Runner
	Recorder *telemetry.Recorder
}

// NewToolRunner creates a runner that works under root.
func NewToolRunner(root string, gitClient git.IClient, proc process.Runner) *ToolRunner {
	return &ToolRunner{
		Root: root,
		Git:  gitClient,
		Proc: proc,
	}
}

// CargoTargetDir is the shared CARGO_TARGET_DIR.
func (r *ToolRunner) CargoTargetDir() string {
	return filepath.Join(r.Root, "target")
}

// Run measures def. Any failing step aborts the benchmark; the error names
// the benchmark and the step.
func (r *ToolRunner) Run(ctx context.Context, def Definition) (model.Benchmark, error) {
	slog.Info("measuring benchmark", "benchmark", def.Name, "kind", def.Kind.String())
	start := time.Now()

	b := model.NewBenchmark(def.Name)
	err := r.run(ctx, def, &b)
	r.Recorder.TrackBenchmark(err == nil)
	if err != nil {
		return model.Benchmark{}, fmt.Errorf("benchmark %s: %w", def.Name, err)
	}

	slog.Info("benchmark complete", "benchmark", def.Name, "outputs", len(b.Outputs), "duration", time.Since(start).Round(time.Millisecond))
	return b, nil
}

func (r *ToolRunner) run(ctx context.Context, def Definition, b *model.Benchmark) error {
	root, err := r.gitClone(ctx, def.URL, b)
	if err != nil {
		return err
	}
	dir := filepath.Join(root, def.Subdir)

	switch def.Kind {
	case KindCargo:
		return r.cargoBuild(ctx, dir, def.Crate, b)
	case KindWasmPack:
		return r.wasmPackBuild(ctx, def.Crate, dir, b)
	case KindWebpack:
		if err := r.wasmPackBuild(ctx, def.Crate, dir, b); err != nil {
			return err
		}
		if err := r.npmInstall(ctx, root, b); err != nil {
			return err
		}
		return r.webpackBuild(ctx, root, b)
	default:
		return fmt.Errorf("unsupported build kind %d", def.Kind)
	}
}

// step runs fn as a named procedure step, timing it and prefixing any error
// with the step name.
func (r *ToolRunner) step(b *model.Benchmark, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.Recorder.ObserveStep(b.Name, name, time.Since(start))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (r *ToolRunner) gitClone(ctx context.Context, url string, b *model.Benchmark) (string, error) {
	dst := filepath.Join(r.Root, b.Name)

	err := r.step(b, "git clone", func() error {
		if r.Git.RepoExists(dst) {
			slog.Debug("reusing existing checkout", "path", dst)
			return nil
		}
		slog.Debug("git clone", "url", url, "path", dst)
		return r.Git.Clone(ctx, url, dst)
	})
	if err != nil {
		return "", err
	}

	err = r.step(b, "git rev-parse", func() error {
		rev, err := r.Git.CurrentCommitSHA(ctx, dst)
		if err != nil {
			return err
		}
		b.AddInput(model.Git{URL: url, Rev: rev})
		return nil
	})
	return dst, err
}

// record appends an output and mirrors it into the metrics.
func (r *ToolRunner) record(b *model.Benchmark, name string, bytes uint64) {
	slog.Debug("measured artifact", "benchmark", b.Name, "output", name, "bytes", bytes, "size", utils.FormatBytes(bytes))
	b.AddOutput(name, bytes)
	r.Recorder.SetArtifactBytes(b.Name, name, bytes)
}

func (r *ToolRunner) measureFiles(b *model.Benchmark, paths ...string) ([]measure.Sizes, error) {
	sizes := make([]measure.Sizes, 0, len(paths))
	err := r.step(b, "measure", func() error {
		for _, p := range paths {
			s, err := measure.File(p)
			if err != nil {
				return err
			}
			sizes = append(sizes, s)
		}
		return nil
	})
	return sizes, err
}
