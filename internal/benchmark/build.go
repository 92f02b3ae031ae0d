package benchmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	werrors "wasmweight/internal/errors"
	"wasmweight/internal/measure"
	"wasmweight/internal/model"
	"wasmweight/internal/process"
	"wasmweight/internal/utils"
)

const wasmTarget = "wasm32-unknown-unknown"

func (r *ToolRunner) wasmPackBuild(ctx context.Context, crate, dir string, b *model.Benchmark) error {
	err := r.step(b, "wasm-pack version", func() error {
		version, err := r.Proc.Output(ctx, process.New("wasm-pack", "--version"))
		if err != nil {
			return err
		}
		b.AddInput(model.WasmPack{Version: version})
		return nil
	})
	if err != nil {
		return err
	}

	if err := r.addRustcVersion(ctx, b); err != nil {
		return err
	}

	err = r.step(b, "wasm-pack build", func() error {
		return r.Proc.Run(ctx, process.New("wasm-pack", "build").In(dir).WithEnv(r.cargoEnv()))
	})
	if err != nil {
		return err
	}

	if err := r.addLockfile(dir, b); err != nil {
		return err
	}

	pkg := filepath.Join(dir, "pkg")
	js := filepath.Join(pkg, crate+".js")
	wasm := filepath.Join(pkg, crate+"_bg.wasm")
	sizes, err := r.measureFiles(b, js, wasm)
	if err != nil {
		return err
	}

	r.record(b, "wasm-bindgen js shim", sizes[0].Raw)
	r.record(b, "wasm-bindgen wasm", sizes[1].Raw)
	r.record(b, "wasm-bindgen js shim (gz)", sizes[0].Compressed)
	r.record(b, "wasm-bindgen wasm (gz)", sizes[1].Compressed)
	return nil
}

func (r *ToolRunner) cargoBuild(ctx context.Context, manifestDir, crate string, b *model.Benchmark) error {
	if err := r.addRustcVersion(ctx, b); err != nil {
		return err
	}

	err := r.step(b, "cargo build", func() error {
		cmd := process.New("cargo", "build", "--release", "--target", wasmTarget).
			In(manifestDir).
			WithEnv(r.cargoEnv())
		return r.Proc.Run(ctx, cmd)
	})
	if err != nil {
		return err
	}

	if err := r.addLockfile(manifestDir, b); err != nil {
		return err
	}

	wasm := filepath.Join(r.CargoTargetDir(), wasmTarget, "release", crate+".wasm")

	// Debug info and the name section would otherwise dominate the size.
	err = r.step(b, "wasm-strip", func() error {
		return r.Proc.Run(ctx, process.New("wasm-strip", wasm))
	})
	if err != nil {
		return err
	}

	sizes, err := r.measureFiles(b, wasm)
	if err != nil {
		return err
	}
	r.record(b, "wasm", sizes[0].Raw)
	r.record(b, "wasm (gz)", sizes[0].Compressed)
	return nil
}

// npmInstall installs JS dependencies unless node_modules already exists and
// records package-lock.json verbatim.
func (r *ToolRunner) npmInstall(ctx context.Context, root string, b *model.Benchmark) error {
	return r.step(b, "npm install", func() error {
		if !utils.Exists(filepath.Join(root, "node_modules")) {
			if err := r.Proc.Run(ctx, process.New("npm", "install").In(root)); err != nil {
				return err
			}
		}
		lock := filepath.Join(root, "package-lock.json")
		contents, err := os.ReadFile(lock)
		if err != nil {
			return werrors.NewIOError("failed to read", lock, err)
		}
		b.AddInput(model.PackageJSONLock{Contents: string(contents)})
		return nil
	})
}

// bundleTotals holds per-extension size sums for a bundler output directory.
type bundleTotals struct {
	js, jsGz, wasm, wasmGz uint64
}

func (r *ToolRunner) webpackBuild(ctx context.Context, root string, b *model.Benchmark) error {
	dist := filepath.Join(root, "dist")

	err := r.step(b, "webpack build", func() error {
		cmd := process.New("npm", "run", "build", "--", "-p", "--out-dir", dist).
			In(root).
			WithEnv(r.cargoEnv())
		return r.Proc.Run(ctx, cmd)
	})
	if err != nil {
		return err
	}

	var totals bundleTotals
	err = r.step(b, "measure", func() error {
		var err error
		totals, err = scanBundle(dist)
		return err
	})
	if err != nil {
		return err
	}

	r.record(b, "webpack-generated js", totals.js)
	r.record(b, "webpack-generated wasm", totals.wasm)
	r.record(b, "webpack-generated js (gz)", totals.jsGz)
	r.record(b, "webpack-generated wasm (gz)", totals.wasmGz)
	return nil
}

// scanBundle sums raw and compressed sizes of the .js and .wasm files
// directly inside dist. Other files and subdirectories are ignored.
func scanBundle(dist string) (bundleTotals, error) {
	var totals bundleTotals

	entries, err := os.ReadDir(dist)
	if err != nil {
		return totals, werrors.NewIOError("failed to read", dist, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dist, e.Name())
		ext := filepath.Ext(path)
		if ext != ".js" && ext != ".wasm" {
			continue
		}

		s, err := measure.File(path)
		if err != nil {
			return totals, fmt.Errorf("bundle output %s: %w", e.Name(), err)
		}
		if ext == ".js" {
			totals.js += s.Raw
			totals.jsGz += s.Compressed
		} else {
			totals.wasm += s.Raw
			totals.wasmGz += s.Compressed
		}
	}
	return totals, nil
}
