package benchmark

import (
	"context"

	"wasmweight/internal/model"
)

// BuildKind selects the build-tool family a benchmark is measured with.
type BuildKind int

const (
	// KindCargo compiles a crate straight to wasm32-unknown-unknown.
	KindCargo BuildKind = iota
	// KindWasmPack builds with wasm-pack, measuring the JS shim and the wasm.
	KindWasmPack
	// KindWebpack runs wasm-pack, then bundles the result with webpack.
	KindWebpack
)

func (k BuildKind) String() string {
	switch k {
	case KindCargo:
		return "cargo"
	case KindWasmPack:
		return "wasm-pack"
	case KindWebpack:
		return "webpack"
	default:
		return "unknown"
	}
}

// Definition identifies one benchmark and how to build it.
type Definition struct {
	// Key is the identifier accepted on the command line.
	Key string
	// Name is recorded in the measurement document.
	Name string
	URL  string
	Kind BuildKind
	// Subdir is the crate directory relative to the checkout root.
	Subdir string
	Crate  string
}

// Runner defines the interface for measuring one benchmark.
type Runner interface {
	Run(ctx context.Context, def Definition) (model.Benchmark, error)
}
