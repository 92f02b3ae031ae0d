// Package model defines the measurement document: benchmarks, the provenance
// inputs that produced them and the artifact sizes they yielded.
package model

// Benchmark is one measured project together with its provenance and sizes.
// It is built up during a single run and treated as read-only afterwards.
type Benchmark struct {
	Name    string   `json:"name"`
	Inputs  []Input  `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

// NewBenchmark returns an empty benchmark named name.
func NewBenchmark(name string) Benchmark {
	return Benchmark{
		Name:    name,
		Inputs:  []Input{},
		Outputs: []Output{},
	}
}

// AddInput records a provenance fact. Order is the order of the steps that
// produced them.
func (b *Benchmark) AddInput(in Input) {
	b.Inputs = append(b.Inputs, in)
}

// AddOutput records one measured artifact size.
func (b *Benchmark) AddOutput(name string, bytes uint64) {
	b.Outputs = append(b.Outputs, Output{Bytes: bytes, Name: name})
}

// Output is a single measured artifact.
type Output struct {
	Bytes uint64 `json:"bytes"`
	Name  string `json:"name"`
}

// Build is one dated snapshot of a measurement document.
type Build struct {
	Date string      `json:"date"`
	Data []Benchmark `json:"data"`
}

// InputKind is the serialized discriminator of an Input variant.
type InputKind string

const (
	KindCargoLock       InputKind = "cargo-lock"
	KindGit             InputKind = "git"
	KindRustc           InputKind = "rustc"
	KindPackageJSONLock InputKind = "package-json-lock"
	KindWasmPack        InputKind = "wasm-pack"
)

// Input is a provenance record. The set of variants is closed: CargoLock,
// Git, Rustc, PackageJSONLock and WasmPack.
type Input interface {
	Kind() InputKind
	sealed()
}

// CargoLock holds a Cargo.lock normalized to JSON.
type CargoLock struct {
	Contents string `json:"contents"`
}

// Git records the clone URL and resolved commit of a checkout.
type Git struct {
	URL string `json:"url"`
	Rev string `json:"rev"`
}

// Rustc records the compiler's commit hash.
type Rustc struct {
	Rev string `json:"rev"`
}

// PackageJSONLock holds the raw package-lock.json contents.
type PackageJSONLock struct {
	Contents string `json:"contents"`
}

// WasmPack records the packaging tool's version string as printed.
type WasmPack struct {
	Version string `json:"version"`
}

func (CargoLock) Kind() InputKind       { return KindCargoLock }
func (Git) Kind() InputKind             { return KindGit }
func (Rustc) Kind() InputKind           { return KindRustc }
func (PackageJSONLock) Kind() InputKind { return KindPackageJSONLock }
func (WasmPack) Kind() InputKind        { return KindWasmPack }

func (CargoLock) sealed()       {}
func (Git) sealed()             {}
func (Rustc) sealed()           {}
func (PackageJSONLock) sealed() {}
func (WasmPack) sealed()        {}
