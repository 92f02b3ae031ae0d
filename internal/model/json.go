package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type taggedCargoLock struct {
	Type InputKind `json:"type"`
	CargoLock
}

type taggedGit struct {
	Type InputKind `json:"type"`
	Git
}

type taggedRustc struct {
	Type InputKind `json:"type"`
	Rustc
}

type taggedPackageJSONLock struct {
	Type InputKind `json:"type"`
	PackageJSONLock
}

type taggedWasmPack struct {
	Type InputKind `json:"type"`
	WasmPack
}

// MarshalInput encodes in with its "type" discriminator first.
func MarshalInput(in Input) ([]byte, error) {
	switch v := in.(type) {
	case CargoLock:
		return json.Marshal(taggedCargoLock{v.Kind(), v})
	case Git:
		return json.Marshal(taggedGit{v.Kind(), v})
	case Rustc:
		return json.Marshal(taggedRustc{v.Kind(), v})
	case PackageJSONLock:
		return json.Marshal(taggedPackageJSONLock{v.Kind(), v})
	case WasmPack:
		return json.Marshal(taggedWasmPack{v.Kind(), v})
	default:
		return nil, fmt.Errorf("unsupported input %T", in)
	}
}

// UnmarshalInput decodes a tagged input.
func UnmarshalInput(data []byte) (Input, error) {
	var head struct {
		Type *InputKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if head.Type == nil {
		return nil, fmt.Errorf("missing field `type`")
	}

	switch *head.Type {
	case KindCargoLock:
		var v CargoLock
		err := decodeStrict(data, &v, "contents")
		return v, err
	case KindGit:
		var v Git
		err := decodeStrict(data, &v, "url", "rev")
		return v, err
	case KindRustc:
		var v Rustc
		err := decodeStrict(data, &v, "rev")
		return v, err
	case KindPackageJSONLock:
		var v PackageJSONLock
		err := decodeStrict(data, &v, "contents")
		return v, err
	case KindWasmPack:
		var v WasmPack
		err := decodeStrict(data, &v, "version")
		return v, err
	default:
		return nil, fmt.Errorf("unknown variant `%s`", *head.Type)
	}
}

func (b Benchmark) MarshalJSON() ([]byte, error) {
	inputs := make([]json.RawMessage, 0, len(b.Inputs))
	for _, in := range b.Inputs {
		raw, err := MarshalInput(in)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, raw)
	}
	outputs := b.Outputs
	if outputs == nil {
		outputs = []Output{}
	}
	return json.Marshal(struct {
		Name    string            `json:"name"`
		Inputs  []json.RawMessage `json:"inputs"`
		Outputs []Output          `json:"outputs"`
	}{b.Name, inputs, outputs})
}

func (b *Benchmark) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    string            `json:"name"`
		Inputs  []json.RawMessage `json:"inputs"`
		Outputs []Output          `json:"outputs"`
	}
	if err := decodeStrict(data, &raw, "name", "inputs", "outputs"); err != nil {
		return err
	}

	inputs := make([]Input, 0, len(raw.Inputs))
	for i, msg := range raw.Inputs {
		in, err := UnmarshalInput(msg)
		if err != nil {
			return fmt.Errorf("benchmark %q input %d: %w", raw.Name, i, err)
		}
		inputs = append(inputs, in)
	}

	b.Name = raw.Name
	b.Inputs = inputs
	b.Outputs = raw.Outputs
	return nil
}

func (o *Output) UnmarshalJSON(data []byte) error {
	type plain Output
	var v plain
	if err := decodeStrict(data, &v, "bytes", "name"); err != nil {
		return err
	}
	*o = Output(v)
	return nil
}

func (b Build) MarshalJSON() ([]byte, error) {
	type plain Build
	if b.Data == nil {
		b.Data = []Benchmark{}
	}
	return json.Marshal(plain(b))
}

func (b *Build) UnmarshalJSON(data []byte) error {
	type plain Build
	var v plain
	if err := decodeStrict(data, &v, "date", "data"); err != nil {
		return err
	}
	*b = Build(v)
	return nil
}

// decodeStrict unmarshals data into v after checking that every required
// field is present and not null.
func decodeStrict(data []byte, v any, required ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, name := range required {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("missing field `%s`", name)
		}
	}
	return json.Unmarshal(data, v)
}

// DecodeBenchmarks reads a measurement document: a JSON array of benchmarks.
func DecodeBenchmarks(r io.Reader) ([]Benchmark, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var benchmarks []Benchmark
	if err := json.Unmarshal(data, &benchmarks); err != nil {
		return nil, err
	}
	if benchmarks == nil {
		return nil, fmt.Errorf("expected a sequence of benchmarks")
	}
	return benchmarks, nil
}

// EncodeBenchmarks writes benchmarks as a compact JSON array.
func EncodeBenchmarks(w io.Writer, benchmarks []Benchmark) error {
	if benchmarks == nil {
		benchmarks = []Benchmark{}
	}
	data, err := json.Marshal(benchmarks)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
