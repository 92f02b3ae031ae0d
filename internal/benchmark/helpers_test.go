package benchmark

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	werrors "wasmweight/internal/errors"
	"wasmweight/internal/process"

	"github.com/stretchr/testify/require"
)

const testLock = `[[package]]
name = "wasm-bindgen"
version = "0.2.84"
`

const rustcVerbose = `rustc 1.70.0 (90c541806 2023-05-31)
binary: rustc
commit-hash: 90c541806f23a127002de5b4038be731ba1458ca
commit-date: 2023-05-31
host: x86_64-unknown-linux-gnu
release: 1.70.0
LLVM version: 16.0.2
`

// fakeGit stands in for git. Clone creates the destination and lets the test
// populate it like a real checkout.
type fakeGit struct {
	rev      string
	cloned   []string
	cloneErr error
	populate func(dest string) error
}

func (g *fakeGit) Clone(ctx context.Context, url, dest string) error {
	if g.cloneErr != nil {
		return g.cloneErr
	}
	g.cloned = append(g.cloned, url)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	if g.populate != nil {
		return g.populate(dest)
	}
	return nil
}

func (g *fakeGit) CurrentCommitSHA(ctx context.Context, dir string) (string, error) {
	return g.rev, nil
}

func (g *fakeGit) RepoExists(dir string) bool {
	_, err := os.Stat(dir)
	return err == nil
}

// fakeTools stands in for the external build tools. Handlers keyed by the
// command name plus its first argument emulate the files a tool produces.
type fakeTools struct {
	calls    []process.Command
	outputs  map[string]string
	handlers map[string]func(cmd process.Command) error
	failOn   string
}

func newFakeTools() *fakeTools {
	return &fakeTools{
		outputs: map[string]string{
			"rustc -vV":           rustcVerbose,
			"wasm-pack --version": "wasm-pack 0.12.1\n",
		},
		handlers: map[string]func(cmd process.Command) error{},
	}
}

func key(cmd process.Command) string {
	if len(cmd.Args) == 0 {
		return cmd.Name
	}
	return cmd.Name + " " + cmd.Args[0]
}

func (f *fakeTools) Run(ctx context.Context, cmd process.Command) error {
	f.calls = append(f.calls, cmd)
	if f.failOn != "" && key(cmd) == f.failOn {
		return &werrors.ExecutionError{Command: cmd.String(), ExitCode: 101, Status: "exit status: 101"}
	}
	if h, ok := f.handlers[key(cmd)]; ok {
		return h(cmd)
	}
	return nil
}

func (f *fakeTools) Output(ctx context.Context, cmd process.Command) (string, error) {
	f.calls = append(f.calls, cmd)
	if f.failOn != "" && key(cmd) == f.failOn {
		return "", &werrors.ExecutionError{Command: cmd.String(), ExitCode: 1, Status: "exit status: 1"}
	}
	return f.outputs[key(cmd)], nil
}

func (f *fakeTools) called(k string) int {
	n := 0
	for _, c := range f.calls {
		if key(c) == k {
			n++
		}
	}
	return n
}

func (f *fakeTools) callKeys() []string {
	keys := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		keys = append(keys, key(c))
	}
	return keys
}

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func withLockfile(dest string) error {
	return os.WriteFile(filepath.Join(dest, "Cargo.lock"), []byte(testLock), 0644)
}

func envValue(cmd process.Command, name string) string {
	for _, kv := range cmd.Env {
		if strings.HasPrefix(kv, name+"=") {
			return strings.TrimPrefix(kv, name+"=")
		}
	}
	return ""
}
