package benchmark

import (
	"bufio"
	"context"
	"strings"

	werrors "wasmweight/internal/errors"
	"wasmweight/internal/lockfile"
	"wasmweight/internal/model"
	"wasmweight/internal/process"
)

const rustcCommitPrefix = "commit-hash: "

// ParseRustcCommit extracts the commit hash from `rustc -vV` output.
func ParseRustcCommit(output string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, rustcCommitPrefix) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		return fields[1], nil
	}
	return "", werrors.Configurationf("failed to find rustc commit hash in `rustc -vV` output")
}

func (r *ToolRunner) addRustcVersion(ctx context.Context, b *model.Benchmark) error {
	return r.step(b, "rustc version", func() error {
		out, err := r.Proc.Output(ctx, process.New("rustc", "-vV"))
		if err != nil {
			return err
		}
		rev, err := ParseRustcCommit(out)
		if err != nil {
			return err
		}
		b.AddInput(model.Rustc{Rev: rev})
		return nil
	})
}

func (r *ToolRunner) addLockfile(dir string, b *model.Benchmark) error {
	return r.step(b, "lockfile", func() error {
		contents, err := lockfile.Load(dir)
		if err != nil {
			return err
		}
		b.AddInput(model.CargoLock{Contents: contents})
		return nil
	})
}

func (r *ToolRunner) cargoEnv() string {
	return "CARGO_TARGET_DIR=" + r.CargoTargetDir()
}
