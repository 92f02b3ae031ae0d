package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"wasmweight/internal/benchmark"
	"wasmweight/internal/config"
	"wasmweight/internal/model"
	"wasmweight/internal/notify"
	"wasmweight/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// executeCommand executes a cobra command and returns its output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	resetFlags(root)
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				return
			}
			panic(r)
		}
	}()
	root.SetArgs(args)
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	err := root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupCLI isolates a test from the working directory, config and factories.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	viper.Reset()

	oldRunner, oldNotifier, oldCfg := newBenchmarkRunner, newNotifier, cfgFile
	t.Cleanup(func() {
		newBenchmarkRunner, newNotifier, cfgFile = oldRunner, oldNotifier, oldCfg
		viper.Reset()
	})
	newNotifier = func(config.SlackConfig) notify.Notifier { return notify.Nop{} }
	return dir
}

// stubRunner returns canned results keyed by benchmark key.
type stubRunner struct {
	rec     *telemetry.Recorder
	results map[string]model.Benchmark
	failOn  string
	ran     []string
}

func (s *stubRunner) Run(ctx context.Context, def benchmark.Definition) (model.Benchmark, error) {
	s.ran = append(s.ran, def.Key)
	if def.Key == s.failOn {
		return model.Benchmark{}, fmt.Errorf("benchmark %s: cargo build: exit status 101", def.Name)
	}
	b, ok := s.results[def.Key]
	if !ok {
		b = model.NewBenchmark(def.Name)
		b.AddOutput("wasm", 100)
	}
	for _, o := range b.Outputs {
		s.rec.SetArtifactBytes(b.Name, o.Name, o.Bytes)
	}
	return b, nil
}

// recordingNotifier keeps every message it is asked to send.
type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(ctx context.Context, message string) error {
	n.messages = append(n.messages, message)
	return nil
}
