package main

import (
	"wasmweight/internal/benchmark"
	"wasmweight/internal/config"
	"wasmweight/internal/git"
	"wasmweight/internal/notify"
	"wasmweight/internal/process"
	"wasmweight/internal/store"
	"wasmweight/internal/telemetry"
)

// Factories are variables so tests can swap in fakes.
var (
	newBenchmarkRunner = func(root string, rec *telemetry.Recorder) benchmark.Runner {
		proc := process.NewExecRunner()
		r := benchmark.NewToolRunner(root, git.NewClient(proc), proc)
		r.Recorder = rec
		return r
	}

	newGitClient = func() git.IClient {
		return git.NewClient(process.NewExecRunner())
	}

	newStore = func(cfg config.DBConfig) (store.Store, error) {
		return store.New(store.Config{Type: cfg.Type, URL: cfg.URL})
	}

	newNotifier = func(cfg config.SlackConfig) notify.Notifier {
		return notify.New(cfg.Token, cfg.Channel)
	}
)
