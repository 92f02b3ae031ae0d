package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"wasmweight/internal/config"
	werrors "wasmweight/internal/errors"
	"wasmweight/internal/telemetry"

	"github.com/spf13/cobra"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wasmweight",
	Short: "Track the size of Rust-generated WebAssembly over time",
	Long: `wasmweight builds a fixed set of Rust and WebAssembly projects, records the
exact inputs of every build together with the sizes of the artifacts it
produced, and turns archived measurements into a time series for the
website.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure, printing the
// error followed by each of its causes.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		stop()
		exit(1)
	}
}

func printError(w io.Writer, err error) {
	msgs := werrors.Chain(err)
	if len(msgs) == 0 {
		msgs = []string{err.Error()}
	}
	fmt.Fprintf(w, "error: %s\n", msgs[0])
	for _, cause := range msgs[1:] {
		fmt.Fprintf(w, "\tcaused by: %s\n", cause)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./wasmweight.yaml)")
	pf.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	pf.String("log-file", "", "Also write logs to this file")

	bindTo(pf, "verbose", "verbose")
	bindTo(pf, "log-file", "log_file")
}

// initConfig loads settings, binds the flags of cmd and configures logging.
func initConfig(cmd *cobra.Command) error {
	if err := config.Load(cfgFile); err != nil {
		return err
	}
	if err := bindFlags(cmd); err != nil {
		return err
	}

	cfg := config.Get()
	telemetry.InitLogger(cfg.Verbose, cfg.LogFile)
	return cfg.Validate()
}
