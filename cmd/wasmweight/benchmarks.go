package main

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"wasmweight/internal/benchmark"

	"github.com/spf13/cobra"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "List the benchmarks measure accepts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var buf bytes.Buffer
		w := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tBUILD\tREPOSITORY")
		for _, d := range benchmark.Definitions() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Key, d.Name, d.Kind, d.URL)
		}
		w.Flush()
		writeTable(cmd, buf.String())
	},
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}
