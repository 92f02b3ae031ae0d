package main

import (
	"fmt"

	"wasmweight/internal/benchmark"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <output> <input>...",
	Short: "Concatenate measurement documents",
	Long: `Reads each input measurement document in order and writes their benchmarks,
concatenated, to the output. Duplicates are kept.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, inputs := args[0], args[1:]

		merged, err := benchmark.Merge(inputs)
		if err != nil {
			return err
		}
		if err := benchmark.WriteDocument(dst, merged); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Merged %d document(s) into %s (%d benchmarks)\n", len(inputs), dst, len(merged))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
