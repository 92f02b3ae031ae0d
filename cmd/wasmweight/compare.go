package main

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"wasmweight/internal/benchmark"
	"wasmweight/internal/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var compareThreshold float64

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

var compareCmd = &cobra.Command{
	Use:   "compare <previous> <current>",
	Short: "Compare two measurement documents",
	Long: `Shows the size change of every output present in both documents, keyed by
benchmark and output name. Outputs that grew by more than --threshold percent
are flagged.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prev, err := benchmark.ReadDocument(args[0])
		if err != nil {
			return err
		}
		curr, err := benchmark.ReadDocument(args[1])
		if err != nil {
			return err
		}

		comps := benchmark.Compare(prev, curr)
		if len(comps) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No outputs in common.")
			return nil
		}
		printComparison(cmd, comps, compareThreshold)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Float64Var(&compareThreshold, "threshold", 1.0, "Percentage growth flagged as a regression")
}

func printComparison(cmd *cobra.Command, comps []benchmark.Comparison, threshold float64) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "BENCHMARK\tOUTPUT\tPREVIOUS\tCURRENT\tDIFF\tSTATUS")

	for _, c := range comps {
		status := "OK"
		if c.Diff > threshold {
			status = "GREW"
		} else if c.Diff < -threshold {
			status = "SHRANK"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Benchmark, c.Output, utils.FormatBytes(c.Prev), utils.FormatBytes(c.Curr), utils.FormatPercent(c.Diff), status)
	}
	w.Flush()
	writeTable(cmd, buf.String())
}

// writeTable prints an aligned table, styling its first line as the header.
func writeTable(cmd *cobra.Command, table string) {
	header, body, _ := strings.Cut(table, "\n")
	fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render(header))
	fmt.Fprint(cmd.OutOrStdout(), body)
}
