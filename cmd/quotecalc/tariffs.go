package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tariffsAFARate float64

var tariffsCmd = &cobra.Command{
	Use:   "tariffs",
	Short: "List the tariff table with adjusted totals",
	RunE:  runTariffs,
}

func init() {
	tariffsCmd.Flags().Float64Var(&tariffsAFARate, "afa-rate", 0, "fuel adjustment rate to apply")
	rootCmd.AddCommand(tariffsCmd)
}

func runTariffs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	src, err := openSource(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	rows, err := src.Tariffs(ctx)
	if err != nil {
		return fmt.Errorf("reading tariff table: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tariff rows found")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%10s  %12s  %12s\n", "kWh", "Base", "Adjusted")
	fmt.Fprintln(out, "----------------------------------------")
	for _, row := range rows {
		fmt.Fprintf(out, "%10.0f  %12.2f  %12.2f\n",
			row.UsageKWH, row.BaseCost(), row.AdjustedCost(tariffsAFARate))
	}
	fmt.Fprintf(out, "%d rows (AFA rate %.4f)\n", len(rows), tariffsAFARate)
	return nil
}
