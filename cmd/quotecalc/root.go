package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/refdata"
)

var (
	tariffFile  string
	catalogFile string
)

var rootCmd = &cobra.Command{
	Use:   "quotecalc",
	Short: "Compute solar quotations from the command line",
	Long: `Quotecalc runs the same quotation engine the HTTP API uses, against
reference data from YAML files or the built-in defaults. Useful for
checking a quote by hand or diffing engine revisions.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tariffFile, "tariffs", "", "tariff table YAML file (default: built-in table)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "packages", "", "package catalog YAML file (default: built-in catalog)")
}

// openSource returns the reference-data source selected by the persistent
// flags. Both files must be given together.
func openSource(ctx context.Context) (refdata.Source, error) {
	if tariffFile == "" && catalogFile == "" {
		return refdata.NewStaticSource(refdata.DefaultTariffTable(), refdata.DefaultCatalog()), nil
	}
	if tariffFile == "" || catalogFile == "" {
		return nil, fmt.Errorf("--tariffs and --packages must be given together")
	}
	src := refdata.NewFileSource(tariffFile, catalogFile)
	if err := src.Init(ctx); err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}
	return src, nil
}
