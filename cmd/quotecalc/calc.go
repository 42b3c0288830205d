package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/engine"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

var calcParams struct {
	amount         float64
	sunPeakHour    float64
	morningPercent float64
	panelTypeW     int
	productID      string
	smpPrice       float64
	afaRate        float64
	historicalAFA  float64
	pctDiscount    float64
	fixedDiscount  float64
	batteryKWH     float64
	overridePanels int
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute one quotation and print the result as JSON",
	RunE:  runCalc,
}

func init() {
	f := calcCmd.Flags()
	f.Float64Var(&calcParams.amount, "amount", 0, "current monthly bill (required)")
	f.Float64Var(&calcParams.sunPeakHour, "sun-peak-hour", types.ReferenceSunPeakHour, "assumed daily peak sun hours")
	f.Float64Var(&calcParams.morningPercent, "morning-percent", 50, "share of usage during daylight (1-100)")
	f.IntVar(&calcParams.panelTypeW, "panel-watt", 620, "panel wattage to quote")
	f.StringVar(&calcParams.productID, "product-id", "", "select a specific catalog product")
	f.Float64Var(&calcParams.smpPrice, "smp-price", types.MinSMPPrice, "per-kWh export rate")
	f.Float64Var(&calcParams.afaRate, "afa-rate", 0, "fuel adjustment rate for the projected bills")
	f.Float64Var(&calcParams.historicalAFA, "historical-afa-rate", 0, "fuel adjustment rate on the bill being matched")
	f.Float64Var(&calcParams.pctDiscount, "percent-discount", 0, "percent discount on the system price")
	f.Float64Var(&calcParams.fixedDiscount, "fixed-discount", 0, "fixed discount on the system price")
	f.Float64Var(&calcParams.batteryKWH, "battery-kwh", 0, "battery capacity (0 = no battery)")
	f.IntVar(&calcParams.overridePanels, "panels", 0, "override the recommended panel count")
	cobra.CheckErr(calcCmd.MarkFlagRequired("amount"))
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	src, err := openSource(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	tariffs, err := src.Tariffs(ctx)
	if err != nil {
		return fmt.Errorf("reading tariff table: %w", err)
	}
	catalog, err := src.Packages(ctx)
	if err != nil {
		return fmt.Errorf("reading package catalog: %w", err)
	}

	params := types.QuoteParams{
		Amount:              calcParams.amount,
		SunPeakHour:         calcParams.sunPeakHour,
		MorningUsagePercent: calcParams.morningPercent,
		PanelTypeW:          calcParams.panelTypeW,
		ProductID:           calcParams.productID,
		SMPPrice:            calcParams.smpPrice,
		AFARate:             calcParams.afaRate,
		HistoricalAFARate:   calcParams.historicalAFA,
		PercentDiscount:     calcParams.pctDiscount,
		FixedDiscount:       calcParams.fixedDiscount,
		BatterySizeKWH:      calcParams.batteryKWH,
		OverridePanels:      calcParams.overridePanels,
	}

	result, err := engine.NewEngine().Calculate(ctx, params, tariffs, catalog)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
