package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/log"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// Engine runs the quotation pipeline. It is stateless and side-effect free:
// identical inputs and identical reference-data snapshots always produce
// identical results, and concurrent calls are fully independent.
type Engine struct {
}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate converts a current electricity bill into a recommended system
// with a full before/after financial comparison. The tariff table and
// package catalog are read-only snapshots supplied once per call; the engine
// never re-reads them mid-calculation.
func (e *Engine) Calculate(
	ctx context.Context,
	params types.QuoteParams,
	tariffs []types.TariffRow,
	catalog []types.PackageOption,
) (types.QuoteResult, error) {
	if err := validateParams(params); err != nil {
		return types.QuoteResult{}, err
	}
	if len(tariffs) == 0 {
		return types.QuoteResult{}, ErrNoTariffData
	}

	rules := params.Rules
	if rules == (types.EngineRules{}) {
		rules = types.DefaultEngineRules()
	}

	// 1. Match the current bill to a tariff row at the historical AFA rate to
	// recover the monthly usage.
	current, err := MatchByBill(tariffs, params.Amount, params.HistoricalAFARate)
	if err != nil {
		return types.QuoteResult{}, err
	}
	monthlyUsage := current.UsageKWH

	log.Ctx(ctx).DebugContext(ctx, "matched current bill",
		slog.Float64("amount", params.Amount),
		slog.Float64("usageKWH", monthlyUsage),
		slog.Float64("adjustedCost", current.AdjustedCost(params.HistoricalAFARate)),
	)

	// 2. Size the array. An explicit override replaces the recommendation for
	// all downstream steps but is still reported separately.
	recommended := RecommendPanels(monthlyUsage, params.SunPeakHour)
	actual := recommended
	overrideApplied := false
	if params.OverridePanels >= 1 {
		actual = params.OverridePanels
		overrideApplied = true
	}

	// 3. Pick the cheapest matching bundle. No match is a degraded result,
	// not an error: savings figures stay valid without a package.
	selected := SelectPackage(catalog, actual, params.PanelTypeW, params.ProductID)
	wattage := params.PanelTypeW
	if selected != nil {
		wattage = selected.WattageW
	}
	if selected == nil {
		log.Ctx(ctx).DebugContext(ctx, "no package matched",
			slog.Int("panelQty", actual),
			slog.Int("wattageW", params.PanelTypeW),
			slog.String("productID", params.ProductID),
		)
	}

	// 4. Model generation and run the battery dispatch, always alongside a
	// zero-capacity baseline so the battery's incremental value can be
	// reported. The dispatch is economically bounded: the battery discharges
	// only as far as it improves the savings, so a bigger battery can widen
	// the result but never worsen it.
	dailyGen, monthlyGen := Generation(actual, wattage, params.SunPeakHour)
	selfConsumption := SelfConsumption(monthlyUsage, monthlyGen, params.MorningUsagePercent)

	dispatch, afterRow, err := OptimizeDispatch(tariffs, current,
		monthlyUsage, monthlyGen, params.MorningUsagePercent, params.BatterySizeKWH,
		params.AFARate, params.SMPPrice, rules)
	if err != nil {
		return types.QuoteResult{}, err
	}
	baseline, baselineAfterRow, err := OptimizeDispatch(tariffs, current,
		monthlyUsage, monthlyGen, params.MorningUsagePercent, 0,
		params.AFARate, params.SMPPrice, rules)
	if err != nil {
		return types.QuoteResult{}, err
	}

	// 5. Reconcile the before/after bills for both scenarios.
	comparison := Reconcile(current, afterRow, params.AFARate)
	baselineComparison := Reconcile(current, baselineAfterRow, params.AFARate)

	// 6. Savings = bill delta plus credited export.
	exportCredit := ExportCredit(dispatch, params.SMPPrice, rules)
	baselineExportCredit := ExportCredit(baseline, params.SMPPrice, rules)
	monthlySavings := round2(comparison.Totals.Delta + exportCredit)
	baselineSavings := round2(baselineComparison.Totals.Delta + baselineExportCredit)

	result := types.QuoteResult{
		RecommendedPanels:      recommended,
		ActualPanels:           actual,
		PanelAdjustment:        actual - recommended,
		OverrideApplied:        overrideApplied,
		SelectedPackage:        selected,
		SolarConfig:            solarConfig(actual, wattage, params.BatterySizeKWH, selected),
		MonthlySavings:         sanitize(monthlySavings),
		ConfidenceLevel:        Confidence(params.SunPeakHour),
		PaybackPeriod:          types.Payback{},
		BillComparison:         comparison,
		BaselineBillComparison: baselineComparison,
		Details: types.QuoteDetails{
			MonthlyUsageKWH:        monthlyUsage,
			MatchedTariffKWH:       current.UsageKWH,
			CurrentBill:            round2(current.AdjustedCost(params.HistoricalAFARate)),
			DailyGenerationKWH:     sanitize(dailyGen),
			MonthlyGenerationKWH:   sanitize(monthlyGen),
			SelfConsumptionKWH:     sanitize(selfConsumption),
			Dispatch:               dispatch,
			Baseline:               baseline,
			ExportCredit:           sanitize(round2(exportCredit)),
			BaselineExportCredit:   sanitize(round2(baselineExportCredit)),
			BaselineMonthlySavings: sanitize(baselineSavings),
		},
		Charts: types.Charts{
			Load:       LoadCurve(monthlyUsage/daysPerMonth, params.MorningUsagePercent),
			Generation: GenerationCurve(dailyGen),
		},
	}

	// 7. Discounts, vouchers and payback only exist when a package was found.
	if selected != nil {
		summary := Summarize(selected.Price, params.PercentDiscount, params.FixedDiscount, params.Vouchers, result.MonthlySavings)
		result.SystemCostBeforeDiscount = finitePtr(summary.SystemCost)
		result.TotalDiscountAmount = finitePtr(summary.TotalDiscount)
		result.FinalSystemCost = finitePtr(summary.FinalCost)
		result.PaybackPeriod = summary.Payback
	}

	log.Ctx(ctx).DebugContext(ctx, "quote calculated",
		slog.Int("recommendedPanels", recommended),
		slog.Int("actualPanels", actual),
		slog.Bool("packageFound", selected != nil),
		slog.Float64("monthlySavings", result.MonthlySavings),
	)

	return result, nil
}

// solarConfig builds the descriptive system string shown on the quotation.
func solarConfig(panels, wattageW int, batteryKWH float64, pkg *types.PackageOption) string {
	desc := fmt.Sprintf("%d x %dW panels", panels, wattageW)
	if batteryKWH > 0 {
		desc += fmt.Sprintf(" + %.1fkWh battery", batteryKWH)
	}
	if pkg != nil {
		desc += fmt.Sprintf(" (%s)", pkg.Name)
	}
	return desc
}

// sanitize converts any non-finite intermediate value to zero so NaN and Inf
// never reach the output record.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// finitePtr returns the value as a pointer, or nil when it is not finite, so
// a cost that cannot be computed surfaces as null rather than a
// plausible-looking number.
func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
