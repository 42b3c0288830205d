package engine

import (
	"math"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// FinancialSummary is the discount and payback outcome for a selected
// package.
type FinancialSummary struct {
	SystemCost    float64
	TotalDiscount float64
	FinalCost     float64
	Payback       types.Payback
}

// Summarize applies the percent discount, then the fixed discount and all
// accumulated voucher values, and derives the payback period from the monthly
// savings. Payback is N/A whenever the savings or the final cost make it
// meaningless.
func Summarize(price, percentDiscount, fixedDiscount float64, vouchers []types.VoucherAdjustment, monthlySavings float64) FinancialSummary {
	totalPercent := percentDiscount
	totalFixed := fixedDiscount
	for _, v := range vouchers {
		totalPercent += v.Percent
		totalFixed += v.Amount
	}
	if totalPercent > 100 {
		totalPercent = 100
	}

	afterPercent := price * (1 - totalPercent/100)
	finalCost := math.Max(0, afterPercent-totalFixed)

	s := FinancialSummary{
		SystemCost:    round2(price),
		FinalCost:     round2(finalCost),
		TotalDiscount: round2(price - finalCost),
	}
	if monthlySavings > 0 && s.FinalCost > 0 {
		s.Payback = types.PaybackYears(round2(s.FinalCost / (monthlySavings * 12)))
	}
	return s
}

// ExportCredit values the credited export energy at the SMP rate, applying
// the configured rules: capping credited energy by net usage, and discounting
// the rate once net usage exceeds the tiered threshold.
func ExportCredit(dispatch types.BatteryDispatch, smpPrice float64, rules types.EngineRules) float64 {
	credited := dispatch.NetExportKWH
	if rules.CapExportByNetUsage {
		credited = math.Min(credited, dispatch.NetUsageKWH)
	}
	rate := smpPrice
	if rules.TieredExportRate && dispatch.NetUsageKWH > rules.TieredExportThresholdKWH {
		rate *= rules.TieredExportRateFactor
	}
	return credited * rate
}
