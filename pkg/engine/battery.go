package engine

import (
	"math"
	"sort"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// SimulateDispatch runs the bounded daily battery dispatch for one battery
// capacity. The battery can discharge no more per day than the excess solar
// that can fill it, no more than the night actually needs, and no more than
// its rated capacity.
func SimulateDispatch(monthlyUsageKWH, monthlySolarKWH, morningUsagePercent, batteryCapacityKWH float64) types.BatteryDispatch {
	morningUsage := monthlyUsageKWH * morningUsagePercent / 100

	excessSolarPerDay := math.Max(0, monthlySolarKWH-morningUsage) / daysPerMonth
	nightUsagePerDay := math.Max(0, monthlyUsageKWH-morningUsage) / daysPerMonth

	daily := math.Min(excessSolarPerDay, math.Min(nightUsagePerDay, batteryCapacityKWH))
	return dispatchAt(monthlyUsageKWH, monthlySolarKWH, morningUsagePercent, daily*daysPerMonth)
}

// dispatchAt builds the dispatch record for a fixed effective monthly
// discharge, which must already be within the physical bound.
func dispatchAt(monthlyUsageKWH, monthlySolarKWH, morningUsagePercent, monthlyDischargeKWH float64) types.BatteryDispatch {
	morningUsage := monthlyUsageKWH * morningUsagePercent / 100
	selfConsumption := math.Min(monthlySolarKWH, morningUsage)

	return types.BatteryDispatch{
		DailyDischargeKWH:   monthlyDischargeKWH / daysPerMonth,
		MonthlyDischargeKWH: monthlyDischargeKWH,
		NetUsageKWH:         math.Max(0, monthlyUsageKWH-selfConsumption-monthlyDischargeKWH),
		NetExportKWH:        math.Max(0, monthlySolarKWH-morningUsage-monthlyDischargeKWH),
	}
}

// OptimizeDispatch picks the effective monthly discharge, up to what
// SimulateDispatch allows for the capacity, that yields the greatest
// savings, and returns it with the matched after-tariff row.
//
// Every discharged kWh removes a kWh of credited export, while the bill only
// drops when net usage crosses a tariff band boundary, so discharging deeper
// into a band than its last whole-kWh entry point can only lose money. The
// candidate discharges are therefore zero plus the band entry points; they
// depend only on the table, so a bigger battery widens the feasible range
// and the chosen savings never decrease with capacity.
func OptimizeDispatch(tariffs []types.TariffRow, before types.TariffRow, monthlyUsageKWH, monthlySolarKWH, morningUsagePercent, batteryCapacityKWH, afaRate, smpPrice float64, rules types.EngineRules) (types.BatteryDispatch, types.TariffRow, error) {
	bound := SimulateDispatch(monthlyUsageKWH, monthlySolarKWH, morningUsagePercent, batteryCapacityKWH)
	zero := dispatchAt(monthlyUsageKWH, monthlySolarKWH, morningUsagePercent, 0)

	cands := []float64{0}
	add := func(d float64) {
		if d > 0 && d <= bound.MonthlyDischargeKWH {
			cands = append(cands, d)
		}
	}
	for _, r := range tariffs {
		// the last whole kWh before the lookup drops below this row
		add(zero.NetUsageKWH - (r.UsageKWH - 1))
	}
	if rules.TieredExportRate {
		// landing exactly on the threshold keeps the full export rate
		add(zero.NetUsageKWH - rules.TieredExportThresholdKWH)
	}
	// smallest discharge wins ties, so the battery cycles no more than it
	// has to
	sort.Float64s(cands)

	var best types.BatteryDispatch
	var bestRow types.TariffRow
	bestSavings := math.Inf(-1)
	for _, d := range cands {
		disp := dispatchAt(monthlyUsageKWH, monthlySolarKWH, morningUsagePercent, d)
		row, err := MatchByUsage(tariffs, disp.NetUsageKWH)
		if err != nil {
			return types.BatteryDispatch{}, types.TariffRow{}, err
		}
		s := Reconcile(before, row, afaRate).Totals.Delta + ExportCredit(disp, smpPrice, rules)
		if s > bestSavings {
			best, bestRow, bestSavings = disp, row, s
		}
	}
	return best, bestRow, nil
}

// SelfConsumption returns the solar energy consumed directly during daylight
// hours rather than exported or stored.
func SelfConsumption(monthlyUsageKWH, monthlySolarKWH, morningUsagePercent float64) float64 {
	morningUsage := monthlyUsageKWH * morningUsagePercent / 100
	return math.Min(monthlySolarKWH, morningUsage)
}
