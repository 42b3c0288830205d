package engine

import (
	"github.com/shopspring/decimal"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// round2 rounds a currency value to 2 decimal places.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Breakdown builds the rate-component breakdown for one tariff row at the
// given AFA rate.
func Breakdown(row types.TariffRow, afaRate float64) types.BillBreakdown {
	afa := row.UsageKWH * afaRate
	b := types.BillBreakdown{
		Usage:    round2(row.UsageCharge),
		Network:  round2(row.NetworkCharge),
		Capacity: round2(row.CapacityCharge),
		SST:      round2(row.SSTCharge),
		EEI:      round2(row.EEICharge),
		AFA:      round2(afa),
	}
	b.Total = round2(b.Usage + b.Network + b.Capacity + b.SST + b.EEI + b.AFA)
	return b
}

// Reconcile builds the full before/after comparison for a pair of tariff
// rows at the given AFA rate. Every delta is before - after, so a positive
// delta is a saving.
func Reconcile(before, after types.TariffRow, afaRate float64) types.BillComparison {
	bb := Breakdown(before, afaRate)
	ab := Breakdown(after, afaRate)

	items := []types.BillComparisonItem{
		{Component: "usage", Before: bb.Usage, After: ab.Usage},
		{Component: "network", Before: bb.Network, After: ab.Network},
		{Component: "capacity", Before: bb.Capacity, After: ab.Capacity},
		{Component: "sst", Before: bb.SST, After: ab.SST},
		{Component: "eei", Before: bb.EEI, After: ab.EEI},
		{Component: "afa", Before: bb.AFA, After: ab.AFA},
	}
	for i := range items {
		items[i].Delta = round2(items[i].Before - items[i].After)
	}

	return types.BillComparison{
		BeforeBreakdown: bb,
		AfterBreakdown:  ab,
		Items:           items,
		Totals: types.BillComparisonTotals{
			Before: bb.Total,
			After:  ab.Total,
			Delta:  round2(bb.Total - ab.Total),
		},
	}
}
