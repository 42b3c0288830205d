package engine

import (
	"math"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// MatchByBill selects the row whose adjusted total (base cost plus usage
// times afaRate) is the greatest value not exceeding targetAmount. If the
// target is below the table minimum it falls back to the row with the
// smallest adjusted total. Ties are broken by first occurrence.
func MatchByBill(rows []types.TariffRow, targetAmount, afaRate float64) (types.TariffRow, error) {
	if len(rows) == 0 {
		return types.TariffRow{}, ErrNoTariffData
	}

	bestIdx := -1
	var bestCost float64
	minIdx := 0
	minCost := rows[0].AdjustedCost(afaRate)

	for i, r := range rows {
		cost := r.AdjustedCost(afaRate)
		if cost < minCost {
			minCost = cost
			minIdx = i
		}
		if cost <= targetAmount && (bestIdx == -1 || cost > bestCost) {
			bestIdx = i
			bestCost = cost
		}
	}

	if bestIdx == -1 {
		return rows[minIdx], nil
	}
	return rows[bestIdx], nil
}

// MatchByUsage is the reverse lookup: it returns the row with the greatest
// UsageKWH not exceeding floor(usageKWH). Usage at or below zero, or below
// the table minimum, returns the lowest-usage row. The floor is a deliberate
// integer-band convention for the lookup table, even though it discards
// fractional kWh.
func MatchByUsage(rows []types.TariffRow, usageKWH float64) (types.TariffRow, error) {
	if len(rows) == 0 {
		return types.TariffRow{}, ErrNoTariffData
	}

	lowIdx := 0
	for i, r := range rows {
		if r.UsageKWH < rows[lowIdx].UsageKWH {
			lowIdx = i
		}
	}
	if usageKWH <= 0 {
		return rows[lowIdx], nil
	}

	banded := math.Floor(usageKWH)
	bestIdx := -1
	for i, r := range rows {
		if r.UsageKWH <= banded && (bestIdx == -1 || r.UsageKWH > rows[bestIdx].UsageKWH) {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return rows[lowIdx], nil
	}
	return rows[bestIdx], nil
}
