package engine

import "math"

const (
	// systemDerateFactor is an empirical whole-system derate covering
	// inverter, soiling and orientation losses.
	systemDerateFactor = 0.62

	// daysPerMonth is the fixed month length used throughout the model.
	// Not calendar-accurate.
	daysPerMonth = 30
)

// RecommendPanels returns the panel count needed to offset the given monthly
// usage at the assumed peak-sun-hours, never less than one panel.
func RecommendPanels(monthlyUsageKWH, sunPeakHours float64) int {
	n := int(math.Floor(monthlyUsageKWH / sunPeakHours / daysPerMonth / systemDerateFactor))
	if n < 1 {
		return 1
	}
	return n
}

// Generation returns the expected daily and monthly energy yield for a panel
// array at the assumed peak-sun-hours.
func Generation(panelCount, wattageW int, sunPeakHours float64) (dailyKWH, monthlyKWH float64) {
	dailyKWH = float64(panelCount) * float64(wattageW) * sunPeakHours / 1000
	monthlyKWH = dailyKWH * daysPerMonth
	return dailyKWH, monthlyKWH
}
