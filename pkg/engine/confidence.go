package engine

import (
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// confidencePointsPerTenth is how many percentage points of confidence are
// lost for every 0.1h of assumed irradiance above the reference.
const confidencePointsPerTenth = 7.0

// Confidence scores how credible the assumed peak-sun-hours input is. At or
// below the reference value the score is 90; aggressive irradiance
// assumptions overstate projected yield, so each 0.1h above the reference
// costs 7 points, floored at 0.
func Confidence(sunPeakHour float64) float64 {
	c := 90.0
	if sunPeakHour > types.ReferenceSunPeakHour {
		c -= (sunPeakHour - types.ReferenceSunPeakHour) / 0.1 * confidencePointsPerTenth
	}
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
