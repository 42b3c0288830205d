package engine

import (
	"math"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// Fixed daylight window for the illustrative generation curve.
const (
	sunriseHour = 7
	sunsetHour  = 19
)

// LoadCurve produces 24 hourly load samples summing to dailyUsageKWH. The
// shape uses fixed time-of-day multipliers: mornings scaled by the daytime
// usage share, elevated evenings and a flat night. Presentation only.
func LoadCurve(dailyUsageKWH, morningUsagePercent float64) []types.ChartPoint {
	weights := make([]float64, 24)
	morningWeight := 0.5 + 2.0*morningUsagePercent/100
	for h := 0; h < 24; h++ {
		switch {
		case h >= 7 && h < 12:
			weights[h] = morningWeight
		case h >= 12 && h < 18:
			weights[h] = 1.0
		case h >= 18 && h < 23:
			weights[h] = 1.8
		default:
			weights[h] = 0.5
		}
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}

	points := make([]types.ChartPoint, 24)
	for h := 0; h < 24; h++ {
		points[h] = types.ChartPoint{Hour: h, KWH: round2(dailyUsageKWH * weights[h] / sum)}
	}
	return points
}

// GenerationCurve produces 24 hourly generation samples summing to
// dailyGenerationKWH: a half-cosine bell centered at solar noon between the
// fixed sunrise and sunset hours. Presentation only.
func GenerationCurve(dailyGenerationKWH float64) []types.ChartPoint {
	noon := float64(sunriseHour+sunsetHour) / 2
	halfSpan := float64(sunsetHour-sunriseHour) / 2

	weights := make([]float64, 24)
	var sum float64
	for h := 0; h < 24; h++ {
		if h >= sunriseHour && h < sunsetHour {
			weights[h] = math.Cos((float64(h) + 0.5 - noon) / halfSpan * math.Pi / 2)
			if weights[h] < 0 {
				weights[h] = 0
			}
			sum += weights[h]
		}
	}

	points := make([]types.ChartPoint, 24)
	for h := 0; h < 24; h++ {
		kwh := 0.0
		if sum > 0 {
			kwh = dailyGenerationKWH * weights[h] / sum
		}
		points[h] = types.ChartPoint{Hour: h, KWH: round2(kwh)}
	}
	return points
}
