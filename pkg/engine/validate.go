package engine

import (
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// validateParams checks every declared range once at the boundary so the
// formulas never have to re-check piecemeal.
func validateParams(p types.QuoteParams) error {
	if p.Amount <= 0 {
		return validationErrorf("amount must be > 0, got %.2f", p.Amount)
	}
	if p.SunPeakHour < types.MinSunPeakHour || p.SunPeakHour > types.MaxSunPeakHour {
		return validationErrorf("sunPeakHour must be between %.1f and %.1f, got %.2f",
			types.MinSunPeakHour, types.MaxSunPeakHour, p.SunPeakHour)
	}
	if p.MorningUsagePercent < 1 || p.MorningUsagePercent > 100 {
		return validationErrorf("morningUsagePercent must be between 1 and 100, got %.2f", p.MorningUsagePercent)
	}
	if p.SMPPrice < types.MinSMPPrice || p.SMPPrice > types.MaxSMPPrice {
		return validationErrorf("smpPrice must be between %.4f and %.4f, got %.4f",
			types.MinSMPPrice, types.MaxSMPPrice, p.SMPPrice)
	}
	if p.PercentDiscount < 0 || p.PercentDiscount > 100 {
		return validationErrorf("percentDiscount must be between 0 and 100, got %.2f", p.PercentDiscount)
	}
	if p.FixedDiscount < 0 {
		return validationErrorf("fixedDiscount must be >= 0, got %.2f", p.FixedDiscount)
	}
	if p.BatterySizeKWH < 0 {
		return validationErrorf("batterySizeKWH must be >= 0, got %.2f", p.BatterySizeKWH)
	}
	if p.OverridePanels < 0 {
		return validationErrorf("overridePanels must be >= 1 when set, got %d", p.OverridePanels)
	}
	if p.PanelTypeW <= 0 && p.ProductID == "" {
		return validationErrorf("panelTypeW must be > 0 when no productID is given")
	}
	return nil
}
