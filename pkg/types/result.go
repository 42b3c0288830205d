package types

import (
	"encoding/json"
	"math"
	"slices"
)

// Payback is the payback period in years. When Valid is false it marshals as
// the string "N/A" instead of a number; it never carries NaN or Inf.
type Payback struct {
	Years float64
	Valid bool
}

// PaybackYears returns a valid Payback, sanitizing non-finite values to N/A.
func PaybackYears(years float64) Payback {
	if math.IsNaN(years) || math.IsInf(years, 0) {
		return Payback{}
	}
	return Payback{Years: years, Valid: true}
}

// MarshalJSON implements json.Marshaler.
func (p Payback) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return json.Marshal("N/A")
	}
	return json.Marshal(p.Years)
}

// UnmarshalJSON implements json.Unmarshaler, accepting a number or "N/A".
func (p *Payback) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Payback{}
		return nil
	}
	var years float64
	if err := json.Unmarshal(b, &years); err != nil {
		return err
	}
	*p = PaybackYears(years)
	return nil
}

// ChartPoint is one hourly sample of an illustrative chart series.
type ChartPoint struct {
	Hour int     `json:"hour"`
	KWH  float64 `json:"kwh"`
}

// Charts holds the presentation-only hourly load and generation curves.
// These never feed back into the financial outputs.
type Charts struct {
	Load       []ChartPoint `json:"load"`
	Generation []ChartPoint `json:"generation"`
}

// QuoteDetails carries the intermediate usage, generation and bill figures
// behind the headline numbers.
type QuoteDetails struct {
	MonthlyUsageKWH      float64 `json:"monthlyUsageKWH"`
	MatchedTariffKWH     float64 `json:"matchedTariffKWH"`
	CurrentBill          float64 `json:"currentBill"`
	DailyGenerationKWH   float64 `json:"dailyGenerationKWH"`
	MonthlyGenerationKWH float64 `json:"monthlyGenerationKWH"`
	SelfConsumptionKWH   float64 `json:"selfConsumptionKWH"`

	// Dispatch is the as-configured battery simulation, Baseline is the same
	// simulation with zero battery capacity.
	Dispatch BatteryDispatch `json:"dispatch"`
	Baseline BatteryDispatch `json:"baseline"`

	ExportCredit         float64 `json:"exportCredit"`
	BaselineExportCredit float64 `json:"baselineExportCredit"`

	// BaselineMonthlySavings is the savings without any battery, so the
	// battery's incremental value can be reported.
	BaselineMonthlySavings float64 `json:"baselineMonthlySavings"`
}

// QuoteResult is the full output record of one calculation and the only
// entity that crosses the boundary back to callers.
type QuoteResult struct {
	RecommendedPanels int  `json:"recommendedPanels"`
	ActualPanels      int  `json:"actualPanels"`
	PanelAdjustment   int  `json:"panelAdjustment"`
	OverrideApplied   bool `json:"overrideApplied"`

	// SelectedPackage is nil when no catalog row matched; that is a degraded
	// but valid result, not an error.
	SelectedPackage *PackageOption `json:"selectedPackage"`
	SolarConfig     string         `json:"solarConfig"`

	MonthlySavings  float64 `json:"monthlySavings"`
	ConfidenceLevel float64 `json:"confidenceLevel"`

	SystemCostBeforeDiscount *float64 `json:"systemCostBeforeDiscount"`
	TotalDiscountAmount      *float64 `json:"totalDiscountAmount"`
	FinalSystemCost          *float64 `json:"finalSystemCost"`
	PaybackPeriod            Payback  `json:"paybackPeriod"`

	Details QuoteDetails `json:"details"`

	// BillComparison reconciles the as-configured scenario,
	// BaselineBillComparison the no-battery scenario.
	BillComparison         BillComparison `json:"billBreakdownComparison"`
	BaselineBillComparison BillComparison `json:"baselineBillBreakdownComparison"`

	Charts Charts `json:"charts"`
}

// Clone returns a deep copy: the slices and pointers are duplicated so the
// copy stays valid if the original is mutated.
func (r QuoteResult) Clone() QuoteResult {
	cp := r
	if r.SelectedPackage != nil {
		pkg := *r.SelectedPackage
		cp.SelectedPackage = &pkg
	}
	cp.SystemCostBeforeDiscount = cloneFloatPtr(r.SystemCostBeforeDiscount)
	cp.TotalDiscountAmount = cloneFloatPtr(r.TotalDiscountAmount)
	cp.FinalSystemCost = cloneFloatPtr(r.FinalSystemCost)
	cp.BillComparison.Items = slices.Clone(r.BillComparison.Items)
	cp.BaselineBillComparison.Items = slices.Clone(r.BaselineBillComparison.Items)
	cp.Charts.Load = slices.Clone(r.Charts.Load)
	cp.Charts.Generation = slices.Clone(r.Charts.Generation)
	return cp
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
