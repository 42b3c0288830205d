package types

// Declared input ranges, validated once at the calculation boundary.
const (
	MinSunPeakHour = 3.0
	MaxSunPeakHour = 4.5

	MinSMPPrice = 0.19
	MaxSMPPrice = 0.2703

	// ReferenceSunPeakHour is the irradiance assumption at which the
	// confidence estimate is still 90%.
	ReferenceSunPeakHour = 3.4
)

// VoucherAdjustment is a voucher that has already been validated upstream.
// The engine only accumulates its value into the discount stack.
type VoucherAdjustment struct {
	Code    string  `json:"code"`
	Percent float64 `json:"percent,omitempty"`
	Amount  float64 `json:"amount,omitempty"`
}

// EngineRules toggles behaviors that differ between historical revisions of
// the calculation. Both variants are preserved so deployments can pick the
// intended one explicitly.
type EngineRules struct {
	// TieredExportRate discounts the export rate once net usage exceeds
	// TieredExportThresholdKWH.
	TieredExportRate         bool    `json:"tieredExportRate"`
	TieredExportThresholdKWH float64 `json:"tieredExportThresholdKWH"`
	TieredExportRateFactor   float64 `json:"tieredExportRateFactor"`

	// CapExportByNetUsage limits the credited export energy to the net usage
	// remaining after solar and battery.
	CapExportByNetUsage bool `json:"capExportByNetUsage"`
}

// DefaultEngineRules returns the rule set used when a request does not
// specify one.
func DefaultEngineRules() EngineRules {
	return EngineRules{
		TieredExportRate:         false,
		TieredExportThresholdKWH: 1500,
		TieredExportRateFactor:   0.5,
		CapExportByNetUsage:      true,
	}
}

// QuoteParams is the full input record for one calculation. It is constructed
// once per call and never mutated mid-computation.
type QuoteParams struct {
	// Amount is the customer's current monthly bill (bill currency, > 0).
	Amount float64 `json:"amount"`

	// SunPeakHour is the assumed daily peak-sun-hours (3.0 - 4.5).
	SunPeakHour float64 `json:"sunPeakHour"`

	// MorningUsagePercent is the share of usage consumed during daylight
	// hours (1 - 100).
	MorningUsagePercent float64 `json:"morningUsagePercent"`

	// PanelTypeW selects the panel wattage to quote (integer watts).
	PanelTypeW int `json:"panelTypeW"`

	// ProductID, when set, selects a specific catalog product instead of
	// matching by wattage.
	ProductID string `json:"productID,omitempty"`

	// SMPPrice is the per-kWh export rate (0.19 - 0.2703).
	SMPPrice float64 `json:"smpPrice"`

	// AFARate is the fuel-adjustment rate applied to the before/after
	// breakdowns. Defaults to 0.
	AFARate float64 `json:"afaRate"`

	// HistoricalAFARate is the fuel-adjustment rate in effect on the bill
	// being matched. Used only for the initial bill-to-usage match.
	HistoricalAFARate float64 `json:"historicalAFARate"`

	PercentDiscount float64 `json:"percentDiscount"`
	FixedDiscount   float64 `json:"fixedDiscount"`

	Vouchers []VoucherAdjustment `json:"vouchers,omitempty"`

	// BatterySizeKWH is the rated battery capacity (>= 0, 0 means no battery).
	BatterySizeKWH float64 `json:"batterySizeKWH"`

	// OverridePanels replaces the recommended panel count for all downstream
	// steps when >= 1. 0 means no override.
	OverridePanels int `json:"overridePanels,omitempty"`

	Rules EngineRules `json:"rules"`
}
