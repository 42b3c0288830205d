package types

// TariffRow represents one row of the reference tariff table: a monthly usage
// band together with the baseline charge components billed at that usage.
// The table is owned by the reference-data source and is assumed to be sorted
// ascending by UsageKWH with non-decreasing cost.
type TariffRow struct {
	UsageKWH float64 `json:"usageKWH" yaml:"usage_kwh"`

	// Baseline charge components (bill currency).
	UsageCharge    float64 `json:"usageCharge" yaml:"usage_charge"`
	NetworkCharge  float64 `json:"networkCharge" yaml:"network_charge"`
	CapacityCharge float64 `json:"capacityCharge" yaml:"capacity_charge"`
	RetailCharge   float64 `json:"retailCharge" yaml:"retail_charge"`
	EEICharge      float64 `json:"eeiCharge" yaml:"eei_charge"`
	SSTCharge      float64 `json:"sstCharge" yaml:"sst_charge"`
	KWTBBCharge    float64 `json:"kwtbbCharge" yaml:"kwtbb_charge"`

	// FuelAdjustment is the per-kWh AFA rate that was in effect when the row
	// was published. Kept for reference; matching uses the caller's rate.
	FuelAdjustment float64 `json:"fuelAdjustment" yaml:"fuel_adjustment"`
}

// BaseCost returns the total of all baseline charge components, before any
// fuel adjustment.
func (r TariffRow) BaseCost() float64 {
	return r.UsageCharge + r.NetworkCharge + r.CapacityCharge + r.RetailCharge +
		r.EEICharge + r.SSTCharge + r.KWTBBCharge
}

// AdjustedCost returns the base cost plus the fuel adjustment at the given
// per-kWh rate.
func (r TariffRow) AdjustedCost(afaRate float64) float64 {
	return r.BaseCost() + r.UsageKWH*afaRate
}
