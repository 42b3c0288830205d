package types

// BillBreakdown is the structured rate-component breakdown for one tariff row
// at one AFA rate.
type BillBreakdown struct {
	Usage    float64 `json:"usage"`
	Network  float64 `json:"network"`
	Capacity float64 `json:"capacity"`
	SST      float64 `json:"sst"`
	EEI      float64 `json:"eei"`
	AFA      float64 `json:"afa"`
	Total    float64 `json:"total"`
}

// BillComparisonItem is a per-component before/after line. Delta is
// before - after, so positive means a saving.
type BillComparisonItem struct {
	Component string  `json:"component"`
	Before    float64 `json:"before"`
	After     float64 `json:"after"`
	Delta     float64 `json:"delta"`
}

// BillComparisonTotals aggregates the comparison.
type BillComparisonTotals struct {
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Delta  float64 `json:"delta"`
}

// BillComparison is the full before/after reconciliation for one scenario.
type BillComparison struct {
	BeforeBreakdown BillBreakdown        `json:"beforeBreakdown"`
	AfterBreakdown  BillBreakdown        `json:"afterBreakdown"`
	Items           []BillComparisonItem `json:"items"`
	Totals          BillComparisonTotals `json:"totals"`
}

// BatteryDispatch is the outcome of the bounded daily-dispatch simulation for
// one battery capacity.
type BatteryDispatch struct {
	DailyDischargeKWH   float64 `json:"dailyDischargeKWH"`
	MonthlyDischargeKWH float64 `json:"monthlyDischargeKWH"`
	NetUsageKWH         float64 `json:"netUsageKWH"`
	NetExportKWH        float64 `json:"netExportKWH"`
}
