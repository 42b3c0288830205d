package refdata

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// StaticSource serves fixed in-memory reference data. It backs the demo
// deployment, the CLI default and tests.
type StaticSource struct {
	rows   []types.TariffRow
	bundle []types.PackageOption
}

// NewStaticSource creates a StaticSource over the given snapshots.
func NewStaticSource(rows []types.TariffRow, bundle []types.PackageOption) *StaticSource {
	return &StaticSource{rows: rows, bundle: bundle}
}

// Tariffs returns a copy of the static tariff table.
func (s *StaticSource) Tariffs(ctx context.Context) ([]types.TariffRow, error) {
	rows := make([]types.TariffRow, len(s.rows))
	copy(rows, s.rows)
	return rows, nil
}

// Packages returns a copy of the static package catalog.
func (s *StaticSource) Packages(ctx context.Context) ([]types.PackageOption, error) {
	bundle := make([]types.PackageOption, len(s.bundle))
	copy(bundle, s.bundle)
	return bundle, nil
}

// Close implements Source.
func (s *StaticSource) Close() error {
	return nil
}

// Domestic tariff approximation used for the built-in table. Rates are
// per-kWh in bill currency.
const (
	energyRate   = 0.2703
	capacityRate = 0.0455
	networkRate  = 0.1285
	retailFee    = 10.0
)

func money(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// DefaultTariffTable builds the built-in domestic tariff table: 50kWh bands
// from 50 to 2000, sorted ascending with non-decreasing cost.
func DefaultTariffTable() []types.TariffRow {
	rows := make([]types.TariffRow, 0, 40)
	for u := 50; u <= 2000; u += 50 {
		rows = append(rows, domesticRow(float64(u)))
	}
	return rows
}

func domesticRow(usage float64) types.TariffRow {
	r := types.TariffRow{
		UsageKWH:       usage,
		UsageCharge:    money(usage * energyRate),
		CapacityCharge: money(usage * capacityRate),
		NetworkCharge:  money(usage * networkRate),
	}

	// retail fee is waived for low-usage households
	if usage > 600 {
		r.RetailCharge = retailFee
	}

	// efficiency incentive: a rebate that shrinks with usage
	switch {
	case usage <= 300:
		r.EEICharge = money(-usage * 0.025)
	case usage <= 600:
		r.EEICharge = money(-usage * 0.01)
	}

	// renewable energy fund levy above the exemption band
	if usage > 300 {
		r.KWTBBCharge = money(0.016 * (r.UsageCharge + r.CapacityCharge + r.NetworkCharge + r.RetailCharge))
	}

	// consumption tax on the energy portion for heavy users
	if usage > 600 {
		r.SSTCharge = money(0.08 * r.UsageCharge)
	}

	return r
}

// DefaultCatalog builds the built-in residential package catalog.
func DefaultCatalog() []types.PackageOption {
	type bundle struct {
		qty     int
		wattage int
		price   float64
	}
	bundles := []bundle{
		{8, 550, 16800},
		{8, 620, 18400},
		{10, 550, 19900},
		{10, 620, 21600},
		{12, 550, 22800},
		{12, 620, 24900},
		{14, 550, 25600},
		{14, 620, 27900},
		{16, 620, 30800},
		{18, 620, 33900},
		{20, 620, 36800},
	}

	out := make([]types.PackageOption, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, types.PackageOption{
			ID:       packageID(b.qty, b.wattage),
			Name:     packageName(b.qty, b.wattage),
			PanelQty: b.qty,
			Price:    b.price,
			WattageW: b.wattage,
			Type:     types.PackageTypeResidential,
			Active:   true,
		})
	}
	return out
}

func packageID(qty, wattage int) string {
	return fmt.Sprintf("res-%dx%d", qty, wattage)
}

func packageName(qty, wattage int) string {
	return fmt.Sprintf("%d x %dW Residential", qty, wattage)
}
