package types

// PackageTypeResidential is the catalog type matched when selecting a
// residential bundle.
const PackageTypeResidential = "Residential"

// PackageOption represents one sellable bundle from the package catalog.
// It is an immutable snapshot supplied once per calculation.
type PackageOption struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	PanelQty int     `json:"panelQty" yaml:"panel_qty"`
	Price    float64 `json:"price" yaml:"price"`
	WattageW int     `json:"wattageW" yaml:"wattage_w"`
	Type     string  `json:"type" yaml:"type"`
	Active   bool    `json:"active" yaml:"active"`
	Special  bool    `json:"special,omitempty" yaml:"special,omitempty"`
}
