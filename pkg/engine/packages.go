package engine

import (
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// SelectPackage filters the catalog to active, non-special residential
// bundles with exactly panelQty panels, matching either the explicit
// productID (when given) or the requested wattage, and returns the cheapest
// match. A nil return means nothing in the catalog fits; that is a normal
// outcome, not an error.
func SelectPackage(catalog []types.PackageOption, panelQty, wattageW int, productID string) *types.PackageOption {
	var best *types.PackageOption
	for i := range catalog {
		p := &catalog[i]
		if !p.Active || p.Special || p.Type != types.PackageTypeResidential {
			continue
		}
		if p.PanelQty != panelQty {
			continue
		}
		if productID != "" {
			if p.ID != productID {
				continue
			}
		} else if p.WattageW != wattageW {
			continue
		}
		if best == nil || p.Price < best.Price {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	// copy so the caller never aliases the catalog snapshot
	selected := *best
	return &selected
}
