// Package climate computes the climate score of a beverage from its
// packaging, transport distance and production method.
package climate

import (
	"dryck/internal/catalog"
	"dryck/internal/distance"

	"github.com/samber/lo"
)

// baseProductionCO2e is the assumed vineyard/brewery operations footprint
// per package in kg CO₂e. The production multiplier applies to this value.
const baseProductionCO2e = 0.4

// Settings holds the user-adjustable weights of the scoring model.
// Lifetime is independent of the catalog; clients persist their own copy
// and can reset from DefaultSettings.
type Settings struct {
	// Packaging is kg CO₂e per package.
	Packaging map[catalog.PackagingType]float64 `json:"packaging"`
	// Transport is kg CO₂e per km per liter.
	Transport map[distance.Mode]float64 `json:"transport"`
	// Production is a multiplier on the base production footprint.
	Production map[catalog.ProductionMethod]float64 `json:"production"`
	Thresholds Thresholds                           `json:"thresholds"`
}

// Thresholds are the badge cutoffs: score >= GreenMin is green,
// score >= YellowMin is yellow, anything below is red.
type Thresholds struct {
	GreenMin  int `json:"green_min"`
	YellowMin int `json:"yellow_min"`
}

// DefaultSettings returns the default weights.
//
// Packaging values reflect that glass production is energy-intensive and
// weight-dominated (heavy 500-600g wine bottle vs light 350-400g), while
// bag-in-box and cartons are very efficient per liter. Transport values:
// container ships move bulk cheaply, trucks less so, air freight is an
// order of magnitude worse but effectively unused for beverages.
// Production multipliers discount organic (~15%) and biodynamic (~25%)
// against the conventional baseline.
func DefaultSettings() Settings {
	return Settings{
		Packaging: map[catalog.PackagingType]float64{
			catalog.PackagingGlassHeavy:  0.8,
			catalog.PackagingGlassLight:  0.5,
			catalog.PackagingAluminumCan: 0.2,
			catalog.PackagingPET:         0.15,
			catalog.PackagingBagInBox:    0.1,
			catalog.PackagingTetra:       0.08,
		},
		Transport: map[distance.Mode]float64{
			distance.Sea:  0.01,
			distance.Road: 0.05,
			distance.Air:  0.5,
		},
		Production: map[catalog.ProductionMethod]float64{
			catalog.ProductionConventional: 1.0,
			catalog.ProductionOrganic:      0.85,
			catalog.ProductionBiodynamic:   0.75,
		},
		Thresholds: Thresholds{
			GreenMin:  66,
			YellowMin: 33,
		},
	}
}

// Merge overlays the non-empty parts of an override onto s and returns the
// result. Weight maps merge key by key; zero thresholds keep the current
// cutoffs.
func (s Settings) Merge(override Settings) Settings {
	merged := Settings{
		Packaging:  lo.Assign(s.Packaging, override.Packaging),
		Transport:  lo.Assign(s.Transport, override.Transport),
		Production: lo.Assign(s.Production, override.Production),
		Thresholds: s.Thresholds,
	}
	if override.Thresholds.GreenMin > 0 {
		merged.Thresholds.GreenMin = override.Thresholds.GreenMin
	}
	if override.Thresholds.YellowMin > 0 {
		merged.Thresholds.YellowMin = override.Thresholds.YellowMin
	}
	return merged
}
