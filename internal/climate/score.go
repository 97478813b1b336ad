package climate

import (
	"math"

	"dryck/internal/catalog"
	"dryck/internal/distance"
)

// maxCO2e is the assumed worst-case total footprint in kg CO₂e. Scores are
// normalized against it, so anything at or beyond it clamps to 0.
const maxCO2e = 2.5

// Badge is the three-tier qualitative label derived from a score.
type Badge string

const (
	BadgeGreen  Badge = "green"
	BadgeYellow Badge = "yellow"
	BadgeRed    Badge = "red"
)

// Breakdown is the per-factor footprint behind a score, in kg CO₂e.
type Breakdown struct {
	PackagingCO2e  float64       `json:"packagingCo2e"`
	TransportCO2e  float64       `json:"transportCo2e"`
	ProductionCO2e float64       `json:"productionCo2e"`
	TotalCO2e      float64       `json:"totalCo2e"`
	DistanceKm     float64       `json:"distanceKm"`
	TransportMode  distance.Mode `json:"transportMode"`
}

// Score computes the 0-100 climate score of a product under the given
// settings. Pure: equal inputs always produce equal scores.
func Score(p catalog.Product, s Settings) int {
	return score(Compute(p, s))
}

// Compute returns the full per-factor breakdown behind a product's score.
func Compute(p catalog.Product, s Settings) Breakdown {
	packagingImpact, ok := s.Packaging[p.PackagingType]
	if !ok {
		packagingImpact = 0.5
	}

	km := distance.FromSweden(p.OriginCountry)
	mode := distance.ModeFor(km)
	volumeLiters := float64(p.VolumeMl) / 1000
	transportImpact := km * s.Transport[mode] * volumeLiters / 1000

	multiplier, ok := s.Production[p.ProductionMethod]
	if !ok {
		multiplier = 1
	}
	productionImpact := baseProductionCO2e * multiplier

	return Breakdown{
		PackagingCO2e:  packagingImpact,
		TransportCO2e:  transportImpact,
		ProductionCO2e: productionImpact,
		TotalCO2e:      packagingImpact + transportImpact + productionImpact,
		DistanceKm:     km,
		TransportMode:  mode,
	}
}

func score(b Breakdown) int {
	raw := math.Round((1 - b.TotalCO2e/maxCO2e) * 100)
	return int(math.Max(0, math.Min(100, raw)))
}

// BadgeFor maps a score to its badge using the settings' thresholds.
func (s Settings) BadgeFor(score int) Badge {
	switch {
	case score >= s.Thresholds.GreenMin:
		return BadgeGreen
	case score >= s.Thresholds.YellowMin:
		return BadgeYellow
	default:
		return BadgeRed
	}
}
