package climate

import (
	"dryck/internal/catalog"
	"dryck/internal/distance"
)

// Display labels are Swedish; the consumer UI targets the Swedish market.

func PackagingLabel(t catalog.PackagingType) string {
	switch t {
	case catalog.PackagingGlassHeavy:
		return "Tung glasflaska"
	case catalog.PackagingGlassLight:
		return "Lätt glasflaska"
	case catalog.PackagingAluminumCan:
		return "Aluminiumburk"
	case catalog.PackagingPET:
		return "PET-flaska"
	case catalog.PackagingBagInBox:
		return "Bag-in-box"
	case catalog.PackagingTetra:
		return "Tetra Pak"
	default:
		return string(t)
	}
}

func ProductionLabel(m catalog.ProductionMethod) string {
	switch m {
	case catalog.ProductionConventional:
		return "Konventionell"
	case catalog.ProductionOrganic:
		return "Ekologisk"
	case catalog.ProductionBiodynamic:
		return "Biodynamisk"
	default:
		return string(m)
	}
}

func TransportLabel(m distance.Mode) string {
	if m == distance.Sea {
		return "båt"
	}
	return "lastbil"
}
