// Package catalog caches the upstream beverage catalog and answers search
// and barcode lookups against it.
package catalog

// PackagingType classifies a product's primary packaging.
type PackagingType string

const (
	PackagingGlassHeavy  PackagingType = "glass_heavy"
	PackagingGlassLight  PackagingType = "glass_light"
	PackagingAluminumCan PackagingType = "aluminum_can"
	PackagingPET         PackagingType = "pet"
	PackagingBagInBox    PackagingType = "bag_in_box"
	PackagingTetra       PackagingType = "tetra"
)

// ProductionMethod classifies how a beverage was produced. Biodynamic is
// never inferred from the feed; it is only reachable through manual entry.
type ProductionMethod string

const (
	ProductionConventional ProductionMethod = "conventional"
	ProductionOrganic      ProductionMethod = "organic"
	ProductionBiodynamic   ProductionMethod = "biodynamic"
)

// Product is the canonical product shape used for scoring and lookup.
type Product struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	ImageURL          string           `json:"imageUrl"`
	PackagingType     PackagingType    `json:"packagingType"`
	OriginCountry     string           `json:"originCountry"`
	ProductionMethod  ProductionMethod `json:"productionMethod"`
	VolumeMl          int              `json:"volumeMl"`
	Price             float64          `json:"price"`
	Category          string           `json:"category,omitempty"`
	Producer          string           `json:"producer,omitempty"`
	AlcoholPercentage float64          `json:"alcoholPercentage,omitempty"`
}

// CachedProduct is a Product as it lives in the catalog cache: the upstream
// product number for exact barcode matching plus a precomputed lowercase
// search string. Regenerated wholesale on every normalization pass, never
// mutated afterwards.
type CachedProduct struct {
	Product
	ProductNumber string `json:"productNumber"`
	SearchText    string `json:"searchText,omitempty"`
}

// withoutSearchText strips the internal search string for API responses.
func (p CachedProduct) withoutSearchText() CachedProduct {
	p.SearchText = ""
	return p
}
