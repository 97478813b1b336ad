package catalog

import "strings"

const (
	defaultVolumeMl  = 750
	imageSizeSuffix  = "_200.webp"
	placeholderImage = "/placeholder-bottle.svg"
	// unknownOrigin is the sentinel origin for feed rows with no country.
	// It resolves to the default distance when scored.
	unknownOrigin = "Okänt"
)

// packagingRule maps a vocabulary term to a packaging category. Rules are
// evaluated in order against the lowercased packaging description and the
// first hit wins; keep the order stable or ambiguous upstream strings
// ("bag-in-box burk") silently reclassify.
type packagingRule struct {
	term     string
	category PackagingType
}

var packagingRules = []packagingRule{
	{"box", PackagingBagInBox},
	{"bag-in-box", PackagingBagInBox},
	{"bib", PackagingBagInBox},
	{"burk", PackagingAluminumCan},
	{"can", PackagingAluminumCan},
	{"pantburk", PackagingAluminumCan},
	{"pet", PackagingPET},
	{"plast", PackagingPET},
	{"tetra", PackagingTetra},
	{"papp", PackagingTetra},
	{"lättglas", PackagingGlassLight},
	{"lättvikt", PackagingGlassLight},
}

// inferPackaging classifies a product's packaging from the feed's packaging
// level or, failing that, its bottle text. Unrecognized descriptions default
// to heavy glass, the most common packaging in the catalog.
func inferPackaging(packagingLevel1, bottleText string) PackagingType {
	description := packagingLevel1
	if description == "" {
		description = bottleText
	}
	description = strings.ToLower(description)

	for _, rule := range packagingRules {
		if strings.Contains(description, rule.term) {
			return rule.category
		}
	}
	return PackagingGlassHeavy
}

// normalize maps a raw feed row into a CachedProduct. Total and
// deterministic: missing fields fall back to defaults, it never fails.
func normalize(item FeedProduct) CachedProduct {
	name := item.ProductNameBold
	if item.ProductNameThin != "" {
		name = item.ProductNameBold + " " + item.ProductNameThin
	}

	id := item.ProductID
	if id == "" {
		id = item.ProductNumber
	}

	category := item.CategoryLevel2
	if category == "" {
		category = item.CategoryLevel1
	}

	origin := item.Country
	if origin == "" {
		origin = item.OriginLevel1
	}
	if origin == "" {
		origin = unknownOrigin
	}

	method := ProductionConventional
	if item.IsOrganic {
		method = ProductionOrganic
	}

	volume := int(item.Volume)
	if volume <= 0 {
		volume = defaultVolumeMl
	}

	image := placeholderImage
	if len(item.Images) > 0 && item.Images[0].ImageURL != "" {
		image = item.Images[0].ImageURL + imageSizeSuffix
	}

	searchText := strings.ToLower(strings.Join(
		[]string{name, item.ProducerName, category, origin, item.ProductNumber}, " "))

	return CachedProduct{
		Product: Product{
			ID:                id,
			Name:              name,
			ImageURL:          image,
			PackagingType:     inferPackaging(item.PackagingLevel1, item.BottleText),
			OriginCountry:     origin,
			ProductionMethod:  method,
			VolumeMl:          volume,
			Price:             item.Price,
			Category:          category,
			Producer:          item.ProducerName,
			AlcoholPercentage: item.AlcoholPercentage,
		},
		ProductNumber: item.ProductNumber,
		SearchText:    searchText,
	}
}
