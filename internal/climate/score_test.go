package climate

import (
	"testing"

	"dryck/internal/catalog"
	"dryck/internal/distance"
)

func swedishBottle() catalog.Product {
	return catalog.Product{
		ID:               "1",
		Name:             "Testöl",
		PackagingType:    catalog.PackagingGlassHeavy,
		OriginCountry:    "Sverige",
		ProductionMethod: catalog.ProductionConventional,
		VolumeMl:         750,
	}
}

func TestScore_KnownValues(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()

	// Swedish heavy glass, conventional: 0.8 + 0 + 0.4 = 1.2 kg CO₂e
	// → round((1 - 1.2/2.5) * 100) = 52.
	if got := Score(swedishBottle(), s); got != 52 {
		t.Fatalf("Score(swedish bottle) = %d, want 52", got)
	}

	// Same bottle in bag-in-box, organic: 0.1 + 0 + 0.34 = 0.44 → 82.
	bib := swedishBottle()
	bib.PackagingType = catalog.PackagingBagInBox
	bib.ProductionMethod = catalog.ProductionOrganic
	if got := Score(bib, s); got != 82 {
		t.Fatalf("Score(bag-in-box organic) = %d, want 82", got)
	}
}

func TestScore_ClampsToRange(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()

	pathological := swedishBottle()
	pathological.OriginCountry = "Nya Zeeland"
	pathological.VolumeMl = 1000000
	if got := Score(pathological, s); got != 0 {
		t.Fatalf("Score(pathological volume) = %d, want clamp to 0", got)
	}

	products := []catalog.Product{
		swedishBottle(),
		{PackagingType: "styrofoam", OriginCountry: "Atlantis", ProductionMethod: "alchemy", VolumeMl: -5},
		{OriginCountry: "Chile", PackagingType: catalog.PackagingGlassHeavy, VolumeMl: 3000},
	}
	for _, p := range products {
		got := Score(p, s)
		if got < 0 || got > 100 {
			t.Fatalf("Score(%+v) = %d, outside [0,100]", p, got)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	p := swedishBottle()
	first := Score(p, s)
	for i := 0; i < 10; i++ {
		if got := Score(p, s); got != first {
			t.Fatalf("Score not deterministic: %d then %d", first, got)
		}
	}
}

func TestScore_UnknownKeysFallBack(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	p := swedishBottle()
	p.PackagingType = "amphora"
	p.ProductionMethod = "lunar"

	// Unknown packaging defaults to 0.5, unknown production to multiplier 1:
	// 0.5 + 0 + 0.4 = 0.9 → 64.
	if got := Score(p, s); got != 64 {
		t.Fatalf("Score(unknown keys) = %d, want 64", got)
	}
}

func TestBadgeFor_Thresholds(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	tests := []struct {
		score int
		want  Badge
	}{
		{100, BadgeGreen},
		{66, BadgeGreen},
		{65, BadgeYellow},
		{33, BadgeYellow},
		{32, BadgeRed},
		{0, BadgeRed},
	}
	for _, tc := range tests {
		if got := s.BadgeFor(tc.score); got != tc.want {
			t.Fatalf("BadgeFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestCompute_TransportUsesSeaBeyondThreshold(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	p := swedishBottle()
	p.OriginCountry = "Chile"

	b := Compute(p, s)
	if b.TransportMode != distance.Sea {
		t.Fatalf("transport mode = %s, want sea", b.TransportMode)
	}
	// 13000 km * 0.01 * 0.75 / 1000 = 0.0975
	if b.TransportCO2e < 0.097 || b.TransportCO2e > 0.098 {
		t.Fatalf("transport co2e = %f, want ~0.0975", b.TransportCO2e)
	}
}

func TestMerge_OverridesSelectively(t *testing.T) {
	t.Parallel()

	merged := DefaultSettings().Merge(Settings{
		Packaging: map[catalog.PackagingType]float64{
			catalog.PackagingGlassHeavy: 1.2,
		},
		Thresholds: Thresholds{GreenMin: 80},
	})

	if merged.Packaging[catalog.PackagingGlassHeavy] != 1.2 {
		t.Fatalf("override not applied: %f", merged.Packaging[catalog.PackagingGlassHeavy])
	}
	if merged.Packaging[catalog.PackagingTetra] != 0.08 {
		t.Fatalf("untouched key changed: %f", merged.Packaging[catalog.PackagingTetra])
	}
	if merged.Thresholds.GreenMin != 80 || merged.Thresholds.YellowMin != 33 {
		t.Fatalf("thresholds merged wrong: %+v", merged.Thresholds)
	}
	if DefaultSettings().Packaging[catalog.PackagingGlassHeavy] != 0.8 {
		t.Fatal("Merge mutated defaults")
	}
}
