// Package distance resolves origin countries to approximate freight
// distances from Sweden and picks the freight mode for a distance.
package distance

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Mode is the freight mode assumed for a transport leg.
type Mode string

const (
	Sea  Mode = "sea"
	Road Mode = "road"
	// Air carries a configurable weight but is never selected by ModeFor;
	// no beverage in the upstream catalog ships by air.
	Air Mode = "air"
)

const (
	// DefaultKm is used for countries missing from the dataset.
	DefaultKm = 2000
	// seaThresholdKm is the distance above which freight is assumed to
	// arrive by container ship rather than truck.
	seaThresholdKm = 3500
)

// unknownSentinels are dataset rows that represent "origin unknown" rather
// than a real country. They resolve like any other key but are excluded
// from Countries.
var unknownSentinels = []string{"Unknown", "Okänt"}

var (
	// distances.csv holds approximate road/sea distances from Stockholm in km.
	// Swedish and English spellings of the same country map to the same value.
	//
	//go:embed distances.csv
	distancesCSV []byte

	table = sync.OnceValues(loadEmbeddedDistances)
)

// FromSweden returns the approximate freight distance in km from the given
// origin country to Sweden. Resolution order: exact key, case-insensitive
// key, DefaultKm. It never fails.
func FromSweden(country string) float64 {
	t, err := table()
	if err != nil {
		return DefaultKm
	}

	if km, ok := t.exact[country]; ok {
		return km
	}
	if km, ok := t.folded[strings.ToLower(country)]; ok {
		return km
	}
	return DefaultKm
}

// ModeFor picks the freight mode for a distance: strictly more than
// seaThresholdKm is overseas (sea), anything closer travels by road.
func ModeFor(km float64) Mode {
	if km > seaThresholdKm {
		return Sea
	}
	return Road
}

// Countries returns the sorted country names of the dataset, excluding the
// unknown-origin sentinels. Used to populate manual-entry forms.
func Countries() []string {
	t, err := table()
	if err != nil {
		return nil
	}

	names := lo.Reject(lo.Keys(t.exact), func(name string, _ int) bool {
		return lo.Contains(unknownSentinels, name)
	})
	sort.Strings(names)
	return names
}

type distanceTable struct {
	exact  map[string]float64
	folded map[string]float64
}

func loadEmbeddedDistances() (*distanceTable, error) {
	return parseDistancesCSV(distancesCSV)
}

func parseDistancesCSV(raw []byte) (*distanceTable, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty distance dataset")
	}

	t := &distanceTable{
		exact:  make(map[string]float64, len(rows)-1),
		folded: make(map[string]float64, len(rows)-1),
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		km, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		t.exact[row[0]] = km
		t.folded[strings.ToLower(row[0])] = km
	}
	return t, nil
}
