package analysis

import (
	"sort"

	"github.com/loteriainsights/megasena-backend/internal/models"
)

type locationKey struct {
	municipality string
	state        string
}

// GeographyAggregate holds Sena win counts grouped by municipality and by
// state. It is built once from a history snapshot and read-only afterwards.
type GeographyAggregate struct {
	municipalityWins map[locationKey]int
	stateWins        map[string]int
}

// BuildGeographyAggregate counts top-prize wins per (municipality, state)
// and per state across the full draw history. Winner entries are already
// expanded one-per-ticket by the ingestion layer.
func BuildGeographyAggregate(draws []models.DrawRecord) *GeographyAggregate {
	agg := &GeographyAggregate{
		municipalityWins: make(map[locationKey]int),
		stateWins:        make(map[string]int),
	}
	for _, draw := range draws {
		for _, w := range draw.Winners {
			agg.municipalityWins[locationKey{municipality: w.Municipality, state: w.State}]++
			agg.stateWins[w.State]++
		}
	}
	return agg
}

// TotalWins returns the number of Sena wins recorded across all locations.
func (g *GeographyAggregate) TotalWins() int {
	total := 0
	for _, wins := range g.stateWins {
		total += wins
	}
	return total
}

// States returns the states with at least one recorded win, ordered by
// descending win count, ties broken alphabetically.
func (g *GeographyAggregate) States() []models.StateCount {
	ranking := make([]models.StateCount, 0, len(g.stateWins))
	for state, wins := range g.stateWins {
		ranking = append(ranking, models.StateCount{State: state, Wins: wins})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Wins != ranking[j].Wins {
			return ranking[i].Wins > ranking[j].Wins
		}
		return ranking[i].State < ranking[j].State
	})
	return ranking
}

// TopMunicipalities returns the k most awarded municipalities across all
// states, ties broken alphabetically by municipality then state.
func (g *GeographyAggregate) TopMunicipalities(k int) ([]models.MunicipalityCount, error) {
	if k <= 0 {
		return nil, &InvalidRangeError{K: k}
	}
	ranking := g.rankLocations(func(locationKey) bool { return true })
	if k > len(ranking) {
		k = len(ranking)
	}
	return ranking[:k], nil
}

// RankMunicipalities returns the k most awarded municipalities within the
// given state, ties broken alphabetically. A state with zero recorded wins
// yields an UnknownStateError so callers can tell "no data" apart from a
// computed zero.
func (g *GeographyAggregate) RankMunicipalities(state string, k int) ([]models.MunicipalityCount, error) {
	if k <= 0 {
		return nil, &InvalidRangeError{K: k}
	}
	if _, ok := g.stateWins[state]; !ok {
		return nil, &UnknownStateError{State: state}
	}
	ranking := g.rankLocations(func(loc locationKey) bool { return loc.state == state })
	if k > len(ranking) {
		k = len(ranking)
	}
	return ranking[:k], nil
}

func (g *GeographyAggregate) rankLocations(include func(locationKey) bool) []models.MunicipalityCount {
	ranking := make([]models.MunicipalityCount, 0, len(g.municipalityWins))
	for loc, wins := range g.municipalityWins {
		if !include(loc) {
			continue
		}
		ranking = append(ranking, models.MunicipalityCount{
			Municipality: loc.municipality,
			State:        loc.state,
			Wins:         wins,
		})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Wins != ranking[j].Wins {
			return ranking[i].Wins > ranking[j].Wins
		}
		if ranking[i].Municipality != ranking[j].Municipality {
			return ranking[i].Municipality < ranking[j].Municipality
		}
		return ranking[i].State < ranking[j].State
	})
	return ranking
}
