package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loteriainsights/megasena-backend/internal/models"
)

func winnerHistory() []models.DrawRecord {
	win := func(municipality, state string) models.WinnerEntry {
		return models.WinnerEntry{Municipality: municipality, State: state}
	}
	draws := []models.DrawRecord{
		testDraw(1, 4, 8, 15, 16, 23, 42),
		testDraw(2, 9, 37, 39, 41, 43, 49),
		testDraw(3, 10, 11, 29, 30, 36, 47),
		testDraw(4, 1, 2, 3, 4, 5, 6),
	}
	draws[0].Winners = []models.WinnerEntry{win("SAO PAULO", "SP"), win("SAO PAULO", "SP")}
	draws[1].Winners = []models.WinnerEntry{win("CAMPINAS", "SP"), win("CURITIBA", "PR")}
	draws[2].Winners = []models.WinnerEntry{win("SAO PAULO", "SP"), win("CAMPINAS", "SP")}
	return draws
}

func TestBuildGeographyAggregate(t *testing.T) {
	agg := BuildGeographyAggregate(winnerHistory())

	assert.Equal(t, 6, agg.TotalWins())
}

func TestStates(t *testing.T) {
	agg := BuildGeographyAggregate(winnerHistory())

	states := agg.States()
	require.Len(t, states, 2)
	assert.Equal(t, models.StateCount{State: "SP", Wins: 5}, states[0])
	assert.Equal(t, models.StateCount{State: "PR", Wins: 1}, states[1])
}

func TestStates_TiesBrokenAlphabetically(t *testing.T) {
	draws := []models.DrawRecord{testDraw(1, 1, 2, 3, 4, 5, 6)}
	draws[0].Winners = []models.WinnerEntry{
		{Municipality: "NATAL", State: "RN"},
		{Municipality: "BELEM", State: "PA"},
	}
	agg := BuildGeographyAggregate(draws)

	states := agg.States()
	require.Len(t, states, 2)
	assert.Equal(t, "PA", states[0].State)
	assert.Equal(t, "RN", states[1].State)
}

func TestTopMunicipalities(t *testing.T) {
	agg := BuildGeographyAggregate(winnerHistory())

	top, err := agg.TopMunicipalities(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, models.MunicipalityCount{Municipality: "SAO PAULO", State: "SP", Wins: 3}, top[0])
	assert.Equal(t, models.MunicipalityCount{Municipality: "CAMPINAS", State: "SP", Wins: 2}, top[1])
}

func TestTopMunicipalities_KClamped(t *testing.T) {
	agg := BuildGeographyAggregate(winnerHistory())

	top, err := agg.TopMunicipalities(50)
	require.NoError(t, err)
	assert.Len(t, top, 3)
}

func TestTopMunicipalities_InvalidK(t *testing.T) {
	agg := BuildGeographyAggregate(winnerHistory())

	_, err := agg.TopMunicipalities(0)
	var rangeErr *InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestRankMunicipalities(t *testing.T) {
	agg := BuildGeographyAggregate(winnerHistory())

	ranking, err := agg.RankMunicipalities("SP", 10)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, "SAO PAULO", ranking[0].Municipality)
	assert.Equal(t, "CAMPINAS", ranking[1].Municipality)

	ranking, err = agg.RankMunicipalities("PR", 1)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, models.MunicipalityCount{Municipality: "CURITIBA", State: "PR", Wins: 1}, ranking[0])
}

func TestRankMunicipalities_UnknownState(t *testing.T) {
	agg := BuildGeographyAggregate(winnerHistory())

	_, err := agg.RankMunicipalities("ZZ", 5)
	var stateErr *UnknownStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "ZZ", stateErr.State)
}

func TestRankMunicipalities_SameNameDifferentStates(t *testing.T) {
	// Municipalities are keyed by (name, state): a BOA VISTA win in RR must
	// not leak into a PB ranking.
	draws := []models.DrawRecord{testDraw(1, 1, 2, 3, 4, 5, 6)}
	draws[0].Winners = []models.WinnerEntry{
		{Municipality: "BOA VISTA", State: "RR"},
		{Municipality: "BOA VISTA", State: "PB"},
		{Municipality: "BOA VISTA", State: "RR"},
	}
	agg := BuildGeographyAggregate(draws)

	ranking, err := agg.RankMunicipalities("RR", 10)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, 2, ranking[0].Wins)

	ranking, err = agg.RankMunicipalities("PB", 10)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, 1, ranking[0].Wins)
}
