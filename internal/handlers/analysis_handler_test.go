package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loteriainsights/megasena-backend/internal/models"
	"github.com/loteriainsights/megasena-backend/internal/services"
)

func newTestRouter(loaded bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	analysisSvc := services.NewAnalysisService(rand.New(rand.NewSource(1)))
	if loaded {
		base := time.Date(1996, 3, 11, 0, 0, 0, 0, time.UTC)
		analysisSvc.SetHistory([]models.DrawRecord{
			{
				ContestNumber: 1,
				DrawDate:      base,
				Numbers:       []int{4, 8, 15, 16, 23, 42},
				Winners:       []models.WinnerEntry{{Municipality: "SAO PAULO", State: "SP"}},
			},
			{
				ContestNumber: 2,
				DrawDate:      base.AddDate(0, 0, 7),
				Numbers:       []int{9, 37, 39, 41, 43, 49},
			},
			{
				ContestNumber: 3,
				DrawDate:      base.AddDate(0, 0, 14),
				Numbers:       []int{4, 8, 15, 16, 23, 42},
			},
		})
	}

	handler := NewAnalysisHandler(analysisSvc)
	geography := NewGeographyHandler(analysisSvc)

	router := gin.New()
	router.GET("/analysis/summary", handler.GetSummary)
	router.GET("/analysis/frequencies/rank", handler.RankNumbers)
	router.GET("/analysis/repeats", handler.GetRepeats)
	router.POST("/analysis/combinations/check", handler.CheckCombination)
	router.POST("/analysis/suggestions", handler.Suggest)
	router.GET("/geography/states", geography.GetStateRanking)
	router.GET("/geography/states/:uf/municipalities", geography.GetStateMunicipalities)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestGetSummary(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodGet, "/analysis/summary", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var summary models.HistorySummary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.TotalDraws)
}

func TestGetSummary_NotLoaded(t *testing.T) {
	router := newTestRouter(false)

	resp := doRequest(router, http.MethodGet, "/analysis/summary", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestRankNumbers(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodGet, "/analysis/frequencies/rank?k=2&direction=most", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		K       int                  `json:"k"`
		Numbers []models.NumberCount `json:"numbers"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 2, body.K)
	require.Len(t, body.Numbers, 2)
	assert.Equal(t, 4, body.Numbers[0].Number)
	assert.Equal(t, 2, body.Numbers[0].Count)
}

func TestRankNumbers_BadParams(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodGet, "/analysis/frequencies/rank?k=abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(router, http.MethodGet, "/analysis/frequencies/rank?direction=sideways", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(router, http.MethodGet, "/analysis/frequencies/rank?k=0", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetRepeats(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodGet, "/analysis/repeats", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		TotalRepeats int                           `json:"totalRepeats"`
		Combinations []models.RepeatedCombination `json:"combinations"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 1, body.TotalRepeats)
	require.Len(t, body.Combinations, 1)
	assert.Equal(t, []int{1, 3}, body.Combinations[0].Contests)
}

func TestCheckCombination(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodPost, "/analysis/combinations/check", `{"numbers":[42,23,16,15,8,4]}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Numbers            []int `json:"numbers"`
		PreviouslyDrawn    bool  `json:"previouslyDrawn"`
		HistoricalContests []int `json:"historicalContests"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []int{4, 8, 15, 16, 23, 42}, body.Numbers)
	assert.True(t, body.PreviouslyDrawn)
	assert.Equal(t, []int{1, 3}, body.HistoricalContests)
}

func TestCheckCombination_Invalid(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodPost, "/analysis/combinations/check", `{"numbers":[1,2,3]}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(router, http.MethodPost, "/analysis/combinations/check", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSuggest(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodPost, "/analysis/suggestions", `{"strategy":"hot","count":3}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Strategy    string              `json:"strategy"`
		Suggestions []models.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "hot", body.Strategy)
	assert.Len(t, body.Suggestions, 3)
}

func TestSuggest_UnknownStrategy(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodPost, "/analysis/suggestions", `{"strategy":"lucky"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetStateRanking(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodGet, "/geography/states", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		States []models.StateCount `json:"states"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.States, 1)
	assert.Equal(t, models.StateCount{State: "SP", Wins: 1}, body.States[0])
}

func TestGetStateMunicipalities_Unknown(t *testing.T) {
	router := newTestRouter(true)

	resp := doRequest(router, http.MethodGet, "/geography/states/ZZ/municipalities", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
