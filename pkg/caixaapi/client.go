// Package caixaapi is a thin client for the public Loterias Caixa results
// API. It only fetches and decodes the raw draw history; normalization and
// validation happen in the ingestion service.
package caixaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Mega-Sena history endpoint.
const DefaultBaseURL = "https://loteriascaixa-api.herokuapp.com/api/megasena"

// WinnerLocation is one localGanhadores entry of the wire format. A single
// entry can account for several winning tickets via Quantidade.
type WinnerLocation struct {
	Municipality string `json:"municipio"`
	State        string `json:"uf"`
	Tickets      int    `json:"quantidade"`
}

// DrawResponse mirrors one draw of the wire format: zero-padded number
// strings and a dd/MM/yyyy date.
type DrawResponse struct {
	Contest         int              `json:"concurso"`
	Date            string           `json:"data"`
	Numbers         []string         `json:"dezenas"`
	WinnerLocations []WinnerLocation `json:"localGanhadores"`
}

// Client fetches the Mega-Sena draw history.
type Client struct {
	BaseURL string
	Mock    bool
	client  *http.Client
}

// NewClient creates a Client. With mock enabled no network calls are made
// and a small fixed history is returned instead, matching the upstream
// wire format.
func NewClient(baseURL string, timeout time.Duration, mock bool) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Mock:    mock,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchHistory retrieves the complete draw history, oldest first as served
// by the API.
func (c *Client) FetchHistory(ctx context.Context) ([]DrawResponse, error) {
	if c.Mock {
		return mockHistory(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build history request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch draw history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("draw history request returned status %d", resp.StatusCode)
	}

	var draws []DrawResponse
	if err := json.NewDecoder(resp.Body).Decode(&draws); err != nil {
		return nil, fmt.Errorf("failed to decode draw history: %w", err)
	}
	return draws, nil
}

// mockHistory returns a fixed miniature history for local development,
// including one repeated combination and a couple of located winners.
func mockHistory() []DrawResponse {
	return []DrawResponse{
		{
			Contest: 1,
			Date:    "11/03/1996",
			Numbers: []string{"04", "05", "30", "33", "41", "52"},
			WinnerLocations: []WinnerLocation{
				{Municipality: "SAO PAULO", State: "SP", Tickets: 1},
			},
		},
		{
			Contest: 2,
			Date:    "18/03/1996",
			Numbers: []string{"09", "37", "39", "41", "43", "49"},
		},
		{
			Contest: 3,
			Date:    "25/03/1996",
			Numbers: []string{"10", "11", "29", "30", "36", "47"},
			WinnerLocations: []WinnerLocation{
				{Municipality: "CURITIBA", State: "PR", Tickets: 2},
			},
		},
		{
			Contest: 4,
			Date:    "01/04/1996",
			Numbers: []string{"04", "05", "30", "33", "41", "52"},
			WinnerLocations: []WinnerLocation{
				{Municipality: "CAMPINAS", State: "SP", Tickets: 1},
			},
		},
	}
}
