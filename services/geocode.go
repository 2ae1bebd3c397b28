package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
)

type GeocodingFeature struct {
	PlaceName string     `json:"place_name"`
	Center    [2]float64 `json:"center"`
	Relevance float64    `json:"relevance"`
}

type GeocodingResponse struct {
	Features []GeocodingFeature `json:"features"`
}

// GetBestCoordinatesFromResponse picks the highest-relevance feature and
// returns its center as (longitude, latitude).
func GetBestCoordinatesFromResponse(body io.Reader) (float64, float64, error) {
	var response GeocodingResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return 0, 0, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Features) == 0 {
		return 0, 0, errors.New("no results found")
	}

	bestFeature := response.Features[0]
	for _, feature := range response.Features {
		if feature.Relevance > bestFeature.Relevance {
			bestFeature = feature
		}
	}

	return bestFeature.Center[0], bestFeature.Center[1], nil
}

// GetCoordinatesFromAddress forward-geocodes a free-text address through the
// Mapbox API. Used when a place is submitted without explicit coordinates.
func GetCoordinatesFromAddress(address, mapboxAccessToken string) (float64, float64, error) {
	apiURL := fmt.Sprintf(
		"https://api.mapbox.com/geocoding/v5/mapbox.places/%s.json?access_token=%s",
		url.QueryEscape(address),
		mapboxAccessToken,
	)

	resp, err := http.Get(apiURL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return GetBestCoordinatesFromResponse(resp.Body)
}
