package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Geocoder struct {
	baseURL string
	client  *http.Client
}

func NewGeocoder(baseURL string, timeout time.Duration) *Geocoder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Geocoder{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type reverseGeocodeResponse struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Municipality string `json:"municipality"`
		County       string `json:"county"`
		State        string `json:"state"`
	} `json:"address"`
}

// CityFor resolves coordinates to a human-readable place name through a
// Nominatim-compatible reverse endpoint. Any network or parse failure
// yields ok=false; the lookup must never stall or abort a save flow.
func (geocoder *Geocoder) CityFor(ctx context.Context, coordinates Coordinates) (string, bool) {
	if geocoder == nil || geocoder.baseURL == "" {
		return "", false
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", fmt.Sprintf("%.6f", coordinates.Latitude))
	query.Set("lon", fmt.Sprintf("%.6f", coordinates.Longitude))
	query.Set("zoom", "10")

	endpoint := geocoder.baseURL + "/reverse?" + query.Encode()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false
	}
	request.Header.Set("User-Agent", "memento-backend")

	response, err := geocoder.client.Do(request)
	if err != nil {
		return "", false
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", false
	}

	var payload reverseGeocodeResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return "", false
	}

	for _, candidate := range []string{
		payload.Address.City,
		payload.Address.Town,
		payload.Address.Municipality,
		payload.Address.County,
		payload.Address.State,
	} {
		if name := strings.TrimSpace(candidate); name != "" {
			return name, true
		}
	}
	return "", false
}
