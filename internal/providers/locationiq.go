package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wayfarer/internal/models/trip_models"
	"wayfarer/pkg/utils"
)

// LocationIQGeocoder is a forward geocoder on the LocationIQ search API.
type LocationIQGeocoder struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewLocationIQGeocoder(apiKey, baseURL string, timeout time.Duration) *LocationIQGeocoder {
	return &LocationIQGeocoder{
		HTTP:    newHTTPClient(timeout),
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

type locationIQPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (g *LocationIQGeocoder) Geocode(ctx context.Context, query string) (trip_models.ResolvedLocation, error) {
	q := url.Values{}
	q.Set("key", g.APIKey)
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "5")

	var places []locationIQPlace
	err := getJSON(ctx, g.HTTP, g.BaseURL+"/v1/search.php?"+q.Encode(), nil, &places)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return trip_models.ResolvedLocation{}, utils.ErrNoValidLocation
		}
		return trip_models.ResolvedLocation{}, fmt.Errorf("locationiq search: %w", err)
	}

	for _, p := range places {
		lat, latErr := strconv.ParseFloat(p.Lat, 64)
		lon, lonErr := strconv.ParseFloat(p.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		loc := trip_models.ResolvedLocation{DisplayName: p.DisplayName, Latitude: lat, Longitude: lon}
		if loc.Valid() {
			return loc, nil
		}
	}
	return trip_models.ResolvedLocation{}, utils.ErrNoValidLocation
}
