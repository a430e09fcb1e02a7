package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"wayfarer/internal/models/trip_models"
	"wayfarer/pkg/utils"
)

// AmadeusHotels lists hotels around a coordinate through the Amadeus
// reference-data API. Tokens are fetched and refreshed by the oauth2 client.
type AmadeusHotels struct {
	HTTP    *http.Client
	BaseURL string
}

func NewAmadeusHotels(clientID, clientSecret, baseURL string, timeout time.Duration) *AmadeusHotels {
	baseURL = strings.TrimRight(baseURL, "/")
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	base := newHTTPClient(timeout)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := cfg.Client(ctx)
	client.Timeout = base.Timeout

	return &AmadeusHotels{HTTP: client, BaseURL: baseURL}
}

type amadeusHotelsResponse struct {
	Data []struct {
		Name    string `json:"name"`
		HotelID string `json:"hotelId"`
		GeoCode struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"geoCode"`
		Address struct {
			Lines       []string `json:"lines"`
			CityName    string   `json:"cityName"`
			CountryCode string   `json:"countryCode"`
		} `json:"address"`
	} `json:"data"`
}

func (a *AmadeusHotels) NearbyLodging(ctx context.Context, lat, lon float64, limit int) ([]trip_models.Lodging, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("radius", "5")
	q.Set("radiusUnit", "KM")

	var resp amadeusHotelsResponse
	if err := getJSON(ctx, a.HTTP, a.BaseURL+"/v1/reference-data/locations/hotels/by-geocode?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("amadeus hotels: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, utils.ErrEmptyPayload
	}

	var hotels []trip_models.Lodging
	for _, h := range resp.Data {
		if h.Name == "" {
			continue
		}
		parts := append([]string{}, h.Address.Lines...)
		if h.Address.CityName != "" {
			parts = append(parts, h.Address.CityName)
		}
		if h.Address.CountryCode != "" {
			parts = append(parts, h.Address.CountryCode)
		}
		address := strings.Join(parts, ", ")

		hotels = append(hotels, trip_models.Lodging{
			Name:        h.Name,
			Address:     address,
			Price:       "Contact hotel for pricing",
			Rating:      "N/A",
			Description: "Hotel near your destination",
			BookingURL:  trip_models.BookingSearchURL(h.Name, address),
			HotelID:     h.HotelID,
			Lat:         h.GeoCode.Latitude,
			Lon:         h.GeoCode.Longitude,
		})
		if limit > 0 && len(hotels) >= limit {
			break
		}
	}
	return hotels, nil
}
