package api

import (
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// Geocoder resolves coordinates into a human-readable place name through a
// nominatim-style reverse geocoding endpoint.
type Geocoder struct {
	client *Client
}

// NewGeocoder builds a geocoder for the given base URL
func NewGeocoder(baseURL string) *Geocoder {
	return &Geocoder{client: NewClient(baseURL)}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode returns the display name for a coordinate pair
func (g *Geocoder) ReverseGeocode(lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("zoom", "18")
	params.Set("addressdetails", "1")

	var resp reverseResponse
	if err := g.client.get("/reverse", params, &resp); err != nil {
		return "", errors.Wrap(err, "reverse geocoding")
	}
	return resp.DisplayName, nil
}
