package geocode

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"googlemaps.github.io/maps"

	"go-pulse/types"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	mapsErr    error
	clientOnce sync.Once
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient(apiKey string) (*maps.Client, error) {
	clientOnce.Do(func() {
		if apiKey == "" {
			mapsErr = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, mapsErr = maps.NewClient(maps.WithAPIKey(apiKey))
		if mapsErr != nil {
			mapsErr = fmt.Errorf("create maps client: %w", mapsErr)
		}
	})
	return mapsClient, mapsErr
}

// Geocoder resolves place names to coordinates.
type Geocoder struct {
	client *maps.Client
}

func New(client *maps.Client) *Geocoder {
	return &Geocoder{client: client}
}

// Geocode returns the first result for name, or nil when there is none.
func (g *Geocoder) Geocode(ctx context.Context, name string) (*types.GeoPoint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	req := &maps.GeocodingRequest{
		Address: name,
	}

	// Forward geocode: get latitude and longitude for the given address.
	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", name, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	loc := results[0].Geometry.Location
	return &types.GeoPoint{
		FormattedAddress: results[0].FormattedAddress,
		Lat:              loc.Lat,
		Long:             loc.Lng,
	}, nil
}
