package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Location mirrors a row of the location table. The backend stores the
// coordinate as a single "lat;lng" geo string; Latitude/Longitude are filled
// from it after fetching.
type Location struct {
	ID          any     `json:"id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	TreeID      any     `json:"tree_id,omitempty"`
	GeoLocation string  `json:"geoLocation,omitempty"`
}

// ParseGeoLocation fills Latitude/Longitude from the GeoLocation cell.
// Records without a geo string are left untouched.
func (l *Location) ParseGeoLocation() error {
	if l.GeoLocation == "" {
		return nil
	}

	parts := strings.Split(l.GeoLocation, ";")
	if len(parts) != 2 {
		return fmt.Errorf("invalid geo point %q, expected \"lat;lng\"", l.GeoLocation)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("invalid latitude in geo point %q", l.GeoLocation)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("invalid longitude in geo point %q", l.GeoLocation)
	}

	l.Latitude = lat
	l.Longitude = lng
	return nil
}
