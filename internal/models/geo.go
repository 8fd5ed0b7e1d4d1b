// internal/models/geo.go
package models

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Valid reports whether the point lies within the WGS84 coordinate range.
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceFilter restricts candidates to a radius around a center point.
type DistanceFilter struct {
	Center   GeoPoint `json:"center"`
	RadiusKm float64  `json:"radiusKm"`
}
