// internal/models/listing.go
package models

// Listing is a marketplace service listing owned by a specialist.
// Latitude/Longitude are pointers because many listings carry only a
// free-text location.
type Listing struct {
	ID           string   `json:"id"`
	SpecialistID string   `json:"specialistId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"categoryId"`
	Tags         []string `json:"tags"`
	Location     string   `json:"location"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Schedule     []string `json:"schedule"`
	Price        float64  `json:"price"`
}

// SpecialistProfile is the partial specialist record the outreach
// generator consumes.
type SpecialistProfile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Skills     []string `json:"skills"`
	HourlyRate float64  `json:"hourlyRate"`
}

// GeoPoint returns the listing position, or false when coordinates are
// missing or out of range.
func (l *Listing) GeoPoint() (GeoPoint, bool) {
	if l.Latitude == nil || l.Longitude == nil {
		return GeoPoint{}, false
	}
	p := GeoPoint{Lat: *l.Latitude, Lng: *l.Longitude}
	if !p.Valid() {
		return GeoPoint{}, false
	}
	return p, true
}
