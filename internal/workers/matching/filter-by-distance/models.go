// internal/workers/matching/filter-by-distance/models.go
package filterbydistance

import "marketplace-workers/internal/models"

type Input struct {
	Candidates []models.Listing       `json:"candidates"`
	Filter     *models.DistanceFilter `json:"filter,omitempty"`
}

// Candidate pairs a listing with its computed distance instead of
// attaching the distance to the shared listing record.
type Candidate struct {
	Listing    models.Listing `json:"listing"`
	DistanceKm *float64       `json:"distanceKm,omitempty"`
}

type Output struct {
	Candidates    []Candidate `json:"candidates"`
	ExcludedCount int         `json:"excludedCount"`
}
