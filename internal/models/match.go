// internal/models/match.go
package models

// DimensionScore is one axis of a compatibility breakdown.
type DimensionScore struct {
	Score       int     `json:"score"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// MatchResult is a compatibility score with its explanation. The
// weighted sum of breakdown scores, normalized by total weight,
// reproduces Score within rounding.
type MatchResult struct {
	Score         int                       `json:"score"`
	PrimaryReason string                    `json:"primaryReason"`
	Breakdown     map[string]DimensionScore `json:"breakdown"`
}

// ScoredCandidate pairs a listing with its match result and, when a geo
// query was active, its distance from the requester. Distance lives
// here rather than on the listing so shared listing records are never
// mutated.
type ScoredCandidate struct {
	Listing    Listing     `json:"listing"`
	Match      MatchResult `json:"match"`
	DistanceKm *float64    `json:"distanceKm,omitempty"`
}

// RankedCandidate is the pipeline's terminal per-candidate shape.
type RankedCandidate struct {
	ListingID    string   `json:"listingId"`
	SpecialistID string   `json:"specialistId"`
	Score        int      `json:"score"`
	DistanceKm   *float64 `json:"distanceKm,omitempty"`
	Priority     bool     `json:"priority"`
}

// Pagination describes one page of a ranked result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}
