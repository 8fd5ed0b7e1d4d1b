// internal/workers/matching/rank-candidates/models.go
package rankcandidates

import "marketplace-workers/internal/models"

// Candidate mirrors the boost worker's per-candidate output.
type Candidate struct {
	Listing    models.Listing     `json:"listing"`
	Match      models.MatchResult `json:"match"`
	DistanceKm *float64           `json:"distanceKm,omitempty"`
	FinalScore int                `json:"finalScore"`
	Priority   bool               `json:"priority"`
}

type Input struct {
	Candidates []Candidate `json:"candidates"`
	SortBy     string      `json:"sortBy,omitempty"`
	SortOrder  string      `json:"sortOrder,omitempty"`
	Page       int         `json:"page,omitempty"`
	Limit      int         `json:"limit,omitempty"`
}

type Output struct {
	Items      []models.RankedCandidate `json:"items"`
	Pagination models.Pagination        `json:"pagination"`
}
