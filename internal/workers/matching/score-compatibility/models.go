// internal/workers/matching/score-compatibility/models.go
package scorecompatibility

import "marketplace-workers/internal/models"

// Input accepts the requester criteria in any of the supported shapes:
// canonical, legacy account, preferences document, or by ID for a
// cache-aside lookup. Exactly the first non-empty shape in that order
// is used.
type Input struct {
	Requester   *models.RequesterCriteria `json:"requester,omitempty"`
	Account     *models.Account           `json:"account,omitempty"`
	Preferences *models.UserPreferences   `json:"preferences,omitempty"`
	RequesterID string                    `json:"requesterId,omitempty"`

	Candidates []Candidate        `json:"candidates"`
	Weights    map[string]float64 `json:"weights,omitempty"`
}

// Candidate mirrors the distance filter's output pairing.
type Candidate struct {
	Listing    models.Listing `json:"listing"`
	DistanceKm *float64       `json:"distanceKm,omitempty"`
}

type Output struct {
	Results []models.ScoredCandidate `json:"results"`
}
