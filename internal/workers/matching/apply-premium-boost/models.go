// internal/workers/matching/apply-premium-boost/models.go
package applypremiumboost

import "marketplace-workers/internal/models"

// Input carries scored candidates and, optionally, an inline tier map
// keyed by specialist ID. Specialists absent from the map fall back to
// the subscription store lookup; with neither available the tier is
// treated as none.
type Input struct {
	Candidates []models.ScoredCandidate `json:"candidates"`
	Tiers      map[string]string        `json:"tiers,omitempty"`
}

// BoostedCandidate extends a scored candidate with the applied tier,
// final score, and the priority-matching flag.
type BoostedCandidate struct {
	Listing    models.Listing     `json:"listing"`
	Match      models.MatchResult `json:"match"`
	DistanceKm *float64           `json:"distanceKm,omitempty"`
	Tier       models.PremiumTier `json:"tier"`
	BaseScore  int                `json:"baseScore"`
	FinalScore int                `json:"finalScore"`
	Priority   bool               `json:"priority"`
}

type Output struct {
	Candidates []BoostedCandidate `json:"candidates"`
}
