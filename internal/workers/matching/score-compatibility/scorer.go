// internal/workers/matching/score-compatibility/scorer.go
package scorecompatibility

import (
	"fmt"
	"math"
	"strings"

	"marketplace-workers/internal/models"
)

// DimensionOrder is the fixed evaluation order. It also breaks ties
// for the primary reason: the first dimension with the largest
// weighted contribution wins.
var DimensionOrder = []string{
	"skills",
	"location",
	"availability",
	"price",
	"category",
	"reputation",
}

const neutralScore = 50

// dimensionResult is one evaluated axis before weighting.
type dimensionResult struct {
	score       int
	description string
}

// Score computes the compatibility of a listing against requester
// criteria. weights must cover only known dimensions and carry no
// negative values; missing dimensions default to weight 0.
func Score(criteria models.RequesterCriteria, listing models.Listing, weights map[string]float64, reputation int) (models.MatchResult, error) {
	if err := validateWeights(weights); err != nil {
		return models.MatchResult{}, err
	}

	dims := map[string]dimensionResult{
		"skills":       scoreSkills(criteria.Skills, listing.Tags),
		"location":     scoreLocation(criteria.Location, listing.Location),
		"availability": scoreAvailability(criteria.Availability, listing.Schedule),
		"price":        scorePrice(listing.Price, criteria.BudgetMin, criteria.BudgetMax),
		"category":     scoreCategory(criteria.PreferredCategory, listing.Category),
		"reputation":   scoreReputation(reputation),
	}

	breakdown := make(map[string]models.DimensionScore, len(dims))
	var weightedSum, totalWeight float64
	var primaryReason string
	bestContribution := math.Inf(-1)

	for _, name := range DimensionOrder {
		d := dims[name]
		w := weights[name]

		breakdown[name] = models.DimensionScore{
			Score:       d.score,
			Weight:      w,
			Description: d.description,
		}

		weightedSum += float64(d.score) * w
		totalWeight += w

		// Strict > keeps the first dimension on ties.
		if contribution := float64(d.score) * w; contribution > bestContribution {
			bestContribution = contribution
			primaryReason = d.description
		}
	}

	final := neutralScore
	if totalWeight > 0 {
		final = int(math.Round(weightedSum / totalWeight))
	}

	return models.MatchResult{
		Score:         final,
		PrimaryReason: primaryReason,
		Breakdown:     breakdown,
	}, nil
}

func validateWeights(weights map[string]float64) error {
	known := make(map[string]bool, len(DimensionOrder))
	for _, name := range DimensionOrder {
		known[name] = true
	}
	for name, w := range weights {
		if !known[name] {
			return fmt.Errorf("%w: unknown dimension %q", ErrInvalidWeights, name)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: dimension %q has weight %v", ErrInvalidWeights, name, w)
		}
	}
	return nil
}

// scoreSkills counts listing tags that case-insensitively equal a
// requester skill. Missing data on either side is neutral, never a
// penalty.
func scoreSkills(skills, tags []string) dimensionResult {
	if len(skills) == 0 || len(tags) == 0 {
		return dimensionResult{neutralScore, "no skill data available"}
	}

	wanted := make(map[string]bool, len(skills))
	for _, s := range skills {
		wanted[strings.ToLower(strings.TrimSpace(s))] = true
	}

	matchCount := 0
	for _, tag := range tags {
		if wanted[strings.ToLower(strings.TrimSpace(tag))] {
			matchCount++
		}
	}

	score := int(math.Round(100 * float64(matchCount) / float64(max(1, len(tags)))))
	return dimensionResult{
		score,
		fmt.Sprintf("%d of %d service tags match the requested skills", matchCount, len(tags)),
	}
}

func scoreLocation(requesterLoc, listingLoc string) dimensionResult {
	requesterLoc = strings.TrimSpace(requesterLoc)
	listingLoc = strings.TrimSpace(listingLoc)

	if requesterLoc == "" || listingLoc == "" {
		return dimensionResult{neutralScore, "location information incomplete"}
	}
	if requesterLoc == listingLoc {
		return dimensionResult{100, "located in the requested area"}
	}
	return dimensionResult{neutralScore, "located in a different area"}
}

func scoreAvailability(availability, schedule []string) dimensionResult {
	if len(availability) == 0 || len(schedule) == 0 {
		return dimensionResult{neutralScore, "no availability data"}
	}

	wanted := make(map[string]bool, len(availability))
	for _, slot := range availability {
		wanted[slot] = true
	}

	overlap := 0
	for _, slot := range schedule {
		if wanted[slot] {
			overlap++
		}
	}

	score := int(math.Round(100 * float64(overlap) / float64(len(schedule))))
	return dimensionResult{
		score,
		fmt.Sprintf("%d of %d schedule slots overlap with your availability", overlap, len(schedule)),
	}
}

// scorePrice ladders the listing price against the budget ceiling.
// Malformed prices (NaN, non-positive) count as missing data.
func scorePrice(price, budgetMin, budgetMax float64) dimensionResult {
	if price <= 0 || math.IsNaN(price) || budgetMax <= 0 || math.IsNaN(budgetMax) {
		return dimensionResult{neutralScore, "no pricing data to compare"}
	}
	_ = budgetMin // the floor never penalizes; cheap is fine

	switch {
	case price <= budgetMax:
		return dimensionResult{100, "price fits within your budget"}
	case price <= budgetMax*1.2:
		return dimensionResult{70, "price slightly above your budget"}
	case price <= budgetMax*1.5:
		return dimensionResult{40, "price well above your budget"}
	default:
		return dimensionResult{20, "price far above your budget"}
	}
}

func scoreCategory(preferred, category string) dimensionResult {
	preferred = strings.TrimSpace(preferred)
	category = strings.TrimSpace(category)

	if preferred == "" || category == "" {
		return dimensionResult{neutralScore, "no category preference set"}
	}
	if preferred == category {
		return dimensionResult{100, "exactly the service category you wanted"}
	}
	return dimensionResult{30, "different service category"}
}

func scoreReputation(reputation int) dimensionResult {
	return dimensionResult{reputation, "established specialist reputation"}
}
