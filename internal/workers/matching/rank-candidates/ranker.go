// internal/workers/matching/rank-candidates/ranker.go
package rankcandidates

import (
	"errors"
	"fmt"
	"sort"

	"marketplace-workers/internal/models"
)

const (
	SortByRating   = "rating"
	SortByDistance = "distance"
	SortByPrice    = "price"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

var ErrInvalidPagination = errors.New("INVALID_PAGINATION")

// Rank orders candidates and slices out one page. Priority candidates
// always precede non-priority ones regardless of the sort key; within
// each partition distance requests order by distance and every other
// key orders by score, with listing ID ascending as the final
// tie-break. Candidates without a distance sort last when sorting by
// distance, whatever the order.
func Rank(candidates []Candidate, sortBy, sortOrder string, page, limit int) (*Output, error) {
	if sortBy == "" {
		sortBy = SortByRating
	}
	if sortOrder == "" {
		if sortBy == SortByRating {
			sortOrder = SortOrderDesc
		} else {
			sortOrder = SortOrderAsc
		}
	}
	if page == 0 {
		page = 1
	}

	switch sortBy {
	case SortByRating, SortByDistance, SortByPrice:
	default:
		return nil, fmt.Errorf("%w: unsupported sortBy %q", ErrInvalidPagination, sortBy)
	}
	switch sortOrder {
	case SortOrderAsc, SortOrderDesc:
	default:
		return nil, fmt.Errorf("%w: unsupported sortOrder %q", ErrInvalidPagination, sortOrder)
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidPagination, page)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidPagination, limit)
	}

	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Priority != b.Priority {
			return a.Priority
		}
		if cmp := compareByKey(a, b, sortBy, sortOrder); cmp != 0 {
			return cmp < 0
		}
		return a.Listing.ID < b.Listing.ID
	})

	totalCount := len(ordered)
	totalPages := (totalCount + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > totalCount {
		start, end = totalCount, totalCount
	} else if end > totalCount {
		end = totalCount
	}

	items := make([]models.RankedCandidate, 0, end-start)
	for _, c := range ordered[start:end] {
		items = append(items, models.RankedCandidate{
			ListingID:    c.Listing.ID,
			SpecialistID: c.Listing.SpecialistID,
			Score:        c.FinalScore,
			DistanceKm:   c.DistanceKm,
			Priority:     c.Priority,
		})
	}

	return &Output{
		Items: items,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			TotalCount: totalCount,
			TotalPages: totalPages,
		},
	}, nil
}

// compareByKey returns a negative value when a sorts before b.
func compareByKey(a, b Candidate, sortBy, sortOrder string) int {
	var cmp int
	switch sortBy {
	case SortByDistance:
		// Missing distances sink to the bottom unconditionally.
		switch {
		case a.DistanceKm == nil && b.DistanceKm == nil:
			return 0
		case a.DistanceKm == nil:
			return 1
		case b.DistanceKm == nil:
			return -1
		}
		cmp = compareFloat(*a.DistanceKm, *b.DistanceKm)
	default:
		// Distance is the only key with its own comparison; rating and
		// price requests both rank on the composite score.
		cmp = a.FinalScore - b.FinalScore
	}

	if sortOrder == SortOrderDesc {
		cmp = -cmp
	}
	return cmp
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
