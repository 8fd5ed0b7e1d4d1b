// internal/workers/matching/rank-candidates/ranker_test.go
package rankcandidates

import (
	"testing"

	"marketplace-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id string, score int, priority bool) Candidate {
	return Candidate{
		Listing:    models.Listing{ID: id, SpecialistID: "spc-" + id},
		FinalScore: score,
		Priority:   priority,
	}
}

func withDistance(c Candidate, km float64) Candidate {
	c.DistanceKm = &km
	return c
}

func withPrice(c Candidate, price float64) Candidate {
	c.Listing.Price = price
	return c
}

func ids(items []models.RankedCandidate) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ListingID
	}
	return out
}

func TestRank_PriorityPartitionPrecedesScore(t *testing.T) {
	candidates := []Candidate{
		candidate("a", 95, false),
		candidate("b", 40, true),
		candidate("c", 80, false),
		candidate("d", 60, true),
	}

	output, err := Rank(candidates, SortByRating, SortOrderDesc, 1, 10)
	require.NoError(t, err)

	// Priority first even with lower scores, then by score desc.
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(output.Items))
	assert.True(t, output.Items[0].Priority)
	assert.True(t, output.Items[1].Priority)
}

func TestRank_RatingAscending(t *testing.T) {
	candidates := []Candidate{
		candidate("a", 95, false),
		candidate("b", 40, false),
		candidate("c", 80, false),
	}

	output, err := Rank(candidates, SortByRating, SortOrderAsc, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids(output.Items))
}

func TestRank_TieBreakByListingID(t *testing.T) {
	candidates := []Candidate{
		candidate("zeta", 80, false),
		candidate("alpha", 80, false),
		candidate("mid", 80, false),
	}

	output, err := Rank(candidates, SortByRating, SortOrderDesc, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, ids(output.Items))
}

func TestRank_DistanceMissingSortsLast(t *testing.T) {
	candidates := []Candidate{
		candidate("far", 50, false),
		candidate("unknown", 99, false),
		candidate("near", 50, false),
	}
	candidates[0] = withDistance(candidates[0], 12.5)
	candidates[2] = withDistance(candidates[2], 1.2)

	asc, err := Rank(candidates, SortByDistance, SortOrderAsc, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"near", "far", "unknown"}, ids(asc.Items))

	// Missing distance stays last even when the order flips.
	desc, err := Rank(candidates, SortByDistance, SortOrderDesc, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"far", "near", "unknown"}, ids(desc.Items))
}

func TestRank_ByPriceUsesScore(t *testing.T) {
	// The ranker keys on (score, distance, priority); a price request
	// orders by score, never by the listing price itself.
	candidates := []Candidate{
		withPrice(candidate("a", 90, false), 10),
		withPrice(candidate("b", 10, false), 200),
		withPrice(candidate("c", 50, false), 40),
	}

	asc, err := Rank(candidates, SortByPrice, SortOrderAsc, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids(asc.Items))

	desc, err := Rank(candidates, SortByPrice, SortOrderDesc, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(desc.Items))
}

func TestRank_Pagination(t *testing.T) {
	candidates := make([]Candidate, 0, 7)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		candidates = append(candidates, candidate(id, 50, false))
	}

	page1, err := Rank(candidates, SortByRating, SortOrderDesc, 1, 3)
	require.NoError(t, err)
	page2, err := Rank(candidates, SortByRating, SortOrderDesc, 2, 3)
	require.NoError(t, err)
	page3, err := Rank(candidates, SortByRating, SortOrderDesc, 3, 3)
	require.NoError(t, err)

	assert.Equal(t, 7, page1.Pagination.TotalCount)
	assert.Equal(t, 3, page1.Pagination.TotalPages)
	assert.Len(t, page1.Items, 3)
	assert.Len(t, page2.Items, 3)
	assert.Len(t, page3.Items, 1)

	// Concatenated pages reproduce the full ordering with no overlap.
	all := append(append(ids(page1.Items), ids(page2.Items)...), ids(page3.Items)...)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, all)
}

func TestRank_PageBeyondRangeIsEmpty(t *testing.T) {
	candidates := []Candidate{candidate("a", 50, false)}

	output, err := Rank(candidates, SortByRating, SortOrderDesc, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, output.Items)
	assert.Equal(t, 1, output.Pagination.TotalCount)
	assert.Equal(t, 5, output.Pagination.Page)
}

func TestRank_InvalidParameters(t *testing.T) {
	candidates := []Candidate{candidate("a", 50, false)}

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		page      int
		limit     int
	}{
		{"unknown sortBy", "popularity", SortOrderDesc, 1, 10},
		{"unknown sortOrder", SortByRating, "sideways", 1, 10},
		{"negative page", SortByRating, SortOrderDesc, -1, 10},
		{"zero limit", SortByRating, SortOrderDesc, 1, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rank(candidates, tt.sortBy, tt.sortOrder, tt.page, tt.limit)
			assert.ErrorIs(t, err, ErrInvalidPagination)
		})
	}
}

func TestRank_EmptyInput(t *testing.T) {
	output, err := Rank(nil, "", "", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, output.Items)
	assert.Equal(t, 0, output.Pagination.TotalPages)
}
