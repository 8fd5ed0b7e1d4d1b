// internal/workers/data-access/search-listings/query_test.go
package searchlistings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestBuildQueryBody_KeywordAndFilters(t *testing.T) {
	body := BuildQueryBody(&Input{
		Keyword:    "pipe repair",
		CategoryID: "plumbing",
		MinRating:  fptr(4),
		MaxPrice:   fptr(150),
	})

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})

	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "pipe repair", multiMatch["query"])

	filters := boolQuery["filter"].([]interface{})
	assert.Len(t, filters, 3)
}

func TestBuildQueryBody_NoKeywordFallsBackToMatchAll(t *testing.T) {
	body := BuildQueryBody(&Input{CategoryID: "plumbing"})

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	_, ok := must[0].(map[string]interface{})["match_all"]
	assert.True(t, ok)
}

func TestBuildSearchRequest_PaginationClamped(t *testing.T) {
	req, err := BuildSearchRequest("listings", &Input{From: -5, Size: 500})
	require.NoError(t, err)
	assert.Equal(t, 0, *req.From)
	assert.Equal(t, 100, *req.Size)

	req, err = BuildSearchRequest("listings", &Input{})
	require.NoError(t, err)
	assert.Equal(t, 20, *req.Size)
}

func TestBuildSearchRequest_MissingIndex(t *testing.T) {
	_, err := BuildSearchRequest("", &Input{})
	assert.ErrorIs(t, err, ErrMissingIndex)
}
