// internal/workers/data-access/search-listings/query.go
package searchlistings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ErrMissingIndex = errors.New("index name is required")

// BuildSearchRequest assembles the listings search: keyword relevance
// as a must clause, everything else as filters that do not affect
// scoring.
func BuildSearchRequest(index string, input *Input) (*esapi.SearchRequest, error) {
	if index == "" {
		return nil, ErrMissingIndex
	}

	from := input.From
	if from < 0 {
		from = 0
	}
	size := input.Size
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	body, err := json.Marshal(BuildQueryBody(input))
	if err != nil {
		return nil, fmt.Errorf("marshal query body: %w", err)
	}

	return &esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(string(body)),
		From:  &from,
		Size:  &size,
	}, nil
}

func BuildQueryBody(input *Input) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if input.Keyword != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  input.Keyword,
				"fields": []string{"title^3", "description^2", "tags"},
				"type":   "best_fields",
			},
		})
	}

	if input.CategoryID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"categoryId": input.CategoryID},
		})
	}

	if input.MinRating != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"rating": map[string]interface{}{"gte": *input.MinRating},
			},
		})
	}

	if input.MaxPrice != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"price": map[string]interface{}{"lte": *input.MaxPrice},
			},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	} else {
		boolQuery["must"] = []interface{}{map[string]interface{}{"match_all": map[string]interface{}{}}}
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}
