// internal/workers/data-access/search-listings/models.go
package searchlistings

import "marketplace-workers/internal/models"

type Input struct {
	IndexName  string   `json:"indexName,omitempty"`
	Keyword    string   `json:"keyword,omitempty"`
	CategoryID string   `json:"categoryId,omitempty"`
	MinRating  *float64 `json:"minRating,omitempty"`
	MaxPrice   *float64 `json:"maxPrice,omitempty"`
	From       int      `json:"from,omitempty"`
	Size       int      `json:"size,omitempty"`
}

type Output struct {
	Listings  []models.Listing `json:"listings"`
	TotalHits int64            `json:"totalHits"`
	MaxScore  float64          `json:"maxScore"`
	Took      int64            `json:"took"` // milliseconds
}
