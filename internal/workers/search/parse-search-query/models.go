// internal/workers/search/parse-search-query/models.go
package parsesearchquery

import "marketplace-workers/internal/models"

// Input is the raw, untrusted search parameter map as the process
// received it. Pointer fields distinguish absent from zero.
type Input struct {
	CategoryID string   `json:"categoryId,omitempty"`
	Keyword    string   `json:"keyword,omitempty"`
	MinRating  *float64 `json:"rating,omitempty"`
	Location   string   `json:"location,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	RadiusKm   *float64 `json:"radius,omitempty"`
	SortBy     string   `json:"sortBy,omitempty"`
	SortOrder  string   `json:"sortOrder,omitempty"`
	Page       *int     `json:"page,omitempty"`
	Limit      *int     `json:"limit,omitempty"`
}

// SearchQuery is the canonical, validated query the rest of the
// pipeline consumes.
type SearchQuery struct {
	CategoryID string                 `json:"categoryId,omitempty"`
	Keyword    string                 `json:"keyword,omitempty"`
	MinRating  float64                `json:"minRating,omitempty"`
	Location   string                 `json:"location,omitempty"`
	GeoFilter  *models.DistanceFilter `json:"geoFilter,omitempty"`
	SortBy     string                 `json:"sortBy"`
	SortOrder  string                 `json:"sortOrder"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

type Output struct {
	Query SearchQuery `json:"query"`
}
