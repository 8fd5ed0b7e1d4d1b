// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeListingsByCategory   QueryType = "listings_by_category"
	QueryTypeListingsBySpecialist QueryType = "listings_by_specialist"
	QueryTypeRequesterCriteria    QueryType = "requester_criteria"
	QueryTypeSpecialistTier       QueryType = "specialist_tier"
)
