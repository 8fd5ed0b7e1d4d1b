// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

func LoadRegistry(path string) (*TaskRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg TaskRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// FindByTaskType returns the definition registered for the task type.
func (r *TaskRegistry) FindByTaskType(taskType string) (*TaskDefinition, bool) {
	for i := range r.Tasks {
		if r.Tasks[i].TaskType == taskType {
			return &r.Tasks[i], true
		}
	}
	return nil, false
}

// ValidateInput checks job variables against the task's input schema.
// Tasks without a schema accept anything.
func (r *TaskRegistry) ValidateInput(taskType string, variables map[string]interface{}) error {
	def, ok := r.FindByTaskType(taskType)
	if !ok {
		return fmt.Errorf("unknown task type: %s", taskType)
	}
	if len(def.InputSchema) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(def.InputSchema)
	documentLoader := gojsonschema.NewGoLoader(variables)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("input validation failed for %s: %v", taskType, errs)
	}
	return nil
}

// Default returns the built-in registry covering the matching and
// outreach pipeline tasks.
func Default() *TaskRegistry {
	return &TaskRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-08-14",
		Tasks: []TaskDefinition{
			{
				ID:          "parse-search-query",
				DisplayName: "Parse Search Query",
				Description: "Normalizes raw search parameters into a canonical query",
				Category:    "search",
				TaskType:    "parse-search-query",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"categoryId": map[string]interface{}{"type": "string"},
						"latitude":   map[string]interface{}{"type": "number", "minimum": -90, "maximum": 90},
						"longitude":  map[string]interface{}{"type": "number", "minimum": -180, "maximum": 180},
						"radius":     map[string]interface{}{"type": "number", "minimum": 0},
						"page":       map[string]interface{}{"type": "integer", "minimum": 1},
						"limit":      map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 100},
					},
				},
				ErrorCodes: []string{"INVALID_SEARCH_QUERY"},
				Timeout:    "5s",
				Tags:       []string{"search", "validation"},
			},
			{
				ID:          "query-listings",
				DisplayName: "Query Listings",
				Description: "Runs a named Postgres query from the listings registry",
				Category:    "data-access",
				TaskType:    "query-listings",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"queryType"},
					"properties": map[string]interface{}{
						"queryType": map[string]interface{}{"type": "string"},
					},
				},
				ErrorCodes: []string{"QUERY_EXECUTION_FAILED", "QUERY_TIMEOUT", "INVALID_QUERY_TYPE"},
				Timeout:    "15s",
				Retries:    3,
				Tags:       []string{"postgres", "listings"},
			},
			{
				ID:          "search-listings",
				DisplayName: "Search Listings",
				Description: "Keyword search over the Elasticsearch listings index",
				Category:    "data-access",
				TaskType:    "search-listings",
				ErrorCodes:  []string{"SEARCH_QUERY_FAILED", "SEARCH_TIMEOUT", "INDEX_NOT_FOUND"},
				Timeout:     "15s",
				Retries:     3,
				Tags:        []string{"elasticsearch", "listings"},
			},
			{
				ID:          "filter-by-distance",
				DisplayName: "Filter By Distance",
				Description: "Excludes candidates outside the requested radius and annotates distances",
				Category:    "matching",
				TaskType:    "filter-by-distance",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"candidates"},
					"properties": map[string]interface{}{
						"candidates": map[string]interface{}{"type": "array"},
					},
				},
				ErrorCodes: []string{"INVALID_GEO_FILTER"},
				Timeout:    "10s",
				Tags:       []string{"geo", "matching"},
			},
			{
				ID:          "score-compatibility",
				DisplayName: "Score Compatibility",
				Description: "Computes weighted compatibility scores with per-dimension breakdowns",
				Category:    "matching",
				TaskType:    "score-compatibility",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"candidates"},
					"properties": map[string]interface{}{
						"candidates": map[string]interface{}{"type": "array"},
						"weights":    map[string]interface{}{"type": "object"},
					},
				},
				ErrorCodes: []string{"INVALID_WEIGHTS", "SCORING_FAILED"},
				Timeout:    "30s",
				Tags:       []string{"scoring", "matching"},
			},
			{
				ID:          "apply-premium-boost",
				DisplayName: "Apply Premium Boost",
				Description: "Applies subscription-tier score multipliers and priority flags",
				Category:    "matching",
				TaskType:    "apply-premium-boost",
				ErrorCodes:  []string{"BOOST_FAILED"},
				Timeout:     "15s",
				Tags:        []string{"premium", "matching"},
			},
			{
				ID:          "rank-candidates",
				DisplayName: "Rank Candidates",
				Description: "Orders boosted candidates and slices one result page",
				Category:    "matching",
				TaskType:    "rank-candidates",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sortBy":    map[string]interface{}{"enum": []interface{}{"rating", "distance", "price"}},
						"sortOrder": map[string]interface{}{"enum": []interface{}{"asc", "desc"}},
						"page":      map[string]interface{}{"type": "integer", "minimum": 1},
						"limit":     map[string]interface{}{"type": "integer", "minimum": 1},
					},
				},
				ErrorCodes: []string{"INVALID_PAGINATION", "RANKING_FAILED"},
				Timeout:    "10s",
				Tags:       []string{"ranking", "pagination"},
			},
			{
				ID:          "generate-auto-reply",
				DisplayName: "Generate Auto Reply",
				Description: "Assembles the templated outreach message for a match",
				Category:    "outreach",
				TaskType:    "generate-auto-reply",
				ErrorCodes:  []string{"REPLY_GENERATION_FAILED"},
				Timeout:     "5s",
				Tags:        []string{"templates", "outreach"},
			},
			{
				ID:          "notify-match",
				DisplayName: "Notify Match",
				Description: "Delivers a generated reply over email or SMS",
				Category:    "outreach",
				TaskType:    "notify-match",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"reply"},
					"properties": map[string]interface{}{
						"reply": map[string]interface{}{"type": "string", "minLength": 1},
					},
				},
				ErrorCodes: []string{"NOTIFICATION_SEND_FAILED"},
				Timeout:    "20s",
				Retries:    3,
				Tags:       []string{"email", "sms", "outreach"},
			},
		},
	}
}
