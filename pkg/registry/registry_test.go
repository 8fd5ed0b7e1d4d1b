// pkg/registry/registry_test.go
package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversAllPipelineTasks(t *testing.T) {
	reg := Default()

	expected := []string{
		"parse-search-query", "query-listings", "search-listings",
		"filter-by-distance", "score-compatibility", "apply-premium-boost",
		"rank-candidates", "generate-auto-reply", "notify-match",
	}
	for _, taskType := range expected {
		def, ok := reg.FindByTaskType(taskType)
		require.True(t, ok, "task %s missing", taskType)
		assert.NotEmpty(t, def.DisplayName)
		assert.NotEmpty(t, def.Category)
	}
}

func TestValidateInput_AcceptsValidVariables(t *testing.T) {
	reg := Default()

	err := reg.ValidateInput("score-compatibility", map[string]interface{}{
		"candidates": []interface{}{},
		"weights":    map[string]interface{}{"skills": 0.5},
	})
	assert.NoError(t, err)
}

func TestValidateInput_RejectsSchemaViolations(t *testing.T) {
	reg := Default()

	tests := []struct {
		name      string
		taskType  string
		variables map[string]interface{}
	}{
		{
			"missing required field",
			"query-listings",
			map[string]interface{}{"categoryId": "plumbing"},
		},
		{
			"out-of-range page",
			"rank-candidates",
			map[string]interface{}{"page": 0},
		},
		{
			"bad sortBy enum",
			"rank-candidates",
			map[string]interface{}{"sortBy": "popularity"},
		},
		{
			"empty reply",
			"notify-match",
			map[string]interface{}{"reply": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, reg.ValidateInput(tt.taskType, tt.variables))
		})
	}
}

func TestValidateInput_UnknownTaskType(t *testing.T) {
	reg := Default()
	assert.Error(t, reg.ValidateInput("score-vibes", nil))
}

func TestValidateInput_NoSchemaAcceptsAnything(t *testing.T) {
	reg := Default()
	assert.NoError(t, reg.ValidateInput("apply-premium-boost", map[string]interface{}{
		"whatever": true,
	}))
}
