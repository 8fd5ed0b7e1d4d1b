// internal/workers/matching/rank-candidates/handler_test.go
package rankcandidates

import (
	"context"
	"testing"

	"marketplace-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_AppliesDefaultLimit(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	candidates := make([]Candidate, 25)
	for i := range candidates {
		candidates[i] = candidate(string(rune('a'+i)), 50, false)
	}

	output, err := h.Execute(context.Background(), &Input{Candidates: candidates})
	require.NoError(t, err)
	assert.Len(t, output.Items, 20)
	assert.Equal(t, 20, output.Pagination.Limit)
	assert.Equal(t, 2, output.Pagination.TotalPages)
}

func TestExecute_RejectsLimitAboveMaximum(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{
		Candidates: []Candidate{candidate("a", 50, false)},
		Limit:      500,
	})
	assert.ErrorIs(t, err, ErrInvalidPagination)
}

func TestExecute_NilInput(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), nil)
	assert.Error(t, err)
}
