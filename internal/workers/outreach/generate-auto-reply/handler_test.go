// internal/workers/outreach/generate-auto-reply/handler_test.go
package generateautoreply

import (
	"context"
	"testing"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_ProducesMessageIDAndReply(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Requester:  sampleRequester(),
		Listing:    models.Listing{ID: "lst-1"},
		Specialist: sampleSpecialist(),
	})
	require.NoError(t, err)

	_, err = uuid.Parse(output.MessageID)
	assert.NoError(t, err)
	assert.NotEmpty(t, output.Reply)
}

func TestExecute_SignatureFallbackFromConfig(t *testing.T) {
	cfg := LoadConfig()
	cfg.SignatureName = "The Specialist Team"
	h := NewHandler(cfg, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Requester: sampleRequester(),
		Listing:   models.Listing{ID: "lst-1"},
	})
	require.NoError(t, err)
	assert.Contains(t, output.Reply, "The Specialist Team")
}

func TestExecute_NilInput(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), nil)
	assert.Error(t, err)
}
