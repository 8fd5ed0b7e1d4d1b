// internal/workers/matching/apply-premium-boost/handler.go
package applypremiumboost

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "apply-premium-boost"

	tierCachePrefix = "match:tier:"
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  rdb,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey": job.Key,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "BOOST_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// Boost applies a tier multiplier to a base score and caps the result
// at 100. Tier none returns the base score untouched, never a rounded
// copy of it.
func Boost(score int, tier models.PremiumTier) int {
	if tier == models.TierNone {
		return score
	}
	boosted := int(math.Round(float64(score) * tier.BoostFactor()))
	if boosted > 100 {
		return 100
	}
	return boosted
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	boosted := make([]BoostedCandidate, len(input.Candidates))
	for i, c := range input.Candidates {
		tier := h.resolveTier(ctx, input, c.Listing.SpecialistID)
		boosted[i] = BoostedCandidate{
			Listing:    c.Listing,
			Match:      c.Match,
			DistanceKm: c.DistanceKm,
			Tier:       tier,
			BaseScore:  c.Match.Score,
			FinalScore: Boost(c.Match.Score, tier),
			Priority:   tier.PriorityMatching(),
		}
	}

	h.logger.Info("boost applied", map[string]interface{}{
		"candidateCount": len(boosted),
	})

	return &Output{Candidates: boosted}, nil
}

// resolveTier prefers the inline tier map, then the subscription
// store. Any lookup failure or unknown tier string degrades to none,
// which leaves the score untouched.
func (h *Handler) resolveTier(ctx context.Context, input *Input, specialistID string) models.PremiumTier {
	if raw, ok := input.Tiers[specialistID]; ok {
		return models.ParseTier(raw)
	}
	if specialistID == "" {
		return models.TierNone
	}

	tier, err := h.getTier(ctx, specialistID)
	if err != nil {
		h.logger.Warn("tier lookup failed", map[string]interface{}{
			"specialistId": specialistID,
			"error":        err,
		})
		return models.TierNone
	}
	return tier
}

func (h *Handler) getTier(ctx context.Context, specialistID string) (models.PremiumTier, error) {
	cacheKey := tierCachePrefix + specialistID
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			return models.ParseTier(val), nil
		}
	}

	if h.db == nil {
		return models.TierNone, fmt.Errorf("no subscription source configured")
	}

	var raw string
	err := h.db.QueryRowContext(ctx, `
		SELECT tier FROM subscriptions
		WHERE specialist_id = $1 AND status = 'active'`, specialistID).Scan(&raw)
	if err == sql.ErrNoRows {
		raw = string(models.TierNone)
	} else if err != nil {
		return models.TierNone, err
	}

	if h.redis != nil {
		h.redis.Set(ctx, cacheKey, raw, h.config.CacheTTL)
	}

	return models.ParseTier(raw), nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
