// internal/workers/matching/score-compatibility/handler.go
package scorecompatibility

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "score-compatibility"

	criteriaCachePrefix = "match:criteria:"
)

var (
	ErrInvalidWeights = errors.New("INVALID_WEIGHTS")
)

// ReputationFunc supplies a specialist's reputation score. The default
// implementation returns a fixed configured value; a real lookup can be
// injected without touching the scorer.
type ReputationFunc func(ctx context.Context, specialistID string) int

type Handler struct {
	config     *Config
	db         *sql.DB
	redis      *redis.Client
	logger     logger.Logger
	reputation ReputationFunc
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	h := &Handler{
		config: config,
		db:     db,
		redis:  rdb,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
	h.reputation = func(context.Context, string) int { return config.ReputationDefault }
	return h
}

// WithReputation replaces the default fixed reputation source.
func (h *Handler) WithReputation(fn ReputationFunc) *Handler {
	h.reputation = fn
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
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
		errorCode := "SCORING_FAILED"
		if errors.Is(err, ErrInvalidWeights) {
			errorCode = "INVALID_WEIGHTS"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	criteria := h.resolveCriteria(ctx, input)

	weights := h.config.Weights
	if len(input.Weights) > 0 {
		weights = input.Weights
	}
	if err := validateWeights(weights); err != nil {
		return nil, err
	}

	results := make([]models.ScoredCandidate, len(input.Candidates))

	// Candidates score independently, so fan out across a bounded pool
	// and merge by index to keep the output order deterministic.
	concurrency := h.config.MaxConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(input.Candidates) {
		concurrency = len(input.Candidates)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, max(1, concurrency))
	for i := range input.Candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			c := input.Candidates[i]
			rep := h.reputation(ctx, c.Listing.SpecialistID)
			// Weights were validated up front, so per-candidate
			// scoring cannot fail.
			match, _ := Score(criteria, c.Listing, weights, rep)
			results[i] = models.ScoredCandidate{
				Listing:    c.Listing,
				Match:      match,
				DistanceKm: c.DistanceKm,
			}
		}(i)
	}
	wg.Wait()

	metrics.CandidatesScored.Add(float64(len(results)))

	h.logger.Info("batch scored", map[string]interface{}{
		"requesterId":    criteria.RequesterID,
		"candidateCount": len(results),
	})

	return &Output{Results: results}, nil
}

// resolveCriteria normalizes whichever requester shape the job carried.
// A failed by-ID lookup degrades to empty criteria: every dimension
// then evaluates to its neutral default instead of failing the batch.
func (h *Handler) resolveCriteria(ctx context.Context, input *Input) models.RequesterCriteria {
	switch {
	case input.Requester != nil:
		return *input.Requester
	case input.Account != nil:
		return models.CriteriaFromAccount(*input.Account)
	case input.Preferences != nil:
		return models.CriteriaFromPreferences(*input.Preferences)
	case input.RequesterID != "":
		criteria, err := h.getCriteria(ctx, input.RequesterID)
		if err != nil {
			h.logger.Warn("failed to fetch requester criteria", map[string]interface{}{
				"requesterId": input.RequesterID,
				"error":       err,
			})
			return models.RequesterCriteria{RequesterID: input.RequesterID}
		}
		return criteria
	default:
		return models.RequesterCriteria{}
	}
}

func (h *Handler) getCriteria(ctx context.Context, requesterID string) (models.RequesterCriteria, error) {
	cacheKey := criteriaCachePrefix + requesterID
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var criteria models.RequesterCriteria
			if err := json.Unmarshal([]byte(val), &criteria); err == nil {
				return criteria, nil
			}
		}
	}

	if h.db == nil {
		return models.RequesterCriteria{}, fmt.Errorf("no criteria source configured")
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT skills, location, latitude, longitude, availability,
		       budget_min, budget_max, preferred_category
		FROM user_preferences WHERE user_id = $1`, requesterID)

	criteria := models.RequesterCriteria{RequesterID: requesterID}
	var skills, availability []byte
	var lat, lng sql.NullFloat64
	err := row.Scan(&skills, &criteria.Location, &lat, &lng, &availability,
		&criteria.BudgetMin, &criteria.BudgetMax, &criteria.PreferredCategory)
	if err != nil {
		return models.RequesterCriteria{}, err
	}

	if lat.Valid && lng.Valid {
		criteria.Latitude = &lat.Float64
		criteria.Longitude = &lng.Float64
	}
	if err := json.Unmarshal(skills, &criteria.Skills); err != nil {
		criteria.Skills = []string{}
	}
	if err := json.Unmarshal(availability, &criteria.Availability); err != nil {
		criteria.Availability = []string{}
	}

	if h.redis != nil {
		if data, err := json.Marshal(criteria); err == nil {
			h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)
		}
	}

	return criteria, nil
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
