// internal/workers/search/parse-search-query/handler.go
package parsesearchquery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/common/validation"
	"marketplace-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "parse-search-query"

var ErrInvalidSearchQuery = errors.New("INVALID_SEARCH_QUERY")

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "INVALID_SEARCH_QUERY", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidSearchQuery)
	}

	query := SearchQuery{
		CategoryID: input.CategoryID,
		Keyword:    input.Keyword,
		Location:   input.Location,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
		Page:       1,
		Limit:      h.config.DefaultLimit,
	}
	if query.SortBy == "" {
		query.SortBy = "rating"
	}
	if query.SortOrder == "" {
		query.SortOrder = "desc"
	}
	if input.Page != nil {
		query.Page = *input.Page
	}
	if input.Limit != nil {
		query.Limit = *input.Limit
	}
	if input.MinRating != nil {
		query.MinRating = *input.MinRating
	}

	v := validation.NewValidator()
	v.RequireMin("page", query.Page, 1)
	v.RequireMin("limit", query.Limit, 1)
	if query.Limit > h.config.MaxLimit {
		v.Add("limit", "ABOVE_MAXIMUM", "must be at most %d, got %d", h.config.MaxLimit, query.Limit)
	}
	v.RequireOneOf("sortBy", query.SortBy, "rating", "distance", "price")
	v.RequireOneOf("sortOrder", query.SortOrder, "asc", "desc")
	if input.MinRating != nil {
		v.RequireRange("rating", *input.MinRating, 0, 5)
	}

	geoCount := 0
	if input.Latitude != nil {
		geoCount++
	}
	if input.Longitude != nil {
		geoCount++
	}
	if input.RadiusKm != nil {
		geoCount++
	}
	switch geoCount {
	case 0:
		// no geo filter requested
	case 3:
		v.RequireRange("latitude", *input.Latitude, -90, 90)
		v.RequireRange("longitude", *input.Longitude, -180, 180)
		if *input.RadiusKm < 0 {
			v.Add("radius", "OUT_OF_RANGE", "must be non-negative, got %v", *input.RadiusKm)
		}
	default:
		v.Add("geo", "PARTIAL_PARAMETERS",
			"latitude, longitude and radius must be supplied together")
	}

	if result := v.Result(); !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSearchQuery, result.FirstError())
	}

	if geoCount == 3 {
		query.GeoFilter = &models.DistanceFilter{
			Center:   models.GeoPoint{Lat: *input.Latitude, Lng: *input.Longitude},
			RadiusKm: *input.RadiusKm,
		}
	}

	h.logger.Debug("search query parsed", map[string]interface{}{
		"categoryId": query.CategoryID,
		"geoFilter":  query.GeoFilter != nil,
		"sortBy":     query.SortBy,
	})

	return &Output{Query: query}, nil
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
