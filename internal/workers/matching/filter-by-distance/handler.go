// internal/workers/matching/filter-by-distance/handler.go
package filterbydistance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "filter-by-distance"

	// Mean Earth radius in kilometers.
	earthRadiusKm = 6371.0
)

var (
	ErrNilInput         = errors.New("input cannot be nil")
	ErrInvalidGeoFilter = errors.New("INVALID_GEO_FILTER")
)

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
		h.failJob(client, job, "INVALID_GEO_FILTER", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(a, b models.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	// No geo query: the stage is a pass-through and nothing gets a
	// distance annotation.
	if input.Filter == nil {
		out := &Output{Candidates: make([]Candidate, 0, len(input.Candidates))}
		for _, l := range input.Candidates {
			out.Candidates = append(out.Candidates, Candidate{Listing: l})
		}
		return out, nil
	}

	if !input.Filter.Center.Valid() {
		return nil, fmt.Errorf("%w: center out of coordinate range", ErrInvalidGeoFilter)
	}
	if input.Filter.RadiusKm < 0 || math.IsNaN(input.Filter.RadiusKm) {
		return nil, fmt.Errorf("%w: radius must be non-negative", ErrInvalidGeoFilter)
	}

	out := &Output{Candidates: make([]Candidate, 0, len(input.Candidates))}
	for _, l := range input.Candidates {
		point, ok := l.GeoPoint()
		if !ok {
			// Candidates without usable coordinates are excluded
			// whenever a distance filter is active.
			out.ExcludedCount++
			metrics.CandidatesFiltered.WithLabelValues("missing_coords").Inc()
			continue
		}

		d := Haversine(input.Filter.Center, point)
		if d > input.Filter.RadiusKm {
			out.ExcludedCount++
			metrics.CandidatesFiltered.WithLabelValues("out_of_radius").Inc()
			continue
		}

		dist := d
		out.Candidates = append(out.Candidates, Candidate{Listing: l, DistanceKm: &dist})
	}

	h.logger.Info("distance filter applied", map[string]interface{}{
		"inputCount":  len(input.Candidates),
		"outputCount": len(out.Candidates),
		"radiusKm":    input.Filter.RadiusKm,
	})

	return out, nil
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
