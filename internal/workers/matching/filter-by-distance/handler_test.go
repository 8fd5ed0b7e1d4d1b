// internal/workers/matching/filter-by-distance/handler_test.go
package filterbydistance

import (
	"context"
	"testing"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func ptr(f float64) *float64 { return &f }

func listingAt(id string, lat, lng float64) models.Listing {
	return models.Listing{ID: id, Latitude: ptr(lat), Longitude: ptr(lng)}
}

func TestHaversine_SymmetryAndIdentity(t *testing.T) {
	a := models.GeoPoint{Lat: 37.7749, Lng: -122.4194}
	b := models.GeoPoint{Lat: 40.7128, Lng: -74.0060}

	assert.Equal(t, 0.0, Haversine(a, a))
	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)

	// SF to NYC is about 4130 km.
	assert.InDelta(t, 4130, Haversine(a, b), 15)
}

func TestHaversine_NearbyPoints(t *testing.T) {
	job := models.GeoPoint{Lat: 37.7749, Lng: -122.4194}
	specialist := models.GeoPoint{Lat: 37.7833, Lng: -122.4167}

	d := Haversine(job, specialist)
	assert.InDelta(t, 1.02, d, 0.05)
}

func TestExecute_PassThroughWithoutFilter(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		Candidates: []models.Listing{
			listingAt("l-1", 37.7749, -122.4194),
			{ID: "l-2"}, // no coordinates
		},
	}

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, out.Candidates, 2)
	assert.Equal(t, 0, out.ExcludedCount)
	for _, c := range out.Candidates {
		assert.Nil(t, c.DistanceKm, "pass-through must not annotate distance")
	}
}

func TestExecute_RadiusFilter(t *testing.T) {
	center := models.GeoPoint{Lat: 37.7749, Lng: -122.4194}

	tests := []struct {
		name     string
		radiusKm float64
		wantIDs  []string
	}{
		{
			name:     "radius 2 includes nearby specialist",
			radiusKm: 2,
			wantIDs:  []string{"near"},
		},
		{
			name:     "radius 0.5 excludes it",
			radiusKm: 0.5,
			wantIDs:  []string{},
		},
		{
			name:     "radius 5000 includes far candidate too",
			radiusKm: 5000,
			wantIDs:  []string{"near", "far"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			input := &Input{
				Candidates: []models.Listing{
					listingAt("near", 37.7833, -122.4167),
					listingAt("far", 40.7128, -74.0060),
					{ID: "no-coords"},
				},
				Filter: &models.DistanceFilter{Center: center, RadiusKm: tt.radiusKm},
			}

			out, err := h.Execute(context.Background(), input)
			require.NoError(t, err)

			gotIDs := make([]string, 0, len(out.Candidates))
			for _, c := range out.Candidates {
				gotIDs = append(gotIDs, c.Listing.ID)
				require.NotNil(t, c.DistanceKm)
				assert.LessOrEqual(t, *c.DistanceKm, tt.radiusKm)
			}
			assert.ElementsMatch(t, tt.wantIDs, gotIDs)
			assert.Equal(t, 3-len(tt.wantIDs), out.ExcludedCount)
		})
	}
}

func TestExecute_MissingCoordsExcludedWhenFilterActive(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		Candidates: []models.Listing{{ID: "l-1"}},
		Filter: &models.DistanceFilter{
			Center:   models.GeoPoint{Lat: 0, Lng: 0},
			RadiusKm: 100,
		},
	}

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Empty(t, out.Candidates)
	assert.Equal(t, 1, out.ExcludedCount)
}

func TestExecute_MalformedCoordsTreatedAsMissing(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		Candidates: []models.Listing{listingAt("bad", 120.0, -300.0)},
		Filter: &models.DistanceFilter{
			Center:   models.GeoPoint{Lat: 0, Lng: 0},
			RadiusKm: 50000,
		},
	}

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Empty(t, out.Candidates)
}

func TestExecute_InvalidFilter(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Filter: &models.DistanceFilter{
			Center:   models.GeoPoint{Lat: 91, Lng: 0},
			RadiusKm: 10,
		},
	})
	assert.ErrorIs(t, err, ErrInvalidGeoFilter)

	_, err = h.Execute(context.Background(), &Input{
		Filter: &models.DistanceFilter{
			Center:   models.GeoPoint{Lat: 0, Lng: 0},
			RadiusKm: -1,
		},
	})
	assert.ErrorIs(t, err, ErrInvalidGeoFilter)
}

func TestExecute_NilInput(t *testing.T) {
	h := newTestHandler(t)
	_, err := h.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilInput)
}
