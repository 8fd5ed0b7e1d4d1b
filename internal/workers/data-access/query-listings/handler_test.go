// internal/workers/data-access/query-listings/handler_test.go
package querylistings

import (
	"context"
	"testing"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHandler(LoadConfig(), db, logger.NewTestLogger(t)), mock
}

func listingColumns() []string {
	return []string{
		"id", "specialist_id", "title", "description", "category_id",
		"tags", "location", "latitude", "longitude", "schedule", "price",
	}
}

func TestExecute_ListingsByCategory(t *testing.T) {
	h, mock := newMockHandler(t)

	rows := sqlmock.NewRows(listingColumns()).
		AddRow("lst-1", "spc-1", "Pipe repair", "Fast leak fixes", "plumbing",
			`["plumbing","repair"]`, "Austin", 30.27, -97.74, `["mon","wed"]`, 85.0).
		AddRow("lst-2", "spc-2", "Drain cleaning", "", "plumbing",
			`["plumbing"]`, "Austin", nil, nil, `[]`, 60.0)
	mock.ExpectQuery("SELECT id, specialist_id").WithArgs("plumbing").WillReturnRows(rows)

	output, err := h.Execute(context.Background(), &Input{
		QueryType:  string(models.QueryTypeListingsByCategory),
		CategoryID: "plumbing",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, output.RowCount)

	listings, ok := output.Data.([]models.Listing)
	require.True(t, ok)
	assert.Equal(t, []string{"plumbing", "repair"}, listings[0].Tags)
	require.NotNil(t, listings[0].Latitude)
	assert.Nil(t, listings[1].Latitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_MalformedRowFieldsNormalizedToMissing(t *testing.T) {
	h, mock := newMockHandler(t)

	// Out-of-range coords, unparseable tags, and a negative price all
	// degrade to missing fields on an otherwise usable row.
	rows := sqlmock.NewRows(listingColumns()).
		AddRow("lst-1", "spc-1", "Odd row", "", "plumbing",
			`not-json`, "Austin", 95.0, 10.0, `null`, -20.0)
	mock.ExpectQuery("SELECT id, specialist_id").WithArgs("plumbing").WillReturnRows(rows)

	output, err := h.Execute(context.Background(), &Input{
		QueryType:  string(models.QueryTypeListingsByCategory),
		CategoryID: "plumbing",
	})
	require.NoError(t, err)

	listings := output.Data.([]models.Listing)
	require.Len(t, listings, 1)
	assert.Empty(t, listings[0].Tags)
	assert.Nil(t, listings[0].Latitude)
	assert.Zero(t, listings[0].Price)
}

func TestExecute_RequesterCriteria(t *testing.T) {
	h, mock := newMockHandler(t)

	rows := sqlmock.NewRows([]string{
		"skills", "location", "latitude", "longitude", "availability",
		"budget_min", "budget_max", "preferred_category",
	}).AddRow(`["plumbing"]`, "Austin", 30.27, -97.74, `["mon"]`, 0.0, 150.0, "plumbing")
	mock.ExpectQuery("SELECT skills, location").WithArgs("req-1").WillReturnRows(rows)

	output, err := h.Execute(context.Background(), &Input{
		QueryType:   string(models.QueryTypeRequesterCriteria),
		RequesterID: "req-1",
	})
	require.NoError(t, err)

	criteria, ok := output.Data.(models.RequesterCriteria)
	require.True(t, ok)
	assert.Equal(t, "req-1", criteria.RequesterID)
	assert.Equal(t, 150.0, criteria.BudgetMax)
}

func TestExecute_SpecialistTierDefaultsToNone(t *testing.T) {
	h, mock := newMockHandler(t)

	mock.ExpectQuery("SELECT tier FROM subscriptions").
		WithArgs("spc-1").
		WillReturnRows(sqlmock.NewRows([]string{"tier"}))

	output, err := h.Execute(context.Background(), &Input{
		QueryType:    string(models.QueryTypeSpecialistTier),
		SpecialistID: "spc-1",
	})
	require.NoError(t, err)

	result := output.Data.(map[string]interface{})
	assert.Equal(t, "none", result["tier"])
}

func TestExecute_UnknownQueryType(t *testing.T) {
	h, _ := newMockHandler(t)

	_, err := h.Execute(context.Background(), &Input{QueryType: "listings_by_phase"})
	assert.ErrorIs(t, err, ErrInvalidQueryType)
}

func TestExecute_MissingParameter(t *testing.T) {
	h, _ := newMockHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeListingsByCategory),
	})
	assert.ErrorIs(t, err, ErrQueryExecutionFailed)
}
