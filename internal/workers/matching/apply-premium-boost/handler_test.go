// internal/workers/matching/apply-premium-boost/handler_test.go
package applypremiumboost

import (
	"context"
	"database/sql"
	"testing"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredCandidate(listingID, specialistID string, score int) models.ScoredCandidate {
	return models.ScoredCandidate{
		Listing: models.Listing{ID: listingID, SpecialistID: specialistID},
		Match:   models.MatchResult{Score: score},
	}
}

func TestBoost_Factors(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		tier     models.PremiumTier
		expected int
	}{
		{"none is a strict no-op", 73, models.TierNone, 73},
		{"basic multiplies by 1.1", 80, models.TierBasic, 88},
		{"pro multiplies by 1.2", 80, models.TierPro, 96},
		{"elite multiplies by 1.3", 60, models.TierElite, 78},
		{"rounds half up", 75, models.TierBasic, 83},
		{"caps at 100", 95, models.TierElite, 100},
		{"zero stays zero", 0, models.TierElite, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Boost(tt.score, tt.tier))
		})
	}
}

func TestExecute_InlineTiers(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, nil, logger.NewTestLogger(t))

	input := &Input{
		Candidates: []models.ScoredCandidate{
			scoredCandidate("a", "spc-1", 80),
			scoredCandidate("b", "spc-2", 80),
			scoredCandidate("c", "spc-3", 80),
		},
		Tiers: map[string]string{
			"spc-1": "elite",
			"spc-2": "basic",
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.Candidates, 3)

	assert.Equal(t, 100, output.Candidates[0].FinalScore)
	assert.True(t, output.Candidates[0].Priority)
	assert.Equal(t, 88, output.Candidates[1].FinalScore)
	assert.False(t, output.Candidates[1].Priority)

	// spc-3 has no inline tier and no store to consult.
	assert.Equal(t, models.TierNone, output.Candidates[2].Tier)
	assert.Equal(t, 80, output.Candidates[2].FinalScore)
	assert.False(t, output.Candidates[2].Priority)
}

func TestExecute_UnknownTierDegradesToNone(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Candidates: []models.ScoredCandidate{scoredCandidate("a", "spc-1", 80)},
		Tiers:      map[string]string{"spc-1": "platinum"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.TierNone, output.Candidates[0].Tier)
	assert.Equal(t, 80, output.Candidates[0].FinalScore)
}

func TestGetTier_RedisCacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	h := NewHandler(LoadConfig(), nil, rdb, logger.NewNoOpLogger())

	mock.ExpectGet(tierCachePrefix + "spc-1").SetVal("pro")

	tier, err := h.getTier(context.Background(), "spc-1")
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, tier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTier_PostgresFallback(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	cfg := LoadConfig()
	h := NewHandler(cfg, db, rdb, logger.NewNoOpLogger())

	redisMock.ExpectGet(tierCachePrefix + "spc-1").RedisNil()
	dbMock.ExpectQuery("SELECT tier FROM subscriptions").
		WithArgs("spc-1").
		WillReturnRows(sqlmock.NewRows([]string{"tier"}).AddRow("elite"))
	redisMock.ExpectSet(tierCachePrefix+"spc-1", "elite", cfg.CacheTTL).SetVal("OK")

	tier, err := h.getTier(context.Background(), "spc-1")
	require.NoError(t, err)
	assert.Equal(t, models.TierElite, tier)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGetTier_CachesLookupResult(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	h := NewHandler(LoadConfig(), db, rdb, logger.NewNoOpLogger())
	dbMock.ExpectQuery("SELECT tier FROM subscriptions").
		WithArgs("spc-1").
		WillReturnRows(sqlmock.NewRows([]string{"tier"}).AddRow("pro"))

	tier, err := h.getTier(context.Background(), "spc-1")
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, tier)

	cached, err := mr.Get(tierCachePrefix + "spc-1")
	require.NoError(t, err)
	assert.Equal(t, "pro", cached)

	// Second lookup is served from the cache, no further queries.
	tier, err = h.getTier(context.Background(), "spc-1")
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, tier)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestGetTier_NoActiveSubscription(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	h := NewHandler(LoadConfig(), db, nil, logger.NewNoOpLogger())
	dbMock.ExpectQuery("SELECT tier FROM subscriptions").
		WithArgs("spc-1").
		WillReturnError(sql.ErrNoRows)

	tier, err := h.getTier(context.Background(), "spc-1")
	require.NoError(t, err)
	assert.Equal(t, models.TierNone, tier)
}

func TestExecute_NilInput(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, nil, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), nil)
	assert.Error(t, err)
}
