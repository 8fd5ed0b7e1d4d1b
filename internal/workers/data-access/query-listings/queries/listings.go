// internal/workers/data-access/query-listings/queries/listings.go
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"time"

	"marketplace-workers/internal/models"
)

func ListingsByCategory(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	categoryID, ok := params["categoryId"].(string)
	if !ok || categoryID == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, specialist_id, title, description, category_id,
		       tags, location, latitude, longitude, schedule, price
		FROM listings
		WHERE category_id = $1 AND status = 'active'`, categoryID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return listings, len(listings), execTime, nil
}

func ListingsBySpecialist(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	specialistID, ok := params["specialistId"].(string)
	if !ok || specialistID == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, specialist_id, title, description, category_id,
		       tags, location, latitude, longitude, schedule, price
		FROM listings
		WHERE specialist_id = $1 AND status = 'active'`, specialistID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return listings, len(listings), execTime, nil
}

func RequesterCriteria(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	requesterID, ok := params["requesterId"].(string)
	if !ok || requesterID == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	criteria := models.RequesterCriteria{RequesterID: requesterID}
	var skills, availability []byte
	var lat, lng sql.NullFloat64

	err := db.QueryRowContext(ctx, `
		SELECT skills, location, latitude, longitude, availability,
		       budget_min, budget_max, preferred_category
		FROM user_preferences
		WHERE user_id = $1`, requesterID).Scan(
		&skills, &criteria.Location, &lat, &lng, &availability,
		&criteria.BudgetMin, &criteria.BudgetMax, &criteria.PreferredCategory,
	)
	if err != nil {
		return nil, 0, 0, err
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

	execTime := time.Since(start).Milliseconds()
	return criteria, 1, execTime, nil
}

func SpecialistTier(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	specialistID, ok := params["specialistId"].(string)
	if !ok || specialistID == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var raw string
	err := db.QueryRowContext(ctx, `
		SELECT tier FROM subscriptions
		WHERE specialist_id = $1 AND status = 'active'`, specialistID).Scan(&raw)
	if err == sql.ErrNoRows {
		raw = string(models.TierNone)
	} else if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"specialistId": specialistID,
		"tier":         string(models.ParseTier(raw)),
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

// scanListings materializes rows with per-field normalization: a
// malformed value (unparseable tags, out-of-range coords, non-finite
// price) degrades that field to missing rather than failing the batch.
func scanListings(rows *sql.Rows) ([]models.Listing, error) {
	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		var tags, schedule []byte
		var lat, lng sql.NullFloat64
		var price sql.NullFloat64

		err := rows.Scan(&l.ID, &l.SpecialistID, &l.Title, &l.Description,
			&l.Category, &tags, &l.Location, &lat, &lng, &schedule, &price)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(tags, &l.Tags); err != nil {
			l.Tags = []string{}
		}
		if err := json.Unmarshal(schedule, &l.Schedule); err != nil {
			l.Schedule = []string{}
		}
		if lat.Valid && lng.Valid {
			p := models.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
			if p.Valid() {
				l.Latitude = &lat.Float64
				l.Longitude = &lng.Float64
			}
		}
		if price.Valid && price.Float64 > 0 && !math.IsNaN(price.Float64) {
			l.Price = price.Float64
		}

		listings = append(listings, l)
	}
	return listings, rows.Err()
}
