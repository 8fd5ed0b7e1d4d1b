// internal/workers/outreach/generate-auto-reply/models.go
package generateautoreply

import "marketplace-workers/internal/models"

type Input struct {
	Match      *models.MatchResult      `json:"match,omitempty"`
	Requester  models.RequesterProfile  `json:"requester"`
	Listing    models.Listing           `json:"listing"`
	Specialist models.SpecialistProfile `json:"specialist"`
}

type Output struct {
	MessageID string `json:"messageId"`
	Reply     string `json:"reply"`
}
