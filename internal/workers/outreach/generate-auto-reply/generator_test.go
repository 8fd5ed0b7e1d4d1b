// internal/workers/outreach/generate-auto-reply/generator_test.go
package generateautoreply

import (
	"strings"
	"testing"

	"marketplace-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequester() models.RequesterProfile {
	return models.RequesterProfile{
		ID:        "req-1",
		FirstName: "Dana",
		JobTitle:  "bathroom renovation",
		JobDesc:   "Replace the old pipes and fix a slow drain",
		Category:  "plumbing",
		BudgetMin: 60,
		BudgetMax: 100,
	}
}

func sampleSpecialist() models.SpecialistProfile {
	return models.SpecialistProfile{
		ID:         "spc-1",
		Name:       "Alex Rivera",
		Skills:     []string{"Pipe fitting", "Leak detection", "Tile work", "Drain cleaning"},
		HourlyRate: 65,
	}
}

func TestGenerate_SectionOrder(t *testing.T) {
	reply := Generate(nil, sampleRequester(), models.Listing{ID: "lst-1"}, sampleSpecialist())

	sections := strings.Split(reply, "\n\n")
	require.GreaterOrEqual(t, len(sections), 5)

	intro := strings.Index(reply, "Hi Dana")
	skills := strings.Index(reply, "My experience with")
	availability := strings.Index(reply, "I could get started")
	pricing := strings.Index(reply, "budget")
	questions := strings.Index(reply, "A few quick questions")

	require.NotEqual(t, -1, intro)
	require.NotEqual(t, -1, skills)
	require.NotEqual(t, -1, availability)
	require.NotEqual(t, -1, pricing)
	require.NotEqual(t, -1, questions)

	assert.Less(t, intro, skills)
	assert.Less(t, skills, availability)
	assert.Less(t, availability, pricing)
	assert.Less(t, pricing, questions)
}

func TestGenerate_CitesPrimaryReason(t *testing.T) {
	match := &models.MatchResult{
		Score:         88,
		PrimaryReason: "3 of 4 service tags match the requested skills",
	}

	reply := Generate(match, sampleRequester(), models.Listing{ID: "lst-1"}, sampleSpecialist())
	assert.Contains(t, reply, "one of my strongest matches: 3 of 4 service tags match the requested skills.")

	// The citation lives in the introduction, before the skills section.
	assert.Less(t, strings.Index(reply, "strongest matches"), strings.Index(reply, "My experience with"))

	// Without a match the introduction carries no citation.
	plain := Generate(nil, sampleRequester(), models.Listing{ID: "lst-1"}, sampleSpecialist())
	assert.NotContains(t, plain, "strongest matches")
}

func TestGenerate_FallbackGreetingAndTitle(t *testing.T) {
	reply := Generate(nil, models.RequesterProfile{}, models.Listing{}, sampleSpecialist())
	assert.Contains(t, reply, "Hi there")
	assert.Contains(t, reply, "your job")
}

func TestRelevantSkills_CategoryKeywords(t *testing.T) {
	requester := models.RequesterProfile{Category: "plumbing"}
	skills := RelevantSkills(requester, []string{"Pipe fitting", "Leak detection", "Wallpapering"})
	assert.Equal(t, []string{"Pipe fitting", "Leak detection"}, skills)
}

func TestRelevantSkills_DescriptionMatch(t *testing.T) {
	requester := models.RequesterProfile{
		Category: "other",
		JobDesc:  "Need someone to refinish my deck and build a fence",
	}
	skills := RelevantSkills(requester, []string{"deck", "fence", "roofing"})
	assert.Equal(t, []string{"deck", "fence"}, skills)
}

func TestRelevantSkills_CapsAtThree(t *testing.T) {
	requester := models.RequesterProfile{Category: "plumbing"}
	skills := RelevantSkills(requester, []string{
		"pipe repair", "drain cleaning", "leak detection", "faucet installation",
	})
	assert.Len(t, skills, 3)
}

func TestGenerate_NoRelevantSkillsFallback(t *testing.T) {
	requester := sampleRequester()
	specialist := sampleSpecialist()
	specialist.Skills = []string{"Accounting"}

	reply := Generate(nil, requester, models.Listing{ID: "lst-1"}, specialist)
	assert.Contains(t, reply, "hands-on experience")
	assert.NotContains(t, reply, "My experience with")
}

func TestGenerate_UrgentAvailability(t *testing.T) {
	requester := sampleRequester()
	for _, urgency := range []string{"high", "urgent", "URGENT"} {
		requester.Urgency = urgency
		reply := Generate(nil, requester, models.Listing{ID: "lst-1"}, sampleSpecialist())
		assert.Contains(t, reply, "available to start immediately")
	}
}

func TestPhraseIndex_DeterministicAndInRange(t *testing.T) {
	first := PhraseIndex("req-1", "lst-1")
	assert.Equal(t, first, PhraseIndex("req-1", "lst-1"))
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, len(availabilityPhrases))

	// Different pairs land on different phrases at least once across a
	// small sample, so the wording is not constant.
	seen := map[int]bool{}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		seen[PhraseIndex(id, "lst-1")] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestGenerate_PricingWithinBudget(t *testing.T) {
	// Budget [60,100] with a rate of 65 lands inside the range.
	reply := Generate(nil, sampleRequester(), models.Listing{ID: "lst-1"}, sampleSpecialist())
	assert.Contains(t, reply, "falls within your budget range")
	assert.NotContains(t, reply, "open to negotiate")
}

func TestGenerate_PricingAboveBudget(t *testing.T) {
	specialist := sampleSpecialist()
	specialist.HourlyRate = 150

	reply := Generate(nil, sampleRequester(), models.Listing{ID: "lst-1"}, specialist)
	assert.Contains(t, reply, "standard rate")
	assert.Contains(t, reply, "negotiate")
	assert.NotContains(t, reply, "falls within your budget range")
}

func TestGenerate_PricingBelowBudget(t *testing.T) {
	specialist := sampleSpecialist()
	specialist.HourlyRate = 40

	reply := Generate(nil, sampleRequester(), models.Listing{ID: "lst-1"}, specialist)
	assert.Contains(t, reply, "below your range")
}

func TestGenerate_PricingMissingData(t *testing.T) {
	requester := sampleRequester()
	requester.BudgetMax = 0

	reply := Generate(nil, requester, models.Listing{ID: "lst-1"}, sampleSpecialist())
	assert.Contains(t, reply, "happy to provide a detailed quote")
}

func TestGenerate_QuestionsAndSignature(t *testing.T) {
	reply := Generate(nil, sampleRequester(), models.Listing{ID: "lst-1"}, sampleSpecialist())
	assert.Contains(t, reply, "1. When would you like the work to begin?")
	assert.Contains(t, reply, "Alex Rivera")
}
