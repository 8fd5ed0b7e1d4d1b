// internal/workers/outreach/generate-auto-reply/generator.go
package generateautoreply

import (
	"fmt"
	"hash/fnv"
	"strings"

	"marketplace-workers/internal/models"
)

// categoryKeywords maps a service category to the vocabulary that
// marks a specialist skill as relevant to it.
var categoryKeywords = map[string][]string{
	"plumbing":    {"water", "pipe", "leak", "faucet", "drain", "toilet"},
	"electrical":  {"wiring", "circuit", "outlet", "lighting", "power"},
	"cleaning":    {"deep clean", "sanitize", "carpet", "window", "dust"},
	"landscaping": {"lawn", "garden", "tree", "hedge", "irrigation"},
	"carpentry":   {"wood", "cabinet", "framing", "furniture", "deck"},
	"painting":    {"paint", "primer", "wall", "interior", "exterior"},
	"moving":      {"packing", "loading", "furniture", "transport", "boxes"},
}

var availabilityPhrases = []string{
	"within the next few days",
	"as early as tomorrow",
	"this week",
	"at your earliest convenience",
	"according to your preferred schedule",
}

// Generate builds the outreach reply: five sections in fixed order,
// separated by blank lines. The match is optional; when present its
// primary reason is cited in the introduction. Pure string assembly,
// no I/O.
func Generate(match *models.MatchResult, requester models.RequesterProfile, listing models.Listing, specialist models.SpecialistProfile) string {
	sections := []string{
		introSection(match, requester, listing),
		skillsSection(requester, specialist),
		availabilitySection(requester, listing),
		pricingSection(requester, specialist),
		questionsSection(specialist),
	}
	return strings.Join(sections, "\n\n")
}

func introSection(match *models.MatchResult, requester models.RequesterProfile, listing models.Listing) string {
	name := strings.TrimSpace(requester.FirstName)
	if name == "" {
		name = "there"
	}
	jobTitle := strings.TrimSpace(requester.JobTitle)
	if jobTitle == "" {
		jobTitle = "your job"
	}
	category := strings.TrimSpace(requester.Category)
	if category == "" {
		category = listing.Category
	}

	intro := fmt.Sprintf("Hi %s, I came across %s and I'd love to help.", name, jobTitle)
	if category != "" {
		intro += fmt.Sprintf(" I specialize in %s work and this sounds like a great fit.", category)
	}
	if match != nil && match.PrimaryReason != "" {
		intro += fmt.Sprintf(" You came up as one of my strongest matches: %s.", match.PrimaryReason)
	}
	return intro
}

func skillsSection(requester models.RequesterProfile, specialist models.SpecialistProfile) string {
	relevant := RelevantSkills(requester, specialist.Skills)
	if len(relevant) == 0 {
		return "I bring solid hands-on experience and a track record of reliable, high-quality work on jobs like yours."
	}
	return fmt.Sprintf("My experience with %s lines up directly with what you need.",
		joinNaturally(relevant))
}

// RelevantSkills selects up to three specialist skills whose lowercased
// name appears in the job category or description, or that the category
// keyword dictionary marks as relevant.
func RelevantSkills(requester models.RequesterProfile, skills []string) []string {
	category := strings.ToLower(requester.Category)
	description := strings.ToLower(requester.JobDesc)
	keywords := categoryKeywords[category]

	var relevant []string
	for _, skill := range skills {
		if len(relevant) == 3 {
			break
		}
		lower := strings.ToLower(strings.TrimSpace(skill))
		if lower == "" {
			continue
		}
		if strings.Contains(category, lower) || strings.Contains(description, lower) {
			relevant = append(relevant, skill)
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				relevant = append(relevant, skill)
				break
			}
		}
	}
	return relevant
}

func availabilitySection(requester models.RequesterProfile, listing models.Listing) string {
	urgency := strings.ToLower(strings.TrimSpace(requester.Urgency))
	if urgency == "high" || urgency == "urgent" {
		return "I understand this is time-sensitive, and I'm available to start immediately."
	}
	phrase := availabilityPhrases[PhraseIndex(requester.ID, listing.ID)]
	return fmt.Sprintf("I could get started %s, and I'm flexible if another time works better for you.", phrase)
}

// PhraseIndex picks a canned availability phrase deterministically per
// requester/listing pair, so the same conversation always renders the
// same wording while different pairs still vary.
func PhraseIndex(requesterID, listingID string) int {
	h := fnv.New32a()
	h.Write([]byte(requesterID))
	h.Write([]byte("|"))
	h.Write([]byte(listingID))
	return int(h.Sum32() % uint32(len(availabilityPhrases)))
}

func pricingSection(requester models.RequesterProfile, specialist models.SpecialistProfile) string {
	rate := specialist.HourlyRate
	hasBudget := requester.BudgetMax > 0 && requester.BudgetMax >= requester.BudgetMin

	if rate <= 0 || !hasBudget {
		return "I'd be happy to provide a detailed quote once we've discussed the scope of the work."
	}

	switch {
	case rate >= requester.BudgetMin && rate <= requester.BudgetMax:
		return fmt.Sprintf("My rate of $%.0f/hr falls within your budget range, so we should be well aligned on cost.", rate)
	case rate < requester.BudgetMin:
		return fmt.Sprintf("My rate of $%.0f/hr comes in below your range, which means excellent value without compromising on quality.", rate)
	default:
		return fmt.Sprintf("My standard rate is $%.0f/hr, which differs from your posted budget, but I'm open to negotiate based on the details of the job.", rate)
	}
}

func questionsSection(specialist models.SpecialistProfile) string {
	name := strings.TrimSpace(specialist.Name)
	if name == "" {
		name = "Your specialist"
	}
	return "A few quick questions to get us started:\n" +
		"1. When would you like the work to begin?\n" +
		"2. Are there any constraints or details I should know about upfront?\n" +
		"3. Would you prefer an on-site assessment or an estimate from photos?\n\n" +
		"Looking forward to hearing from you,\n" + name
}

func joinNaturally(items []string) string {
	switch len(items) {
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
