// internal/models/criteria.go
package models

// RequesterCriteria is the one canonical shape the scoring pipeline
// accepts. The two historic requester shapes (Account and
// UserPreferences) are normalized into it at the boundary; workers
// never see them.
type RequesterCriteria struct {
	RequesterID       string   `json:"requesterId"`
	Skills            []string `json:"skills"`
	Location          string   `json:"location"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	Availability      []string `json:"availability"`
	BudgetMin         float64  `json:"budgetMin"`
	BudgetMax         float64  `json:"budgetMax"`
	PreferredCategory string   `json:"preferredCategory"`
}

// Account is the legacy full-account shape still emitted by older
// process definitions.
type Account struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Skills    []string `json:"skills"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	TimeSlots []string `json:"timeSlots"`
	Budget    float64  `json:"budget"`
	Category  string   `json:"category"`
}

// UserPreferences is the newer preferences document shape.
type UserPreferences struct {
	UserID            string   `json:"userId"`
	DesiredSkills     []string `json:"desiredSkills"`
	Location          string   `json:"location"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	AvailabilitySlots []string `json:"availabilitySlots"`
	BudgetMin         float64  `json:"budgetMin"`
	BudgetMax         float64  `json:"budgetMax"`
	PreferredCategory string   `json:"preferredCategory"`
}

// CriteriaFromAccount normalizes the legacy account shape. A single
// budget value becomes the budget ceiling with no floor.
func CriteriaFromAccount(a Account) RequesterCriteria {
	return RequesterCriteria{
		RequesterID:       a.ID,
		Skills:            a.Skills,
		Location:          a.City,
		Latitude:          a.Latitude,
		Longitude:         a.Longitude,
		Availability:      a.TimeSlots,
		BudgetMax:         a.Budget,
		PreferredCategory: a.Category,
	}
}

// CriteriaFromPreferences normalizes the preferences document shape.
func CriteriaFromPreferences(p UserPreferences) RequesterCriteria {
	return RequesterCriteria{
		RequesterID:       p.UserID,
		Skills:            p.DesiredSkills,
		Location:          p.Location,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		Availability:      p.AvailabilitySlots,
		BudgetMin:         p.BudgetMin,
		BudgetMax:         p.BudgetMax,
		PreferredCategory: p.PreferredCategory,
	}
}

// RequesterProfile carries the profile fragments the auto-reply
// generator needs beyond the scoring criteria.
type RequesterProfile struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	JobTitle  string  `json:"jobTitle"`
	JobDesc   string  `json:"jobDescription"`
	Category  string  `json:"category"`
	Urgency   string  `json:"urgency"`
	BudgetMin float64 `json:"budgetMin"`
	BudgetMax float64 `json:"budgetMax"`
}
