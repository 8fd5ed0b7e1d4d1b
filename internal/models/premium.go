// internal/models/premium.go
package models

import "strings"

// PremiumTier is a specialist's paid tier.
type PremiumTier string

const (
	TierNone  PremiumTier = "none"
	TierBasic PremiumTier = "basic"
	TierPro   PremiumTier = "pro"
	TierElite PremiumTier = "elite"
)

// ParseTier normalizes a stored tier string. Unknown or empty values
// degrade to TierNone rather than failing the candidate.
func ParseTier(s string) PremiumTier {
	switch PremiumTier(strings.ToLower(strings.TrimSpace(s))) {
	case TierBasic:
		return TierBasic
	case TierPro:
		return TierPro
	case TierElite:
		return TierElite
	default:
		return TierNone
	}
}

// BoostFactor returns the multiplicative score bonus for the tier.
func (t PremiumTier) BoostFactor() float64 {
	switch t {
	case TierBasic:
		return 1.1
	case TierPro:
		return 1.2
	case TierElite:
		return 1.3
	default:
		return 1.0
	}
}

// PriorityMatching reports whether the tier grants hard ordering
// precedence in ranked results.
func (t PremiumTier) PriorityMatching() bool {
	return t == TierElite
}
