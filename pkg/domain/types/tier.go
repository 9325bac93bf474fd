package types

import "fmt"

// Tier is an inherent risk tier derived from the quantitative and
// qualitative ratings, or supplied by the derived-tier override.
// The zero value means unset (no tier could be derived).
type Tier string

const (
	TierUnset   Tier = ""
	TierVeryLow Tier = "VERY_LOW"
	TierLow     Tier = "LOW"
	TierMedium  Tier = "MEDIUM"
	TierHigh    Tier = "HIGH"
)

// AllTiers returns all settable tiers
func AllTiers() []Tier {
	return []Tier{
		TierHigh,
		TierMedium,
		TierLow,
		TierVeryLow,
	}
}

// IsSet reports whether the tier holds a value
func (t Tier) IsSet() bool {
	return t != TierUnset
}

// IsValid checks if the tier is one of the known values. Unset is valid.
func (t Tier) IsValid() bool {
	switch t {
	case TierUnset, TierVeryLow, TierLow, TierMedium, TierHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tier
func (t Tier) String() string {
	return string(t)
}

// ParseTier parses a string into a Tier. An empty string parses to
// TierUnset.
func ParseTier(s string) (Tier, error) {
	tier := Tier(s)
	if !tier.IsValid() {
		return TierUnset, fmt.Errorf("invalid tier: %s", s)
	}
	return tier, nil
}
