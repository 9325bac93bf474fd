package model

import (
	"strings"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// OverrideSlot identifies one of the three manual override points
type OverrideSlot string

const (
	OverrideSlotQuantitative OverrideSlot = "quantitative"
	OverrideSlotQualitative  OverrideSlot = "qualitative"
	OverrideSlotTier         OverrideSlot = "derived_tier"
)

// DisplayName returns the user-facing name of the override slot
func (s OverrideSlot) DisplayName() string {
	switch s {
	case OverrideSlotQuantitative:
		return "Quantitative Override"
	case OverrideSlotQualitative:
		return "Qualitative Override"
	case OverrideSlotTier:
		return "Derived Tier Override"
	default:
		return string(s)
	}
}

// baseName returns the user-facing name of the value an override slot
// replaces. The derived tier slot overrides a tier, not a rating.
func (s OverrideSlot) baseName() string {
	if s == OverrideSlotTier {
		return "the derived tier"
	}
	return "the base rating"
}

// ViolationCode classifies an override validation violation
type ViolationCode string

const (
	ViolationMustDiffer            ViolationCode = "must_differ"
	ViolationRequiresJustification ViolationCode = "requires_justification"
	ViolationMissingRating         ViolationCode = "missing_rating"
)

// Violation is one validation failure found while checking an assessment.
// All violations are collected and reported together, never short-circuited.
type Violation struct {
	Slot    OverrideSlot  `json:"slot,omitempty"`
	Code    ViolationCode `json:"code"`
	Message string        `json:"message"`
}

// ResolveRating returns the override when set, otherwise the base rating
func ResolveRating(base, override types.Rating) types.Rating {
	if override.IsSet() {
		return override
	}
	return base
}

// ResolveTier returns the override when set, otherwise the base tier
func ResolveTier(base, override types.Tier) types.Tier {
	if override.IsSet() {
		return override
	}
	return base
}

// checkOverride validates one override slot. An unset override is always
// valid. A set override must differ from its base value and must carry a
// non-empty justification; both violations can fire together.
func checkOverride(slot OverrideSlot, set, equalsBase bool, comment string) []Violation {
	if !set {
		return nil
	}

	var violations []Violation
	if equalsBase {
		violations = append(violations, Violation{
			Slot:    slot,
			Code:    ViolationMustDiffer,
			Message: slot.DisplayName() + " must differ from " + slot.baseName(),
		})
	}
	if strings.TrimSpace(comment) == "" {
		violations = append(violations, Violation{
			Slot:    slot,
			Code:    ViolationRequiresJustification,
			Message: slot.DisplayName() + " requires a justification comment",
		})
	}
	return violations
}
