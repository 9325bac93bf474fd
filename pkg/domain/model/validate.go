package model

import (
	"strings"

	"github.com/mrm-lab/modelrisk/pkg/domain/model/policy"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// ValidationError carries every violation found in an assessment so the
// caller can present them all at once.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "assessment validation failed: " + strings.Join(msgs, "; ")
}

// ValidateAssessment checks an assessment before it is saved: the
// quantitative rating must be set, and each of the three override slots must
// satisfy the must-differ and justification invariants. All violations are
// collected; nothing short-circuits.
func ValidateAssessment(a *Assessment, factors []policy.Factor) []Violation {
	var violations []Violation

	if !a.Quantitative.IsSet() {
		violations = append(violations, Violation{
			Slot:    OverrideSlotQuantitative,
			Code:    ViolationMissingRating,
			Message: "Quantitative Rating is required",
		})
	}

	violations = append(violations, checkOverride(
		OverrideSlotQuantitative,
		a.QuantitativeOverride.IsSet(),
		a.QuantitativeOverride == a.Quantitative,
		a.QuantitativeOverrideComment,
	)...)

	qualitative := CalculateQualitativeScore(factors, a.FactorRatings)
	violations = append(violations, checkOverride(
		OverrideSlotQualitative,
		a.QualitativeOverride.IsSet(),
		a.QualitativeOverride == qualitative.Level,
		a.QualitativeOverrideComment,
	)...)

	// The tier override's base is the tier the matrix derives from the
	// effective ratings, i.e. after the other two overrides are applied.
	derived := InherentTier(
		ResolveRating(a.Quantitative, a.QuantitativeOverride),
		ResolveRating(qualitative.Level, a.QualitativeOverride),
	)
	violations = append(violations, checkOverride(
		OverrideSlotTier,
		a.TierOverride.IsSet(),
		a.TierOverride == derived,
		a.TierOverrideComment,
	)...)

	return violations
}

// UnknownFactorRatings returns the IDs of rated factors that are not part of
// the policy. Used by the consistency check, not by save validation: stale
// ratings are tolerated on read and simply excluded from scoring.
func UnknownFactorRatings(a *Assessment, p *policy.Policy) []types.FactorID {
	var unknown []types.FactorID
	for _, fr := range a.FactorRatings {
		if _, ok := p.FactorByID(fr.FactorID); !ok {
			unknown = append(unknown, fr.FactorID)
		}
	}
	return unknown
}
