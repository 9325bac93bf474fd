package model

import (
	"github.com/mrm-lab/modelrisk/pkg/domain/model/policy"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// EffectiveTier is the fully derived view of an assessment. It is never
// stored; it is recomputed from the assessment snapshot and the factor list
// whenever it is needed, for display and for pre-save validation alike.
type EffectiveTier struct {
	QualitativeScore      *float64     `json:"qualitative_score"`
	QualitativeLevel      types.Rating `json:"qualitative_level,omitempty"`
	EffectiveQualitative  types.Rating `json:"effective_qualitative,omitempty"`
	EffectiveQuantitative types.Rating `json:"effective_quantitative,omitempty"`
	DerivedTier           types.Tier   `json:"derived_tier,omitempty"`
	Tier                  types.Tier   `json:"effective_tier,omitempty"`
}

// ComposeEffectiveTier chains scorer, override resolution, and the inherent
// risk matrix into the effective tier. The function is pure: the same
// assessment snapshot and factor list always produce the same result.
func ComposeEffectiveTier(a *Assessment, factors []policy.Factor) EffectiveTier {
	qualitative := CalculateQualitativeScore(factors, a.FactorRatings)

	effQualitative := ResolveRating(qualitative.Level, a.QualitativeOverride)
	effQuantitative := ResolveRating(a.Quantitative, a.QuantitativeOverride)

	derived := InherentTier(effQuantitative, effQualitative)

	return EffectiveTier{
		QualitativeScore:      qualitative.Score,
		QualitativeLevel:      qualitative.Level,
		EffectiveQualitative:  effQualitative,
		EffectiveQuantitative: effQuantitative,
		DerivedTier:           derived,
		Tier:                  ResolveTier(derived, a.TierOverride),
	}
}
