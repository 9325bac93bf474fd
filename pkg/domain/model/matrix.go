package model

import (
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// inherentRiskMatrix maps (quantitative, qualitative) rating pairs to an
// inherent risk tier. The mapping is authoritative policy data and must not
// be re-derived; every pair of set ratings yields a defined tier.
var inherentRiskMatrix = map[types.Rating]map[types.Rating]types.Tier{
	types.RatingHigh: {
		types.RatingHigh:   types.TierHigh,
		types.RatingMedium: types.TierHigh,
		types.RatingLow:    types.TierMedium,
	},
	types.RatingMedium: {
		types.RatingHigh:   types.TierHigh,
		types.RatingMedium: types.TierMedium,
		types.RatingLow:    types.TierLow,
	},
	types.RatingLow: {
		types.RatingHigh:   types.TierMedium,
		types.RatingMedium: types.TierLow,
		types.RatingLow:    types.TierVeryLow,
	},
}

// InherentTier looks up the inherent risk tier for the given effective
// quantitative and qualitative ratings. If either rating is unset, no tier
// can be derived and TierUnset is returned.
func InherentTier(quantitative, qualitative types.Rating) types.Tier {
	if !quantitative.IsSet() || !qualitative.IsSet() {
		return types.TierUnset
	}
	return inherentRiskMatrix[quantitative][qualitative]
}
