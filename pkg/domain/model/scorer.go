package model

import (
	"github.com/mrm-lab/modelrisk/pkg/domain/model/policy"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// Qualitative level cut points. These are fixed policy constants, not
// runtime configuration; downstream tiering depends on these exact values.
const (
	qualitativeHighThreshold   = 2.1
	qualitativeMediumThreshold = 1.6
)

// QualitativeScore is the reduction of the weighted factor ratings to a
// single score and categorical level. Score is nil and Level unset when no
// factor has been rated.
type QualitativeScore struct {
	Score *float64     `json:"score"`
	Level types.Rating `json:"level,omitempty"`
}

// CalculateQualitativeScore computes the weighted mean of the rated factors
// only. Unrated factors contribute neither to the numerator nor the
// denominator, so they do not dilute the score. Ratings for factors not in
// the policy are ignored.
func CalculateQualitativeScore(factors []policy.Factor, ratings []FactorRating) QualitativeScore {
	ratingByFactor := make(map[types.FactorID]types.Rating, len(ratings))
	for _, fr := range ratings {
		ratingByFactor[fr.FactorID] = fr.Rating
	}

	var weightedSum, totalWeight float64
	for _, f := range factors {
		rating := ratingByFactor[f.ID]
		if !rating.IsSet() {
			continue
		}
		weightedSum += f.Weight * rating.Score()
		totalWeight += f.Weight
	}

	if totalWeight == 0 {
		return QualitativeScore{}
	}

	score := weightedSum / totalWeight
	return QualitativeScore{
		Score: &score,
		Level: qualitativeLevel(score),
	}
}

func qualitativeLevel(score float64) types.Rating {
	switch {
	case score >= qualitativeHighThreshold:
		return types.RatingHigh
	case score >= qualitativeMediumThreshold:
		return types.RatingMedium
	default:
		return types.RatingLow
	}
}
