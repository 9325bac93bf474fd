package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

func TestDiffAssessments(t *testing.T) {
	t.Run("identical snapshots produce no changes", func(t *testing.T) {
		a := &model.Assessment{
			ModelID:      "credit-scoring",
			Quantitative: types.RatingHigh,
			FactorRatings: []model.FactorRating{
				{FactorID: "complexity", Rating: types.RatingLow},
			},
		}
		gt.Array(t, model.DiffAssessments(a, a.Clone())).Length(0)
	})

	t.Run("field changes are recorded with before and after", func(t *testing.T) {
		before := &model.Assessment{
			ModelID:      "credit-scoring",
			Quantitative: types.RatingLow,
		}
		after := &model.Assessment{
			ModelID:             "credit-scoring",
			Quantitative:        types.RatingHigh,
			TierOverride:        types.TierMedium,
			TierOverrideComment: "regulatory floor",
		}

		changes := model.DiffAssessments(before, after)
		gt.Array(t, changes).Length(3)

		byField := map[string]model.FieldChange{}
		for _, c := range changes {
			byField[c.Field] = c
		}
		gt.Value(t, byField["quantitative_rating"].From).Equal("LOW")
		gt.Value(t, byField["quantitative_rating"].To).Equal("HIGH")
		gt.Value(t, byField["derived_tier_override"].To).Equal("MEDIUM")
		gt.Value(t, byField["derived_tier_override_comment"].To).Equal("regulatory floor")
	})

	t.Run("factor rating changes use factor-scoped fields", func(t *testing.T) {
		before := &model.Assessment{
			ModelID: "credit-scoring",
			FactorRatings: []model.FactorRating{
				{FactorID: "complexity", Rating: types.RatingLow},
			},
		}
		after := &model.Assessment{
			ModelID: "credit-scoring",
			FactorRatings: []model.FactorRating{
				{FactorID: "complexity", Rating: types.RatingHigh, Comment: "new vendor engine"},
				{FactorID: "data-quality", Rating: types.RatingMedium},
			},
		}

		changes := model.DiffAssessments(before, after)
		gt.Array(t, changes).Length(3)

		byField := map[string]model.FieldChange{}
		for _, c := range changes {
			byField[c.Field] = c
		}
		gt.Value(t, byField["factor:complexity"].From).Equal("LOW")
		gt.Value(t, byField["factor:complexity"].To).Equal("HIGH")
		gt.Value(t, byField["factor_comment:complexity"].To).Equal("new vendor engine")
		gt.Value(t, byField["factor:data-quality"].To).Equal("MEDIUM")
	})

	t.Run("changes are ordered by field name", func(t *testing.T) {
		before := &model.Assessment{ModelID: "credit-scoring"}
		after := &model.Assessment{
			ModelID:              "credit-scoring",
			Quantitative:         types.RatingHigh,
			QualitativeOverride:  types.RatingLow,
			QuantitativeOverride: types.RatingMedium,
		}

		changes := model.DiffAssessments(before, after)
		gt.Array(t, changes).Length(3)
		for i := 1; i < len(changes); i++ {
			gt.Value(t, changes[i-1].Field < changes[i].Field).Equal(true)
		}
	})
}
