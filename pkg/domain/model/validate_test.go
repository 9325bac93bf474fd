package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/model/policy"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

func TestValidateAssessment(t *testing.T) {
	factors := []policy.Factor{
		{ID: "complexity", Name: "Model Complexity", Weight: 0.5},
		{ID: "data-quality", Name: "Data Quality", Weight: 0.5},
	}

	t.Run("minimal valid assessment", func(t *testing.T) {
		a := &model.Assessment{
			ModelID:      "credit-scoring",
			Quantitative: types.RatingMedium,
		}
		gt.Array(t, model.ValidateAssessment(a, factors)).Length(0)
	})

	t.Run("missing quantitative rating", func(t *testing.T) {
		a := &model.Assessment{ModelID: "credit-scoring"}

		violations := model.ValidateAssessment(a, factors)
		gt.Array(t, violations).Length(1)
		gt.Value(t, violations[0].Code).Equal(model.ViolationMissingRating)
		gt.Value(t, violations[0].Message).Equal("Quantitative Rating is required")
	})

	t.Run("override equal to base and without justification reports both", func(t *testing.T) {
		a := &model.Assessment{
			ModelID:              "credit-scoring",
			Quantitative:         types.RatingHigh,
			QuantitativeOverride: types.RatingHigh,
		}

		violations := model.ValidateAssessment(a, factors)
		gt.Array(t, violations).Length(2)

		codes := map[model.ViolationCode]string{}
		for _, v := range violations {
			gt.Value(t, v.Slot).Equal(model.OverrideSlotQuantitative)
			codes[v.Code] = v.Message
		}
		gt.Value(t, codes[model.ViolationMustDiffer]).Equal("Quantitative Override must differ from the base rating")
		gt.Value(t, codes[model.ViolationRequiresJustification]).Equal("Quantitative Override requires a justification comment")
	})

	t.Run("whitespace justification is not a justification", func(t *testing.T) {
		a := &model.Assessment{
			ModelID:                     "credit-scoring",
			Quantitative:                types.RatingHigh,
			QuantitativeOverride:        types.RatingLow,
			QuantitativeOverrideComment: "   ",
		}

		violations := model.ValidateAssessment(a, factors)
		gt.Array(t, violations).Length(1)
		gt.Value(t, violations[0].Code).Equal(model.ViolationRequiresJustification)
	})

	t.Run("justified differing override passes", func(t *testing.T) {
		a := &model.Assessment{
			ModelID:                     "credit-scoring",
			Quantitative:                types.RatingHigh,
			QuantitativeOverride:        types.RatingLow,
			QuantitativeOverrideComment: "vendor risk model disagrees, see MRM-1423",
		}
		gt.Array(t, model.ValidateAssessment(a, factors)).Length(0)
	})

	t.Run("qualitative override compares against the computed level", func(t *testing.T) {
		// both factors HIGH, level is HIGH, so a HIGH override is redundant
		a := &model.Assessment{
			ModelID:                    "credit-scoring",
			Quantitative:               types.RatingMedium,
			QualitativeOverride:        types.RatingHigh,
			QualitativeOverrideComment: "committee decision",
			FactorRatings: []model.FactorRating{
				{FactorID: "complexity", Rating: types.RatingHigh},
				{FactorID: "data-quality", Rating: types.RatingHigh},
			},
		}

		violations := model.ValidateAssessment(a, factors)
		gt.Array(t, violations).Length(1)
		gt.Value(t, violations[0].Slot).Equal(model.OverrideSlotQualitative)
		gt.Value(t, violations[0].Code).Equal(model.ViolationMustDiffer)
	})

	t.Run("tier override compares against the post-override derived tier", func(t *testing.T) {
		// quantitative HIGH overridden to LOW, qualitative LOW:
		// the derived base is (LOW, LOW) = VERY_LOW, so a MEDIUM override
		// differs and passes
		a := &model.Assessment{
			ModelID:                     "credit-scoring",
			Quantitative:                types.RatingHigh,
			QuantitativeOverride:        types.RatingLow,
			QuantitativeOverrideComment: "recalibrated exposure",
			TierOverride:                types.TierMedium,
			TierOverrideComment:         "regulatory floor",
			FactorRatings: []model.FactorRating{
				{FactorID: "complexity", Rating: types.RatingLow},
				{FactorID: "data-quality", Rating: types.RatingLow},
			},
		}
		gt.Array(t, model.ValidateAssessment(a, factors)).Length(0)
	})

	t.Run("redundant tier override names the derived tier", func(t *testing.T) {
		// (HIGH, HIGH) derives HIGH, so a HIGH tier override is redundant
		a := &model.Assessment{
			ModelID:             "credit-scoring",
			Quantitative:        types.RatingHigh,
			TierOverride:        types.TierHigh,
			TierOverrideComment: "board designation",
			FactorRatings: []model.FactorRating{
				{FactorID: "complexity", Rating: types.RatingHigh},
				{FactorID: "data-quality", Rating: types.RatingHigh},
			},
		}

		violations := model.ValidateAssessment(a, factors)
		gt.Array(t, violations).Length(1)
		gt.Value(t, violations[0].Slot).Equal(model.OverrideSlotTier)
		gt.Value(t, violations[0].Code).Equal(model.ViolationMustDiffer)
		gt.Value(t, violations[0].Message).Equal("Derived Tier Override must differ from the derived tier")
	})

	t.Run("all violations are collected", func(t *testing.T) {
		a := &model.Assessment{
			ModelID:             "credit-scoring",
			TierOverride:        types.TierHigh,
			TierOverrideComment: "",
		}

		// missing quantitative, and the tier override (base unset, so it
		// differs) lacks a justification
		violations := model.ValidateAssessment(a, factors)
		gt.Array(t, violations).Length(2)
	})
}

func TestUnknownFactorRatings(t *testing.T) {
	p := &policy.Policy{
		Factors: []policy.Factor{
			{ID: "complexity", Name: "Model Complexity", Weight: 1.0},
		},
	}

	a := &model.Assessment{
		ModelID: "credit-scoring",
		FactorRatings: []model.FactorRating{
			{FactorID: "complexity", Rating: types.RatingLow},
			{FactorID: "retired-factor", Rating: types.RatingHigh},
		},
	}

	unknown := model.UnknownFactorRatings(a, p)
	gt.Array(t, unknown).Length(1)
	gt.Value(t, unknown[0]).Equal(types.FactorID("retired-factor"))
}

func TestValidationError(t *testing.T) {
	err := &model.ValidationError{
		Violations: []model.Violation{
			{Code: model.ViolationMissingRating, Message: "Quantitative Rating is required"},
		},
	}
	gt.Value(t, err.Error()).Equal("assessment validation failed: Quantitative Rating is required")
}
