package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

func TestInherentTier(t *testing.T) {
	tests := []struct {
		quantitative types.Rating
		qualitative  types.Rating
		want         types.Tier
	}{
		{types.RatingHigh, types.RatingHigh, types.TierHigh},
		{types.RatingHigh, types.RatingMedium, types.TierHigh},
		{types.RatingHigh, types.RatingLow, types.TierMedium},
		{types.RatingMedium, types.RatingHigh, types.TierHigh},
		{types.RatingMedium, types.RatingMedium, types.TierMedium},
		{types.RatingMedium, types.RatingLow, types.TierLow},
		{types.RatingLow, types.RatingHigh, types.TierMedium},
		{types.RatingLow, types.RatingMedium, types.TierLow},
		{types.RatingLow, types.RatingLow, types.TierVeryLow},
	}

	for _, tt := range tests {
		t.Run(tt.quantitative.String()+"/"+tt.qualitative.String(), func(t *testing.T) {
			gt.Value(t, model.InherentTier(tt.quantitative, tt.qualitative)).Equal(tt.want)
		})
	}

	t.Run("unset quantitative yields no tier", func(t *testing.T) {
		gt.Value(t, model.InherentTier(types.RatingUnset, types.RatingHigh)).Equal(types.TierUnset)
	})

	t.Run("unset qualitative yields no tier", func(t *testing.T) {
		gt.Value(t, model.InherentTier(types.RatingHigh, types.RatingUnset)).Equal(types.TierUnset)
	})
}
